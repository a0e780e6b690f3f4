package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/influencer-portal/backend/internal/http/dto"
	"github.com/influencer-portal/backend/internal/middleware"
	"github.com/influencer-portal/backend/internal/services"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	workspaces      *services.WorkspaceRegistry
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, workspaces *services.WorkspaceRegistry, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, workspaces: workspaces, log: log}
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: h.campaignService.List(c.Query("tag"))})
}

func (h *CampaignHandler) ListTags(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: h.campaignService.Tags()})
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	id, ok := parseCampaignID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid campaign id")
	}

	campaign, err := h.campaignService.Get(id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: campaign})
}

func (h *CampaignHandler) Apply(c *fiber.Ctx) error {
	id, ok := parseCampaignID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid campaign id")
	}

	ws := h.workspaces.Open(c.UserContext(), middleware.GetEmail(c))
	app, created, err := h.campaignService.Apply(c.UserContext(), ws, id)
	if err != nil {
		return writeError(c, h.log, err)
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.SuccessResponse{OK: true, Data: dto.ApplyResponse{
		Created:     created,
		Application: app,
	}})
}

// parseCampaignID accepts both "42" and the display form "C42".
func parseCampaignID(raw string) (int, bool) {
	raw = strings.TrimPrefix(strings.TrimPrefix(raw, "C"), "c")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
