package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/influencer-portal/backend/internal/http/dto"
	"github.com/influencer-portal/backend/internal/middleware"
	"github.com/influencer-portal/backend/internal/services"
	"go.uber.org/zap"
)

type SocialHandler struct {
	socialService *services.SocialService
	workspaces    *services.WorkspaceRegistry
	log           *zap.Logger
}

func NewSocialHandler(socialService *services.SocialService, workspaces *services.WorkspaceRegistry, log *zap.Logger) *SocialHandler {
	return &SocialHandler{socialService: socialService, workspaces: workspaces, log: log}
}

// Connect opens a simulated consent window for the platform.
func (h *SocialHandler) Connect(c *fiber.Ctx) error {
	req, err := h.socialService.BeginConnect(middleware.GetEmail(c), c.Params("platform"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.SuccessResponse{OK: true, Data: req})
}

func (h *SocialHandler) GetRequest(c *fiber.Ctx) error {
	req, err := h.socialService.Request(middleware.GetEmail(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: req})
}

func (h *SocialHandler) Resolve(c *fiber.Ctx) error {
	var body dto.ResolveOAuthRequest
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	ws := h.workspaces.Open(c.UserContext(), middleware.GetEmail(c))
	req, err := h.socialService.Resolve(ws, c.Params("id"), body.Outcome)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: req})
}

func (h *SocialHandler) Disconnect(c *fiber.Ctx) error {
	profile, err := h.socialService.Disconnect(c.UserContext(), middleware.GetEmail(c), c.Params("platform"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: profile})
}
