package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/influencer-portal/backend/internal/http/dto"
	"github.com/influencer-portal/backend/internal/middleware"
	"github.com/influencer-portal/backend/internal/models"
	"github.com/influencer-portal/backend/internal/services"
	"go.uber.org/zap"
)

type CollaborationHandler struct {
	workspaces *services.WorkspaceRegistry
	history    services.AuditHistory
	log        *zap.Logger
}

func NewCollaborationHandler(workspaces *services.WorkspaceRegistry, history services.AuditHistory, log *zap.Logger) *CollaborationHandler {
	return &CollaborationHandler{workspaces: workspaces, history: history, log: log}
}

// ListApplications returns applications still waiting on the brand.
func (h *CollaborationHandler) ListApplications(c *fiber.Ctx) error {
	ws := h.workspaces.Open(c.UserContext(), middleware.GetEmail(c))
	return c.JSON(dto.SuccessResponse{OK: true, Data: ws.PendingApplications()})
}

func (h *CollaborationHandler) ListCollaborations(c *fiber.Ctx) error {
	ws := h.workspaces.Open(c.UserContext(), middleware.GetEmail(c))
	collabs := ws.FilterCollaborations(c.Query("status"))

	views := make([]dto.CollaborationView, len(collabs))
	for i, collab := range collabs {
		views[i] = dto.CollaborationView{Collaboration: collab, StatusLabel: models.StatusLabel(collab)}
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: views})
}

func (h *CollaborationHandler) GetCollaboration(c *fiber.Ctx) error {
	ws := h.workspaces.Open(c.UserContext(), middleware.GetEmail(c))
	collab, ok := ws.Collaboration(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "collaboration not found"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.CollaborationView{
		Collaboration: collab,
		StatusLabel:   models.StatusLabel(collab),
	}})
}

// GetHistory lists the audit trail of one collaboration.
func (h *CollaborationHandler) GetHistory(c *fiber.Ctx) error {
	email := middleware.GetEmail(c)
	ws := h.workspaces.Open(c.UserContext(), email)
	collab, ok := ws.Collaboration(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "collaboration not found"})
	}

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	entries, err := h.history.GetByEntity(c.UserContext(), email, "collaboration", collab.ID, limit, offset)
	if err != nil {
		h.log.Warn("failed to load collaboration history", zap.String("collaboration_id", collab.ID), zap.Error(err))
		entries = nil
	}
	if entries == nil {
		entries = []models.AuditLog{}
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}

// AdvanceStep completes an Action Needed step. Any other target is answered
// with changed=false and the collaboration as it stands.
func (h *CollaborationHandler) AdvanceStep(c *fiber.Ctx) error {
	stepID, err := strconv.Atoi(c.Params("stepId"))
	if err != nil {
		return badRequest(c, "invalid step id")
	}

	ws := h.workspaces.Open(c.UserContext(), middleware.GetEmail(c))
	collab, changed, err := ws.Advance(c.UserContext(), c.Params("id"), stepID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.AdvanceResponse{
		Changed:       changed,
		Collaboration: collab,
		StatusLabel:   models.StatusLabel(collab),
	}})
}

func (h *CollaborationHandler) Select(c *fiber.Ctx) error {
	var req dto.SelectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Kind != "" && !services.IsValidDirectoryKind(req.Kind) {
		return badRequest(c, "kind must be application or collaboration")
	}

	ws := h.workspaces.Open(c.UserContext(), middleware.GetEmail(c))
	item, err := ws.Select(services.DirectoryRef{Kind: req.Kind, ID: req.ID})
	if err != nil {
		return writeError(c, h.log, err)
	}
	if req.Kind == "" {
		return c.JSON(dto.SuccessResponse{OK: true})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: item})
}

func (h *CollaborationHandler) Selected(c *fiber.Ctx) error {
	ws := h.workspaces.Open(c.UserContext(), middleware.GetEmail(c))
	item, ok := ws.Selected()
	if !ok {
		return c.JSON(dto.SuccessResponse{OK: true})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: item})
}
