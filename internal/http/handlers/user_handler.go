package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/influencer-portal/backend/internal/http/dto"
	"github.com/influencer-portal/backend/internal/middleware"
	"github.com/influencer-portal/backend/internal/services"
	"go.uber.org/zap"
)

type UserHandler struct {
	profileService   *services.ProfileService
	dashboardService *services.DashboardService
	authService      *services.AuthService
	workspaces       *services.WorkspaceRegistry
	log              *zap.Logger
}

func NewUserHandler(
	profileService *services.ProfileService,
	dashboardService *services.DashboardService,
	authService *services.AuthService,
	workspaces *services.WorkspaceRegistry,
	log *zap.Logger,
) *UserHandler {
	return &UserHandler{
		profileService:   profileService,
		dashboardService: dashboardService,
		authService:      authService,
		workspaces:       workspaces,
		log:              log,
	}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	email := middleware.GetEmail(c)
	profile, err := h.profileService.Get(c.UserContext(), email)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.MeResponse{
		Profile:             profile,
		OnboardingCompleted: h.authService.IsOnboarded(c.UserContext(), email),
	}})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req services.ProfileUpdate
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	profile, err := h.profileService.Update(c.UserContext(), middleware.GetEmail(c), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: profile})
}

func (h *UserHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.profileService.Stats(c.UserContext(), middleware.GetEmail(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: stats})
}

func (h *UserHandler) GetDashboard(c *fiber.Ctx) error {
	ws := h.workspaces.Open(c.UserContext(), middleware.GetEmail(c))
	dash, err := h.dashboardService.Get(c.UserContext(), ws)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dash})
}
