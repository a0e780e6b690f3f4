package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/influencer-portal/backend/internal/http/dto"
	"github.com/influencer-portal/backend/internal/middleware"
	"github.com/influencer-portal/backend/internal/services"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *services.AuthService
	log         *zap.Logger
}

func NewAuthHandler(authService *services.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

func (h *AuthHandler) SignupStep1(c *fiber.Ctx) error {
	var req dto.SignupStep1Request
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	draft, err := h.authService.SignupStep1(c.UserContext(), req.DraftID, services.SignupStep1Input{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		AcceptTerms:     req.AcceptTerms,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.SignupDraftResponse{
		DraftID: draft.ID,
		Email:   draft.Email(),
		Ready:   draft.Ready(),
	}})
}

func (h *AuthHandler) SignupStep2(c *fiber.Ctx) error {
	var req dto.SignupStep2Request
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.DraftID == "" {
		return badRequest(c, "draft_id is required")
	}

	profile, err := h.authService.SignupStep2(c.UserContext(), req.DraftID, services.SignupStep2Input{
		FullName:       req.FullName,
		ProfilePicture: req.ProfilePicture,
		Phone:          req.Phone,
		Country:        req.Country,
		City:           req.City,
		DOB:            req.DOB,
		Gender:         req.Gender,
		Niche:          req.Niche,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}

	// The account exists now but no session is issued until verification.
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: dto.PendingVerificationResponse{
		DraftID: req.DraftID,
		Profile: profile,
	}})
}

func (h *AuthHandler) VerifySignup(c *fiber.Ctx) error {
	var req dto.VerifySignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	session, err := h.authService.VerifySignup(c.UserContext(), req.DraftID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: session})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email and password are required")
	}

	session, err := h.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		h.log.Debug("login failed", zap.Error(err))
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: session})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.authService.Logout(c.UserContext(), middleware.GetSessionID(c), middleware.GetEmail(c))
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *AuthHandler) CompleteOnboarding(c *fiber.Ctx) error {
	if err := h.authService.CompleteOnboarding(c.UserContext(), middleware.GetEmail(c)); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.authService.ChangePassword(c.UserContext(), middleware.GetEmail(c), req.CurrentPassword, req.NewPassword); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}
