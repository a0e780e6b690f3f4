package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/influencer-portal/backend/internal/http/dto"
	"github.com/influencer-portal/backend/internal/middleware"
	"github.com/influencer-portal/backend/internal/services"
	"go.uber.org/zap"
)

// writeError maps service errors onto status codes. Anything unrecognised is a 500.
func writeError(c *fiber.Ctx, log *zap.Logger, err error) error {
	reqID := middleware.GetRequestID(c)

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error:     "validation failed",
			Fields:    verr.Fields,
			RequestID: reqID,
		})
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrDraftNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: reqID})
	case services.IsAuthError(err):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: reqID})
	case errors.Is(err, services.ErrUnknownPlatform),
		errors.Is(err, services.ErrUnknownOutcome),
		errors.Is(err, services.ErrDraftIncomplete):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: reqID})
	case errors.Is(err, services.ErrNotVerified),
		errors.Is(err, services.ErrRequestResolved),
		errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: reqID})
	case errors.Is(err, services.ErrWorkspaceClosed):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: reqID})
	}

	log.Error("request failed", zap.String("request_id", reqID), zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error", RequestID: reqID})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}
