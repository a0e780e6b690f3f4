package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/influencer-portal/backend/internal/auth"
	"github.com/influencer-portal/backend/internal/config"
	"go.uber.org/zap"
)

const (
	CtxEmail     = "email"
	CtxSessionID = "session_id"
)

// SessionChecker resolves a live session to the e-mail that owns it.
type SessionChecker interface {
	Authenticate(ctx context.Context, sessionID string) (string, error)
}

func AuthMiddleware(cfg *config.Config, sessions SessionChecker, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		// Logout deletes the session, so a still-valid token is not enough.
		email, err := sessions.Authenticate(c.UserContext(), claims.SessionID)
		if err != nil || email != claims.Email {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "session expired"})
		}

		c.Locals(CtxEmail, claims.Email)
		c.Locals(CtxSessionID, claims.SessionID)

		return c.Next()
	}
}

func GetEmail(c *fiber.Ctx) string {
	email, _ := c.Locals(CtxEmail).(string)
	return email
}

func GetSessionID(c *fiber.Ctx) string {
	id, _ := c.Locals(CtxSessionID).(string)
	return id
}
