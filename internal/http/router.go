package http

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/influencer-portal/backend/internal/config"
	"github.com/influencer-portal/backend/internal/http/handlers"
	"github.com/influencer-portal/backend/internal/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth           *handlers.AuthHandler
	User           *handlers.UserHandler
	Campaign       *handlers.CampaignHandler
	Collaboration  *handlers.CollaborationHandler
	Social         *handlers.SocialHandler
	Meta           *handlers.MetaHandler
	Analytics      *handlers.AnalyticsHandler
	WSHub          *handlers.WSHub
	SessionChecker middleware.SessionChecker
}

func SetupRouter(app *fiber.App, cfg *config.Config, log *zap.Logger, rdb *redis.Client, h Handlers) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	if rdb != nil {
		api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))
	}

	// Auth (public)
	api.Post("/auth/signup/step1", h.Auth.SignupStep1)
	api.Post("/auth/signup/step2", h.Auth.SignupStep2)
	api.Post("/auth/signup/verify", h.Auth.VerifySignup)
	api.Post("/auth/login", h.Auth.Login)

	// Meta (public, no auth required)
	api.Get("/meta/options", h.Meta.GetOptions)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, h.SessionChecker, log))

	protected.Post("/auth/logout", h.Auth.Logout)

	// Me
	protected.Get("/me", h.User.GetMe)
	protected.Put("/me/profile", h.User.UpdateProfile)
	protected.Get("/me/profile/stats", h.User.GetStats)
	protected.Put("/me/password", h.Auth.ChangePassword)
	protected.Post("/me/onboarding/complete", h.Auth.CompleteOnboarding)
	protected.Get("/dashboard", h.User.GetDashboard)

	// Campaigns
	protected.Get("/campaigns", h.Campaign.ListCampaigns)
	protected.Get("/campaigns/tags", h.Campaign.ListTags)
	protected.Get("/campaigns/:id", h.Campaign.GetCampaign)
	protected.Post("/campaigns/:id/apply", h.Campaign.Apply)

	// Applications and collaborations
	protected.Get("/applications", h.Collaboration.ListApplications)
	protected.Get("/collaborations", h.Collaboration.ListCollaborations)
	protected.Get("/collaborations/:id", h.Collaboration.GetCollaboration)
	protected.Get("/collaborations/:id/history", h.Collaboration.GetHistory)
	protected.Post("/collaborations/:id/steps/:stepId/advance", h.Collaboration.AdvanceStep)
	protected.Post("/directory/select", h.Collaboration.Select)
	protected.Get("/directory/selected", h.Collaboration.Selected)

	// Socials
	protected.Post("/socials/:platform/connect", h.Social.Connect)
	protected.Get("/socials/requests/:id", h.Social.GetRequest)
	protected.Post("/socials/requests/:id/resolve", h.Social.Resolve)
	protected.Delete("/socials/:platform", h.Social.Disconnect)

	protected.Get("/analytics", h.Analytics.GetAnalytics)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(h.WSHub.HandleWS))
}
