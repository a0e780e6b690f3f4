package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/influencer-portal/backend/internal/catalog"
	"github.com/influencer-portal/backend/internal/clock"
	"github.com/influencer-portal/backend/internal/config"
	"github.com/influencer-portal/backend/internal/db"
	"github.com/influencer-portal/backend/internal/events"
	apphttp "github.com/influencer-portal/backend/internal/http"
	"github.com/influencer-portal/backend/internal/http/handlers"
	"github.com/influencer-portal/backend/internal/repositories"
	"github.com/influencer-portal/backend/internal/services"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, db.Migrations(), log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(rdb)
	sessionRepo := repositories.NewSessionRepo(rdb)
	signupRepo := repositories.NewSignupRepo(rdb)
	workspaceRepo := repositories.NewWorkspaceRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	clk := clock.Real()
	registry := services.NewWorkspaceRegistry(workspaceRepo, auditRepo, publisher, clk, services.WorkspaceOptions{
		AcceptanceDelay:    cfg.AcceptanceDelay,
		BrandResponseDelay: cfg.BrandResponseDelay,
		BrandFeedback:      cfg.BrandRevisionFeedback,
	}, log)
	defer registry.CloseAll()

	authService := services.NewAuthService(userRepo, sessionRepo, signupRepo, sessionRepo, registry, cfg, clk, log)
	profileService := services.NewProfileService(userRepo, clk, log)
	dashboardService := services.NewDashboardService(profileService)
	campaignService := services.NewCampaignService(catalog.Default(), log)
	socialService := services.NewSocialService(userRepo, publisher, clk, cfg.OAuthFinalizeDelay, nil, log)

	// Handlers
	wsHub := handlers.NewWSHub(cfg, subscriber, authService, log)
	h := apphttp.Handlers{
		Auth:           handlers.NewAuthHandler(authService, log),
		User:           handlers.NewUserHandler(profileService, dashboardService, authService, registry, log),
		Campaign:       handlers.NewCampaignHandler(campaignService, registry, log),
		Collaboration:  handlers.NewCollaborationHandler(registry, auditRepo, log),
		Social:         handlers.NewSocialHandler(socialService, registry, log),
		Meta:           handlers.NewMetaHandler(),
		Analytics:      handlers.NewAnalyticsHandler(),
		WSHub:          wsHub,
		SessionChecker: authService,
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, h)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := wsHub.Start(gctx); err != nil {
			return fmt.Errorf("ws hub subscribe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		addr := fmt.Sprintf(":%s", cfg.APIPort)
		log.Info("starting API server", zap.String("addr", addr))
		return app.Listen(addr)
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down...")
		return app.Shutdown()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server stopped with error", zap.Error(err))
	}
}
