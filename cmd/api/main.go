package main

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/dukapos/dukapos-api/internal/application/service"
	"github.com/dukapos/dukapos-api/internal/config"
	"github.com/dukapos/dukapos-api/internal/infrastructure/database"
	"github.com/dukapos/dukapos-api/internal/infrastructure/repository"
	"github.com/dukapos/dukapos-api/internal/logging"
	"github.com/dukapos/dukapos-api/internal/presentation/http/handler"
	"github.com/dukapos/dukapos-api/internal/presentation/http/routes"
	"github.com/dukapos/dukapos-api/pkg/oauth"
	"github.com/dukapos/dukapos-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logging.Init(cfg)
	defer logger.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	if err := database.SeedDefaultData(db); err != nil {
		logger.Warn("failed to seed default data", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	reconRepo := repository.NewReconciliationRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Checkout publishes here; analytics listens for cache invalidation
	bus := EventBus.New()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo)
	checkoutService := service.NewCheckoutService(productRepo, saleRepo, reconRepo, bus)
	checkoutService.SetIOTimeout(cfg.Checkout.IOTimeout)
	saleService := service.NewSaleService(saleRepo)
	analyticsService := service.NewAnalyticsService(saleRepo, productRepo, bus)
	reconService := service.NewReconciliationService(reconRepo, productRepo)

	// Expired idempotency keys are dead weight; sweep them hourly
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := idempotencyRepo.DeleteExpired(context.Background()); err != nil {
				logger.Warn("failed to sweep expired idempotency keys", zap.Error(err))
			}
		}
	}()

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to UTC", zap.String("timezone", cfg.App.Timezone))
		location = time.UTC
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:           handler.NewAuthHandler(authService, googleOAuthService),
		Product:        handler.NewProductHandler(productService),
		Checkout:       handler.NewCheckoutHandler(checkoutService),
		Sale:           handler.NewSaleHandler(saleService),
		Analytics:      handler.NewAnalyticsHandler(analyticsService, location),
		Reconciliation: handler.NewReconciliationHandler(reconService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
