package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/dukkan/backoffice/internal/application/catalog"
	identityapp "github.com/dukkan/backoffice/internal/application/identity"
	intakeapp "github.com/dukkan/backoffice/internal/application/intake"
	integrationapp "github.com/dukkan/backoffice/internal/application/integration"
	partnerapp "github.com/dukkan/backoffice/internal/application/partner"
	reportapp "github.com/dukkan/backoffice/internal/application/report"
	tradeapp "github.com/dukkan/backoffice/internal/application/trade"
	"github.com/dukkan/backoffice/internal/infrastructure/ads"
	"github.com/dukkan/backoffice/internal/infrastructure/auth"
	"github.com/dukkan/backoffice/internal/infrastructure/config"
	"github.com/dukkan/backoffice/internal/infrastructure/logger"
	"github.com/dukkan/backoffice/internal/infrastructure/persistence"
	"github.com/dukkan/backoffice/internal/interfaces/http/handler"
	"github.com/dukkan/backoffice/internal/interfaces/http/middleware"
	"github.com/dukkan/backoffice/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			Dükkan Back-Office API
//	@version		1.0
//	@description	Order intake, inventory and reporting API for the D2C store back-office.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting back-office server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Token blacklist: Redis when configured, in-process otherwise. The
	// in-memory fallback loses revocations on restart, which is acceptable
	// for local development only.
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Host != "" {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis connection", zap.Error(err))
			}
		}()
		blacklist = redisBlacklist
		log.Info("Redis token blacklist enabled", zap.String("host", cfg.Redis.Host))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis not configured, using in-memory token blacklist")
	}

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	sourceRepo := persistence.NewGormWebhookSourceRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)

	// External ad platform client
	adSpend := ads.NewMetaClient(&cfg.Ads, settingsRepo)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(cfg.Auth, jwtService, blacklist, log)
	intakeService := intakeapp.NewIntakeService(orderRepo, sourceRepo)
	orderService := tradeapp.NewOrderService(orderRepo)
	returnsService := tradeapp.NewReturnsService(orderRepo, log)
	purchaseService := tradeapp.NewPurchaseService(purchaseRepo, productRepo, supplierRepo)
	productService := catalogapp.NewProductService(productRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	sourceService := integrationapp.NewWebhookSourceService(sourceRepo)
	settingsService := integrationapp.NewSettingsService(settingsRepo)
	analyticsService := reportapp.NewAnalyticsService(orderRepo, productRepo, adSpend, log)

	// HTTP handlers
	webhookHandler := handler.NewWebhookHandler(intakeService)
	orderHandler := handler.NewOrderHandler(orderService)
	returnsHandler := handler.NewReturnsHandler(returnsService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	productHandler := handler.NewProductHandler(productService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	sourceHandler := handler.NewWebhookSourceHandler(sourceService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	reportHandler := handler.NewReportHandler(analyticsService)
	authHandler := handler.NewAuthHandler(authService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	handler.RegisterValidators()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(rateLimiter.Middleware())
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	jwtAuth := middleware.JWTAuth(jwtService, blacklist)

	// Webhook intake is called by the form provider and carries no token.
	webhookRoutes := router.NewDomainGroup("/webhook")
	webhookRoutes.POST("/orders", webhookHandler.CreateOrder)

	// Login and refresh are public; logout needs a valid access token.
	authRoutes := router.NewDomainGroup("/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", jwtAuth, authHandler.Logout)

	orderRoutes := router.NewDomainGroup("/orders").Use(jwtAuth)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/:id", orderHandler.Get)
	orderRoutes.PUT("/:id", orderHandler.Update)
	orderRoutes.PUT("/:id/status", orderHandler.UpdateStatus)
	orderRoutes.PUT("/:id/tags", orderHandler.UpdateTags)
	orderRoutes.DELETE("/:id", orderHandler.Delete)

	returnsRoutes := router.NewDomainGroup("/returns").Use(jwtAuth)
	returnsRoutes.POST("/upload", returnsHandler.UploadBatch)

	productRoutes := router.NewDomainGroup("/products").Use(jwtAuth)
	productRoutes.POST("", productHandler.Create)
	productRoutes.GET("", productHandler.List)
	productRoutes.GET("/:id", productHandler.Get)
	productRoutes.PUT("/:id", productHandler.Update)
	productRoutes.DELETE("/:id", productHandler.Delete)

	purchaseRoutes := router.NewDomainGroup("/purchases").Use(jwtAuth)
	purchaseRoutes.POST("", purchaseHandler.Create)
	purchaseRoutes.GET("", purchaseHandler.List)
	purchaseRoutes.GET("/:id", purchaseHandler.Get)
	purchaseRoutes.POST("/:id/receive", purchaseHandler.Receive)
	purchaseRoutes.DELETE("/:id", purchaseHandler.Delete)

	supplierRoutes := router.NewDomainGroup("/suppliers").Use(jwtAuth)
	supplierRoutes.POST("", supplierHandler.Create)
	supplierRoutes.GET("", supplierHandler.List)
	supplierRoutes.GET("/:id", supplierHandler.Get)
	supplierRoutes.PUT("/:id", supplierHandler.Update)
	supplierRoutes.DELETE("/:id", supplierHandler.Delete)

	sourceRoutes := router.NewDomainGroup("/webhook-sources").Use(jwtAuth)
	sourceRoutes.POST("", sourceHandler.Create)
	sourceRoutes.GET("", sourceHandler.List)
	sourceRoutes.PUT("/:id", sourceHandler.Update)
	sourceRoutes.DELETE("/:id", sourceHandler.Delete)

	settingsRoutes := router.NewDomainGroup("/settings").Use(jwtAuth)
	settingsRoutes.GET("", settingsHandler.Get)
	settingsRoutes.PUT("/ad-credentials", settingsHandler.UpdateAdCredentials)

	reportRoutes := router.NewDomainGroup("/reports").Use(jwtAuth)
	reportRoutes.GET("", reportHandler.Get)

	r.Register(webhookRoutes).
		Register(authRoutes).
		Register(orderRoutes).
		Register(returnsRoutes).
		Register(productRoutes).
		Register(purchaseRoutes).
		Register(supplierRoutes).
		Register(sourceRoutes).
		Register(settingsRoutes).
		Register(reportRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
