package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"luco/internal/config"
	"luco/internal/handlers"
	"luco/internal/middleware"
	"luco/internal/repositories/mongodb"
	"luco/internal/services"
	"luco/internal/utils"
	"luco/pkg/cache"
	"luco/pkg/database"
	"luco/pkg/genai"
	"luco/pkg/logger"
	"luco/pkg/payment"
	"luco/pkg/sms"
	"luco/routes"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	// MongoDB
	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.EnsureIndexes(db.Database); err != nil {
		appLogger.Fatalf("Failed to ensure indexes: %v", err)
	}

	// Redis. The API stays up without it; repositories tolerate a nil cache.
	var cacheService mongodb.CacheService
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		appLogger.WithError(err).Warn("Redis unavailable, running without cache")
	} else {
		cacheService = redisCache
		defer redisCache.Close()
	}

	// Repositories
	voucherRepo := mongodb.NewVoucherRepository(db.Database, cacheService)
	profileRepo := mongodb.NewVoucherProfileRepository(db.Database)
	bannerRepo := mongodb.NewBannerRepository(db.Database, cacheService)
	memberRepo := mongodb.NewMemberRepository(db.Database)
	subscriberRepo := mongodb.NewSubscriberRepository(db.Database)

	// Payment gateway
	statusStore := payment.NewStatusStore()
	gateway := payment.NewLucoPayClient(&payment.LucoPayConfig{
		BaseURL:        cfg.Payment.BaseURL,
		RequestTimeout: cfg.Payment.RequestTimeout,
	}, statusStore, appLogger)

	// SMS provider
	smsProvider, err := buildSMSProvider(cfg.SMS)
	if err != nil {
		appLogger.Fatalf("Failed to initialize SMS provider: %v", err)
	}

	// AI client
	aiClient := genai.NewClient(genai.Config{
		BaseURL: cfg.AI.BaseURL,
		APIKey:  cfg.AI.APIKey,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.RequestTimeout,
	})

	// Services
	smsService := services.NewSMSService(smsProvider, cfg.SMS.DefaultFrom, appLogger)
	voucherService := services.NewVoucherService(voucherRepo, appLogger)
	profileService := services.NewProfileService(profileRepo, voucherRepo, appLogger)
	purchaseService := services.NewPurchaseService(voucherRepo, gateway, cfg.Payment, appLogger)
	bannerService := services.NewBannerService(bannerRepo, appLogger)
	memberService := services.NewMemberService(memberRepo, smsService, appLogger)
	subscriberService := services.NewSubscriberService(subscriberRepo, smsService, appLogger)
	recommendationService := services.NewRecommendationService(voucherRepo, appLogger)
	snippetService := services.NewSnippetService(aiClient, appLogger)
	analyticsService := services.NewAnalyticsService(voucherRepo, memberRepo, subscriberRepo, appLogger)
	authService := services.NewAuthService(cfg.Security, appLogger)

	// Handlers
	voucherHandler := handlers.NewVoucherHandler(voucherService, profileService)
	purchaseHandler := handlers.NewPurchaseHandler(purchaseService)
	bannerHandler := handlers.NewBannerHandler(bannerService)
	memberHandler := handlers.NewMemberHandler(memberService)
	subscriberHandler := handlers.NewSubscriberHandler(subscriberService)
	profileHandler := handlers.NewProfileHandler(profileService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	adminHandler := handlers.NewAdminHandler(authService, snippetService, analyticsService)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(appLogger))

	v1 := router.Group("/api/v1")
	{
		routes.SetupStorefrontRoutes(v1, voucherHandler, purchaseHandler, bannerHandler, memberHandler, subscriberHandler, recommendationHandler)
		routes.SetupAdminRoutes(v1, cfg.Security.JWTSecret, adminHandler, voucherHandler, profileHandler, bannerHandler, memberHandler, subscriberHandler)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": utils.AppName,
			"version": cfg.App.Version,
		})
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Server listening on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	purchaseService.Shutdown()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Errorf("Forced shutdown: %v", err)
	}
}

func buildSMSProvider(cfg *config.SMSConfig) (sms.SMSProvider, error) {
	switch cfg.Provider {
	case "aws":
		return sms.NewAWSSNSProvider(cfg.AWS.Region)
	default:
		return sms.NewTwilioProvider(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber), nil
	}
}
