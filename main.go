// File: gymslot/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gymslot/config"
	"gymslot/cron"
	"gymslot/database"
	bookingRepoPkg "gymslot/database/repository/booking"
	corporateRepoPkg "gymslot/database/repository/corporate"
	gymRepoPkg "gymslot/database/repository/gym"
	rewardsRepoPkg "gymslot/database/repository/rewards"
	"gymslot/handlers"
	"gymslot/middleware"
	"gymslot/routes"
	"gymslot/services/booking"
	"gymslot/services/gym"
	"gymslot/services/payment"
	"gymslot/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitGrantCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	corporateRepo := corporateRepoPkg.NewMongoCorporateRepo()
	rewardsRepo := rewardsRepoPkg.NewMongoRewardsRepo()
	gymRepo := gymRepoPkg.NewMongoGymRepo()

	// services.
	gymService := &gym.DefaultGymService{
		Repo:        gymRepo,
		CacheClient: utils.GetCacheClient(),
		CacheTTL:    config.AppConfig.GymCacheTTL,
		Logger:      logger,
	}

	gateway, err := payment.NewGateway(payment.Config{
		Provider:  config.AppConfig.PaymentProvider,
		KeyID:     config.AppConfig.PaymentKeyID,
		KeySecret: config.AppConfig.PaymentKeySecret,
		Retries:   config.AppConfig.PaymentRetries,
	}, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize payment gateway: %v", err)
	}

	discountResolver := &booking.DiscountResolver{
		Rewards:   rewardsRepo,
		Corporate: corporateRepo,
		Grants:    &booking.RedisGrantStore{Client: utils.GetGrantCacheClient()},
		GrantTTL:  config.AppConfig.GrantTTL,
		Logger:    logger,
	}

	bookingService := &booking.DefaultBookingService{
		Repo:      bookingRepo,
		Validator: &booking.RequestValidator{Gyms: gymService},
		Discounts: discountResolver,
		CheckIns:  &booking.CheckInValidator{Repo: bookingRepo, Logger: logger},
		Gateway:   gateway,
		QR:        &booking.QRIssuer{TTL: config.AppConfig.QRTokenTTL},
		Logger:    logger,
		Currency:  config.AppConfig.Currency,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	gymHandler := handlers.NewGymHandler(gymService)

	routes.SetupRouter(router)
	routes.RegisterBookingRoutes(router, bookingHandler, gymHandler)

	// Background lifecycle sweeps.
	cron.InitSweepWorker(bookingRepo, logger)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetGrantCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
