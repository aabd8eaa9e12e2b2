// File: a1care/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"a1care/config"
	"a1care/cron"
	"a1care/database"
	catalogRepoPkg "a1care/database/repository/catalog"
	providerRepoPkg "a1care/database/repository/provider"
	reservationRepoPkg "a1care/database/repository/reservation"
	slotRepoPkg "a1care/database/repository/slot"
	"a1care/handlers"
	"a1care/routes"
	"a1care/services/booking"
	"a1care/services/catalog"
	"a1care/services/notification"
	"a1care/services/slot"
	"a1care/services/tasks"
	"a1care/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// repositories.
	catRepo := catalogRepoPkg.NewMongoCatalogRepo()
	provRepo := providerRepoPkg.NewMongoProviderRepo()
	slRepo := slotRepoPkg.NewMongoSlotRepo()
	resRepo := reservationRepoPkg.NewMongoReservationRepo()

	for name, ensure := range map[string]func() error{
		"catalog":      catRepo.EnsureIndexes,
		"providers":    provRepo.EnsureIndexes,
		"slots":        slRepo.EnsureIndexes,
		"reservations": resRepo.EnsureIndexes,
	} {
		if err := ensure(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// asynq client for scheduling appointment reminders.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTasksDB,
	})
	defer asynqClient.Close()

	// services.
	resolver := &catalog.DefaultResolver{
		Catalog:                catRepo,
		Providers:              provRepo,
		DefaultConsultationFee: config.AppConfig.DefaultConsultFee,
	}
	ledger := &slot.DefaultLedger{
		Repo:     slRepo,
		Cache:    utils.GetCacheClient(),
		CacheTTL: time.Duration(config.AppConfig.AvailabilityCacheSecs) * time.Second,
	}
	notifier := &notification.LogNotificationService{Logger: logger}
	engine := &booking.DefaultEngine{
		Resolver:     resolver,
		Slots:        ledger,
		Reservations: resRepo,
		Notifier:     notifier,
		Reminders:    &tasks.AsynqReminderScheduler{Client: asynqClient},
		Policy:       booking.PolicyFromConfig(),
		BaseFee:      config.AppConfig.BaseBookingFee,
		ReminderLead: time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
		Logger:       logger,
	}

	// Background reminder worker and health monitor.
	cron.InitReminderWorker(notifier)
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

	// Assemble the handler bundle and register routes.
	handlerBundle := &handlers.HandlerBundle{
		Booking:  &handlers.BookingHandler{Engine: engine},
		Slots:    &handlers.SlotHandler{Ledger: ledger},
		Catalog:  &handlers.CatalogHandler{Repo: catRepo},
		Provider: &handlers.ProviderHandler{Repo: provRepo},
	}
	routes.RegisterRoutes(router, handlerBundle)

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
