package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "equiptrack-backend/internal/api/http"
	"equiptrack-backend/internal/broker"
	"equiptrack-backend/internal/config"
	"equiptrack-backend/internal/interval"
	"equiptrack-backend/internal/jobs"
	"equiptrack-backend/internal/logger"
	"equiptrack-backend/internal/repository/postgres"
	"equiptrack-backend/internal/scheduler"
	"equiptrack-backend/internal/security"
	"equiptrack-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EquipTrack backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Rebuild the occupancy index from approved/active reservations
	index := interval.NewIndex()
	if err := service.LoadOccupancyIndex(context.Background(), store, index); err != nil {
		logger.Error("Failed to load occupancy index", "error", err)
		log.Fatalf("Failed to load occupancy index: %v", err)
	}

	// Initialize Broker (optional)
	var publisher broker.Publisher
	if cfg.Broker.URL != "" {
		b, err := broker.NewBroker(cfg.Broker.URL, cfg.Broker.Exchange)
		if err != nil {
			logger.Error("Failed to connect to broker", "error", err)
			log.Fatalf("Failed to connect to broker: %v", err)
		}
		defer b.Close()
		publisher = b
		logger.Info("Broker connected", "exchange", cfg.Broker.Exchange)
	} else {
		logger.Warn("Broker disabled, notification events delivered by email only")
	}

	// Initialize Services
	dispatcher := service.NewDispatcher(store.Notifications(), store.Users())
	emailSvc := service.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	locks := service.NewItemLocks()
	reservationSvc := service.NewReservationService(store, index, locks, dispatcher)
	itemSvc := service.NewItemService(store, index, locks, dispatcher)
	notificationSvc := service.NewNotificationService(store.Notifications())

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(store, reservationSvc, emailSvc, publisher, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	// Initialize HTTP API
	tokenManager := security.NewTokenManager(cfg.Auth.JWTSecret)
	handler := httpapi.NewHandler(reservationSvc, itemSvc, notificationSvc)
	router := mux.NewRouter()
	httpapi.RegisterRoutes(router, handler, tokenManager)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
