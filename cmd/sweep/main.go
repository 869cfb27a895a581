package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"equiptrack-backend/internal/config"
	"equiptrack-backend/internal/interval"
	"equiptrack-backend/internal/jobs"
	"equiptrack-backend/internal/logger"
	"equiptrack-backend/internal/repository/postgres"
	"equiptrack-backend/internal/service"
)

// Standalone sweep runner for ops use: runs one job (or one full sweep tick)
// against the shared database and exits. The server process runs the same
// jobs on its cron cadence.
func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	job := flag.String("job", "sweep", "Job to run once: 'activate', 'complete', 'deliver-notifications' or 'sweep'")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EquipTrack sweep runner...", "job", *job)

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

	// Initialize Repositories and occupancy index
	store := postgres.NewStore(db)
	index := interval.NewIndex()
	if err := service.LoadOccupancyIndex(context.Background(), store, index); err != nil {
		logger.Error("Failed to load occupancy index", "error", err)
		log.Fatalf("Failed to load occupancy index: %v", err)
	}

	// Initialize Services
	dispatcher := service.NewDispatcher(store.Notifications(), store.Users())
	emailSvc := service.NewEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password, cfg.SMTP.From)
	reservationSvc := service.NewReservationService(store, index, service.NewItemLocks(), dispatcher)

	// Broker publishing is skipped in the one-off runner; undelivered events
	// are picked up by the server's delivery job.
	jobRunner := jobs.NewJobRunner(store, reservationSvc, emailSvc, nil, cfg)

	switch *job {
	case "activate":
		jobRunner.ActivateDueReservations()
	case "complete":
		jobRunner.CompleteDueReservations()
	case "deliver-notifications":
		jobRunner.DeliverPendingNotifications()
	case "sweep":
		jobRunner.RunSweepOnce()
	default:
		logger.Error("Unknown job name", "job", *job)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - activate\n")
		fmt.Printf("  - complete\n")
		fmt.Printf("  - deliver-notifications\n")
		fmt.Printf("  - sweep\n")
		os.Exit(1)
	}

	logger.Info("Job execution completed", "job", *job)
}
