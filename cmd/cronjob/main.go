package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"club-finance-backend/internal/config"
	"club-finance-backend/internal/jobs"
	"club-finance-backend/internal/logger"
	"club-finance-backend/internal/repository/postgres"
	"club-finance-backend/internal/scheduler"
	"club-finance-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'monthly-payroll', 'pending-ledger-digest', 'all-monthly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Club Finance Cronjob Runner...", "log_level", cfg.Log.Level, "payroll_runs", len(cfg.PayrollRuns))

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	postgres.ConfigurePool(db, postgres.PoolConfig{
		MaxOpen:         cfg.Database.PoolSize,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetimeMinutes) * time.Minute,
	})

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	identities := service.NewApprovalIdentities(cfg.Approval)
	notifier := service.NewNotifier(
		cfg.Notification.SendGridAPIKey,
		cfg.Notification.FromEmail,
		cfg.Notification.FromName,
		cfg.Notification.Recipients,
	)

	jobServices := &jobs.Services{
		Payroll:  service.NewPayrollService(store, store.Payroll, notifier, identities, nil),
		Ledger:   service.NewLedgerService(store, store.Ledger, identities, nil),
		Notifier: notifier,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.", "next_run", cronScheduler.NextRun(time.Now().UTC()))

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "monthly-payroll":
		jobRunner.MonthlyPayroll()
	case "pending-ledger-digest":
		jobRunner.PendingLedgerDigest()
	case "all-monthly":
		jobRunner.RunAllMonthlyJobs()
	case "all-daily":
		jobRunner.RunAllDailyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - monthly-payroll\n")
		fmt.Printf("  - pending-ledger-digest\n")
		fmt.Printf("  - all-monthly\n")
		fmt.Printf("  - all-daily\n")
		os.Exit(1)
	}
}
