package main

import (
	"database/sql"
	"flag"
	"log"

	_ "github.com/lib/pq"

	"club-finance-backend/internal/config"
	"club-finance-backend/internal/logger"
	"club-finance-backend/internal/repository/postgres"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	direction := flag.String("direction", "up", "Migration direction: 'up' or 'down'")
	path := flag.String("path", "", "Migrations directory (defaults to migrations.path from config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	dir := postgres.MigrationDirection(*direction)
	if dir != postgres.MigrateUp && dir != postgres.MigrateDown {
		log.Fatalf("Unknown migration direction %q", *direction)
	}
	migrationsPath := cfg.Migrations.Path
	if *path != "" {
		migrationsPath = *path
	}

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	logger.Info("Running migrations", "direction", dir, "path", migrationsPath, "database", cfg.Database.Database)
	if err := postgres.RunMigrations(db, migrationsPath, cfg.Database.Database, dir); err != nil {
		logger.Error("Migration failed", "error", err)
		log.Fatalf("Migration failed: %v", err)
	}
	logger.Info("Migrations finished", "direction", dir)
}
