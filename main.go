// @title Learning Center API
// @version 1.0
// @description Backend of the learning center: students, groups, lessons, exams and the public website.

// @contact.name API Support
// @contact.email support@phonetics.md

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name token

package main

import (
	"flag"
	"learning_center_backend/internal/app"
	"learning_center_backend/internal/config"
	"learning_center_backend/pkg/database"
	"learning_center_backend/pkg/logger"
	"log"

	"go.uber.org/zap"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "run database migrations on startup even in release mode")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	if cfg.MigrateOnly {
		logger.InitLogger(cfg)
		defer logger.Close()
		if _, err := database.InitDB(&cfg.Database, true, cfg.Seed.File); err != nil {
			logger.Log.Fatal("Migration failed", zap.Error(err))
		}
		logger.Log.Info("Database migration finished")
		return
	}

	application := app.NewApp(cfg)
	defer logger.Close()

	application.Run()
}
