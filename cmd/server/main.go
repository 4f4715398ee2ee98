package main

import (
	"context"
	"log"

	"github.com/labstack/echo/v4"
	"github.com/nailit-app/backend/internal/router"
	"github.com/nailit-app/backend/pkg/config"
	"github.com/nailit-app/backend/pkg/mailer"
	"github.com/nailit-app/backend/pkg/push"
	"github.com/nailit-app/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := config.InitDB(cfg.PostgresConnStr)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.CloseDB()

	ctx := context.Background()

	// Push delivery is best-effort; a missing credentials file disables it
	var sender push.Sender
	if fcm, err := push.NewFCMSender(ctx, cfg.FirebaseCredentialsPath); err != nil {
		log.Printf("Push delivery disabled: %v", err)
	} else {
		sender = fcm
	}

	// Same for reset-code email
	var m mailer.Mailer
	if cfg.SESFromAddress == "" {
		log.Println("SES_EMAIL not set, reset-code email disabled.")
	} else if ses, err := mailer.NewSESMailer(ctx, cfg.AWSRegion, cfg.SESFromAddress); err != nil {
		log.Printf("Reset-code email disabled: %v", err)
	} else {
		m = ses
	}

	registry := push.NewRegistry()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres, registry, sender, m, cfg.JWTSecret)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
