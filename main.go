package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"dialoguebot/internal/config"
	"dialoguebot/internal/repository"
	"dialoguebot/internal/server"
	"dialoguebot/internal/service"
	"dialoguebot/internal/session"
	"dialoguebot/internal/sheets"
	"dialoguebot/internal/telegram_bot"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, relying on the environment")
	}

	// Load configuration
	cfgPath := "configs/config.yml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The shared sheet is the system of record
	store, err := sheets.NewClient(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName, logger,
		sheets.ClientOptionsFromEnv(cfg.Sheets.CredentialsFile)...)
	if err != nil {
		logger.Fatal("Failed to connect to Google Sheets", zap.Error(err))
	}

	repo := repository.NewDialogueRepository(store, logger)
	sessions := session.NewStore(time.Duration(cfg.Session.TTLMinutes) * time.Minute)

	consentSvc := service.NewConsentService(repo, logger)
	submissionSvc := service.NewSubmissionService(repo, sessions, logger)
	annotationSvc := service.NewAnnotationService(repo, sessions, cfg.Roles.Annotators, logger)
	reviewSvc := service.NewReviewService(repo, sessions, cfg.Roles.Reviewers, logger)

	bot, err := telegram_bot.NewBot(cfg.Telegram.BotToken, consentSvc, submissionSvc, annotationSvc, reviewSvc, logger)
	if err != nil {
		logger.Fatal("Failed to initialize Telegram bot", zap.Error(err))
	}

	// Run Telegram bot in a goroutine
	go func() {
		if err := bot.Start(ctx); err != nil {
			logger.Error("Telegram bot failed", zap.Error(err))
		}
	}()

	// Run the admin server in a goroutine
	srv := server.NewServer(cfg, repo, logger)
	go srv.Run(cfg.Server.Port)

	<-ctx.Done()
	logger.Info("Application stopped.")
}
