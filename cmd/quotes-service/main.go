package main

import (
	"fmt"
	"os"

	"github.com/hsadv/quotes-service/internal/auth"
	"github.com/hsadv/quotes-service/internal/config"
	"github.com/hsadv/quotes-service/internal/db"
	"github.com/hsadv/quotes-service/internal/email"
	"github.com/hsadv/quotes-service/internal/excel"
	httphandler "github.com/hsadv/quotes-service/internal/http"
	"github.com/hsadv/quotes-service/internal/http/middleware"
	"github.com/hsadv/quotes-service/internal/logger"
	"github.com/hsadv/quotes-service/internal/notify"
	"github.com/hsadv/quotes-service/internal/notion"
	"github.com/hsadv/quotes-service/internal/pdf"
	"github.com/hsadv/quotes-service/internal/repository"
	"github.com/hsadv/quotes-service/internal/security"
	"github.com/hsadv/quotes-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	quoteRepo := repository.NewQuoteRepository(database)
	notifier := notify.NewClient(cfg.Notify.GatewayURL, cfg.Notify.APIKey, cfg.ClientTimeout, log)
	crm := notion.NewClient(cfg.Notion.BaseURL, cfg.Notion.APIKey, cfg.Notion.DatabaseID, cfg.ClientTimeout, log)
	mailer := email.NewClient(cfg.Email.GatewayURL, cfg.Email.APIKey, cfg.ClientTimeout, log)

	quoteService := service.NewQuoteService(
		quoteRepo,
		notifier,
		crm,
		mailer,
		excel.NewGenerator(),
		pdf.NewGenerator(),
		cfg,
		log,
	)

	monitor := security.NewMonitor(log)
	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)
	authMiddleware := middleware.Auth(tokenParser, monitor)
	submitLimiter := middleware.SubmitRateLimit(
		middleware.NewRateLimiter(cfg.RateLimit.SubmitMax, cfg.RateLimit.SubmitWindow),
		monitor,
	)

	handler := httphandler.NewHandler(quoteService, monitor, log)
	router := httphandler.NewRouter(handler, authMiddleware, submitLimiter, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting quotes service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
