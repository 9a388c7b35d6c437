package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/metadia/internal/card"
	"github.com/MrJamesThe3rd/metadia/internal/config"
	"github.com/MrJamesThe3rd/metadia/internal/dashboard"
	"github.com/MrJamesThe3rd/metadia/internal/database"
	"github.com/MrJamesThe3rd/metadia/internal/dataset"
	metadiaHttp "github.com/MrJamesThe3rd/metadia/internal/http"
	cardHandler "github.com/MrJamesThe3rd/metadia/internal/http/card"
	dashboardHandler "github.com/MrJamesThe3rd/metadia/internal/http/dashboard"
	matchingHandler "github.com/MrJamesThe3rd/metadia/internal/http/matching"
	obligationHandler "github.com/MrJamesThe3rd/metadia/internal/http/obligation"
	settingsHandler "github.com/MrJamesThe3rd/metadia/internal/http/settings"
	statementHandler "github.com/MrJamesThe3rd/metadia/internal/http/statement"
	txHandler "github.com/MrJamesThe3rd/metadia/internal/http/transaction"
	"github.com/MrJamesThe3rd/metadia/internal/importer"
	"github.com/MrJamesThe3rd/metadia/internal/ledger"
	"github.com/MrJamesThe3rd/metadia/internal/logging"
	"github.com/MrJamesThe3rd/metadia/internal/matching"
	"github.com/MrJamesThe3rd/metadia/internal/obligation"
	"github.com/MrJamesThe3rd/metadia/internal/settings"
	"github.com/MrJamesThe3rd/metadia/internal/state"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DB.Driver, cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := state.Open(ctx, dataset.New(db, cfg.DB.Driver))
	if err != nil {
		slog.Error("failed to load data", "error", err)
		os.Exit(1)
	}

	var (
		transactionService = transaction.NewService(store)
		obligationService  = obligation.NewService(store)
		cardService        = card.NewService(store)
		settingsService    = settings.NewService(store)
		matchingService    = matching.NewService(store)
		importService      = importer.NewService()
		dashboardService   = dashboard.NewService(store, ledger.Options{FuelKeyword: cfg.App.FuelKeyword})
	)

	router := metadiaHttp.New(metadiaHttp.Handlers{
		Transactions: txHandler.NewHandler(transactionService),
		Obligations:  obligationHandler.NewHandler(obligationService),
		Cards:        cardHandler.NewHandler(cardService),
		Settings:     settingsHandler.NewHandler(settingsService),
		Dashboard:    dashboardHandler.NewHandler(dashboardService, time.Now),
		Import:       statementHandler.NewHandler(importService, transactionService, matchingService),
		Matching:     matchingHandler.NewHandler(matchingService),
	}, cfg.App.CORSOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "driver", cfg.DB.Driver)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
