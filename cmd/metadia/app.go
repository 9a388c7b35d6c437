package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/config"
	"github.com/MrJamesThe3rd/metadia/internal/dashboard"
	"github.com/MrJamesThe3rd/metadia/internal/database"
	"github.com/MrJamesThe3rd/metadia/internal/dataset"
	"github.com/MrJamesThe3rd/metadia/internal/importer"
	"github.com/MrJamesThe3rd/metadia/internal/ledger"
	"github.com/MrJamesThe3rd/metadia/internal/logging"
	"github.com/MrJamesThe3rd/metadia/internal/matching"
	"github.com/MrJamesThe3rd/metadia/internal/state"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

// app carries the services the commands share. Tests hand in a prebuilt store; otherwise open
// loads config and the database.
type app struct {
	now    func() time.Time
	date   string
	asJSON bool

	store *state.Store
	db    *sql.DB
	opts  ledger.Options

	transactions *transaction.Service
	matching     *matching.Service
	importer     *importer.Service
	dashboard    *dashboard.Service
}

func (a *app) open(ctx context.Context) error {
	if a.store == nil {
		if err := a.openStore(ctx); err != nil {
			return err
		}
	}

	a.transactions = transaction.NewService(a.store)
	a.matching = matching.NewService(a.store)
	a.importer = importer.NewService()
	a.dashboard = dashboard.NewService(a.store, a.opts)

	return nil
}

func (a *app) openStore(ctx context.Context) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logging.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return err
	}

	db, err := database.New(cfg.DB.Driver, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	store, err := state.Open(ctx, dataset.New(db, cfg.DB.Driver))
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("loading data: %w", err)
	}

	a.db = db
	a.store = store
	a.opts = ledger.Options{FuelKeyword: cfg.App.FuelKeyword}

	return nil
}

func (a *app) close() error {
	if a.db == nil {
		return nil
	}

	return a.db.Close()
}

// today resolves --date, falling back to the clock.
func (a *app) today() (calendar.Date, error) {
	if a.date == "" {
		return calendar.Today(a.now()), nil
	}

	d, err := calendar.Parse(a.date)
	if err != nil {
		return calendar.Date{}, fmt.Errorf("invalid --date: %w", err)
	}

	return d, nil
}

// print writes v as indented JSON when --json is set, otherwise runs text.
func (a *app) print(w io.Writer, v any, text func(io.Writer)) error {
	if !a.asJSON {
		text(w)
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
