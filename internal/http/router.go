package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/metadia/internal/http/card"
	"github.com/MrJamesThe3rd/metadia/internal/http/dashboard"
	"github.com/MrJamesThe3rd/metadia/internal/http/matching"
	"github.com/MrJamesThe3rd/metadia/internal/http/obligation"
	"github.com/MrJamesThe3rd/metadia/internal/http/settings"
	"github.com/MrJamesThe3rd/metadia/internal/http/statement"
	"github.com/MrJamesThe3rd/metadia/internal/http/transaction"
)

type Handlers struct {
	Transactions *transaction.Handler
	Obligations  *obligation.Handler
	Cards        *card.Handler
	Settings     *settings.Handler
	Dashboard    *dashboard.Handler
	Import       *statement.Handler
	Matching     *matching.Handler
}

func New(h Handlers, corsOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/obligations", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Obligations.Routes(r)
		})

		r.Route("/cards", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Cards.Routes(r)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Settings.Routes(r)
		})

		r.Route("/import", h.Import.Routes)

		r.Route("/matching", func(r chi.Router) {
			h.Matching.Routes(r)
		})

		r.Group(h.Dashboard.Routes)
	})

	return router
}
