package dashboard

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/metadia/internal/dashboard"
	"github.com/MrJamesThe3rd/metadia/internal/http/api"
)

// Handler serves the computed views. Every endpoint takes an optional ?date= (YYYY-MM-DD) that
// stands in for today.
type Handler struct {
	svc *dashboard.Service
	now func() time.Time
}

func NewHandler(svc *dashboard.Service, now func() time.Time) *Handler {
	return &Handler{svc: svc, now: now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/cycle", h.cycle)
	r.Get("/occurrences", h.occurrences)
	r.Get("/summary", h.summary)
	r.Get("/goal", h.goal)
	r.Get("/goal/history", h.history)
	r.Get("/goal/forecast", h.forecast)
	r.Get("/savings", h.savings)
}

func (h *Handler) cycle(w http.ResponseWriter, r *http.Request) {
	d, err := api.QueryDate(r, "date", h.now)
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	api.JSON(w, http.StatusOK, h.svc.Cycle(d))
}

// occurrences defaults to the cycle containing today when start or end is missing.
func (h *Handler) occurrences(w http.ResponseWriter, r *http.Request) {
	today, err := api.QueryDate(r, "date", h.now)
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	p := h.svc.Cycle(today)

	q := r.URL.Query()
	if q.Get("start") != "" || q.Get("end") != "" {
		start, err := api.QueryDate(r, "start", h.now)
		if err != nil {
			api.BadRequest(w, err)
			return
		}

		end, err := api.QueryDate(r, "end", h.now)
		if err != nil {
			api.BadRequest(w, err)
			return
		}

		if end.Before(start) {
			api.BadRequest(w, errors.New("end must not be before start"))
			return
		}

		p.Start, p.End = start, end
	}

	api.JSON(w, http.StatusOK, h.svc.Occurrences(p.Start, p.End))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	d, err := api.QueryDate(r, "date", h.now)
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	api.JSON(w, http.StatusOK, h.svc.Summary(d))
}

func (h *Handler) goal(w http.ResponseWriter, r *http.Request) {
	d, err := api.QueryDate(r, "date", h.now)
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	api.JSON(w, http.StatusOK, h.svc.Goal(d))
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	d, err := api.QueryDate(r, "date", h.now)
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	api.JSON(w, http.StatusOK, h.svc.History(d))
}

// forecast reports the cycle containing ?cycle= as seen from ?date=.
func (h *Handler) forecast(w http.ResponseWriter, r *http.Request) {
	today, err := api.QueryDate(r, "date", h.now)
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	ref, err := api.QueryDate(r, "cycle", h.now)
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	api.JSON(w, http.StatusOK, h.svc.GoalFor(ref, today))
}

func (h *Handler) savings(w http.ResponseWriter, r *http.Request) {
	d, err := api.QueryDate(r, "date", h.now)
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	api.JSON(w, http.StatusOK, h.svc.Savings(d))
}
