package settings

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/goal"
	"github.com/MrJamesThe3rd/metadia/internal/http/api"
	"github.com/MrJamesThe3rd/metadia/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
	r.Post("/days-off/{date}", h.toggleDayOff)
	r.Post("/savings/days/{date}", h.toggleSavingsDay)
	r.Put("/savings/adjustments/{date}", h.setAdjustment)
	r.Put("/savings/withdrawals/{date}", h.setWithdrawal)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Get(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, s)
}

type updateRequest struct {
	StartDayOfMonth   int             `json:"startDayOfMonth" validate:"min=1,max=31"`
	EndDayOfMonth     *int            `json:"endDayOfMonth,omitempty" validate:"omitempty,min=1,max=31"`
	DailySavingTarget decimal.Decimal `json:"dailySavingTarget" validate:"gte=0"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := api.Decode(r, &req); err != nil {
		api.BadRequest(w, err)
		return
	}

	s, err := h.svc.Update(r.Context(), settings.UpdateParams{
		StartDayOfMonth:   req.StartDayOfMonth,
		EndDayOfMonth:     req.EndDayOfMonth,
		DailySavingTarget: req.DailySavingTarget,
	})
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, s)
}

func (h *Handler) toggleDayOff(w http.ResponseWriter, r *http.Request) {
	h.onDate(w, r, h.svc.ToggleDayOff)
}

func (h *Handler) toggleSavingsDay(w http.ResponseWriter, r *http.Request) {
	h.onDate(w, r, h.svc.ToggleSavingsDay)
}

type adjustmentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type withdrawalRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
}

func (h *Handler) setAdjustment(w http.ResponseWriter, r *http.Request) {
	var req adjustmentRequest
	if err := api.Decode(r, &req); err != nil {
		api.BadRequest(w, err)
		return
	}

	h.onDate(w, r, func(ctx context.Context, d calendar.Date) (goal.Settings, error) {
		return h.svc.SetAdjustment(ctx, d, req.Amount)
	})
}

func (h *Handler) setWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req withdrawalRequest
	if err := api.Decode(r, &req); err != nil {
		api.BadRequest(w, err)
		return
	}

	h.onDate(w, r, func(ctx context.Context, d calendar.Date) (goal.Settings, error) {
		return h.svc.SetWithdrawal(ctx, d, req.Amount)
	})
}

func (h *Handler) onDate(w http.ResponseWriter, r *http.Request, fn func(context.Context, calendar.Date) (goal.Settings, error)) {
	date, err := api.DateParam(r, "date")
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	s, err := fn(r.Context(), date)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, s)
}
