package obligation

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/calendar"
	"github.com/MrJamesThe3rd/metadia/internal/card"
	"github.com/MrJamesThe3rd/metadia/internal/http/api"
	"github.com/MrJamesThe3rd/metadia/internal/obligation"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

type Handler struct {
	svc *obligation.Service
}

func NewHandler(svc *obligation.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/paid/{date}", h.togglePaid)
	r.Post("/{id}/excluded/{date}", h.toggleExcluded)
}

type obligationRequest struct {
	Title        string                `json:"title" validate:"required,notblank"`
	Category     string                `json:"category"`
	Amount       decimal.Decimal       `json:"amount" validate:"gte=0"`
	Type         transaction.Type      `json:"type" validate:"required,oneof=income expense"`
	CardID       *uuid.UUID            `json:"cardId,omitempty"`
	Recurrence   obligation.Recurrence `json:"recurrence" validate:"required,oneof=monthly installments single"`
	StartDate    calendar.Date         `json:"startDate" validate:"required"`
	Installments *int                  `json:"installments,omitempty" validate:"required_if=Recurrence installments,omitempty,gte=1"`
}

func (req obligationRequest) params() obligation.CreateParams {
	p := obligation.CreateParams{
		Title:      req.Title,
		Category:   req.Category,
		Amount:     req.Amount,
		Type:       req.Type,
		CardID:     req.CardID,
		Recurrence: req.Recurrence,
		StartDate:  req.StartDate,
	}

	if req.Recurrence == obligation.RecurrenceInstallments {
		p.Installments = req.Installments
	}

	return p
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req obligationRequest
	if err := api.Decode(r, &req); err != nil {
		api.BadRequest(w, err)
		return
	}

	o, err := h.svc.Create(r.Context(), req.params())
	if err != nil {
		writeSaveError(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, o)
}

// writeSaveError answers an unknown card id as a bad request rather than a missing obligation.
func writeSaveError(w http.ResponseWriter, err error) {
	if errors.Is(err, card.ErrNotFound) {
		api.BadRequest(w, err)
		return
	}

	api.Error(w, err)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	obligations, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, obligations)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	o, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, o)
}

// update replaces the template fields. Paid and excluded marks are kept.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req obligationRequest
	if err := api.Decode(r, &req); err != nil {
		api.BadRequest(w, err)
		return
	}

	cur, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	p := req.params()
	cur.Title = p.Title
	cur.Category = p.Category
	cur.Amount = p.Amount
	cur.Type = p.Type
	cur.CardID = p.CardID
	cur.Recurrence = p.Recurrence
	cur.StartDate = p.StartDate
	cur.Installments = p.Installments

	if err := h.svc.Update(r.Context(), cur); err != nil {
		writeSaveError(w, err)
		return
	}

	api.JSON(w, http.StatusOK, cur)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		api.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) togglePaid(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.svc.TogglePaid)
}

func (h *Handler) toggleExcluded(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.svc.ToggleExcluded)
}

type toggleFunc func(ctx context.Context, id uuid.UUID, date calendar.Date) (*obligation.Obligation, error)

func (h *Handler) toggle(w http.ResponseWriter, r *http.Request, fn toggleFunc) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	date, err := api.DateParam(r, "date")
	if err != nil {
		api.BadRequest(w, err)
		return
	}

	o, err := fn(r.Context(), id, date)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, o)
}
