package card

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/metadia/internal/card"
	"github.com/MrJamesThe3rd/metadia/internal/http/api"
)

type Handler struct {
	svc *card.Service
}

func NewHandler(svc *card.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type cardRequest struct {
	Name  string          `json:"name" validate:"required,notblank"`
	Color string          `json:"color"`
	Limit decimal.Decimal `json:"limit" validate:"gte=0"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := api.Decode(r, &req); err != nil {
		api.BadRequest(w, err)
		return
	}

	c, err := h.svc.Create(r.Context(), card.CreateParams{Name: req.Name, Color: req.Color, Limit: req.Limit})
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusCreated, c)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, cards)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req cardRequest
	if err := api.Decode(r, &req); err != nil {
		api.BadRequest(w, err)
		return
	}

	c := &card.CreditCard{ID: id, Name: req.Name, Color: req.Color, Limit: req.Limit}
	if err := h.svc.Update(r.Context(), c); err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, c)
}

type deleteResponse struct {
	DetachedObligations int `json:"detachedObligations"`
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	n, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, deleteResponse{DetachedObligations: n})
}
