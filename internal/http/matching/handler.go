package matching

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/metadia/internal/http/api"
	"github.com/MrJamesThe3rd/metadia/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	RawDescription       string `json:"rawDescription"`
	PreferredDescription string `json:"preferredDescription"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	rawDesc := r.URL.Query().Get("raw_description")
	if rawDesc == "" {
		http.Error(w, "raw_description query parameter is required", http.StatusBadRequest)
		return
	}

	preferred, err := h.svc.Suggest(r.Context(), rawDesc)
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, suggestResponse{
		RawDescription:       rawDesc,
		PreferredDescription: preferred,
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.svc.List(r.Context())
	if err != nil {
		api.Error(w, err)
		return
	}

	api.JSON(w, http.StatusOK, mappings)
}

type learnRequest struct {
	RawPattern           string `json:"rawPattern" validate:"required,notblank"`
	PreferredDescription string `json:"preferredDescription" validate:"required,notblank"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := api.Decode(r, &req); err != nil {
		api.BadRequest(w, err)
		return
	}

	if err := h.svc.Learn(r.Context(), req.RawPattern, req.PreferredDescription); err != nil {
		api.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
