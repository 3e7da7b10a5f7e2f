package shift

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/shiftwise/planning-api/internal/auth"
	"github.com/shiftwise/planning-api/internal/transport"
	"github.com/shiftwise/planning-api/pkg/logger"
)

type ServiceAPI interface {
	Create(actor *auth.Actor, dto CreateShiftDTO) (*Shift, error)
	Update(actor *auth.Actor, id int64, dto UpdateShiftDTO) (*Shift, error)
	Delete(actor *auth.Actor, id int64) error
	List(actor *auth.Actor, establishmentID *int64) ([]*Shift, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// Create handles POST /shifts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteUnauthorized(w)
		return
	}

	var dto CreateShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteValidationError(w, "invalid request body")
		return
	}

	sh, err := h.Service.Create(actor, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, sh)
}

// Update handles PUT /shifts/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteUnauthorized(w)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteValidationError(w, "invalid shift id")
		return
	}

	var dto UpdateShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteValidationError(w, "invalid request body")
		return
	}

	sh, err := h.Service.Update(actor, id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, sh)
}

// Delete handles DELETE /shifts/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteUnauthorized(w)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteValidationError(w, "invalid shift id")
		return
	}

	if err := h.Service.Delete(actor, id); err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "shift deleted"})
}

// List handles GET /shifts?establishment_id=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteUnauthorized(w)
		return
	}

	var establishmentID *int64
	if raw := r.URL.Query().Get("establishment_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteValidationError(w, "invalid establishment_id")
			return
		}
		establishmentID = &id
	}

	shifts, err := h.Service.List(actor, establishmentID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListShiftsResponse{Shifts: shifts})
}
