package establishment

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
	Create(actor *auth.Actor, dto CreateEstablishmentDTO) (*Establishment, error)
	GetByID(id int64) (*Establishment, error)
	List(limit, offset int) ([]*Establishment, error)
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

// Create handles POST /establishments
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteUnauthorized(w)
		return
	}

	var dto CreateEstablishmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteValidationError(w, "invalid request body")
		return
	}

	e, err := h.Service.Create(actor, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, e)
}

// Get handles GET /establishments/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteValidationError(w, "invalid establishment id")
		return
	}

	e, err := h.Service.GetByID(id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

// List handles GET /establishments
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	establishments, err := h.Service.List(limit, offset)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListEstablishmentsResponse{Establishments: establishments})
}
