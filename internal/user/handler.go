package user

import (
	"context"
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
	Invite(ctx context.Context, actor *auth.Actor, dto InviteUserDTO) (*User, error)
	GetByID(actor *auth.Actor, id int64) (*User, error)
	List(actor *auth.Actor, establishmentID *int64, limit, offset int) ([]*User, error)
	Update(actor *auth.Actor, id int64, dto UpdateUserDTO) (*User, error)
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

// Invite handles POST /users
func (h *Handler) Invite(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteUnauthorized(w)
		return
	}

	var dto InviteUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteValidationError(w, "invalid request body")
		return
	}

	u, err := h.Service.Invite(r.Context(), actor, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, u)
}

// GetCurrentUser handles GET /users/me
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteUnauthorized(w)
		return
	}

	u, err := h.Service.GetByID(actor, actor.ID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// GetUser handles GET /users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteUnauthorized(w)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteValidationError(w, "invalid user id")
		return
	}

	u, err := h.Service.GetByID(actor, id)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

// ListUsers handles GET /users?establishment_id=&limit=&offset=
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
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

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	users, err := h.Service.List(actor, establishmentID, limit, offset)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ListUsersResponse{Users: users})
}

// UpdateUser handles PUT /users/{id}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		h.WriteUnauthorized(w)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteValidationError(w, "invalid user id")
		return
	}

	var dto UpdateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteValidationError(w, "invalid request body")
		return
	}

	u, err := h.Service.Update(actor, id, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}
