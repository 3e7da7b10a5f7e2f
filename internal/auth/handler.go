package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shiftwise/planning-api/internal"
	"github.com/shiftwise/planning-api/internal/transport"
	"github.com/shiftwise/planning-api/pkg/logger"
)

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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteValidationError(w, "invalid request body")
		return
	}

	tokens, err := h.Service.Login(dto)
	if err != nil {
		h.Logger.Warn("login failed", "email", dto.Email, "error", err)
		h.WriteAppError(w, loginError(err))
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) SetupPassword(w http.ResponseWriter, r *http.Request) {
	var dto SetupPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteValidationError(w, "invalid request body")
		return
	}

	if err := h.Service.SetupPassword(dto); err != nil {
		h.Logger.Warn("password setup failed", "error", err)
		h.WriteAppError(w, setupPasswordError(err))
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "password set successfully, you can now log in",
	})
}

// loginError translates the package sentinels into the error taxonomy so the
// response body carries a reason code.
func loginError(err error) error {
	switch err {
	case ErrInvalidCredentials:
		return internal.ErrInvalidCredentials
	case ErrNotActivated:
		return internal.ErrAccountNotActivated
	}
	if _, ok := err.(ValidationError); ok {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	return internal.NewInternalError("internal server error", err)
}

func setupPasswordError(err error) error {
	switch err {
	case ErrInvalidToken, ErrTokenExpired:
		return internal.ErrInvalidActivationToken
	case ErrAccountNotFound:
		return internal.ErrUserNotFound
	}
	if _, ok := err.(ValidationError); ok {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	return internal.NewInternalError("internal server error", err)
}

// AuthMiddleware resolves the bearer token into an actor and stores it in the
// request context. Invite tokens never pass.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteAppError(w, internal.ErrMissingToken)
			return
		}

		actor, err := h.Service.Authenticate(token)
		if err != nil {
			h.Logger.Warn("token authentication failed", "error", err)
			if err == ErrTokenExpired {
				h.WriteAppError(w, internal.ErrTokenExpired)
			} else {
				h.WriteAppError(w, internal.ErrInvalidToken)
			}
			return
		}

		ctx := ContextWithActor(r.Context(), actor)
		ctx = logger.With(ctx, "actor_id", actor.ID, "actor_role", string(actor.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
