package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shiftwise/planning-api/internal"
	"github.com/shiftwise/planning-api/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteValidationError writes a coded 400 body for malformed input the
// services never saw.
func (h *BaseHandler) WriteValidationError(w http.ResponseWriter, message string) {
	h.WriteAppError(w, internal.NewValidationError(message, internal.ErrCodeValidationFailed))
}

// WriteUnauthorized writes a coded 401 body for requests with no resolved actor.
func (h *BaseHandler) WriteUnauthorized(w http.ResponseWriter) {
	h.WriteAppError(w, internal.ErrMissingToken)
}

// WriteAppError maps an error to its HTTP shape. Unknown errors become an
// opaque 500; internal detail never reaches the caller.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		status, body := appErr.ToHTTPResponse()
		if status >= http.StatusInternalServerError {
			h.Logger.Error("request failed", "error", appErr.Error())
		}
		h.WriteJSON(w, status, body)
		return
	}

	h.Logger.Error("unhandled error", "error", err)
	status, body := internal.NewInternalError("internal server error", nil).ToHTTPResponse()
	h.WriteJSON(w, status, body)
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
