package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/shiftwise/planning-api/internal/auth"
	"github.com/shiftwise/planning-api/internal/establishment"
	"github.com/shiftwise/planning-api/internal/shift"
	"github.com/shiftwise/planning-api/internal/template"
	"github.com/shiftwise/planning-api/internal/transport/middleware"
	"github.com/shiftwise/planning-api/internal/transport/swagger"
	"github.com/shiftwise/planning-api/internal/user"
)

type Handlers struct {
	Auth          *auth.Handler
	User          *user.Handler
	Establishment *establishment.Handler
	Shift         *shift.Handler
	Template      *template.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// OpenAPI spec + Swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Public auth routes: login, and password setup via invite token
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/setup-password", h.Auth.SetupPassword)
		})

		// Everything else requires a session token
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Route("/users", func(ur chi.Router) {
				ur.Post("/", h.User.Invite)
				ur.Get("/", h.User.ListUsers)
				ur.Get("/me", h.User.GetCurrentUser)
				ur.Get("/{id}", h.User.GetUser)
				ur.Put("/{id}", h.User.UpdateUser)
			})

			pr.Route("/establishments", func(er chi.Router) {
				er.Post("/", h.Establishment.Create)
				er.Get("/", h.Establishment.List)
				er.Get("/{id}", h.Establishment.Get)
			})

			pr.Route("/shifts", func(sr chi.Router) {
				sr.Post("/", h.Shift.Create)
				sr.Get("/", h.Shift.List)
				sr.Put("/{id}", h.Shift.Update)
				sr.Delete("/{id}", h.Shift.Delete)
			})

			pr.Route("/shift-templates", func(tr chi.Router) {
				tr.Post("/", h.Template.Create)
				tr.Get("/", h.Template.List)
				tr.Delete("/{id}", h.Template.Delete)
			})
		})
	})
}
