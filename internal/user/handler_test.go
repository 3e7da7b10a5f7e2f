package user_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shiftwise/planning-api/internal/auth"
	"github.com/shiftwise/planning-api/internal/user"
	userPostgres "github.com/shiftwise/planning-api/internal/user/postgres"
)

var _ = Describe("User Handler Integration", func() {
	var (
		db        *gorm.DB
		service   *user.Service
		handler   *user.Handler
		router    *chi.Mux
		deliverer *captureDeliverer
		admin     *auth.Actor
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&user.User{})
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := userPostgres.NewUserRepository(db)
		deliverer = &captureDeliverer{}
		service = user.NewService(repo, &stubTokenIssuer{}, deliverer, "https://planning.example.com/setup-password", slogger)
		handler = user.NewHandler(service)

		admin = &auth.Actor{ID: 1, Email: "admin@example.com", Role: auth.RoleAdmin}

		router = chi.NewRouter()
		router.Route("/users", func(r chi.Router) {
			r.Post("/", handler.Invite)
			r.Get("/", handler.ListUsers)
			r.Get("/me", handler.GetCurrentUser)
			r.Get("/{id}", handler.GetUser)
			r.Put("/{id}", handler.UpdateUser)
		})
	})

	doAs := func(actor *auth.Actor, method, target string, body interface{}) *httptest.ResponseRecorder {
		var reader *bytes.Buffer
		if body != nil {
			raw, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewBuffer(raw)
		} else {
			reader = bytes.NewBuffer(nil)
		}

		req := httptest.NewRequest(method, target, reader)
		if actor != nil {
			req = req.WithContext(auth.ContextWithActor(req.Context(), actor))
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("should invite a user and return 201 without exposing a password hash", func() {
		w := doAs(admin, http.MethodPost, "/users", map[string]interface{}{
			"email":     "newhire@example.com",
			"full_name": "New Hire",
		})

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var created user.User
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.ID).To(BeNumerically(">", 0))
		Expect(created.Email).To(Equal("newhire@example.com"))

		// The JSON shape must never carry the hash field
		Expect(w.Body.String()).NotTo(ContainSubstring("password_hash"))
		Expect(deliverer.recipients).To(ConsistOf("newhire@example.com"))
	})

	It("should return 409 when inviting a taken email", func() {
		first := doAs(admin, http.MethodPost, "/users", map[string]interface{}{
			"email": "dup@example.com", "full_name": "First",
		})
		Expect(first.Code).To(Equal(http.StatusCreated))

		second := doAs(admin, http.MethodPost, "/users", map[string]interface{}{
			"email": "dup@example.com", "full_name": "Second",
		})
		Expect(second.Code).To(Equal(http.StatusConflict))
	})

	It("should return 400 for a malformed body", func() {
		req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString("{not json"))
		req = req.WithContext(auth.ContextWithActor(req.Context(), admin))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should return 401 when no actor is attached", func() {
		w := doAs(nil, http.MethodGet, "/users", nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should serve the current profile on /users/me", func() {
		w := doAs(admin, http.MethodPost, "/users", map[string]interface{}{
			"email": "self@example.com", "full_name": "Self", "role": "manager",
		})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var created user.User
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		selfActor := &auth.Actor{ID: created.ID, Email: created.Email, Role: created.Role, EstablishmentID: created.EstablishmentID}
		me := doAs(selfActor, http.MethodGet, "/users/me", nil)

		Expect(me.Code).To(Equal(http.StatusOK))
		var profile user.User
		Expect(json.NewDecoder(me.Body).Decode(&profile)).To(Succeed())
		Expect(profile.Email).To(Equal("self@example.com"))
	})

	It("should apply a partial update and keep absent fields", func() {
		w := doAs(admin, http.MethodPost, "/users", map[string]interface{}{
			"email": "worker@example.com", "full_name": "Worker", "hourly_rate": 11.5,
		})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var created user.User
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		update := doAs(admin, http.MethodPut, "/users/"+idString(created.ID), map[string]interface{}{
			"full_name": "Worker Renamed",
		})

		Expect(update.Code).To(Equal(http.StatusOK))
		var updated user.User
		Expect(json.NewDecoder(update.Body).Decode(&updated)).To(Succeed())
		Expect(updated.FullName).To(Equal("Worker Renamed"))
		Expect(updated.Email).To(Equal("worker@example.com"))
		Expect(updated.HourlyRate).To(Equal(11.5))
	})

	It("should return 404 for an absent user", func() {
		w := doAs(admin, http.MethodGet, "/users/99999", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should return 400 for a non-numeric id", func() {
		w := doAs(admin, http.MethodGet, "/users/abc", nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("should scope listing to the establishment filter", func() {
		for _, seed := range []map[string]interface{}{
			{"email": "e1@example.com", "full_name": "E1", "establishment_id": 1},
			{"email": "e2@example.com", "full_name": "E2", "establishment_id": 1},
			{"email": "e3@example.com", "full_name": "E3", "establishment_id": 2},
		} {
			w := doAs(admin, http.MethodPost, "/users", seed)
			Expect(w.Code).To(Equal(http.StatusCreated))
		}

		w := doAs(admin, http.MethodGet, "/users?establishment_id=1", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp user.ListUsersResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Users).To(HaveLen(2))
	})
})

func idString(id int64) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
