package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

// errorEnvelope mirrors the documented error body shape.
type errorEnvelope struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

var _ = ginkgo.Describe("AuthHandler", func() {
	var (
		handler  *Handler
		mockRepo *mockDirectoryRepository
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockDirectoryRepository()
		tokenGen = NewJWTTokenGenerator("handler-test-signing-secret-of-enough-length", 7*24*time.Hour, 72*time.Hour)
		handler = NewHandler(NewService(mockRepo, tokenGen, bcrypt.MinCost))
	})

	post := func(handlerFunc http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		gomega.Expect(json.NewEncoder(&buf).Encode(body)).To(gomega.Succeed())
		req := httptest.NewRequest(http.MethodPost, "/", &buf)
		w := httptest.NewRecorder()
		handlerFunc(w, req)
		return w
	}

	decodeError := func(w *httptest.ResponseRecorder) errorEnvelope {
		var envelope errorEnvelope
		gomega.Expect(json.NewDecoder(w.Body).Decode(&envelope)).To(gomega.Succeed())
		return envelope
	}

	ginkgo.Describe("Login", func() {
		ginkgo.It("should answer a wrong password with a coded unauthorized body", func() {
			// When
			w := post(handler.Login, map[string]string{
				"email":    "active@example.com",
				"password": "not_the_password",
			})

			// Then
			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			envelope := decodeError(w)
			gomega.Expect(envelope.Error.Type).To(gomega.Equal("UNAUTHORIZED"))
			gomega.Expect(envelope.Error.Code).To(gomega.Equal("INVALID_CREDENTIALS"))
			gomega.Expect(envelope.Error.Message).NotTo(gomega.BeEmpty())
		})

		ginkgo.It("should flag an invited account distinctly from bad credentials", func() {
			w := post(handler.Login, map[string]string{
				"email":    "invited@example.com",
				"password": "whatever",
			})

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(decodeError(w).Error.Code).To(gomega.Equal("ACCOUNT_NOT_ACTIVATED"))
		})

		ginkgo.It("should answer a missing password with a coded validation body", func() {
			w := post(handler.Login, map[string]string{
				"email": "active@example.com",
			})

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
			envelope := decodeError(w)
			gomega.Expect(envelope.Error.Type).To(gomega.Equal("VALIDATION_ERROR"))
			gomega.Expect(envelope.Error.Code).To(gomega.Equal("VALIDATION_FAILED"))
		})
	})

	ginkgo.Describe("SetupPassword", func() {
		ginkgo.It("should answer a garbage activation token with a coded body", func() {
			w := post(handler.SetupPassword, map[string]string{
				"token":    "not.a.real.token",
				"password": "long_enough",
			})

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusBadRequest))
			envelope := decodeError(w)
			gomega.Expect(envelope.Error.Type).To(gomega.Equal("VALIDATION_ERROR"))
			gomega.Expect(envelope.Error.Code).To(gomega.Equal("INVALID_ACTIVATION_TOKEN"))
		})

		ginkgo.It("should answer a removed account with a coded not-found body", func() {
			token, err := tokenGen.GenerateInviteToken("invited@example.com")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			delete(mockRepo.accounts, "invited@example.com")

			w := post(handler.SetupPassword, map[string]string{
				"token":    token,
				"password": "long_enough",
			})

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusNotFound))
			gomega.Expect(decodeError(w).Error.Code).To(gomega.Equal("USER_NOT_FOUND"))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		get := func(bearer string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if bearer != "" {
				req.Header.Set("Authorization", "Bearer "+bearer)
			}
			w := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(w, req)
			return w
		}

		ginkgo.It("should answer a missing token with a coded body", func() {
			w := get("")

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			envelope := decodeError(w)
			gomega.Expect(envelope.Error.Type).To(gomega.Equal("UNAUTHORIZED"))
			gomega.Expect(envelope.Error.Code).To(gomega.Equal("MISSING_TOKEN"))
		})

		ginkgo.It("should answer an expired token with a coded body", func() {
			expiredGen := NewJWTTokenGenerator("handler-test-signing-secret-of-enough-length", -time.Hour, -time.Hour)
			token, err := expiredGen.GenerateSessionToken("active@example.com")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			w := get(token)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(decodeError(w).Error.Code).To(gomega.Equal("TOKEN_EXPIRED"))
		})

		ginkgo.It("should answer an invite token with a coded body", func() {
			token, err := tokenGen.GenerateInviteToken("active@example.com")
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			w := get(token)

			gomega.Expect(w.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(decodeError(w).Error.Code).To(gomega.Equal("INVALID_TOKEN"))
		})
	})
})
