package v1_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-backend/config"
	v1 "portfolio-backend/internal/delivery/http/v1"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/email"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockContactUsecase struct {
	mock.Mock
}

func (m *MockContactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) (*domain.ContactResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContactResult), args.Error(1)
}

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Name() string { return "mock" }

func (m *MockTransport) Send(ctx context.Context, msg email.Message) (string, error) {
	args := m.Called(ctx, msg)
	return args.String(0), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		Port:         "3001",
		ClientOrigin: "http://localhost:5173",
		Mail: config.MailConfig{
			Account:   "owner@example.com",
			Password:  "secret",
			FromName:  "Portfolio",
			Transport: config.TransportSMTP,
		},
	}
}

func newRouter(contactUC domain.ContactUsecase, cfg *config.Config) *gin.Engine {
	return v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  usecase.NewHealthUsecase(),
		Config:    cfg,
	})
}

func postContact(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r := newRouter(new(MockContactUsecase), testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestHealthIgnoresMailConfiguration(t *testing.T) {
	cfg := testConfig()
	cfg.Mail = config.MailConfig{}
	r := newRouter(new(MockContactUsecase), cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestSubmitContactErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		ucErr    error
		wantCode int
		wantBody string
	}{
		{"missing fields", domain.ErrMissingFields, http.StatusBadRequest, `{"error":"Missing required fields."}`},
		{"too long", domain.ErrMessageTooLong, http.StatusBadRequest, `{"error":"Message too long."}`},
		{"not configured", domain.ErrNotConfigured, http.StatusInternalServerError, `{"error":"Server configuration error."}`},
		{"transport unavailable", domain.ErrTransportUnavailable, http.StatusInternalServerError, `{"error":"Failed to send email."}`},
		{"dispatch failed", &domain.DispatchError{Recipient: "sender", Err: errors.New("535 auth secret=hunter2")}, http.StatusInternalServerError, `{"error":"Failed to send email."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockContactUsecase)
			uc.On("SendContactMessage", mock.Anything, mock.Anything).Return(nil, tt.ucErr).Once()
			r := newRouter(uc, testConfig())

			w := postContact(r, `{"name":"Ana","email":"ana@x.com","message":"Hi!"}`)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.NotContains(t, w.Body.String(), "hunter2")
		})
	}
}

func TestSubmitContactSuccess(t *testing.T) {
	uc := new(MockContactUsecase)
	uc.On("SendContactMessage", mock.Anything, &domain.ContactRequest{Name: "Ana", Email: "ana@x.com", Message: "Hi!"}).
		Return(&domain.ContactResult{ID: "<abc@example.com>"}, nil).Once()
	r := newRouter(uc, testConfig())

	w := postContact(r, `{"name":"Ana","email":"ana@x.com","message":"Hi!"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"id":"<abc@example.com>"}`, w.Body.String())
	uc.AssertExpectations(t)
}

func TestSubmitContactUnreadableBody(t *testing.T) {
	for _, body := range []string{``, `not json`, `{"name":123,"email":"a@x.com","message":"hi"}`} {
		uc := new(MockContactUsecase)
		r := newRouter(uc, testConfig())

		w := postContact(r, body)

		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Missing required fields."}`, w.Body.String())
		uc.AssertNotCalled(t, "SendContactMessage", mock.Anything, mock.Anything)
	}
}

func TestSubmitContactEndToEnd(t *testing.T) {
	t.Run("Should send one confirmation and return its id", func(t *testing.T) {
		transport := new(MockTransport)
		transport.On("Send", mock.Anything, mock.MatchedBy(func(msg email.Message) bool {
			return msg.To[0] == "ana@x.com"
		})).Return("<generated@example.com>", nil).Once()

		cfg := testConfig()
		r := newRouter(usecase.NewContactUsecase(cfg.Mail, transport, nil, nil), cfg)

		w := postContact(r, `{"name":"Ana","email":"ana@x.com","message":"Hi!"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"id":"<generated@example.com>"}`, w.Body.String())
		transport.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("Should reject blank and over-long submissions", func(t *testing.T) {
		transport := new(MockTransport)
		cfg := testConfig()
		r := newRouter(usecase.NewContactUsecase(cfg.Mail, transport, nil, nil), cfg)

		w := postContact(r, `{"name":"   ","email":"ana@x.com","message":"Hi!"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing required fields."}`, w.Body.String())

		w = postContact(r, `{"name":"Ana","email":"ana@x.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Missing required fields."}`, w.Body.String())

		w = postContact(r, `{"name":"Ana","email":"ana@x.com","message":"`+strings.Repeat("a", 1001)+`"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Message too long."}`, w.Body.String())

		transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})

	t.Run("Should report configuration errors without sending", func(t *testing.T) {
		transport := new(MockTransport)
		cfg := testConfig()
		cfg.Mail.Password = ""
		r := newRouter(usecase.NewContactUsecase(cfg.Mail, transport, nil, nil), cfg)

		w := postContact(r, `{"name":"Ana","email":"ana@x.com","message":"Hi!"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"Server configuration error."}`, w.Body.String())
		transport.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestCORS(t *testing.T) {
	r := newRouter(new(MockContactUsecase), testConfig())

	t.Run("Should answer preflight from the client origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "POST")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("Should refuse preflight from other origins", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})
}

func TestRequestIDPropagation(t *testing.T) {
	r := newRouter(new(MockContactUsecase), testConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "client-trace-0001")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "client-trace-0001", w.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "bad id\twith junk")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "bad id\twith junk", w.Header().Get("X-Request-ID"))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

func TestSwaggerMountedOnlyWhenEnabled(t *testing.T) {
	r := newRouter(new(MockContactUsecase), testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/swagger/index.html", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	cfg := testConfig()
	cfg.SwaggerEnabled = true
	r = newRouter(new(MockContactUsecase), cfg)
	req = httptest.NewRequest(http.MethodGet, "/api/swagger/index.html", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
