package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rishisameer/portfolio-contact-api/config"
	"github.com/rishisameer/portfolio-contact-api/internal/models"
	"github.com/rishisameer/portfolio-contact-api/internal/services"
	apperrors "github.com/rishisameer/portfolio-contact-api/pkg/errors"
	"github.com/rishisameer/portfolio-contact-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

// stubDispatcher records dispatch calls without sending anything
type stubDispatcher struct {
	development bool
	err         error
	calls       int
	lastReq     *models.ContactRequest
}

func (s *stubDispatcher) Dispatch(_ context.Context, req *models.ContactRequest, _ string) (bool, error) {
	s.calls++
	s.lastReq = req
	if s.err != nil {
		return false, s.err
	}
	return s.development, nil
}

func newContactRouter(dispatcher services.Dispatcher) *gin.Engine {
	cfg := &config.Config{
		Server: config.ServerConfig{AppEnv: "development"},
	}
	service := services.NewContactService(cfg, dispatcher)
	handler := NewContactHandler(service)

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
	})
	router.POST("/api/contact", handler.SubmitContact)
	return router
}

func postContact(router *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

const validBody = `{"name":"Ann","email":"a@b.com","subject":"Hi","message":"Hello there, testing.","honey":"","captcha":"7","captchaAnswer":"7"}`

func TestContactHandler_SubmitContact_DevelopmentMode(t *testing.T) {
	dispatcher := &stubDispatcher{development: true}
	router := newContactRouter(dispatcher)

	w := postContact(router, validBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`{"message":"Email sent successfully! (Development mode - no actual email sent)","development":true}`,
		w.Body.String())
	assert.Equal(t, 1, dispatcher.calls)
}

func TestContactHandler_SubmitContact_LiveSend(t *testing.T) {
	dispatcher := &stubDispatcher{development: false}
	router := newContactRouter(dispatcher)

	w := postContact(router, validBody)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Email sent successfully!"}`, w.Body.String())
	assert.Equal(t, 1, dispatcher.calls)
}

func TestContactHandler_SubmitContact_Honeypot(t *testing.T) {
	dispatcher := &stubDispatcher{}
	router := newContactRouter(dispatcher)

	body := strings.Replace(validBody, `"honey":""`, `"honey":"bot-filled"`, 1)
	w := postContact(router, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid submission"}`, w.Body.String())
	assert.Zero(t, dispatcher.calls)
}

func TestContactHandler_SubmitContact_MissingFields(t *testing.T) {
	dispatcher := &stubDispatcher{}
	router := newContactRouter(dispatcher)

	w := postContact(router, `{"name":"","email":"","subject":"","message":"","honey":"","captcha":"7","captchaAnswer":"7"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"All fields are required"}`, w.Body.String())
	assert.Zero(t, dispatcher.calls)
}

func TestContactHandler_SubmitContact_CaptchaMismatch(t *testing.T) {
	dispatcher := &stubDispatcher{}
	router := newContactRouter(dispatcher)

	body := strings.Replace(validBody, `"captcha":"7"`, `"captcha":"9"`, 1)
	w := postContact(router, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// The expected answer is revealed so a legitimate user can retry
	assert.Contains(t, w.Body.String(), "The correct answer is 7")
	assert.Zero(t, dispatcher.calls)
}

func TestContactHandler_SubmitContact_SuspiciousContent(t *testing.T) {
	dispatcher := &stubDispatcher{}
	router := newContactRouter(dispatcher)

	body := strings.Replace(validBody, "Hello there, testing.", "visit javascript:alert(1)", 1)
	w := postContact(router, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid content detected"}`, w.Body.String())
	assert.Zero(t, dispatcher.calls)
}

func TestContactHandler_SubmitContact_DispatchFailure(t *testing.T) {
	dispatcher := &stubDispatcher{err: apperrors.DispatchError(assert.AnError)}
	router := newContactRouter(dispatcher)

	w := postContact(router, validBody)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to send email. Please try again or contact directly.", resp["message"])
	assert.NotEmpty(t, resp["error"])
}

func TestContactHandler_SubmitContact_InvalidJSON(t *testing.T) {
	dispatcher := &stubDispatcher{}
	router := newContactRouter(dispatcher)

	w := postContact(router, `{"name": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request")
	assert.Zero(t, dispatcher.calls)
}

func TestContactHandler_SubmitContact_FieldTooLong(t *testing.T) {
	dispatcher := &stubDispatcher{}
	router := newContactRouter(dispatcher)

	longName := strings.Repeat("a", 101)
	body := strings.Replace(validBody, `"name":"Ann"`, `"name":"`+longName+`"`, 1)
	w := postContact(router, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request")
	assert.Zero(t, dispatcher.calls)
}

func TestContactHandler_WrongMethod(t *testing.T) {
	router := newContactRouter(&stubDispatcher{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/contact", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"message":"Method not allowed"}`, w.Body.String())
}
