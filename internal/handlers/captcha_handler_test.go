package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rishisameer/portfolio-contact-api/pkg/captcha"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptchaHandler_IssueChallenge(t *testing.T) {
	handler := NewCaptchaHandler(captcha.NewGeneratorWithSeed(42))
	router := gin.New()
	router.GET("/api/v1/captcha", handler.IssueChallenge)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/captcha", http.NoBody)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var challenge captcha.Challenge
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &challenge))
	assert.NotEmpty(t, challenge.Question)
	assert.Greater(t, challenge.Answer, 0)
}

func TestCaptchaHandler_IssueChallenge_FreshEveryCall(t *testing.T) {
	handler := NewCaptchaHandler(captcha.NewGeneratorWithSeed(42))
	router := gin.New()
	router.GET("/api/v1/captcha", handler.IssueChallenge)

	questions := make(map[string]bool)
	for i := 0; i < 20; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/captcha", http.NoBody)
		router.ServeHTTP(w, req)

		var challenge captcha.Challenge
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &challenge))
		questions[challenge.Question] = true
	}

	// Challenges rotate; with 20 draws at least a few distinct questions appear
	assert.Greater(t, len(questions), 1)
}
