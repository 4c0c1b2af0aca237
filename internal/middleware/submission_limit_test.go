package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rishisameer/portfolio-contact-api/internal/ratelimit"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(limit int) *gin.Engine {
	limiter := ratelimit.NewLimiter(ratelimit.NewCacheStore(), 15*time.Minute, limit)

	router := gin.New()
	router.POST("/api/contact", SubmissionLimitMiddleware(limiter), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router
}

func TestSubmissionLimitMiddleware_AllowsWithinLimit(t *testing.T) {
	router := newLimitedRouter(5)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/contact", http.NoBody)
		req.RemoteAddr = "1.2.3.4:5678"
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i+1)
	}
}

func TestSubmissionLimitMiddleware_RejectsOverLimit(t *testing.T) {
	router := newLimitedRouter(5)

	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/contact", http.NoBody)
		req.RemoteAddr = "1.2.3.4:5678"
		router.ServeHTTP(last, req)
	}

	assert.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.JSONEq(t, `{"message":"Too many requests. Please try again later."}`, last.Body.String())
}

func TestSubmissionLimitMiddleware_SeparateClients(t *testing.T) {
	router := newLimitedRouter(1)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", http.NoBody)
	req.RemoteAddr = "1.2.3.4:5678"
	router.ServeHTTP(first, req)
	assert.Equal(t, http.StatusOK, first.Code)

	blocked := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/contact", http.NoBody)
	req.RemoteAddr = "1.2.3.4:9999"
	router.ServeHTTP(blocked, req)
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)

	// Different IP, fresh counter
	other := httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/contact", http.NoBody)
	req.RemoteAddr = "5.6.7.8:1234"
	router.ServeHTTP(other, req)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestClientKey_ForwardedHeader(t *testing.T) {
	router := gin.New()
	var key string
	router.POST("/", func(c *gin.Context) {
		key = ClientKey(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	req.RemoteAddr = "10.0.0.1:5678"
	router.ServeHTTP(w, req)

	// Falls back to the connection address when no proxy headers are set
	assert.Equal(t, "10.0.0.1", key)
}
