package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rishisameer/portfolio-contact-api/pkg/captcha"
	"github.com/rishisameer/portfolio-contact-api/pkg/metrics"
)

// CaptchaHandler issues arithmetic challenges. Clients may also mint their
// own challenge locally; verification compares the answer pair echoed back
// with the submission either way.
type CaptchaHandler struct {
	generator *captcha.Generator
}

func NewCaptchaHandler(generator *captcha.Generator) *CaptchaHandler {
	return &CaptchaHandler{generator: generator}
}

// IssueChallenge handles GET /api/v1/captcha
func (h *CaptchaHandler) IssueChallenge(c *gin.Context) {
	challenge := h.generator.Generate()
	metrics.CaptchaChallengesIssued.Inc()
	c.JSON(http.StatusOK, challenge)
}
