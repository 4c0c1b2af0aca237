package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rishisameer/portfolio-contact-api/internal/middleware"
	"github.com/rishisameer/portfolio-contact-api/internal/models"
	"github.com/rishisameer/portfolio-contact-api/internal/services"
	apperrors "github.com/rishisameer/portfolio-contact-api/pkg/errors"
)

// contactRequestBody mirrors models.ContactRequest with length limits
// matching the client-side form schema. Required-field and captcha checks
// stay in the pipeline so their specific messages are preserved.
type contactRequestBody struct {
	Name          string `json:"name" binding:"omitempty,max=100"`
	Email         string `json:"email" binding:"omitempty,max=254"`
	Subject       string `json:"subject" binding:"omitempty,max=200"`
	Message       string `json:"message" binding:"omitempty,max=2000"`
	Honey         string `json:"honey"`
	Captcha       string `json:"captcha" binding:"omitempty,max=10"`
	CaptchaAnswer string `json:"captchaAnswer" binding:"omitempty,max=10"`
}

type ContactHandler struct {
	service *services.ContactService
}

func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitContact handles POST /api/contact
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var body contactRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		if fieldErrors := ParseValidationErrors(err); len(fieldErrors) > 0 {
			attachError(c, err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request", "details": fieldErrors})
			return
		}
		respondMessage(c, http.StatusBadRequest, "Invalid request", err)
		return
	}

	req := &models.ContactRequest{
		Name:          body.Name,
		Email:         body.Email,
		Subject:       body.Subject,
		Message:       body.Message,
		Honey:         body.Honey,
		Captcha:       body.Captcha,
		CaptchaAnswer: body.CaptchaAnswer,
	}

	resp, err := h.service.SubmitContactForm(c.Request.Context(), req, middleware.ClientKey(c))
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// respondPipelineError maps a pipeline failure to the wire contract:
// spam, validation and captcha failures are 400; rate limiting 429;
// dispatch failures 500 with the provider detail attached.
func (h *ContactHandler) respondPipelineError(c *gin.Context, err error) {
	var pe *services.PipelineError
	if !errors.As(err, &pe) {
		respondMessageWithDetail(c, http.StatusInternalServerError,
			"Internal server error. Please try again.", err.Error(), err)
		return
	}

	switch {
	case apperrors.Is(pe, apperrors.ErrDispatchFailed):
		respondMessageWithDetail(c, http.StatusInternalServerError, pe.Message, pe.Err.Error(), pe)
	case apperrors.Is(pe, apperrors.ErrRateLimited):
		respondMessage(c, http.StatusTooManyRequests, pe.Message, pe)
	case apperrors.Is(pe, apperrors.ErrSpamDetected),
		apperrors.Is(pe, apperrors.ErrSuspiciousContent),
		apperrors.Is(pe, apperrors.ErrValidation),
		apperrors.Is(pe, apperrors.ErrCaptchaMismatch):
		respondMessage(c, http.StatusBadRequest, pe.Message, pe)
	default:
		respondMessageWithDetail(c, http.StatusInternalServerError,
			"Internal server error. Please try again.", pe.Err.Error(), pe)
	}
}
