package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rishisameer/portfolio-contact-api/config"
	"github.com/rishisameer/portfolio-contact-api/internal/models"
	"github.com/rishisameer/portfolio-contact-api/pkg/captcha"
	apperrors "github.com/rishisameer/portfolio-contact-api/pkg/errors"
	"github.com/rishisameer/portfolio-contact-api/pkg/logger"
	"github.com/rishisameer/portfolio-contact-api/pkg/metrics"
	"go.uber.org/zap"
)

// PipelineError pairs a taxonomy error with the message shown to the user.
// The HTTP layer maps the wrapped sentinel to a status code and returns
// Message in the response body.
type PipelineError struct {
	Err     error
	Message string
}

func (e *PipelineError) Error() string {
	return e.Err.Error()
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

func pipelineError(err error, message string) *PipelineError {
	return &PipelineError{Err: err, Message: message}
}

// ContactService runs the contact-form submission pipeline: honeypot,
// required fields, captcha, sanitization, suspicious-content scan, dispatch
type ContactService struct {
	cfg        *config.Config
	dispatcher Dispatcher
}

// NewContactService creates a new contact service instance
func NewContactService(cfg *config.Config, dispatcher Dispatcher) *ContactService {
	return &ContactService{
		cfg:        cfg,
		dispatcher: dispatcher,
	}
}

// SubmitContactForm validates a submission and dispatches the notification
// email. Any validation failure stops the pipeline before dispatch; the
// client regenerates its captcha challenge after every attempt.
func (s *ContactService) SubmitContactForm(ctx context.Context, req *models.ContactRequest, clientKey string) (*models.ContactResponse, error) {
	// Honeypot check
	if err := CheckHoneypot(req.Honey); err != nil {
		metrics.ContactFormSubmissions.WithLabelValues("honeypot").Inc()
		logger.Warn("Honeypot triggered", zap.String("client_key", clientKey))
		return nil, pipelineError(err, "Invalid submission")
	}

	// Basic validation
	if isBlank(req.Name) || isBlank(req.Email) || isBlank(req.Subject) || isBlank(req.Message) {
		metrics.ContactFormSubmissions.WithLabelValues("validation_failed").Inc()
		return nil, pipelineError(apperrors.ValidationError("missing required fields"), "All fields are required")
	}

	// Verify captcha. Both the typed answer and the expected answer the
	// client echoes back must be present.
	if isBlank(req.Captcha) || isBlank(req.CaptchaAnswer) {
		metrics.ContactFormSubmissions.WithLabelValues("captcha_failed").Inc()
		return nil, pipelineError(apperrors.ValidationError("captcha missing"), "Please solve the security check")
	}

	if !captcha.VerifyAnswer(req.Captcha, req.CaptchaAnswer) {
		metrics.ContactFormSubmissions.WithLabelValues("captcha_failed").Inc()
		logger.Warn("Captcha verification failed",
			zap.String("user_answer", req.Captcha),
			zap.String("correct_answer", req.CaptchaAnswer),
		)
		expected := strings.TrimSpace(req.CaptchaAnswer)
		return nil, pipelineError(
			apperrors.CaptchaMismatchError(expected),
			fmt.Sprintf("Incorrect answer. The correct answer is %s. Please try again.", expected),
		)
	}

	// Sanitize inputs
	sanitized := &models.ContactRequest{
		Name:    Sanitize(req.Name),
		Email:   Sanitize(req.Email),
		Subject: Sanitize(req.Subject),
		Message: Sanitize(req.Message),
	}

	// Check for suspicious patterns
	if err := ScanSuspicious(sanitized.Name, sanitized.Email, sanitized.Subject, sanitized.Message); err != nil {
		metrics.ContactFormSubmissions.WithLabelValues("suspicious").Inc()
		logger.Warn("Suspicious pattern detected", zap.String("client_key", clientKey))
		return nil, pipelineError(err, "Invalid content detected")
	}

	development, err := s.dispatcher.Dispatch(ctx, sanitized, clientKey)
	if err != nil {
		metrics.ContactFormSubmissions.WithLabelValues("error").Inc()
		return nil, pipelineError(err, "Failed to send email. Please try again or contact directly.")
	}

	if development {
		metrics.ContactFormSubmissions.WithLabelValues("success_dev").Inc()
		return &models.ContactResponse{
			Message:     "Email sent successfully! (Development mode - no actual email sent)",
			Development: true,
		}, nil
	}

	metrics.ContactFormSubmissions.WithLabelValues("success").Inc()
	return &models.ContactResponse{
		Message: "Email sent successfully!",
	}, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
