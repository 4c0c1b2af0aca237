package services

import (
	"context"

	"github.com/rishisameer/portfolio-contact-api/internal/models"
	"github.com/rishisameer/portfolio-contact-api/pkg/resend"
)

// EmailClient abstracts the transactional email provider for testing
type EmailClient interface {
	Send(ctx context.Context, req *resend.SendRequest) (*resend.SendResponse, error)
}

// Dispatcher delivers a validated submission to the operator, or simulates
// delivery when no provider credential is configured. The bool result
// reports whether the send was simulated (development mode).
type Dispatcher interface {
	Dispatch(ctx context.Context, req *models.ContactRequest, clientKey string) (bool, error)
}
