package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/rishisameer/portfolio-contact-api/config"
	"github.com/rishisameer/portfolio-contact-api/internal/models"
	apperrors "github.com/rishisameer/portfolio-contact-api/pkg/errors"
	"github.com/rishisameer/portfolio-contact-api/pkg/logger"
	"github.com/rishisameer/portfolio-contact-api/pkg/resend"
	"go.uber.org/zap"
)

// notificationTemplate renders the operator notification. html/template
// escapes the user-supplied values on top of the angle-bracket stripping.
var notificationTemplate = template.Must(template.New("notification").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9fafb; border-radius: 10px;">
  <h2 style="color: #1f2937; border-bottom: 3px solid #3b82f6; padding-bottom: 10px;">New Contact Form Submission</h2>
  <div style="background-color: white; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p style="margin: 10px 0;"><strong style="color: #374151;">From:</strong> <span style="color: #1f2937;">{{.Name}}</span></p>
    <p style="margin: 10px 0;"><strong style="color: #374151;">Email:</strong> <a href="mailto:{{.Email}}" style="color: #3b82f6; text-decoration: none;">{{.Email}}</a></p>
    <p style="margin: 10px 0;"><strong style="color: #374151;">Subject:</strong> <span style="color: #1f2937;">{{.Subject}}</span></p>
  </div>
  <div style="background-color: white; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p style="margin: 0 0 10px 0;"><strong style="color: #374151;">Message:</strong></p>
    <p style="color: #1f2937; line-height: 1.6; white-space: pre-wrap;">{{.Message}}</p>
  </div>
  <div style="margin-top: 20px; padding: 15px; background-color: #eff6ff; border-left: 4px solid #3b82f6; border-radius: 4px;">
    <p style="margin: 0; font-size: 12px; color: #1e40af;">
      <strong>Quick Reply:</strong> Just hit reply to respond directly to {{.Email}}
    </p>
  </div>
  <div style="margin-top: 20px; padding-top: 20px; border-top: 1px solid #e5e7eb; font-size: 11px; color: #6b7280;">
    <p style="margin: 5px 0;"><strong>IP Address:</strong> {{.ClientKey}}</p>
    <p style="margin: 5px 0;"><strong>Timestamp:</strong> {{.Timestamp}}</p>
    <p style="margin: 5px 0;"><strong>Protected by:</strong> Math Captcha + Honeypot</p>
  </div>
</div>`))

type notificationData struct {
	Name      string
	Email     string
	Subject   string
	Message   string
	ClientKey string
	Timestamp string
}

// EmailDispatcher delivers notifications through the Resend API, or
// simulates delivery when no credential is configured (development mode).
type EmailDispatcher struct {
	cfg    *config.Config
	client EmailClient
}

// NewEmailDispatcher creates a dispatcher. client may be nil when no
// provider credential is configured.
func NewEmailDispatcher(cfg *config.Config, client EmailClient) *EmailDispatcher {
	return &EmailDispatcher{cfg: cfg, client: client}
}

// Dispatch sends the notification for a validated, sanitized submission.
// Delivery is at-most-once: no retry is performed, and the provider call is
// bounded by the configured send timeout.
func (d *EmailDispatcher) Dispatch(ctx context.Context, req *models.ContactRequest, clientKey string) (bool, error) {
	notification, err := d.buildNotification(req, clientKey)
	if err != nil {
		return false, apperrors.DispatchError(err)
	}

	if !d.cfg.EmailConfigured() || d.client == nil {
		logger.Info("Development mode: simulating email send",
			zap.String("to", notification.ToAddress),
			zap.String("reply_to", notification.ReplyTo),
			zap.String("subject", notification.SubjectLine),
		)
		return true, nil
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.cfg.Contact.SendTimeout)
	defer cancel()

	_, err = d.client.Send(sendCtx, &resend.SendRequest{
		From:    notification.FromDisplay,
		To:      []string{notification.ToAddress},
		ReplyTo: notification.ReplyTo,
		Subject: notification.SubjectLine,
		HTML:    notification.HTMLBody,
	})
	if err != nil {
		logger.Error("Email dispatch failed", zap.Error(err), zap.String("client_key", clientKey))
		return false, apperrors.DispatchError(err)
	}

	return false, nil
}

// buildNotification derives the provider-ready message from a sanitized
// submission, embedding the client key and a timestamp for audit purposes.
func (d *EmailDispatcher) buildNotification(req *models.ContactRequest, clientKey string) (*models.EmailNotification, error) {
	var body bytes.Buffer
	err := notificationTemplate.Execute(&body, notificationData{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		ClientKey: clientKey,
		Timestamp: time.Now().Format(time.RFC1123),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render notification: %w", err)
	}

	return &models.EmailNotification{
		ToAddress:   d.cfg.Contact.ToEmail,
		FromDisplay: d.cfg.Contact.FromAddress,
		ReplyTo:     req.Email,
		SubjectLine: d.cfg.Contact.SubjectPrefix + req.Subject,
		HTMLBody:    body.String(),
	}, nil
}
