package models

// ContactRequest represents a contact form submission.
// Honey is the hidden honeypot field and must stay empty; Captcha is the
// user's typed answer and CaptchaAnswer the expected answer echoed back by
// the client alongside it.
type ContactRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Subject       string `json:"subject"`
	Message       string `json:"message"`
	Honey         string `json:"honey"`
	Captcha       string `json:"captcha"`
	CaptchaAnswer string `json:"captchaAnswer"`
}

// ContactResponse is the JSON body returned for every contact submission
type ContactResponse struct {
	Message     string `json:"message"`
	Development bool   `json:"development,omitempty"`
	Error       string `json:"error,omitempty"`
}

// EmailNotification is the provider-ready message derived from a validated,
// sanitized submission. Nothing is persisted; it lives for one dispatch.
type EmailNotification struct {
	ToAddress   string
	FromDisplay string
	ReplyTo     string
	SubjectLine string
	HTMLBody    string
}
