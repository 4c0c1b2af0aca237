package services

import (
	"strings"

	apperrors "github.com/rishisameer/portfolio-contact-api/pkg/errors"
)

// suspiciousPatterns are denylisted substrings checked against the
// lower-cased concatenation of all free-text fields
var suspiciousPatterns = []string{
	"<script>",
	"javascript:",
	"<iframe>",
	"<object>",
	"<embed>",
}

var angleBracketStripper = strings.NewReplacer("<", "", ">", "")

// Sanitize strips literal angle brackets from free-text input before it is
// embedded anywhere. This is a narrow defusal, not full HTML encoding; the
// notification body additionally goes through html/template escaping.
// Idempotent: a second pass is a no-op.
func Sanitize(s string) string {
	return angleBracketStripper.Replace(s)
}

// CheckHoneypot rejects any submission whose hidden honey field carries a
// value. The field is invisible to humans, so a non-empty value is
// conclusive evidence of an automated submission.
func CheckHoneypot(honey string) error {
	if honey != "" {
		return apperrors.ErrSpamDetected
	}
	return nil
}

// ScanSuspicious checks the given sanitized fields for denylisted patterns
func ScanSuspicious(fields ...string) error {
	allText := strings.ToLower(strings.Join(fields, " "))
	for _, pattern := range suspiciousPatterns {
		if strings.Contains(allText, pattern) {
			return apperrors.ErrSuspiciousContent
		}
	}
	return nil
}
