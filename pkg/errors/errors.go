package errors

import (
	"errors"
	"fmt"
)

// Common application errors with proper types for error handling

var (
	// ErrSpamDetected indicates the hidden honeypot field was filled in
	ErrSpamDetected = errors.New("spam detected")

	// ErrSuspiciousContent indicates a denylisted pattern in the submission text
	ErrSuspiciousContent = errors.New("suspicious content")

	// ErrValidation indicates a missing or empty required field
	ErrValidation = errors.New("validation failed")

	// ErrCaptchaMismatch indicates the captcha answer did not match
	ErrCaptchaMismatch = errors.New("captcha mismatch")

	// ErrRateLimited indicates the client exceeded its submission window
	ErrRateLimited = errors.New("rate limited")

	// ErrDispatchFailed indicates the email provider call failed
	ErrDispatchFailed = errors.New("dispatch failed")
)

// ValidationError creates a validation error with context
func ValidationError(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrValidation)
}

// CaptchaMismatchError creates a captcha mismatch error carrying the expected answer
func CaptchaMismatchError(expected string) error {
	return fmt.Errorf("expected %s: %w", expected, ErrCaptchaMismatch)
}

// DispatchError creates a dispatch failure with the provider's error detail
func DispatchError(err error) error {
	return fmt.Errorf("%v: %w", err, ErrDispatchFailed)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
