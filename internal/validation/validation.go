package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrValidation marks input rejections. Callers branch with errors.Is to
// tell "invalid input" apart from a degraded but valid result.
var ErrValidation = errors.New("invalid input")

// Time window bounds in days.
const (
	MinTimeWindowDays = 1
	MaxTimeWindowDays = 365
)

// PII patterns that must never reach an extractor.
var piiPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),                               // SSN
	regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),          // credit card
	regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),  // email
	regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),                       // phone
}

// ValidateText rejects empty text, text beyond maxLength, and text that
// matches a PII pattern.
func ValidateText(text string, maxLength int) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: text cannot be empty", ErrValidation)
	}
	if len(text) > maxLength {
		return fmt.Errorf("%w: text exceeds maximum length of %d characters", ErrValidation, maxLength)
	}
	for _, pattern := range piiPatterns {
		if pattern.MatchString(text) {
			return fmt.Errorf("%w: text appears to contain personally identifiable information", ErrValidation)
		}
	}
	return nil
}

// ValidateUserID requires a canonical UUID.
func ValidateUserID(userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if len(userID) != 36 {
		return fmt.Errorf("%w: user id is not a canonical UUID", ErrValidation)
	}
	if _, err := uuid.Parse(userID); err != nil {
		return fmt.Errorf("%w: user id is not a valid UUID", ErrValidation)
	}
	return nil
}

// ValidateTimeWindow bounds an analysis window to [1,365] days.
func ValidateTimeWindow(days int) error {
	if days < MinTimeWindowDays || days > MaxTimeWindowDays {
		return fmt.Errorf("%w: time window must be between %d and %d days",
			ErrValidation, MinTimeWindowDays, MaxTimeWindowDays)
	}
	return nil
}
