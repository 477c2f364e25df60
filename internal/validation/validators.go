package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("plan_days", validatePlanDays); err != nil {
		panic(fmt.Sprintf("failed to register plan_days validator: %v", err))
	}
}

// MinDays and MaxDays bound the requested plan length. MaxDays is also the
// batch-accept cap enforced by the backend's batch create endpoint.
const (
	MinDays = 1
	MaxDays = 7
)

// validatePlanDays validates that an int field is a permitted day count
func validatePlanDays(fl validator.FieldLevel) bool {
	v := fl.Field().Int()
	return v >= MinDays && v <= MaxDays
}

// SanitizeText sanitizes text input by trimming whitespace and removing
// control characters
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// ValidateDays validates a requested plan day count
func ValidateDays(days int) error {
	if days < MinDays || days > MaxDays {
		return fmt.Errorf("invalid day count: %d (must be between %d and %d)", days, MinDays, MaxDays)
	}
	return nil
}

// ValidateRating validates a feedback star rating
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("invalid rating: %d (must be between 1 and 5)", rating)
	}
	return nil
}

// ValidateEmail validates an email address
func ValidateEmail(email string) error {
	if err := Validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("invalid email address: %q", email)
	}
	return nil
}
