package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateRequired checks if a string field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return NewBadRequestError(fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidatePositive checks if an amount is strictly positive
func ValidatePositive(value decimal.Decimal, fieldName string) error {
	if value.Sign() <= 0 {
		return NewValidationError(KindInvalidAmount, fmt.Sprintf("%s must be positive", fieldName))
	}
	return nil
}

// ValidateNonNegative checks if an amount is non-negative
func ValidateNonNegative(value decimal.Decimal, fieldName string) error {
	if value.Sign() < 0 {
		return NewValidationError(KindInvalidAmount, fmt.Sprintf("%s cannot be negative", fieldName))
	}
	return nil
}

// ValidateNotEmpty checks if a slice is not empty
func ValidateNotEmpty[T any](slice []T, fieldName string) error {
	if len(slice) == 0 {
		return NewValidationError(KindEmptyAssignmentSet, fmt.Sprintf("%s cannot be empty", fieldName))
	}
	return nil
}

// CleanFileName removes invalid characters from filename
func CleanFileName(filename string) string {
	reg := regexp.MustCompile(`[<>:"/\\|?*]`)
	cleaned := reg.ReplaceAllString(filename, "_")

	cleaned = strings.TrimSpace(cleaned)
	cleaned = regexp.MustCompile(`\s+`).ReplaceAllString(cleaned, "_")

	return cleaned
}
