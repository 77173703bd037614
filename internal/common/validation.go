package common

import (
	"fmt"
	"strings"
)

// ValidateRequiredString validates required string fields.
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateMaxLength validates string fields against a maximum length.
func ValidateMaxLength(value, fieldName string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%s cannot exceed %d characters", fieldName, maxLength)
	}
	return nil
}

// ValidateOptionalString trims and length-checks optional string fields.
func ValidateOptionalString(value *string, fieldName string, maxLength int) error {
	if value != nil {
		if len(*value) > maxLength {
			return fmt.Errorf("%s cannot exceed %d characters", fieldName, maxLength)
		}
		*value = strings.TrimSpace(*value)
	}
	return nil
}

// ValidatePositiveFloat validates that a numeric field is strictly positive.
func ValidatePositiveFloat(value float64, fieldName string) error {
	if value <= 0 {
		return fmt.Errorf("%s must be greater than 0", fieldName)
	}
	return nil
}

// ValidateNonNegativeInt validates optional counters such as stock levels.
func ValidateNonNegativeInt(value *int, fieldName string) error {
	if value != nil && *value < 0 {
		return fmt.Errorf("%s cannot be negative", fieldName)
	}
	return nil
}

// SafeString safely dereferences string pointer fields.
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// EqualFold reports case-insensitive equality after trimming, the comparison
// used for duplicate-name checks across the service layer.
func EqualFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
