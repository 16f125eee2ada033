package validator

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retail-erp/workforce-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

// ValidationError reports one rejected request field.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors is returned by request Validate methods and rendered as 422.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}

// ToMap keys messages by field. A later message for the same field wins.
func (v ValidationErrors) ToMap() map[string]string {
	fields := make(map[string]string, len(v))
	for _, e := range v {
		fields[e.Field] = e.Message
	}
	return fields
}

func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// IsValidUUID accepts any RFC 4122 UUID in canonical 36 character form.
func IsValidUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	return uuid.Validate(id) == nil
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, bool) {
	date, err := time.Parse(period.DateLayout, s)
	return date, err == nil
}

// ParseDateTime parses an RFC 3339 timestamp, fractional seconds allowed.
// "2024-01-15T10:30:00Z" and "2024-01-15T10:30:00.5+03:00" both pass.
func ParseDateTime(s string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, s)
	return t, err == nil
}

// IsValidPeriod checks the YYYY-MM month format used by puantaj and payroll.
func IsValidPeriod(s string) bool {
	_, err := period.Parse(s)
	return err == nil
}

func IsOneOf[T comparable](value T, allowed []T) bool {
	return slices.Contains(allowed, value)
}

// IsPositive reports whether d is strictly greater than zero.
func IsPositive(d decimal.Decimal) bool {
	return d.IsPositive()
}
