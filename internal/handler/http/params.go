package http

import (
	"net/http"
	"strings"

	"github.com/retail-erp/workforce-backend-go/internal/pkg/validator"
)

// optionalQuery returns nil for an absent or blank query parameter.
func optionalQuery(r *http.Request, key string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil
	}
	return &value
}

// staffIDQuery reads the staff_id filter; ok is false when it is present but not a UUID.
func staffIDQuery(r *http.Request) (staffID *string, ok bool) {
	staffID = optionalQuery(r, "staff_id")
	if staffID != nil && !validator.IsValidUUID(*staffID) {
		return nil, false
	}
	return staffID, true
}
