package middleware

import (
	"net/http"

	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
	"github.com/retail-erp/workforce-backend-go/internal/handler/http/response"
)

// RequireCompany rejects tokens that are not bound to a company; every query is tenant scoped.
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := user.ClaimsFromContext(r.Context()); err != nil {
			response.HandleError(w, err)
			return
		}

		next.ServeHTTP(w, r)
	})
}
