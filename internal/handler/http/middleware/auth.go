package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
	"github.com/retail-erp/workforce-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose verified token is missing or not an access token.
// It runs after jwtauth.Verifier, which only records verification results in the context.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != "access" {
			response.HandleError(w, user.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
