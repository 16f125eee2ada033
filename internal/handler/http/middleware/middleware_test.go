package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuth = jwtauth.New("HS256", []byte("test-secret"), nil)

func newProtectedRouter(perm user.Permission) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(testAuth))
	r.Use(AuthRequired)
	r.Use(RequireCompany)
	r.With(RequirePermission(perm)).Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func bearer(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	_, token, err := testAuth.Encode(claims)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestMiddlewareChain(t *testing.T) {
	tests := []struct {
		name   string
		claims map[string]interface{}
		want   int
	}{
		{"no token", nil, http.StatusUnauthorized},
		{"refresh token", map[string]interface{}{"type": "refresh", "company_id": "c1", "role": "owner"}, http.StatusUnauthorized},
		{"no company", map[string]interface{}{"type": "access", "role": "owner"}, http.StatusForbidden},
		{"missing permission", map[string]interface{}{"type": "access", "company_id": "c1", "role": "staff"}, http.StatusForbidden},
		{"unknown role", map[string]interface{}{"type": "access", "company_id": "c1", "role": "admin"}, http.StatusForbidden},
		{"allowed", map[string]interface{}{"type": "access", "company_id": "c1", "role": "manager"}, http.StatusNoContent},
	}

	router := newProtectedRouter(user.PermissionPuantajView)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.claims != nil {
				req.Header.Set("Authorization", bearer(t, tt.claims))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
