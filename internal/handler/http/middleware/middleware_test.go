package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/pierreiost/quadracerta/internal/domain/user"
	"github.com/pierreiost/quadracerta/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

var noContent = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func protected(jwtSvc jwt.Service, mws ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(jwtSvc.JWTAuth()))
	r.Use(AuthRequired(jwtSvc.JWTAuth()))
	r.With(mws...).Get("/", noContent)
	return r
}

func call(t *testing.T, h http.Handler, jwtSvc jwt.Service, complexID *string, role user.Role) int {
	t.Helper()
	token, _, err := jwtSvc.GenerateAccessToken("user-1", "staff@example.com", complexID, role)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestRequireComplex(t *testing.T) {
	jwtSvc := jwt.NewJWTService(testSecret, "1h", "24h")
	h := protected(jwtSvc, RequireComplex)
	complexID := "0190a3b2-7c4d-7e5f-8a9b-0c1d2e3f4a5b"

	assert.Equal(t, http.StatusNoContent, call(t, h, jwtSvc, &complexID, user.RoleEmployee))
	assert.Equal(t, http.StatusForbidden, call(t, h, jwtSvc, nil, user.RoleSuperAdmin))
}

func TestRoleGates(t *testing.T) {
	jwtSvc := jwt.NewJWTService(testSecret, "1h", "24h")
	complexID := "0190a3b2-7c4d-7e5f-8a9b-0c1d2e3f4a5b"

	superAdminOnly := protected(jwtSvc, RequireSuperAdmin)
	assert.Equal(t, http.StatusNoContent, call(t, superAdminOnly, jwtSvc, nil, user.RoleSuperAdmin))
	assert.Equal(t, http.StatusForbidden, call(t, superAdminOnly, jwtSvc, &complexID, user.RoleAdmin))

	adminOnly := protected(jwtSvc, RequireAdmin)
	assert.Equal(t, http.StatusNoContent, call(t, adminOnly, jwtSvc, &complexID, user.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, call(t, adminOnly, jwtSvc, &complexID, user.RoleEmployee))
}

func TestRequirePermission(t *testing.T) {
	jwtSvc := jwt.NewJWTService(testSecret, "1h", "24h")
	complexID := "0190a3b2-7c4d-7e5f-8a9b-0c1d2e3f4a5b"
	h := protected(jwtSvc, RequirePermission(user.PermissionCourtManage))

	assert.Equal(t, http.StatusNoContent, call(t, h, jwtSvc, &complexID, user.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, call(t, h, jwtSvc, &complexID, user.RoleEmployee))
	assert.Equal(t, http.StatusForbidden, call(t, h, jwtSvc, nil, user.RoleSuperAdmin))
}

func TestClaimsFromContext_UnscopedSuperAdmin(t *testing.T) {
	jwtSvc := jwt.NewJWTService(testSecret, "1h", "24h")

	var got Claims
	r := chi.NewRouter()
	r.Use(jwtauth.Verifier(jwtSvc.JWTAuth()))
	r.Use(AuthRequired(jwtSvc.JWTAuth()))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		var err error
		got, err = ClaimsFromContext(r.Context())
		require.NoError(t, err)
	})

	call(t, r, jwtSvc, nil, user.RoleSuperAdmin)
	assert.Equal(t, "user-1", got.UserID)
	assert.Empty(t, got.ComplexID)
	assert.True(t, got.IsSuperAdmin())
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(4, time.Minute)(noContent)

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	// burst is half the window allowance
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1:5000").Code)
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1:5001").Code)

	limited := send("10.0.0.1:5002")
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))

	// other clients keep their own bucket
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2:5000").Code)
}
