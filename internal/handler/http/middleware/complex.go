package middleware

import (
	"net/http"

	"github.com/pierreiost/quadracerta/internal/domain/user"
	"github.com/pierreiost/quadracerta/internal/handler/http/response"
)

// RequireComplex rejects callers whose token is not bound to a complex.
func RequireComplex(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := ClaimsFromContext(r.Context())
		if err != nil {
			response.HandleError(w, err)
			return
		}

		if claims.ComplexID == "" {
			response.HandleError(w, user.ErrComplexIDRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
