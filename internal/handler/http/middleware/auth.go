package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/pierreiost/quadracerta/internal/domain/auth"
	"github.com/pierreiost/quadracerta/internal/domain/user"
	"github.com/pierreiost/quadracerta/internal/handler/http/response"
	"github.com/pierreiost/quadracerta/internal/pkg/jwt"
)

// Claims is the caller identity carried by an access token
type Claims struct {
	UserID    string
	Email     string
	ComplexID string // empty for unscoped super admins
	Role      user.Role
}

func (c Claims) IsSuperAdmin() bool {
	return c.Role == user.RoleSuperAdmin
}

// ClaimsFromContext reads the verified token placed in ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, auth.ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok || !user.Role(role).IsValid() {
		return Claims{}, auth.ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	complexID, _ := claims["complex_id"].(string)

	return Claims{
		UserID:    userID,
		Email:     email,
		ComplexID: complexID,
		Role:      user.Role(role),
	}, nil
}

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
