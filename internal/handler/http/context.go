package http

import (
	"log/slog"
	"net/http"

	"github.com/pierreiost/quadracerta/internal/handler/http/middleware"
	"github.com/pierreiost/quadracerta/internal/handler/http/response"
)

// callerFromRequest extracts the verified claims or writes a 401.
func callerFromRequest(w http.ResponseWriter, r *http.Request) (middleware.Claims, bool) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		slog.Error("Failed to get JWT claims", "error", err)
		response.HandleError(w, err)
		return middleware.Claims{}, false
	}
	return claims, true
}
