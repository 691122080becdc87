package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pierreiost/quadracerta/internal/domain/notification"
	"github.com/pierreiost/quadracerta/internal/handler/http/middleware"
	"github.com/pierreiost/quadracerta/internal/handler/http/response"
	"github.com/pierreiost/quadracerta/internal/pkg/validator"
)

const fetchNotificationsFailed = "Erro ao buscar notificações"

// NotificationHandler serves the derived notification feed.
// Both endpoints answer with bare payloads and a bare {"error"} body on failure.
type NotificationHandler interface {
	Feed(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type notificationHandlerImpl struct {
	notifService notification.Service
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifService notification.Service) NotificationHandler {
	return &notificationHandlerImpl{notifService: notifService}
}

// resolveComplexID picks the tenant to evaluate. Scoped callers always get their own
// complex; a super admin may select one with ?complexId=, otherwise gets "".
func resolveComplexID(claims middleware.Claims, requested string) (string, error) {
	if requested == "" || requested == claims.ComplexID {
		return claims.ComplexID, nil
	}
	if !claims.IsSuperAdmin() {
		return "", notification.ErrComplexOverrideForbidden
	}
	if !validator.IsValidUUID(requested) {
		return "", notification.ErrInvalidComplexID
	}
	return requested, nil
}

func (h *notificationHandlerImpl) complexID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, err := middleware.ClaimsFromContext(r.Context())
	if err != nil {
		response.PlainError(w, http.StatusUnauthorized, err.Error())
		return "", false
	}

	complexID, err := resolveComplexID(claims, r.URL.Query().Get("complexId"))
	switch {
	case errors.Is(err, notification.ErrComplexOverrideForbidden):
		response.PlainError(w, http.StatusForbidden, err.Error())
		return "", false
	case err != nil:
		response.PlainError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return complexID, true
}

// Feed returns every derived notification for the caller's complex
func (h *notificationHandlerImpl) Feed(w http.ResponseWriter, r *http.Request) {
	complexID, ok := h.complexID(w, r)
	if !ok {
		return
	}

	feed, err := h.notifService.GetFeed(r.Context(), complexID)
	if err != nil {
		slog.Error("Failed to build notification feed", "complex_id", complexID, "error", err)
		response.PlainError(w, http.StatusInternalServerError, fetchNotificationsFailed)
		return
	}

	response.JSON(w, http.StatusOK, feed)
}

// Summary returns the badge count
func (h *notificationHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	complexID, ok := h.complexID(w, r)
	if !ok {
		return
	}

	summary, err := h.notifService.GetSummaryCount(r.Context(), complexID)
	if err != nil {
		slog.Error("Failed to count notifications", "complex_id", complexID, "error", err)
		response.PlainError(w, http.StatusInternalServerError, fetchNotificationsFailed)
		return
	}

	response.JSON(w, http.StatusOK, summary)
}
