package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pierreiost/quadracerta/internal/domain/auth"
	"github.com/pierreiost/quadracerta/internal/domain/client"
	"github.com/pierreiost/quadracerta/internal/domain/court"
	"github.com/pierreiost/quadracerta/internal/domain/product"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
	"github.com/pierreiost/quadracerta/internal/domain/sportcomplex"
	"github.com/pierreiost/quadracerta/internal/domain/tab"
	"github.com/pierreiost/quadracerta/internal/domain/user"
	"github.com/pierreiost/quadracerta/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountPending):
		Forbidden(w, "Account is waiting for approval")
	case errors.Is(err, auth.ErrAccountRejected):
		Forbidden(w, "Account registration was rejected")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrSuperAdminRequired):
		Forbidden(w, "Super admin access required")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrComplexIDRequired):
		Forbidden(w, "No complex associated with this user")
	case errors.Is(err, user.ErrUserNotPending):
		Conflict(w, "User is not pending approval")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Invalid role", nil)

	// Complex domain errors
	case errors.Is(err, sportcomplex.ErrComplexNotFound):
		NotFound(w, "Complex not found")
	case errors.Is(err, sportcomplex.ErrComplexNameExists):
		Conflict(w, "Complex name already exists")

	// Court domain errors
	case errors.Is(err, court.ErrCourtNotFound):
		NotFound(w, "Court not found")
	case errors.Is(err, court.ErrCourtNameExists):
		Conflict(w, "Court name already exists in this complex")
	case errors.Is(err, court.ErrCourtHasReservations):
		Conflict(w, "Court has upcoming reservations")
	case errors.Is(err, court.ErrInvalidStatus):
		BadRequest(w, "Invalid court status", nil)

	// Client domain errors
	case errors.Is(err, client.ErrClientNotFound):
		NotFound(w, "Client not found")
	case errors.Is(err, client.ErrPhoneExists):
		Conflict(w, "Phone already registered in this complex")
	case errors.Is(err, client.ErrClientHasOpenTab):
		Conflict(w, "Client has an open tab")

	// Product domain errors
	case errors.Is(err, product.ErrProductNotFound):
		NotFound(w, "Product not found")
	case errors.Is(err, product.ErrInsufficientStock):
		Conflict(w, "Insufficient stock")
	case errors.Is(err, product.ErrProductInUse):
		Conflict(w, "Product is referenced by tabs")

	// Reservation domain errors
	case errors.Is(err, reservation.ErrReservationNotFound):
		NotFound(w, "Reservation not found")
	case errors.Is(err, reservation.ErrTimeSlotTaken):
		Conflict(w, err.Error())
	case errors.Is(err, reservation.ErrCourtUnavailable):
		Conflict(w, "Court is not available for booking")
	case errors.Is(err, reservation.ErrInvalidStatusTransition):
		Conflict(w, "Invalid reservation status transition")
	case errors.Is(err, reservation.ErrInvalidTimeRange):
		BadRequest(w, "End time must be after start time", nil)
	case errors.Is(err, reservation.ErrInvalidStatus):
		BadRequest(w, "Invalid reservation status", nil)

	// Tab domain errors
	case errors.Is(err, tab.ErrTabNotFound):
		NotFound(w, "Tab not found")
	case errors.Is(err, tab.ErrTabItemNotFound):
		NotFound(w, "Tab item not found")
	case errors.Is(err, tab.ErrTabAlreadyOpen):
		Conflict(w, "Client already has an open tab")
	case errors.Is(err, tab.ErrTabNotOpen):
		Conflict(w, "Tab is not open")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
