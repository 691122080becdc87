package court

import "errors"

var (
	ErrCourtNotFound        = errors.New("court not found")
	ErrCourtNameExists      = errors.New("court with this name already exists in the complex")
	ErrCourtHasReservations = errors.New("court has upcoming reservations")
	ErrInvalidStatus        = errors.New("invalid court status")
)
