package reservation

import "errors"

var (
	ErrReservationNotFound     = errors.New("reservation not found")
	ErrTimeSlotTaken           = errors.New("court already booked for this time slot")
	ErrCourtUnavailable        = errors.New("court is not available for booking")
	ErrInvalidStatusTransition = errors.New("invalid reservation status transition")
	ErrInvalidTimeRange        = errors.New("end time must be after start time")
	ErrInvalidStatus           = errors.New("invalid reservation status")
)
