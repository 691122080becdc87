package reservation

import (
	"time"

	"github.com/pierreiost/quadracerta/internal/pkg/validator"
)

type ReservationResponse struct {
	ID               string  `json:"id"`
	CourtID          string  `json:"court_id"`
	CourtName        string  `json:"court_name,omitempty"`
	ClientID         string  `json:"client_id"`
	ClientFullName   string  `json:"client_full_name,omitempty"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	Status           Status  `json:"status"`
	IsRecurring      bool    `json:"is_recurring"`
	RecurringGroupID *string `json:"recurring_group_id,omitempty"`
	Notes            string  `json:"notes,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

func ToResponse(r Reservation) ReservationResponse {
	return ReservationResponse{
		ID:               r.ID,
		CourtID:          r.CourtID,
		CourtName:        r.CourtName,
		ClientID:         r.ClientID,
		ClientFullName:   r.ClientFullName,
		StartTime:        r.StartTime.Format(time.RFC3339),
		EndTime:          r.EndTime.Format(time.RFC3339),
		Status:           r.Status,
		IsRecurring:      r.IsRecurring,
		RecurringGroupID: r.RecurringGroupID,
		Notes:            r.Notes,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
}

type CreateReservationRequest struct {
	ComplexID string `json:"-"` // From JWT
	CourtID   string `json:"court_id"`
	ClientID  string `json:"client_id"`
	StartTime string `json:"start_time"` // RFC3339
	EndTime   string `json:"end_time"`   // RFC3339
	Notes     string `json:"notes"`
	Confirmed bool   `json:"confirmed"` // create directly as CONFIRMED

	start time.Time
	end   time.Time
}

func (r *CreateReservationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ComplexID) {
		errs.Add("complex_id", "complex_id is required")
	}
	if validator.IsEmpty(r.CourtID) {
		errs.Add("court_id", "court_id is required")
	}
	if validator.IsEmpty(r.ClientID) {
		errs.Add("client_id", "client_id is required")
	}

	start, startOK := validator.IsValidDateTime(r.StartTime)
	if !startOK {
		errs.Add("start_time", "start_time must be an RFC3339 timestamp")
	}
	end, endOK := validator.IsValidDateTime(r.EndTime)
	if !endOK {
		errs.Add("end_time", "end_time must be an RFC3339 timestamp")
	}
	r.start, r.end = start, end

	return errs.OrNil()
}

// Interval returns the parsed time range; only meaningful after Validate succeeded.
func (r *CreateReservationRequest) Interval() (time.Time, time.Time) {
	return r.start, r.end
}

// CreateRecurringRequest books the same weekly slot for a number of weeks.
type CreateRecurringRequest struct {
	CreateReservationRequest
	Weeks int `json:"weeks"`
}

func (r *CreateRecurringRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := r.CreateReservationRequest.Validate(); err != nil {
		if v, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, v...)
		}
	}
	if r.Weeks < 1 || r.Weeks > 12 {
		errs.Add("weeks", "weeks must be between 1 and 12")
	}
	return errs.OrNil()
}

type ListReservationsFilter struct {
	ComplexID string
	CourtID   string
	Status    *Status
	Date      *time.Time // day in the complex timezone
}
