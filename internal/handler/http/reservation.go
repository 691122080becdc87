package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
	"github.com/pierreiost/quadracerta/internal/handler/http/response"
)

type ReservationHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	CreateRecurring(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
}

type ReservationHandlerImpl struct {
	reservationService reservation.ReservationService
	loc                *time.Location
}

// Create implements ReservationHandler.
func (h *ReservationHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req reservation.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create reservation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}
	req.ComplexID = claims.ComplexID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.reservationService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create reservation", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Reservation created successfully", created)
}

// CreateRecurring implements ReservationHandler.
func (h *ReservationHandlerImpl) CreateRecurring(w http.ResponseWriter, r *http.Request) {
	var req reservation.CreateRecurringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create recurring reservation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}
	req.ComplexID = claims.ComplexID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.reservationService.CreateRecurring(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create recurring reservation", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Recurring reservations created successfully", created)
}

// List implements ReservationHandler.
func (h *ReservationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := reservation.ListReservationsFilter{
		ComplexID: claims.ComplexID,
		CourtID:   query.Get("courtId"),
	}
	if status := query.Get("status"); status != "" {
		s := reservation.Status(status)
		filter.Status = &s
	}
	if date := query.Get("date"); date != "" {
		day, err := time.ParseInLocation("2006-01-02", date, h.loc)
		if err != nil {
			response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
			return
		}
		filter.Date = &day
	}

	reservations, err := h.reservationService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, reservations)
}

// Get implements ReservationHandler.
func (h *ReservationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	found, err := h.reservationService.Get(r.Context(), chi.URLParam(r, "id"), claims.ComplexID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

func (h *ReservationHandlerImpl) transition(w http.ResponseWriter, r *http.Request, message string, apply func(id string, complexID string) (reservation.ReservationResponse, error)) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	updated, err := apply(chi.URLParam(r, "id"), claims.ComplexID)
	if err != nil {
		slog.Error("Reservation transition error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, message, updated)
}

// Confirm implements ReservationHandler.
func (h *ReservationHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Reservation confirmed", func(id string, complexID string) (reservation.ReservationResponse, error) {
		return h.reservationService.Confirm(r.Context(), id, complexID)
	})
}

// Cancel implements ReservationHandler.
func (h *ReservationHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Reservation cancelled", func(id string, complexID string) (reservation.ReservationResponse, error) {
		return h.reservationService.Cancel(r.Context(), id, complexID)
	})
}

// Complete implements ReservationHandler.
func (h *ReservationHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "Reservation completed", func(id string, complexID string) (reservation.ReservationResponse, error) {
		return h.reservationService.Complete(r.Context(), id, complexID)
	})
}

func NewReservationHandler(reservationService reservation.ReservationService, loc *time.Location) ReservationHandler {
	return &ReservationHandlerImpl{
		reservationService: reservationService,
		loc:                loc,
	}
}
