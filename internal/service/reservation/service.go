package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pierreiost/quadracerta/internal/domain/client"
	"github.com/pierreiost/quadracerta/internal/domain/court"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
	"github.com/pierreiost/quadracerta/internal/pkg/database"
)

type ReservationServiceImpl struct {
	tx database.Transactor
	reservation.ReservationRepository
	courts  court.CourtRepository
	clients client.ClientRepository
	loc     *time.Location
	now     func() time.Time
}

func NewReservationService(
	tx database.Transactor,
	repo reservation.ReservationRepository,
	courts court.CourtRepository,
	clients client.ClientRepository,
	loc *time.Location,
) reservation.ReservationService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReservationServiceImpl{
		tx:                    tx,
		ReservationRepository: repo,
		courts:                courts,
		clients:               clients,
		loc:                   loc,
		now:                   time.Now,
	}
}

// checkParties loads the court and client and makes sure both belong to the complex
// and the court accepts bookings.
func (s *ReservationServiceImpl) checkParties(ctx context.Context, req reservation.CreateReservationRequest) (court.Court, client.Client, error) {
	c, err := s.courts.GetByID(ctx, req.CourtID, req.ComplexID)
	if err != nil {
		return court.Court{}, client.Client{}, err
	}
	if !c.Status.Bookable() {
		return court.Court{}, client.Client{}, reservation.ErrCourtUnavailable
	}

	cl, err := s.clients.GetByID(ctx, req.ClientID, req.ComplexID)
	if err != nil {
		return court.Court{}, client.Client{}, err
	}
	return c, cl, nil
}

func initialStatus(req reservation.CreateReservationRequest) reservation.Status {
	if req.Confirmed {
		return reservation.StatusConfirmed
	}
	return reservation.StatusPending
}

// book checks the slot and inserts. Must run inside a transaction holding the court lock.
func (s *ReservationServiceImpl) book(ctx context.Context, r reservation.Reservation) (reservation.Reservation, error) {
	taken, err := s.HasOverlap(ctx, r.CourtID, r.StartTime, r.EndTime)
	if err != nil {
		return reservation.Reservation{}, err
	}
	if taken {
		return reservation.Reservation{}, fmt.Errorf("%w: %s", reservation.ErrTimeSlotTaken, r.StartTime.In(s.loc).Format("2006-01-02 15:04"))
	}
	return s.ReservationRepository.Create(ctx, r)
}

// Create implements reservation.ReservationService.
func (s *ReservationServiceImpl) Create(ctx context.Context, req reservation.CreateReservationRequest) (reservation.ReservationResponse, error) {
	if err := req.Validate(); err != nil {
		return reservation.ReservationResponse{}, err
	}
	start, end := req.Interval()
	if !end.After(start) {
		return reservation.ReservationResponse{}, reservation.ErrInvalidTimeRange
	}

	c, cl, err := s.checkParties(ctx, req)
	if err != nil {
		return reservation.ReservationResponse{}, err
	}

	var created reservation.Reservation
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.LockCourt(txCtx, c.ID); err != nil {
			return err
		}
		created, err = s.book(txCtx, reservation.Reservation{
			CourtID:        c.ID,
			ClientID:       cl.ID,
			StartTime:      start,
			EndTime:        end,
			Status:         initialStatus(req),
			Notes:          req.Notes,
			CourtName:      c.Name,
			ClientFullName: cl.FullName,
		})
		return err
	})
	if err != nil {
		return reservation.ReservationResponse{}, err
	}

	slog.Info("Reservation created", "reservation_id", created.ID, "court_id", c.ID, "status", created.Status)
	return reservation.ToResponse(created), nil
}

// CreateRecurring implements reservation.ReservationService. Every occurrence is booked
// in one transaction; a single conflict rejects the whole series.
func (s *ReservationServiceImpl) CreateRecurring(ctx context.Context, req reservation.CreateRecurringRequest) ([]reservation.ReservationResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	start, end := req.Interval()
	if !end.After(start) {
		return nil, reservation.ErrInvalidTimeRange
	}

	c, cl, err := s.checkParties(ctx, req.CreateReservationRequest)
	if err != nil {
		return nil, err
	}

	groupID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate recurring group id: %w", err)
	}
	group := groupID.String()
	duration := end.Sub(start)
	localStart := start.In(s.loc)

	created := make([]reservation.Reservation, 0, req.Weeks)
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.LockCourt(txCtx, c.ID); err != nil {
			return err
		}
		for week := 0; week < req.Weeks; week++ {
			occurrenceStart := localStart.AddDate(0, 0, 7*week)
			r, err := s.book(txCtx, reservation.Reservation{
				CourtID:          c.ID,
				ClientID:         cl.ID,
				StartTime:        occurrenceStart,
				EndTime:          occurrenceStart.Add(duration),
				Status:           initialStatus(req.CreateReservationRequest),
				IsRecurring:      true,
				RecurringGroupID: &group,
				Notes:            req.Notes,
				CourtName:        c.Name,
				ClientFullName:   cl.FullName,
			})
			if err != nil {
				return err
			}
			created = append(created, r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Recurring reservations created", "recurring_group_id", group, "court_id", c.ID, "weeks", req.Weeks)

	resp := make([]reservation.ReservationResponse, 0, len(created))
	for _, r := range created {
		resp = append(resp, reservation.ToResponse(r))
	}
	return resp, nil
}

// List implements reservation.ReservationService.
func (s *ReservationServiceImpl) List(ctx context.Context, filter reservation.ListReservationsFilter) ([]reservation.ReservationResponse, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, reservation.ErrInvalidStatus
	}
	reservations, err := s.ReservationRepository.List(ctx, filter, s.loc)
	if err != nil {
		return nil, err
	}
	resp := make([]reservation.ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		resp = append(resp, reservation.ToResponse(r))
	}
	return resp, nil
}

// Get implements reservation.ReservationService.
func (s *ReservationServiceImpl) Get(ctx context.Context, id string, complexID string) (reservation.ReservationResponse, error) {
	found, err := s.GetByID(ctx, id, complexID)
	if err != nil {
		return reservation.ReservationResponse{}, err
	}
	return reservation.ToResponse(found), nil
}

func (s *ReservationServiceImpl) transition(ctx context.Context, id string, complexID string, next reservation.Status) (reservation.ReservationResponse, error) {
	found, err := s.GetByID(ctx, id, complexID)
	if err != nil {
		return reservation.ReservationResponse{}, err
	}
	if !found.Status.CanTransitionTo(next) {
		return reservation.ReservationResponse{}, reservation.ErrInvalidStatusTransition
	}
	if err := s.UpdateStatus(ctx, id, found.Status, next); err != nil {
		return reservation.ReservationResponse{}, err
	}

	slog.Info("Reservation status changed", "reservation_id", id, "from", found.Status, "to", next)
	found.Status = next
	return reservation.ToResponse(found), nil
}

// Confirm implements reservation.ReservationService.
func (s *ReservationServiceImpl) Confirm(ctx context.Context, id string, complexID string) (reservation.ReservationResponse, error) {
	return s.transition(ctx, id, complexID, reservation.StatusConfirmed)
}

// Cancel implements reservation.ReservationService.
func (s *ReservationServiceImpl) Cancel(ctx context.Context, id string, complexID string) (reservation.ReservationResponse, error) {
	return s.transition(ctx, id, complexID, reservation.StatusCancelled)
}

// Complete implements reservation.ReservationService.
func (s *ReservationServiceImpl) Complete(ctx context.Context, id string, complexID string) (reservation.ReservationResponse, error) {
	return s.transition(ctx, id, complexID, reservation.StatusCompleted)
}

// CompleteFinished implements reservation.ReservationService.
func (s *ReservationServiceImpl) CompleteFinished(ctx context.Context) error {
	n, err := s.ReservationRepository.CompleteFinished(ctx, s.now())
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("Finished reservations completed", "count", n)
	}
	return nil
}
