package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
	"github.com/pierreiost/quadracerta/internal/pkg/database"
)

type reservationRepositoryImpl struct {
	db *database.DB
}

func NewReservationRepository(db *database.DB) reservation.ReservationRepository {
	return &reservationRepositoryImpl{db: db}
}

const reservationSelect = `
	SELECT r.id, r.court_id, r.client_id, r.start_time, r.end_time, r.status,
	       r.is_recurring, r.recurring_group_id, r.notes, r.created_at, r.updated_at,
	       co.name, cl.full_name
	FROM reservations r
	JOIN courts co ON co.id = r.court_id
	JOIN clients cl ON cl.id = r.client_id
`

func scanReservation(row pgx.Row) (reservation.Reservation, error) {
	var r reservation.Reservation
	err := row.Scan(
		&r.ID,
		&r.CourtID,
		&r.ClientID,
		&r.StartTime,
		&r.EndTime,
		&r.Status,
		&r.IsRecurring,
		&r.RecurringGroupID,
		&r.Notes,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.CourtName,
		&r.ClientFullName,
	)
	return r, err
}

func collectReservations(rows pgx.Rows) ([]reservation.Reservation, error) {
	defer rows.Close()

	reservations := make([]reservation.Reservation, 0)
	for rows.Next() {
		r, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reservation: %w", err)
		}
		reservations = append(reservations, r)
	}
	return reservations, rows.Err()
}

// Create implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) Create(ctx context.Context, res reservation.Reservation) (reservation.Reservation, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return reservation.Reservation{}, err
	}

	var created reservation.Reservation
	err = q.QueryRow(ctx, `
		INSERT INTO reservations (id, court_id, client_id, start_time, end_time, status, is_recurring, recurring_group_id, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, court_id, client_id, start_time, end_time, status, is_recurring, recurring_group_id, notes, created_at, updated_at
	`, id, res.CourtID, res.ClientID, res.StartTime, res.EndTime, res.Status, res.IsRecurring, res.RecurringGroupID, res.Notes).Scan(
		&created.ID,
		&created.CourtID,
		&created.ClientID,
		&created.StartTime,
		&created.EndTime,
		&created.Status,
		&created.IsRecurring,
		&created.RecurringGroupID,
		&created.Notes,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return reservation.Reservation{}, fmt.Errorf("failed to create reservation: %w", err)
	}
	created.CourtName = res.CourtName
	created.ClientFullName = res.ClientFullName
	return created, nil
}

// GetByID implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) GetByID(ctx context.Context, id string, complexID string) (reservation.Reservation, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanReservation(q.QueryRow(ctx, reservationSelect+` WHERE r.id = $1 AND co.complex_id = $2`, id, complexID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reservation.Reservation{}, reservation.ErrReservationNotFound
		}
		return reservation.Reservation{}, err
	}
	return found, nil
}

// List implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) List(ctx context.Context, filter reservation.ListReservationsFilter, loc *time.Location) ([]reservation.Reservation, error) {
	q := GetQuerier(ctx, r.db)

	query := reservationSelect + ` WHERE co.complex_id = $1`
	args := []interface{}{filter.ComplexID}

	if filter.CourtID != "" {
		args = append(args, filter.CourtID)
		query += fmt.Sprintf(" AND r.court_id = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND r.status = $%d", len(args))
	}
	if filter.Date != nil {
		d := filter.Date.In(loc)
		dayStart := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		args = append(args, dayStart, dayStart.AddDate(0, 0, 1))
		query += fmt.Sprintf(" AND r.start_time >= $%d AND r.start_time < $%d", len(args)-1, len(args))
	}
	query += ` ORDER BY r.start_time`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return collectReservations(rows)
}

// UpdateStatus implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) UpdateStatus(ctx context.Context, id string, from reservation.Status, to reservation.Status) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE reservations
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`, to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return reservation.ErrInvalidStatusTransition
	}
	return nil
}

// HasOverlap implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) HasOverlap(ctx context.Context, courtID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM reservations
			WHERE court_id = $1
			  AND status IN ('PENDING', 'CONFIRMED')
			  AND start_time < $3
			  AND end_time > $2
		)
	`, courtID, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check reservation overlap: %w", err)
	}
	return exists, nil
}

// CompleteFinished implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) CompleteFinished(ctx context.Context, now time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE reservations
		SET status = 'COMPLETED', updated_at = NOW()
		WHERE status = 'CONFIRMED' AND end_time < $1
	`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to complete finished reservations: %w", err)
	}
	return tag.RowsAffected(), nil
}

// LockCourt implements reservation.ReservationRepository.
func (r *reservationRepositoryImpl) LockCourt(ctx context.Context, courtID string) error {
	q := GetQuerier(ctx, r.db)

	var id string
	if err := q.QueryRow(ctx, `SELECT id FROM courts WHERE id = $1 FOR UPDATE`, courtID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return reservation.ErrCourtUnavailable
		}
		return fmt.Errorf("failed to lock court %s: %w", courtID, err)
	}
	return nil
}
