package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pierreiost/quadracerta/internal/domain/auth"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
)

const (
	JobReservationSweep    = "reservation-sweep"
	JobRefreshTokenCleanup = "refresh-token-cleanup"
)

// MaintenanceJobs keeps reservation statuses and the refresh token table tidy
type MaintenanceJobs struct {
	reservations reservation.ReservationService
	tokens       auth.TokenRepository
}

func NewMaintenanceJobs(reservations reservation.ReservationService, tokens auth.TokenRepository) *MaintenanceJobs {
	return &MaintenanceJobs{
		reservations: reservations,
		tokens:       tokens,
	}
}

func (j *MaintenanceJobs) RegisterJobs(scheduler *Scheduler, sweepInterval time.Duration, cleanupInterval time.Duration) {
	scheduler.AddJob(JobReservationSweep, sweepInterval, j.CompleteFinishedReservations)
	scheduler.AddJob(JobRefreshTokenCleanup, cleanupInterval, j.DeleteExpiredRefreshTokens)
}

// CompleteFinishedReservations marks CONFIRMED reservations that already ended as COMPLETED
func (j *MaintenanceJobs) CompleteFinishedReservations(ctx context.Context) error {
	if err := j.reservations.CompleteFinished(ctx); err != nil {
		return fmt.Errorf("failed to complete finished reservations: %w", err)
	}
	return nil
}

func (j *MaintenanceJobs) DeleteExpiredRefreshTokens(ctx context.Context) error {
	deleted, err := j.tokens.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete expired refresh tokens: %w", err)
	}
	if deleted > 0 {
		slog.Info("Cron: refresh tokens removed", "count", deleted)
	}
	return nil
}
