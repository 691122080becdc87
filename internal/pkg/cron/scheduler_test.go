package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pierreiost/quadracerta/internal/domain/auth"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyAndStops(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("counter", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)

	s.Stop()
	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_StopsWithParentContext(t *testing.T) {
	var runs atomic.Int32
	s := NewScheduler()
	s.AddJob("fast", 10*time.Millisecond, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	s.Stop()
	stopped := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load())
}

func TestScheduler_SkipsDisabledJobs(t *testing.T) {
	s := NewScheduler()
	s.AddJob("disabled", 0, func(ctx context.Context) error { return nil })
	s.AddJob("enabled", time.Minute, func(ctx context.Context) error { return nil })

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "enabled", jobs[0].Name)
}

func TestScheduler_RunOnceContinuesAfterFailure(t *testing.T) {
	var second bool
	s := NewScheduler()
	s.AddJob("failing", time.Minute, func(ctx context.Context) error { return errors.New("boom") })
	s.AddJob("second", time.Minute, func(ctx context.Context) error {
		second = true
		return nil
	})

	s.RunOnce(context.Background())
	assert.True(t, second)
}

type stubReservationService struct {
	reservation.ReservationService
	calls int
	err   error
}

func (s *stubReservationService) CompleteFinished(ctx context.Context) error {
	s.calls++
	return s.err
}

type stubTokenRepository struct {
	auth.TokenRepository
	deleted int64
	err     error
}

func (s *stubTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	return s.deleted, s.err
}

func TestMaintenanceJobs(t *testing.T) {
	reservations := &stubReservationService{}
	tokens := &stubTokenRepository{deleted: 4}
	jobs := NewMaintenanceJobs(reservations, tokens)

	s := NewScheduler()
	jobs.RegisterJobs(s, 5*time.Minute, time.Hour)

	registered := s.Jobs()
	require.Len(t, registered, 2)
	assert.Equal(t, JobReservationSweep, registered[0].Name)
	assert.Equal(t, 5*time.Minute, registered[0].Interval)
	assert.Equal(t, JobRefreshTokenCleanup, registered[1].Name)

	s.RunOnce(context.Background())
	assert.Equal(t, 1, reservations.calls)

	reservations.err = errors.New("db down")
	err := jobs.CompleteFinishedReservations(context.Background())
	assert.ErrorContains(t, err, "db down")

	tokens.err = errors.New("db down")
	assert.Error(t, jobs.DeleteExpiredRefreshTokens(context.Background()))
}
