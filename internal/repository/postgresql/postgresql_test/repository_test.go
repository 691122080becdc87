package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/pierreiost/quadracerta/internal/domain/court"
	"github.com/pierreiost/quadracerta/internal/domain/product"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
	"github.com/pierreiost/quadracerta/internal/domain/tab"
	"github.com/pierreiost/quadracerta/internal/repository/postgresql"
	notificationService "github.com/pierreiost/quadracerta/internal/service/notification"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_AdjustStock(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	tn := seedTenant(t, setup.DB, "Arena Norte")
	repo := postgresql.NewProductRepository(setup.DB)
	p := seedProduct(t, setup.DB, tn.complexID, "Água", 2)

	stock, err := repo.AdjustStock(ctx, p.ID, tn.complexID, -2)
	require.NoError(t, err)
	assert.Equal(t, 0, stock)

	_, err = repo.AdjustStock(ctx, p.ID, tn.complexID, -1)
	assert.ErrorIs(t, err, product.ErrInsufficientStock)

	_, err = repo.AdjustStock(ctx, p.ID, "0190a3b2-7c4d-7e5f-8a9b-0c1d2e3f4a5b", 1)
	assert.ErrorIs(t, err, product.ErrProductNotFound)
}

func TestReservationRepository_OverlapAndSweep(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	tn := seedTenant(t, setup.DB, "Arena Sul")
	repo := postgresql.NewReservationRepository(setup.DB)

	start := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	seedReservation(t, setup.DB, tn, start, reservation.StatusConfirmed)
	cancelled := seedReservation(t, setup.DB, tn, start.Add(2*time.Hour), reservation.StatusConfirmed)
	require.NoError(t, repo.UpdateStatus(ctx, cancelled.ID, reservation.StatusConfirmed, reservation.StatusCancelled))
	// a second writer that still sees CONFIRMED must not revive it
	assert.ErrorIs(t, repo.UpdateStatus(ctx, cancelled.ID, reservation.StatusConfirmed, reservation.StatusCompleted), reservation.ErrInvalidStatusTransition)

	overlap, err := repo.HasOverlap(ctx, tn.courtID, start.Add(30*time.Minute), start.Add(90*time.Minute))
	require.NoError(t, err)
	assert.True(t, overlap)

	// back-to-back slots do not overlap
	overlap, err = repo.HasOverlap(ctx, tn.courtID, start.Add(time.Hour), start.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, overlap)

	// cancelled reservations free the slot
	overlap, err = repo.HasOverlap(ctx, tn.courtID, start.Add(2*time.Hour), start.Add(3*time.Hour))
	require.NoError(t, err)
	assert.False(t, overlap)

	completed, err := repo.CompleteFinished(ctx, start.Add(5*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)

	assert.ErrorIs(t, repo.LockCourt(ctx, "0190a3b2-7c4d-7e5f-8a9b-0c1d2e3f4a5b"), reservation.ErrCourtUnavailable)
}

func TestTabRepository_OneOpenTabPerClient(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	tn := seedTenant(t, setup.DB, "Arena Leste")
	repo := postgresql.NewTabRepository(setup.DB)

	first, err := repo.Create(ctx, tab.Tab{ClientID: tn.clientID, Status: tab.StatusOpen, Total: decimal.Zero})
	require.NoError(t, err)
	assert.Equal(t, tn.complexID, first.ComplexID)

	_, err = repo.Create(ctx, tab.Tab{ClientID: tn.clientID, Status: tab.StatusOpen, Total: decimal.Zero})
	assert.ErrorIs(t, err, tab.ErrTabAlreadyOpen)

	require.NoError(t, repo.UpdateStatus(ctx, first.ID, tab.StatusClosed))
	closed, err := repo.GetByID(ctx, first.ID, tn.complexID)
	require.NoError(t, err)
	assert.NotNil(t, closed.ClosedAt)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, first.ID, tab.StatusCancelled), tab.ErrTabNotOpen)

	require.NoError(t, repo.LockTab(ctx, first.ID, tn.complexID))
	other := seedTenant(t, setup.DB, "Arena Norte")
	assert.ErrorIs(t, repo.LockTab(ctx, first.ID, other.complexID), tab.ErrTabNotFound)

	_, err = repo.Create(ctx, tab.Tab{ClientID: tn.clientID, Status: tab.StatusOpen, Total: decimal.Zero})
	assert.NoError(t, err)
}

func TestNotificationSource_FeedIsTenantScoped(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	own := seedTenant(t, setup.DB, "Arena Oeste")
	other := seedTenant(t, setup.DB, "Arena Centro")

	now := time.Now().UTC().Truncate(time.Second)

	seedProduct(t, setup.DB, own.complexID, "Gatorade", 0)
	seedProduct(t, setup.DB, own.complexID, "Água", 20)
	seedProduct(t, setup.DB, other.complexID, "Cerveja", 0)

	seedReservation(t, setup.DB, own, now.Add(12*time.Minute), reservation.StatusConfirmed)
	seedReservation(t, setup.DB, other, now.Add(12*time.Minute), reservation.StatusConfirmed)
	seedReservation(t, setup.DB, own, now.Add(48*time.Hour), reservation.StatusPending)

	tabs := postgresql.NewTabRepository(setup.DB)
	stale, err := tabs.Create(ctx, tab.Tab{ClientID: own.clientID, Status: tab.StatusOpen, Total: decimal.RequireFromString("45.00")})
	require.NoError(t, err)
	_, err = setup.DB.Exec(ctx, `UPDATE tabs SET created_at = $1 WHERE id = $2`, now.Add(-7*time.Hour), stale.ID)
	require.NoError(t, err)

	require.NoError(t, postgresql.NewCourtRepository(setup.DB).UpdateStatus(ctx, own.courtID, own.complexID, court.StatusMaintenance))

	svc := notificationService.NewNotificationService(postgresql.NewNotificationSource(setup.DB), notificationService.Config{
		Now: func() time.Time { return now },
	})

	feed, err := svc.GetFeed(ctx, own.complexID)
	require.NoError(t, err)

	ids := make(map[string]string, len(feed.Notifications))
	for _, n := range feed.Notifications {
		ids[n.ID] = string(n.Type)
	}
	assert.Len(t, feed.Notifications, 5)
	assert.Equal(t, feed.Count, feed.Summary.High+feed.Summary.Medium+feed.Summary.Low)
	assert.Contains(t, ids, "tab-"+stale.ID)
	assert.Contains(t, ids, "maintenance-"+own.courtID)
	for id := range ids {
		assert.NotContains(t, id, other.courtID)
	}

	summary, err := svc.GetSummaryCount(ctx, own.complexID)
	require.NoError(t, err)
	// out of stock + reservation in 15 min + tab older than 6h
	assert.Equal(t, 3, summary.Count)
}
