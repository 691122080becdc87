package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/pierreiost/quadracerta/internal/domain/client"
	"github.com/pierreiost/quadracerta/internal/domain/court"
	"github.com/pierreiost/quadracerta/internal/domain/product"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
	"github.com/pierreiost/quadracerta/internal/domain/sportcomplex"
	"github.com/pierreiost/quadracerta/internal/pkg/database"
	"github.com/pierreiost/quadracerta/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// tenant is a complex with one court and one client
type tenant struct {
	complexID string
	courtID   string
	clientID  string
}

func seedTenant(t *testing.T, db *database.DB, name string) tenant {
	t.Helper()
	ctx := context.Background()

	cx, err := postgresql.NewComplexRepository(db).Create(ctx, sportcomplex.Complex{Name: name})
	require.NoError(t, err)

	ct, err := postgresql.NewCourtRepository(db).Create(ctx, court.Court{
		ComplexID:    cx.ID,
		Name:         "Quadra 1",
		SportType:    "beach_tennis",
		Status:       court.StatusAvailable,
		PricePerHour: decimal.NewFromInt(120),
	})
	require.NoError(t, err)

	cl, err := postgresql.NewClientRepository(db).Create(ctx, client.Client{
		ComplexID: cx.ID,
		FullName:  "João Silva",
		Phone:     "11987654321",
	})
	require.NoError(t, err)

	return tenant{complexID: cx.ID, courtID: ct.ID, clientID: cl.ID}
}

func seedProduct(t *testing.T, db *database.DB, complexID string, name string, stock int) product.Product {
	t.Helper()
	p, err := postgresql.NewProductRepository(db).Create(context.Background(), product.Product{
		ComplexID: complexID,
		Name:      name,
		Price:     decimal.RequireFromString("6.50"),
		Stock:     stock,
		Unit:      "un",
	})
	require.NoError(t, err)
	return p
}

func seedReservation(t *testing.T, db *database.DB, tn tenant, start time.Time, status reservation.Status) reservation.Reservation {
	t.Helper()
	r, err := postgresql.NewReservationRepository(db).Create(context.Background(), reservation.Reservation{
		CourtID:   tn.courtID,
		ClientID:  tn.clientID,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Status:    status,
	})
	require.NoError(t, err)
	return r
}
