package tab

import (
	"context"
	"fmt"
	"testing"

	"github.com/pierreiost/quadracerta/internal/domain/client"
	"github.com/pierreiost/quadracerta/internal/domain/product"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
	"github.com/pierreiost/quadracerta/internal/domain/tab"
	"github.com/pierreiost/quadracerta/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const complexID = "0190a3b2-7c4d-7e5f-8a9b-0c1d2e3f4a5b"

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memTabs struct {
	tabs  map[string]tab.Tab
	items map[string][]tab.TabItem
	seq   int

	locked []string
	// onLock runs once the row lock is granted, standing in for a transaction
	// that committed while this one was waiting.
	onLock func(id string)
}

func newMemTabs() *memTabs {
	return &memTabs{tabs: map[string]tab.Tab{}, items: map[string][]tab.TabItem{}}
}

func (m *memTabs) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memTabs) Create(_ context.Context, t tab.Tab) (tab.Tab, error) {
	t.ID = m.nextID("tab")
	t.ComplexID = complexID
	m.tabs[t.ID] = t
	return t, nil
}

func (m *memTabs) GetByID(_ context.Context, id string, complexID string) (tab.Tab, error) {
	t, ok := m.tabs[id]
	if !ok || t.ComplexID != complexID {
		return tab.Tab{}, tab.ErrTabNotFound
	}
	return t, nil
}

func (m *memTabs) List(_ context.Context, _ tab.ListTabsFilter) ([]tab.Tab, error) {
	var out []tab.Tab
	for _, t := range m.tabs {
		out = append(out, t)
	}
	return out, nil
}

func (m *memTabs) HasOpenTab(_ context.Context, clientID string) (bool, error) {
	for _, t := range m.tabs {
		if t.ClientID == clientID && t.IsOpen() {
			return true, nil
		}
	}
	return false, nil
}

func (m *memTabs) LockTab(_ context.Context, id string, complexID string) error {
	t, ok := m.tabs[id]
	if !ok || t.ComplexID != complexID {
		return tab.ErrTabNotFound
	}
	m.locked = append(m.locked, id)
	if m.onLock != nil {
		m.onLock(id)
	}
	return nil
}

func (m *memTabs) UpdateStatus(_ context.Context, id string, status tab.Status) error {
	t := m.tabs[id]
	if !t.IsOpen() {
		return tab.ErrTabNotOpen
	}
	t.Status = status
	m.tabs[id] = t
	return nil
}

func (m *memTabs) UpdateTotal(_ context.Context, id string, total decimal.Decimal) error {
	t := m.tabs[id]
	t.Total = total
	m.tabs[id] = t
	return nil
}

func (m *memTabs) ListItems(_ context.Context, tabID string) ([]tab.TabItem, error) {
	return append([]tab.TabItem(nil), m.items[tabID]...), nil
}

func (m *memTabs) AddItem(_ context.Context, item tab.TabItem) (tab.TabItem, error) {
	item.ID = m.nextID("item")
	m.items[item.TabID] = append(m.items[item.TabID], item)
	return item, nil
}

func (m *memTabs) GetItem(_ context.Context, tabID string, itemID string) (tab.TabItem, error) {
	for _, item := range m.items[tabID] {
		if item.ID == itemID {
			return item, nil
		}
	}
	return tab.TabItem{}, tab.ErrTabItemNotFound
}

func (m *memTabs) RemoveItem(_ context.Context, tabID string, itemID string) error {
	items := m.items[tabID]
	for i, item := range items {
		if item.ID == itemID {
			m.items[tabID] = append(items[:i], items[i+1:]...)
			return nil
		}
	}
	return tab.ErrTabItemNotFound
}

type memProducts struct {
	product.ProductRepository
	products map[string]product.Product
}

func (m *memProducts) GetByID(_ context.Context, id string, complexID string) (product.Product, error) {
	p, ok := m.products[id]
	if !ok || p.ComplexID != complexID {
		return product.Product{}, product.ErrProductNotFound
	}
	return p, nil
}

func (m *memProducts) AdjustStock(_ context.Context, id string, complexID string, delta int) (int, error) {
	p, ok := m.products[id]
	if !ok || p.ComplexID != complexID {
		return 0, product.ErrProductNotFound
	}
	if p.Stock+delta < 0 {
		return p.Stock, product.ErrInsufficientStock
	}
	p.Stock += delta
	m.products[id] = p
	return p.Stock, nil
}

type stubClients struct {
	client.ClientRepository
}

func (stubClients) GetByID(_ context.Context, id string, cid string) (client.Client, error) {
	if id != "client-1" || cid != complexID {
		return client.Client{}, client.ErrClientNotFound
	}
	return client.Client{ID: id, ComplexID: cid}, nil
}

type stubReservations struct {
	reservation.ReservationRepository
}

func (stubReservations) GetByID(_ context.Context, id string, cid string) (reservation.Reservation, error) {
	if id != "res-1" || cid != complexID {
		return reservation.Reservation{}, reservation.ErrReservationNotFound
	}
	return reservation.Reservation{ID: id}, nil
}

type fixture struct {
	svc      tab.TabService
	tabs     *memTabs
	products *memProducts
}

func newFixture() fixture {
	tabs := newMemTabs()
	products := &memProducts{products: map[string]product.Product{
		"beer":  {ID: "beer", ComplexID: complexID, Name: "Beer", Price: decimal.RequireFromString("8.50"), Stock: 10},
		"water": {ID: "water", ComplexID: complexID, Name: "Water", Price: decimal.RequireFromString("3.00"), Stock: 1},
	}}
	return fixture{
		svc:      NewTabService(passthroughTx{}, tabs, products, stubClients{}, stubReservations{}),
		tabs:     tabs,
		products: products,
	}
}

func (f fixture) open(t *testing.T) tab.TabResponse {
	t.Helper()
	resp, err := f.svc.Open(context.Background(), tab.OpenTabRequest{ComplexID: complexID, ClientID: "client-1"})
	require.NoError(t, err)
	return resp
}

func TestOpen(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp := f.open(t)
	assert.Equal(t, tab.StatusOpen, resp.Status)
	assert.True(t, resp.Total.IsZero())
	assert.Empty(t, resp.Items)

	_, err := f.svc.Open(ctx, tab.OpenTabRequest{ComplexID: complexID, ClientID: "client-1"})
	assert.ErrorIs(t, err, tab.ErrTabAlreadyOpen)
}

func TestOpen_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.Open(ctx, tab.OpenTabRequest{ComplexID: complexID})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.Open(ctx, tab.OpenTabRequest{ComplexID: complexID, ClientID: "client-2"})
	assert.ErrorIs(t, err, client.ErrClientNotFound)

	missing := "res-9"
	_, err = f.svc.Open(ctx, tab.OpenTabRequest{ComplexID: complexID, ClientID: "client-1", ReservationID: &missing})
	assert.ErrorIs(t, err, reservation.ErrReservationNotFound)

	linked := "res-1"
	resp, err := f.svc.Open(ctx, tab.OpenTabRequest{ComplexID: complexID, ClientID: "client-1", ReservationID: &linked})
	require.NoError(t, err)
	require.NotNil(t, resp.ReservationID)
	assert.Equal(t, "res-1", *resp.ReservationID)
}

func TestAddItem_DecrementsStockAndRecomputesTotal(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	opened := f.open(t)

	resp, err := f.svc.AddItem(ctx, tab.AddItemRequest{TabID: opened.ID, ComplexID: complexID, ProductID: "beer", Quantity: 2})
	require.NoError(t, err)
	resp, err = f.svc.AddItem(ctx, tab.AddItemRequest{TabID: opened.ID, ComplexID: complexID, ProductID: "water", Quantity: 1})
	require.NoError(t, err)

	assert.Len(t, resp.Items, 2)
	assert.Equal(t, "20.00", resp.Total.StringFixed(2))
	assert.Equal(t, 8, f.products.products["beer"].Stock)
	assert.Equal(t, 0, f.products.products["water"].Stock)
}

func TestAddItem_InsufficientStock(t *testing.T) {
	f := newFixture()
	opened := f.open(t)

	_, err := f.svc.AddItem(context.Background(), tab.AddItemRequest{TabID: opened.ID, ComplexID: complexID, ProductID: "water", Quantity: 2})
	assert.ErrorIs(t, err, product.ErrInsufficientStock)
	assert.Equal(t, 1, f.products.products["water"].Stock)
	assert.Empty(t, f.tabs.items[opened.ID])
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	f := newFixture()
	opened := f.open(t)

	_, err := f.svc.AddItem(context.Background(), tab.AddItemRequest{TabID: opened.ID, ComplexID: complexID, ProductID: "beer", Quantity: 0})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestRemoveItem_RestoresStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	opened := f.open(t)

	resp, err := f.svc.AddItem(ctx, tab.AddItemRequest{TabID: opened.ID, ComplexID: complexID, ProductID: "beer", Quantity: 3})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)

	resp, err = f.svc.RemoveItem(ctx, opened.ID, resp.Items[0].ID, complexID)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.True(t, resp.Total.IsZero())
	assert.Equal(t, 10, f.products.products["beer"].Stock)

	_, err = f.svc.RemoveItem(ctx, opened.ID, "item-404", complexID)
	assert.ErrorIs(t, err, tab.ErrTabItemNotFound)
}

func TestClose(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	opened := f.open(t)

	_, err := f.svc.AddItem(ctx, tab.AddItemRequest{TabID: opened.ID, ComplexID: complexID, ProductID: "beer", Quantity: 1})
	require.NoError(t, err)

	resp, err := f.svc.Close(ctx, opened.ID, complexID)
	require.NoError(t, err)
	assert.Equal(t, tab.StatusClosed, resp.Status)
	assert.Equal(t, "8.50", resp.Total.StringFixed(2))
	assert.Equal(t, 9, f.products.products["beer"].Stock)

	_, err = f.svc.AddItem(ctx, tab.AddItemRequest{TabID: opened.ID, ComplexID: complexID, ProductID: "beer", Quantity: 1})
	assert.ErrorIs(t, err, tab.ErrTabNotOpen)
	_, err = f.svc.Close(ctx, opened.ID, complexID)
	assert.ErrorIs(t, err, tab.ErrTabNotOpen)
	_, err = f.svc.Cancel(ctx, opened.ID, complexID)
	assert.ErrorIs(t, err, tab.ErrTabNotOpen)

	// a closed tab frees the client for a new one
	f.open(t)
}

func TestCancel_RestoresAllStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	opened := f.open(t)

	_, err := f.svc.AddItem(ctx, tab.AddItemRequest{TabID: opened.ID, ComplexID: complexID, ProductID: "beer", Quantity: 4})
	require.NoError(t, err)
	_, err = f.svc.AddItem(ctx, tab.AddItemRequest{TabID: opened.ID, ComplexID: complexID, ProductID: "water", Quantity: 1})
	require.NoError(t, err)

	resp, err := f.svc.Cancel(ctx, opened.ID, complexID)
	require.NoError(t, err)
	assert.Equal(t, tab.StatusCancelled, resp.Status)
	assert.Equal(t, 10, f.products.products["beer"].Stock)
	assert.Equal(t, 1, f.products.products["water"].Stock)
}

func TestGet_OtherComplex(t *testing.T) {
	f := newFixture()
	opened := f.open(t)

	_, err := f.svc.Get(context.Background(), opened.ID, "another-complex")
	assert.ErrorIs(t, err, tab.ErrTabNotFound)
}

func TestMutations_LockTabFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	opened := f.open(t)

	resp, err := f.svc.AddItem(ctx, tab.AddItemRequest{TabID: opened.ID, ComplexID: complexID, ProductID: "beer", Quantity: 1})
	require.NoError(t, err)
	_, err = f.svc.RemoveItem(ctx, opened.ID, resp.Items[0].ID, complexID)
	require.NoError(t, err)
	_, err = f.svc.Close(ctx, opened.ID, complexID)
	require.NoError(t, err)

	assert.Equal(t, []string{opened.ID, opened.ID, opened.ID}, f.tabs.locked)

	_, err = f.svc.Close(ctx, "tab-404", complexID)
	assert.ErrorIs(t, err, tab.ErrTabNotFound)
}

func TestAddItem_TabClosedBeforeLockGranted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	opened := f.open(t)

	f.tabs.onLock = func(id string) {
		closed := f.tabs.tabs[id]
		closed.Status = tab.StatusClosed
		f.tabs.tabs[id] = closed
	}

	_, err := f.svc.AddItem(ctx, tab.AddItemRequest{TabID: opened.ID, ComplexID: complexID, ProductID: "beer", Quantity: 2})
	assert.ErrorIs(t, err, tab.ErrTabNotOpen)
	assert.Equal(t, 10, f.products.products["beer"].Stock)
	assert.Empty(t, f.tabs.items[opened.ID])
	assert.Equal(t, tab.StatusClosed, f.tabs.tabs[opened.ID].Status)
}

func TestClose_TabCancelledBeforeLockGranted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	opened := f.open(t)

	f.tabs.onLock = func(id string) {
		cancelled := f.tabs.tabs[id]
		cancelled.Status = tab.StatusCancelled
		f.tabs.tabs[id] = cancelled
	}

	_, err := f.svc.Close(ctx, opened.ID, complexID)
	assert.ErrorIs(t, err, tab.ErrTabNotOpen)
	assert.Equal(t, tab.StatusCancelled, f.tabs.tabs[opened.ID].Status)
}
