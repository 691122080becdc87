package tab

import (
	"context"

	"github.com/shopspring/decimal"
)

type TabRepository interface {
	Create(ctx context.Context, t Tab) (Tab, error)
	GetByID(ctx context.Context, id string, complexID string) (Tab, error)
	List(ctx context.Context, filter ListTabsFilter) ([]Tab, error)
	HasOpenTab(ctx context.Context, clientID string) (bool, error)
	// LockTab holds the tab row until the surrounding transaction ends.
	LockTab(ctx context.Context, id string, complexID string) error
	// UpdateStatus moves an OPEN tab to status and fails with ErrTabNotOpen otherwise.
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdateTotal(ctx context.Context, id string, total decimal.Decimal) error

	ListItems(ctx context.Context, tabID string) ([]TabItem, error)
	AddItem(ctx context.Context, item TabItem) (TabItem, error)
	GetItem(ctx context.Context, tabID string, itemID string) (TabItem, error)
	RemoveItem(ctx context.Context, tabID string, itemID string) error
}
