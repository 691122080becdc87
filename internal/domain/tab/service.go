package tab

import "context"

type TabService interface {
	Open(ctx context.Context, req OpenTabRequest) (TabResponse, error)
	List(ctx context.Context, filter ListTabsFilter) ([]TabResponse, error)
	Get(ctx context.Context, id string, complexID string) (TabResponse, error)
	AddItem(ctx context.Context, req AddItemRequest) (TabResponse, error)
	RemoveItem(ctx context.Context, tabID string, itemID string, complexID string) (TabResponse, error)
	Close(ctx context.Context, id string, complexID string) (TabResponse, error)
	Cancel(ctx context.Context, id string, complexID string) (TabResponse, error)
}
