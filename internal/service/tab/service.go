package tab

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pierreiost/quadracerta/internal/domain/client"
	"github.com/pierreiost/quadracerta/internal/domain/product"
	"github.com/pierreiost/quadracerta/internal/domain/reservation"
	"github.com/pierreiost/quadracerta/internal/domain/tab"
	"github.com/pierreiost/quadracerta/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type TabServiceImpl struct {
	tx database.Transactor
	tab.TabRepository
	products     product.ProductRepository
	clients      client.ClientRepository
	reservations reservation.ReservationRepository
}

func NewTabService(
	tx database.Transactor,
	repo tab.TabRepository,
	products product.ProductRepository,
	clients client.ClientRepository,
	reservations reservation.ReservationRepository,
) tab.TabService {
	return &TabServiceImpl{
		tx:            tx,
		TabRepository: repo,
		products:      products,
		clients:       clients,
		reservations:  reservations,
	}
}

// load returns the tab with its items.
func (s *TabServiceImpl) load(ctx context.Context, id string, complexID string) (tab.Tab, error) {
	t, err := s.GetByID(ctx, id, complexID)
	if err != nil {
		return tab.Tab{}, err
	}
	t.Items, err = s.ListItems(ctx, t.ID)
	if err != nil {
		return tab.Tab{}, err
	}
	return t, nil
}

// loadOpen locks the tab row, loads it and rejects tabs that are no longer OPEN.
// It must run inside a transaction.
func (s *TabServiceImpl) loadOpen(ctx context.Context, id string, complexID string) (tab.Tab, error) {
	if err := s.LockTab(ctx, id, complexID); err != nil {
		return tab.Tab{}, err
	}
	t, err := s.load(ctx, id, complexID)
	if err != nil {
		return tab.Tab{}, err
	}
	if !t.IsOpen() {
		return tab.Tab{}, tab.ErrTabNotOpen
	}
	return t, nil
}

// recalculate sums the current items and stores the total.
func (s *TabServiceImpl) recalculate(ctx context.Context, tabID string) error {
	items, err := s.ListItems(ctx, tabID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return s.UpdateTotal(ctx, tabID, total)
}

// Open implements tab.TabService.
func (s *TabServiceImpl) Open(ctx context.Context, req tab.OpenTabRequest) (tab.TabResponse, error) {
	if err := req.Validate(); err != nil {
		return tab.TabResponse{}, err
	}

	if _, err := s.clients.GetByID(ctx, req.ClientID, req.ComplexID); err != nil {
		return tab.TabResponse{}, err
	}
	if req.ReservationID != nil && *req.ReservationID != "" {
		if _, err := s.reservations.GetByID(ctx, *req.ReservationID, req.ComplexID); err != nil {
			return tab.TabResponse{}, err
		}
	} else {
		req.ReservationID = nil
	}

	open, err := s.HasOpenTab(ctx, req.ClientID)
	if err != nil {
		return tab.TabResponse{}, fmt.Errorf("failed to check open tabs: %w", err)
	}
	if open {
		return tab.TabResponse{}, tab.ErrTabAlreadyOpen
	}

	created, err := s.Create(ctx, tab.Tab{
		ClientID:      req.ClientID,
		ReservationID: req.ReservationID,
		Status:        tab.StatusOpen,
		Total:         decimal.Zero,
	})
	if err != nil {
		return tab.TabResponse{}, err
	}

	slog.Info("Tab opened", "tab_id", created.ID, "client_id", created.ClientID)
	return tab.ToResponse(created), nil
}

// List implements tab.TabService. Items are only loaded by Get.
func (s *TabServiceImpl) List(ctx context.Context, filter tab.ListTabsFilter) ([]tab.TabResponse, error) {
	tabs, err := s.TabRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]tab.TabResponse, 0, len(tabs))
	for _, t := range tabs {
		resp = append(resp, tab.ToResponse(t))
	}
	return resp, nil
}

// Get implements tab.TabService.
func (s *TabServiceImpl) Get(ctx context.Context, id string, complexID string) (tab.TabResponse, error) {
	t, err := s.load(ctx, id, complexID)
	if err != nil {
		return tab.TabResponse{}, err
	}
	return tab.ToResponse(t), nil
}

// AddItem implements tab.TabService. The product stock is decremented in the same
// transaction, at the product's current price.
func (s *TabServiceImpl) AddItem(ctx context.Context, req tab.AddItemRequest) (tab.TabResponse, error) {
	if err := req.Validate(); err != nil {
		return tab.TabResponse{}, err
	}

	var result tab.Tab
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		t, err := s.loadOpen(txCtx, req.TabID, req.ComplexID)
		if err != nil {
			return err
		}

		p, err := s.products.GetByID(txCtx, req.ProductID, t.ComplexID)
		if err != nil {
			return err
		}
		if _, err := s.products.AdjustStock(txCtx, p.ID, t.ComplexID, -req.Quantity); err != nil {
			return err
		}

		if _, err := s.TabRepository.AddItem(txCtx, tab.TabItem{
			TabID:     t.ID,
			ProductID: p.ID,
			Quantity:  req.Quantity,
			UnitPrice: p.Price,
		}); err != nil {
			return err
		}
		if err := s.recalculate(txCtx, t.ID); err != nil {
			return err
		}

		result, err = s.load(txCtx, t.ID, req.ComplexID)
		return err
	})
	if err != nil {
		return tab.TabResponse{}, err
	}
	return tab.ToResponse(result), nil
}

// RemoveItem implements tab.TabService. The item quantity goes back to stock.
func (s *TabServiceImpl) RemoveItem(ctx context.Context, tabID string, itemID string, complexID string) (tab.TabResponse, error) {
	var result tab.Tab
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		t, err := s.loadOpen(txCtx, tabID, complexID)
		if err != nil {
			return err
		}

		item, err := s.GetItem(txCtx, t.ID, itemID)
		if err != nil {
			return err
		}
		if err := s.TabRepository.RemoveItem(txCtx, t.ID, item.ID); err != nil {
			return err
		}
		if _, err := s.products.AdjustStock(txCtx, item.ProductID, t.ComplexID, item.Quantity); err != nil {
			return err
		}
		if err := s.recalculate(txCtx, t.ID); err != nil {
			return err
		}

		result, err = s.load(txCtx, t.ID, complexID)
		return err
	})
	if err != nil {
		return tab.TabResponse{}, err
	}
	return tab.ToResponse(result), nil
}

// Close implements tab.TabService.
func (s *TabServiceImpl) Close(ctx context.Context, id string, complexID string) (tab.TabResponse, error) {
	var result tab.Tab
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		t, err := s.loadOpen(txCtx, id, complexID)
		if err != nil {
			return err
		}
		if err := s.UpdateStatus(txCtx, t.ID, tab.StatusClosed); err != nil {
			return err
		}
		result, err = s.load(txCtx, t.ID, complexID)
		return err
	})
	if err != nil {
		return tab.TabResponse{}, err
	}

	slog.Info("Tab closed", "tab_id", id, "total", result.Total.StringFixed(2))
	return tab.ToResponse(result), nil
}

// Cancel implements tab.TabService. Every item quantity goes back to stock.
func (s *TabServiceImpl) Cancel(ctx context.Context, id string, complexID string) (tab.TabResponse, error) {
	var result tab.Tab
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		t, err := s.loadOpen(txCtx, id, complexID)
		if err != nil {
			return err
		}
		for _, item := range t.Items {
			if _, err := s.products.AdjustStock(txCtx, item.ProductID, t.ComplexID, item.Quantity); err != nil {
				return fmt.Errorf("failed to restore stock of product %s: %w", item.ProductID, err)
			}
		}
		if err := s.UpdateStatus(txCtx, t.ID, tab.StatusCancelled); err != nil {
			return err
		}
		result, err = s.load(txCtx, t.ID, complexID)
		return err
	})
	if err != nil {
		return tab.TabResponse{}, err
	}

	slog.Info("Tab cancelled", "tab_id", id)
	return tab.ToResponse(result), nil
}
