package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pierreiost/quadracerta/internal/domain/tab"
	"github.com/pierreiost/quadracerta/internal/handler/http/response"
)

type TabHandler interface {
	Open(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	AddItem(w http.ResponseWriter, r *http.Request)
	RemoveItem(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type TabHandlerImpl struct {
	tabService tab.TabService
}

// Open implements TabHandler.
func (h *TabHandlerImpl) Open(w http.ResponseWriter, r *http.Request) {
	var req tab.OpenTabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Open tab decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}
	req.ComplexID = claims.ComplexID

	opened, err := h.tabService.Open(r.Context(), req)
	if err != nil {
		slog.Error("Failed to open tab", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tab opened successfully", opened)
}

// List implements TabHandler.
func (h *TabHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	filter := tab.ListTabsFilter{
		ComplexID: claims.ComplexID,
		ClientID:  query.Get("clientId"),
	}
	if status := query.Get("status"); status != "" {
		s := tab.Status(status)
		filter.Status = &s
	}

	tabs, err := h.tabService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, tabs)
}

// Get implements TabHandler.
func (h *TabHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	found, err := h.tabService.Get(r.Context(), chi.URLParam(r, "id"), claims.ComplexID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// AddItem implements TabHandler.
func (h *TabHandlerImpl) AddItem(w http.ResponseWriter, r *http.Request) {
	var req tab.AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Add tab item decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}
	req.TabID = chi.URLParam(r, "id")
	req.ComplexID = claims.ComplexID

	updated, err := h.tabService.AddItem(r.Context(), req)
	if err != nil {
		slog.Error("Failed to add tab item", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Item added successfully", updated)
}

// RemoveItem implements TabHandler.
func (h *TabHandlerImpl) RemoveItem(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	updated, err := h.tabService.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemId"), claims.ComplexID)
	if err != nil {
		slog.Error("Failed to remove tab item", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Item removed successfully", updated)
}

// Close implements TabHandler.
func (h *TabHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	closed, err := h.tabService.Close(r.Context(), chi.URLParam(r, "id"), claims.ComplexID)
	if err != nil {
		slog.Error("Failed to close tab", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tab closed successfully", closed)
}

// Cancel implements TabHandler.
func (h *TabHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	cancelled, err := h.tabService.Cancel(r.Context(), chi.URLParam(r, "id"), claims.ComplexID)
	if err != nil {
		slog.Error("Failed to cancel tab", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tab cancelled successfully", cancelled)
}

func NewTabHandler(tabService tab.TabService) TabHandler {
	return &TabHandlerImpl{tabService: tabService}
}
