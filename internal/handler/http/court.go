package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pierreiost/quadracerta/internal/domain/court"
	"github.com/pierreiost/quadracerta/internal/handler/http/response"
)

type CourtHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type CourtHandlerImpl struct {
	courtService court.CourtService
}

// Create implements CourtHandler.
func (h *CourtHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req court.CreateCourtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create court decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}
	req.ComplexID = claims.ComplexID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.courtService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create court", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Court created successfully", created)
}

// List implements CourtHandler.
func (h *CourtHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	filter := court.ListCourtsFilter{ComplexID: claims.ComplexID}
	if status := r.URL.Query().Get("status"); status != "" {
		s := court.Status(status)
		filter.Status = &s
	}

	courts, err := h.courtService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, courts)
}

// Get implements CourtHandler.
func (h *CourtHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	found, err := h.courtService.Get(r.Context(), chi.URLParam(r, "id"), claims.ComplexID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// Update implements CourtHandler.
func (h *CourtHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req court.UpdateCourtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update court decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ComplexID = claims.ComplexID

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.courtService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Court update service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Court updated successfully", updated)
}

// UpdateStatus implements CourtHandler.
func (h *CourtHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req court.UpdateCourtStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	updated, err := h.courtService.UpdateStatus(r.Context(), chi.URLParam(r, "id"), claims.ComplexID, req)
	if err != nil {
		slog.Error("Court status update error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Court status updated successfully", updated)
}

// Delete implements CourtHandler.
func (h *CourtHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.courtService.Delete(r.Context(), chi.URLParam(r, "id"), claims.ComplexID); err != nil {
		slog.Error("Court delete error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Court deleted successfully", nil)
}

func NewCourtHandler(courtService court.CourtService) CourtHandler {
	return &CourtHandlerImpl{courtService: courtService}
}
