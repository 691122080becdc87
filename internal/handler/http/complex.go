package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/pierreiost/quadracerta/internal/domain/sportcomplex"
	"github.com/pierreiost/quadracerta/internal/handler/http/response"
)

type ComplexHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	GetMine(w http.ResponseWriter, r *http.Request)
	UpdateMine(w http.ResponseWriter, r *http.Request)
}

type ComplexHandlerImpl struct {
	complexService sportcomplex.ComplexService
}

// Create implements ComplexHandler.
func (c *ComplexHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req sportcomplex.CreateComplexRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create complex decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := c.complexService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create complex", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Complex created successfully", created)
}

// List implements ComplexHandler.
func (c *ComplexHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	complexes, err := c.complexService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, complexes)
}

// GetMine implements ComplexHandler.
func (c *ComplexHandlerImpl) GetMine(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	found, err := c.complexService.Get(r.Context(), claims.ComplexID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// UpdateMine implements ComplexHandler.
func (c *ComplexHandlerImpl) UpdateMine(w http.ResponseWriter, r *http.Request) {
	var updateReq sportcomplex.UpdateComplexRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update complex decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// complex_id comes from the JWT
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}
	updateReq.ID = claims.ComplexID

	if err := updateReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := c.complexService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Complex update service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Complex updated successfully", "complex_id", updated.ID)
	response.SuccessWithMessage(w, "Complex updated successfully", updated)
}

func NewComplexHandler(complexService sportcomplex.ComplexService) ComplexHandler {
	return &ComplexHandlerImpl{
		complexService: complexService,
	}
}
