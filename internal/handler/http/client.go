package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pierreiost/quadracerta/internal/domain/client"
	"github.com/pierreiost/quadracerta/internal/handler/http/response"
)

type ClientHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type ClientHandlerImpl struct {
	clientService client.ClientService
}

// Create implements ClientHandler.
func (h *ClientHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req client.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create client decode error", "error", err)
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

	created, err := h.clientService.Create(r.Context(), req)
	if err != nil {
		slog.Error("Failed to create client", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Client created successfully", created)
}

// List implements ClientHandler.
func (h *ClientHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	clients, err := h.clientService.List(r.Context(), client.ListClientsFilter{
		ComplexID: claims.ComplexID,
		Search:    r.URL.Query().Get("search"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, clients)
}

// Get implements ClientHandler.
func (h *ClientHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	found, err := h.clientService.Get(r.Context(), chi.URLParam(r, "id"), claims.ComplexID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, found)
}

// Update implements ClientHandler.
func (h *ClientHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req client.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update client decode error", "error", err)
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

	updated, err := h.clientService.Update(r.Context(), req)
	if err != nil {
		slog.Error("Client update service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Client updated successfully", updated)
}

// Delete implements ClientHandler.
func (h *ClientHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.clientService.Delete(r.Context(), chi.URLParam(r, "id"), claims.ComplexID); err != nil {
		slog.Error("Client delete error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Client deleted successfully", nil)
}

func NewClientHandler(clientService client.ClientService) ClientHandler {
	return &ClientHandlerImpl{clientService: clientService}
}
