package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pierreiost/quadracerta/internal/domain/user"
	"github.com/pierreiost/quadracerta/internal/handler/http/response"
)

type UserHandler interface {
	ListStaff(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type UserHandlerImpl struct {
	userService user.UserService
}

// ListStaff implements UserHandler.
func (h *UserHandlerImpl) ListStaff(w http.ResponseWriter, r *http.Request) {
	claims, ok := callerFromRequest(w, r)
	if !ok {
		return
	}

	staff, err := h.userService.ListStaff(r.Context(), claims.ComplexID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, staff)
}

// ListPending implements UserHandler.
func (h *UserHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.userService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, pending)
}

// Approve implements UserHandler.
func (h *UserHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req user.ApproveUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Approve user decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	approved, err := h.userService.Approve(r.Context(), req)
	if err != nil {
		slog.Error("Approve user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User approved", "user_id", approved.ID, "role", approved.Role)
	response.SuccessWithMessage(w, "User approved successfully", approved)
}

// Reject implements UserHandler.
func (h *UserHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.userService.Reject(r.Context(), id); err != nil {
		slog.Error("Reject user service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("User rejected", "user_id", id)
	response.SuccessWithMessage(w, "User rejected successfully", nil)
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &UserHandlerImpl{userService: userService}
}
