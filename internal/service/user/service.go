package user

import (
	"context"
	"log/slog"

	"github.com/pierreiost/quadracerta/internal/domain/sportcomplex"
	"github.com/pierreiost/quadracerta/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
	complexes sportcomplex.ComplexRepository
}

func NewUserService(repo user.UserRepository, complexes sportcomplex.ComplexRepository) user.UserService {
	return &UserServiceImpl{UserRepository: repo, complexes: complexes}
}

func toResponses(users []user.User) []user.UserResponse {
	resp := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, user.ToResponse(u))
	}
	return resp
}

// ListPending implements user.UserService.
func (s *UserServiceImpl) ListPending(ctx context.Context) ([]user.UserResponse, error) {
	users, err := s.ListByStatus(ctx, user.StatusPending)
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

// ListStaff implements user.UserService.
func (s *UserServiceImpl) ListStaff(ctx context.Context, complexID string) ([]user.UserResponse, error) {
	if complexID == "" {
		return nil, user.ErrComplexIDRequired
	}
	users, err := s.ListByComplexID(ctx, complexID)
	if err != nil {
		return nil, err
	}
	return toResponses(users), nil
}

// Approve implements user.UserService.
func (s *UserServiceImpl) Approve(ctx context.Context, req user.ApproveUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	pending, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	if pending.Status != user.StatusPending {
		return user.UserResponse{}, user.ErrUserNotPending
	}

	complexID := req.ComplexID
	if req.Role == user.RoleSuperAdmin {
		complexID = nil
	} else if _, err := s.complexes.GetByID(ctx, *complexID); err != nil {
		return user.UserResponse{}, err
	}

	if err := s.UpdateApproval(ctx, req.ID, user.StatusApproved, complexID, req.Role); err != nil {
		return user.UserResponse{}, err
	}
	slog.Info("User approved", "user_id", req.ID, "role", req.Role)

	approved, err := s.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, err
	}
	return user.ToResponse(approved), nil
}

// Reject implements user.UserService.
func (s *UserServiceImpl) Reject(ctx context.Context, id string) error {
	pending, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if pending.Status != user.StatusPending {
		return user.ErrUserNotPending
	}

	if err := s.UpdateApproval(ctx, id, user.StatusRejected, pending.ComplexID, pending.Role); err != nil {
		return err
	}
	slog.Info("User rejected", "user_id", id)
	return nil
}
