package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ListByStatus(ctx context.Context, status Status) ([]User, error)
	ListByComplexID(ctx context.Context, complexID string) ([]User, error)
	UpdateApproval(ctx context.Context, id string, status Status, complexID *string, role Role) error
}

// UserService covers the staff approval workflow.
type UserService interface {
	ListPending(ctx context.Context) ([]UserResponse, error)
	ListStaff(ctx context.Context, complexID string) ([]UserResponse, error)
	Approve(ctx context.Context, req ApproveUserRequest) (UserResponse, error)
	Reject(ctx context.Context, id string) error
}
