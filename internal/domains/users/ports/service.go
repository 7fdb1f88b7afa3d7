package ports

import (
	"context"

	"github.com/beandock/coffeeshop-api/internal/domains/users/domain"
)

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Email    string
	Username string
	Password string
	FullName string
	Phone    string
	Address  string
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Email    *string
	Username *string
	Password *string
	FullName *string
	Phone    *string
	Address  *string
	IsActive *bool
}

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	GetByToken(ctx context.Context, token string) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*domain.User, error)
	UpdateUser(ctx context.Context, id int64, in UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
}
