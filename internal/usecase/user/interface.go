package user

import (
	"context"

	"storefront-api/internal/domain/page"
	domain "storefront-api/internal/domain/user"
)

// Repository defines the interface for user data access operations.
// It abstracts the data layer, allowing different implementations
// (e.g., PostgreSQL, cached) to be used interchangeably.
//
// GetByID returns (nil, nil) when no row exists; only infrastructural
// failures surface as errors.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailExcludingID(ctx context.Context, email string, id int64) (bool, error)
	Update(ctx context.Context, u *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, name *string, req page.Request) ([]domain.User, int64, error)
}

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	ListUsers(ctx context.Context, in ListUsersRequest) (*page.Page[User], error)
	GetUser(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, in CreateUserRequest) (*User, error)
	UpdateUser(ctx context.Context, id int64, in UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, id int64) error
}
