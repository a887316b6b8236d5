package user

import (
	"time"

	domain "storefront-api/internal/domain/user"
)

// Pure mapping between wire-facing DTOs and the persisted entity.
// Server-owned fields (id, timestamps) are never taken from input.

func fromCreateRequest(in CreateUserRequest) *domain.User {
	return &domain.User{
		Name:  in.Name,
		Email: in.Email,
	}
}

func applyUpdate(in UpdateUserRequest, u *domain.User) {
	u.Name = in.Name
	u.Email = in.Email
}

func toDTO(u *domain.User) User {
	return User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// nowStamp returns the current instant as the opaque timestamp format the
// store carries.
func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
