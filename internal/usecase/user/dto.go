package user

// CreateUserRequest represents the request payload for creating a new user.
// The password is validated but never persisted: the user schema carries no
// password column.
type CreateUserRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// UpdateUserRequest represents the request payload for updating an existing
// user. The password is required on input but its length is not re-checked.
type UpdateUserRequest struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// ListUsersRequest represents the request payload for listing users.
// Name is a filter only when non-nil; an empty string is a present filter
// that matches every user.
type ListUsersRequest struct {
	Name *string
	Page int
	Size int
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt string
	UpdatedAt string
}
