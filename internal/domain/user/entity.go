package user

// User represents a user entity in the system.
// CreatedAt and UpdatedAt are server-stamped RFC3339 instants and are never
// accepted from clients. UpdatedAt stays empty until the first update.
type User struct {
	ID        int64  // ID is the unique identifier for the user, assigned by the store
	Name      string // Name is the display name of the user
	Email     string // Email is the unique email address of the user
	CreatedAt string
	UpdatedAt string
}
