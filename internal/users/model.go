package users

import "time"

// User is an account able to access the repository.
type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	Role         string
	CreatedAt    time.Time
}

// Roles recognized by the access layer.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether role is one of the recognized roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// UserResponse is the outward-facing representation of a user.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
