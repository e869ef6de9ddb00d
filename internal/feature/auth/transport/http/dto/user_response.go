package dto

import (
	"time"

	"task_backend/internal/feature/auth/domain/entity"
)

// UserItem is the public representation of a user (no password hash).
type UserItem struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileItem extends UserItem with the account creation timestamp.
// Returned by /api/users/me and profile updates.
type ProfileItem struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is the body returned on successful registration and login.
type AuthResponse struct {
	Message string   `json:"message"`
	User    UserItem `json:"user"`
	Token   string   `json:"token"`
}

// ProfileResponse is the body returned on successful profile updates.
type ProfileResponse struct {
	Message string      `json:"message"`
	User    ProfileItem `json:"user"`
}

// ToUserItem converts a domain user into its public representation.
func ToUserItem(u *entity.User) UserItem {
	return UserItem{ID: u.ID, Name: u.Name, Email: u.Email}
}

// ToProfileItem converts a domain user into its profile representation.
func ToProfileItem(u *entity.User) ProfileItem {
	return ProfileItem{ID: u.ID, Name: u.Name, Email: u.Email, CreatedAt: u.CreatedAt}
}
