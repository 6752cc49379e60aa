package domain

import "time"

// User is the persistent identity record. The username doubles as the
// login identifier and email address. The password hash never leaves the
// server; json:"-" keeps it out of every response.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`
	CreatedAt    time.Time `json:"created"`
	UpdatedAt    time.Time `json:"updated"`
}

// CachedUser is the point-in-time snapshot stored in the user cache and
// attached to authenticated requests. It holds exactly the public fields
// intended for caching; new User columns stay out of the cache until they
// are added here explicitly.
type CachedUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Snapshot builds the cacheable projection of u, field by field.
func (u *User) Snapshot() *CachedUser {
	return &CachedUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Username,
	}
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}
