package models

import "time"

// User is an account record. Users are immutable after signup; there are
// no update or delete endpoints.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the body for both signup and sign-in. Token is null when
// the request failed.
type AuthResponse struct {
	Message string  `json:"message"`
	Token   *string `json:"token"`
}
