package dto

import "time"

// AdminLoginRequest is the body of POST /auth/admin/login.
type AdminLoginRequest struct {
	Password string `json:"password"`
}

// AuthResponse carries an issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
