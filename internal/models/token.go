package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims is the bearer token payload issued by the backend (and by the
// local stub).
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	jwt.RegisteredClaims
}
