package models

import "github.com/golang-jwt/jwt/v5"

// CustomClaims represents the claims carried by bearer tokens.
// The caller identity travels in the "id" claim.
type CustomClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}
