package model

import "github.com/golang-jwt/jwt/v5"

// OrganizerClaims are JWT claims for program organizer authentication
type OrganizerClaims struct {
	OrganizerID string `json:"organizerId"`
	jwt.RegisteredClaims
}

// RegistrantClaims are JWT claims for registration-scoped tokens
type RegistrantClaims struct {
	FormID         string `json:"formId"`
	RegistrationID string `json:"registrationId"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for organizer login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful login
type LoginResponse struct {
	Token       string `json:"token"`
	OrganizerID string `json:"organizerId"`
}
