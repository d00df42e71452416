package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"formflow/internal/config"
	"formflow/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles organizer and registrant authentication
type AuthService struct {
	organizerUsername string
	organizerPassword string
	jwtSecret         []byte
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		organizerUsername: cfg.OrganizerUsername,
		organizerPassword: cfg.OrganizerPassword,
		jwtSecret:         []byte(cfg.JWTSecret),
	}
}

// Login validates organizer credentials and returns a token
func (s *AuthService) Login(username, password string) (*model.LoginResponse, error) {
	if username != s.organizerUsername || password != s.organizerPassword {
		return nil, ErrInvalidCredentials
	}

	organizerID := "org_" + uuid.New().String()[:8]

	claims := &model.OrganizerClaims{
		OrganizerID: organizerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:       tokenString,
		OrganizerID: organizerID,
	}, nil
}

// ValidateOrganizerToken validates an organizer JWT and returns claims
func (s *AuthService) ValidateOrganizerToken(tokenString string) (*model.OrganizerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.OrganizerClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.OrganizerClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GenerateRegistrantToken creates a registration-scoped token
func (s *AuthService) GenerateRegistrantToken(formID, registrationID string) (string, error) {
	claims := &model.RegistrantClaims{
		FormID:         formID,
		RegistrationID: registrationID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateRegistrantToken validates a registrant JWT and returns claims
func (s *AuthService) ValidateRegistrantToken(tokenString string) (*model.RegistrantClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.RegistrantClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.RegistrantClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
