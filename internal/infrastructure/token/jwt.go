package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/thecurioussailor/telegramAPI/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Claims carries the application user id alongside the registered claims
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Service issues and verifies HS256 bearer tokens
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a token service. A zero ttl issues tokens without expiry.
func NewService(cfg *config.AuthConfig) *Service {
	return &Service{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
		now:    time.Now,
	}
}

// Issue signs a token for userID
func (s *Service) Issue(userID string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID: userID,
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the user id claim
func (s *Service) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
