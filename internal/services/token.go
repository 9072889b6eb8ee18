package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenExpDays = 30

// TokenService validates bearer tokens issued by the external identity
// service. Both sides share an HS256 secret; this service never stores
// identities, it only extracts the actor id.
type TokenService struct {
	secret string
}

// NewTokenService creates a new token service
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: secret}
}

// GenerateActorToken signs a token for an actor. Used by tests and local
// tooling; production tokens come from the identity service.
func (s *TokenService) GenerateActorToken(actorID string) (string, error) {
	claims := jwt.MapClaims{
		"actor_id": actorID,
		"jti":      uuid.New().String(),
		"exp":      time.Now().AddDate(0, 0, tokenExpDays).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a bearer token and returns the actor ID.
func (s *TokenService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})

	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	actorID, ok := claims["actor_id"].(string)
	if !ok {
		return "", fmt.Errorf("actor_id not found in token")
	}

	return actorID, nil
}
