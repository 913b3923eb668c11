// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"counsel/internal/domain/service"
	"counsel/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// This service only validates tokens; issuing happens in the identity service.
type jwtService struct{}

// NewJWTService is the constructor for jwtService.
func NewJWTService() service.TokenService {
	return &jwtService{}
}

// ValidateToken checks the validity of a token string against a secret.
func (s *jwtService) ValidateToken(tokenString string, secret string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token structure")
	}

	return token, nil
}
