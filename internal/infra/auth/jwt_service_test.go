package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func signedTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	return signed
}

func TestJWTService_ValidateToken(t *testing.T) {
	jwtService := NewJWTService()

	userID := uuid.New()
	tokenString := signedTestToken(t, testSecret, jwt.MapClaims{
		"sub":   userID.String(),
		"roles": []string{"user"},
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
	})

	token, err := jwtService.ValidateToken(tokenString, testSecret)
	assert.NoError(t, err)
	require.NotNil(t, token)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, userID.String(), claims["sub"])
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService := NewJWTService()

	// Test invalid token - using clearly non-JWT format
	token, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format", testSecret)
	assert.Error(t, err)
	assert.Nil(t, token)
	assert.Contains(t, err.Error(), "failed to parse token structure")
}

func TestJWTService_WrongSecret(t *testing.T) {
	jwtService := NewJWTService()

	tokenString := signedTestToken(t, testSecret, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Minute).Unix(),
	})

	token, err := jwtService.ValidateToken(tokenString, "a-different-secret")
	assert.Error(t, err)
	assert.Nil(t, token)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	jwtService := NewJWTService()

	tokenString := signedTestToken(t, testSecret, jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	token, err := jwtService.ValidateToken(tokenString, testSecret)
	assert.Error(t, err)
	assert.Nil(t, token)
}

func TestJWTService_RejectsUnexpectedSigningMethod(t *testing.T) {
	jwtService := NewJWTService()

	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.NewString(),
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	parsed, err := jwtService.ValidateToken(unsigned, testSecret)
	assert.Error(t, err)
	assert.Nil(t, parsed)
}
