package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pastebridge/internal/adapters/services"
	"pastebridge/pkg/logger"
)

const (
	msgErrorCreatingTestLogger = "should create test logger without errors"
	msgNoErrorGeneratingToken  = "should generate token without errors"
	msgTokenNotEmpty           = "token should not be empty"
	msgNoErrorValidatingToken  = "should validate token without errors"
	msgInvalidTokenError       = "invalid token should return error"
	msgCorrectUserIDReturned   = "should return correct user ID"
)

//nolint:gosec
const testSecretKey = "test-secret-key-12345"

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err, msgErrorCreatingTestLogger)
	return logger.NewContext(context.Background(), testLogger)
}

func TestGenerate(t *testing.T) {
	ctx := testContext(t)

	t.Run("issues a signed token with the configured lifetime", func(t *testing.T) {
		service := services.NewJWT(testSecretKey, time.Hour)

		token, expiresAt, err := service.Generate(ctx, "user-123")
		require.NoError(t, err, msgNoErrorGeneratingToken)
		assert.NotEmpty(t, token, msgTokenNotEmpty)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)
	})

	t.Run("empty secret key is rejected", func(t *testing.T) {
		service := services.NewJWT("", time.Hour)

		_, _, err := service.Generate(ctx, "user-123")
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrGeneratingToken)
	})
}

func TestValidate(t *testing.T) {
	ctx := testContext(t)

	t.Run("round-trips the user ID", func(t *testing.T) {
		service := services.NewJWT(testSecretKey, time.Hour)

		token, _, err := service.Generate(ctx, "user-123")
		require.NoError(t, err, msgNoErrorGeneratingToken)

		userID, err := service.Validate(ctx, token)
		require.NoError(t, err, msgNoErrorValidatingToken)
		assert.Equal(t, "user-123", userID, msgCorrectUserIDReturned)
	})

	t.Run("error on expired token", func(t *testing.T) {
		service := services.NewJWT(testSecretKey, -time.Minute)

		token, _, err := service.Generate(ctx, "user-123")
		require.NoError(t, err, msgNoErrorGeneratingToken)

		_, err = service.Validate(ctx, token)
		require.Error(t, err, msgInvalidTokenError)
		assert.ErrorIs(t, err, services.ErrExpiredToken)
	})

	t.Run("error on token signed with another key", func(t *testing.T) {
		service1 := services.NewJWT(testSecretKey, time.Hour)
		service2 := services.NewJWT("different-secret-key-67890", time.Hour)

		token, _, err := service1.Generate(ctx, "user-123")
		require.NoError(t, err, msgNoErrorGeneratingToken)

		_, err = service2.Validate(ctx, token)
		require.Error(t, err, msgInvalidTokenError)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("error on token with none algorithm", func(t *testing.T) {
		claims := &services.Claims{
			UserID: "user-123",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				Subject:   "user-123",
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		service := services.NewJWT(testSecretKey, time.Hour)
		_, err = service.Validate(ctx, tokenString)
		require.Error(t, err, msgInvalidTokenError)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("error on token without a user ID claim", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"some_random_field": "not_user_id",
			"exp":               time.Now().Add(time.Hour).Unix(),
		})
		tokenString, err := token.SignedString([]byte(testSecretKey))
		require.NoError(t, err)

		service := services.NewJWT(testSecretKey, time.Hour)
		_, err = service.Validate(ctx, tokenString)
		require.Error(t, err, msgInvalidTokenError)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})

	t.Run("error on garbage input", func(t *testing.T) {
		service := services.NewJWT(testSecretKey, time.Hour)

		_, err := service.Validate(ctx, "not.a.token")
		require.Error(t, err, msgInvalidTokenError)
		assert.ErrorIs(t, err, services.ErrInvalidToken)
	})
}
