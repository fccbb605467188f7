package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	svc "pastebridge/internal/ports/services"
	"pastebridge/pkg/logger"
)

const (
	methodGenerateToken = "Generate"
	methodValidateToken = "Validate"
	msgGeneratingToken  = "generating token"
	msgValidatingToken  = "validating token"
	msgTokenGenerated   = "token generated successfully"
	msgTokenValidated   = "token validated successfully"
	msgInvalidToken     = "invalid token format"
	msgTokenExpired     = "token has expired"
	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxValidatingToken = "validating token"
)

// Token errors returned by ServiceJWT.
var (
	ErrInvalidAlgorithm = errors.New("invalid signing algorithm")
	ErrGeneratingToken  = errors.New("failed to generate token")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token expired")
)

// Claims adapts between the application identity and the JWT library.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// ServiceJWT implements the TokenService interface with HS256 tokens.
type ServiceJWT struct {
	secretKey []byte
	tokenTTL  time.Duration
}

// NewJWT creates a new JWT token service.
func NewJWT(secretKey string, tokenTTL time.Duration) svc.TokenService {
	return &ServiceJWT{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
	}
}

// Generate issues a signed token carrying the user ID.
func (s *ServiceJWT) Generate(ctx context.Context, userID string) (string, time.Time, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateToken),
		zap.String("userID", userID),
	)
	log.Debug(ctx, msgGeneratingToken)

	if len(s.secretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", time.Time{}, fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, ErrGeneratingToken)
	}

	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", time.Time{}, fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, ErrGeneratingToken, err)
	}

	log.Debug(ctx, msgTokenGenerated, zap.Time("expiresAt", expiresAt))
	return tokenString, expiresAt, nil
}

// Validate parses the token and returns the user ID it carries.
func (s *ServiceJWT) Validate(ctx context.Context, tokenString string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		if strings.Contains(err.Error(), "token is expired") {
			log.Debug(ctx, msgTokenExpired)
			return "", fmt.Errorf("%s: %w", errCtxValidatingToken, ErrExpiredToken)
		}
		log.Error(ctx, errParsingToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxValidatingToken, ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return "", fmt.Errorf("%s: %w", errCtxValidatingToken, ErrInvalidToken)
	}

	if claims.UserID == "" {
		log.Debug(ctx, "user_id claim is empty")
		return "", fmt.Errorf("%s: %w: empty user_id", errCtxValidatingToken, ErrInvalidToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.UserID))
	return claims.UserID, nil
}
