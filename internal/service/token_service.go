package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
)

const tokenIssuer = "print-quote-service"

// ClaimsWithJWT extends dto.Claims with the registered JWT claims.
type ClaimsWithJWT struct {
	dto.Claims
	jwt.RegisteredClaims
}

// TokenService issues and checks staff access tokens.
type TokenService interface {
	GenerateAccessToken(staff *model.Staff) (string, error)
	ValidateAccessToken(tokenString string) (*dto.Claims, error)
	// AccessTokenTTL is the lifetime of issued tokens.
	AccessTokenTTL() time.Duration
}

// TokenConfig holds the signing key and token lifetime.
type TokenConfig struct {
	SecretKey      string
	AccessTokenTTL time.Duration
}

// NewTokenConfigFromAuthConfig builds a TokenConfig from application config.
func NewTokenConfigFromAuthConfig(authConfig config.AuthConfig) TokenConfig {
	return TokenConfig{
		SecretKey:      authConfig.JWTSecretKey,
		AccessTokenTTL: authConfig.AccessTokenTTL,
	}
}

// TokenServiceImpl signs HS256 tokens. Tokens are stateless; there is no revocation.
type TokenServiceImpl struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewTokenService creates a token service.
func NewTokenService(cfg TokenConfig) *TokenServiceImpl {
	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &TokenServiceImpl{
		secretKey: []byte(cfg.SecretKey),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (s *TokenServiceImpl) AccessTokenTTL() time.Duration { return s.ttl }

// GenerateAccessToken signs a token for staff.
func (s *TokenServiceImpl) GenerateAccessToken(staff *model.Staff) (string, error) {
	if staff.ID.IsZero() {
		return "", errors.New("staff ID is zero, cannot create token")
	}

	now := s.now()
	claims := ClaimsWithJWT{
		Claims: dto.Claims{
			StaffID: staff.ID,
			Email:   staff.Email,
			Name:    staff.Name,
		},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   staff.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ValidateAccessToken parses tokenString and returns its claims, or ErrInvalidToken.
func (s *TokenServiceImpl) ValidateAccessToken(tokenString string) (*dto.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ClaimsWithJWT{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*ClaimsWithJWT)
	if !ok || !token.Valid || claims.StaffID.IsZero() {
		return nil, ErrInvalidToken
	}
	return &claims.Claims, nil
}

var _ TokenService = (*TokenServiceImpl)(nil)
