//go:build !integration

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/circuitbreaker"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/mocks"
	"github.com/guttosm/print-quote-service/internal/repository"
)

func testStaff(t *testing.T, password string) *model.Staff {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &model.Staff{
		ID:       primitive.NewObjectID(),
		Email:    "jo@printshop.example",
		Password: string(hashed),
		Name:     "Jo",
		Active:   true,
	}
}

func newTestTokenService() *TokenServiceImpl {
	return NewTokenService(NewTokenConfigFromAuthConfig(config.AuthConfig{
		JWTSecretKey:   "test-secret",
		AccessTokenTTL: time.Hour,
	}))
}

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := newTestTokenService()
	staff := testStaff(t, "secret123")

	token, err := tokens.GenerateAccessToken(staff)
	require.NoError(t, err)

	claims, err := tokens.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, claims.StaffID)
	assert.Equal(t, staff.Email, claims.Email)
	assert.Equal(t, "Jo", claims.Name)
}

func TestTokenService_RejectsBadTokens(t *testing.T) {
	tokens := newTestTokenService()
	staff := testStaff(t, "secret123")

	other := NewTokenService(TokenConfig{SecretKey: "other-secret", AccessTokenTTL: time.Hour})
	forged, err := other.GenerateAccessToken(staff)
	require.NoError(t, err)

	expiredSvc := newTestTokenService()
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.GenerateAccessToken(staff)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, ClaimsWithJWT{}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":   "not-a-token",
		"wrong key": forged,
		"expired":   expired,
		"unsigned":  none,
		"empty":     "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := tokens.ValidateAccessToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenService_GenerateRequiresID(t *testing.T) {
	_, err := newTestTokenService().GenerateAccessToken(&model.Staff{Email: "x@y.z"})
	assert.Error(t, err)
}

func TestTokenService_DefaultTTL(t *testing.T) {
	assert.Equal(t, 8*time.Hour, NewTokenService(TokenConfig{SecretKey: "k"}).AccessTokenTTL())
}

func TestStaffAuthService_Login(t *testing.T) {
	ctx := context.Background()
	staff := testStaff(t, "secret123")
	inactive := testStaff(t, "secret123")
	inactive.Active = false

	tests := []struct {
		name     string
		email    string
		password string
		setup    func(*mocks.MockStaffRepository)
		wantErr  error
	}{
		{
			name: "valid credentials", email: staff.Email, password: "secret123",
			setup: func(r *mocks.MockStaffRepository) { r.On("FindByEmail", ctx, staff.Email).Return(staff, nil) },
		},
		{
			name: "wrong password", email: staff.Email, password: "nope1234",
			setup:   func(r *mocks.MockStaffRepository) { r.On("FindByEmail", ctx, staff.Email).Return(staff, nil) },
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "unknown email", email: "ghost@printshop.example", password: "secret123",
			setup:   func(r *mocks.MockStaffRepository) { r.On("FindByEmail", ctx, mock.Anything).Return(nil, nil) },
			wantErr: ErrInvalidCredentials,
		},
		{
			name: "inactive account", email: staff.Email, password: "secret123",
			setup:   func(r *mocks.MockStaffRepository) { r.On("FindByEmail", ctx, staff.Email).Return(inactive, nil) },
			wantErr: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockStaffRepository)
			tt.setup(repo)
			svc := NewAuthService(repo, newTestTokenService())

			resp, err := svc.Login(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Token)
			assert.Equal(t, int64(3600), resp.ExpiresIn)
			assert.Equal(t, staff.Email, resp.Staff.Email)

			claims, err := svc.ValidateToken(resp.Token)
			require.NoError(t, err)
			assert.Equal(t, staff.ID, claims.StaffID)
		})
	}
}

func TestStaffAuthService_Login_StoreError(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockStaffRepository)
	repo.On("FindByEmail", ctx, "jo@printshop.example").Return(nil, errors.New("timeout"))

	_, err := NewAuthService(repo, newTestTokenService()).Login(ctx, "jo@printshop.example", "secret123")
	assert.ErrorContains(t, err, "timeout")
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
}

func TestStaffAuthService_Login_CircuitOpen(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockStaffRepository)
	repo.On("FindByEmail", ctx, "jo@printshop.example").Return(nil, circuitbreaker.ErrCircuitOpen)

	_, err := NewAuthService(repo, newTestTokenService()).Login(ctx, "jo@printshop.example", "secret123")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestStaffAuthService_EnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing admin", func(t *testing.T) {
		repo := new(mocks.MockStaffRepository)
		repo.On("FindByEmail", ctx, "admin@printshop.example").Return(nil, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(s *model.Staff) bool {
			return s.Email == "admin@printshop.example" && s.Active &&
				bcrypt.CompareHashAndPassword([]byte(s.Password), []byte("changeme1")) == nil
		})).Return(nil).Once()

		created, err := NewAuthService(repo, newTestTokenService()).EnsureAdmin(ctx, " admin@printshop.example ", "changeme1")
		require.NoError(t, err)
		assert.True(t, created)
		repo.AssertExpectations(t)
	})

	t.Run("keeps existing admin", func(t *testing.T) {
		repo := new(mocks.MockStaffRepository)
		repo.On("FindByEmail", ctx, "admin@printshop.example").Return(&model.Staff{Email: "admin@printshop.example"}, nil)

		created, err := NewAuthService(repo, newTestTokenService()).EnsureAdmin(ctx, "admin@printshop.example", "changeme1")
		require.NoError(t, err)
		assert.False(t, created)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lost race counts as existing", func(t *testing.T) {
		repo := new(mocks.MockStaffRepository)
		repo.On("FindByEmail", ctx, "admin@printshop.example").Return(nil, nil)
		repo.On("Create", ctx, mock.Anything).Return(repository.ErrStaffExists)

		created, err := NewAuthService(repo, newTestTokenService()).EnsureAdmin(ctx, "admin@printshop.example", "changeme1")
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("requires credentials", func(t *testing.T) {
		_, err := NewAuthService(new(mocks.MockStaffRepository), newTestTokenService()).EnsureAdmin(ctx, "", "")
		assert.Error(t, err)
	})
}
