//go:build !integration

package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/print-quote-service/config"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/mocks"
)

type mockBootstrapper struct {
	mock.Mock
}

func (m *mockBootstrapper) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	args := m.Called(ctx, email, password)
	return args.Bool(0), args.Error(1)
}

func TestEnsureAdmin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(*mockBootstrapper)
	}{
		{
			name:     "no credentials configured",
			email:    "",
			password: "",
		},
		{
			name:     "password missing",
			email:    "admin@printshop.example",
			password: "",
		},
		{
			name:     "admin created",
			email:    "admin@printshop.example",
			password: "secret",
			setup: func(m *mockBootstrapper) {
				m.On("EnsureAdmin", mock.Anything, "admin@printshop.example", "secret").Return(true, nil).Once()
			},
		},
		{
			name:     "admin already exists",
			email:    "admin@printshop.example",
			password: "secret",
			setup: func(m *mockBootstrapper) {
				m.On("EnsureAdmin", mock.Anything, "admin@printshop.example", "secret").Return(false, nil).Once()
			},
		},
		{
			name:     "store error is logged, not fatal",
			email:    "admin@printshop.example",
			password: "secret",
			setup: func(m *mockBootstrapper) {
				m.On("EnsureAdmin", mock.Anything, "admin@printshop.example", "secret").Return(false, errors.New("timeout")).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mockBootstrapper)
			if tt.setup != nil {
				tt.setup(m)
			}

			assert.NotPanics(t, func() { ensureAdmin(m, tt.email, tt.password) })

			if tt.setup == nil {
				m.AssertNotCalled(t, "EnsureAdmin", mock.Anything, mock.Anything, mock.Anything)
			}
			m.AssertExpectations(t)
		})
	}
}

func TestInitializeAuth(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		assert.Nil(t, initializeAuth(config.AuthConfig{Enabled: false}, new(mocks.MockStaffRepository)))
	})

	t.Run("no staff store", func(t *testing.T) {
		assert.Nil(t, initializeAuth(config.AuthConfig{Enabled: true}, nil))
	})

	t.Run("enabled bootstraps admin", func(t *testing.T) {
		repo := new(mocks.MockStaffRepository)
		repo.On("FindByEmail", mock.Anything, "admin@printshop.example").Return(nil, nil).Once()
		repo.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Staff) bool {
			return s.Email == "admin@printshop.example" && s.Active && s.Password != "secret"
		})).Return(nil).Once()

		auth := initializeAuth(config.AuthConfig{
			Enabled:        true,
			JWTSecretKey:   "test-secret",
			AccessTokenTTL: time.Hour,
			AdminEmail:     "admin@printshop.example",
			AdminPassword:  "secret",
		}, repo)

		assert.NotNil(t, auth)
		repo.AssertExpectations(t)
	})
}
