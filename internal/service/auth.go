package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/guttosm/print-quote-service/internal/domain/dto"
	"github.com/guttosm/print-quote-service/internal/domain/model"
	"github.com/guttosm/print-quote-service/internal/repository"
)

// AuthService authenticates print shop staff.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*dto.LoginResponse, error)
	ValidateToken(tokenString string) (*dto.Claims, error)
}

// StaffAuthService checks staff passwords with bcrypt and issues access tokens.
type StaffAuthService struct {
	staffRepo    repository.StaffRepositoryInterface
	tokenService TokenService
}

// NewAuthService creates a staff auth service.
func NewAuthService(staffRepo repository.StaffRepositoryInterface, tokenService TokenService) *StaffAuthService {
	return &StaffAuthService{staffRepo: staffRepo, tokenService: tokenService}
}

// Login verifies credentials. Unknown, inactive and wrong-password accounts all
// yield ErrInvalidCredentials.
func (s *StaffAuthService) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	staff, err := s.staffRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, storeError("failed to find staff by email", err)
	}
	if staff == nil || !staff.Active {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenService.GenerateAccessToken(staff)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.tokenService.AccessTokenTTL().Seconds()),
		Staff:     dto.StaffResponse{Email: staff.Email, Name: staff.Name},
	}, nil
}

func (s *StaffAuthService) ValidateToken(tokenString string) (*dto.Claims, error) {
	return s.tokenService.ValidateAccessToken(tokenString)
}

// EnsureAdmin creates the bootstrap staff account when it does not exist yet.
// An existing account is left untouched, including its password.
func (s *StaffAuthService) EnsureAdmin(ctx context.Context, email, password string) (created bool, err error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, errors.New("admin email and password are required")
	}

	existing, err := s.staffRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("failed to look up admin: %w", err)
	}
	if existing != nil {
		return false, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}

	staff := &model.Staff{
		Email:    email,
		Password: string(hashed),
		Name:     "Administrator",
		Active:   true,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		if errors.Is(err, repository.ErrStaffExists) {
			return false, nil
		}
		return false, fmt.Errorf("failed to create admin: %w", err)
	}

	log.Info().Str("email", staff.Email).Msg("Bootstrap staff account created")
	return true, nil
}

var _ AuthService = (*StaffAuthService)(nil)
