package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aburakt/staffy/internal/domain/auth"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/aburakt/staffy/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

const tokenTypeBearer = "Bearer"

type AuthServiceImpl struct {
	staff.StaffRepository
	jwt.Service
}

func NewAuthService(staffRepository staff.StaffRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		StaffRepository: staffRepository,
		Service:         jwtService,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	member, err := a.StaffRepository.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, staff.ErrStaffNotFound) {
			return auth.LoginResponse{}, auth.ErrInvalidCredentials
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get staff by email: %w", err)
	}

	if member.PasswordHash == nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*member.PasswordHash), []byte(req.Password)); err != nil {
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}
	if !member.Active {
		return auth.LoginResponse{}, auth.ErrInactiveStaff
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(member.ID, member.Email, string(member.Role))
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("Staff logged in", "staff_id", member.ID, "role", member.Role)
	return auth.LoginResponse{
		AccessToken: token,
		TokenType:   tokenTypeBearer,
		ExpiresAt:   expiresAt,
		StaffID:     member.ID,
		Role:        string(member.Role),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string, expiresAt int64) error {
	if strings.TrimSpace(token) == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(token, expiresAt)
	return nil
}
