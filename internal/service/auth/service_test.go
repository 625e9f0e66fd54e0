package auth

import (
	"context"
	"testing"
	"time"

	"github.com/aburakt/staffy/internal/domain/auth"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/aburakt/staffy/internal/pkg/jwt"
	"github.com/aburakt/staffy/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret   = "test-secret-key-for-jwt"
	testPassword = "correct-horse"
)

func setup(t *testing.T, active bool, withPassword bool) (auth.AuthService, jwt.Service, staff.Staff) {
	t.Helper()
	repo := memory.NewStaffRepository(memory.NewStore())
	jwtService := jwt.NewJWTService(testSecret, time.Hour)

	member := staff.Staff{
		FirstName:    "Ayse",
		LastName:     "Yilmaz",
		Email:        "ayse@example.com",
		HireDate:     time.Date(2023, time.January, 2, 0, 0, 0, 0, time.Local),
		Role:         staff.RoleManager,
		Active:       active,
		LeaveBalance: staff.NewLeaveBalance(20),
	}
	if withPassword {
		hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
		require.NoError(t, err)
		h := string(hash)
		member.PasswordHash = &h
	}
	created, err := repo.Create(context.Background(), member)
	require.NoError(t, err)

	return NewAuthService(repo, jwtService), jwtService, created
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, jwtService, member := setup(t, true, true)

	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "Ayse@example.com", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, member.ID, resp.StaffID)
	assert.Equal(t, "manager", resp.Role)

	token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
	require.NoError(t, err)
	staffID, ok := token.Get("staff_id")
	require.True(t, ok)
	assert.Equal(t, member.ID, staffID)
}

func TestAuthService_Login_Failures(t *testing.T) {
	tests := []struct {
		name         string
		active       bool
		withPassword bool
		email        string
		password     string
		want         error
	}{
		{name: "wrong password", active: true, withPassword: true, email: "ayse@example.com", password: "nope", want: auth.ErrInvalidCredentials},
		{name: "unknown email", active: true, withPassword: true, email: "ghost@example.com", password: testPassword, want: auth.ErrInvalidCredentials},
		{name: "no password set", active: true, withPassword: false, email: "ayse@example.com", password: testPassword, want: auth.ErrInvalidCredentials},
		{name: "inactive staff", active: false, withPassword: true, email: "ayse@example.com", password: testPassword, want: auth.ErrInactiveStaff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := setup(t, tt.active, tt.withPassword)
			_, err := svc.Login(context.Background(), auth.LoginRequest{Email: tt.email, Password: tt.password})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, jwtService, _ := setup(t, true, true)
	resp, err := svc.Login(context.Background(), auth.LoginRequest{Email: "ayse@example.com", Password: testPassword})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), resp.AccessToken, resp.ExpiresAt))
	assert.True(t, jwtService.IsTokenRevoked(resp.AccessToken))

	assert.ErrorIs(t, svc.Logout(context.Background(), " ", 0), auth.ErrInvalidToken)
}
