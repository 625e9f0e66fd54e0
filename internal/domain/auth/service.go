package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// Logout revokes the access token until it would have expired.
	Logout(ctx context.Context, token string, expiresAt int64) error
}
