package auth

import "context"

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	LoginWithEmployeeCode(ctx context.Context, req LoginWithEmployeeCodeRequest) (TokenResponse, error)
	LoginWithOAuth(ctx context.Context, provider string, providerID string, email string) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

// RefreshTokenRepository persists issued refresh tokens so revocation
// survives restarts.
type RefreshTokenRepository interface {
	Store(ctx context.Context, userID string, token string, expiresAt int64) error
	IsStored(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
