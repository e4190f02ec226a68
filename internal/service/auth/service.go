package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/karyaprima/hrops-backend-go/internal/domain/auth"
	"github.com/karyaprima/hrops-backend-go/internal/domain/user"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	user.UserRepository
	refreshTokens auth.RefreshTokenRepository
	jwtService    jwt.Service
}

func NewAuthService(
	userRepo user.UserRepository,
	refreshTokens auth.RefreshTokenRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository: userRepo,
		refreshTokens:  refreshTokens,
		jwtService:     jwtService,
	}
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User) (auth.TokenResponse, error) {
	employeeID := ""
	if u.EmployeeID != nil {
		employeeID = *u.EmployeeID
	}

	accessToken, expiresAt, err := a.jwtService.GenerateAccessToken(u.ID, employeeID, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	if err := a.refreshTokens.Store(ctx, u.ID, refreshToken, refreshExpiresAt); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		TokenType:             "Bearer",
		ExpiresAt:             expiresAt,
		Role:                  string(u.Role),
		EmployeeID:            employeeID,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiresAt,
	}, nil
}

func verifyPassword(u user.User, password string) error {
	if u.PasswordHash == nil {
		return auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(password)); err != nil {
		return auth.ErrInvalidCredentials
	}
	return nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to load user: %w", err)
	}

	if err := verifyPassword(u, req.Password); err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, u)
}

// LoginWithEmployeeCode implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithEmployeeCode(ctx context.Context, req auth.LoginWithEmployeeCodeRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := a.UserRepository.GetByEmployeeCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to load user: %w", err)
	}

	if err := verifyPassword(u, req.Password); err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(ctx, u)
}

// LoginWithOAuth implements auth.AuthService. The account must already exist:
// sign-in links an OAuth identity by email on first use but never
// provisions a new user.
func (a *AuthServiceImpl) LoginWithOAuth(ctx context.Context, provider string, providerID string, email string) (auth.TokenResponse, error) {
	u, err := a.UserRepository.GetByOAuth(ctx, provider, providerID)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, fmt.Errorf("failed to load user by oauth: %w", err)
		}

		u, err = a.UserRepository.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return auth.TokenResponse{}, auth.ErrOAuthEmailNotFound
			}
			return auth.TokenResponse{}, fmt.Errorf("failed to load user: %w", err)
		}

		u.OAuthProvider = &provider
		u.OAuthProviderID = &providerID
		if err := a.UserRepository.Update(ctx, u); err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to link oauth identity: %w", err)
		}
	}

	return a.issueTokens(ctx, u)
}

// Refresh implements auth.AuthService. Rotation is mandatory: the presented
// token is revoked whether or not a new pair is issued.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if refreshToken == "" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	if a.jwtService.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := a.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	stored, err := a.refreshTokens.IsStored(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !stored {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	a.jwtService.RevokeToken(refreshToken)
	if err := a.refreshTokens.Revoke(ctx, refreshToken); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	u, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to load user: %w", err)
	}

	return a.issueTokens(ctx, u)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	a.jwtService.RevokeToken(refreshToken)
	if err := a.refreshTokens.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}
