package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/karyaprima/hrops-backend-go/internal/domain/auth"
	"github.com/karyaprima/hrops-backend-go/internal/domain/user"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/jwt"
)

type fakeUserRepo struct {
	users []user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmployeeCode(ctx context.Context, code string) (user.User, error) {
	for _, u := range f.users {
		if u.EmployeeCode != nil && *u.EmployeeCode == code {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmployeeID(ctx context.Context, employeeID string) (user.User, error) {
	for _, u := range f.users {
		if u.EmployeeID != nil && *u.EmployeeID == employeeID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByOAuth(ctx context.Context, provider, providerID string) (user.User, error) {
	for _, u := range f.users {
		if u.OAuthProvider != nil && *u.OAuthProvider == provider &&
			u.OAuthProviderID != nil && *u.OAuthProviderID == providerID {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) ListByRoles(ctx context.Context, roles []user.Role) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		for _, role := range roles {
			if u.Role == role {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, updated user.User) error {
	for i, u := range f.users {
		if u.ID == updated.ID {
			f.users[i] = updated
			return nil
		}
	}
	return user.ErrUserNotFound
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]string // token -> userID
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[string]string{}}
}

func (f *fakeRefreshTokenRepo) Store(ctx context.Context, userID, token string, expiresAt int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = userID
	return nil
}

func (f *fakeRefreshTokenRepo) IsStored(ctx context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.tokens[token]
	return ok, nil
}

func (f *fakeRefreshTokenRepo) Revoke(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for token, owner := range f.tokens {
		if owner == userID {
			delete(f.tokens, token)
		}
	}
	return nil
}

func newTestService(t *testing.T) (auth.AuthService, *fakeUserRepo) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	hashStr := string(hash)
	employeeID := "emp-1"
	employeeCode := "2024-0001"

	users := &fakeUserRepo{users: []user.User{
		{
			ID:           "user-1",
			EmployeeID:   &employeeID,
			Email:        "budi@example.com",
			PasswordHash: &hashStr,
			Role:         user.RoleEmployee,
			EmployeeCode: &employeeCode,
		},
	}}

	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	return NewAuthService(users, newFakeRefreshTokenRepo(), jwtService), users
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newTestService(t)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "budi@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Equal(t, "employee", tokens.Role)
	assert.Equal(t, "emp-1", tokens.EmployeeID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "budi@example.com",
		Password: "not-the-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmailSameError(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials, "unknown account and wrong password are indistinguishable")
}

func TestLoginWithEmployeeCode(t *testing.T) {
	svc, _ := newTestService(t)

	tokens, err := svc.LoginWithEmployeeCode(context.Background(), auth.LoginWithEmployeeCodeRequest{
		EmployeeCode: "2024-0001",
		Password:     "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newTestService(t)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "budi@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEmpty(t, rotated.RefreshToken)

	// The presented token was revoked by the rotation.
	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _ := newTestService(t)

	tokens, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "budi@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))

	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestLoginWithOAuthLinksByEmail(t *testing.T) {
	svc, users := newTestService(t)

	tokens, err := svc.LoginWithOAuth(context.Background(), "google", "google-id-9", "budi@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	linked, err := users.GetByOAuth(context.Background(), "google", "google-id-9")
	require.NoError(t, err)
	assert.Equal(t, "user-1", linked.ID)

	// Second sign-in resolves through the linked identity.
	_, err = svc.LoginWithOAuth(context.Background(), "google", "google-id-9", "budi@example.com")
	require.NoError(t, err)
}

func TestLoginWithOAuthUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.LoginWithOAuth(context.Background(), "google", "google-id-1", "stranger@example.com")
	assert.ErrorIs(t, err, auth.ErrOAuthEmailNotFound)
}
