package auth

import (
	"context"
	"testing"

	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/banrai-ops/farm-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	user.UserRepository
	byUsername map[string]user.User
	byID       map[int64]user.User
	created    []user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	if _, exists := f.byUsername[u.Username]; exists {
		return user.User{}, user.ErrUsernameExists
	}
	u.ID = int64(len(f.created) + 1)
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func newTestJWT() jwt.Service {
	return jwt.NewJWTService("test-secret", "1h", "24h")
}

func hashedPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register(t *testing.T) {
	repo := &fakeUserRepo{byUsername: map[string]user.User{}}
	svc := NewAuthService(repo, newTestJWT())

	created, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "somchai",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.Equal(t, "somchai", created.Username)
	assert.Equal(t, user.RoleUser, created.Role)
	// The stored hash must verify against the original password.
	require.Len(t, repo.created, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created[0].PasswordHash), []byte("secret123")))
	assert.NotEqual(t, "secret123", repo.created[0].PasswordHash)
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{byUsername: map[string]user.User{}}, newTestJWT())

	_, err := svc.Register(context.Background(), user.RegisterRequest{
		Username: "somchai",
		Password: "abc",
	})
	assert.Error(t, err)
}

func TestAuthService_Login(t *testing.T) {
	repo := &fakeUserRepo{byUsername: map[string]user.User{
		"somchai": {ID: 7, Username: "somchai", Role: user.RoleBoss, PasswordHash: hashedPassword(t, "secret123")},
	}}
	svc := NewAuthService(repo, newTestJWT())

	tokens, err := svc.Login(context.Background(), user.LoginRequest{Username: "somchai", Password: "secret123"})
	require.NoError(t, err)

	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := &fakeUserRepo{byUsername: map[string]user.User{
		"somchai": {ID: 7, Username: "somchai", PasswordHash: hashedPassword(t, "secret123")},
	}}
	svc := NewAuthService(repo, newTestJWT())

	_, err := svc.Login(context.Background(), user.LoginRequest{Username: "somchai", Password: "wrong"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(&fakeUserRepo{byUsername: map[string]user.User{}}, newTestJWT())

	_, err := svc.Login(context.Background(), user.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestAuthService_Refresh_RotatesToken(t *testing.T) {
	jwtService := newTestJWT()
	repo := &fakeUserRepo{byID: map[int64]user.User{
		7: {ID: 7, Username: "somchai", Role: user.RoleUser},
	}}
	svc := NewAuthService(repo, jwtService)

	refreshToken, _, err := jwtService.GenerateRefreshToken(7)
	require.NoError(t, err)

	tokens, err := svc.Refresh(context.Background(), refreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)

	// The presented token is single-use.
	_, err = svc.Refresh(context.Background(), refreshToken)
	assert.ErrorIs(t, err, user.ErrInvalidToken)
}

func TestAuthService_Logout_RevokesTokens(t *testing.T) {
	jwtService := newTestJWT()
	svc := NewAuthService(&fakeUserRepo{}, jwtService)

	require.NoError(t, svc.Logout(context.Background(), "access-token", "refresh-token"))

	assert.True(t, jwtService.IsTokenRevoked("access-token"))
	assert.True(t, jwtService.IsTokenRevoked("refresh-token"))
}
