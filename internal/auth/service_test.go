package auth

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	user "github.com/arjunmehta/rechargehub-backend/internal/users"
	pkgauth "github.com/arjunmehta/rechargehub-backend/pkg/auth"
	"github.com/arjunmehta/rechargehub-backend/pkg/auth/session"
	"github.com/arjunmehta/rechargehub-backend/pkg/config"
	"github.com/arjunmehta/rechargehub-backend/pkg/db/models"
	"github.com/arjunmehta/rechargehub-backend/pkg/enums"
	pkgerrors "github.com/arjunmehta/rechargehub-backend/pkg/errors"
	redisclient "github.com/arjunmehta/rechargehub-backend/pkg/redis"
	"github.com/arjunmehta/rechargehub-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-test-secret-test-secret",
		Issuer:            "rechargehub",
		ExpirationMinutes: 60,
		SessionTTLMinutes: 1440,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

type authFixture struct {
	svc      Service
	users    *user.MemoryRepository
	sessions *session.Manager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redisclient.NewFromAddr(mr.Addr())
	t.Cleanup(func() { _ = client.Close() })

	sessions, err := session.NewManager(client, testJWTConfig())
	require.NoError(t, err)

	users := user.NewMemoryRepository()
	svc, err := NewService(users, sessions, testJWTConfig(), testPasswordConfig())
	require.NoError(t, err)

	return &authFixture{svc: svc, users: users, sessions: sessions}
}

func (f *authFixture) mustRegister(t *testing.T, email, password string) *models.User {
	t.Helper()
	account, err := f.svc.Register(context.Background(), RegisterInput{
		Name:     "Priya Sharma",
		Email:    email,
		Phone:    "9876543210",
		Password: password,
	})
	require.NoError(t, err)
	return account
}

func TestRegisterHashesPassword(t *testing.T) {
	f := newAuthFixture(t)

	account := f.mustRegister(t, "Priya@Example.com", "s3cret-pass")

	assert.Equal(t, "priya@example.com", account.Email)
	assert.Equal(t, enums.UserRoleUser, account.Role)
	assert.NotEqual(t, "s3cret-pass", account.PasswordHash)
	assert.Contains(t, account.PasswordHash, "$argon2id$")
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	f := newAuthFixture(t)
	f.mustRegister(t, "priya@example.com", "s3cret-pass")

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Name:     "Other",
		Email:    "PRIYA@example.com",
		Password: "another-pass",
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestRegisterValidation(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{Email: "a@example.com", Password: "longenough"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = f.svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@example.com", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestLoginIssuesTokenAndOpensSession(t *testing.T) {
	f := newAuthFixture(t)
	account := f.mustRegister(t, "priya@example.com", "s3cret-pass")

	result, err := f.svc.Login(context.Background(), "PRIYA@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, account.ID, result.User.ID)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims.UserID)
	assert.Equal(t, enums.UserRoleUser, claims.Role)

	live, err := f.sessions.HasSession(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.True(t, live)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.mustRegister(t, "priya@example.com", "s3cret-pass")

	_, err := f.svc.Login(context.Background(), "priya@example.com", "wrong-pass")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())

	_, err = f.svc.Login(context.Background(), "nobody@example.com", "s3cret-pass")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestAdminLoginRequiresAdminRole(t *testing.T) {
	f := newAuthFixture(t)
	f.mustRegister(t, "priya@example.com", "s3cret-pass")

	_, err := f.svc.AdminLogin(context.Background(), "priya@example.com", "s3cret-pass")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeForbidden, pkgerrors.As(err).Code())

	hash, err := security.HashPassword("admin-pass-123", testPasswordConfig())
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), &models.User{
		ID:           uuid.New(),
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         enums.UserRoleAdmin,
	}))

	result, err := f.svc.AdminLogin(context.Background(), "admin@example.com", "admin-pass-123")
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleAdmin, result.User.Role)
}

func TestLogoutRevokesSession(t *testing.T) {
	f := newAuthFixture(t)
	f.mustRegister(t, "priya@example.com", "s3cret-pass")

	result, err := f.svc.Login(context.Background(), "priya@example.com", "s3cret-pass")
	require.NoError(t, err)

	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), claims.ID))

	live, err := f.sessions.HasSession(context.Background(), claims.ID)
	require.NoError(t, err)
	assert.False(t, live)
}
