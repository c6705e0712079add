package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/campus-community/internal/config"
	"github.com/spec-kit/campus-community/internal/domain"
	"github.com/spec-kit/campus-community/internal/events"
	apperrors "github.com/spec-kit/campus-community/pkg/util"
)

func newAuthFixture() (*AuthService, *memUserRepo, *recordingDispatcher) {
	users := newMemUserRepo()
	dispatcher := &recordingDispatcher{}
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            bcrypt.MinCost,
	}}
	return NewAuthService(cfg, users, dispatcher, zap.NewNop()), users, dispatcher
}

func registerInput() RegisterInput {
	return RegisterInput{
		Name:           "Sam Rivera",
		Username:       "samr",
		Email:          "sam@example.com",
		SchoolEmail:    "sam@campus.edu",
		Password:       "secret123",
		DateOfBirth:    "2001-04-12",
		UniversityName: "Campus University",
	}
}

func TestRegisterIssuesToken(t *testing.T) {
	svc, _, _ := newAuthFixture()

	user, token, exp, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, exp.IsZero())
	assert.False(t, user.IsVerified)
	assert.False(t, user.CanShowContact)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegisterUniquenessOrder(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, _, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	cases := []struct {
		name    string
		mutate  func(*RegisterInput)
		message string
	}{
		{"email", func(in *RegisterInput) {
			in.Username = "unique1"
			in.SchoolEmail = "unique1@campus.edu"
		}, "user already exists with this email"},
		{"username", func(in *RegisterInput) {
			in.Email = "unique2@example.com"
			in.SchoolEmail = "unique2@campus.edu"
		}, "username already taken"},
		{"school email", func(in *RegisterInput) {
			in.Email = "unique3@example.com"
			in.Username = "unique3"
		}, "school email already registered"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := registerInput()
			tc.mutate(&input)
			_, _, _, err := svc.Register(context.Background(), input)
			var domainErr *apperrors.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Equal(t, 409, domainErr.HTTPStatus)
			assert.Equal(t, tc.message, domainErr.Message)
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, _, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	_, _, _, unknownErr := svc.Login(context.Background(), "nobody@example.com", "secret123")
	_, _, _, wrongPassErr := svc.Login(context.Background(), "sam@example.com", "wrong-password")

	var unknown, wrongPass *apperrors.DomainError
	require.True(t, errors.As(unknownErr, &unknown))
	require.True(t, errors.As(wrongPassErr, &wrongPass))
	assert.Equal(t, unknown.Message, wrongPass.Message)
	assert.Equal(t, 401, unknown.HTTPStatus)
	assert.Equal(t, 401, wrongPass.HTTPStatus)
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	svc, users, _ := newAuthFixture()
	user, _, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	user.Status = domain.UserStatusInactive
	require.NoError(t, users.Update(context.Background(), user))

	_, _, _, err = svc.Login(context.Background(), "sam@example.com", "secret123")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 401, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Message, "inactive")
}

func TestSuperadminLoginScopedToRole(t *testing.T) {
	svc, _, _ := newAuthFixture()
	_, _, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	// a regular account with the correct password is not a superadmin match
	_, _, _, err = svc.SuperadminLogin(context.Background(), "sam@example.com", "secret123")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "invalid superadmin credentials", domainErr.Message)
}

func TestChangePassword(t *testing.T) {
	svc, _, dispatcher := newAuthFixture()
	user, _, _, err := svc.Register(context.Background(), registerInput())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user.ID, "wrong", "newsecret")
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "current password is incorrect", domainErr.Message)

	err = svc.ChangePassword(context.Background(), user.ID, "secret123", "short")
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, 400, domainErr.HTTPStatus)

	require.NoError(t, svc.ChangePassword(context.Background(), user.ID, "secret123", "newsecret"))

	_, _, _, err = svc.Login(context.Background(), "sam@example.com", "newsecret")
	require.NoError(t, err)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventPasswordChanged, published[0].Type)
}

func TestEnsureSuperadminIdempotent(t *testing.T) {
	svc, users, _ := newAuthFixture()
	cfg := config.SuperadminConfig{
		Name:       "Root Admin",
		Username:   "root",
		Email:      "root@example.com",
		Password:   "admin123456",
		University: "Campus University",
	}

	require.NoError(t, svc.EnsureSuperadmin(context.Background(), cfg))
	require.NoError(t, svc.EnsureSuperadmin(context.Background(), cfg))

	all, err := users.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.RoleSuperadmin, all[0].Role)
	assert.True(t, all[0].IsVerified)
	assert.True(t, all[0].CanShowContact)

	_, _, _, err = svc.SuperadminLogin(context.Background(), "root@example.com", "admin123456")
	require.NoError(t, err)
}
