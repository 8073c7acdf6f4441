package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/library-service/internal/auth"
	"github.com/spec-kit/library-service/internal/config"
	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/events"
	"github.com/spec-kit/library-service/internal/repository"
	apperrors "github.com/spec-kit/library-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}
}

func newAuthService() (*AuthService, repository.Store[domain.User], events.Dispatcher) {
	users := repository.NewMemory[domain.User]("User")
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewAuthService(testConfig(), users, auth.NewRevocationList(nil), dispatcher)
	return svc, users, dispatcher
}

func registerMember(t *testing.T, svc *AuthService) domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), domain.User{
		Username: "reader",
		Email:    "reader@example.com",
		FullName: "Avid Reader",
		Password: "s3cret",
	})
	require.NoError(t, err)
	return user
}

func TestAuthService_RegisterDefaultsToMember(t *testing.T) {
	svc, users, _ := newAuthService()

	user := registerMember(t, svc)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, string(domain.RoleMember), user.Role)
	assert.Empty(t, user.Password)
	assert.Empty(t, user.PasswordHash)

	// The stored record carries the hash, never the plaintext.
	stored, err := users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.Empty(t, stored.Password)
}

func TestAuthService_RegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthService()
	registerMember(t, svc)

	_, err := svc.Register(context.Background(), domain.User{
		Username: "other",
		Email:    "reader@example.com",
		Password: "pw",
	})

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestAuthService_RegisterRequiresFields(t *testing.T) {
	svc, _, _ := newAuthService()

	_, err := svc.Register(context.Background(), domain.User{Email: "x@example.com"})

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
}

func TestAuthService_LoginSuccessIssuesToken(t *testing.T) {
	svc, _, _ := newAuthService()
	registered := registerMember(t, svc)

	user, token, expiresAt, err := svc.Login(context.Background(), "reader@example.com", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.Subject)
	assert.Equal(t, string(domain.RoleMember), claims.Role)
	assert.False(t, claims.IsAdmin)
}

func TestAuthService_LoginWrongPasswordIsInvalidCredentials(t *testing.T) {
	svc, _, _ := newAuthService()
	registerMember(t, svc)

	_, token, _, err := svc.Login(context.Background(), "reader@example.com", "wrong")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	assert.Equal(t, 401, domainErr.HTTPStatus)
	assert.Empty(t, token)
}

func TestAuthService_LoginUnknownEmailIsNotFound(t *testing.T) {
	svc, _, _ := newAuthService()
	registerMember(t, svc)

	_, token, _, err := svc.Login(context.Background(), "ghost@example.com", "s3cret")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Empty(t, token)
}

func TestAuthService_PublishesLifecycleEvents(t *testing.T) {
	users := repository.NewMemory[domain.User]("User")
	dispatcher := events.NewInMemoryDispatcher()

	var seen []events.EventType
	record := func(_ context.Context, event events.Event) error {
		seen = append(seen, event.Type)
		return nil
	}
	dispatcher.Subscribe(events.EventUserRegistered, record)
	dispatcher.Subscribe(events.EventUserLoggedIn, record)

	svc := NewAuthService(testConfig(), users, auth.NewRevocationList(nil), dispatcher)
	registerMember(t, svc)
	_, _, _, err := svc.Login(context.Background(), "reader@example.com", "s3cret")
	require.NoError(t, err)

	assert.Equal(t, []events.EventType{events.EventUserRegistered, events.EventUserLoggedIn}, seen)
}

func TestAuthService_LogoutWithoutIdentity(t *testing.T) {
	svc, _, _ := newAuthService()

	err := svc.Logout(context.Background(), nil)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 401, domainErr.HTTPStatus)
}
