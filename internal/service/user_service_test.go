package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/library-service/internal/auth"
	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/events"
	"github.com/spec-kit/library-service/internal/repository"
	apperrors "github.com/spec-kit/library-service/pkg/util"
)

func newUserService() (*UserService, repository.Store[domain.User]) {
	users := repository.NewMemory[domain.User]("User")
	return NewUserService(users, 4, nil), users
}

func createUser(t *testing.T, svc *UserService, username, email string) domain.User {
	t.Helper()
	user, err := svc.Create(context.Background(), domain.User{
		Username: username,
		Email:    email,
		FullName: username,
		Password: "s3cret",
	})
	require.NoError(t, err)
	return user
}

func identityFor(user domain.User) *auth.Identity {
	return &auth.Identity{
		SubjectID: user.ID,
		Role:      user.Role,
		IsAdmin:   domain.IsPrivileged(user.Role),
	}
}

func TestUserService_CreateHashesAndSanitizes(t *testing.T) {
	svc, users := newUserService()

	user := createUser(t, svc, "alice", "alice@example.com")

	assert.Empty(t, user.Password)
	assert.Empty(t, user.PasswordHash)

	stored, err := users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.PasswordHash)
	require.NoError(t, auth.ComparePassword(stored.PasswordHash, "s3cret"))
}

func TestUserService_CreateRequiresPassword(t *testing.T) {
	svc, _ := newUserService()

	_, err := svc.Create(context.Background(), domain.User{Username: "x", Email: "x@example.com"})

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
}

func TestUserService_ListAndGetNeverExposeHashes(t *testing.T) {
	svc, _ := newUserService()
	created := createUser(t, svc, "alice", "alice@example.com")

	listed, err := svc.List(context.Background(), repository.Query{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].PasswordHash)

	fetched, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, fetched.PasswordHash)
}

func TestUserService_UpdateIgnoresCredentialFields(t *testing.T) {
	svc, users := newUserService()
	created := createUser(t, svc, "alice", "alice@example.com")

	_, err := svc.Update(context.Background(), created.ID, repository.Patch{
		"fullName":     "Alice Cooper",
		"passwordHash": "forged",
		"password":     "forged",
	})
	require.NoError(t, err)

	stored, err := users.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", stored.FullName)
	require.NoError(t, auth.ComparePassword(stored.PasswordHash, "s3cret"))
}

func TestUserService_UpdateProfileTargetsCallerOnly(t *testing.T) {
	svc, users := newUserService()
	alice := createUser(t, svc, "alice", "alice@example.com")
	bob := createUser(t, svc, "bob", "bob@example.com")

	// Authenticated as alice; any other id in the inbound request is
	// irrelevant because the service only receives the caller identity.
	updated, err := svc.UpdateProfile(context.Background(), identityFor(alice), "new-alice@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, updated.ID)
	assert.Equal(t, "new-alice@example.com", updated.Email)

	unchangedBob, err := users.FindByID(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", unchangedBob.Email)
}

func TestUserService_UpdateProfileRejectsEmptyPatch(t *testing.T) {
	svc, _ := newUserService()
	alice := createUser(t, svc, "alice", "alice@example.com")

	_, err := svc.UpdateProfile(context.Background(), identityFor(alice), "", "")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, 400, domainErr.HTTPStatus)
}

func TestUserService_GetProfile(t *testing.T) {
	svc, _ := newUserService()
	alice := createUser(t, svc, "alice", "alice@example.com")

	profile, err := svc.GetProfile(context.Background(), identityFor(alice))
	require.NoError(t, err)
	assert.Equal(t, alice.ID, profile.ID)
	assert.Empty(t, profile.PasswordHash)
}

func TestUserService_ChangePassword(t *testing.T) {
	svc, users := newUserService()
	alice := createUser(t, svc, "alice", "alice@example.com")

	err := svc.ChangePassword(context.Background(), identityFor(alice), "s3cret", "n3w-s3cret")
	require.NoError(t, err)

	stored, err := users.FindByID(context.Background(), alice.ID)
	require.NoError(t, err)
	require.NoError(t, auth.ComparePassword(stored.PasswordHash, "n3w-s3cret"))
}

func TestUserService_ChangePasswordPublishesEvent(t *testing.T) {
	users := repository.NewMemory[domain.User]("User")
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewUserService(users, 4, dispatcher)
	alice := createUser(t, svc, "alice", "alice@example.com")

	var seen []events.Event
	dispatcher.Subscribe(events.EventPasswordChanged, func(_ context.Context, event events.Event) error {
		seen = append(seen, event)
		return nil
	})

	require.NoError(t, svc.ChangePassword(context.Background(), identityFor(alice), "s3cret", "n3w-s3cret"))

	require.Len(t, seen, 1)
	assert.Equal(t, alice.ID, seen[0].SubjectID)
	assert.Equal(t, events.PasswordChangedPayload{Email: "alice@example.com"}, seen[0].Payload)
}

func TestUserService_ChangePasswordWrongCurrent(t *testing.T) {
	svc, users := newUserService()
	alice := createUser(t, svc, "alice", "alice@example.com")

	err := svc.ChangePassword(context.Background(), identityFor(alice), "wrong", "n3w-s3cret")

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)

	stored, err := users.FindByID(context.Background(), alice.ID)
	require.NoError(t, err)
	require.NoError(t, auth.ComparePassword(stored.PasswordHash, "s3cret"))
}

func TestResource_DelegatesToRepository(t *testing.T) {
	books := repository.NewMemory[domain.Book]("Book")
	svc := NewBookService(books)

	created, err := svc.Create(context.Background(), domain.Book{Title: "Dune", Author: "Herbert", Quantity: 1})
	require.NoError(t, err)

	fetched, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	updated, err := svc.Update(context.Background(), created.ID, repository.Patch{"quantity": 2})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Quantity)

	deleted, err := svc.Delete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = svc.Delete(context.Background(), created.ID)
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
