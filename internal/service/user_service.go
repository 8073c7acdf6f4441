package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/library-service/internal/auth"
	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/events"
	"github.com/spec-kit/library-service/internal/repository"
	apperrors "github.com/spec-kit/library-service/pkg/util"
)

// UserService layers credential handling and self-service profile rules on
// top of the generic CRUD service. Responses never carry password material.
type UserService struct {
	*Resource[domain.User]
	repo       repository.Store[domain.User]
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewUserService builds the service. dispatcher may be nil.
func NewUserService(repo repository.Store[domain.User], bcryptCost int, dispatcher events.Dispatcher) *UserService {
	return &UserService{
		Resource:   NewResource(repo),
		repo:       repo,
		dispatcher: dispatcher,
		bcryptCost: bcryptCost,
	}
}

func (s *UserService) List(ctx context.Context, filter repository.Query) ([]domain.User, error) {
	users, err := s.Resource.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.Resource.GetByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	return user.Sanitized(), nil
}

// Create hashes the supplied plaintext before the record reaches the store.
func (s *UserService) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if user.Password == "" {
		return domain.User{}, apperrors.NewValidationError("password is required")
	}
	hash, err := auth.HashPassword(user.Password, s.bcryptCost)
	if err != nil {
		return domain.User{}, err
	}
	user.Password = ""
	user.PasswordHash = hash
	if user.Role == "" {
		user.Role = string(domain.RoleMember)
	}

	created, err := s.Resource.Create(ctx, user)
	if err != nil {
		return domain.User{}, err
	}
	return created.Sanitized(), nil
}

func (s *UserService) Update(ctx context.Context, id string, patch repository.Patch) (domain.User, error) {
	// Credential fields only change through ChangePassword.
	delete(patch, "password")
	delete(patch, "passwordHash")
	user, err := s.Resource.Update(ctx, id, patch)
	if err != nil {
		return domain.User{}, err
	}
	return user.Sanitized(), nil
}

// GetProfile returns the authenticated caller's own record.
func (s *UserService) GetProfile(ctx context.Context, identity *auth.Identity) (domain.User, error) {
	return s.GetByID(ctx, identity.SubjectID)
}

// UpdateProfile applies the restricted self-service field set. The target is
// always the caller's own identity; ids supplied in the request are ignored.
func (s *UserService) UpdateProfile(ctx context.Context, identity *auth.Identity, email, fullName string) (domain.User, error) {
	patch := repository.Patch{}
	if email != "" {
		patch["email"] = email
	}
	if fullName != "" {
		patch["fullName"] = fullName
	}
	if len(patch) == 0 {
		return domain.User{}, apperrors.NewValidationError("nothing to update")
	}

	user, err := s.repo.Update(ctx, repository.Query{"id": identity.SubjectID}, patch)
	if err != nil {
		return domain.User{}, err
	}
	return user.Sanitized(), nil
}

// ChangePassword verifies the current password before storing the new hash.
func (s *UserService) ChangePassword(ctx context.Context, identity *auth.Identity, currentPassword, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("new password is required")
	}

	user, err := s.repo.FindByID(ctx, identity.SubjectID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, currentPassword); err != nil {
		return apperrors.NewInvalidCredentials()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if _, err := s.repo.Update(ctx, repository.Query{"id": identity.SubjectID}, repository.Patch{"passwordHash": hash}); err != nil {
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventPasswordChanged,
			SubjectID: identity.SubjectID,
			Timestamp: time.Now(),
			Payload:   events.PasswordChangedPayload{Email: user.Email},
		})
	}
	return nil
}
