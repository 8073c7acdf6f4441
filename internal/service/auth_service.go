package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/library-service/internal/auth"
	"github.com/spec-kit/library-service/internal/config"
	"github.com/spec-kit/library-service/internal/domain"
	"github.com/spec-kit/library-service/internal/events"
	"github.com/spec-kit/library-service/internal/repository"
	apperrors "github.com/spec-kit/library-service/pkg/util"
)

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	users      repository.Store[domain.User]
	tokenMgr   *auth.TokenManager
	revoked    *auth.RevocationList
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.Store[domain.User], revoked *auth.RevocationList, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		revoked:    revoked,
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new member account.
func (s *AuthService) Register(ctx context.Context, user domain.User) (domain.User, error) {
	if user.Username == "" || user.Email == "" || user.Password == "" {
		return domain.User{}, apperrors.NewValidationError("username, email and password are required")
	}

	if _, err := s.users.FindOne(ctx, repository.Query{"email": user.Email}); err == nil {
		return domain.User{}, apperrors.NewConflict("Email already registered")
	} else if !isNotFound(err) {
		return domain.User{}, err
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

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return domain.User{}, err
	}

	s.publish(ctx, events.EventUserRegistered, created.ID, events.UserRegisteredPayload{
		Username: created.Username,
		Email:    created.Email,
		Role:     created.Role,
	})
	return created.Sanitized(), nil
}

// Login authenticates by email and password and issues a signed token. An
// unknown email surfaces as not-found; a wrong password as invalid
// credentials. No token is issued on either failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, string, time.Time, error) {
	user, err := s.users.FindOne(ctx, repository.Query{"email": email})
	if err != nil {
		return domain.User{}, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return domain.User{}, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return domain.User{}, "", time.Time{}, err
	}

	s.publish(ctx, events.EventUserLoggedIn, user.ID, events.UserLoggedInPayload{
		Email:     user.Email,
		ExpiresAt: expiresAt,
	})
	return user.Sanitized(), token, expiresAt, nil
}

// Logout revokes the caller's token for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, identity *auth.Identity) error {
	if identity == nil {
		return apperrors.NewUnauthorized("Missing token")
	}
	return s.revoked.Revoke(ctx, identity.TokenID, identity.ExpiresAt)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func isNotFound(err error) bool {
	var domainErr *apperrors.DomainError
	return errors.As(err, &domainErr) && domainErr.Code == "NOT_FOUND"
}
