package service

import (
	"context"

	"github.com/spec-kit/library-service/internal/repository"
)

// CRUD is the operation set shared by every entity service. The generic
// handler layer is parameterized over this interface.
type CRUD[T any] interface {
	List(ctx context.Context, filter repository.Query) ([]T, error)
	GetByID(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, id string, patch repository.Patch) (T, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Resource is the one generic CRUD service implementation. Each method calls
// exactly one repository operation and propagates its failures unmodified.
type Resource[T any] struct {
	repo repository.Store[T]
}

// NewResource binds a CRUD service to a repository.
func NewResource[T any](repo repository.Store[T]) *Resource[T] {
	return &Resource[T]{repo: repo}
}

func (s *Resource[T]) List(ctx context.Context, filter repository.Query) ([]T, error) {
	return s.repo.Find(ctx, filter)
}

func (s *Resource[T]) GetByID(ctx context.Context, id string) (T, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Resource[T]) Create(ctx context.Context, record T) (T, error) {
	return s.repo.Create(ctx, record)
}

func (s *Resource[T]) Update(ctx context.Context, id string, patch repository.Patch) (T, error) {
	return s.repo.Update(ctx, repository.Query{"id": id}, patch)
}

func (s *Resource[T]) Delete(ctx context.Context, id string) (int64, error) {
	return s.repo.Delete(ctx, repository.Query{"id": id})
}
