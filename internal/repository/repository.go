package repository

import "context"

// Query maps document fields to expected values. The same descriptor shape is
// used for find, update and delete; no ordering or pagination semantics.
type Query map[string]any

// Patch carries the fields to merge into a matched document.
type Patch map[string]any

// Store is the single data-access contract shared by every entity
// repository. Entity repositories add no behavior beyond binding a
// collection; the one generic implementation lives in Collection.
type Store[T any] interface {
	Create(ctx context.Context, record T) (T, error)
	FindByID(ctx context.Context, id string) (T, error)
	FindOne(ctx context.Context, query Query) (T, error)
	Find(ctx context.Context, query Query) ([]T, error)
	Update(ctx context.Context, query Query, patch Patch) (T, error)
	UpdateMany(ctx context.Context, query Query, patch Patch) (int64, error)
	Delete(ctx context.Context, query Query) (int64, error)
}
