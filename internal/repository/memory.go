package repository

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/library-service/pkg/util"
)

// Memory is an in-process Store implementation with the same containment
// semantics as Collection. It backs tests and local runs without a database.
type Memory[T any] struct {
	mu    sync.RWMutex
	docs  map[string]map[string]any
	order []string
	label string
}

// NewMemory builds an empty in-memory collection.
func NewMemory[T any](label string) *Memory[T] {
	return &Memory[T]{docs: map[string]map[string]any{}, label: label}
}

func (m *Memory[T]) Create(_ context.Context, record T) (T, error) {
	var zero T
	doc, err := encodeDocument(record)
	if err != nil {
		return zero, err
	}
	stampCreate(doc, uuid.NewString(), time.Now())

	m.mu.Lock()
	id := doc["id"].(string)
	m.docs[id] = doc
	m.order = append(m.order, id)
	m.mu.Unlock()

	return decodeDocument[T](doc)
}

func (m *Memory[T]) FindByID(_ context.Context, id string) (T, error) {
	var zero T
	m.mu.RLock()
	doc, ok := m.docs[id]
	m.mu.RUnlock()
	if !ok {
		return zero, apperrors.NewNotFound(m.label)
	}
	return decodeDocument[T](doc)
}

func (m *Memory[T]) FindOne(_ context.Context, filter Query) (T, error) {
	var zero T
	cond, err := normalizeQuery(filter)
	if err != nil {
		return zero, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		if doc, ok := m.docs[id]; ok && matches(doc, cond) {
			return decodeDocument[T](doc)
		}
	}
	return zero, apperrors.NewNotFound(m.label)
}

func (m *Memory[T]) Find(_ context.Context, filter Query) ([]T, error) {
	cond, err := normalizeQuery(filter)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	records := []T{}
	for _, id := range m.order {
		doc, ok := m.docs[id]
		if !ok || !matches(doc, cond) {
			continue
		}
		record, err := decodeDocument[T](doc)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (m *Memory[T]) Update(_ context.Context, filter Query, patch Patch) (T, error) {
	var zero T
	cond, err := normalizeQuery(filter)
	if err != nil {
		return zero, err
	}
	merge, err := encodeDocument(map[string]any(sanitizePatch(patch, time.Now())))
	if err != nil {
		return zero, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.order {
		doc, ok := m.docs[id]
		if !ok || !matches(doc, cond) {
			continue
		}
		for k, v := range merge {
			doc[k] = v
		}
		return decodeDocument[T](doc)
	}
	return zero, apperrors.NewNotFound(m.label)
}

func (m *Memory[T]) UpdateMany(_ context.Context, filter Query, patch Patch) (int64, error) {
	cond, err := normalizeQuery(filter)
	if err != nil {
		return 0, err
	}
	merge, err := encodeDocument(map[string]any(sanitizePatch(patch, time.Now())))
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var affected int64
	for _, id := range m.order {
		doc, ok := m.docs[id]
		if !ok || !matches(doc, cond) {
			continue
		}
		for k, v := range merge {
			doc[k] = v
		}
		affected++
	}
	return affected, nil
}

func (m *Memory[T]) Delete(_ context.Context, filter Query) (int64, error) {
	cond, err := normalizeQuery(filter)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	remaining := m.order[:0]
	for _, id := range m.order {
		doc, ok := m.docs[id]
		if ok && matches(doc, cond) {
			delete(m.docs, id)
			deleted++
			continue
		}
		remaining = append(remaining, id)
	}
	m.order = remaining
	if deleted == 0 {
		return 0, apperrors.NewNotFound(m.label)
	}
	return deleted, nil
}

func matches(doc, cond map[string]any) bool {
	for k, want := range cond {
		if !reflect.DeepEqual(doc[k], want) {
			return false
		}
	}
	return true
}
