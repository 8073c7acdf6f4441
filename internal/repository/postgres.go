package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "github.com/spec-kit/library-service/pkg/util"
)

// Collection is the Postgres-backed Store implementation. Documents live in
// a JSONB column, one table per collection; filters use JSONB containment.
type Collection[T any] struct {
	pool  *pgxpool.Pool
	table string
	label string
}

// NewCollection binds a Store to a collection table. The label names the
// entity in not-found errors ("Book not found").
func NewCollection[T any](pool *pgxpool.Pool, table, label string) *Collection[T] {
	return &Collection[T]{pool: pool, table: table, label: label}
}

func (c *Collection[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T
	doc, err := encodeDocument(record)
	if err != nil {
		return zero, err
	}
	now := time.Now()
	stampCreate(doc, uuid.NewString(), now)

	raw, err := json.Marshal(doc)
	if err != nil {
		return zero, err
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc, created_at, updated_at) VALUES ($1, $2, $3, $3)`, c.table)
	if _, err := c.pool.Exec(ctx, query, doc["id"], raw, now.UTC()); err != nil {
		return zero, apperrors.MapError(err)
	}
	return decodeDocument[T](doc)
}

func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, error) {
	var zero T
	if _, err := uuid.Parse(id); err != nil {
		return zero, apperrors.NewNotFound(c.label)
	}

	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.table)
	var raw []byte
	if err := c.pool.QueryRow(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperrors.NewNotFound(c.label)
		}
		return zero, err
	}
	return c.decodeRaw(raw)
}

func (c *Collection[T]) FindOne(ctx context.Context, filter Query) (T, error) {
	var zero T
	cond, err := marshalFilter(filter)
	if err != nil {
		return zero, err
	}

	query := fmt.Sprintf(`SELECT doc FROM %s WHERE doc @> $1 LIMIT 1`, c.table)
	var raw []byte
	if err := c.pool.QueryRow(ctx, query, cond).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperrors.NewNotFound(c.label)
		}
		return zero, err
	}
	return c.decodeRaw(raw)
}

func (c *Collection[T]) Find(ctx context.Context, filter Query) ([]T, error) {
	cond, err := marshalFilter(filter)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT doc FROM %s WHERE doc @> $1 ORDER BY created_at`, c.table)
	rows, err := c.pool.Query(ctx, query, cond)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []T{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		record, err := c.decodeRaw(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Update merges the patch into exactly one matching document. The merge is a
// single server-side statement, so readers never observe a partial write.
func (c *Collection[T]) Update(ctx context.Context, filter Query, patch Patch) (T, error) {
	var zero T
	cond, err := marshalFilter(filter)
	if err != nil {
		return zero, err
	}
	merge, err := json.Marshal(sanitizePatch(patch, time.Now()))
	if err != nil {
		return zero, err
	}

	query := fmt.Sprintf(`
        UPDATE %s SET doc = doc || $2, updated_at = NOW()
        WHERE id = (SELECT id FROM %s WHERE doc @> $1 LIMIT 1)
        RETURNING doc`, c.table, c.table)
	var raw []byte
	if err := c.pool.QueryRow(ctx, query, cond, merge).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return zero, apperrors.NewNotFound(c.label)
		}
		return zero, apperrors.MapError(err)
	}
	return c.decodeRaw(raw)
}

func (c *Collection[T]) UpdateMany(ctx context.Context, filter Query, patch Patch) (int64, error) {
	cond, err := marshalFilter(filter)
	if err != nil {
		return 0, err
	}
	merge, err := json.Marshal(sanitizePatch(patch, time.Now()))
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`UPDATE %s SET doc = doc || $2, updated_at = NOW() WHERE doc @> $1`, c.table)
	cmd, err := c.pool.Exec(ctx, query, cond, merge)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return cmd.RowsAffected(), nil
}

// Delete removes every matching document; zero matches is a not-found
// failure, more than one is permitted.
func (c *Collection[T]) Delete(ctx context.Context, filter Query) (int64, error) {
	cond, err := marshalFilter(filter)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE doc @> $1`, c.table)
	cmd, err := c.pool.Exec(ctx, query, cond)
	if err != nil {
		return 0, err
	}
	if cmd.RowsAffected() == 0 {
		return 0, apperrors.NewNotFound(c.label)
	}
	return cmd.RowsAffected(), nil
}

func (c *Collection[T]) decodeRaw(raw []byte) (T, error) {
	var zero T
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return zero, err
	}
	return decodeDocument[T](doc)
}

func marshalFilter(filter Query) ([]byte, error) {
	normalized, err := normalizeQuery(filter)
	if err != nil {
		return nil, err
	}
	return json.Marshal(normalized)
}
