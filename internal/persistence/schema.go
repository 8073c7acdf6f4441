package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var collectionTables = []string{"users", "roles", "books", "categories", "records"}

// BootstrapSchema creates the collection tables and supporting indexes. Each
// collection is a JSONB document table; uniqueness constraints live here so
// the store, not the service layer, enforces them.
func BootstrapSchema(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping schema bootstrap")
		return nil
	}

	for _, table := range collectionTables {
		stmt := fmt.Sprintf(`
            CREATE TABLE IF NOT EXISTS %s (
                id UUID PRIMARY KEY,
                doc JSONB NOT NULL,
                created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
                updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
            )`, table)
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create collection %s: %w", table, err)
		}
		logger.Debug("collection ready", zap.String("collection", table))
	}

	indexes := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_uniq ON users ((doc->>'email'))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_username_uniq ON users ((doc->>'username'))`,
		`CREATE UNIQUE INDEX IF NOT EXISTS roles_name_uniq ON roles ((doc->>'name'))`,
		`CREATE INDEX IF NOT EXISTS records_user_idx ON records ((doc->>'userId'))`,
		`CREATE INDEX IF NOT EXISTS records_book_idx ON records ((doc->>'bookId'))`,
	}
	for _, stmt := range indexes {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	if err := seedRoles(ctx, pool); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	logger.Info("schema bootstrap complete", zap.Int("collections", len(collectionTables)))
	return nil
}

// seedRoles inserts the built-in roles when absent. The generated document
// mirrors what the repository writes on create: id and timestamps included.
func seedRoles(ctx context.Context, pool *pgxpool.Pool) error {
	const stmt = `
        WITH seed(name, permissions) AS (VALUES
            ('admin', '["manage_users","manage_books","manage_records","borrow_books"]'::jsonb),
            ('librarian', '["manage_books","manage_records"]'::jsonb),
            ('member', '["borrow_books"]'::jsonb)
        ), missing AS (
            SELECT gen_random_uuid() AS id, name, permissions FROM seed
            WHERE NOT EXISTS (SELECT 1 FROM roles WHERE doc->>'name' = seed.name)
        )
        INSERT INTO roles (id, doc)
        SELECT id, jsonb_build_object(
            'id', id::text,
            'name', name,
            'permissions', permissions,
            'createdAt', to_char(NOW() AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS.US"Z"'),
            'updatedAt', to_char(NOW() AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS.US"Z"')
        )
        FROM missing`
	_, err := pool.Exec(ctx, stmt)
	return err
}
