package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaFS embed.FS

// RunMigrations applies the embedded schema. Every statement is written to be
// idempotent, so running at each startup is safe.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	entries, err := fs.Glob(schemaFS, "*.sql")
	if err != nil {
		return fmt.Errorf("failed to list embedded schema files: %w", err)
	}
	sort.Strings(entries)

	for _, name := range entries {
		sql, err := schemaFS.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read schema file %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("failed to apply schema file %s: %w", name, err)
		}
	}

	return nil
}
