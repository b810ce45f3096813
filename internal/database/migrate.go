package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

var migrationDirs = map[string]struct{ dir, goose string }{
	DialectPostgres: {"migrations/postgres", "pgx"},
	DialectSQLite:   {"migrations/sqlite", "sqlite3"},
}

// gooseUpContext is a seam for tests.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// Migrate applies the embedded migrations for dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	m, ok := migrationDirs[dialect]
	if !ok {
		return fmt.Errorf("unknown database dialect %q", dialect)
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(m.goose); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, m.dir); err != nil {
		return fmt.Errorf("failed to run %s migrations: %w", dialect, err)
	}
	return nil
}
