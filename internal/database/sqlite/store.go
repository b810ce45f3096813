// Package sqlite implements the metadata index on an embedded SQLite file,
// for single-node deployments without a PostgreSQL server.
package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"serwer-tabel/internal/database"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

type Queries struct {
	db sqlx.ExtContext
}

func New(db sqlx.ExtContext) *Queries {
	return &Queries{db: db}
}

type Store struct {
	db *sqlx.DB
	*Queries
}

var _ database.Store = (*Store)(nil)

// Open opens (creating if needed) the database file at path and applies the
// migrations. SQLite allows one writer, so the pool holds one connection.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite driver: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to open database %s: %w", path, err)
	}
	if err := database.Migrate(ctx, db.DB, database.DialectSQLite); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, Queries: New(db)}, nil
}

func (s *Store) ExecTx(ctx context.Context, fn func(database.Querier) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(New(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}

	return tx.Commit()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) DB() *sqlx.DB {
	return s.db
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func now() int64 {
	return time.Now().Unix()
}
