package postgres

import (
	"database/sql"
	"testing"

	"github.com/jackc/pgx/v5/stdlib"
)

func stdlibDB(t *testing.T) *sql.DB {
	t.Helper()
	db := stdlib.OpenDBFromPool(testStore.GetPool())
	t.Cleanup(func() { db.Close() })
	return db
}
