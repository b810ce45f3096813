package postgres

import (
	"context"
	"testing"

	"serwer-tabel/internal/database"
	"serwer-tabel/internal/database/storetest"

	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	storetest.Run(t, testStore)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := stdlibDB(t)
	require.NoError(t, database.Migrate(ctx, db, database.DialectPostgres))
}

func TestCreateFile_PublicPathIsUniqueAcrossOwners(t *testing.T) {
	ctx := context.Background()
	a, err := testStore.CreateUser(ctx, "pg_public_a", "x")
	require.NoError(t, err)
	b, err := testStore.CreateUser(ctx, "pg_public_b", "x")
	require.NoError(t, err)

	params := database.CreateFileParams{
		Name: "p.csv", Delimiter: ";", Visibility: "public", OwnerID: a.ID, Path: "public/aa/bb/p.csv",
	}
	_, err = testStore.CreateFile(ctx, params)
	require.NoError(t, err)

	params.OwnerID = b.ID
	_, err = testStore.CreateFile(ctx, params)
	require.ErrorIs(t, err, database.ErrPathTaken)

	var count int
	err = testStore.GetPool().QueryRow(ctx, "SELECT COUNT(*) FROM files WHERE path = $1", params.Path).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
