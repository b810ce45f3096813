package postgres

import (
	"context"
	"errors"

	"serwer-tabel/internal/database"
	"serwer-tabel/internal/models"

	"github.com/jackc/pgx/v5"
)

const fileColumns = `
	f.id, f.name, f.delimiter, f.created_at, f.is_private, f.owner_id, u.username, f.path
`

func scanFile(row pgx.Row) (*models.File, error) {
	var f models.File
	var isPrivate bool
	err := row.Scan(&f.ID, &f.Name, &f.Delimiter, &f.CreatedAt, &isPrivate, &f.OwnerID, &f.OwnerName, &f.Path)
	if err != nil {
		return nil, err
	}
	f.Visibility = models.VisibilityFromPrivate(isPrivate)
	return &f, nil
}

func (q *Queries) getFile(ctx context.Context, query string, args ...interface{}) (*models.File, error) {
	f, err := scanFile(q.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return f, nil
}

func (q *Queries) CreateFile(ctx context.Context, arg database.CreateFileParams) (*models.File, error) {
	query := `
		WITH f AS (
			INSERT INTO files (name, delimiter, is_private, owner_id, path)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING *
		)
		SELECT ` + fileColumns + `
		FROM f JOIN users u ON u.id = f.owner_id
	`
	f, err := scanFile(q.db.QueryRow(ctx, query,
		arg.Name, arg.Delimiter, arg.Visibility.IsPrivate(), arg.OwnerID, arg.Path,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, database.ErrPathTaken
		}
		return nil, err
	}
	return f, nil
}

func (q *Queries) ReplaceFile(ctx context.Context, id int64, delimiter string) (*models.File, error) {
	query := `
		WITH f AS (
			UPDATE files SET delimiter = $2, created_at = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + fileColumns + `
		FROM f JOIN users u ON u.id = f.owner_id
	`
	return q.getFile(ctx, query, id, delimiter)
}

func (q *Queries) GetFileByPath(ctx context.Context, path string) (*models.File, error) {
	query := `
		SELECT ` + fileColumns + `
		FROM files f JOIN users u ON u.id = f.owner_id
		WHERE f.path = $1
	`
	return q.getFile(ctx, query, path)
}

func (q *Queries) FindVisibleFile(ctx context.Context, userID int64, name string, visibility models.Visibility) (*models.File, error) {
	if visibility.IsPrivate() {
		return q.FindOwnedFile(ctx, userID, name, visibility)
	}
	query := `
		SELECT ` + fileColumns + `
		FROM files f JOIN users u ON u.id = f.owner_id
		WHERE f.name = $1 AND f.is_private = FALSE
		ORDER BY f.id ASC
		LIMIT 1
	`
	return q.getFile(ctx, query, name)
}

func (q *Queries) FindOwnedFile(ctx context.Context, userID int64, name string, visibility models.Visibility) (*models.File, error) {
	query := `
		SELECT ` + fileColumns + `
		FROM files f JOIN users u ON u.id = f.owner_id
		WHERE f.owner_id = $1 AND f.name = $2 AND f.is_private = $3
		ORDER BY f.id ASC
		LIMIT 1
	`
	return q.getFile(ctx, query, userID, name, visibility.IsPrivate())
}

func (q *Queries) ListVisibleFiles(ctx context.Context, userID int64) ([]models.File, error) {
	query := `
		SELECT ` + fileColumns + `
		FROM files f JOIN users u ON u.id = f.owner_id
		WHERE f.owner_id = $1 OR f.is_private = FALSE
		ORDER BY f.id ASC
	`
	rows, err := q.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if files == nil {
		return []models.File{}, nil
	}
	return files, nil
}

func (q *Queries) DeleteFile(ctx context.Context, id int64, ownerID int64) (bool, error) {
	query := `DELETE FROM files WHERE id = $1 AND owner_id = $2`
	tag, err := q.db.Exec(ctx, query, id, ownerID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
