package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"serwer-tabel/internal/database"
	"serwer-tabel/internal/models"

	"github.com/jmoiron/sqlx"
)

type fileRow struct {
	ID        int64  `db:"id"`
	Name      string `db:"name"`
	Delimiter string `db:"delimiter"`
	CreatedAt int64  `db:"created_at"`
	IsPrivate bool   `db:"is_private"`
	OwnerID   int64  `db:"owner_id"`
	OwnerName string `db:"username"`
	Path      string `db:"path"`
}

func (r fileRow) model() models.File {
	return models.File{
		ID:         r.ID,
		Name:       r.Name,
		Delimiter:  r.Delimiter,
		CreatedAt:  time.Unix(r.CreatedAt, 0),
		Visibility: models.VisibilityFromPrivate(r.IsPrivate),
		OwnerID:    r.OwnerID,
		OwnerName:  r.OwnerName,
		Path:       r.Path,
	}
}

const selectFile = `
	SELECT f.id, f.name, f.delimiter, f.created_at, f.is_private, f.owner_id, u.username, f.path
	FROM files f JOIN users u ON u.id = f.owner_id
`

func (q *Queries) getFile(ctx context.Context, query string, args ...interface{}) (*models.File, error) {
	var row fileRow
	if err := sqlx.GetContext(ctx, q.db, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	f := row.model()
	return &f, nil
}

func (q *Queries) getFileByID(ctx context.Context, id int64) (*models.File, error) {
	return q.getFile(ctx, selectFile+` WHERE f.id = $1`, id)
}

func (q *Queries) CreateFile(ctx context.Context, arg database.CreateFileParams) (*models.File, error) {
	var id int64
	err := sqlx.GetContext(ctx, q.db, &id,
		`INSERT INTO files (name, delimiter, created_at, is_private, owner_id, path)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		arg.Name, arg.Delimiter, now(), arg.Visibility.IsPrivate(), arg.OwnerID, arg.Path)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, database.ErrPathTaken
		}
		return nil, err
	}
	return q.getFileByID(ctx, id)
}

func (q *Queries) ReplaceFile(ctx context.Context, id int64, delimiter string) (*models.File, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE files SET delimiter = $1, created_at = $2 WHERE id = $3`, delimiter, now(), id)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, nil
	}
	return q.getFileByID(ctx, id)
}

func (q *Queries) GetFileByPath(ctx context.Context, path string) (*models.File, error) {
	return q.getFile(ctx, selectFile+` WHERE f.path = $1`, path)
}

func (q *Queries) FindVisibleFile(ctx context.Context, userID int64, name string, visibility models.Visibility) (*models.File, error) {
	if visibility.IsPrivate() {
		return q.FindOwnedFile(ctx, userID, name, visibility)
	}
	return q.getFile(ctx, selectFile+` WHERE f.name = $1 AND f.is_private = 0 ORDER BY f.id ASC LIMIT 1`, name)
}

func (q *Queries) FindOwnedFile(ctx context.Context, userID int64, name string, visibility models.Visibility) (*models.File, error) {
	return q.getFile(ctx,
		selectFile+` WHERE f.owner_id = $1 AND f.name = $2 AND f.is_private = $3 ORDER BY f.id ASC LIMIT 1`,
		userID, name, visibility.IsPrivate())
}

func (q *Queries) ListVisibleFiles(ctx context.Context, userID int64) ([]models.File, error) {
	var rows []fileRow
	err := sqlx.SelectContext(ctx, q.db, &rows,
		selectFile+` WHERE f.owner_id = $1 OR f.is_private = 0 ORDER BY f.id ASC`, userID)
	if err != nil {
		return nil, err
	}
	files := make([]models.File, len(rows))
	for i, r := range rows {
		files[i] = r.model()
	}
	return files, nil
}

func (q *Queries) DeleteFile(ctx context.Context, id int64, ownerID int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM files WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
