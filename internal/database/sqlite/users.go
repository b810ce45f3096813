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

type userRow struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    int64  `db:"created_at"`
}

func (r userRow) model() *models.User {
	return &models.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		CreatedAt:    time.Unix(r.CreatedAt, 0),
	}
}

func (q *Queries) getUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var row userRow
	if err := sqlx.GetContext(ctx, q.db, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return row.model(), nil
}

func (q *Queries) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	var row userRow
	err := sqlx.GetContext(ctx, q.db, &row,
		`INSERT INTO users (username, password_hash, created_at) VALUES ($1, $2, $3)
		 RETURNING id, username, password_hash, created_at`,
		username, passwordHash, now())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, database.ErrUserExists
		}
		return nil, err
	}
	return row.model(), nil
}

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return q.getUser(ctx, `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`, username)
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return q.getUser(ctx, `SELECT id, username, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (q *Queries) UpdateUserPassword(ctx context.Context, userID int64, newPasswordHash string) error {
	_, err := q.db.ExecContext(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, newPasswordHash, userID)
	return err
}
