package sqlite

import (
	"context"
	"time"

	"serwer-tabel/internal/database"
	"serwer-tabel/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type sessionRow struct {
	ID        uuid.UUID `db:"id"`
	UserAgent string    `db:"user_agent"`
	ClientIP  string    `db:"client_ip"`
	ExpiresAt int64     `db:"expires_at"`
	CreatedAt int64     `db:"created_at"`
}

func (q *Queries) CreateSession(ctx context.Context, arg database.CreateSessionParams) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, refresh_token, user_agent, client_ip, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		arg.ID.String(), arg.UserID, arg.RefreshToken, arg.UserAgent, arg.ClientIP, arg.ExpiresAt.Unix(), now())
	return err
}

func (q *Queries) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	return q.getUser(ctx,
		`SELECT u.id, u.username, u.password_hash, u.created_at
		 FROM users u JOIN sessions s ON u.id = s.user_id
		 WHERE s.refresh_token = $1 AND s.expires_at > $2`,
		refreshToken, now())
}

func (q *Queries) ListSessionsForUser(ctx context.Context, userID int64) ([]models.Session, error) {
	var rows []sessionRow
	err := sqlx.SelectContext(ctx, q.db, &rows,
		`SELECT id, user_agent, client_ip, expires_at, created_at
		 FROM sessions
		 WHERE user_id = $1 AND expires_at > $2
		 ORDER BY created_at DESC, rowid DESC`,
		userID, now())
	if err != nil {
		return nil, err
	}
	sessions := make([]models.Session, len(rows))
	for i, r := range rows {
		sessions[i] = models.Session{
			ID:        r.ID,
			UserAgent: r.UserAgent,
			ClientIP:  r.ClientIP,
			ExpiresAt: time.Unix(r.ExpiresAt, 0),
			CreatedAt: time.Unix(r.CreatedAt, 0),
		}
	}
	return sessions, nil
}

func (q *Queries) DeleteSessionByID(ctx context.Context, sessionID uuid.UUID, userID int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1 AND user_id = $2`, sessionID.String(), userID)
	return err
}

func (q *Queries) DeleteAllSessionsForUser(ctx context.Context, userID int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, userID)
	return err
}

func (q *Queries) DeleteSessionByRefreshToken(ctx context.Context, refreshToken string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM sessions WHERE refresh_token = $1`, refreshToken)
	return err
}
