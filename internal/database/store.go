package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"serwer-tabel/internal/models"

	"github.com/google/uuid"
)

var (
	ErrUserExists = errors.New("username already exists")
	ErrPathTaken  = errors.New("a file is already stored under this path")
)

// EventsPageSize is the maximum number of events GetEventsSince returns.
const EventsPageSize = 100

type CreateFileParams struct {
	Name       string
	Delimiter  string
	Visibility models.Visibility
	OwnerID    int64
	Path       string
}

type CreateSessionParams struct {
	ID           uuid.UUID
	UserID       int64
	RefreshToken string
	UserAgent    string
	ClientIP     string
	ExpiresAt    time.Time
}

// Querier is the metadata index. Lookups return nil, nil when nothing
// matches; a private record of another user is never returned.
type Querier interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUserPassword(ctx context.Context, userID int64, newPasswordHash string) error

	CreateFile(ctx context.Context, arg CreateFileParams) (*models.File, error)
	ReplaceFile(ctx context.Context, id int64, delimiter string) (*models.File, error)
	GetFileByPath(ctx context.Context, path string) (*models.File, error)
	FindVisibleFile(ctx context.Context, userID int64, name string, visibility models.Visibility) (*models.File, error)
	FindOwnedFile(ctx context.Context, userID int64, name string, visibility models.Visibility) (*models.File, error)
	ListVisibleFiles(ctx context.Context, userID int64) ([]models.File, error)
	DeleteFile(ctx context.Context, id int64, ownerID int64) (bool, error)

	CreateSession(ctx context.Context, arg CreateSessionParams) error
	GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error)
	DeleteSessionByRefreshToken(ctx context.Context, refreshToken string) error
	ListSessionsForUser(ctx context.Context, userID int64) ([]models.Session, error)
	DeleteSessionByID(ctx context.Context, sessionID uuid.UUID, userID int64) error
	DeleteAllSessionsForUser(ctx context.Context, userID int64) error

	LogEvent(ctx context.Context, userID int64, eventType string, payload any) (*models.Event, error)
	GetEventsSince(ctx context.Context, userID int64, sinceID int64) ([]models.Event, error)
}

type Store interface {
	Querier
	// ExecTx runs fn in one transaction, committing when fn returns nil.
	ExecTx(ctx context.Context, fn func(Querier) error) error
	Ping(ctx context.Context) error
	Close() error
}

// EncodeEvent builds the journal payload: the event type next to the
// caller's payload, the same document that is pushed to websocket clients.
func EncodeEvent(eventType string, payload any) ([]byte, error) {
	eventMsg := map[string]any{
		"event_type": eventType,
		"payload":    payload,
	}
	eventBytes, err := json.Marshal(eventMsg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return eventBytes, nil
}
