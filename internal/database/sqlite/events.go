package sqlite

import (
	"context"
	"encoding/json"
	"time"

	"serwer-tabel/internal/database"
	"serwer-tabel/internal/models"

	"github.com/jmoiron/sqlx"
)

type eventRow struct {
	ID        int64  `db:"id"`
	EventType string `db:"event_type"`
	EventTime int64  `db:"event_time"`
	Payload   string `db:"payload"`
}

func (r eventRow) model() models.Event {
	return models.Event{
		ID:        r.ID,
		EventType: r.EventType,
		EventTime: time.Unix(r.EventTime, 0),
		Payload:   json.RawMessage(r.Payload),
	}
}

func (q *Queries) LogEvent(ctx context.Context, userID int64, eventType string, payload any) (*models.Event, error) {
	eventBytes, err := database.EncodeEvent(eventType, payload)
	if err != nil {
		return nil, err
	}

	var row eventRow
	err = sqlx.GetContext(ctx, q.db, &row,
		`INSERT INTO event_journal (user_id, event_type, event_time, payload) VALUES ($1, $2, $3, $4)
		 RETURNING id, event_type, event_time, payload`,
		userID, eventType, now(), string(eventBytes))
	if err != nil {
		return nil, err
	}
	ev := row.model()
	return &ev, nil
}

func (q *Queries) GetEventsSince(ctx context.Context, userID int64, sinceID int64) ([]models.Event, error) {
	var rows []eventRow
	err := sqlx.SelectContext(ctx, q.db, &rows,
		`SELECT id, event_type, event_time, payload
		 FROM event_journal
		 WHERE user_id = $1 AND id > $2
		 ORDER BY id ASC
		 LIMIT $3`,
		userID, sinceID, database.EventsPageSize)
	if err != nil {
		return nil, err
	}
	events := make([]models.Event, len(rows))
	for i, r := range rows {
		events[i] = r.model()
	}
	return events, nil
}
