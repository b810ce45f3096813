package postgres

import (
	"context"

	"serwer-tabel/internal/database"
	"serwer-tabel/internal/models"
)

func (q *Queries) LogEvent(ctx context.Context, userID int64, eventType string, payload any) (*models.Event, error) {
	eventBytes, err := database.EncodeEvent(eventType, payload)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO event_journal (user_id, event_type, payload)
		VALUES ($1, $2, $3)
		RETURNING id, event_type, event_time, payload
	`
	var event models.Event
	err = q.db.QueryRow(ctx, query, userID, eventType, eventBytes).Scan(
		&event.ID, &event.EventType, &event.EventTime, &event.Payload,
	)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (q *Queries) GetEventsSince(ctx context.Context, userID int64, sinceID int64) ([]models.Event, error) {
	query := `
		SELECT id, event_type, event_time, payload
		FROM event_journal
		WHERE user_id = $1 AND id > $2
		ORDER BY id ASC
		LIMIT $3
	`
	rows, err := q.db.Query(ctx, query, userID, sinceID, database.EventsPageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		err := rows.Scan(
			&event.ID,
			&event.EventType,
			&event.EventTime,
			&event.Payload,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if events == nil {
		return []models.Event{}, nil
	}

	return events, nil
}
