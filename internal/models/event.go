package models

import (
	"encoding/json"
	"time"
)

const (
	EventFileUploaded = "file_uploaded"
	EventFileDeleted  = "file_deleted"
)

type Event struct {
	ID        int64           `json:"id"`
	EventType string          `json:"event_type"`
	EventTime time.Time       `json:"event_time"`
	Payload   json.RawMessage `json:"payload" swaggertype:"object"`
}
