package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	source  = "content-service"
	version = "1.0"
)

// Event is the envelope published for every content change.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Event types
const (
	ContentCreated    = "content.created"
	ContentUpdated    = "content.updated"
	ContentDeleted    = "content.deleted"
	ContentDuplicated = "content.duplicated"
	BackupCompleted   = "backup.completed"
	RestoreCompleted  = "restore.completed"
	ClearCompleted    = "clear.completed"
	ImportCompleted   = "import.completed"
)

// NewEvent builds an envelope with a fresh id and timestamp.
func NewEvent(eventType string, data any) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    source,
		Version:   version,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ContentChange describes a single-record change on a hierarchy table.
type ContentChange struct {
	Table  string `json:"table"`
	ID     uint   `json:"id"`
	Actor  uint   `json:"actor,omitempty"`
	Nombre string `json:"nombre,omitempty"`
}

// BulkChange describes a whole-store operation (backup, restore, clear, import).
type BulkChange struct {
	Table    string `json:"table,omitempty"`
	Records  int    `json:"records"`
	Inserted int    `json:"inserted,omitempty"`
	Updated  int    `json:"updated,omitempty"`
	Skipped  int    `json:"skipped,omitempty"`
	Failed   int    `json:"failed,omitempty"`
}
