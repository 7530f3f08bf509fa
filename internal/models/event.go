package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JSONB for PostgreSQL JSON support
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, &j)
}

type EventType string

const (
	EventStakeRecorded    EventType = "stake.recorded"
	EventProjectCreated   EventType = "project.created"
	EventVoteCast         EventType = "vote.cast"
	EventProjectAssigned  EventType = "project.assigned"
	EventProjectCompleted EventType = "project.completed"
	EventParamsUpdated    EventType = "params.updated"
)

// Event is one record of the append-only notification log. Rows are never
// mutated or deleted; they form the durable history of state transitions.
type Event struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Type      EventType `gorm:"size:50;not null;index" json:"type"`
	ProjectID *uint     `gorm:"index" json:"project_id,omitempty"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	Payload   JSONB     `gorm:"type:jsonb" json:"payload"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for Event model
func (Event) TableName() string {
	return "events"
}
