package services

import (
	"context"
	"time"

	"freelancer-dao/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventService appends structured notification records. Events are the
// durable, append-only history of state transitions; nothing ever updates
// or deletes a row.
type EventService struct {
	db *gorm.DB
}

func NewEventService(db *gorm.DB) *EventService {
	return &EventService{db: db}
}

// Emit writes an event as part of the given transaction so the notification
// commits together with the state change it describes.
func (s *EventService) Emit(tx *gorm.DB, eventType models.EventType, projectID, userID *uint, payload models.JSONB) error {
	event := models.Event{
		ID:        uuid.New(),
		Type:      eventType,
		ProjectID: projectID,
		UserID:    userID,
		Payload:   payload,
		CreatedAt: time.Now(),
	}
	return tx.Create(&event).Error
}

// List returns events newest first, optionally filtered by project.
func (s *EventService) List(ctx context.Context, projectID *uint, limit, offset int) ([]*models.Event, error) {
	query := s.db.WithContext(ctx).Model(&models.Event{})
	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var events []*models.Event
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
