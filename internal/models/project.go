package models

import (
	"time"
)

type ProjectStatus string

const (
	ProjectStatusOpen        ProjectStatus = "OPEN"
	ProjectStatusInProgress  ProjectStatus = "IN_PROGRESS"
	ProjectStatusUnderReview ProjectStatus = "UNDER_REVIEW"
	ProjectStatusCompleted   ProjectStatus = "COMPLETED"
	ProjectStatusDisputed    ProjectStatus = "DISPUTED"
	ProjectStatusCancelled   ProjectStatus = "CANCELLED"
)

// Project is a unit of work posted by a client. The budget is escrowed in
// full at creation and released exactly once at settlement. UNDER_REVIEW,
// DISPUTED and CANCELLED are reserved statuses: no code path writes them yet.
type Project struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	ClientID    uint          `gorm:"not null;index" json:"client_id"`
	Client      *User         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Description string        `gorm:"type:text;not null" json:"description"`
	Category    string        `gorm:"size:100;not null;index" json:"category"`
	Budget      int64         `gorm:"not null" json:"budget"`
	Deadline    time.Time     `gorm:"not null" json:"deadline"`
	AssigneeID  *uint         `gorm:"index" json:"assignee_id,omitempty"`
	Assignee    *User         `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Status      ProjectStatus `gorm:"size:50;not null;default:OPEN;index" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// TableName specifies the table name for Project model
func (Project) TableName() string {
	return "projects"
}

// VotingDeadline returns the instant the voting window closes.
func (p *Project) VotingDeadline(votingPeriod time.Duration) time.Time {
	return p.CreatedAt.Add(votingPeriod)
}

// CreateProjectRequest is the payload for posting a project.
type CreateProjectRequest struct {
	Description string    `json:"description" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	Budget      int64     `json:"budget" binding:"required,gt=0"`
	Deadline    time.Time `json:"deadline" binding:"required"`
}

// SettlementResult reports the outcome of a completed project.
type SettlementResult struct {
	ProjectID       uint  `json:"project_id"`
	AssigneeID      uint  `json:"assignee_id"`
	Payout          int64 `json:"payout"`
	Fee             int64 `json:"fee"`
	ReputationDelta int64 `json:"reputation_delta"`
	OnTime          bool  `json:"on_time"`
}
