package models

import (
	"time"

	"github.com/google/uuid"
)

// Vote is one ballot for a project. The (project, voter) pair is unique: a
// later vote from the same voter overwrites the earlier one. Weight is
// computed at cast time and never recomputed afterwards.
type Vote struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uint      `gorm:"not null;index;uniqueIndex:idx_vote_project_voter" json:"project_id"`
	VoterID     uint      `gorm:"not null;index;uniqueIndex:idx_vote_project_voter" json:"voter_id"`
	CandidateID uint      `gorm:"not null;index" json:"candidate_id"`
	Weight      int64     `gorm:"not null" json:"weight"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Vote model
func (Vote) TableName() string {
	return "votes"
}

// ProjectCandidate records that a user has received at least one vote for a
// project. Rows are append-only; Position preserves first-appearance order,
// which is the tie-break order during tally.
type ProjectCandidate struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uint      `gorm:"not null;index;uniqueIndex:idx_candidate_project_user" json:"project_id"`
	CandidateID uint      `gorm:"not null;uniqueIndex:idx_candidate_project_user" json:"candidate_id"`
	Position    int       `gorm:"not null" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for ProjectCandidate model
func (ProjectCandidate) TableName() string {
	return "project_candidates"
}

// CastVoteRequest is the payload for voting on a project.
type CastVoteRequest struct {
	CandidateID uint `json:"candidate_id" binding:"required"`
}

// CandidateTally is one line of a project's tally.
type CandidateTally struct {
	CandidateID uint  `json:"candidate_id"`
	Position    int   `json:"position"`
	TotalWeight int64 `json:"total_weight"`
}
