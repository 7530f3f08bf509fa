package repository

import (
	"context"
	"time"

	"freelancer-dao/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertVote records a ballot. A voter's later vote for the same project
// overwrites their earlier one; the new weight replaces the old.
func (r *Repository) UpsertVote(ctx context.Context, vote *models.Vote) error {
	if vote.ID == uuid.Nil {
		vote.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "project_id"}, {Name: "voter_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"candidate_id": vote.CandidateID,
			"weight":       vote.Weight,
			"updated_at":   time.Now(),
		}),
	}).Create(vote).Error
}

// GetVote retrieves the live ballot of a voter for a project.
func (r *Repository) GetVote(ctx context.Context, projectID, voterID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND voter_id = ?", projectID, voterID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// ListVotes retrieves all live ballots for a project.
func (r *Repository) ListVotes(ctx context.Context, projectID uint) ([]*models.Vote, error) {
	var votes []*models.Vote
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC").
		Find(&votes).Error
	if err != nil {
		return nil, err
	}
	return votes, nil
}

// AddCandidate inserts a candidate into a project's candidate set if new.
// Position records first-appearance order and is never rewritten.
func (r *Repository) AddCandidate(ctx context.Context, projectID, candidateID uint) error {
	var existing models.ProjectCandidate
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND candidate_id = ?", projectID, candidateID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProjectCandidate{}).
		Where("project_id = ?", projectID).
		Count(&count).Error; err != nil {
		return err
	}

	candidate := models.ProjectCandidate{
		ID:          uuid.New(),
		ProjectID:   projectID,
		CandidateID: candidateID,
		Position:    int(count) + 1,
		CreatedAt:   time.Now(),
	}
	return r.db.WithContext(ctx).Create(&candidate).Error
}

// ListCandidates returns a project's candidate set in first-appearance order.
func (r *Repository) ListCandidates(ctx context.Context, projectID uint) ([]*models.ProjectCandidate, error) {
	var candidates []*models.ProjectCandidate
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// SumWeightsByCandidate aggregates recorded vote weights per candidate for a
// project. One live ballot per voter feeds the sum.
func (r *Repository) SumWeightsByCandidate(ctx context.Context, projectID uint) (map[uint]int64, error) {
	rows := []struct {
		CandidateID uint
		Total       int64
	}{}
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Select("candidate_id, COALESCE(SUM(weight), 0) AS total").
		Where("project_id = ?", projectID).
		Group("candidate_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[uint]int64, len(rows))
	for _, row := range rows {
		totals[row.CandidateID] = row.Total
	}
	return totals, nil
}
