package repository

import (
	"context"
	"time"

	"freelancer-dao/internal/models"
)

// CreateProject creates a new project
func (r *Repository) CreateProject(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetProjectByID retrieves a project by ID
func (r *Repository) GetProjectByID(ctx context.Context, projectID uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("id = ?", projectID).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject persists a project
func (r *Repository) UpdateProject(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// ListProjects retrieves projects with optional status and category filters
func (r *Repository) ListProjects(
	ctx context.Context,
	status models.ProjectStatus,
	category string,
	limit int,
	offset int,
) ([]*models.Project, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Project{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projects []*models.Project
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&projects).Error
	if err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// ListOpenProjectsCreatedBefore returns Open projects created at or before
// the cutoff, oldest first. The sweeper uses it to find projects whose
// voting window has elapsed.
func (r *Repository) ListOpenProjectsCreatedBefore(
	ctx context.Context,
	cutoff time.Time,
	limit int,
) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Where("status = ? AND created_at <= ?", models.ProjectStatusOpen, cutoff).
		Order("created_at ASC").
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}
