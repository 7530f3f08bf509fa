package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"freelancer-dao/internal/ledger"
	"freelancer-dao/internal/models"
	"freelancer-dao/internal/repository"

	"gorm.io/gorm"
)

// ProjectService implements the project registry. A project's budget is
// debited from the client into escrow custody when the record is created;
// both commit in one transaction, so budget and record exist together or
// not at all.
type ProjectService struct {
	db           *gorm.DB
	repo         *repository.Repository
	ledger       *ledger.Ledger
	eventService *EventService
}

func NewProjectService(
	db *gorm.DB,
	repo *repository.Repository,
	l *ledger.Ledger,
	eventService *EventService,
) *ProjectService {
	return &ProjectService{
		db:           db,
		repo:         repo,
		ledger:       l,
		eventService: eventService,
	}
}

// CreateProject posts a project and escrows its budget. The category must
// have a non-empty skill pool.
func (s *ProjectService) CreateProject(ctx context.Context, clientID uint, req *models.CreateProjectRequest) (*models.Project, error) {
	if req.Budget <= 0 || req.Category == "" || req.Description == "" {
		return nil, ErrInvalidParameters
	}
	if !req.Deadline.After(time.Now()) {
		return nil, ErrInvalidParameters
	}

	poolSize, err := s.repo.CountPoolMembers(ctx, req.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to check skill pool: %w", err)
	}
	if poolSize == 0 {
		return nil, ErrNoFreelancersAvailable
	}

	project := &models.Project{
		ClientID:    clientID,
		Description: req.Description,
		Category:    req.Category,
		Budget:      req.Budget,
		Deadline:    req.Deadline,
		Status:      models.ProjectStatusOpen,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		if err := txRepo.CreateProject(ctx, project); err != nil {
			return err
		}

		if err := s.ledger.Hold(tx, clientID, req.Budget, models.LedgerEntryEscrowHold, &project.ID); err != nil {
			return err
		}

		return s.eventService.Emit(tx, models.EventProjectCreated, &project.ID, &clientID, models.JSONB{
			"category": project.Category,
			"budget":   project.Budget,
			"deadline": project.Deadline,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Project %d created by client %d: category=%q budget=%d", project.ID, clientID, project.Category, project.Budget)
	return project, nil
}

// GetProject retrieves a project by ID.
func (s *ProjectService) GetProject(ctx context.Context, projectID uint) (*models.Project, error) {
	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err == gorm.ErrRecordNotFound {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects retrieves projects with optional filters.
func (s *ProjectService) ListProjects(
	ctx context.Context,
	status models.ProjectStatus,
	category string,
	limit, offset int,
) ([]*models.Project, int64, error) {
	return s.repo.ListProjects(ctx, status, category, limit, offset)
}
