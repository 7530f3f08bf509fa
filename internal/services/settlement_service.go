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

// Reputation deltas applied at settlement. The deadline is advisory: missing
// it never blocks completion, it only reduces the bonus.
const (
	ReputationBonusOnTime int64 = 50
	ReputationBonusLate   int64 = 25
)

// SettlementService releases a project's escrow exactly once: fee to the
// platform sink, the remainder to the assignee, with the status flip,
// reputation adjustment and both fund movements in a single transaction.
type SettlementService struct {
	db           *gorm.DB
	repo         *repository.Repository
	ledger       *ledger.Ledger
	params       *ParamsService
	eventService *EventService
	locks        *KeyedMutex
	feeSinkID    uint
}

func NewSettlementService(
	db *gorm.DB,
	repo *repository.Repository,
	l *ledger.Ledger,
	params *ParamsService,
	eventService *EventService,
	locks *KeyedMutex,
	feeSinkID uint,
) *SettlementService {
	return &SettlementService{
		db:           db,
		repo:         repo,
		ledger:       l,
		params:       params,
		eventService: eventService,
		locks:        locks,
		feeSinkID:    feeSinkID,
	}
}

// CompleteProject settles an in-progress project. Only the client or the
// assignee may call it. The InProgress check doubles as the double-settlement
// guard: once Completed, a second call fails with ErrNotInProgress and moves
// no funds.
func (s *SettlementService) CompleteProject(ctx context.Context, callerID, projectID uint) (*models.SettlementResult, error) {
	unlock := s.locks.Lock(ProjectKey(projectID))
	defer unlock()

	project, err := s.repo.GetProjectByID(ctx, projectID)
	if err == gorm.ErrRecordNotFound {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}

	isClient := project.ClientID == callerID
	isAssignee := project.AssigneeID != nil && *project.AssigneeID == callerID
	if !isClient && !isAssignee {
		return nil, ErrUnauthorized
	}

	if project.Status != models.ProjectStatusInProgress {
		return nil, ErrNotInProgress
	}
	if project.AssigneeID == nil {
		return nil, fmt.Errorf("project %d in progress without assignee", projectID)
	}
	assigneeID := *project.AssigneeID

	// Fee rate is late-binding: the value current at completion applies,
	// not the one in force when the project was created.
	params, err := s.params.Current(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	fee := project.Budget * params.FeeBasisPoints / 10000
	payout := project.Budget - fee
	onTime := !now.After(project.Deadline)

	delta := ReputationBonusLate
	if onTime {
		delta = ReputationBonusOnTime
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		project.Status = models.ProjectStatusCompleted
		project.CompletedAt = &now
		if err := txRepo.UpdateProject(ctx, project); err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", assigneeID).
			Updates(map[string]interface{}{
				"reputation":      gorm.Expr("reputation + ?", delta),
				"completed_count": gorm.Expr("completed_count + 1"),
			}).Error; err != nil {
			return err
		}

		if err := s.ledger.Release(tx, assigneeID, payout, models.LedgerEntryPayout, &projectID); err != nil {
			return err
		}
		if err := s.ledger.Release(tx, s.feeSinkID, fee, models.LedgerEntryFee, &projectID); err != nil {
			return err
		}

		return s.eventService.Emit(tx, models.EventProjectCompleted, &projectID, &assigneeID, models.JSONB{
			"payout":           payout,
			"fee":              fee,
			"reputation_delta": delta,
			"on_time":          onTime,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to settle project %d: %w", projectID, err)
	}

	log.Printf("Project %d settled: assignee=%d payout=%d fee=%d onTime=%v", projectID, assigneeID, payout, fee, onTime)

	return &models.SettlementResult{
		ProjectID:       projectID,
		AssigneeID:      assigneeID,
		Payout:          payout,
		Fee:             fee,
		ReputationDelta: delta,
		OnTime:          onTime,
	}, nil
}
