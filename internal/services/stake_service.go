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

// StakeService implements the stake ledger: per-user, per-category amounts
// that only accumulate, plus the derived skill pool membership.
type StakeService struct {
	db           *gorm.DB
	repo         *repository.Repository
	ledger       *ledger.Ledger
	params       *ParamsService
	eventService *EventService
	locks        *KeyedMutex
}

func NewStakeService(
	db *gorm.DB,
	repo *repository.Repository,
	l *ledger.Ledger,
	params *ParamsService,
	eventService *EventService,
	locks *KeyedMutex,
) *StakeService {
	return &StakeService{
		db:           db,
		repo:         repo,
		ledger:       l,
		params:       params,
		eventService: eventService,
		locks:        locks,
	}
}

// Stake commits amount from the caller's available balance into the given
// skill category. The first stake activates the freelancer record
// (reputation 1000, joinedAt now). Re-staking accumulates without bound.
func (s *StakeService) Stake(ctx context.Context, userID uint, category string, amount int64) (*models.SkillStake, error) {
	unlock := s.locks.Lock(UserKey(userID))
	defer unlock()

	params, err := s.params.Current(ctx)
	if err != nil {
		return nil, err
	}

	if category == "" || amount < params.MinimumStake {
		return nil, ErrInvalidParameters
	}

	if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		// Debit the caller into custody first: a failed debit aborts the
		// whole stake with no record created.
		if err := s.ledger.Hold(tx, userID, amount, models.LedgerEntryStake, nil); err != nil {
			return err
		}

		if err := txRepo.ActivateUser(ctx, userID, now); err != nil {
			return err
		}

		if err := txRepo.UpsertStake(ctx, userID, category, amount); err != nil {
			return err
		}

		newTotal, err := txRepo.GetStake(ctx, userID, category)
		if err != nil {
			return err
		}

		return s.eventService.Emit(tx, models.EventStakeRecorded, nil, &userID, models.JSONB{
			"category":  category,
			"amount":    amount,
			"new_total": newTotal,
		})
	})
	if err != nil {
		return nil, err
	}

	var stake models.SkillStake
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		First(&stake).Error; err != nil {
		return nil, err
	}

	log.Printf("User %d staked %d in %q (total now %d)", userID, amount, category, stake.Amount)
	return &stake, nil
}

// GetProfile returns a user together with all their stakes.
func (s *StakeService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	stakes, err := s.repo.GetUserStakes(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.UserProfile{User: *user, Stakes: stakes}, nil
}

// GetPool lists a category's skill pool.
func (s *StakeService) GetPool(ctx context.Context, category string) ([]models.PoolMember, error) {
	return s.repo.GetPoolMembers(ctx, category)
}
