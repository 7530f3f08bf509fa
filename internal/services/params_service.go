package services

import (
	"context"
	"fmt"
	"log"

	"freelancer-dao/internal/models"

	"gorm.io/gorm"
)

// ParamsService manages the versioned protocol constants. Setters append a
// new version; Current returns the newest one. Operations read params at
// entry, so changes apply to subsequent actions only (fee is late-binding:
// settlement reads the value current at completion time, not at creation).
type ParamsService struct {
	db           *gorm.DB
	adminService *AdminService
	eventService *EventService
}

func NewParamsService(db *gorm.DB, adminService *AdminService, eventService *EventService) *ParamsService {
	return &ParamsService{
		db:           db,
		adminService: adminService,
		eventService: eventService,
	}
}

// Seed inserts the initial params version if the table is empty.
func (s *ParamsService) Seed(feeBasisPoints, minimumStake, votingPeriodSeconds int64) error {
	var count int64
	if err := s.db.Model(&models.ProtocolParams{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	params := models.ProtocolParams{
		FeeBasisPoints:      feeBasisPoints,
		MinimumStake:        minimumStake,
		VotingPeriodSeconds: votingPeriodSeconds,
	}
	if err := s.db.Create(&params).Error; err != nil {
		return fmt.Errorf("failed to seed protocol params: %w", err)
	}

	log.Printf("Seeded protocol params v%d: fee=%dbps, minStake=%d, votingPeriod=%ds",
		params.ID, feeBasisPoints, minimumStake, votingPeriodSeconds)
	return nil
}

// Current returns the newest params version.
func (s *ParamsService) Current(ctx context.Context) (*models.ProtocolParams, error) {
	var params models.ProtocolParams
	err := s.db.WithContext(ctx).Order("id DESC").First(&params).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load protocol params: %w", err)
	}
	return &params, nil
}

// SetFeeBasisPoints updates the platform fee, capped at 10%.
func (s *ParamsService) SetFeeBasisPoints(ctx context.Context, callerID uint, value int64) (*models.ProtocolParams, error) {
	if value < 0 || value > models.MaxFeeBasisPoints {
		return nil, ErrFeeTooHigh
	}
	return s.apply(ctx, callerID, "SET_FEE_BASIS_POINTS", func(p *models.ProtocolParams) {
		p.FeeBasisPoints = value
	})
}

// SetMinimumStake updates the minimum stake. No upper bound.
func (s *ParamsService) SetMinimumStake(ctx context.Context, callerID uint, value int64) (*models.ProtocolParams, error) {
	if value <= 0 {
		return nil, ErrInvalidParameters
	}
	return s.apply(ctx, callerID, "SET_MINIMUM_STAKE", func(p *models.ProtocolParams) {
		p.MinimumStake = value
	})
}

// SetVotingPeriod updates the voting window length in seconds.
func (s *ParamsService) SetVotingPeriod(ctx context.Context, callerID uint, seconds int64) (*models.ProtocolParams, error) {
	if seconds <= 0 {
		return nil, ErrInvalidParameters
	}
	return s.apply(ctx, callerID, "SET_VOTING_PERIOD", func(p *models.ProtocolParams) {
		p.VotingPeriodSeconds = seconds
	})
}

// apply copies the current version, mutates one field, and inserts the copy
// as the next version inside a single transaction.
func (s *ParamsService) apply(ctx context.Context, callerID uint, action string, mutate func(*models.ProtocolParams)) (*models.ProtocolParams, error) {
	admin, err := s.adminService.GetAdminByUserID(ctx, callerID)
	if err != nil {
		return nil, ErrUnauthorized
	}

	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	next := models.ProtocolParams{
		FeeBasisPoints:      current.FeeBasisPoints,
		MinimumStake:        current.MinimumStake,
		VotingPeriodSeconds: current.VotingPeriodSeconds,
		CreatedBy:           &callerID,
	}
	mutate(&next)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&next).Error; err != nil {
			return err
		}
		if err := s.eventService.Emit(tx, models.EventParamsUpdated, nil, &callerID, models.JSONB{
			"version":               next.ID,
			"fee_basis_points":      next.FeeBasisPoints,
			"minimum_stake":         next.MinimumStake,
			"voting_period_seconds": next.VotingPeriodSeconds,
		}); err != nil {
			return err
		}
		return s.adminService.LogAdminAction(tx, admin.ID, action, "PROTOCOL_PARAMS", &next.ID, models.JSONB{
			"fee_basis_points":      next.FeeBasisPoints,
			"minimum_stake":         next.MinimumStake,
			"voting_period_seconds": next.VotingPeriodSeconds,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update protocol params: %w", err)
	}

	log.Printf("Protocol params updated to v%d by admin %d (%s)", next.ID, callerID, action)
	return &next, nil
}
