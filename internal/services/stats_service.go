package services

import (
	"context"

	"freelancer-dao/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatsService computes point-in-time platform aggregates.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// GetPlatformStats calculates platform statistics
func (s *StatsService) GetPlatformStats(ctx context.Context) (*models.PlatformStats, error) {
	db := s.db.WithContext(ctx)

	var stats models.PlatformStats

	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).Where("active = ?", true).Count(&stats.ActiveUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).Count(&stats.TotalProjects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).
		Where("status = ?", models.ProjectStatusOpen).
		Count(&stats.OpenProjects).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Project{}).
		Where("status = ?", models.ProjectStatusCompleted).
		Count(&stats.SettledProjects).Error; err != nil {
		return nil, err
	}

	stats.TotalStaked = s.sumInt64(db, &models.SkillStake{}, "COALESCE(SUM(amount), 0)", nil)
	stats.TotalEscrowed = s.sumInt64(db, &models.LedgerEntry{}, "COALESCE(SUM(amount), 0)",
		map[string]interface{}{"type": models.LedgerEntryEscrowHold})
	stats.TotalFees = s.sumInt64(db, &models.LedgerEntry{}, "COALESCE(SUM(amount), 0)",
		map[string]interface{}{"type": models.LedgerEntryFee})

	var avgBudget float64
	row := db.Model(&models.Project{}).Select("COALESCE(AVG(budget), 0)").Row()
	if err := row.Scan(&avgBudget); err == nil {
		stats.AvgBudget = decimal.NewFromFloat(avgBudget).Round(2)
	} else {
		stats.AvgBudget = decimal.Zero
	}

	return &stats, nil
}

func (s *StatsService) sumInt64(db *gorm.DB, model interface{}, expr string, where map[string]interface{}) decimal.Decimal {
	var total int64
	query := db.Model(model).Select(expr)
	if where != nil {
		query = query.Where(where)
	}
	if err := query.Row().Scan(&total); err != nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(total)
}
