package repository

import (
	"context"
	"time"

	"freelancer-dao/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction so that callers
// can compose repository writes with other statements atomically.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// DB exposes the underlying handle for transaction scoping.
func (r *Repository) DB() *gorm.DB {
	return r.db
}

// GetUserByID retrieves a user by ID
func (r *Repository) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByWallet retrieves a user by wallet address
func (r *Repository) GetUserByWallet(ctx context.Context, wallet string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("wallet_address = ?", wallet).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ActivateUser marks a user as an active freelancer on their first stake.
// Idempotent: an already-active user is left untouched.
func (r *Repository) ActivateUser(ctx context.Context, userID uint, now time.Time) error {
	return r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND active = ?", userID, false).
		Updates(map[string]interface{}{
			"active":     true,
			"reputation": models.InitialReputation,
			"joined_at":  now,
		}).Error
}

// UpsertStake adds amount to a user's stake in a category, creating the row
// at the given amount when absent. Amounts only accumulate.
func (r *Repository) UpsertStake(ctx context.Context, userID uint, category string, amount int64) error {
	stake := models.SkillStake{
		UserID:   userID,
		Category: category,
		Amount:   amount,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "category"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"amount":     gorm.Expr("skill_stakes.amount + ?", amount),
			"updated_at": time.Now(),
		}),
	}).Create(&stake).Error
}

// GetStake returns a user's staked amount in a category, zero if none.
func (r *Repository) GetStake(ctx context.Context, userID uint, category string) (int64, error) {
	var stake models.SkillStake
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND category = ?", userID, category).
		First(&stake).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return stake.Amount, nil
}

// GetUserStakes returns all of a user's stakes across categories.
func (r *Repository) GetUserStakes(ctx context.Context, userID uint) ([]models.SkillStake, error) {
	var stakes []models.SkillStake
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category ASC").
		Find(&stakes).Error
	if err != nil {
		return nil, err
	}
	return stakes, nil
}

// CountPoolMembers counts the freelancers who have ever staked in a category.
func (r *Repository) CountPoolMembers(ctx context.Context, category string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SkillStake{}).
		Where("category = ?", category).
		Count(&count).Error
	return count, err
}

// GetPoolMembers lists a category's skill pool with stake and reputation.
func (r *Repository) GetPoolMembers(ctx context.Context, category string) ([]models.PoolMember, error) {
	var members []models.PoolMember
	err := r.db.WithContext(ctx).Model(&models.SkillStake{}).
		Select("skill_stakes.user_id, users.wallet_address, skill_stakes.amount, users.reputation").
		Joins("JOIN users ON users.id = skill_stakes.user_id").
		Where("skill_stakes.category = ?", category).
		Order("skill_stakes.created_at ASC").
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
