package models

import (
	"time"
)

// SkillStake holds the accumulated stake of a user in one skill category.
// Amounts only ever increase; there is no unstake path, so membership in a
// category's pool (one row here) is append-only.
type SkillStake struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_stake_user_category" json:"user_id"`
	Category  string    `gorm:"size:100;not null;index;uniqueIndex:idx_stake_user_category" json:"category"`
	Amount    int64     `gorm:"not null;default:0" json:"amount"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for SkillStake model
func (SkillStake) TableName() string {
	return "skill_stakes"
}

// StakeRequest is the payload for placing a stake.
type StakeRequest struct {
	Category string `json:"category" binding:"required"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
}

// PoolMember is one entry of a category's skill pool listing.
type PoolMember struct {
	UserID        uint   `json:"user_id"`
	WalletAddress string `json:"wallet_address"`
	Amount        int64  `json:"amount"`
	Reputation    int64  `json:"reputation"`
}
