package models

import (
	"time"
)

// InitialReputation is assigned when a user stakes for the first time.
const InitialReputation int64 = 1000

// User represents a principal in the system. Every caller (client or
// freelancer) is a user; the freelancer-specific fields stay at their zero
// values until the first stake activates the account.
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	WalletAddress  string     `gorm:"uniqueIndex;not null" json:"wallet_address"`
	Nickname       string     `gorm:"size:255" json:"nickname"`
	Reputation     int64      `gorm:"default:0" json:"reputation"`
	CompletedCount int64      `gorm:"default:0" json:"completed_count"`
	Active         bool       `gorm:"default:false;index" json:"active"`
	JoinedAt       *time.Time `json:"joined_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// UserProfile bundles a user with their per-category stakes for API responses.
type UserProfile struct {
	User   User         `json:"user"`
	Stakes []SkillStake `json:"stakes"`
}
