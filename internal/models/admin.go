package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdminUser represents a user holding the privileged capability that gates
// protocol parameter changes.
type AdminUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role      string    `gorm:"size:20;not null" json:"role"` // SUPER_ADMIN, OPERATOR
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}

// AdminLog records admin actions for audit trail
type AdminLog struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AdminID      uint       `gorm:"not null;index" json:"admin_id"`
	Admin        *AdminUser `gorm:"foreignKey:AdminID" json:"admin,omitempty"`
	Action       string     `gorm:"size:100;not null" json:"action"`
	ResourceType string     `gorm:"size:50" json:"resource_type"`
	ResourceID   *uint      `json:"resource_id"`
	Details      JSONB      `gorm:"type:jsonb" json:"details"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (AdminLog) TableName() string {
	return "admin_logs"
}

// PlatformStats is a point-in-time aggregate of platform activity.
type PlatformStats struct {
	TotalUsers      int64           `json:"total_users"`
	ActiveUsers     int64           `json:"active_users"`
	TotalProjects   int64           `json:"total_projects"`
	OpenProjects    int64           `json:"open_projects"`
	SettledProjects int64           `json:"settled_projects"`
	TotalStaked     decimal.Decimal `json:"total_staked"`
	TotalEscrowed   decimal.Decimal `json:"total_escrowed"`
	TotalFees       decimal.Decimal `json:"total_fees"`
	AvgBudget       decimal.Decimal `json:"avg_budget"`
}
