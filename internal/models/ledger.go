package models

import (
	"time"

	"github.com/google/uuid"
)

type LedgerEntryType string

const (
	LedgerEntryDeposit     LedgerEntryType = "DEPOSIT"
	LedgerEntryWithdraw    LedgerEntryType = "WITHDRAW"
	LedgerEntryStake       LedgerEntryType = "STAKE"
	LedgerEntryEscrowHold  LedgerEntryType = "ESCROW_HOLD"
	LedgerEntryPayout      LedgerEntryType = "PAYOUT"
	LedgerEntryFee         LedgerEntryType = "FEE"
)

// Balance is a user's available (unstaked, unescrowed) token balance.
type Balance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Available int64     `gorm:"not null;default:0" json:"available"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Balance model
func (Balance) TableName() string {
	return "balances"
}

// LedgerEntry is one movement of value: into the system, out of it, or
// between a user's available balance and custody. Append-only.
type LedgerEntry struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint            `gorm:"not null;index" json:"user_id"`
	ProjectID *uint           `gorm:"index" json:"project_id,omitempty"`
	Type      LedgerEntryType `gorm:"size:50;not null;index" json:"type"`
	Amount    int64           `gorm:"not null" json:"amount"`
	CreatedAt time.Time       `gorm:"index" json:"created_at"`
}

// TableName specifies the table name for LedgerEntry model
func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// TransferRequest is the payload for deposits and withdrawals.
type TransferRequest struct {
	Amount int64 `json:"amount" binding:"required,gt=0"`
}
