package models

import (
	"time"
)

// MaxFeeBasisPoints caps the platform fee at 10%.
const MaxFeeBasisPoints int64 = 1000

// ProtocolParams is one immutable version of the protocol constants. Setters
// insert a new row instead of updating in place; every operation reads the
// newest row at entry, so in-flight projects pick up changes at action time.
type ProtocolParams struct {
	ID                  uint      `gorm:"primaryKey" json:"version"`
	FeeBasisPoints      int64     `gorm:"not null" json:"fee_basis_points"`
	MinimumStake        int64     `gorm:"not null" json:"minimum_stake"`
	VotingPeriodSeconds int64     `gorm:"not null" json:"voting_period_seconds"`
	CreatedBy           *uint     `json:"created_by,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// TableName specifies the table name for ProtocolParams model
func (ProtocolParams) TableName() string {
	return "protocol_params"
}

// VotingPeriod returns the voting window as a duration.
func (p *ProtocolParams) VotingPeriod() time.Duration {
	return time.Duration(p.VotingPeriodSeconds) * time.Second
}

// SetParamRequest carries a single numeric parameter update.
type SetParamRequest struct {
	Value int64 `json:"value" binding:"required,gt=0"`
}
