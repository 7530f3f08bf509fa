package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freelancer-dao/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInsufficientFunds is returned when a debit exceeds the available balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Ledger is the fungible-balance custody collaborator. Every movement either
// succeeds in full or leaves no trace: debits are conditional single-row
// updates, and the Hold/Release variants run inside the caller's transaction
// so that custody and protocol state commit together.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Deposit credits a user's available balance from outside the system.
func (l *Ledger) Deposit(ctx context.Context, userID uint, amount int64) (*models.Balance, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("deposit amount must be positive")
	}

	var balance models.Balance
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := credit(tx, userID, amount); err != nil {
			return err
		}
		if err := record(tx, userID, nil, models.LedgerEntryDeposit, amount); err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).First(&balance).Error
	})
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// Withdraw debits a user's available balance out of the system.
func (l *Ledger) Withdraw(ctx context.Context, userID uint, amount int64) (*models.Balance, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("withdraw amount must be positive")
	}

	var balance models.Balance
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := debit(tx, userID, amount); err != nil {
			return err
		}
		if err := record(tx, userID, nil, models.LedgerEntryWithdraw, amount); err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).First(&balance).Error
	})
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// Hold moves value from a user's available balance into custody as part of
// the caller's transaction. Fails atomically with ErrInsufficientFunds.
func (l *Ledger) Hold(tx *gorm.DB, userID uint, amount int64, entryType models.LedgerEntryType, projectID *uint) error {
	if err := debit(tx, userID, amount); err != nil {
		return err
	}
	return record(tx, userID, projectID, entryType, amount)
}

// Release moves value from custody back to a user's available balance as
// part of the caller's transaction.
func (l *Ledger) Release(tx *gorm.DB, userID uint, amount int64, entryType models.LedgerEntryType, projectID *uint) error {
	if err := credit(tx, userID, amount); err != nil {
		return err
	}
	return record(tx, userID, projectID, entryType, amount)
}

// GetBalance returns a user's available balance, zero if never funded.
func (l *Ledger) GetBalance(ctx context.Context, userID uint) (*models.Balance, error) {
	var balance models.Balance
	err := l.db.WithContext(ctx).Where("user_id = ?", userID).First(&balance).Error
	if err == gorm.ErrRecordNotFound {
		return &models.Balance{UserID: userID, Available: 0}, nil
	}
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// GetEntries returns a user's ledger history, newest first.
func (l *Ledger) GetEntries(ctx context.Context, userID uint, limit, offset int) ([]*models.LedgerEntry, error) {
	var entries []*models.LedgerEntry
	err := l.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// debit is a conditional single-row update: it only succeeds when the
// available balance covers the amount, which makes the check and the
// deduction one atomic statement.
func debit(tx *gorm.DB, userID uint, amount int64) error {
	result := tx.Model(&models.Balance{}).
		Where("user_id = ? AND available >= ?", userID, amount).
		Updates(map[string]interface{}{
			"available":  gorm.Expr("available - ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientFunds
	}
	return nil
}

func credit(tx *gorm.DB, userID uint, amount int64) error {
	balance := models.Balance{
		UserID:    userID,
		Available: amount,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"available":  gorm.Expr("balances.available + ?", amount),
			"updated_at": time.Now(),
		}),
	}).Create(&balance).Error
}

func record(tx *gorm.DB, userID uint, projectID *uint, entryType models.LedgerEntryType, amount int64) error {
	entry := models.LedgerEntry{
		ID:        uuid.New(),
		UserID:    userID,
		ProjectID: projectID,
		Type:      entryType,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	return tx.Create(&entry).Error
}
