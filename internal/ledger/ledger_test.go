package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"freelancer-dao/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&models.Balance{}, &models.LedgerEntry{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

func TestDepositAndWithdraw(t *testing.T) {
	db := setupTestDB(t)
	l := NewLedger(db)
	ctx := context.Background()

	balance, err := l.Deposit(ctx, 1, 1000)
	if err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if balance.Available != 1000 {
		t.Errorf("expected balance 1000, got %d", balance.Available)
	}

	// Deposits accumulate.
	balance, err = l.Deposit(ctx, 1, 500)
	if err != nil {
		t.Fatalf("second Deposit failed: %v", err)
	}
	if balance.Available != 1500 {
		t.Errorf("expected balance 1500, got %d", balance.Available)
	}

	balance, err = l.Withdraw(ctx, 1, 300)
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if balance.Available != 1200 {
		t.Errorf("expected balance 1200, got %d", balance.Available)
	}

	entries, err := l.GetEntries(ctx, 1, 10, 0)
	if err != nil {
		t.Fatalf("GetEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 ledger entries, got %d", len(entries))
	}
}

func TestWithdrawInsufficientFunds(t *testing.T) {
	db := setupTestDB(t)
	l := NewLedger(db)
	ctx := context.Background()

	if _, err := l.Deposit(ctx, 1, 100); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	_, err := l.Withdraw(ctx, 1, 200)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// The failed withdrawal leaves no entry and no balance change.
	balance, _ := l.GetBalance(ctx, 1)
	if balance.Available != 100 {
		t.Errorf("expected balance untouched at 100, got %d", balance.Available)
	}
	entries, _ := l.GetEntries(ctx, 1, 10, 0)
	if len(entries) != 1 {
		t.Errorf("expected only the deposit entry, got %d", len(entries))
	}

	// A user with no balance row at all fails the same way.
	if _, err := l.Withdraw(ctx, 2, 1); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("expected ErrInsufficientFunds for unknown user, got %v", err)
	}
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	db := setupTestDB(t)
	l := NewLedger(db)
	ctx := context.Background()

	if _, err := l.Deposit(ctx, 1, 0); err == nil {
		t.Error("expected error for zero deposit")
	}
	if _, err := l.Deposit(ctx, 1, -5); err == nil {
		t.Error("expected error for negative deposit")
	}
	if _, err := l.Withdraw(ctx, 1, 0); err == nil {
		t.Error("expected error for zero withdrawal")
	}
}

func TestGetBalanceUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	l := NewLedger(db)

	balance, err := l.GetBalance(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance.Available != 0 {
		t.Errorf("expected zero balance for unknown user, got %d", balance.Available)
	}
}

func TestHoldAndReleaseInTransaction(t *testing.T) {
	db := setupTestDB(t)
	l := NewLedger(db)
	ctx := context.Background()

	if _, err := l.Deposit(ctx, 1, 1000); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}

	projectID := uint(7)
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := l.Hold(tx, 1, 600, models.LedgerEntryEscrowHold, &projectID); err != nil {
			return err
		}
		return l.Release(tx, 2, 600, models.LedgerEntryPayout, &projectID)
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	b1, _ := l.GetBalance(ctx, 1)
	b2, _ := l.GetBalance(ctx, 2)
	if b1.Available != 400 || b2.Available != 600 {
		t.Errorf("expected balances 400/600, got %d/%d", b1.Available, b2.Available)
	}

	// A failed hold aborts the surrounding transaction entirely.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := l.Release(tx, 2, 50, models.LedgerEntryPayout, &projectID); err != nil {
			return err
		}
		return l.Hold(tx, 1, 10000, models.LedgerEntryEscrowHold, &projectID)
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	b2, _ = l.GetBalance(ctx, 2)
	if b2.Available != 600 {
		t.Errorf("expected rollback to leave balance 600, got %d", b2.Available)
	}
}
