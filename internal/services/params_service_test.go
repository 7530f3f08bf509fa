package services

import (
	"context"
	"errors"
	"testing"

	"freelancer-dao/internal/models"
)

func TestParamsSeedIsIdempotent(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	// setupTestEnv already seeded v1; a second seed must be a no-op.
	if err := env.params.Seed(999, 999, 999); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}

	current, err := env.params.Current(ctx)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if current.ID != 1 || current.FeeBasisPoints != 250 {
		t.Errorf("expected seeded v1 with fee 250, got v%d fee %d", current.ID, current.FeeBasisPoints)
	}
}

func TestSetParamsAppendsVersions(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := createUser(t, env, "admin")
	makeAdmin(t, env, admin.ID)

	updated, err := env.params.SetFeeBasisPoints(ctx, admin.ID, 500)
	if err != nil {
		t.Fatalf("SetFeeBasisPoints failed: %v", err)
	}
	if updated.ID != 2 {
		t.Errorf("expected version 2, got %d", updated.ID)
	}
	// Untouched fields carry over.
	if updated.MinimumStake != 10 || updated.VotingPeriodSeconds != 3*24*3600 {
		t.Errorf("expected untouched fields carried over, got %+v", updated)
	}

	if _, err := env.params.SetMinimumStake(ctx, admin.ID, 100); err != nil {
		t.Fatalf("SetMinimumStake failed: %v", err)
	}
	if _, err := env.params.SetVotingPeriod(ctx, admin.ID, 7200); err != nil {
		t.Fatalf("SetVotingPeriod failed: %v", err)
	}

	current, err := env.params.Current(ctx)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if current.ID != 4 {
		t.Errorf("expected version 4, got %d", current.ID)
	}
	if current.FeeBasisPoints != 500 || current.MinimumStake != 100 || current.VotingPeriodSeconds != 7200 {
		t.Errorf("expected accumulated params, got %+v", current)
	}

	// The original version stays on record.
	var v1 models.ProtocolParams
	if err := env.db.First(&v1, 1).Error; err != nil {
		t.Fatalf("failed to load v1: %v", err)
	}
	if v1.FeeBasisPoints != 250 {
		t.Errorf("expected v1 fee unchanged at 250, got %d", v1.FeeBasisPoints)
	}
}

func TestSetFeeCapEnforced(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := createUser(t, env, "admin")
	makeAdmin(t, env, admin.ID)

	// Exactly at the cap is allowed.
	if _, err := env.params.SetFeeBasisPoints(ctx, admin.ID, models.MaxFeeBasisPoints); err != nil {
		t.Fatalf("fee at cap rejected: %v", err)
	}

	if _, err := env.params.SetFeeBasisPoints(ctx, admin.ID, models.MaxFeeBasisPoints+1); !errors.Is(err, ErrFeeTooHigh) {
		t.Errorf("expected ErrFeeTooHigh, got %v", err)
	}

	// The rejected update must not produce a version.
	current, _ := env.params.Current(ctx)
	if current.FeeBasisPoints != models.MaxFeeBasisPoints {
		t.Errorf("expected fee at cap, got %d", current.FeeBasisPoints)
	}
}

func TestSetParamsRequiresAdmin(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := createUser(t, env, "nobody")

	if _, err := env.params.SetFeeBasisPoints(ctx, user.ID, 100); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := env.params.SetMinimumStake(ctx, user.ID, 100); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSetParamsValidation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	admin := createUser(t, env, "admin")
	makeAdmin(t, env, admin.ID)

	if _, err := env.params.SetMinimumStake(ctx, admin.ID, 0); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters for zero minimum stake, got %v", err)
	}
	if _, err := env.params.SetVotingPeriod(ctx, admin.ID, -1); !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters for negative voting period, got %v", err)
	}
}

func TestParamUpdatesAreLogged(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	adminUser := createUser(t, env, "admin")
	admin := makeAdmin(t, env, adminUser.ID)

	if _, err := env.params.SetFeeBasisPoints(ctx, adminUser.ID, 300); err != nil {
		t.Fatalf("SetFeeBasisPoints failed: %v", err)
	}

	logs, err := env.admins.GetAdminLogs(ctx, 10, 0)
	if err != nil {
		t.Fatalf("GetAdminLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 admin log, got %d", len(logs))
	}
	if logs[0].AdminID != admin.ID || logs[0].Action != "SET_FEE_BASIS_POINTS" {
		t.Errorf("unexpected log entry: %+v", logs[0])
	}

	var event models.Event
	if err := env.db.Where("type = ?", models.EventParamsUpdated).First(&event).Error; err != nil {
		t.Fatalf("expected params.updated event: %v", err)
	}
}
