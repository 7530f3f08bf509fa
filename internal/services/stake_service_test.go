package services

import (
	"context"
	"errors"
	"testing"

	"freelancer-dao/internal/models"
)

func TestStakeActivatesFreelancer(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := createUser(t, env, "alice")
	fundUser(t, env, user.ID, 1000)

	stake, err := env.stakes.Stake(ctx, user.ID, "golang", 600)
	if err != nil {
		t.Fatalf("Stake failed: %v", err)
	}
	if stake.Amount != 600 {
		t.Errorf("expected stake amount 600, got %d", stake.Amount)
	}

	updated := getUser(t, env, user.ID)
	if !updated.Active {
		t.Error("expected user to be active after first stake")
	}
	if updated.Reputation != models.InitialReputation {
		t.Errorf("expected reputation %d, got %d", models.InitialReputation, updated.Reputation)
	}
	if updated.JoinedAt == nil {
		t.Error("expected joined_at to be set")
	}

	if got := availableBalance(t, env, user.ID); got != 400 {
		t.Errorf("expected available balance 400, got %d", got)
	}
}

func TestStakeAccumulates(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := createUser(t, env, "alice")
	fundUser(t, env, user.ID, 1000)

	if _, err := env.stakes.Stake(ctx, user.ID, "golang", 300); err != nil {
		t.Fatalf("first stake failed: %v", err)
	}
	stake, err := env.stakes.Stake(ctx, user.ID, "golang", 200)
	if err != nil {
		t.Fatalf("second stake failed: %v", err)
	}
	if stake.Amount != 500 {
		t.Errorf("expected accumulated stake 500, got %d", stake.Amount)
	}

	// A second activation must not reset reputation.
	env.db.Model(&models.User{}).Where("id = ?", user.ID).Update("reputation", 1100)
	if _, err := env.stakes.Stake(ctx, user.ID, "golang", 100); err != nil {
		t.Fatalf("third stake failed: %v", err)
	}
	if rep := getUser(t, env, user.ID).Reputation; rep != 1100 {
		t.Errorf("expected reputation untouched at 1100, got %d", rep)
	}
}

func TestStakeSeparateCategories(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := createUser(t, env, "alice")
	fundUser(t, env, user.ID, 1000)

	if _, err := env.stakes.Stake(ctx, user.ID, "golang", 300); err != nil {
		t.Fatalf("stake golang failed: %v", err)
	}
	if _, err := env.stakes.Stake(ctx, user.ID, "design", 200); err != nil {
		t.Fatalf("stake design failed: %v", err)
	}

	profile, err := env.stakes.GetProfile(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if len(profile.Stakes) != 2 {
		t.Fatalf("expected 2 stakes, got %d", len(profile.Stakes))
	}

	golang, err := env.repo.GetStake(ctx, user.ID, "golang")
	if err != nil || golang != 300 {
		t.Errorf("expected golang stake 300, got %d (err=%v)", golang, err)
	}
}

func TestStakeBelowMinimumRejected(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := createUser(t, env, "alice")
	fundUser(t, env, user.ID, 1000)

	// Seeded minimum stake is 10.
	_, err := env.stakes.Stake(ctx, user.ID, "golang", 5)
	if !errors.Is(err, ErrInvalidParameters) {
		t.Errorf("expected ErrInvalidParameters, got %v", err)
	}
}

func TestStakeInsufficientFunds(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	user := createUser(t, env, "alice")
	fundUser(t, env, user.ID, 50)

	_, err := env.stakes.Stake(ctx, user.ID, "golang", 100)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	// The failed stake must leave no trace: no stake row, no activation,
	// balance untouched.
	if amount, _ := env.repo.GetStake(ctx, user.ID, "golang"); amount != 0 {
		t.Errorf("expected no stake recorded, got %d", amount)
	}
	if getUser(t, env, user.ID).Active {
		t.Error("expected user to remain inactive")
	}
	if got := availableBalance(t, env, user.ID); got != 50 {
		t.Errorf("expected balance untouched at 50, got %d", got)
	}
}

func TestSkillPoolMembership(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	createFreelancer(t, env, "alice", "golang", 500)
	createFreelancer(t, env, "bob", "golang", 300)
	createFreelancer(t, env, "carol", "design", 200)

	pool, err := env.stakes.GetPool(ctx, "golang")
	if err != nil {
		t.Fatalf("GetPool failed: %v", err)
	}
	if len(pool) != 2 {
		t.Fatalf("expected 2 pool members, got %d", len(pool))
	}
	for _, member := range pool {
		if member.Reputation != models.InitialReputation {
			t.Errorf("expected member reputation %d, got %d", models.InitialReputation, member.Reputation)
		}
	}
}
