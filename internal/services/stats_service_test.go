package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func TestGetPlatformStats(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	statsService := NewStatsService(env.db)

	voter := createFreelancer(t, env, "alice", "golang", 500)
	worker := createFreelancer(t, env, "bob", "golang", 300)
	client := createUser(t, env, "client")
	fundUser(t, env, client.ID, 5000)

	project := createOpenProject(t, env, client.ID, "golang", 1000)
	assignProject(t, env, voter.ID, project.ID, worker.ID)
	if _, err := env.settlement.CompleteProject(ctx, client.ID, project.ID); err != nil {
		t.Fatalf("CompleteProject failed: %v", err)
	}
	createOpenProject(t, env, client.ID, "golang", 3000)

	stats, err := statsService.GetPlatformStats(ctx)
	if err != nil {
		t.Fatalf("GetPlatformStats failed: %v", err)
	}

	// alice, bob, client plus the fee sink.
	if stats.TotalUsers != 4 {
		t.Errorf("expected 4 users, got %d", stats.TotalUsers)
	}
	if stats.ActiveUsers != 2 {
		t.Errorf("expected 2 active users, got %d", stats.ActiveUsers)
	}
	if stats.TotalProjects != 2 || stats.OpenProjects != 1 || stats.SettledProjects != 1 {
		t.Errorf("unexpected project counts: %+v", stats)
	}
	if !stats.TotalStaked.Equal(decimal.NewFromInt(800)) {
		t.Errorf("expected total staked 800, got %s", stats.TotalStaked)
	}
	if !stats.TotalEscrowed.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("expected total escrowed 4000, got %s", stats.TotalEscrowed)
	}
	// 250 bps of 1000.
	if !stats.TotalFees.Equal(decimal.NewFromInt(25)) {
		t.Errorf("expected total fees 25, got %s", stats.TotalFees)
	}
	if !stats.AvgBudget.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected avg budget 2000, got %s", stats.AvgBudget)
	}
}
