package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"freelancer-dao/internal/ledger"
	"freelancer-dao/internal/models"
	"freelancer-dao/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service graph against an in-memory database.
type testEnv struct {
	db         *gorm.DB
	repo       *repository.Repository
	ledger     *ledger.Ledger
	events     *EventService
	admins     *AdminService
	params     *ParamsService
	stakes     *StakeService
	projects   *ProjectService
	votes      *VoteService
	settlement *SettlementService
	feeSink    *models.User
}

func setupTestEnv(t testing.TB) *testEnv {
	// A named shared-cache memory DB so every pooled connection sees the
	// same data. The name is unique per test for isolation.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Balance{},
		&models.LedgerEntry{},
		&models.SkillStake{},
		&models.Project{},
		&models.Vote{},
		&models.ProjectCandidate{},
		&models.ProtocolParams{},
		&models.Event{},
		&models.AdminUser{},
		&models.AdminLog{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	repo := repository.NewRepository(db)
	fundLedger := ledger.NewLedger(db)
	locks := NewKeyedMutex()
	events := NewEventService(db)
	admins := NewAdminService(db)
	params := NewParamsService(db, admins, events)

	if err := params.Seed(250, 10, 3*24*3600); err != nil {
		t.Fatalf("failed to seed params: %v", err)
	}

	feeSink := &models.User{WalletAddress: "fee-sink", Nickname: "Platform Fee Sink"}
	if err := db.Create(feeSink).Error; err != nil {
		t.Fatalf("failed to create fee sink: %v", err)
	}

	return &testEnv{
		db:         db,
		repo:       repo,
		ledger:     fundLedger,
		events:     events,
		admins:     admins,
		params:     params,
		stakes:     NewStakeService(db, repo, fundLedger, params, events, locks),
		projects:   NewProjectService(db, repo, fundLedger, events),
		votes:      NewVoteService(db, repo, params, events, locks),
		settlement: NewSettlementService(db, repo, fundLedger, params, events, locks, feeSink.ID),
		feeSink:    feeSink,
	}
}

func createUser(t testing.TB, env *testEnv, wallet string) *models.User {
	user := &models.User{WalletAddress: wallet}
	if err := env.db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", wallet, err)
	}
	return user
}

func fundUser(t testing.TB, env *testEnv, userID uint, amount int64) {
	if _, err := env.ledger.Deposit(context.Background(), userID, amount); err != nil {
		t.Fatalf("failed to fund user %d: %v", userID, err)
	}
}

// createFreelancer creates a funded user and stakes them into a category,
// which activates the account at reputation 1000.
func createFreelancer(t testing.TB, env *testEnv, wallet, category string, stake int64) *models.User {
	user := createUser(t, env, wallet)
	fundUser(t, env, user.ID, stake)
	if _, err := env.stakes.Stake(context.Background(), user.ID, category, stake); err != nil {
		t.Fatalf("failed to stake for %s: %v", wallet, err)
	}
	return user
}

func getUser(t testing.TB, env *testEnv, userID uint) *models.User {
	user, err := env.repo.GetUserByID(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to load user %d: %v", userID, err)
	}
	return user
}

func availableBalance(t testing.TB, env *testEnv, userID uint) int64 {
	balance, err := env.ledger.GetBalance(context.Background(), userID)
	if err != nil {
		t.Fatalf("failed to load balance for user %d: %v", userID, err)
	}
	return balance.Available
}

// expireVoting backdates a project beyond the default voting window.
func expireVoting(t testing.TB, env *testEnv, projectID uint) {
	past := time.Now().Add(-4 * 24 * time.Hour)
	err := env.db.Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("created_at", past).Error
	if err != nil {
		t.Fatalf("failed to backdate project %d: %v", projectID, err)
	}
}

func createOpenProject(t testing.TB, env *testEnv, clientID uint, category string, budget int64) *models.Project {
	project, err := env.projects.CreateProject(context.Background(), clientID, &models.CreateProjectRequest{
		Description: "test project",
		Category:    category,
		Budget:      budget,
		Deadline:    time.Now().Add(30 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	return project
}

func makeAdmin(t testing.TB, env *testEnv, userID uint) *models.AdminUser {
	admin := &models.AdminUser{UserID: userID, Role: "SUPER_ADMIN"}
	if err := env.db.Create(admin).Error; err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	return admin
}
