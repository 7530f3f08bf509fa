package services

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"freelancer-dao/internal/models"
)

// AuthService handles authentication business logic
type AuthService struct {
	db *gorm.DB
}

// NewAuthService creates a new AuthService
func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// ProcessWalletLogin finds or creates a user by wallet address. New accounts
// start inactive: only the first stake turns a user into a freelancer.
func (s *AuthService) ProcessWalletLogin(ctx context.Context, walletAddress, nickname string) (*models.User, error) {
	if walletAddress == "" {
		return nil, fmt.Errorf("wallet address is required")
	}

	var user models.User
	result := s.db.WithContext(ctx).Where("wallet_address = ?", walletAddress).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		user = models.User{
			WalletAddress: walletAddress,
			Nickname:      nickname,
		}

		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}

		log.Printf("New user created: wallet=%s (ID: %d)", walletAddress, user.ID)
	} else if result.Error != nil {
		return nil, fmt.Errorf("database error: %w", result.Error)
	} else {
		log.Printf("User logged in: wallet=%s (ID: %d)", walletAddress, user.ID)
	}

	return &user, nil
}

// GetUserByID retrieves a user by their ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureAccount returns the user for a wallet, creating it if absent. The
// platform fee sink account is provisioned through this at startup.
func (s *AuthService) EnsureAccount(ctx context.Context, walletAddress, nickname string) (*models.User, error) {
	return s.ProcessWalletLogin(ctx, walletAddress, nickname)
}
