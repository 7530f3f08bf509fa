package services

import (
	"context"
	"fmt"
	"log"
	"sync"

	"freelancer-dao/internal/models"

	"gorm.io/gorm"
)

type AdminService struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{
		db: db,
	}
}

// IsAdmin checks if a user holds the privileged capability
func (s *AdminService) IsAdmin(ctx context.Context, userID uint) bool {
	var admin models.AdminUser
	result := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&admin)
	return result.Error == nil
}

// GetAdminByUserID gets admin by user ID
func (s *AdminService) GetAdminByUserID(ctx context.Context, userID uint) (*models.AdminUser, error) {
	var admin models.AdminUser
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// PromoteUserToAdmin promotes a user to admin
func (s *AdminService) PromoteUserToAdmin(ctx context.Context, userID uint, role string, promotedByAdminID uint) (*models.AdminUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	var existing models.AdminUser
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("user is already an admin")
	}

	adminUser := models.AdminUser{
		UserID: userID,
		Role:   role,
	}

	if err := s.db.WithContext(ctx).Create(&adminUser).Error; err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}

	s.LogAdminAction(s.db, promotedByAdminID, "PROMOTE_USER", "USER", &userID, models.JSONB{
		"role": role,
	})

	log.Printf("User %d promoted to %s", userID, role)
	return &adminUser, nil
}

// LogAdminAction logs an admin action as part of the given transaction
func (s *AdminService) LogAdminAction(tx *gorm.DB, adminID uint, action string, resourceType string,
	resourceID *uint, details models.JSONB) error {

	adminLog := models.AdminLog{
		AdminID:      adminID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Details:      details,
	}

	return tx.Create(&adminLog).Error
}

// GetAdminLogs returns admin activity logs
func (s *AdminService) GetAdminLogs(ctx context.Context, limit int, offset int) ([]models.AdminLog, error) {
	var logs []models.AdminLog
	if err := s.db.WithContext(ctx).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
