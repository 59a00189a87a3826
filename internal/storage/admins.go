package storage

import (
	"context"
	"errors"
	"fmt"
	"laporantdx/backend/internal/models"
	"strings"

	"gorm.io/gorm"
)

func (s *Service) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := s.DB.WithContext(ctx).
		Where("username = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read admin: %w", err)
	}
	return &admin, nil
}

func (s *Service) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	if err := s.DB.WithContext(ctx).Create(admin).Error; err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}
