package storage

import (
	"context"
	"errors"
	"fmt"
	"laporantdx/backend/internal/models"
	"slices"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

const allOfficersKey = "*"

// ListOfficers returns officers of one category (or all when category is
// empty) ordered by name. Results are cached per category; callers get their
// own copy.
func (s *Service) ListOfficers(ctx context.Context, category string) ([]models.Officer, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	key := category
	if key == "" {
		key = allOfficersKey
	}
	if cached, ok := s.officers.Get(key); ok {
		return slices.Clone(cached.([]models.Officer)), nil
	}

	q := s.DB.WithContext(ctx).Model(&models.Officer{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	officers := make([]models.Officer, 0)
	if err := q.Order("name ASC").Find(&officers).Error; err != nil {
		return nil, fmt.Errorf("list officers: %w", err)
	}
	s.officers.Set(key, slices.Clone(officers), gocache.DefaultExpiration)
	return officers, nil
}

func (s *Service) CreateOfficer(ctx context.Context, officer *models.Officer) error {
	officer.Name = strings.TrimSpace(officer.Name)
	officer.Category = strings.ToLower(strings.TrimSpace(officer.Category))
	if officer.Name == "" || officer.Category == "" {
		return errors.New("officer name and category are required")
	}
	if err := s.DB.WithContext(ctx).Create(officer).Error; err != nil {
		return fmt.Errorf("insert officer: %w", err)
	}
	s.officers.Flush()
	return nil
}
