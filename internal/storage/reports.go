package storage

import (
	"context"
	"errors"
	"fmt"
	"laporantdx/backend/internal/models"

	"gorm.io/gorm"
)

// CreateReport inserts report in a single transaction and returns the id the
// database generated for it.
func (s *Service) CreateReport(ctx context.Context, report *models.Report) (uint, error) {
	if report == nil {
		return 0, errors.New("nil report")
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(report).Error
	})
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}
	if report.ID == 0 {
		return 0, errors.New("insert report: database returned no id")
	}
	return report.ID, nil
}

// GetReport returns ErrReportNotFound when no row has that id.
func (s *Service) GetReport(ctx context.Context, id uint) (*models.Report, error) {
	if id == 0 {
		return nil, ErrReportNotFound
	}
	var report models.Report
	err := s.DB.WithContext(ctx).First(&report, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read report %d: %w", id, err)
	}
	return &report, nil
}

// ListReports returns one page of reports, newest first.
func (s *Service) ListReports(ctx context.Context, filter ListFilter) ([]models.Report, error) {
	query, args := BuildListQuery(filter)
	var reports []models.Report
	if err := s.DB.WithContext(ctx).Raw(query, args...).Scan(&reports).Error; err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}
