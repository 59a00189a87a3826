// Package storage persists reports, officers and admins in PostgreSQL through
// gorm, and keeps sessions and the live feed channel in Redis.
package storage

import (
	"context"
	"errors"
	"laporantdx/backend/internal/config"
	"laporantdx/backend/internal/models"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrAdminNotFound   = errors.New("admin not found")
	ErrSessionNotFound = errors.New("session not found")
)

type Storage interface {
	CreateReport(ctx context.Context, report *models.Report) (uint, error)
	GetReport(ctx context.Context, id uint) (*models.Report, error)
	ListReports(ctx context.Context, filter ListFilter) ([]models.Report, error)

	ListOfficers(ctx context.Context, category string) ([]models.Officer, error)
	CreateOfficer(ctx context.Context, officer *models.Officer) error

	GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	CreateAdmin(ctx context.Context, admin *models.Admin) error

	CreateSession(ctx context.Context, adminID uint) (string, error)
	GetSession(ctx context.Context, sessionID string) (uint, error)
	DeleteSession(ctx context.Context, sessionID string) error

	PublishFeedEvent(ctx context.Context, event models.FeedEvent) error
	SubscribeToFeed(ctx context.Context) *redis.PubSub
}

type Service struct {
	DB       *gorm.DB
	Redis    *redis.Client
	officers *gocache.Cache
}

// NewStorageService Constructor. rdb may be nil for tools that only touch the
// database.
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:       db,
		Redis:    rdb,
		officers: gocache.New(config.OfficerCacheTTL, 2*config.OfficerCacheTTL),
	}
}

// Migrate creates or updates the tables this service owns.
func (s *Service) Migrate() error {
	return s.DB.AutoMigrate(&models.Report{}, &models.Officer{}, &models.Admin{})
}

// Ping checks both backends; used by the health endpoint.
func (s *Service) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	if s.Redis != nil {
		return s.Redis.Ping(ctx).Err()
	}
	return nil
}
