package handler_test

import (
	"context"
	"laporantdx/backend/internal/models"
	"laporantdx/backend/internal/storage"
	"laporantdx/backend/internal/submission"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify/mock implementation of storage.Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateReport(ctx context.Context, r *models.Report) (uint, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockStorage) GetReport(ctx context.Context, id uint) (*models.Report, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*models.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ListReports(ctx context.Context, filter storage.ListFilter) ([]models.Report, error) {
	args := m.Called(ctx, filter)
	if r := args.Get(0); r != nil {
		return r.([]models.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ListOfficers(ctx context.Context, category string) ([]models.Officer, error) {
	args := m.Called(ctx, category)
	if r := args.Get(0); r != nil {
		return r.([]models.Officer), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) CreateOfficer(ctx context.Context, officer *models.Officer) error {
	return m.Called(ctx, officer).Error(0)
}

func (m *MockStorage) GetAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	args := m.Called(ctx, username)
	if a := args.Get(0); a != nil {
		return a.(*models.Admin), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) CreateAdmin(ctx context.Context, admin *models.Admin) error {
	return m.Called(ctx, admin).Error(0)
}

func (m *MockStorage) CreateSession(ctx context.Context, adminID uint) (string, error) {
	args := m.Called(ctx, adminID)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) GetSession(ctx context.Context, sessionID string) (uint, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockStorage) DeleteSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockStorage) PublishFeedEvent(ctx context.Context, event models.FeedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockStorage) SubscribeToFeed(ctx context.Context) *redis.PubSub {
	args := m.Called(ctx)
	if p := args.Get(0); p != nil {
		return p.(*redis.PubSub)
	}
	return nil
}

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, sub submission.Submission) (*submission.Result, error) {
	args := m.Called(ctx, sub)
	if r := args.Get(0); r != nil {
		return r.(*submission.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(r *models.Report) ([]byte, error) {
	args := m.Called(r)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}
