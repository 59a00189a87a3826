package submission_test

import (
	"context"
	"laporantdx/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, file []byte, category, timeLabel, folder string) string {
	args := m.Called(ctx, file, category, timeLabel, folder)
	return args.String(0)
}

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateReport(ctx context.Context, r *models.Report) (uint, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(uint), args.Error(1)
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

type MockArtifacts struct {
	mock.Mock
}

func (m *MockArtifacts) Save(id uint, data []byte) (string, error) {
	args := m.Called(id, data)
	return args.String(0), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishFeedEvent(ctx context.Context, event models.FeedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
