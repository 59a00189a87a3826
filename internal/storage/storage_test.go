package storage_test

import (
	"context"
	"laporantdx/backend/internal/models"
	"laporantdx/backend/internal/storage"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *storage.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := storage.NewStorageService(db, nil)
	require.NoError(t, s.Migrate())
	return s
}

func sampleReport() *models.Report {
	r := &models.Report{
		SubmittedAt: time.Date(2024, 5, 1, 19, 5, 0, 0, time.UTC),
		ReportDate:  datatypes.Date(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		OfficerTD:   "Andi",
		OfficerPDU:  "Budi",
		OfficerTX:   "Citra, Dewi",
		Incidents: datatypes.JSONSlice[models.Incident]{
			{Description: "audio drop", Time: "16:10", Link: "https://cdn.test/a.jpg"},
			{Description: "", Time: "", Link: ""},
		},
		Outcome: "ada kendala saat siaran",
	}
	r.SetSlots([4]models.Slot{
		{Program: "Berita Sore,sore", Format: "live"},
		{Program: "Dialog"},
		{},
		{Program: "Kuis", Format: "taped"},
	})
	return r
}

func TestCreateAndGetReport(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	id, err := s.CreateReport(ctx, sampleReport())
	require.NoError(t, err)
	assert.NotZero(t, id)

	got, err := s.GetReport(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Andi", got.OfficerTD)
	assert.Equal(t, "Citra, Dewi", got.OfficerTX)
	assert.Equal(t, "Berita Sore,sore", got.Program15)
	assert.Equal(t, "taped", got.Format18)
	assert.Equal(t, "ada kendala saat siaran", got.Outcome)
	require.Len(t, got.Incidents, 2)
	assert.Equal(t, "audio drop", got.Incidents[0].Description)
	assert.True(t, got.Incidents[1].Blank())
	assert.True(t, got.SubmittedAt.Equal(time.Date(2024, 5, 1, 19, 5, 0, 0, time.UTC)))
}

func TestCreateReport_IDsIncrease(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	first, err := s.CreateReport(ctx, sampleReport())
	require.NoError(t, err)
	second, err := s.CreateReport(ctx, sampleReport())
	require.NoError(t, err)
	assert.Greater(t, second, first)
}

func TestGetReport_NotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.GetReport(context.Background(), 42)
	assert.ErrorIs(t, err, storage.ErrReportNotFound)

	_, err = s.GetReport(context.Background(), 0)
	assert.ErrorIs(t, err, storage.ErrReportNotFound)
}

func TestListReports_NewestFirstWithPaging(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	var ids []uint
	for i := 0; i < 5; i++ {
		id, err := s.CreateReport(ctx, sampleReport())
		require.NoError(t, err)
		ids = append(ids, id)
	}

	page, err := s.ListReports(ctx, storage.ListFilter{Waktu: "all", Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, ids[3], page[0].ID)
	assert.Equal(t, ids[2], page[1].ID)
	require.Len(t, page[0].Incidents, 2)
}

func TestOfficers_OrderedAndCached(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	require.NoError(t, s.CreateOfficer(ctx, &models.Officer{Name: "Zaki", Category: "td"}))
	require.NoError(t, s.CreateOfficer(ctx, &models.Officer{Name: "Agus", Category: "TD "}))
	require.NoError(t, s.CreateOfficer(ctx, &models.Officer{Name: "Mira", Category: "pdu"}))

	td, err := s.ListOfficers(ctx, "td")
	require.NoError(t, err)
	require.Len(t, td, 2)
	assert.Equal(t, "Agus", td[0].Name)
	assert.Equal(t, "Zaki", td[1].Name)

	// A row written behind the service's back stays invisible until the cache is invalidated.
	require.NoError(t, s.DB.Create(&models.Officer{Name: "Bayu", Category: "td"}).Error)
	cached, err := s.ListOfficers(ctx, "td")
	require.NoError(t, err)
	assert.Len(t, cached, 2)

	require.NoError(t, s.CreateOfficer(ctx, &models.Officer{Name: "Cahya", Category: "td"}))
	fresh, err := s.ListOfficers(ctx, "td")
	require.NoError(t, err)
	assert.Len(t, fresh, 4)

	all, err := s.ListOfficers(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestOfficers_CallerCannotCorruptCache(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	require.NoError(t, s.CreateOfficer(ctx, &models.Officer{Name: "Agus", Category: "td"}))

	first, err := s.ListOfficers(ctx, "td")
	require.NoError(t, err)
	require.Len(t, first, 1)
	first[0].Name = "changed"

	second, err := s.ListOfficers(ctx, "td")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "Agus", second[0].Name)

	second[0].Name = "changed again"
	third, err := s.ListOfficers(ctx, "td")
	require.NoError(t, err)
	assert.Equal(t, "Agus", third[0].Name)
}

func TestCreateOfficer_RequiresFields(t *testing.T) {
	s := newTestService(t)
	assert.Error(t, s.CreateOfficer(context.Background(), &models.Officer{Name: " ", Category: "td"}))
}

func TestAdmins(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()

	admin := &models.Admin{Username: " Operator "}
	require.NoError(t, admin.SetPassword("rahasia"))
	require.NoError(t, s.CreateAdmin(ctx, admin))

	got, err := s.GetAdminByUsername(ctx, "OPERATOR")
	require.NoError(t, err)
	assert.Equal(t, "operator", got.Username)
	assert.True(t, got.CheckPassword("rahasia"))

	_, err = s.GetAdminByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrAdminNotFound)
}
