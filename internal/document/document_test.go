package document_test

import (
	"bytes"
	"fmt"
	"laporantdx/backend/internal/document"
	"laporantdx/backend/internal/models"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func newReport() *models.Report {
	r := &models.Report{
		ID:             5,
		SubmittedAt:    time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC),
		ReportDate:     datatypes.Date(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		OfficerTD:      "Andi",
		OfficerPDU:     "Budi",
		OfficerTX:      "Citra, Dewi",
		EvidenceStudio: "https://cdn.test/evidence/2024-05-01/Studio_2024-05-01_1930.jpg",
		Outcome:        "lancar",
	}
	r.SetSlots([4]models.Slot{{Program: "Warta", Format: "live"}})
	return r
}

func TestBuild_Identity(t *testing.T) {
	l := document.NewRenderer().Build(newReport())

	assert.Equal(t, document.Title, l.Title)
	require.Len(t, l.Identity, 6)
	assert.Equal(t, "5", l.Identity[0].Value)
	assert.Equal(t, "01-05-2024 19:30 WIB", l.Identity[1].Value)
	assert.Equal(t, "01-05-2024", l.Identity[2].Value)
	assert.Equal(t, "Citra, Dewi", l.Identity[5].Value)
	assert.Equal(t, "lancar", l.Outcome)
}

func TestBuild_EvidenceLinksAndDashes(t *testing.T) {
	l := document.NewRenderer().Build(newReport())

	require.Len(t, l.Evidence, 3)
	assert.Equal(t, l.Evidence[0].Value, l.Evidence[0].Link)
	assert.Equal(t, "-", l.Evidence[1].Value)
	assert.Empty(t, l.Evidence[1].Link)
	assert.Equal(t, "-", l.Evidence[2].Value)
}

func TestBuild_ScheduleAlwaysFourRows(t *testing.T) {
	l := document.NewRenderer().Build(newReport())

	require.Len(t, l.Schedule, 4)
	assert.Equal(t, document.ScheduleRow{Slot: "15.00-15.59", Program: "Warta", Format: "live"}, l.Schedule[0])
	assert.Equal(t, document.ScheduleRow{Slot: "18.00-18.59", Program: "-", Format: "-"}, l.Schedule[3])
}

func TestBuild_IncidentsPaddedWithDashes(t *testing.T) {
	r := newReport()
	r.Incidents = models.AlignIncidents(
		[]string{"audio", "video", "encoder"},
		[]string{"14:00", "16:10"},
		nil,
	)

	l := document.NewRenderer().Build(r)

	require.Len(t, l.Incidents, 3)
	assert.Equal(t, document.IncidentRow{Description: "audio", Time: "14:00", Link: "-"}, l.Incidents[0])
	assert.Equal(t, document.IncidentRow{Description: "encoder", Time: "-", Link: "-"}, l.Incidents[2])
}

func TestBuild_NoIncidentSection(t *testing.T) {
	r := newReport()
	assert.Empty(t, document.NewRenderer().Build(r).Incidents)

	r.Incidents = models.AlignIncidents([]string{"", " "}, nil, nil)
	assert.Empty(t, document.NewRenderer().Build(r).Incidents)
}

func TestRender_ProducesPDF(t *testing.T) {
	r := newReport()
	r.Incidents = models.AlignIncidents([]string{"gangguan " + strings.Repeat("panjang ", 30)}, []string{"16:00"}, []string{"https://cdn.test/x.jpg"})

	out, err := document.NewRenderer().Render(r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRender_WrapsLongIncidentText(t *testing.T) {
	var words []string
	for i := 0; i < 40; i++ {
		words = append(words, fmt.Sprintf("kabel%02d", i))
	}
	description := strings.Join(words, " ")
	link := "https://storage.googleapis.com/laporan-evidence/incidents/2024-05-01/" + strings.Repeat("x", 60) + ".jpg"

	r := newReport()
	r.Incidents = models.AlignIncidents([]string{description}, []string{"16:00"}, []string{link})
	rd := document.NewRenderer()
	rd.SetCompression(false)

	out, err := rd.Render(r)
	require.NoError(t, err)
	for _, w := range words {
		assert.True(t, bytes.Contains(out, []byte(w)), "missing %q", w)
	}
	assert.False(t, bytes.Contains(out, []byte("...")))
	assert.True(t, bytes.Contains(out, []byte(strings.Repeat("x", 20))))
}

func TestRender_VeryLongTextSpansPages(t *testing.T) {
	r := newReport()
	description := strings.Repeat("gangguan audio ", 8000) + "selesai"
	r.Incidents = models.AlignIncidents([]string{description}, []string{"16:00"}, nil)
	rd := document.NewRenderer()
	rd.SetCompression(false)

	out, err := rd.Render(r)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(out, []byte("selesai")))
	assert.Greater(t, bytes.Count(out, []byte("/Type /Page")), 10)
}

func TestRender_Deterministic(t *testing.T) {
	rd := document.NewRenderer()
	a, err := rd.Render(newReport())
	require.NoError(t, err)
	b, err := rd.Render(newReport())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRender_NilReport(t *testing.T) {
	_, err := document.NewRenderer().Render(nil)
	assert.Error(t, err)
}
