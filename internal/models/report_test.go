package models_test

import (
	"laporantdx/backend/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAlignIncidents_UsesLongestList verifies short lists leave empty fields instead of truncating.
func TestAlignIncidents_UsesLongestList(t *testing.T) {
	// Arrange
	descriptions := []string{"audio drop", "encoder restart", "link down"}
	times := []string{"08:00", "16:30"}

	// Act
	incidents := models.AlignIncidents(descriptions, times, nil)

	// Assert
	require.Len(t, incidents, 3)
	assert.Equal(t, models.Incident{Description: "audio drop", Time: "08:00"}, incidents[0])
	assert.Equal(t, "16:30", incidents[1].Time)
	assert.Equal(t, "", incidents[2].Time)
	for _, inc := range incidents {
		assert.Empty(t, inc.Link)
	}
}

func TestAlignIncidents_LinksLongerThanDescriptions(t *testing.T) {
	incidents := models.AlignIncidents(nil, nil, []string{"https://x/a.jpg"})

	require.Len(t, incidents, 1)
	assert.Equal(t, "https://x/a.jpg", incidents[0].Link)
	assert.False(t, incidents[0].Blank())
}

func TestAlignIncidents_Empty(t *testing.T) {
	assert.Empty(t, models.AlignIncidents(nil, nil, nil))
}

func TestReport_SlotsAlwaysFour(t *testing.T) {
	r := &models.Report{Program15: "Berita Sore,sore}", Format17: "Live"}

	slots := r.Slots()

	assert.Equal(t, "15.00-15.59", slots[0].Label)
	assert.Equal(t, "Berita Sore,sore}", slots[0].Program)
	assert.Equal(t, "Live", slots[2].Format)
	assert.Equal(t, "18.00-18.59", slots[3].Label)
}

func TestReport_SetSlotsRoundTrip(t *testing.T) {
	var in [4]models.Slot
	in[1] = models.Slot{Program: "Dialog", Format: "Studio"}
	in[3] = models.Slot{Program: "Warta", Format: "Tapping"}

	r := &models.Report{}
	r.SetSlots(in)

	assert.Equal(t, "Dialog", r.Program16)
	assert.Equal(t, "Studio", r.Format16)
	assert.Equal(t, "Warta", r.Program18)
	assert.Equal(t, "Tapping", r.Format18)
}

func TestReport_PackedIncidents(t *testing.T) {
	r := &models.Report{Incidents: []models.Incident{
		{Description: "audio drop", Time: "08:00", Link: "https://x/1.jpg"},
		{Description: "freeze", Time: "16:30"},
	}}

	d, tm, l := r.PackedIncidents()

	assert.Equal(t, "audio drop, freeze", d)
	assert.Equal(t, "08:00, 16:30", tm)
	assert.Equal(t, "https://x/1.jpg, ", l)
	assert.Equal(t, []string{"08:00", "16:30"}, r.IncidentTimes())
}
