package ds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func TestClassifyExpirationBoundaries(t *testing.T) {
	cases := []struct {
		name   string
		offset int
		want   ExpirationStatus
	}{
		{"yesterday", -1, StatusExpired},
		{"long ago", -400, StatusExpired},
		{"today", 0, StatusSoon},
		{"tomorrow", 1, StatusSoon},
		{"last day of window", AlertWindowDays, StatusSoon},
		{"first day after window", AlertWindowDays + 1, StatusValid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			exp := time.Date(2026, time.March, 10+tc.offset, 0, 0, 0, 0, time.UTC)
			assert.Equal(t, tc.want, ClassifyExpiration(&exp, today))
		})
	}
}

func TestClassifyExpirationIgnoresClock(t *testing.T) {
	late := time.Date(2026, time.March, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, StatusExpired, ClassifyExpiration(&late, today))

	sameDay := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusSoon, ClassifyExpiration(&sameDay, today))
}

func TestClassifyNil(t *testing.T) {
	assert.Equal(t, StatusUnknown, ClassifyExpiration(nil, today))
	assert.Equal(t, StatusUnknown, ClassifyOptionalDate(nil, today))
	assert.Equal(t, "Unknown date", StatusUnknown.Label())
	assert.Equal(t, "Expires soon (30d)", StatusSoon.Label())
}

func fixture() ([]Insurance, []Inspection, []Document, []Vessel) {
	aurora := &Vessel{ID: 1, Name: "Aurora", Registration: "AU-1"}
	beluga := &Vessel{ID: 2, Name: "Beluga", Registration: "BE-2"}
	expiredDoc := NewDate(2026, time.February, 1)
	soonDoc := NewDate(2026, time.March, 20)

	insurances := []Insurance{
		{ID: 1, VesselID: 1, Vessel: aurora, EndDate: NewDate(2026, time.April, 9)},
		{ID: 2, VesselID: 2, Vessel: beluga, EndDate: NewDate(2027, time.January, 1)},
	}
	inspections := []Inspection{
		{ID: 1, VesselID: 2, Vessel: beluga, Location: "Brest", PermitExpiration: NewDate(2026, time.March, 9)},
	}
	documents := []Document{
		{ID: 1, VesselID: 1, Vessel: aurora, DocType: "Navigation permit", ExpirationDate: &expiredDoc},
		{ID: 2, VesselID: 1, Vessel: aurora, DocType: "Radio licence", ExpirationDate: &soonDoc},
		{ID: 3, VesselID: 2, Vessel: beluga, DocType: "Hull survey"},
	}
	recent := []Vessel{*beluga, *aurora}
	return insurances, inspections, documents, recent
}

func TestBuildAlertSummary(t *testing.T) {
	ins, insp, docs, recent := fixture()
	s := BuildAlertSummary(today, ins, insp, docs, recent)

	assert.Equal(t, 2, s.Expired)
	assert.Equal(t, 2, s.Soon)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Valid)

	require.Len(t, s.ExpiredItems, 2)
	assert.Equal(t, ExpiredItem{VesselID: 2, VesselName: "Beluga", Document: "Inspection (Brest)", Date: "2026-03-09", AlertType: "expired"}, s.ExpiredItems[0])
	assert.Equal(t, "Document (Navigation permit)", s.ExpiredItems[1].Document)

	require.Len(t, s.SoonItems, 2)
	assert.Equal(t, SoonItem{VesselID: 1, Vessel: "Aurora", Type: "Insurance", ExpiresOn: "2026-04-09", AlertType: "soon"}, s.SoonItems[0])
	assert.Equal(t, "Document (Radio licence)", s.SoonItems[1].Type)

	require.Len(t, s.RecentVessels, 2)
	assert.Equal(t, RecentVessel{ID: 2, Name: "Beluga", Registration: "BE-2"}, s.RecentVessels[0])
}

func TestBuildAlertSummaryNullExpirationOnly(t *testing.T) {
	docs := []Document{{ID: 1, VesselID: 1, DocType: "Hull survey"}}
	s := BuildAlertSummary(today, nil, nil, docs, nil)

	assert.Zero(t, s.Expired)
	assert.Zero(t, s.Soon)
	assert.Zero(t, s.Valid)
	assert.Zero(t, s.Total)
	assert.NotNil(t, s.ExpiredItems)
	assert.NotNil(t, s.SoonItems)
	assert.NotNil(t, s.RecentVessels)
}

func TestBuildAlertSummaryIdempotent(t *testing.T) {
	ins, insp, docs, recent := fixture()
	first := BuildAlertSummary(today, ins, insp, docs, recent)
	second := BuildAlertSummary(today, ins, insp, docs, recent)
	assert.Equal(t, first, second)
}
