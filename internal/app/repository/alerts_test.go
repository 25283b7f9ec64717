package repository_test

import (
	"context"
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/repository"
	"fleet_registry/internal/app/repository/repotest"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alertDay = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

func seedAlerts(t *testing.T, rep *repository.Repository) (aurora, beluga ds.Vessel) {
	t.Helper()
	ctx := context.Background()
	aurora = seedVessel(t, rep, "Aurora", "AU-1")
	beluga = seedVessel(t, rep, "Beluga", "BE-2")

	insurer := ds.Insurer{Name: "Mutuelle du Littoral"}
	require.NoError(t, rep.CreateInsurer(ctx, &insurer))

	// ends on the last day of the window
	require.NoError(t, rep.SaveInsurance(ctx, &ds.Insurance{
		VesselID: aurora.ID, InsurerID: insurer.ID,
		StartDate: ds.NewDate(2025, time.April, 10), EndDate: ds.NewDate(2026, time.April, 9),
	}))
	require.NoError(t, rep.SaveInsurance(ctx, &ds.Insurance{
		VesselID: beluga.ID, InsurerID: insurer.ID,
		StartDate: ds.NewDate(2026, time.January, 1), EndDate: ds.NewDate(2027, time.January, 1),
	}))
	require.NoError(t, rep.SaveInspection(ctx, &ds.Inspection{
		VesselID: beluga.ID, Location: "Brest",
		InspectionDate: ds.NewDate(2024, time.March, 1), PermitExpiration: ds.NewDate(2026, time.March, 1),
	}))
	expired := ds.NewDate(2026, time.March, 9)
	require.NoError(t, rep.SaveDocument(ctx, &ds.Document{
		VesselID: aurora.ID, DocType: "Navigation permit",
		IssueDate: ds.NewDate(2021, time.March, 9), ExpirationDate: &expired,
	}))
	require.NoError(t, rep.SaveDocument(ctx, &ds.Document{
		VesselID: aurora.ID, DocType: "Radio licence", IssueDate: ds.NewDate(2020, time.June, 1),
	}))
	return aurora, beluga
}

func TestAlertSummary(t *testing.T) {
	rep, _ := repotest.New(t)
	aurora, beluga := seedAlerts(t, rep)

	s, err := rep.AlertSummary(context.Background(), alertDay)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Expired)
	assert.Equal(t, 1, s.Soon)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 1, s.Valid)

	require.Len(t, s.ExpiredItems, 2)
	assert.Equal(t, ds.ExpiredItem{
		VesselID: beluga.ID, VesselName: "Beluga", Document: "Inspection (Brest)", Date: "2026-03-01", AlertType: "expired",
	}, s.ExpiredItems[0])
	assert.Equal(t, "Document (Navigation permit)", s.ExpiredItems[1].Document)
	assert.Equal(t, "Aurora", s.ExpiredItems[1].VesselName)

	require.Len(t, s.SoonItems, 1)
	assert.Equal(t, ds.SoonItem{
		VesselID: aurora.ID, Vessel: "Aurora", Type: "Insurance", ExpiresOn: "2026-04-09", AlertType: "soon",
	}, s.SoonItems[0])

	require.Len(t, s.RecentVessels, 2)
	assert.Equal(t, beluga.ID, s.RecentVessels[0].ID)
	assert.Equal(t, "AU-1", s.RecentVessels[1].Registration)
}

func TestAlertSummaryIsStable(t *testing.T) {
	rep, _ := repotest.New(t)
	seedAlerts(t, rep)
	ctx := context.Background()

	first, err := rep.AlertSummary(ctx, alertDay)
	require.NoError(t, err)
	second, err := rep.AlertSummary(ctx, alertDay)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAlertSummaryEmpty(t *testing.T) {
	rep, _ := repotest.New(t)

	s, err := rep.AlertSummary(context.Background(), alertDay)
	require.NoError(t, err)
	assert.Zero(t, s.Total)
	assert.NotNil(t, s.ExpiredItems)
	assert.NotNil(t, s.SoonItems)
	assert.NotNil(t, s.RecentVessels)
}

func TestAlertSummaryRecentVesselsLimit(t *testing.T) {
	rep, _ := repotest.New(t)
	total := repository.RecentVesselCount + 2
	var last ds.Vessel
	for i := 1; i <= total; i++ {
		last = seedVessel(t, rep, fmt.Sprintf("Vessel %d", i), fmt.Sprintf("REG-%d", i))
	}

	s, err := rep.AlertSummary(context.Background(), alertDay)
	require.NoError(t, err)
	require.Len(t, s.RecentVessels, repository.RecentVesselCount)
	assert.Equal(t, last.ID, s.RecentVessels[0].ID)
}
