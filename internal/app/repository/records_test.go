package repository_test

import (
	"context"
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/repository/repotest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsurancesByStatus(t *testing.T) {
	rep, _ := repotest.New(t)
	seedAlerts(t, rep)
	ctx := context.Background()

	soon, err := rep.InsurancesByStatus(ctx, alertDay, ds.StatusSoon)
	require.NoError(t, err)
	require.Len(t, soon, 1)
	require.NotNil(t, soon[0].Insurer)
	assert.Equal(t, "Mutuelle du Littoral", soon[0].Insurer.Name)
	assert.Equal(t, "Aurora", soon[0].Vessel.Name)

	expired, err := rep.InsurancesByStatus(ctx, alertDay, ds.StatusExpired)
	require.NoError(t, err)
	assert.Empty(t, expired)
	assert.NotNil(t, expired)
}

func TestDocumentsByStatus(t *testing.T) {
	rep, _ := repotest.New(t)
	seedAlerts(t, rep)
	ctx := context.Background()

	expired, err := rep.DocumentsByStatus(ctx, alertDay, ds.StatusExpired)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "Navigation permit", expired[0].DocType)

	unknown, err := rep.DocumentsByStatus(ctx, alertDay, ds.StatusUnknown)
	require.NoError(t, err)
	require.Len(t, unknown, 1)
	assert.Equal(t, "Radio licence", unknown[0].DocType)
}

func TestInspectionsByStatus(t *testing.T) {
	rep, _ := repotest.New(t)
	seedAlerts(t, rep)

	expired, err := rep.InspectionsByStatus(context.Background(), alertDay, ds.StatusExpired)
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, "Brest", expired[0].Location)

	// ten days earlier the same permit was only about to expire
	soon, err := rep.InspectionsByStatus(context.Background(), alertDay.AddDate(0, 0, -10), ds.StatusSoon)
	require.NoError(t, err)
	assert.Len(t, soon, 1)
}

func TestSaveInsuranceReferences(t *testing.T) {
	rep, _ := repotest.New(t)
	ctx := context.Background()
	v := seedVessel(t, rep, "Aurora", "AU-1")

	err := rep.SaveInsurance(ctx, &ds.Insurance{
		VesselID: v.ID, InsurerID: 99, StartDate: ds.NewDate(2026, 1, 1), EndDate: ds.NewDate(2027, 1, 1),
	})
	assert.ErrorIs(t, err, ds.ErrNotFound)

	err = rep.SaveInsurance(ctx, &ds.Insurance{ID: 12, VesselID: v.ID, InsurerID: 1})
	assert.ErrorIs(t, err, ds.ErrNotFound)
}

func TestSaveDocumentUpdate(t *testing.T) {
	rep, _ := repotest.New(t)
	ctx := context.Background()
	v := seedVessel(t, rep, "Aurora", "AU-1")

	doc := ds.Document{VesselID: v.ID, DocType: "Permit", IssueDate: ds.NewDate(2025, time.May, 2)}
	require.NoError(t, rep.SaveDocument(ctx, &doc))
	require.NotNil(t, doc.Vessel)
	assert.Equal(t, "Aurora", doc.Vessel.Name)

	exp := ds.NewDate(2030, time.May, 2)
	doc.ExpirationDate = &exp
	doc.Vessel = nil
	require.NoError(t, rep.SaveDocument(ctx, &doc))

	got, err := rep.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "2030-05-02", ds.FormatOptionalDate(got.ExpirationDate))
}

func TestEngineLifecycle(t *testing.T) {
	rep, _ := repotest.New(t)
	ctx := context.Background()
	v := seedVessel(t, rep, "Aurora", "AU-1")

	engine := ds.Engine{VesselID: v.ID, Name: "Volvo Penta D4", Power: "300"}
	require.NoError(t, rep.SaveEngine(ctx, &engine))

	engines, err := rep.ListEngines(ctx, &v.ID)
	require.NoError(t, err)
	require.Len(t, engines, 1)

	require.NoError(t, rep.DeleteEngine(ctx, engine.ID))
	assert.ErrorIs(t, rep.DeleteEngine(ctx, engine.ID), ds.ErrNotFound)

	err = rep.SaveEngine(ctx, &ds.Engine{VesselID: 404, Name: "Ghost"})
	assert.ErrorIs(t, err, ds.ErrNotFound)
}

func TestCatalogDuplicates(t *testing.T) {
	rep, _ := repotest.New(t)
	ctx := context.Background()

	require.NoError(t, rep.CreateActivity(ctx, &ds.Activity{Name: "Fishing"}))
	assert.ErrorIs(t, rep.CreateActivity(ctx, &ds.Activity{Name: "Fishing"}), ds.ErrDuplicateKey)

	require.NoError(t, rep.CreateInsurer(ctx, &ds.Insurer{Name: "Mutuelle"}))
	assert.ErrorIs(t, rep.CreateInsurer(ctx, &ds.Insurer{Name: "Mutuelle"}), ds.ErrDuplicateKey)
}

func TestDeleteInsurerRemovesCoverage(t *testing.T) {
	rep, _ := repotest.New(t)
	seedAlerts(t, rep)
	ctx := context.Background()

	insurers, err := rep.ListInsurers(ctx)
	require.NoError(t, err)
	require.Len(t, insurers, 1)

	require.NoError(t, rep.DeleteInsurer(ctx, insurers[0].ID))
	insurances, err := rep.ListInsurances(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, insurances)
}
