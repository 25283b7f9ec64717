package repository

import (
	"context"
	"fleet_registry/internal/app/ds"
	"time"

	"golang.org/x/sync/errgroup"
)

// RecentVesselCount is how many newly registered vessels the summary lists.
const RecentVesselCount = 5

// AlertSummary loads every dated record and buckets it relative to today.
// It only reads.
func (r *Repository) AlertSummary(ctx context.Context, today time.Time) (ds.AlertSummary, error) {
	var (
		insurances  []ds.Insurance
		inspections []ds.Inspection
		documents   []ds.Document
		recent      []ds.Vessel
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		insurances, err = listByVessel[ds.Insurance](gctx, r.db, nil, "end_date, id", "Vessel")
		return err
	})
	g.Go(func() error {
		var err error
		inspections, err = listByVessel[ds.Inspection](gctx, r.db, nil, "permit_expiration, id", "Vessel")
		return err
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Preload("Vessel").
			Where("expiration_date IS NOT NULL").
			Order("expiration_date, id").
			Find(&documents).Error
	})
	g.Go(func() error {
		var err error
		recent, err = r.RecentVessels(gctx, RecentVesselCount)
		return err
	})
	if err := g.Wait(); err != nil {
		return ds.AlertSummary{}, err
	}

	return ds.BuildAlertSummary(today, insurances, inspections, documents, recent), nil
}
