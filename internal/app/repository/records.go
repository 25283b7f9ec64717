package repository

import (
	"context"
	"fleet_registry/internal/app/ds"
	"time"

	"gorm.io/gorm"
)

func listByVessel[T any](ctx context.Context, db *gorm.DB, vesselID *int, order string, preload ...string) ([]T, error) {
	q := db.WithContext(ctx)
	for _, p := range preload {
		q = q.Preload(p)
	}
	if vesselID != nil {
		q = q.Where("vessel_id = ?", *vesselID)
	}
	var out []T
	if err := q.Order(order).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func byStatus[T any](items []T, want ds.ExpirationStatus, classify func(T) ds.ExpirationStatus) []T {
	out := []T{}
	for _, it := range items {
		if classify(it) == want {
			out = append(out, it)
		}
	}
	return out
}

// Insurance coverage

func (r *Repository) ListInsurances(ctx context.Context, vesselID *int) ([]ds.Insurance, error) {
	return listByVessel[ds.Insurance](ctx, r.db, vesselID, "end_date, id", "Insurer", "Vessel")
}

// InsurancesByStatus filters coverage records by their state relative to today.
func (r *Repository) InsurancesByStatus(ctx context.Context, today time.Time, status ds.ExpirationStatus) ([]ds.Insurance, error) {
	all, err := r.ListInsurances(ctx, nil)
	if err != nil {
		return nil, err
	}
	return byStatus(all, status, func(in ds.Insurance) ds.ExpirationStatus {
		return ds.ClassifyDate(in.EndDate, today)
	}), nil
}

func (r *Repository) GetInsurance(ctx context.Context, id int) (ds.Insurance, error) {
	return first[ds.Insurance](ctx, r.db, id, "insurance", "Insurer", "Vessel")
}

func (r *Repository) SaveInsurance(ctx context.Context, in *ds.Insurance) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.ID != 0 {
			if err := exists[ds.Insurance](ctx, tx, in.ID, "insurance"); err != nil {
				return err
			}
		}
		if err := exists[ds.Vessel](ctx, tx, in.VesselID, "vessel"); err != nil {
			return err
		}
		if err := exists[ds.Insurer](ctx, tx, in.InsurerID, "insurer"); err != nil {
			return err
		}
		if err := tx.Omit("Vessel", "Insurer").Save(in).Error; err != nil {
			return err
		}
		return tx.Preload("Insurer").Preload("Vessel").First(in, in.ID).Error
	})
}

func (r *Repository) DeleteInsurance(ctx context.Context, id int) error {
	return deleteByID[ds.Insurance](ctx, r.db, id, "insurance")
}

// Engines

func (r *Repository) ListEngines(ctx context.Context, vesselID *int) ([]ds.Engine, error) {
	return listByVessel[ds.Engine](ctx, r.db, vesselID, "id")
}

func (r *Repository) GetEngine(ctx context.Context, id int) (ds.Engine, error) {
	return first[ds.Engine](ctx, r.db, id, "engine")
}

func (r *Repository) SaveEngine(ctx context.Context, e *ds.Engine) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e.ID != 0 {
			if err := exists[ds.Engine](ctx, tx, e.ID, "engine"); err != nil {
				return err
			}
		}
		if err := exists[ds.Vessel](ctx, tx, e.VesselID, "vessel"); err != nil {
			return err
		}
		return tx.Save(e).Error
	})
}

func (r *Repository) DeleteEngine(ctx context.Context, id int) error {
	return deleteByID[ds.Engine](ctx, r.db, id, "engine")
}

// Inspections

func (r *Repository) ListInspections(ctx context.Context, vesselID *int) ([]ds.Inspection, error) {
	return listByVessel[ds.Inspection](ctx, r.db, vesselID, "permit_expiration, id", "Vessel")
}

func (r *Repository) InspectionsByStatus(ctx context.Context, today time.Time, status ds.ExpirationStatus) ([]ds.Inspection, error) {
	all, err := r.ListInspections(ctx, nil)
	if err != nil {
		return nil, err
	}
	return byStatus(all, status, func(v ds.Inspection) ds.ExpirationStatus {
		return ds.ClassifyDate(v.PermitExpiration, today)
	}), nil
}

func (r *Repository) GetInspection(ctx context.Context, id int) (ds.Inspection, error) {
	return first[ds.Inspection](ctx, r.db, id, "inspection", "Vessel")
}

func (r *Repository) SaveInspection(ctx context.Context, v *ds.Inspection) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if v.ID != 0 {
			if err := exists[ds.Inspection](ctx, tx, v.ID, "inspection"); err != nil {
				return err
			}
		}
		if err := exists[ds.Vessel](ctx, tx, v.VesselID, "vessel"); err != nil {
			return err
		}
		if err := tx.Omit("Vessel").Save(v).Error; err != nil {
			return err
		}
		return tx.Preload("Vessel").First(v, v.ID).Error
	})
}

func (r *Repository) DeleteInspection(ctx context.Context, id int) error {
	return deleteByID[ds.Inspection](ctx, r.db, id, "inspection")
}

// Documents

func (r *Repository) ListDocuments(ctx context.Context, vesselID *int) ([]ds.Document, error) {
	return listByVessel[ds.Document](ctx, r.db, vesselID, "expiration_date, id", "Vessel")
}

// DocumentsByStatus never returns documents without an expiration date
// unless status is ds.StatusUnknown.
func (r *Repository) DocumentsByStatus(ctx context.Context, today time.Time, status ds.ExpirationStatus) ([]ds.Document, error) {
	all, err := r.ListDocuments(ctx, nil)
	if err != nil {
		return nil, err
	}
	return byStatus(all, status, func(d ds.Document) ds.ExpirationStatus {
		return ds.ClassifyOptionalDate(d.ExpirationDate, today)
	}), nil
}

func (r *Repository) GetDocument(ctx context.Context, id int) (ds.Document, error) {
	return first[ds.Document](ctx, r.db, id, "document", "Vessel")
}

func (r *Repository) SaveDocument(ctx context.Context, d *ds.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if d.ID != 0 {
			if err := exists[ds.Document](ctx, tx, d.ID, "document"); err != nil {
				return err
			}
		}
		if err := exists[ds.Vessel](ctx, tx, d.VesselID, "vessel"); err != nil {
			return err
		}
		if err := tx.Omit("Vessel").Save(d).Error; err != nil {
			return err
		}
		return tx.Preload("Vessel").First(d, d.ID).Error
	})
}

func (r *Repository) DeleteDocument(ctx context.Context, id int) error {
	return deleteByID[ds.Document](ctx, r.db, id, "document")
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id int, what string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return wrapErr(gorm.ErrRecordNotFound, what, id)
	}
	return nil
}
