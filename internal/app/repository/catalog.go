package repository

import (
	"context"
	"fleet_registry/internal/app/ds"

	"gorm.io/gorm"
)

func (r *Repository) ListActivities(ctx context.Context) ([]ds.Activity, error) {
	var activities []ds.Activity
	err := r.db.WithContext(ctx).Order("name").Find(&activities).Error
	return activities, err
}

func (r *Repository) GetActivity(ctx context.Context, id int) (ds.Activity, error) {
	return first[ds.Activity](ctx, r.db, id, "activity")
}

func (r *Repository) CreateActivity(ctx context.Context, a *ds.Activity) error {
	a.ID = 0
	return wrapErr(r.db.WithContext(ctx).Create(a).Error, "activity "+a.Name, 0)
}

func (r *Repository) UpdateActivity(ctx context.Context, id int, a *ds.Activity) error {
	if err := exists[ds.Activity](ctx, r.db, id, "activity"); err != nil {
		return err
	}
	a.ID = id
	err := r.db.WithContext(ctx).Model(&ds.Activity{ID: id}).Update("name", a.Name).Error
	return wrapErr(err, "activity "+a.Name, id)
}

func (r *Repository) DeleteActivity(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[ds.Activity](ctx, tx, id, "activity"); err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM vessel_activities WHERE activity_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&ds.Activity{}, id).Error
	})
}

func (r *Repository) ListInsurers(ctx context.Context) ([]ds.Insurer, error) {
	var insurers []ds.Insurer
	err := r.db.WithContext(ctx).Order("name").Find(&insurers).Error
	return insurers, err
}

func (r *Repository) GetInsurer(ctx context.Context, id int) (ds.Insurer, error) {
	return first[ds.Insurer](ctx, r.db, id, "insurer")
}

func (r *Repository) CreateInsurer(ctx context.Context, i *ds.Insurer) error {
	i.ID = 0
	return wrapErr(r.db.WithContext(ctx).Omit("Insurances").Create(i).Error, "insurer "+i.Name, 0)
}

func (r *Repository) UpdateInsurer(ctx context.Context, id int, i *ds.Insurer) error {
	if err := exists[ds.Insurer](ctx, r.db, id, "insurer"); err != nil {
		return err
	}
	i.ID = id
	err := r.db.WithContext(ctx).Model(&ds.Insurer{ID: id}).Update("name", i.Name).Error
	return wrapErr(err, "insurer "+i.Name, id)
}

// DeleteInsurer also removes the insurer's coverage records.
func (r *Repository) DeleteInsurer(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[ds.Insurer](ctx, tx, id, "insurer"); err != nil {
			return err
		}
		if err := tx.Where("insurer_id = ?", id).Delete(&ds.Insurance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ds.Insurer{}, id).Error
	})
}
