package repository

import (
	"context"
	"fleet_registry/internal/app/ds"
	"fmt"

	"gorm.io/gorm"
)

func (r *Repository) ListOwners(ctx context.Context) ([]ds.Owner, error) {
	var owners []ds.Owner
	err := r.db.WithContext(ctx).Order("id").Find(&owners).Error
	return owners, err
}

func (r *Repository) GetOwner(ctx context.Context, id int) (ds.Owner, error) {
	return first[ds.Owner](ctx, r.db, id, "owner")
}

func (r *Repository) CreateOwner(ctx context.Context, o *ds.Owner) error {
	o.ID = 0
	if o.Category == "" {
		o.Category = ds.OwnerIndividual
	}
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *Repository) UpdateOwner(ctx context.Context, id int, o *ds.Owner) error {
	if err := exists[ds.Owner](ctx, r.db, id, "owner"); err != nil {
		return err
	}
	if o.Category == "" {
		o.Category = ds.OwnerIndividual
	}
	o.ID = id
	return r.db.WithContext(ctx).Model(&ds.Owner{ID: id}).Updates(map[string]any{
		"name":     o.Name,
		"address":  o.Address,
		"contact":  o.Contact,
		"category": o.Category,
	}).Error
}

// DeleteOwner detaches the owner's vessels before removing it.
func (r *Repository) DeleteOwner(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists[ds.Owner](ctx, tx, id, "owner"); err != nil {
			return err
		}
		if err := tx.Model(&ds.Vessel{}).Where("owner_id = ?", id).Update("owner_id", nil).Error; err != nil {
			return fmt.Errorf("detach vessels of owner %d: %w", id, err)
		}
		return tx.Delete(&ds.Owner{}, id).Error
	})
}
