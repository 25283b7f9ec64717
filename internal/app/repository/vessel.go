package repository

import (
	"context"
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/storage"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// VesselFilter narrows vessel listings and filtered exports.
type VesselFilter struct {
	Search      string
	Types       []string
	OwnerIDs    []int
	ActivityIDs []int
	YearMin     *int
	YearMax     *int
}

// likeEscaper makes the search text match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (f VesselFilter) apply(q *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		q = q.Where(`(LOWER(vessels.name) LIKE ? ESCAPE '\' OR LOWER(vessels.registration) LIKE ? ESCAPE '\'
			OR LOWER(vessels.vessel_type) LIKE ? ESCAPE '\' OR LOWER(vessels.build_place) LIKE ? ESCAPE '\'
			OR LOWER(vessels.mmsi) LIKE ? ESCAPE '\'
			OR vessels.owner_id IN (SELECT id FROM owners WHERE LOWER(name) LIKE ? ESCAPE '\'))`,
			like, like, like, like, like, like)
	}
	if len(f.Types) > 0 {
		q = q.Where("vessels.vessel_type IN ?", f.Types)
	}
	if len(f.OwnerIDs) > 0 {
		q = q.Where("vessels.owner_id IN ?", f.OwnerIDs)
	}
	if len(f.ActivityIDs) > 0 {
		q = q.Where("vessels.id IN (SELECT vessel_id FROM vessel_activities WHERE activity_id IN ?)", f.ActivityIDs)
	}
	if f.YearMin != nil {
		q = q.Where("vessels.build_year >= ?", *f.YearMin)
	}
	if f.YearMax != nil {
		q = q.Where("vessels.build_year <= ?", *f.YearMax)
	}
	return q
}

var vesselDetail = []string{
	"Owner", "Activities", "Insurances", "Insurances.Insurer", "Engines", "Inspections", "Documents", "MetaFields",
}

// ListVessels returns vessels with owner and activities.
func (r *Repository) ListVessels(ctx context.Context, filter VesselFilter) ([]ds.Vessel, error) {
	var vessels []ds.Vessel
	err := filter.apply(r.db.WithContext(ctx).Model(&ds.Vessel{})).
		Preload("Owner").Preload("Activities").
		Order("vessels.id").
		Find(&vessels).Error
	if err != nil {
		return nil, err
	}
	return vessels, nil
}

// ListVesselsForExport loads every relation the CSV export needs.
func (r *Repository) ListVesselsForExport(ctx context.Context, filter VesselFilter) ([]ds.Vessel, error) {
	q := filter.apply(r.db.WithContext(ctx).Model(&ds.Vessel{}))
	for _, p := range vesselDetail {
		q = q.Preload(p)
	}
	var vessels []ds.Vessel
	if err := q.Order("vessels.id").Find(&vessels).Error; err != nil {
		return nil, err
	}
	return vessels, nil
}

func (r *Repository) GetVessel(ctx context.Context, id int) (ds.Vessel, error) {
	return first[ds.Vessel](ctx, r.db, id, "vessel", vesselDetail...)
}

// RecentVessels returns the n most recently registered vessels.
func (r *Repository) RecentVessels(ctx context.Context, n int) ([]ds.Vessel, error) {
	var vessels []ds.Vessel
	err := r.db.WithContext(ctx).Order("id DESC").Limit(n).Find(&vessels).Error
	return vessels, err
}

func (r *Repository) checkVesselRefs(ctx context.Context, tx *gorm.DB, v *ds.Vessel, activityIDs []int) ([]ds.Activity, error) {
	if !v.HullMaterial.Valid() {
		return nil, fmt.Errorf("unknown hull material %q: %w", v.HullMaterial, ds.ErrInvalidPayload)
	}
	if v.OwnerID != nil {
		if err := exists[ds.Owner](ctx, tx, *v.OwnerID, "owner"); err != nil {
			return nil, err
		}
	}
	if activityIDs == nil {
		return nil, nil
	}
	activities := []ds.Activity{}
	if len(activityIDs) > 0 {
		if err := tx.WithContext(ctx).Where("id IN ?", activityIDs).Find(&activities).Error; err != nil {
			return nil, err
		}
		if len(activities) != len(uniqueInts(activityIDs)) {
			return nil, fmt.Errorf("activity in %v: %w", activityIDs, ds.ErrNotFound)
		}
	}
	return activities, nil
}

// CreateVessel inserts v and links it to activityIDs.
func (r *Repository) CreateVessel(ctx context.Context, v *ds.Vessel, activityIDs []int) error {
	v.ID = 0
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		activities, err := r.checkVesselRefs(ctx, tx, v, activityIDs)
		if err != nil {
			return err
		}
		v.Activities = nil
		if err := tx.Omit("Owner", "Activities").Create(v).Error; err != nil {
			return wrapErr(err, "vessel registration "+v.Registration, v.ID)
		}
		if len(activities) > 0 {
			if err := tx.Model(v).Association("Activities").Replace(activities); err != nil {
				return err
			}
		}
		v.Activities = activities
		return nil
	})
}

// UpdateVessel overwrites the scalar fields of vessel id. A nil activityIDs
// leaves activities untouched. The photo reference is kept.
func (r *Repository) UpdateVessel(ctx context.Context, id int, v *ds.Vessel, activityIDs []int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := first[ds.Vessel](ctx, tx, id, "vessel")
		if err != nil {
			return err
		}
		activities, err := r.checkVesselRefs(ctx, tx, v, activityIDs)
		if err != nil {
			return err
		}
		v.ID = id
		v.PhotoRef = current.PhotoRef
		err = tx.Model(&ds.Vessel{ID: id}).Updates(map[string]any{
			"name":          v.Name,
			"registration":  v.Registration,
			"imo":           v.IMO,
			"mmsi":          v.MMSI,
			"vessel_type":   v.VesselType,
			"build_place":   v.BuildPlace,
			"build_year":    v.BuildYear,
			"hull_material": v.HullMaterial,
			"passengers":    v.Passengers,
			"crew":          v.Crew,
			"owner_id":      v.OwnerID,
		}).Error
		if err != nil {
			return wrapErr(err, "vessel registration "+v.Registration, id)
		}
		if activityIDs != nil {
			if err := tx.Model(&ds.Vessel{ID: id}).Association("Activities").Replace(activities); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetVesselPhoto uploads a new photo, then drops the previous one once the
// vessel row points at the new object.
func (r *Repository) SetVesselPhoto(ctx context.Context, id int, upload *ds.Upload) (string, error) {
	if upload == nil || upload.Content == nil || upload.Size <= 0 {
		return "", fmt.Errorf("empty photo: %w", ds.ErrInvalidPayload)
	}
	vessel, err := first[ds.Vessel](ctx, r.db, id, "vessel")
	if err != nil {
		return "", err
	}
	ref, err := r.blobs.Put(ctx, storage.ObjectName("vessels/photos", upload.Filename), upload.Content, upload.Size, upload.ContentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ds.ErrStorage, err)
	}
	err = r.db.WithContext(ctx).Model(&ds.Vessel{ID: id}).Update("photo_ref", ref).Error
	if err != nil {
		r.removeBlobs(ctx, ref)
		return "", err
	}
	r.removeBlobs(ctx, vessel.PhotoRef)
	return ref, nil
}

// DeleteVessel removes the vessel with every dependent record, then its blobs.
func (r *Repository) DeleteVessel(ctx context.Context, id int) error {
	var refs []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		vessel, err := first[ds.Vessel](ctx, tx, id, "vessel")
		if err != nil {
			return err
		}
		refs = append(refs, vessel.PhotoRef)
		var fileRefs []string
		if err := tx.Model(&ds.MetaField{}).Where("vessel_id = ? AND file_ref IS NOT NULL", id).
			Pluck("file_ref", &fileRefs).Error; err != nil {
			return err
		}
		refs = append(refs, fileRefs...)

		for _, child := range []any{&ds.MetaField{}, &ds.Document{}, &ds.Inspection{}, &ds.Engine{}, &ds.Insurance{}} {
			if err := tx.Where("vessel_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&vessel).Association("Activities").Clear(); err != nil {
			return err
		}
		return tx.Delete(&ds.Vessel{}, id).Error
	})
	if err != nil {
		return err
	}
	r.removeBlobs(ctx, refs...)
	return nil
}

func uniqueInts(ids []int) []int {
	seen := map[int]bool{}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
