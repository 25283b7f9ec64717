package repository

import (
	"context"
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/storage"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// MetaPatch holds the optional parts of a metadata update. A nil Value keeps
// the stored value when it still fits the resulting kind.
type MetaPatch struct {
	Kind  *ds.MetaKind
	Name  *string
	Value ds.MetaValue
}

func (r *Repository) ListMetaFields(ctx context.Context, vesselID *int, kind *ds.MetaKind) ([]ds.MetaField, error) {
	q := r.db.WithContext(ctx)
	if vesselID != nil {
		q = q.Where("vessel_id = ?", *vesselID)
	}
	if kind != nil {
		q = q.Where("kind = ?", *kind)
	}
	var fields []ds.MetaField
	if err := q.Order("vessel_id, name").Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

func (r *Repository) GetMetaField(ctx context.Context, id int) (ds.MetaField, error) {
	return first[ds.MetaField](ctx, r.db, id, "metadata field")
}

func checkMetaName(ctx context.Context, tx *gorm.DB, vesselID int, name string, excludeID int) error {
	var count int64
	err := tx.WithContext(ctx).Model(&ds.MetaField{}).
		Where("vessel_id = ? AND name = ? AND id <> ?", vesselID, name, excludeID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("metadata field %q on vessel %d: %w", name, vesselID, ds.ErrDuplicateKey)
	}
	return nil
}

// storeValue uploads v when it carries file content and returns the value to
// assign along with the new blob reference (empty when nothing was uploaded).
func (r *Repository) storeValue(ctx context.Context, vesselID int, v ds.MetaValue) (ds.MetaValue, string, error) {
	up, ok := v.(*ds.Upload)
	if !ok {
		return v, "", nil
	}
	name := storage.ObjectName(fmt.Sprintf("vessels/%d/metadata", vesselID), up.Filename)
	ref, err := r.blobs.Put(ctx, name, up.Content, up.Size, up.ContentType)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ds.ErrStorage, err)
	}
	return ds.BlobRef(ref), ref, nil
}

// CreateMetaField adds a typed field to a vessel. File kinds require an
// upload, which is stored before the row is inserted.
func (r *Repository) CreateMetaField(ctx context.Context, vesselID int, kind ds.MetaKind, name string, value ds.MetaValue) (ds.MetaField, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ds.MetaField{}, fmt.Errorf("metadata name is required: %w", ds.ErrInvalidPayload)
	}
	if err := exists[ds.Vessel](ctx, r.db, vesselID, "vessel"); err != nil {
		return ds.MetaField{}, err
	}
	if err := ds.CheckValue(kind, value); err != nil {
		return ds.MetaField{}, err
	}
	if err := checkMetaName(ctx, r.db, vesselID, name, 0); err != nil {
		return ds.MetaField{}, err
	}

	stored, ref, err := r.storeValue(ctx, vesselID, value)
	if err != nil {
		return ds.MetaField{}, err
	}
	field := ds.MetaField{VesselID: vesselID, Kind: kind, Name: name}
	field.Assign(stored)
	if field.ValueText == nil && !kind.IsFile() {
		empty := ""
		field.ValueText = &empty
	}

	if err := r.db.WithContext(ctx).Omit("Vessel").Create(&field).Error; err != nil {
		r.removeBlobs(ctx, ref)
		return ds.MetaField{}, wrapErr(err, fmt.Sprintf("metadata field %q on vessel %d", name, vesselID), 0)
	}
	return field, nil
}

// UpdateMetaField merges patch into field id. The previous blob is released
// once the row no longer references it.
func (r *Repository) UpdateMetaField(ctx context.Context, id int, patch MetaPatch) (ds.MetaField, error) {
	current, err := r.GetMetaField(ctx, id)
	if err != nil {
		return ds.MetaField{}, err
	}

	next := current
	if patch.Kind != nil {
		next.Kind = *patch.Kind
	}
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
		if next.Name == "" {
			return ds.MetaField{}, fmt.Errorf("metadata name is required: %w", ds.ErrInvalidPayload)
		}
	}

	value := patch.Value
	if value == nil {
		switch {
		case next.Kind.IsFile() && current.Kind.IsFile() && current.File() != "":
			value = current.File()
		case next.Kind.IsFile():
			// nil fails the check below with the file hint
		case current.Kind.IsFile():
			value = ds.TextValue("")
		default:
			value = ds.TextValue(current.Text())
		}
	}
	if err := ds.CheckValue(next.Kind, value); err != nil {
		return ds.MetaField{}, err
	}
	if next.Name != current.Name {
		if err := checkMetaName(ctx, r.db, next.VesselID, next.Name, id); err != nil {
			return ds.MetaField{}, err
		}
	}

	stored, ref, err := r.storeValue(ctx, next.VesselID, value)
	if err != nil {
		return ds.MetaField{}, err
	}
	next.Assign(stored)
	next.Vessel = nil

	if err := r.db.WithContext(ctx).Omit("Vessel").Save(&next).Error; err != nil {
		r.removeBlobs(ctx, ref)
		return ds.MetaField{}, wrapErr(err, fmt.Sprintf("metadata field %q on vessel %d", next.Name, next.VesselID), id)
	}
	if old := current.File(); old != "" && old != next.File() {
		r.removeBlobs(ctx, string(old))
	}
	return next, nil
}

// DeleteMetaField removes the row and its blob together: if the blob cannot
// be removed the row is kept.
func (r *Repository) DeleteMetaField(ctx context.Context, id int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		field, err := first[ds.MetaField](ctx, tx, id, "metadata field")
		if err != nil {
			return err
		}
		if err := tx.Delete(&ds.MetaField{}, id).Error; err != nil {
			return err
		}
		if ref := field.File(); ref != "" {
			if err := r.blobs.Remove(ctx, string(ref)); err != nil {
				return fmt.Errorf("%w: %v", ds.ErrStorage, err)
			}
		}
		return nil
	})
}

// MetaFieldDownloadURL resolves the address of the file held by field id.
func (r *Repository) MetaFieldDownloadURL(ctx context.Context, id int) (string, error) {
	field, err := r.GetMetaField(ctx, id)
	if err != nil {
		return "", err
	}
	if !field.Kind.IsFile() {
		return "", fmt.Errorf("metadata field %d is %s, not a file: %w", id, field.Kind, ds.ErrInvalidPayload)
	}
	ref := field.File()
	if ref == "" {
		return "", fmt.Errorf("metadata field %d has no file: %w", id, ds.ErrNotFound)
	}
	url, err := r.blobs.URL(string(ref))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ds.ErrStorage, err)
	}
	return url, nil
}
