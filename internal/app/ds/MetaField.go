package ds

import (
	"io"
	"strings"

	"gorm.io/gorm"
)

type MetaKind string

const (
	KindText    MetaKind = "TEXT"
	KindNumber  MetaKind = "NUMBER"
	KindDate    MetaKind = "DATE"
	KindTime    MetaKind = "TIME"
	KindBoolean MetaKind = "BOOLEAN"
	KindURL     MetaKind = "URL"
	KindFile    MetaKind = "FILE"
	KindImage   MetaKind = "IMAGE"
)

// MetaKinds is also the display order of the vessel sheet.
var MetaKinds = []MetaKind{
	KindText, KindNumber, KindDate, KindTime, KindBoolean, KindURL, KindFile, KindImage,
}

func (k MetaKind) Valid() bool {
	return k.Priority() < 99
}

// IsFile reports whether values of kind k live in the file slot.
func (k MetaKind) IsFile() bool {
	return k == KindFile || k == KindImage
}

func (k MetaKind) Priority() int {
	for i, known := range MetaKinds {
		if known == k {
			return i + 1
		}
	}
	return 99
}

// MetaValue is one of TextValue, *Upload or BlobRef.
type MetaValue interface {
	metaValue()
}

// TextValue is the string form of a TEXT, NUMBER, DATE, TIME, BOOLEAN or URL value.
type TextValue string

// BlobRef points at content held by the blob store.
type BlobRef string

// Upload is file content received from a client, not yet stored.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

func (TextValue) metaValue() {}
func (BlobRef) metaValue()   {}
func (*Upload) metaValue()   {}

// CheckValue validates that v may be stored in a field of the given kind.
// A nil value is only acceptable for non-file kinds.
func CheckValue(kind MetaKind, v MetaValue) error {
	if !kind.Valid() {
		return invalidPayload("", "unknown metadata kind %q", kind)
	}
	switch val := v.(type) {
	case *Upload:
		if !kind.IsFile() {
			return invalidPayload(HintTextKind, "a %s field cannot hold a file", kind)
		}
		if val == nil || val.Content == nil || val.Size <= 0 {
			return invalidPayload(HintFileKind, "a %s field requires a non-empty file", kind)
		}
	case TextValue, nil:
		if kind.IsFile() {
			return invalidPayload(HintFileKind, "a %s field requires a file", kind)
		}
	case BlobRef:
		if !kind.IsFile() {
			return invalidPayload(HintTextKind, "a %s field cannot reference a file", kind)
		}
	}
	return nil
}

// MetaField is a typed, named attribute of a vessel.
// Exactly one of ValueText/FileRef is meaningful, chosen by Kind.
type MetaField struct {
	ID        int      `gorm:"primaryKey"`
	VesselID  int      `gorm:"column:vessel_id;not null;uniqueIndex:idx_vessel_meta_name"`
	Kind      MetaKind `gorm:"column:kind;not null;default:TEXT"`
	Name      string   `gorm:"column:name;not null;uniqueIndex:idx_vessel_meta_name"`
	ValueText *string  `gorm:"column:value_text"`
	FileRef   *string  `gorm:"column:file_ref"`

	Vessel *Vessel
}

func (MetaField) TableName() string {
	return "meta_fields"
}

// BeforeSave clears the slot that does not belong to the kind.
func (m *MetaField) BeforeSave(tx *gorm.DB) error {
	m.normalize()
	return nil
}

func (m *MetaField) normalize() {
	if m.Kind.IsFile() {
		m.ValueText = nil
		if m.FileRef != nil && *m.FileRef == "" {
			m.FileRef = nil
		}
	} else {
		m.FileRef = nil
	}
}

// Assign stores a text value or a blob reference and clears the other slot.
func (m *MetaField) Assign(v MetaValue) {
	switch val := v.(type) {
	case TextValue:
		s := string(val)
		m.ValueText = &s
		m.FileRef = nil
	case BlobRef:
		ref := string(val)
		m.FileRef = &ref
		m.ValueText = nil
	case nil:
		m.ValueText = nil
		m.FileRef = nil
	}
	m.normalize()
}

// Text returns the text slot, empty for file kinds.
func (m MetaField) Text() string {
	if m.Kind.IsFile() || m.ValueText == nil {
		return ""
	}
	return *m.ValueText
}

// File returns the file slot, empty for text kinds.
func (m MetaField) File() BlobRef {
	if !m.Kind.IsFile() || m.FileRef == nil {
		return ""
	}
	return BlobRef(*m.FileRef)
}

// Stored returns the populated slot: BlobRef for file kinds (nil when none),
// TextValue otherwise.
func (m MetaField) Stored() MetaValue {
	if m.Kind.IsFile() {
		if ref := m.File(); ref != "" {
			return ref
		}
		return nil
	}
	return TextValue(m.Text())
}

// Display returns the value shown to API clients: the resolved address of
// the stored file for file kinds, the raw text otherwise.
func (m MetaField) Display(resolve func(ref string) (string, error)) (string, error) {
	if !m.Kind.IsFile() {
		return m.Text(), nil
	}
	ref := m.File()
	if ref == "" {
		return "", nil
	}
	return resolve(string(ref))
}

var (
	truthy = map[string]bool{"true": true, "1": true, "yes": true, "oui": true, "vrai": true}
	falsy  = map[string]bool{"false": true, "0": true, "no": true, "non": true, "faux": true}
)

// BooleanLabel maps common boolean spellings to Yes/No; anything else is returned as is.
func BooleanLabel(s string) string {
	l := strings.ToLower(s)
	switch {
	case truthy[l]:
		return "Yes"
	case falsy[l]:
		return "No"
	}
	return s
}
