package ds

type HullMaterial string

const (
	HullWood       HullMaterial = "Wood"
	HullPlywood    HullMaterial = "Plywood"
	HullIron       HullMaterial = "Iron"
	HullSteel      HullMaterial = "Steel"
	HullAluminium  HullMaterial = "Aluminium"
	HullPlastic    HullMaterial = "Plastic"
	HullFiberglass HullMaterial = "Fiberglass"
	HullPolyester  HullMaterial = "Polyester"
	HullComposite  HullMaterial = "Composite"
	HullRubber     HullMaterial = "Rubber"
	HullInflatable HullMaterial = "Inflatable"
	HullTitanium   HullMaterial = "Titanium"
)

var HullMaterials = []HullMaterial{
	HullWood, HullPlywood, HullIron, HullSteel, HullAluminium, HullPlastic,
	HullFiberglass, HullPolyester, HullComposite, HullRubber, HullInflatable, HullTitanium,
}

func (h HullMaterial) Valid() bool {
	if h == "" {
		return true
	}
	for _, m := range HullMaterials {
		if m == h {
			return true
		}
	}
	return false
}

// @Schema(description="Registered vessel, root of all administrative records")
type Vessel struct {
	ID           int          `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"column:name;not null" json:"name"`
	Registration string       `gorm:"column:registration;uniqueIndex;not null" json:"registration"`
	IMO          string       `gorm:"column:imo" json:"imo"`
	MMSI         string       `gorm:"column:mmsi" json:"mmsi"`
	VesselType   string       `gorm:"column:vessel_type" json:"vessel_type"`
	BuildPlace   string       `gorm:"column:build_place" json:"build_place"`
	BuildYear    *int         `gorm:"column:build_year" json:"build_year"`
	HullMaterial HullMaterial `gorm:"column:hull_material" json:"hull_material"`
	Passengers   int          `gorm:"column:passengers;default:0" json:"passengers"`
	Crew         int          `gorm:"column:crew;default:0" json:"crew"`
	PhotoRef     string       `gorm:"column:photo_ref" json:"photo_ref"`

	OwnerID *int   `gorm:"column:owner_id;index" json:"owner_id"`
	Owner   *Owner `gorm:"constraint:OnDelete:SET NULL" json:"owner,omitempty"`

	Activities  []Activity   `gorm:"many2many:vessel_activities;constraint:OnDelete:CASCADE" json:"activities,omitempty"`
	Insurances  []Insurance  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Engines     []Engine     `gorm:"constraint:OnDelete:CASCADE" json:"engines,omitempty"`
	Inspections []Inspection `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Documents   []Document   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	MetaFields  []MetaField  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Vessel) TableName() string {
	return "vessels"
}
