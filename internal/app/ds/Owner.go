package ds

type OwnerCategory string

const (
	OwnerIndividual  OwnerCategory = "individual"
	OwnerCompany     OwnerCategory = "company"
	OwnerGovernment  OwnerCategory = "government"
	OwnerAssociation OwnerCategory = "association"
	OwnerOther       OwnerCategory = "other"
)

var OwnerCategories = []OwnerCategory{
	OwnerIndividual, OwnerCompany, OwnerGovernment, OwnerAssociation, OwnerOther,
}

var ownerCategoryLabels = map[OwnerCategory]string{
	OwnerIndividual:  "Individual",
	OwnerCompany:     "Company",
	OwnerGovernment:  "Government",
	OwnerAssociation: "Association",
	OwnerOther:       "Other",
}

// Label returns the display label; unknown categories pass through.
func (c OwnerCategory) Label() string {
	if l, ok := ownerCategoryLabels[c]; ok {
		return l
	}
	if c == "" {
		return "Unspecified"
	}
	return string(c)
}

type Owner struct {
	ID       int           `gorm:"primaryKey" json:"id"`
	Name     string        `gorm:"column:name;not null" json:"name" binding:"required"`
	Address  string        `gorm:"column:address" json:"address"`
	Contact  string        `gorm:"column:contact" json:"contact"`
	Category OwnerCategory `gorm:"column:category;default:individual" json:"category" binding:"omitempty,oneof=individual company government association other"`
}

func (Owner) TableName() string {
	return "owners"
}
