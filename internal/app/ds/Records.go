package ds

import "gorm.io/datatypes"

type Activity struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:name;uniqueIndex;not null" json:"name" binding:"required"`
}

func (Activity) TableName() string {
	return "activities"
}

type Insurer struct {
	ID   int    `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:name;uniqueIndex;not null" json:"name" binding:"required"`

	Insurances []Insurance `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Insurer) TableName() string {
	return "insurers"
}

// Insurance links a vessel to an insurer over a coverage period.
type Insurance struct {
	ID        int            `gorm:"primaryKey"`
	VesselID  int            `gorm:"column:vessel_id;index;not null"`
	InsurerID int            `gorm:"column:insurer_id;index;not null"`
	StartDate datatypes.Date `gorm:"column:start_date;not null"`
	EndDate   datatypes.Date `gorm:"column:end_date;not null"`

	Vessel  *Vessel
	Insurer *Insurer
}

func (Insurance) TableName() string {
	return "insurances"
}

type Engine struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	VesselID int    `gorm:"column:vessel_id;index;not null" json:"vessel_id" binding:"required"`
	Name     string `gorm:"column:name;not null" json:"name" binding:"required"`
	Power    string `gorm:"column:power" json:"power"`
}

func (Engine) TableName() string {
	return "engines"
}

type Inspection struct {
	ID               int            `gorm:"primaryKey"`
	VesselID         int            `gorm:"column:vessel_id;index;not null"`
	InspectionDate   datatypes.Date `gorm:"column:inspection_date;not null"`
	PermitExpiration datatypes.Date `gorm:"column:permit_expiration;not null"`
	Location         string         `gorm:"column:location"`

	Vessel *Vessel
}

func (Inspection) TableName() string {
	return "inspections"
}

// Document is a compliance record; ExpirationDate may be unknown.
type Document struct {
	ID             int             `gorm:"primaryKey"`
	VesselID       int             `gorm:"column:vessel_id;index;not null"`
	DocType        string          `gorm:"column:doc_type;not null"`
	IssueDate      datatypes.Date  `gorm:"column:issue_date;not null"`
	ExpirationDate *datatypes.Date `gorm:"column:expiration_date"`

	Vessel *Vessel
}

func (Document) TableName() string {
	return "documents"
}
