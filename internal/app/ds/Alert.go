package ds

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// AlertWindowDays is the look-ahead for "expiring soon".
const AlertWindowDays = 30

type ExpirationStatus string

const (
	StatusExpired ExpirationStatus = "expired"
	StatusSoon    ExpirationStatus = "soon"
	StatusValid   ExpirationStatus = "valid"
	StatusUnknown ExpirationStatus = "unknown"
)

func (s ExpirationStatus) Label() string {
	switch s {
	case StatusExpired:
		return "Expired"
	case StatusSoon:
		return fmt.Sprintf("Expires soon (%dd)", AlertWindowDays)
	case StatusValid:
		return "Valid"
	}
	return "Unknown date"
}

// ClassifyExpiration compares calendar days: before today is expired,
// today through today+30 is soon, later is valid. nil is unknown.
func ClassifyExpiration(exp *time.Time, today time.Time) ExpirationStatus {
	if exp == nil {
		return StatusUnknown
	}
	day := Day(*exp)
	start := Day(today)
	horizon := start.AddDate(0, 0, AlertWindowDays)
	switch {
	case day.Before(start):
		return StatusExpired
	case day.After(horizon):
		return StatusValid
	}
	return StatusSoon
}

func ClassifyDate(d datatypes.Date, today time.Time) ExpirationStatus {
	t := time.Time(d)
	return ClassifyExpiration(&t, today)
}

func ClassifyOptionalDate(d *datatypes.Date, today time.Time) ExpirationStatus {
	if d == nil {
		return StatusUnknown
	}
	return ClassifyDate(*d, today)
}

type ExpiredItem struct {
	VesselID   int    `json:"navire_id"`
	VesselName string `json:"navire_nom"`
	Document   string `json:"document"`
	Date       string `json:"date"`
	AlertType  string `json:"type_alerte"`
}

type SoonItem struct {
	VesselID  int    `json:"navire_id"`
	Vessel    string `json:"navire"`
	Type      string `json:"type"`
	ExpiresOn string `json:"expire_le"`
	AlertType string `json:"type_alerte"`
}

type RecentVessel struct {
	ID           int    `json:"id"`
	Name         string `json:"nom"`
	Registration string `json:"immatriculation"`
}

// AlertSummary is computed on demand and never stored.
type AlertSummary struct {
	Expired       int            `json:"documentsExpires"`
	Soon          int            `json:"documentsBientotExpires"`
	Total         int            `json:"total_alertes"`
	Valid         int            `json:"total_valide"`
	ExpiredItems  []ExpiredItem  `json:"liste_expires"`
	RecentVessels []RecentVessel `json:"naviresRecents"`
	SoonItems     []SoonItem     `json:"documentsPresqueExpires"`
}

type alertSource struct {
	vessel       *Vessel
	vesselID     int
	expiredLabel string
	soonLabel    string
	expiration   *datatypes.Date
}

// BuildAlertSummary classifies the given records relative to today.
// Input order is kept within each source kind.
func BuildAlertSummary(today time.Time, insurances []Insurance, inspections []Inspection, documents []Document, recent []Vessel) AlertSummary {
	sources := make([]alertSource, 0, len(insurances)+len(inspections)+len(documents))
	for i := range insurances {
		in := insurances[i]
		end := in.EndDate
		sources = append(sources, alertSource{in.Vessel, in.VesselID, "Insurance", "Insurance", &end})
	}
	for i := range inspections {
		v := inspections[i]
		exp := v.PermitExpiration
		sources = append(sources, alertSource{v.Vessel, v.VesselID, fmt.Sprintf("Inspection (%s)", v.Location), "Inspection", &exp})
	}
	for i := range documents {
		d := documents[i]
		label := fmt.Sprintf("Document (%s)", d.DocType)
		sources = append(sources, alertSource{d.Vessel, d.VesselID, label, label, d.ExpirationDate})
	}

	summary := AlertSummary{
		ExpiredItems:  []ExpiredItem{},
		SoonItems:     []SoonItem{},
		RecentVessels: []RecentVessel{},
	}
	for _, src := range sources {
		name := ""
		if src.vessel != nil {
			name = src.vessel.Name
		}
		switch ClassifyOptionalDate(src.expiration, today) {
		case StatusExpired:
			summary.Expired++
			summary.ExpiredItems = append(summary.ExpiredItems, ExpiredItem{
				VesselID:   src.vesselID,
				VesselName: name,
				Document:   src.expiredLabel,
				Date:       FormatDate(*src.expiration),
				AlertType:  string(StatusExpired),
			})
		case StatusSoon:
			summary.Soon++
			summary.SoonItems = append(summary.SoonItems, SoonItem{
				VesselID:  src.vesselID,
				Vessel:    name,
				Type:      src.soonLabel,
				ExpiresOn: FormatDate(*src.expiration),
				AlertType: string(StatusSoon),
			})
		case StatusValid:
			summary.Valid++
		}
	}
	summary.Total = summary.Expired + summary.Soon

	for _, v := range recent {
		summary.RecentVessels = append(summary.RecentVessels, RecentVessel{ID: v.ID, Name: v.Name, Registration: v.Registration})
	}
	return summary
}
