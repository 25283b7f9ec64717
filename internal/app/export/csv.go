package export

import (
	"encoding/csv"
	"fleet_registry/internal/app/ds"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var rowFailures = promauto.NewCounter(prometheus.CounterOpts{
	Name: "export_row_failures_total",
	Help: "Vessel rows replaced by an error row during CSV export.",
})

// FixedColumns precede the metadata columns in every export.
var FixedColumns = []string{
	"ID", "Name", "Registration", "IMO", "MMSI", "Type", "Build Year", "Build Place",
	"Hull Material", "Passengers", "Crew", "Owner", "Owner Type", "Owner Contact",
	"Activities", "Insurances", "Engines", "Inspections", "Documents",
}

const bom = "\xEF\xBB\xBF"

type Exporter struct {
	Resolve Resolver
	Log     *logrus.Entry
}

func NewExporter(resolve Resolver, log *logrus.Entry) *Exporter {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Exporter{Resolve: resolve, Log: log}
}

// Filename builds the attachment name for an export taken at now.
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("vessels_%s_%s.csv", prefix, now.Format("2006-01-02_15-04"))
}

// MetaColumns returns the sorted union of metadata names over vessels.
func MetaColumns(vessels []ds.Vessel) []string {
	seen := map[string]bool{}
	names := []string{}
	for _, v := range vessels {
		for _, m := range v.MetaFields {
			if !seen[m.Name] {
				seen[m.Name] = true
				names = append(names, m.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// WriteCSV writes a BOM, the header and one row per vessel. Every row has
// the header width; a vessel that cannot be formatted yields an error row.
func (e *Exporter) WriteCSV(w io.Writer, vessels []ds.Vessel) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return err
	}
	metaNames := MetaColumns(vessels)
	width := len(FixedColumns) + len(metaNames)

	cw := csv.NewWriter(w)
	cw.Comma = ';'
	header := make([]string, 0, width)
	header = append(header, FixedColumns...)
	header = append(header, metaNames...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, v := range vessels {
		row, err := e.Row(v, metaNames)
		if err != nil {
			e.Log.WithField("vessel_id", v.ID).Errorf("export row failed: %v", err)
			rowFailures.Inc()
			row = errorRow(err, width)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func errorRow(err error, width int) []string {
	row := make([]string, width)
	for i := range row {
		row[i] = "Error: " + err.Error()
	}
	return row
}

// Row formats one vessel against the given metadata columns.
func (e *Exporter) Row(v ds.Vessel, metaNames []string) ([]string, error) {
	insurances := make([]string, 0, len(v.Insurances))
	for _, in := range v.Insurances {
		if in.Insurer == nil {
			return nil, fmt.Errorf("insurance %d: insurer %d: %w", in.ID, in.InsurerID, ds.ErrNotFound)
		}
		insurances = append(insurances, fmt.Sprintf("%s (%s-%s)", in.Insurer.Name, cellDate(in.StartDate), cellDate(in.EndDate)))
	}
	activities := make([]string, 0, len(v.Activities))
	for _, a := range v.Activities {
		activities = append(activities, a.Name)
	}
	engines := make([]string, 0, len(v.Engines))
	for _, en := range v.Engines {
		power := en.Power
		if power == "" {
			power = "Power N/A"
		}
		engines = append(engines, fmt.Sprintf("%s (%s CV)", en.Name, power))
	}
	inspections := make([]string, 0, len(v.Inspections))
	for _, in := range v.Inspections {
		inspections = append(inspections, fmt.Sprintf("%s (%s, expires: %s)", in.Location, cellDate(in.InspectionDate), cellDate(in.PermitExpiration)))
	}
	documents := make([]string, 0, len(v.Documents))
	for _, d := range v.Documents {
		documents = append(documents, fmt.Sprintf("%s (%s)", d.DocType, cellDate(d.IssueDate)))
	}

	ownerName, ownerType, ownerContact := missingLabel, missingLabel, missingLabel
	if v.Owner != nil {
		ownerName = orMissing(v.Owner.Name)
		ownerType = v.Owner.Category.Label()
		ownerContact = ""
		if v.Owner.Contact != "" {
			ownerContact = "'" + v.Owner.Contact
		}
	}
	buildYear := missingLabel
	if v.BuildYear != nil {
		buildYear = strconv.Itoa(*v.BuildYear)
	}

	row := []string{
		strconv.Itoa(v.ID),
		orMissing(v.Name),
		orMissing(v.Registration),
		orMissing(v.IMO),
		orMissing(v.MMSI),
		orMissing(v.VesselType),
		buildYear,
		orMissing(v.BuildPlace),
		orMissing(string(v.HullMaterial)),
		countOrMissing(v.Passengers),
		countOrMissing(v.Crew),
		ownerName,
		ownerType,
		ownerContact,
		joinOrNone(activities, ", "),
		joinOrNone(insurances, "; "),
		joinOrNone(engines, "; "),
		joinOrNone(inspections, "; "),
		joinOrNone(documents, "; "),
	}

	cells := make(map[string]string, len(v.MetaFields))
	for _, m := range v.MetaFields {
		cells[m.Name] = MetaCell(m, e.Resolve)
	}
	for _, name := range metaNames {
		row = append(row, cells[name])
	}
	return row, nil
}
