package export

import (
	"bytes"
	"context"
	"fleet_registry/internal/app/ds"
	"fleet_registry/internal/app/storage"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/sirupsen/logrus"
)

// SheetOptions configures RenderSheet. Blobs may be nil, in which case no
// image is embedded.
type SheetOptions struct {
	Blobs    storage.BlobStore
	LogoPath string
	Today    time.Time
	Log      *logrus.Entry
}

// SheetFilename names the PDF sheet of v generated on day.
func SheetFilename(v ds.Vessel, day time.Time) string {
	name := strings.TrimSpace(v.Name)
	if name == "" {
		name = "unnamed"
	}
	name = strings.Map(func(r rune) rune {
		if r == ' ' || r == '/' || r == '\\' || r == '"' {
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf("vessel_sheet_%s_%s.pdf", name, day.Format(ds.DateLayout))
}

// SortMeta orders metadata by kind priority, then by name.
func SortMeta(fields []ds.MetaField) []ds.MetaField {
	out := append([]ds.MetaField(nil), fields...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Kind.Priority(), out[j].Kind.Priority()
		if pi != pj {
			return pi < pj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

type sheet struct {
	pdf  *fpdf.Fpdf
	tr   func(string) string
	opts SheetOptions
	n    int
}

// RenderSheet builds the full PDF sheet of a vessel loaded with every
// relation. The document is returned whole or not at all.
func RenderSheet(ctx context.Context, v ds.Vessel, opts SheetOptions) ([]byte, error) {
	if opts.Today.IsZero() {
		opts.Today = time.Now()
	}
	if opts.Log == nil {
		opts.Log = logrus.NewEntry(logrus.StandardLogger())
	}
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Vessel sheet "+v.Name, true)
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	s := &sheet{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), opts: opts}
	s.header(v)
	s.identity(v)
	if v.PhotoRef != "" {
		s.blobImage(ctx, v.PhotoRef, 80)
	}
	s.owner(v)
	s.records(v)
	s.metadata(ctx, v.MetaFields)

	if pdf.Err() {
		return nil, fmt.Errorf("vessel %d sheet: %v: %w", v.ID, pdf.Error(), ds.ErrRendering)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("vessel %d sheet: %v: %w", v.ID, err, ds.ErrRendering)
	}
	return buf.Bytes(), nil
}

func (s *sheet) header(v ds.Vessel) {
	if s.opts.LogoPath != "" {
		data, err := os.ReadFile(s.opts.LogoPath)
		if err != nil {
			s.opts.Log.Warnf("logo %s not readable: %v", s.opts.LogoPath, err)
		} else {
			s.image(path.Base(s.opts.LogoPath), data, 30)
		}
	}
	s.pdf.SetFont("Helvetica", "B", 16)
	s.pdf.CellFormat(0, 10, s.tr("Vessel sheet: "+orMissing(v.Name)), "", 1, "L", false, 0, "")
	s.pdf.SetFont("Helvetica", "", 9)
	s.pdf.CellFormat(0, 5, "Generated on "+s.opts.Today.Format(cellDateLayout), "", 1, "L", false, 0, "")
	s.pdf.Ln(3)
}

func (s *sheet) section(title string) {
	s.pdf.Ln(2)
	s.pdf.SetFont("Helvetica", "B", 12)
	s.pdf.SetFillColor(225, 232, 240)
	s.pdf.CellFormat(0, 8, s.tr(title), "", 1, "L", true, 0, "")
	s.pdf.SetFont("Helvetica", "", 10)
}

func (s *sheet) field(label, value string) {
	s.pdf.SetFont("Helvetica", "B", 10)
	s.pdf.CellFormat(50, 6, s.tr(label), "", 0, "L", false, 0, "")
	s.pdf.SetFont("Helvetica", "", 10)
	s.pdf.MultiCell(0, 6, s.tr(value), "", "L", false)
}

func (s *sheet) line(text string) {
	s.pdf.MultiCell(0, 6, s.tr(text), "", "L", false)
}

func (s *sheet) identity(v ds.Vessel) {
	s.section("Identity")
	buildYear := missingLabel
	if v.BuildYear != nil {
		buildYear = fmt.Sprint(*v.BuildYear)
	}
	s.field("Registration", orMissing(v.Registration))
	s.field("IMO", orMissing(v.IMO))
	s.field("MMSI", orMissing(v.MMSI))
	s.field("Type", orMissing(v.VesselType))
	s.field("Build year", buildYear)
	s.field("Build place", orMissing(v.BuildPlace))
	s.field("Hull material", orMissing(string(v.HullMaterial)))
	s.field("Passengers", countOrMissing(v.Passengers))
	s.field("Crew", countOrMissing(v.Crew))
}

func (s *sheet) owner(v ds.Vessel) {
	s.section("Owner")
	if v.Owner == nil {
		s.line(missingLabel)
	} else {
		s.field("Name", orMissing(v.Owner.Name))
		s.field("Category", v.Owner.Category.Label())
		s.field("Address", orMissing(v.Owner.Address))
		s.field("Contact", orMissing(v.Owner.Contact))
	}
	names := make([]string, 0, len(v.Activities))
	for _, a := range v.Activities {
		names = append(names, a.Name)
	}
	s.field("Activities", joinOrNone(names, ", "))
}

func (s *sheet) records(v ds.Vessel) {
	today := s.opts.Today

	s.section("Insurance coverage")
	if len(v.Insurances) == 0 {
		s.line(noneLabel)
	}
	for _, in := range v.Insurances {
		insurer := missingLabel
		if in.Insurer != nil {
			insurer = in.Insurer.Name
		}
		status := ds.ClassifyDate(in.EndDate, today).Label()
		s.line(fmt.Sprintf("%s: %s to %s (%s)", insurer, cellDate(in.StartDate), cellDate(in.EndDate), status))
	}

	s.section("Inspections")
	if len(v.Inspections) == 0 {
		s.line(noneLabel)
	}
	for _, in := range v.Inspections {
		status := ds.ClassifyDate(in.PermitExpiration, today).Label()
		s.line(fmt.Sprintf("%s on %s, permit expires %s (%s)", orMissing(in.Location), cellDate(in.InspectionDate), cellDate(in.PermitExpiration), status))
	}

	s.section("Documents")
	if len(v.Documents) == 0 {
		s.line(noneLabel)
	}
	for _, d := range v.Documents {
		expires := missingLabel
		if d.ExpirationDate != nil {
			expires = cellDate(*d.ExpirationDate)
		}
		status := ds.ClassifyOptionalDate(d.ExpirationDate, today).Label()
		s.line(fmt.Sprintf("%s issued %s, expires %s (%s)", d.DocType, cellDate(d.IssueDate), expires, status))
	}

	s.section("Engines")
	if len(v.Engines) == 0 {
		s.line(noneLabel)
	}
	for _, e := range v.Engines {
		power := e.Power
		if power == "" {
			power = missingLabel
		}
		s.line(fmt.Sprintf("%s: %s CV", e.Name, power))
	}
}

func (s *sheet) metadata(ctx context.Context, fields []ds.MetaField) {
	var texts, files, images []ds.MetaField
	for _, m := range SortMeta(fields) {
		switch m.Kind {
		case ds.KindImage:
			images = append(images, m)
		case ds.KindFile:
			files = append(files, m)
		default:
			texts = append(texts, m)
		}
	}
	resolve := Resolver(nil)
	if s.opts.Blobs != nil {
		resolve = s.opts.Blobs.URL
	}

	s.section("Additional information")
	if len(texts) == 0 {
		s.line(noneLabel)
	}
	for _, m := range texts {
		s.field(m.Name, MetaCell(m, nil))
	}
	if len(files) > 0 {
		s.section("Files")
		for _, m := range files {
			s.field(m.Name, MetaCell(m, resolve))
		}
	}
	if len(images) > 0 {
		s.section("Images")
		for _, m := range images {
			s.field(m.Name, "")
			if ref := m.File(); ref != "" {
				s.blobImage(ctx, string(ref), 60)
			}
		}
	}
}

// blobImage embeds a stored picture; unreadable pictures are replaced by a note.
func (s *sheet) blobImage(ctx context.Context, ref string, width float64) {
	if s.opts.Blobs == nil {
		return
	}
	rc, err := s.opts.Blobs.Get(ctx, ref)
	if err != nil {
		s.opts.Log.Warnf("image %s not available: %v", ref, err)
		s.line("Image unavailable: " + path.Base(ref))
		return
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		s.opts.Log.Warnf("image %s not readable: %v", ref, err)
		s.line("Image unavailable: " + path.Base(ref))
		return
	}
	if !s.image(path.Base(ref), data, width) {
		s.line("Image unavailable: " + path.Base(ref))
	}
}

func (s *sheet) image(name string, data []byte, width float64) bool {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		s.opts.Log.Warnf("image %s skipped: %v", name, err)
		return false
	}
	imageType := map[string]string{"jpeg": "JPG", "png": "PNG", "gif": "GIF"}[format]
	if imageType == "" {
		return false
	}
	s.n++
	key := fmt.Sprintf("img%d_%s", s.n, name)
	opt := fpdf.ImageOptions{ImageType: imageType, ReadDpi: true}
	s.pdf.RegisterImageOptionsReader(key, opt, bytes.NewReader(data))
	s.pdf.ImageOptions(key, -1, -1, width, 0, true, opt, 0, "")
	s.pdf.Ln(2)
	return true
}
