package export

import (
	"fleet_registry/internal/app/ds"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/datatypes"
)

const (
	noneLabel    = "None"
	missingLabel = "N/A"

	maxCellRunes = 100
	cutCellRunes = 97

	cellDateLayout = "02/01/2006"
)

// Resolver turns a blob reference into an absolute address.
type Resolver func(ref string) (string, error)

// MetaCell renders one metadata value for a tabular export.
func MetaCell(m ds.MetaField, resolve Resolver) string {
	switch m.Kind {
	case ds.KindFile, ds.KindImage:
		ref := m.File()
		if ref == "" {
			return ""
		}
		if resolve != nil {
			if url, err := resolve(string(ref)); err == nil && url != "" {
				return url
			}
		}
		return "File: " + path.Base(string(ref))
	case ds.KindBoolean:
		return ds.BooleanLabel(m.Text())
	case ds.KindDate:
		return reformat(m.Text(), []string{ds.DateLayout, "2006-1-2"}, cellDateLayout)
	case ds.KindTime:
		return reformat(m.Text(), []string{"15:04:05", "15:04"}, "15:04")
	}
	return truncate(m.Text())
}

func reformat(raw string, layouts []string, out string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(out)
		}
	}
	return raw
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxCellRunes {
		return s
	}
	return string([]rune(s)[:cutCellRunes]) + "..."
}

func cellDate(d datatypes.Date) string {
	t := time.Time(d)
	if t.IsZero() {
		return missingLabel
	}
	return t.Format(cellDateLayout)
}

func orMissing(s string) string {
	if strings.TrimSpace(s) == "" {
		return missingLabel
	}
	return s
}

func countOrMissing(n int) string {
	if n == 0 {
		return missingLabel
	}
	return fmt.Sprint(n)
}

func joinOrNone(items []string, sep string) string {
	if len(items) == 0 {
		return noneLabel
	}
	return strings.Join(items, sep)
}
