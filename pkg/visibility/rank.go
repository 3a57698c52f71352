package visibility

import (
	"fmt"
	"sort"
	"strings"
)

// Field names one of the sortable quantities of a visible star.
type Field string

const (
	FieldIdentifier  Field = "identifier"
	FieldRARef       Field = "ra-ref"
	FieldDecRef      Field = "dec-ref"
	FieldPMRA        Field = "pm-ra"
	FieldPMDec       Field = "pm-dec"
	FieldMagnitude   Field = "mag"
	FieldTotalMotion Field = "total-pm"
	FieldAltitude    Field = "altitude"
)

// sortFields maps accepted command-line spellings to fields.
var sortFields = map[string]Field{
	"identifier": FieldIdentifier,
	"id":         FieldIdentifier,
	"ra-ref":     FieldRARef,
	"ra":         FieldRARef,
	"dec-ref":    FieldDecRef,
	"dec":        FieldDecRef,
	"pm-ra":      FieldPMRA,
	"pmra":       FieldPMRA,
	"pm-dec":     FieldPMDec,
	"pmdec":      FieldPMDec,
	"mag":        FieldMagnitude,
	"magnitude":  FieldMagnitude,
	"total-pm":   FieldTotalMotion,
	"total":      FieldTotalMotion,
	"altitude":   FieldAltitude,
	"alt":        FieldAltitude,
}

// ParseField resolves a sort field name from the command line.
func ParseField(s string) (Field, error) {
	if f, ok := sortFields[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown sort field %q (available: identifier, ra-ref, dec-ref, pm-ra, pm-dec, mag, total-pm, altitude)", ErrInvalidConfiguration, s)
}

// SortSpec selects a sort key, direction, and tie-break key.
type SortSpec struct {
	Key        Field
	Descending bool

	// TieBreak orders stars whose primary keys compare equal. Empty
	// means identifier, which keeps repeated runs on cached data
	// reproducible.
	TieBreak Field
}

func (s SortSpec) validate() error {
	if _, err := ParseField(string(s.Key)); err != nil {
		return err
	}
	if s.TieBreak != "" {
		if _, err := ParseField(string(s.TieBreak)); err != nil {
			return err
		}
	}
	return nil
}

// compare orders a before b on one field: -1, 0 or +1.
func compare(a, b VisibleStar, f Field) int {
	if f == FieldIdentifier {
		return strings.Compare(a.Identifier, b.Identifier)
	}
	av, bv := numericKey(a, f), numericKey(b, f)
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	default:
		return 0
	}
}

func numericKey(s VisibleStar, f Field) float64 {
	switch f {
	case FieldRARef:
		return s.RARefDeg
	case FieldDecRef:
		return s.DecRefDeg
	case FieldPMRA:
		return s.PMRARaw
	case FieldPMDec:
		return s.PMDecRaw
	case FieldMagnitude:
		return s.Magnitude
	case FieldTotalMotion:
		return s.TotalMotion
	case FieldAltitude:
		return s.AltDeg
	}
	return 0
}

// Sort orders the visible set in place. The sort is stable: stars whose
// primary and tie-break keys both compare equal keep their relative
// catalog order, so identical cached inputs always render identically.
func Sort(stars []VisibleStar, spec SortSpec) {
	tie := spec.TieBreak
	if tie == "" {
		tie = FieldIdentifier
	}
	sort.SliceStable(stars, func(i, j int) bool {
		c := compare(stars[i], stars[j], spec.Key)
		if c == 0 {
			c = compare(stars[i], stars[j], tie)
		}
		if spec.Descending {
			return c > 0
		}
		return c < 0
	})
}
