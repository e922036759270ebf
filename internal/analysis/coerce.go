package analysis

import (
	"math"
	"strings"

	"github.com/KaramelBytes/dataqa-cli/internal/table"
)

// NullFloat is a float64 that may be absent: Valid is false when the source cell
// was missing or could not be read as a number.
type NullFloat struct {
	Value float64
	Valid bool
}

// Coerce converts every cell to a number where possible, keeping length and order.
// Numbers map to themselves, booleans to 0 or 1, text is parsed as a float literal
// and missing cells stay invalid. Coerce never fails; unreadable text yields an
// invalid entry.
func Coerce(cells []table.Cell) []NullFloat {
	out := make([]NullFloat, len(cells))
	for i, c := range cells {
		out[i] = coerceCell(c)
	}
	return out
}

func coerceCell(c table.Cell) NullFloat {
	switch c.Kind() {
	case table.KindNumber:
		return NullFloat{Value: c.Float(), Valid: true}
	case table.KindBool:
		if c.Boolean() {
			return NullFloat{Value: 1, Valid: true}
		}
		return NullFloat{Value: 0, Valid: true}
	case table.KindText:
		f, ok := table.ParseNumber(strings.TrimSpace(c.Str()))
		if !ok || math.IsNaN(f) {
			return NullFloat{}
		}
		return NullFloat{Value: f, Valid: true}
	case table.KindMissing:
		return NullFloat{}
	}
	return NullFloat{}
}

// validValues returns the valid coerced values in row order.
func validValues(vals []NullFloat) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if v.Valid {
			out = append(out, v.Value)
		}
	}
	return out
}
