package analysis

import (
	"github.com/KaramelBytes/dataqa-cli/internal/table"
)

// RangeSpec is an inclusive [Lower, Upper] interval. Callers must ensure Lower <= Upper.
type RangeSpec struct {
	Lower float64 `json:"lower" yaml:"lower"`
	Upper float64 `json:"upper" yaml:"upper"`
}

// Contains reports whether v lies inside the inclusive range.
func (r RangeSpec) Contains(v float64) bool { return v >= r.Lower && v <= r.Upper }

// Reason explains why a value is out of range.
type Reason string

const (
	ReasonTooHigh             Reason = "too high"
	ReasonTooLow              Reason = "too low"
	ReasonNotNumericOrMissing Reason = "not numeric / missing"
)

// ReasonColumn is the name of the column OutOfRangeTable appends.
const ReasonColumn = "reason"

// OutOfRangeRecord is one row whose value falls outside the range.
type OutOfRangeRecord struct {
	// Index is the row's position in the source table.
	Index  int
	Row    table.Row
	Value  table.Cell
	Reason Reason
}

// classify returns the reason a coerced value is out of range, or "" when it is inside.
// An invalid value always wins; a number cannot be both above and below.
func classify(v NullFloat, r RangeSpec) Reason {
	switch {
	case !v.Valid:
		return ReasonNotNumericOrMissing
	case v.Value > r.Upper:
		return ReasonTooHigh
	case v.Value < r.Lower:
		return ReasonTooLow
	}
	return ""
}

// OutOfRange returns, in row order, every row whose value is missing, not numeric,
// or outside r.
func OutOfRange(t *table.Table, column string, r RangeSpec) ([]OutOfRangeRecord, error) {
	col, err := lookup(t, column)
	if err != nil {
		return nil, err
	}
	vals := Coerce(col.Cells)
	out := []OutOfRangeRecord{}
	for i, v := range vals {
		reason := classify(v, r)
		if reason == "" {
			continue
		}
		out = append(out, OutOfRangeRecord{Index: i, Row: t.Row(i), Value: col.Cells[i], Reason: reason})
	}
	return out, nil
}

// OutOfRangeTable is OutOfRange as a table: the offending rows with all original
// columns plus a "reason" column.
func OutOfRangeTable(t *table.Table, column string, r RangeSpec) (*table.Table, error) {
	recs, err := OutOfRange(t, column, r)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(recs))
	reasons := make([]table.Cell, len(recs))
	for k, rec := range recs {
		idx[k] = rec.Index
		reasons[k] = table.Text(string(rec.Reason))
	}
	return t.Select(idx).WithColumn(ReasonColumn, reasons)
}
