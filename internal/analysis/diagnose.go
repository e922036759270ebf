package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/dataqa-cli/internal/table"
)

// DiagnosticReport summarises the value composition of a column that is
// expected to be numeric.
type DiagnosticReport struct {
	Column string `json:"column" yaml:"column"`
	Rows   int    `json:"rows" yaml:"rows"`
	// Kind is the inferred column kind: numeric|boolean|text|mixed|empty.
	Kind string `json:"kind" yaml:"kind"`

	ValidCount             int `json:"valid_count" yaml:"valid_count"`
	MissingCount           int `json:"missing_count" yaml:"missing_count"`
	EmptyStringCount       int `json:"empty_string_count" yaml:"empty_string_count"`
	NonNumericCount        int `json:"non_numeric_count" yaml:"non_numeric_count"`
	InfiniteCount          int `json:"infinite_count" yaml:"infinite_count"`
	BooleanCount           int `json:"boolean_count" yaml:"boolean_count"`
	ZerosIncludingBooleans int `json:"zeros_including_booleans" yaml:"zeros_including_booleans"`
	ZerosExcludingBooleans int `json:"zeros_excluding_booleans" yaml:"zeros_excluding_booleans"`
	NegativeCount          int `json:"negative_count" yaml:"negative_count"`
}

// Diagnose counts missing, empty, non-numeric, infinite, boolean, zero and
// negative values in a column.
func Diagnose(t *table.Table, column string) (*DiagnosticReport, error) {
	col, err := lookup(t, column)
	if err != nil {
		return nil, err
	}
	vals := Coerce(col.Cells)
	rep := &DiagnosticReport{Column: column, Rows: len(col.Cells)}

	invalid := 0
	for i, c := range col.Cells {
		v := vals[i]
		isBool := c.Kind() == table.KindBool
		switch c.Kind() {
		case table.KindMissing:
			rep.MissingCount++
		case table.KindBool:
			rep.BooleanCount++
		case table.KindText:
			if strings.TrimSpace(c.Str()) == "" {
				rep.EmptyStringCount++
			}
		case table.KindNumber:
		}
		if !v.Valid {
			invalid++
			continue
		}
		rep.ValidCount++
		if math.IsInf(v.Value, 0) {
			rep.InfiniteCount++
		}
		if v.Value == 0 {
			rep.ZerosIncludingBooleans++
			if !isBool {
				rep.ZerosExcludingBooleans++
			}
		}
		if v.Value < 0 {
			rep.NegativeCount++
		}
	}
	rep.NonNumericCount = invalid - rep.MissingCount
	if rep.NonNumericCount < 0 {
		panic(fmt.Sprintf("analysis: coercion produced %d invalid values for %d missing cells", invalid, rep.MissingCount))
	}
	rep.Kind = columnKind(rep)
	return rep, nil
}

func columnKind(r *DiagnosticReport) string {
	present := r.Rows - r.MissingCount
	switch {
	case present == 0:
		return "empty"
	case r.BooleanCount == present:
		return "boolean"
	case r.NonNumericCount == 0 && r.BooleanCount == 0:
		return "numeric"
	case r.NonNumericCount == present:
		return "text"
	default:
		return "mixed"
	}
}
