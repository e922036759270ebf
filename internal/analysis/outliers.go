package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/dataqa-cli/internal/table"
)

// TukeyFactor scales the IQR to place the outlier fences.
const TukeyFactor = 1.5

// Columns OutliersTable appends.
const (
	LowerBoundColumn = "iqr_lower_bound"
	UpperBoundColumn = "iqr_upper_bound"
)

// OutlierBounds are Tukey fences for a column. All fields are NaN when the
// column has no valid values.
type OutlierBounds struct {
	Q1    float64
	Q3    float64
	IQR   float64
	Lower float64
	Upper float64
	// Valid is the number of valid values the quartiles were computed from.
	Valid int
}

// IsOutlier reports whether v falls strictly outside the fences. With NaN
// fences nothing is an outlier.
func (b OutlierBounds) IsOutlier(v float64) bool { return v < b.Lower || v > b.Upper }

// OutlierRecord is one row whose value lies outside the Tukey fences.
type OutlierRecord struct {
	Index  int
	Row    table.Row
	Value  float64
	Bounds OutlierBounds
}

// Quantile returns the p-quantile of sorted values by linear interpolation
// between the order statistics around rank p*(n-1). It is NaN for no values.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	// With infinite neighbours this yields ±Inf where numpy's lerp yields NaN;
	// both leave the fences non-finite.
	return sorted[lo]*(1-w) + sorted[hi]*w
}

func boundsOf(vals []NullFloat) OutlierBounds {
	valid := validValues(vals)
	sort.Float64s(valid)
	q1 := Quantile(valid, 0.25)
	q3 := Quantile(valid, 0.75)
	iqr := q3 - q1
	return OutlierBounds{
		Q1:    q1,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - TukeyFactor*iqr,
		Upper: q3 + TukeyFactor*iqr,
		Valid: len(valid),
	}
}

// IQRBounds computes the Tukey fences [Q1-1.5*IQR, Q3+1.5*IQR] over the valid
// numeric values of a column.
func IQRBounds(t *table.Table, column string) (OutlierBounds, error) {
	col, err := lookup(t, column)
	if err != nil {
		return OutlierBounds{}, err
	}
	return boundsOf(Coerce(col.Cells)), nil
}

// Outliers returns the rows whose value is outside the Tukey fences, in row order.
// Missing and non-numeric values are never outliers.
func Outliers(t *table.Table, column string) ([]OutlierRecord, error) {
	col, err := lookup(t, column)
	if err != nil {
		return nil, err
	}
	vals := Coerce(col.Cells)
	b := boundsOf(vals)
	out := []OutlierRecord{}
	for i, v := range vals {
		if !v.Valid || !b.IsOutlier(v.Value) {
			continue
		}
		out = append(out, OutlierRecord{Index: i, Row: t.Row(i), Value: v.Value, Bounds: b})
	}
	return out, nil
}

// OutliersTable is Outliers as a table with the fences appended as columns.
func OutliersTable(t *table.Table, column string) (*table.Table, error) {
	recs, err := Outliers(t, column)
	if err != nil {
		return nil, err
	}
	idx := make([]int, len(recs))
	lower := make([]table.Cell, len(recs))
	upper := make([]table.Cell, len(recs))
	for k, rec := range recs {
		idx[k] = rec.Index
		lower[k] = table.Number(rec.Bounds.Lower)
		upper[k] = table.Number(rec.Bounds.Upper)
	}
	out, err := t.Select(idx).WithColumn(LowerBoundColumn, lower)
	if err != nil {
		return nil, err
	}
	return out.WithColumn(UpperBoundColumn, upper)
}

// OutlierFraction is the share of valid values that are outliers, in [0, 1].
// A column with no valid values has fraction 0.
func OutlierFraction(t *table.Table, column string) (float64, error) {
	col, err := lookup(t, column)
	if err != nil {
		return 0, err
	}
	valid := len(validValues(Coerce(col.Cells)))
	if valid == 0 {
		return 0, nil
	}
	recs, err := Outliers(t, column)
	if err != nil {
		return 0, err
	}
	return float64(len(recs)) / float64(valid), nil
}
