package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/KaramelBytes/dataqa-cli/internal/table"
)

// ErrorRecord holds the error terms for one row kept after cleaning.
type ErrorRecord struct {
	Index        int
	Actual       float64
	Predicted    float64
	AbsError     float64
	SquaredError float64
}

// Evaluation is the result of comparing predictions against actual values.
// MAE and RMSE are NaN when no row survives cleaning.
type Evaluation struct {
	MAE     float64
	RMSE    float64
	Records []ErrorRecord
}

// Evaluate computes MAE and RMSE between position-aligned sequences. NaN marks a
// missing value; infinities are treated as missing too. Rows where either side
// is missing are dropped, as are positions beyond the shorter sequence.
func Evaluate(actual, predicted []float64) Evaluation {
	n := len(actual)
	if len(predicted) > n {
		n = len(predicted)
	}
	recs := make([]ErrorRecord, 0, n)
	abs := make([]float64, 0, n)
	sq := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		a, ok := finiteAt(actual, i)
		if !ok {
			continue
		}
		p, ok := finiteAt(predicted, i)
		if !ok {
			continue
		}
		d := a - p
		rec := ErrorRecord{Index: i, Actual: a, Predicted: p, AbsError: math.Abs(d), SquaredError: d * d}
		recs = append(recs, rec)
		abs = append(abs, rec.AbsError)
		sq = append(sq, rec.SquaredError)
	}
	if len(recs) == 0 {
		return Evaluation{MAE: math.NaN(), RMSE: math.NaN(), Records: recs}
	}
	return Evaluation{
		MAE:     stat.Mean(abs, nil),
		RMSE:    math.Sqrt(stat.Mean(sq, nil)),
		Records: recs,
	}
}

func finiteAt(xs []float64, i int) (float64, bool) {
	if i >= len(xs) {
		return 0, false
	}
	v := xs[i]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// EvaluateColumns coerces two columns of a table and evaluates them row by row.
func EvaluateColumns(t *table.Table, actualColumn, predictedColumn string) (Evaluation, error) {
	a, err := lookup(t, actualColumn)
	if err != nil {
		return Evaluation{}, err
	}
	p, err := lookup(t, predictedColumn)
	if err != nil {
		return Evaluation{}, err
	}
	return Evaluate(floats(Coerce(a.Cells)), floats(Coerce(p.Cells))), nil
}

// floats maps invalid entries to NaN.
func floats(vals []NullFloat) []float64 {
	out := make([]float64, len(vals))
	for i, v := range vals {
		if v.Valid {
			out[i] = v.Value
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
