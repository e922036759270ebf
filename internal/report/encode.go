package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/dataqa-cli/internal/analysis"
	"github.com/KaramelBytes/dataqa-cli/internal/table"
	"github.com/KaramelBytes/dataqa-cli/internal/utils"
)

// Output formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
)

// Document is the serialised form of a Run. Non-finite floats become null.
type Document struct {
	ID        string    `json:"id" yaml:"id"`
	Kind      Kind      `json:"kind" yaml:"kind"`
	Source    string    `json:"source,omitempty" yaml:"source,omitempty"`
	Column    string    `json:"column,omitempty" yaml:"column,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	Diagnostics *analysis.DiagnosticReport `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

	Range      *analysis.RangeSpec `json:"range,omitempty" yaml:"range,omitempty"`
	OutOfRange []RangeRow          `json:"out_of_range,omitempty" yaml:"out_of_range,omitempty"`

	Bounds   *Bounds      `json:"bounds,omitempty" yaml:"bounds,omitempty"`
	Outliers []OutlierRow `json:"outliers,omitempty" yaml:"outliers,omitempty"`
	Fraction *float64     `json:"outlier_fraction,omitempty" yaml:"outlier_fraction,omitempty"`

	Evaluation *EvaluationDoc `json:"evaluation,omitempty" yaml:"evaluation,omitempty"`
}

// RangeRow is one flagged row of a range run.
type RangeRow struct {
	Index  int            `json:"index" yaml:"index"`
	Value  any            `json:"value" yaml:"value"`
	Reason string         `json:"reason" yaml:"reason"`
	Row    map[string]any `json:"row" yaml:"row"`
}

// Bounds mirrors analysis.OutlierBounds with nullable fields.
type Bounds struct {
	Q1    *float64 `json:"q1" yaml:"q1"`
	Q3    *float64 `json:"q3" yaml:"q3"`
	IQR   *float64 `json:"iqr" yaml:"iqr"`
	Lower *float64 `json:"lower" yaml:"lower"`
	Upper *float64 `json:"upper" yaml:"upper"`
	Valid int      `json:"valid" yaml:"valid"`
}

// OutlierRow is one flagged row of an outliers run.
type OutlierRow struct {
	Index int            `json:"index" yaml:"index"`
	Value *float64       `json:"value" yaml:"value"`
	Row   map[string]any `json:"row" yaml:"row"`
}

// EvaluationDoc mirrors analysis.Evaluation with nullable metrics.
type EvaluationDoc struct {
	Actual    string        `json:"actual,omitempty" yaml:"actual,omitempty"`
	Predicted string        `json:"predicted,omitempty" yaml:"predicted,omitempty"`
	MAE       *float64      `json:"mae" yaml:"mae"`
	RMSE      *float64      `json:"rmse" yaml:"rmse"`
	Records   []ErrorRowDoc `json:"records" yaml:"records"`
}

// ErrorRowDoc is one evaluated row.
type ErrorRowDoc struct {
	Index        int     `json:"index" yaml:"index"`
	Actual       float64 `json:"actual" yaml:"actual"`
	Predicted    float64 `json:"predicted" yaml:"predicted"`
	AbsError     float64 `json:"abs_error" yaml:"abs_error"`
	SquaredError float64 `json:"squared_error" yaml:"squared_error"`
}

// ToDocument converts a run into its serialisable form.
func ToDocument(r *Run) Document {
	d := Document{
		ID:          r.ID,
		Kind:        r.Kind,
		Source:      r.Source,
		Column:      r.Column,
		CreatedAt:   r.CreatedAt,
		Diagnostics: r.Diagnostics,
		Range:       r.Range,
	}
	if r.Range != nil {
		d.OutOfRange = make([]RangeRow, len(r.OutOfRange))
		for i, rec := range r.OutOfRange {
			d.OutOfRange[i] = RangeRow{Index: rec.Index, Value: rec.Value.Interface(), Reason: string(rec.Reason), Row: rowMap(rec.Row)}
		}
	}
	if b := r.Bounds; b != nil {
		d.Bounds = &Bounds{Q1: finite(b.Q1), Q3: finite(b.Q3), IQR: finite(b.IQR), Lower: finite(b.Lower), Upper: finite(b.Upper), Valid: b.Valid}
	}
	if r.Outliers != nil {
		d.Outliers = make([]OutlierRow, len(r.Outliers))
		for i, rec := range r.Outliers {
			d.Outliers[i] = OutlierRow{Index: rec.Index, Value: finite(rec.Value), Row: rowMap(rec.Row)}
		}
	}
	if r.Fraction != nil {
		d.Fraction = finite(*r.Fraction)
	}
	if ev := r.Evaluation; ev != nil {
		doc := &EvaluationDoc{
			Actual:    r.Actual,
			Predicted: r.Predicted,
			MAE:       finite(ev.MAE),
			RMSE:      finite(ev.RMSE),
			Records:   make([]ErrorRowDoc, len(ev.Records)),
		}
		for i, rec := range ev.Records {
			doc.Records[i] = ErrorRowDoc(rec)
		}
		d.Evaluation = doc
	}
	return d
}

// Encode writes the run to w in the given format.
func Encode(w io.Writer, r *Run, format string, maxRows int) error {
	if format == FormatMarkdown || format == "" {
		_, err := io.WriteString(w, Markdown(r, maxRows))
		return err
	}
	d := ToDocument(r)
	return EncodeDocument(w, &d, format)
}

// EncodeDocument writes a serialised run as JSON or YAML.
func EncodeDocument(w io.Writer, d *Document, format string) error {
	switch format {
	case FormatJSON:
		b, err := utils.PrettyJSON(d)
		if err != nil {
			return err
		}
		_, err = w.Write(append(b, '\n'))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format: %s (use markdown, json or yaml)", format)
	}
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func rowMap(r table.Row) map[string]any {
	m := make(map[string]any, len(r.Fields))
	for i, f := range r.Fields {
		m[f] = r.Cells[i].Interface()
	}
	return m
}
