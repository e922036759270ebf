// Package report wraps analysis results in run envelopes and renders them as
// Markdown, JSON or YAML.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/dataqa-cli/internal/analysis"
)

// Kind names the check a run performed.
type Kind string

const (
	KindDiagnose Kind = "diagnose"
	KindRange    Kind = "range"
	KindOutliers Kind = "outliers"
	KindEvaluate Kind = "evaluate"
)

// Run is one invocation of a check against one source. Only the fields for
// the run's Kind are set.
type Run struct {
	ID        string
	Kind      Kind
	Source    string
	Column    string
	CreatedAt time.Time

	Diagnostics *analysis.DiagnosticReport

	Range      *analysis.RangeSpec
	OutOfRange []analysis.OutOfRangeRecord

	Bounds   *analysis.OutlierBounds
	Outliers []analysis.OutlierRecord
	Fraction *float64

	// Actual and Predicted name the compared columns of an evaluate run.
	Actual     string
	Predicted  string
	Evaluation *analysis.Evaluation
}

// NewRun constructs a run with a fresh id.
func NewRun(kind Kind, source, column string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		Source:    source,
		Column:    column,
		CreatedAt: time.Now().UTC(),
	}
}
