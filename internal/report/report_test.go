package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/dataqa-cli/internal/analysis"
	"github.com/KaramelBytes/dataqa-cli/internal/table"
)

func sampleTable() *table.Table {
	return table.MustNew(
		table.Column{Name: "id", Cells: []table.Cell{table.Number(1), table.Number(2), table.Number(3), table.Number(4)}},
		table.Column{Name: "value", Cells: []table.Cell{table.Text("50"), table.Text("300"), table.Text("text"), table.Missing()}},
	)
}

func rangeRun(t *testing.T) *Run {
	t.Helper()
	rs := analysis.RangeSpec{Lower: 0, Upper: 200}
	recs, err := analysis.OutOfRange(sampleTable(), "value", rs)
	require.NoError(t, err)
	r := NewRun(KindRange, "data.csv", "value")
	r.Range = &rs
	r.OutOfRange = recs
	return r
}

func TestNewRunAssignsID(t *testing.T) {
	a := NewRun(KindDiagnose, "a.csv", "x")
	b := NewRun(KindDiagnose, "a.csv", "x")
	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.WithinDuration(t, time.Now(), a.CreatedAt, time.Minute)
}

func TestMarkdownSections(t *testing.T) {
	r := rangeRun(t)
	d, err := analysis.Diagnose(sampleTable(), "value")
	require.NoError(t, err)
	r.Diagnostics = d

	md := Markdown(r, 0)
	assert.True(t, strings.HasPrefix(md, "[RUN]\n"))
	assert.Contains(t, md, "[DIAGNOSTICS]\n")
	assert.Contains(t, md, "- missing: 1 (25.0%)")
	assert.Contains(t, md, "[OUT OF RANGE]\nRange: [0, 200]\nFlagged rows: 3\n")
	assert.Contains(t, md, `- row 1: "300" (too high) | id=2, value=300`)
	assert.Contains(t, md, "- row 3: (missing) (not numeric / missing)")

	trimmed := Markdown(r, 1)
	assert.Contains(t, trimmed, "... 2 more\n")
}

func TestMarkdownOutliersAndEvaluation(t *testing.T) {
	tb := table.MustNew(table.Column{Name: "v", Cells: []table.Cell{
		table.Number(100), table.Number(101), table.Number(99), table.Number(102), table.Number(98), table.Number(500),
	}})
	b, err := analysis.IQRBounds(tb, "v")
	require.NoError(t, err)
	recs, err := analysis.Outliers(tb, "v")
	require.NoError(t, err)
	frac, err := analysis.OutlierFraction(tb, "v")
	require.NoError(t, err)
	r := NewRun(KindOutliers, "", "v")
	r.Bounds, r.Outliers, r.Fraction = &b, recs, &frac
	md := Markdown(r, 20)
	assert.Contains(t, md, "Fences (x1.5 IQR): [95.5, 105.5]")
	assert.Contains(t, md, "Outlier fraction: 0.1667 (1 of 6 valid)")
	assert.Contains(t, md, "- row 5: 500 | v=500")

	ev := analysis.Evaluate(nil, nil)
	r = NewRun(KindEvaluate, "", "")
	r.Evaluation = &ev
	md = Markdown(r, 20)
	assert.Contains(t, md, "Rows evaluated: 0\nMAE: n/a\nRMSE: n/a\n")
}

func TestEncodeJSONMapsNonFiniteToNull(t *testing.T) {
	ev := analysis.Evaluate([]float64{math.NaN()}, []float64{1})
	r := NewRun(KindEvaluate, "pred.csv", "")
	r.Actual, r.Predicted = "y", "yhat"
	r.Evaluation = &ev
	nanBounds := analysis.OutlierBounds{Q1: math.NaN(), Q3: math.NaN(), IQR: math.NaN(), Lower: math.NaN(), Upper: math.NaN()}
	r.Bounds = &nanBounds

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, r, FormatJSON, 0))
	var got map[string]any
	require.NoError(t, gojson.Unmarshal(buf.Bytes(), &got))
	evDoc := got["evaluation"].(map[string]any)
	assert.Nil(t, evDoc["mae"])
	assert.Nil(t, evDoc["rmse"])
	require.Contains(t, evDoc, "records")
	assert.Len(t, evDoc["records"], 0)
	assert.Nil(t, got["bounds"].(map[string]any)["q1"])
}

func TestEncodeRangeRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, rangeRun(t), FormatJSON, 0))
	var d Document
	require.NoError(t, gojson.Unmarshal(buf.Bytes(), &d))
	require.Len(t, d.OutOfRange, 3)
	assert.Equal(t, "too high", d.OutOfRange[0].Reason)
	assert.Equal(t, "300", d.OutOfRange[0].Value)
	assert.Equal(t, 2.0, d.OutOfRange[0].Row["id"])
	assert.Nil(t, d.OutOfRange[2].Value)
}

func TestEncodeRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Encode(&buf, rangeRun(t), "html", 0))
}

func TestSaveAndList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runs")
	first := rangeRun(t)
	first.CreatedAt = time.Now().Add(-time.Hour).UTC()
	second := rangeRun(t)

	p1, err := Save(dir, first, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, first.ID+".json"), p1)
	_, err = Save(dir, second, FormatYAML)
	require.NoError(t, err)
	_, err = Save(dir, NewRun(KindDiagnose, "", ""), FormatMarkdown)
	require.NoError(t, err)

	runs, err := List(dir)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second.ID, runs[0].ID)
	assert.Equal(t, first.ID, runs[1].ID)
	assert.Equal(t, KindRange, runs[1].Kind)
	require.NotNil(t, runs[0].Range)
	assert.Equal(t, 200.0, runs[0].Range.Upper)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestListMissingDir(t *testing.T) {
	runs, err := List(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	assert.Empty(t, runs)
}
