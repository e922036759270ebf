package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/dataqa-cli/internal/analysis"
	"github.com/KaramelBytes/dataqa-cli/internal/table"
)

// Markdown renders a compact sectioned report. At most maxRows flagged rows are
// listed per section; maxRows <= 0 lists them all.
func Markdown(r *Run, maxRows int) string {
	var b strings.Builder
	b.WriteString("[RUN]\n")
	b.WriteString(fmt.Sprintf("ID: %s\n", r.ID))
	b.WriteString(fmt.Sprintf("Check: %s\n", r.Kind))
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Source))
	}
	if r.Column != "" {
		b.WriteString(fmt.Sprintf("Column: %s\n", safeName(r.Column)))
	}
	b.WriteString("\n")

	if d := r.Diagnostics; d != nil {
		writeDiagnostics(&b, d)
	}
	if r.Range != nil {
		writeOutOfRange(&b, *r.Range, r.OutOfRange, maxRows)
	}
	if r.Bounds != nil {
		writeOutliers(&b, *r.Bounds, r.Outliers, r.Fraction, maxRows)
	}
	if r.Evaluation != nil {
		writeEvaluation(&b, r, maxRows)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeDiagnostics(b *strings.Builder, d *analysis.DiagnosticReport) {
	b.WriteString("[DIAGNOSTICS]\n")
	b.WriteString(fmt.Sprintf("Rows: %d\n", d.Rows))
	b.WriteString(fmt.Sprintf("Kind: %s\n", d.Kind))
	b.WriteString(fmt.Sprintf("- valid numeric: %d\n", d.ValidCount))
	b.WriteString(fmt.Sprintf("- missing: %d%s\n", d.MissingCount, pct(d.MissingCount, d.Rows)))
	b.WriteString(fmt.Sprintf("- empty strings: %d\n", d.EmptyStringCount))
	b.WriteString(fmt.Sprintf("- non-numeric: %d%s\n", d.NonNumericCount, pct(d.NonNumericCount, d.Rows)))
	b.WriteString(fmt.Sprintf("- infinite: %d\n", d.InfiniteCount))
	b.WriteString(fmt.Sprintf("- booleans: %d\n", d.BooleanCount))
	b.WriteString(fmt.Sprintf("- zeros (incl. booleans): %d\n", d.ZerosIncludingBooleans))
	b.WriteString(fmt.Sprintf("- zeros (excl. booleans): %d\n", d.ZerosExcludingBooleans))
	b.WriteString(fmt.Sprintf("- negative: %d\n", d.NegativeCount))
	b.WriteString("\n")
}

func writeOutOfRange(b *strings.Builder, rs analysis.RangeSpec, recs []analysis.OutOfRangeRecord, maxRows int) {
	b.WriteString("[OUT OF RANGE]\n")
	b.WriteString(fmt.Sprintf("Range: [%s, %s]\n", num(rs.Lower), num(rs.Upper)))
	b.WriteString(fmt.Sprintf("Flagged rows: %d\n", len(recs)))
	for i, rec := range recs {
		if maxRows > 0 && i >= maxRows {
			b.WriteString(fmt.Sprintf("... %d more\n", len(recs)-i))
			break
		}
		b.WriteString(fmt.Sprintf("- row %d: %s (%s) | %s\n", rec.Index, cellText(rec.Value), rec.Reason, rowText(rec.Row)))
	}
	b.WriteString("\n")
}

func writeOutliers(b *strings.Builder, bd analysis.OutlierBounds, recs []analysis.OutlierRecord, frac *float64, maxRows int) {
	b.WriteString("[OUTLIERS]\n")
	if bd.Valid == 0 {
		b.WriteString("No valid numeric values; bounds undefined\n\n")
		return
	}
	b.WriteString(fmt.Sprintf("Q1 %s, Q3 %s, IQR %s\n", num(bd.Q1), num(bd.Q3), num(bd.IQR)))
	b.WriteString(fmt.Sprintf("Fences (x%.1f IQR): [%s, %s]\n", analysis.TukeyFactor, num(bd.Lower), num(bd.Upper)))
	if frac != nil {
		b.WriteString(fmt.Sprintf("Outlier fraction: %.4f (%d of %d valid)\n", *frac, int(math.Round(*frac*float64(bd.Valid))), bd.Valid))
	}
	if recs == nil {
		b.WriteString("\n")
		return
	}
	b.WriteString(fmt.Sprintf("Outliers: %d\n", len(recs)))
	for i, rec := range recs {
		if maxRows > 0 && i >= maxRows {
			b.WriteString(fmt.Sprintf("... %d more\n", len(recs)-i))
			break
		}
		b.WriteString(fmt.Sprintf("- row %d: %s | %s\n", rec.Index, num(rec.Value), rowText(rec.Row)))
	}
	b.WriteString("\n")
}

func writeEvaluation(b *strings.Builder, r *Run, maxRows int) {
	ev := r.Evaluation
	b.WriteString("[REGRESSION]\n")
	if r.Actual != "" || r.Predicted != "" {
		b.WriteString(fmt.Sprintf("Actual: %s, predicted: %s\n", safeName(r.Actual), safeName(r.Predicted)))
	}
	b.WriteString(fmt.Sprintf("Rows evaluated: %d\n", len(ev.Records)))
	b.WriteString(fmt.Sprintf("MAE: %s\n", num(ev.MAE)))
	b.WriteString(fmt.Sprintf("RMSE: %s\n", num(ev.RMSE)))
	for i, rec := range ev.Records {
		if maxRows > 0 && i >= maxRows {
			b.WriteString(fmt.Sprintf("... %d more\n", len(ev.Records)-i))
			break
		}
		b.WriteString(fmt.Sprintf("- row %d: actual %s, predicted %s, abs error %s\n",
			rec.Index, num(rec.Actual), num(rec.Predicted), num(rec.AbsError)))
	}
	b.WriteString("\n")
}

func pct(n, total int) string {
	if total == 0 || n == 0 {
		return ""
	}
	return fmt.Sprintf(" (%.1f%%)", float64(n)*100.0/float64(total))
}

// num formats a float; NaN renders as "n/a".
func num(f float64) string {
	if math.IsNaN(f) {
		return "n/a"
	}
	return fmt.Sprintf("%.6g", f)
}

func cellText(c table.Cell) string {
	switch c.Kind() {
	case table.KindMissing:
		return "(missing)"
	case table.KindText:
		return fmt.Sprintf("%q", safeVal(c.Str()))
	}
	return c.String()
}

func rowText(r table.Row) string {
	parts := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		parts[i] = fmt.Sprintf("%s=%s", safeName(f), safeVal(r.Cells[i].String()))
	}
	return strings.Join(parts, ", ")
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
