package table

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNewRejectsRaggedAndDuplicateColumns(t *testing.T) {
	_, err := New(
		Column{Name: "a", Cells: []Cell{Number(1), Number(2)}},
		Column{Name: "b", Cells: []Cell{Number(1)}},
	)
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = New(
		Column{Name: "a", Cells: []Cell{Number(1)}},
		Column{Name: "a", Cells: []Cell{Number(2)}},
	)
	require.ErrorIs(t, err, ErrDuplicateColumn)
}

func TestNumberNaNIsMissing(t *testing.T) {
	assert.Equal(t, KindMissing, Number(math.NaN()).Kind())
	assert.Equal(t, KindNumber, Number(math.Inf(1)).Kind())
	assert.True(t, Missing().IsMissing())
}

func TestSelectAndWithColumnPreserveOrder(t *testing.T) {
	tb := MustNew(
		Column{Name: "id", Cells: []Cell{Number(1), Number(2), Number(3)}},
		Column{Name: "value", Cells: []Cell{Text("x"), Missing(), Bool(true)}},
	)
	sub := tb.Select([]int{2, 0})
	require.Equal(t, 2, sub.Len())
	assert.Equal(t, []string{"id", "value"}, sub.Columns())
	assert.Equal(t, Bool(true), sub.Row(0).Cells[1])
	assert.Equal(t, Number(1), sub.Row(1).Cells[0])

	out, err := sub.WithColumn("reason", []Cell{Text("r1"), Text("r2")})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "value", "reason"}, out.Columns())
	// the source table is untouched
	assert.Equal(t, []string{"id", "value"}, sub.Columns())

	replaced, err := out.WithColumn("id", []Cell{Number(9), Number(8)})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "value", "reason"}, replaced.Columns())
	c, _ := replaced.Row(0).Get("id")
	assert.Equal(t, 9.0, c.Float())

	_, err = sub.WithColumn("bad", []Cell{Missing()})
	require.ErrorIs(t, err, ErrLengthMismatch)
}

func TestInferCell(t *testing.T) {
	na := DefaultNAValues
	tests := []struct {
		raw  string
		kind Kind
	}{
		{"50", KindNumber},
		{" 1.5e3 ", KindNumber},
		{"-inf", KindNumber},
		{"", KindMissing},
		{"NA", KindMissing},
		{"null", KindMissing},
		{"True", KindBool},
		{"FALSE", KindBool},
		{"text", KindText},
		{"1,5", KindText},
		{" ", KindText},
		{"0x1p4", KindText},
		{"-0X10", KindText},
		{"0x1_0p0", KindText},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.kind, InferCell(tt.raw, na).Kind())
		})
	}
	// with no NA tokens an empty string stays text
	assert.Equal(t, KindText, InferCell("", nil).Kind())
	assert.Equal(t, Text("  "), InferCell("  ", na))
}

func TestReadCSVPadsShortRowsAndHonoursMaxRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "values.csv")
	body := strings.Join([]string{
		"id,value,note",
		"1,50,ok",
		"2,text",
		"3,,NA",
		"4,300,late",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	tb, err := ReadCSV(path, DefaultLoadOptions())
	require.NoError(t, err)
	require.Equal(t, 4, tb.Len())
	assert.Equal(t, []string{"id", "value", "note"}, tb.Columns())

	col, ok := tb.Column("value")
	require.True(t, ok)
	assert.Equal(t, []Cell{Number(50), Text("text"), Missing(), Number(300)}, col.Cells)
	note, _ := tb.Column("note")
	assert.True(t, note.Cells[1].IsMissing())
	assert.True(t, note.Cells[2].IsMissing())

	opt := DefaultLoadOptions()
	opt.MaxRows = 2
	tb, err = ReadCSV(path, opt)
	require.NoError(t, err)
	assert.Equal(t, 2, tb.Len())
}

func TestReadCSVKeepsWhitespaceCellsAsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.csv")
	require.NoError(t, os.WriteFile(path, []byte("value\n\" \"\n5\n\n"), 0o644))
	tb, err := ReadCSV(path, DefaultLoadOptions())
	require.NoError(t, err)
	col, _ := tb.Column("value")
	assert.Equal(t, []Cell{Text(" "), Number(5)}, col.Cells)
}

func TestReadCSVStopsBeforeRowsPastMaxRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tail.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,value\n1,10\n2,20\n3,\"broken\n"), 0o644))
	opt := DefaultLoadOptions()
	opt.MaxRows = 2
	tb, err := ReadCSV(path, opt)
	require.NoError(t, err)
	assert.Equal(t, 2, tb.Len())

	_, err = ReadCSV(path, DefaultLoadOptions())
	assert.Error(t, err)
}

func TestReadCSVTabDelimitedAndDuplicateHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.tsv")
	require.NoError(t, os.WriteFile(path, []byte("x\tx\t\n1\t2\t3\n"), 0o644))
	tb, err := Load(path, DefaultLoadOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "x.1", "column_3"}, tb.Columns())
}

func TestReadCSVSuffixedHeadersStayUnique(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dup.csv")
	require.NoError(t, os.WriteFile(path, []byte("x,x,x.1\n1,2,3\n"), 0o644))
	tb, err := ReadCSV(path, DefaultLoadOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "x.1", "x.1.1"}, tb.Columns())
}

func TestReadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"id", "value"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{1, 150}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{2, "text"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]any{3, true}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A5", &[]any{4, 1234567.5}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A6", &[]any{5, 0.125}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A7", &[]any{6, false}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A8", &[]any{1, 0}))
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	require.NoError(t, err)
	percent, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "B5", "B5", thousands))
	require.NoError(t, f.SetCellStyle("Sheet1", "B6", "B6", percent))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tb, err := Load(path, DefaultLoadOptions())
	require.NoError(t, err)
	require.Equal(t, 7, tb.Len())
	col, _ := tb.Column("value")
	assert.Equal(t, KindNumber, col.Cells[0].Kind())
	assert.Equal(t, 150.0, col.Cells[0].Float())
	assert.Equal(t, Text("text"), col.Cells[1])
	assert.Equal(t, Bool(true), col.Cells[2])
	// display formats do not leak into the values
	assert.Equal(t, Number(1234567.5), col.Cells[3])
	assert.Equal(t, Number(0.125), col.Cells[4])
	assert.Equal(t, Bool(false), col.Cells[5])
	// numeric 0 and 1 stay numbers
	assert.Equal(t, Number(0), col.Cells[6])
	id, _ := tb.Column("id")
	assert.Equal(t, Number(1), id.Cells[6])

	opt := DefaultLoadOptions()
	opt.Sheet = "Missing"
	_, err = ReadXLSX(path, opt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available sheets: Sheet1")
}

func TestDecodeJSONKeepsTypesAndKeyOrder(t *testing.T) {
	in := `[
		{"value": 50, "id": 1},
		{"value": "text", "id": 2, "extra": [1,2]},
		{"value": null, "id": 3},
		{"value": true}
	]`
	tb, err := DecodeJSON(strings.NewReader(in), DefaultLoadOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"value", "id", "extra"}, tb.Columns())
	col, _ := tb.Column("value")
	assert.Equal(t, []Cell{Number(50), Text("text"), Missing(), Bool(true)}, col.Cells)
	id, _ := tb.Column("id")
	assert.True(t, id.Cells[3].IsMissing())
	extra, _ := tb.Column("extra")
	assert.Equal(t, Text("[1,2]"), extra.Cells[1])

	_, err = DecodeJSON(strings.NewReader(`{"value": 1}`), DefaultLoadOptions())
	require.Error(t, err)
}
