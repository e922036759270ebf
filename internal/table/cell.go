package table

import (
	"math"
	"strconv"
	"strings"
)

// Kind tags the runtime type of a Cell.
type Kind uint8

const (
	KindMissing Kind = iota
	KindNumber
	KindText
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Cell is a single column value. Exactly one kind is set; build cells with
// Number, Text, Bool or Missing.
type Cell struct {
	kind Kind
	num  float64
	text string
	b    bool
}

// Number returns a numeric cell. NaN is a missing value, so Number(NaN) is Missing.
func Number(f float64) Cell {
	if math.IsNaN(f) {
		return Cell{}
	}
	return Cell{kind: KindNumber, num: f}
}

// Text returns a string cell. The value is kept as-is (no trimming).
func Text(s string) Cell { return Cell{kind: KindText, text: s} }

// Bool returns a boolean cell.
func Bool(b bool) Cell { return Cell{kind: KindBool, b: b} }

// Missing returns the missing cell (also the zero value).
func Missing() Cell { return Cell{} }

func (c Cell) Kind() Kind { return c.kind }
func (c Cell) IsMissing() bool { return c.kind == KindMissing }
func (c Cell) Float() float64 { return c.num }
func (c Cell) Str() string { return c.text }
func (c Cell) Boolean() bool { return c.b }

// String renders the cell for reports. Missing renders as an empty string.
func (c Cell) String() string {
	switch c.kind {
	case KindNumber:
		return strconv.FormatFloat(c.num, 'g', -1, 64)
	case KindText:
		return c.text
	case KindBool:
		return strconv.FormatBool(c.b)
	case KindMissing:
		return ""
	}
	return ""
}

// Interface returns the cell as a plain Go value (float64, string, bool or nil),
// which is what encoders expect.
func (c Cell) Interface() any {
	switch c.kind {
	case KindNumber:
		if math.IsInf(c.num, 0) {
			return c.String()
		}
		return c.num
	case KindText:
		return c.text
	case KindBool:
		return c.b
	case KindMissing:
		return nil
	}
	return nil
}

// InferCell builds a cell from raw text as it comes out of a CSV or XLSX file:
// NA tokens become Missing, true/false become Bool, float literals become Number
// and everything else stays Text. NA tokens match the raw text exactly, so a
// whitespace-only cell stays Text.
func InferCell(raw string, naValues []string) Cell {
	for _, na := range naValues {
		if raw == na {
			return Missing()
		}
	}
	v := strings.TrimSpace(raw)
	switch strings.ToLower(v) {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if f, ok := ParseNumber(v); ok {
		return Number(f)
	}
	return Text(raw)
}

// ParseNumber parses a decimal float literal, including inf and nan spellings.
// Hex literals such as "0x1p4" are rejected.
func ParseNumber(s string) (float64, bool) {
	digits := strings.TrimLeft(s, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
