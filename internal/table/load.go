package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadOptions controls how files are turned into tables.
type LoadOptions struct {
	// Delimiter for CSV. If 0, it is picked from the file extension.
	Delimiter rune
	// NAValues are tokens read as missing cells; they match the raw field exactly.
	NAValues []string
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
	// Sheet selects an XLSX sheet by name; empty means the first sheet.
	Sheet string
}

// DefaultNAValues mirrors the tokens dataframe libraries read as missing by default.
var DefaultNAValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "None", "#N/A"}

// DefaultLoadOptions returns reasonable defaults for loading datasets.
func DefaultLoadOptions() LoadOptions {
	na := make([]string, len(DefaultNAValues))
	copy(na, DefaultNAValues)
	return LoadOptions{NAValues: na}
}

// Load reads a dataset, choosing the reader by file extension.
func Load(path string, opt LoadOptions) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return ReadCSV(path, opt)
	case ".xlsx":
		return ReadXLSX(path, opt)
	case ".json":
		return ReadJSON(path, opt)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", filepath.Base(path))
	}
}

// ReadCSV loads a delimited file with a header row.
func ReadCSV(path string, opt LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return New()
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	var records [][]string
	for opt.MaxRows <= 0 || len(records) < opt.MaxRows {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return fromRecords(header, records, opt.NAValues)
}

// fromRecords builds a table from a header and string records. Short rows are
// padded with missing cells; extra fields are dropped.
func fromRecords(header []string, records [][]string, naValues []string) (*Table, error) {
	ncol := len(header)
	cols := make([]Column, ncol)
	used := make(map[string]bool, ncol)
	for j, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("column_%d", j+1)
		}
		// Duplicate headers get a numeric suffix so every column stays addressable.
		if used[name] {
			base := name
			for n := 1; used[name]; n++ {
				name = fmt.Sprintf("%s.%d", base, n)
			}
		}
		used[name] = true
		cols[j] = Column{Name: name, Cells: make([]Cell, len(records))}
	}
	for i, rec := range records {
		for j := 0; j < ncol; j++ {
			if j >= len(rec) {
				cols[j].Cells[i] = Missing()
				continue
			}
			cols[j].Cells[i] = InferCell(rec[j], naValues)
		}
	}
	return New(cols...)
}

func sniffDelimiter(path string) rune {
	name := strings.ToLower(path)
	if strings.HasSuffix(name, ".tsv") {
		return '\t'
	}
	return ','
}
