package table

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads one sheet of a workbook. The first non-empty row is the header.
// If opt.Sheet is empty the first sheet is used.
func ReadXLSX(path string, opt LoadOptions) (*Table, error) {
	// Raw values keep stored numbers instead of their display format ("1,234.50", "12.5%").
	f, err := excelize.OpenFile(path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return New()
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(opt.Sheet)) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook '%s'.\nAvailable sheets: %s",
				opt.Sheet, filepath.Base(path), strings.Join(sheets, ", "))
		}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	// skip leading blank rows
	first := 0
	for first < len(rows) && isBlankRow(rows[first]) {
		first++
	}
	if first == len(rows) {
		return New()
	}
	header, records := rows[first], rows[first+1:]
	if opt.MaxRows > 0 && len(records) > opt.MaxRows {
		records = records[:opt.MaxRows]
	}
	if err := restoreBooleans(f, sheet, records, first+2); err != nil {
		return nil, err
	}
	return fromRecords(header, records, opt.NAValues)
}

// restoreBooleans rewrites raw boolean cells, which read back as "1" or "0",
// to TRUE or FALSE. firstRow is the 1-based sheet row of records[0].
func restoreBooleans(f *excelize.File, sheet string, records [][]string, firstRow int) error {
	for i, rec := range records {
		for j, v := range rec {
			if v != "1" && v != "0" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, firstRow+i)
			if err != nil {
				return err
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return fmt.Errorf("read cell %s: %w", cell, err)
			}
			if typ == excelize.CellTypeBool {
				if v == "1" {
					rec[j] = "TRUE"
				} else {
					rec[j] = "FALSE"
				}
			}
		}
	}
	return nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
