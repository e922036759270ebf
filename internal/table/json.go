package table

import (
	"errors"
	"fmt"
	"io"
	"os"

	gojson "github.com/goccy/go-json"
)

// ReadJSON loads an array of flat objects. Columns appear in the order their keys
// are first seen; objects lacking a key get a missing cell. JSON keeps real types,
// so this is the one loader that can produce mixed number/text/bool columns
// exactly as written.
func ReadJSON(path string, opt LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open json: %w", err)
	}
	defer f.Close()
	return DecodeJSON(f, opt)
}

// DecodeJSON is ReadJSON over an arbitrary reader.
func DecodeJSON(r io.Reader, opt LoadOptions) (*Table, error) {
	dec := gojson.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return New()
		}
		return nil, fmt.Errorf("read json: %w", err)
	}
	if d, ok := tok.(gojson.Delim); !ok || d != '[' {
		return nil, fmt.Errorf("read json: expected array of objects, got %v", tok)
	}

	var fields []string
	index := map[string]int{}
	var rows []map[string]Cell
	for dec.More() {
		if opt.MaxRows > 0 && len(rows) >= opt.MaxRows {
			break
		}
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		if d, ok := tok.(gojson.Delim); !ok || d != '{' {
			return nil, fmt.Errorf("read row %d: expected object, got %v", len(rows)+1, tok)
		}
		row := map[string]Cell{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("read row %d: expected key, got %v", len(rows)+1, kt)
			}
			var raw gojson.RawMessage
			if err := dec.Decode(&raw); err != nil {
				return nil, fmt.Errorf("read row %d field %q: %w", len(rows)+1, key, err)
			}
			cell, err := jsonCell(raw)
			if err != nil {
				return nil, fmt.Errorf("read row %d field %q: %w", len(rows)+1, key, err)
			}
			if _, seen := index[key]; !seen {
				index[key] = len(fields)
				fields = append(fields, key)
			}
			row[key] = cell
		}
		// closing '}'
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, row)
	}

	cols := make([]Column, len(fields))
	for j, name := range fields {
		cells := make([]Cell, len(rows))
		for i, row := range rows {
			if c, ok := row[name]; ok {
				cells[i] = c
			}
		}
		cols[j] = Column{Name: name, Cells: cells}
	}
	return New(cols...)
}

func jsonCell(raw gojson.RawMessage) (Cell, error) {
	var v any
	if err := gojson.Unmarshal(raw, &v); err != nil {
		return Cell{}, err
	}
	switch x := v.(type) {
	case nil:
		return Missing(), nil
	case float64:
		return Number(x), nil
	case string:
		return Text(x), nil
	case bool:
		return Bool(x), nil
	default:
		b, err := gojson.Marshal(x)
		if err != nil {
			return Cell{}, err
		}
		return Text(string(b)), nil
	}
}
