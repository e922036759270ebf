package analysis

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/dataqa-cli/internal/table"
)

// ErrColumnNotFound is matched by errors.Is for every ColumnNotFoundError.
var ErrColumnNotFound = errors.New("column not found")

// ColumnNotFoundError indicates the requested column is absent from the table.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column '%s' not found in table. Available: %v", e.Column, e.Available)
}

func (e *ColumnNotFoundError) Is(target error) bool { return target == ErrColumnNotFound }

// lookup returns the named column or a *ColumnNotFoundError.
func lookup(t *table.Table, name string) (table.Column, error) {
	col, ok := t.Column(name)
	if !ok {
		return table.Column{}, &ColumnNotFoundError{Column: name, Available: t.Columns()}
	}
	return col, nil
}
