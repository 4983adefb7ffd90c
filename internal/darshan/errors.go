package darshan

import (
	"errors"
	"fmt"
)

// ErrNoData reports that the parsed log content was empty.
var ErrNoData = errors.New("no data found in log content")

// EmptyCategoryError reports a module section that was opened but never
// accumulated a data row.
type EmptyCategoryError struct {
	Module string
}

func (e *EmptyCategoryError) Error() string {
	return fmt.Sprintf("module %s: section contains no data rows", e.Module)
}

// DegenerateSchemaError reports a module whose columns cannot support the
// long-to-wide pivot: either no identity columns remain once counter and
// value are removed, or one of counter/value is missing entirely.
type DegenerateSchemaError struct {
	Module string
	Reason string
}

func (e *DegenerateSchemaError) Error() string {
	return fmt.Sprintf("module %s: cannot pivot: %s", e.Module, e.Reason)
}

// RowMismatchError reports a data row with fewer tokens than the module's
// column spec defines. Rows with extra leading tokens are tolerated (the
// trailing window aligned to the columns is used), but short rows cannot be
// aligned and would silently corrupt the table.
type RowMismatchError struct {
	Module  string
	Tokens  int
	Columns int
}

func (e *RowMismatchError) Error() string {
	return fmt.Sprintf("module %s: row has %d tokens but column spec defines %d",
		e.Module, e.Tokens, e.Columns)
}
