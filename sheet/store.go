package sheet

import (
	"context"
	"errors"
)

var (
	ErrWorkbookNotFound = errors.New("workbook not found")
	ErrSheetNotFound    = errors.New("sheet not found")
)

// Table is one named sheet's content: the first used row as header, the rest
// as data rows. Cells are raw text, typing is the engine's concern.
type Table struct {
	Header []string
	Rows   [][]string
}

// Store is the narrow accessor the tabular engine depends on. Implementations
// must allow concurrent Read/Sheets calls and serialize Replace internally.
type Store interface {
	Sheets(ctx context.Context) ([]string, error)
	Read(ctx context.Context, name string) (*Table, error)
	Replace(ctx context.Context, name string, tab *Table) error
}
