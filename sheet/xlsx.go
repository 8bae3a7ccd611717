package sheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"
)

// temporary name used while replacing a sheet in place, excelize refuses to
// delete the last remaining sheet so the old one is parked first.
const scratchSheet = "__uqp_scratch__"

// XlsxStore reads and writes sheets of a single xlsx workbook on disk. Every
// call opens the file fresh, nothing is cached between requests. Writes are
// serialized by a mutex across the whole open-modify-persist cycle, reads run
// unblocked against the last persisted file.
type XlsxStore struct {
	path string
	wmu  sync.Mutex
}

func NewXlsxStore(path string) *XlsxStore {
	return &XlsxStore{path: path}
}

func (self *XlsxStore) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(self.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrWorkbookNotFound, self.path)
		}
		return nil, err
	}
	return f, nil
}

// find locates a sheet by name, case-insensitively, and returns its actual
// name inside the workbook.
func find(f *excelize.File, name string) (string, bool) {
	for _, s := range f.GetSheetList() {
		if strings.EqualFold(s, name) {
			return s, true
		}
	}
	return "", false
}

func (self *XlsxStore) Sheets(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := self.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetSheetList(), nil
}

func (self *XlsxStore) Read(ctx context.Context, name string) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := self.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	actual, ok := find(f, name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	rows, err := f.GetRows(actual)
	if err != nil {
		return nil, err
	}
	tab := &Table{}
	if len(rows) > 0 {
		tab.Header = rows[0]
		tab.Rows = rows[1:]
	}
	return tab, nil
}

// Replace deletes any sheet with the same name (case-insensitive), creates a
// new one with a bold header row and the data rows as text, formats the
// written range as a table and persists the workbook.
func (self *XlsxStore) Replace(ctx context.Context, name string, tab *Table) error {
	self.wmu.Lock()
	defer self.wmu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := self.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if old, ok := find(f, name); ok {
		if err := f.SetSheetName(old, scratchSheet); err != nil {
			return err
		}
	}
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if _, ok := find(f, scratchSheet); ok {
		if err := f.DeleteSheet(scratchSheet); err != nil {
			return err
		}
	}

	if err := self.write(f, name, tab); err != nil {
		return err
	}
	return f.Save()
}

func (self *XlsxStore) write(f *excelize.File, name string, tab *Table) error {
	header := make([]interface{}, len(tab.Header))
	for i, h := range tab.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	for i, row := range tab.Rows {
		cells := make([]interface{}, len(row))
		for j, c := range row {
			cells[j] = c
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &cells); err != nil {
			return err
		}
	}

	if len(tab.Header) == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(tab.Header), len(tab.Rows)+1)
	if err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	headerEnd, err := excelize.CoordinatesToCellName(len(tab.Header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", headerEnd, bold); err != nil {
		return err
	}
	return f.AddTable(name, &excelize.Table{Range: "A1:" + last})
}

// Overwrite replaces the entire workbook file with the uploaded content. The
// source is parsed first so a broken upload cannot clobber a good workbook.
func (self *XlsxStore) Overwrite(ctx context.Context, src io.Reader) error {
	self.wmu.Lock()
	defer self.wmu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := excelize.OpenReader(src)
	if err != nil {
		return fmt.Errorf("not a valid workbook: %w", err)
	}
	defer f.Close()
	return f.SaveAs(self.path)
}
