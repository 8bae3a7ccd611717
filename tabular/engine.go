package tabular

import (
	"context"
	"errors"
	"fmt"

	"github.com/isNotOkay/universal-query-playground-api/query"
	"github.com/isNotOkay/universal-query-playground-api/sheet"
)

var ErrJoinKeyNotFound = errors.New("join key not found")

// Engine interprets a query request over sheets loaded from a workbook store.
// There is no query language on this path; the relational operators run in
// memory over the loaded rows, always in the same stage order:
//
//	Load -> Join* -> Filter -> Order -> Project -> Paginate -> Export
//
// Every stage is a pure transformation except Export, which persists the
// result as a new sheet and never alters the returned rows.
type Engine struct {
	store sheet.Store
}

func New(store sheet.Store) *Engine {
	return &Engine{store: store}
}

func (self *Engine) Execute(ctx context.Context, req *query.Request) (*query.Result, error) {
	rows, err := self.load(ctx, req.Table)
	if err != nil {
		return nil, err
	}
	for _, j := range req.Joins {
		rows, err = self.join(ctx, rows, j)
		if err != nil {
			return nil, err
		}
	}
	rows = applyFilter(rows, req.Filter)
	rows = applyOrder(rows, req.OrderBy)
	rows = project(rows, req.Columns)
	rows = paginate(rows, req.Offset, req.Limit)

	res := &query.Result{Rows: rows}
	if req.ExportName != "" && len(rows) > 0 {
		// export failure must not discard the rows the caller is about to
		// receive, it degrades to a warning on the result
		if err := self.export(ctx, req.ExportName, rows); err != nil {
			res.Warning = fmt.Sprintf("export to sheet %q failed: %v", req.ExportName, err)
		}
	}
	return res, nil
}

// load reads a sheet into rows. The first used row supplies the column names,
// every cell becomes a Text value, short rows are padded with empty text so
// all loaded rows carry the full header column set.
func (self *Engine) load(ctx context.Context, table string) (query.ResultSet, error) {
	tab, err := self.store.Read(ctx, table)
	if err != nil {
		return nil, err
	}
	out := make(query.ResultSet, 0, len(tab.Rows))
	for _, cells := range tab.Rows {
		row := query.NewRow()
		for i, col := range tab.Header {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			row.Set(col, query.Text(cell))
		}
		out = append(out, row)
	}
	return out, nil
}

// export serializes the result back into the workbook, replacing any sheet of
// the same name. Values are written in their textual form.
func (self *Engine) export(ctx context.Context, name string, rows query.ResultSet) error {
	header := rows[0].Columns()
	tab := &sheet.Table{Header: header}
	for _, row := range rows {
		cells := make([]string, len(header))
		for i, col := range header {
			if v, ok := row.Get(col); ok {
				cells[i] = v.String()
			}
		}
		tab.Rows = append(tab.Rows, cells)
	}
	return self.store.Replace(ctx, name, tab)
}
