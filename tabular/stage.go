package tabular

import (
	"strings"

	"github.com/isNotOkay/universal-query-playground-api/query"
)

// applyFilter keeps rows whose named column equals the literal, comparing the
// textual forms case-insensitively. Rows missing the column are excluded.
// Filter text that is not a single `column = literal` predicate is ignored
// entirely, the rows pass through unfiltered.
func applyFilter(rows query.ResultSet, filter string) query.ResultSet {
	pred, ok := query.ParseFilter(filter)
	if !ok {
		return rows
	}
	out := make(query.ResultSet, 0, len(rows))
	for _, row := range rows {
		v, ok := row.Get(pred.Column)
		if !ok {
			continue
		}
		if strings.EqualFold(v.String(), pred.Literal) {
			out = append(out, row)
		}
	}
	return out
}

// project retains only the allow-listed columns, preserving each row's
// existing relative column order. Rows lacking a listed column simply omit
// it. An empty allow-list means no projection.
func project(rows query.ResultSet, columns []string) query.ResultSet {
	if len(columns) == 0 {
		return rows
	}
	keep := make(map[string]bool, len(columns))
	for _, c := range columns {
		keep[c] = true
	}
	out := make(query.ResultSet, len(rows))
	for i, row := range rows {
		p := query.NewRow()
		for _, col := range row.Columns() {
			if keep[col] {
				v, _ := row.Get(col)
				p.Set(col, v)
			}
		}
		out[i] = p
	}
	return out
}

// paginate drops offset leading rows, then truncates to limit. Offset is
// applied before limit regardless of which are present; an offset past the
// end yields an empty set, not an error.
func paginate(rows query.ResultSet, offset *int, limit *int) query.ResultSet {
	if offset != nil {
		if *offset >= len(rows) {
			rows = query.ResultSet{}
		} else {
			rows = rows[*offset:]
		}
	}
	if limit != nil && *limit < len(rows) {
		rows = rows[:*limit]
	}
	return rows
}
