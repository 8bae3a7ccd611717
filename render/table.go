package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/isNotOkay/universal-query-playground-api/query"
)

const minWidth = 4

// Table writes the result set as an aligned terminal table with a bold cyan
// header. Column order is the first row's column order; later rows print
// their cells under whichever of those columns they carry.
func Table(w io.Writer, rows query.ResultSet) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	cols := rows[0].Columns()

	width := make([]int, len(cols))
	for i, c := range cols {
		width[i] = len(c)
		if width[i] < minWidth {
			width[i] = minWidth
		}
	}
	cells := make([][]string, len(rows))
	for ri, row := range rows {
		cells[ri] = make([]string, len(cols))
		for ci, c := range cols {
			if v, ok := row.Get(c); ok {
				cells[ri][ci] = v.String()
			}
			if n := len(cells[ri][ci]); n > width[ci] {
				width[ci] = n
			}
		}
	}

	header := color.New(color.FgCyan, color.Bold)
	for ci, c := range cols {
		if ci > 0 {
			fmt.Fprint(w, "  ")
		}
		header.Fprintf(w, "%-*s", width[ci], c)
	}
	fmt.Fprintln(w)
	for ci := range cols {
		if ci > 0 {
			fmt.Fprint(w, "  ")
		}
		fmt.Fprint(w, strings.Repeat("-", width[ci]))
	}
	fmt.Fprintln(w)

	for _, row := range cells {
		for ci, cell := range row {
			if ci > 0 {
				fmt.Fprint(w, "  ")
			}
			fmt.Fprintf(w, "%-*s", width[ci], cell)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "(%d rows)\n", len(rows))
}
