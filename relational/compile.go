package relational

import (
	"fmt"
	"strings"

	"github.com/isNotOkay/universal-query-playground-api/query"
)

const (
	DialectSQLite = iota
	DialectPostgres
)

// ParseDialect maps a driver name from configuration to a dialect.
func ParseDialect(driver string) (int, error) {
	switch strings.ToLower(driver) {
	case "", "sqlite":
		return DialectSQLite, nil
	case "pgx", "postgres":
		return DialectPostgres, nil
	default:
		return 0, fmt.Errorf("unknown database driver %q", driver)
	}
}

// Compile translates the request into a single SELECT statement with bound
// arguments. Identifiers are quoted, the filter literal and the paging bounds
// travel as parameters; unparseable filter or order text is omitted, matching
// the tabular engine's permissive no-op.
//
// The join predicate qualifies both sides with the joined table's name. That
// mirrors the long-standing behavior of this API and only resolves joins
// whose key columns live on the right table; do not "fix" it here without a
// contract change.
func Compile(req *query.Request, dialect int) (string, []interface{}) {
	sb := strings.Builder{}
	args := []interface{}{}

	ph := func() string {
		if dialect == DialectPostgres {
			return fmt.Sprintf("$%d", len(args))
		}
		return "?"
	}

	sb.WriteString("SELECT ")
	if len(req.Columns) > 0 {
		cols := make([]string, len(req.Columns))
		for i, c := range req.Columns {
			cols[i] = quoteIdent(c)
		}
		sb.WriteString(strings.Join(cols, ", "))
	} else {
		sb.WriteString("*")
	}
	sb.WriteString(" FROM ")
	sb.WriteString(quoteIdent(req.Table))

	for _, j := range req.Joins {
		sb.WriteString(fmt.Sprintf(
			" INNER JOIN %s ON %s.%s = %s.%s",
			quoteIdent(j.Table),
			quoteIdent(j.Table), quoteIdent(j.LeftColumn),
			quoteIdent(j.Table), quoteIdent(j.RightColumn),
		))
	}

	if pred, ok := query.ParseFilter(req.Filter); ok {
		args = append(args, pred.Literal)
		sb.WriteString(" WHERE ")
		sb.WriteString(quoteIdent(pred.Column))
		sb.WriteString(" = ")
		sb.WriteString(ph())
	}

	if ord, ok := query.ParseOrder(req.OrderBy); ok {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(quoteIdent(ord.Column))
		if ord.Desc {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}

	if req.Limit != nil {
		args = append(args, *req.Limit)
		sb.WriteString(" LIMIT ")
		sb.WriteString(ph())
	} else if req.Offset != nil && dialect == DialectSQLite {
		// sqlite has no bare OFFSET clause
		sb.WriteString(" LIMIT -1")
	}
	if req.Offset != nil {
		args = append(args, *req.Offset)
		sb.WriteString(" OFFSET ")
		sb.WriteString(ph())
	}

	return sb.String(), args
}

// quoteIdent quotes an identifier with ANSI double quotes, doubling any
// embedded quote.
func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
