package relational

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/isNotOkay/universal-query-playground-api/query"
)

// Engine compiles a request to SQL and executes it remotely. Row values come
// back typed by the driver (integer, real, timestamp, text) instead of the
// string-only shape the tabular path produces.
type Engine struct {
	db      *sql.DB
	dialect int
}

func New(db *sql.DB, dialect int) *Engine {
	return &Engine{db: db, dialect: dialect}
}

func (self *Engine) Execute(ctx context.Context, req *query.Request) (*query.Result, error) {
	stmt, args := Compile(req, self.dialect)
	rows, err := self.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := query.ResultSet{}
	for rows.Next() {
		raw := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := query.NewRow()
		for i, col := range cols {
			row.Set(col, toValue(raw[i]))
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &query.Result{Rows: out}, nil
}

// toValue maps a driver-native column value into the value model.
func toValue(v interface{}) query.Value {
	switch x := v.(type) {
	case nil:
		return query.Null()
	case int64:
		return query.Number(float64(x))
	case float64:
		return query.Number(x)
	case time.Time:
		return query.Timestamp(x)
	case bool:
		if x {
			return query.Text("true")
		}
		return query.Text("false")
	case []byte:
		return query.Text(string(x))
	case string:
		return query.Text(x)
	default:
		return query.Text(fmt.Sprintf("%v", x))
	}
}
