package query

import (
	"bytes"
	"encoding/json"
)

// Row is an insertion-ordered mapping from column name to Value. The column
// order is explicit, never an artifact of map iteration.
type Row struct {
	cols  []string
	cells map[string]Value
}

func NewRow() *Row {
	return &Row{
		cells: make(map[string]Value),
	}
}

// Set stores the value under the column. A new column is appended at the end,
// an existing one keeps its position and only the value is replaced. The
// replace semantic is what makes the join's "right side wins" rule work.
func (self *Row) Set(col string, v Value) {
	if _, ok := self.cells[col]; !ok {
		self.cols = append(self.cols, col)
	}
	self.cells[col] = v
}

func (self *Row) Get(col string) (Value, bool) {
	v, ok := self.cells[col]
	return v, ok
}

// Columns returns the column names in insertion order. The returned slice is
// owned by the row, callers must not mutate it.
func (self *Row) Columns() []string { return self.cols }

func (self *Row) Len() int { return len(self.cols) }

func (self *Row) Clone() *Row {
	out := &Row{
		cols:  make([]string, len(self.cols)),
		cells: make(map[string]Value, len(self.cells)),
	}
	copy(out.cols, self.cols)
	for k, v := range self.cells {
		out.cells[k] = v
	}
	return out
}

// MarshalJSON writes the row as an object with keys in column order.
func (self *Row) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, col := range self.cols {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(self.cells[col].Primitive())
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ResultSet is the ordered row sequence a query produces.
type ResultSet []*Row

// Result is what an engine hands back: the rows plus an optional warning for
// side effects that failed without invalidating the rows (export).
type Result struct {
	Rows    ResultSet `json:"rows"`
	Warning string    `json:"warning,omitempty"`
}
