package query

import (
	"errors"
	"fmt"
	"strings"
)

const (
	EngineRelational = iota
	EngineTabular
)

var ErrUnsupportedEngine = errors.New("unsupported engine")

// ParseEngine resolves the engine name case-insensitively. Anything outside
// the two known names is an error, there is no default engine.
func ParseEngine(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "relational":
		return EngineRelational, nil
	case "tabular":
		return EngineTabular, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedEngine, name)
	}
}

// Join describes one inner-equality join step against a named table/sheet.
type Join struct {
	Table       string `json:"table"`
	LeftColumn  string `json:"leftColumn"`
	RightColumn string `json:"rightColumn"`
}

// Request is the engine-agnostic query description. It is built once per call
// and never mutated by the engines.
type Request struct {
	Engine     string   `json:"engine"`
	Table      string   `json:"table"`
	Columns    []string `json:"columns,omitempty"`
	Joins      []Join   `json:"joins,omitempty"`
	Filter     string   `json:"filter,omitempty"`
	OrderBy    string   `json:"orderBy,omitempty"`
	Limit      *int     `json:"limit,omitempty"`
	Offset     *int     `json:"offset,omitempty"`
	ExportName string   `json:"exportName,omitempty"`
}

func (self *Request) Validate() error {
	if self.Table == "" {
		return errors.New("table is required")
	}
	if self.Limit != nil && *self.Limit < 0 {
		return fmt.Errorf("limit must be non-negative, got %d", *self.Limit)
	}
	if self.Offset != nil && *self.Offset < 0 {
		return fmt.Errorf("offset must be non-negative, got %d", *self.Offset)
	}
	for _, j := range self.Joins {
		if j.Table == "" || j.LeftColumn == "" || j.RightColumn == "" {
			return errors.New("join requires table, leftColumn and rightColumn")
		}
	}
	return nil
}
