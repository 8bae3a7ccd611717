package tabular

import (
	"context"
	"fmt"

	"github.com/isNotOkay/universal-query-playground-api/query"
)

// join performs one inner equality join between the accumulated rows and a
// freshly loaded right sheet. Keys match on exact textual equality (loaded
// cells are all Text). On a column-name collision the right side's value
// replaces the left side's, including columns that are not the join keys;
// that "last wins" merge is observable behavior and is kept as is.
func (self *Engine) join(ctx context.Context, left query.ResultSet, spec query.Join) (query.ResultSet, error) {
	right, err := self.load(ctx, spec.Table)
	if err != nil {
		return nil, err
	}

	out := query.ResultSet{}
	for _, l := range left {
		lv, ok := l.Get(spec.LeftColumn)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrJoinKeyNotFound, spec.LeftColumn)
		}
		for _, r := range right {
			rv, ok := r.Get(spec.RightColumn)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrJoinKeyNotFound, spec.RightColumn)
			}
			if lv.String() != rv.String() {
				continue
			}
			merged := l.Clone()
			for _, col := range r.Columns() {
				v, _ := r.Get(col)
				merged.Set(col, v)
			}
			out = append(out, merged)
		}
	}
	return out, nil
}
