package tabular

import (
	"sort"

	"github.com/isNotOkay/universal-query-playground-api/query"
)

// applyOrder sorts the rows by a single column, optionally descending. The
// sort key per row is the interpreted cell value (timestamp, then number,
// then raw text); a missing or null cell sorts as a null key, before
// everything else. The sort is stable, equal keys keep their relative order.
// Unparseable order text leaves the rows untouched.
func applyOrder(rows query.ResultSet, spec string) query.ResultSet {
	ord, ok := query.ParseOrder(spec)
	if !ok {
		return rows
	}

	keys := make([]query.Value, len(rows))
	for i, row := range rows {
		v, ok := row.Get(ord.Column)
		if !ok {
			keys[i] = query.Null()
			continue
		}
		keys[i] = v.Interpret()
	}

	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		c := query.Compare(keys[idx[a]], keys[idx[b]])
		if ord.Desc {
			return c > 0
		}
		return c < 0
	})

	out := make(query.ResultSet, len(rows))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}
