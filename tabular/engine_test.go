package tabular

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isNotOkay/universal-query-playground-api/query"
	"github.com/isNotOkay/universal-query-playground-api/sheet"
)

// fakeStore is an in-memory sheet.Store for engine tests.
type fakeStore struct {
	sheets     map[string]*sheet.Table
	replaceErr error
	replaced   map[string]*sheet.Table
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sheets:   map[string]*sheet.Table{},
		replaced: map[string]*sheet.Table{},
	}
}

func (self *fakeStore) Sheets(ctx context.Context) ([]string, error) {
	out := []string{}
	for name := range self.sheets {
		out = append(out, name)
	}
	return out, nil
}

func (self *fakeStore) Read(ctx context.Context, name string) (*sheet.Table, error) {
	for n, tab := range self.sheets {
		if strings.EqualFold(n, name) {
			return tab, nil
		}
	}
	return nil, sheet.ErrSheetNotFound
}

func (self *fakeStore) Replace(ctx context.Context, name string, tab *sheet.Table) error {
	if self.replaceErr != nil {
		return self.replaceErr
	}
	self.replaced[name] = tab
	return nil
}

func employees() *fakeStore {
	s := newFakeStore()
	s.sheets["Employees"] = &sheet.Table{
		Header: []string{"id", "name", "dept"},
		Rows: [][]string{
			{"1", "Ann", "Eng"},
			{"2", "Bob", "Ops"},
		},
	}
	return s
}

func run(t *testing.T, store sheet.Store, req *query.Request) *query.Result {
	t.Helper()
	res, err := New(store).Execute(context.Background(), req)
	require.NoError(t, err)
	return res
}

func cell(t *testing.T, row *query.Row, col string) string {
	t.Helper()
	v, ok := row.Get(col)
	require.True(t, ok, "column %q", col)
	return v.String()
}

func intp(v int) *int { return &v }

func TestExecuteFilter(t *testing.T) {
	assert := assert.New(t)
	res := run(t, employees(), &query.Request{
		Engine: "tabular",
		Table:  "Employees",
		Filter: "dept = Eng",
	})
	assert.Len(res.Rows, 1)
	assert.Equal("Ann", cell(t, res.Rows[0], "name"))
	assert.Equal("1", cell(t, res.Rows[0], "id"))
}

func TestExecuteFilterPermissive(t *testing.T) {
	assert := assert.New(t)
	// no '=' at all: the filter is ignored, not an error
	res := run(t, employees(), &query.Request{
		Engine: "tabular",
		Table:  "Employees",
		Filter: "not-an-equality",
	})
	assert.Len(res.Rows, 2)
}

func TestExecuteFilterCaseInsensitive(t *testing.T) {
	assert := assert.New(t)
	res := run(t, employees(), &query.Request{
		Engine: "tabular",
		Table:  "Employees",
		Filter: `dept = "eng"`,
	})
	assert.Len(res.Rows, 1)
}

func TestExecuteOrderByDesc(t *testing.T) {
	assert := assert.New(t)
	res := run(t, employees(), &query.Request{
		Engine:  "tabular",
		Table:   "Employees",
		OrderBy: "id DESC",
	})
	require.Len(t, res.Rows, 2)
	assert.Equal("2", cell(t, res.Rows[0], "id"))
	assert.Equal("1", cell(t, res.Rows[1], "id"))
}

func TestExecutePagination(t *testing.T) {
	assert := assert.New(t)
	res := run(t, employees(), &query.Request{
		Engine: "tabular",
		Table:  "Employees",
		Limit:  intp(1),
		Offset: intp(1),
	})
	require.Len(t, res.Rows, 1)
	assert.Equal("2", cell(t, res.Rows[0], "id"))

	// offset past the end: empty, no error
	res = run(t, employees(), &query.Request{
		Engine: "tabular",
		Table:  "Employees",
		Offset: intp(10),
	})
	assert.Empty(res.Rows)
}

func TestPaginationMonotonic(t *testing.T) {
	assert := assert.New(t)
	store := newFakeStore()
	tab := &sheet.Table{Header: []string{"n"}}
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		tab.Rows = append(tab.Rows, []string{n})
	}
	store.sheets["S"] = tab

	full := run(t, store, &query.Request{Engine: "tabular", Table: "S"})
	for o := 0; o <= 5; o++ {
		for l := 0; l <= 5; l++ {
			paged := run(t, store, &query.Request{
				Engine: "tabular", Table: "S",
				Offset: intp(o), Limit: intp(l),
			})
			want := []string{}
			for i := o; i < len(full.Rows) && len(want) < l; i++ {
				want = append(want, cell(t, full.Rows[i], "n"))
			}
			got := []string{}
			for _, r := range paged.Rows {
				got = append(got, cell(t, r, "n"))
			}
			assert.Equal(want, got, "offset=%d limit=%d", o, l)
		}
	}
}

func TestExecuteProjection(t *testing.T) {
	assert := assert.New(t)
	res := run(t, employees(), &query.Request{
		Engine:  "tabular",
		Table:   "Employees",
		Columns: []string{"name"},
	})
	require.Len(t, res.Rows, 2)
	for _, r := range res.Rows {
		assert.Equal([]string{"name"}, r.Columns())
	}
}

func TestJoin(t *testing.T) {
	assert := assert.New(t)
	store := employees()
	store.sheets["Depts"] = &sheet.Table{
		Header: []string{"code", "title"},
		Rows: [][]string{
			{"Eng", "Engineering"},
			{"Ops", "Operations"},
		},
	}
	res := run(t, store, &query.Request{
		Engine: "tabular",
		Table:  "Employees",
		Joins: []query.Join{
			{Table: "Depts", LeftColumn: "dept", RightColumn: "code"},
		},
	})
	require.Len(t, res.Rows, 2)
	assert.Equal("Engineering", cell(t, res.Rows[0], "title"))
	assert.Equal([]string{"id", "name", "dept", "code", "title"}, res.Rows[0].Columns())
}

func TestJoinCollisionRightWins(t *testing.T) {
	assert := assert.New(t)
	store := newFakeStore()
	store.sheets["L"] = &sheet.Table{
		Header: []string{"id", "name"},
		Rows:   [][]string{{"1", "A"}},
	}
	store.sheets["R"] = &sheet.Table{
		Header: []string{"id", "name"},
		Rows:   [][]string{{"1", "B"}},
	}
	res := run(t, store, &query.Request{
		Engine: "tabular",
		Table:  "L",
		Joins:  []query.Join{{Table: "R", LeftColumn: "id", RightColumn: "id"}},
	})
	require.Len(t, res.Rows, 1)
	assert.Equal("B", cell(t, res.Rows[0], "name"))
}

func TestJoinKeyNotFound(t *testing.T) {
	assert := assert.New(t)
	store := employees()
	store.sheets["Depts"] = &sheet.Table{
		Header: []string{"code"},
		Rows:   [][]string{{"Eng"}},
	}
	_, err := New(store).Execute(context.Background(), &query.Request{
		Engine: "tabular",
		Table:  "Employees",
		Joins:  []query.Join{{Table: "Depts", LeftColumn: "nope", RightColumn: "code"}},
	})
	assert.ErrorIs(err, ErrJoinKeyNotFound)
}

func TestSheetNotFound(t *testing.T) {
	assert := assert.New(t)
	_, err := New(employees()).Execute(context.Background(), &query.Request{
		Engine: "tabular",
		Table:  "Nope",
	})
	assert.ErrorIs(err, sheet.ErrSheetNotFound)
}

func TestSortStability(t *testing.T) {
	assert := assert.New(t)
	store := newFakeStore()
	store.sheets["S"] = &sheet.Table{
		Header: []string{"grp", "tag"},
		Rows: [][]string{
			{"1", "first"},
			{"2", "x"},
			{"1", "second"},
		},
	}
	res := run(t, store, &query.Request{
		Engine:  "tabular",
		Table:   "S",
		OrderBy: "grp",
	})
	require.Len(t, res.Rows, 3)
	assert.Equal("first", cell(t, res.Rows[0], "tag"))
	assert.Equal("second", cell(t, res.Rows[1], "tag"))
}

func TestSortMixedKeys(t *testing.T) {
	assert := assert.New(t)
	store := newFakeStore()
	store.sheets["S"] = &sheet.Table{
		Header: []string{"v"},
		Rows: [][]string{
			{"banana"},
			{"2023-05-01"},
			{"10"},
			{""},
		},
	}
	res := run(t, store, &query.Request{
		Engine:  "tabular",
		Table:   "S",
		OrderBy: "v",
	})
	got := []string{}
	for _, r := range res.Rows {
		got = append(got, cell(t, r, "v"))
	}
	// "" stays text (empty), "10" becomes a number, the date becomes a
	// timestamp; mixed kinds compare by textual form
	assert.Equal([]string{"", "10", "2023-05-01", "banana"}, got)
}

func TestExport(t *testing.T) {
	assert := assert.New(t)
	store := employees()
	res := run(t, store, &query.Request{
		Engine:     "tabular",
		Table:      "Employees",
		Filter:     "dept = Eng",
		ExportName: "EngOnly",
	})
	assert.Empty(res.Warning)
	exported, ok := store.replaced["EngOnly"]
	require.True(t, ok)
	assert.Equal([]string{"id", "name", "dept"}, exported.Header)
	assert.Equal([][]string{{"1", "Ann", "Eng"}}, exported.Rows)
}

func TestExportSkippedWhenEmpty(t *testing.T) {
	assert := assert.New(t)
	store := employees()
	res := run(t, store, &query.Request{
		Engine:     "tabular",
		Table:      "Employees",
		Filter:     "dept = Nowhere",
		ExportName: "Empty",
	})
	assert.Empty(res.Rows)
	assert.Empty(store.replaced)
	assert.Empty(res.Warning)
}

func TestExportFailureIsWarning(t *testing.T) {
	assert := assert.New(t)
	store := employees()
	store.replaceErr = errors.New("disk full")
	res := run(t, store, &query.Request{
		Engine:     "tabular",
		Table:      "Employees",
		ExportName: "Out",
	})
	// rows survive, the failure is reported alongside them
	assert.Len(res.Rows, 2)
	assert.Contains(res.Warning, "disk full")
}
