package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilter(t *testing.T) {
	assert := assert.New(t)
	one := func(in string, col string, lit string) {
		p, ok := ParseFilter(in)
		assert.True(ok, "input %q", in)
		assert.Equal(col, p.Column)
		assert.Equal(lit, p.Literal)
	}
	none := func(in string) {
		_, ok := ParseFilter(in)
		assert.False(ok, "input %q", in)
	}

	one("dept = Eng", "dept", "Eng")
	one("dept=Eng", "dept", "Eng")
	one(`name = "Ann B"`, "name", "Ann B")
	one("name = 'Ann'", "name", "Ann")
	one("a = ", "a", "")

	none("")
	none("   ")
	none("not-an-equality")
	none("a = b = c") // three parts, ignored
}

func TestParseOrder(t *testing.T) {
	assert := assert.New(t)
	one := func(in string, col string, desc bool) {
		o, ok := ParseOrder(in)
		assert.True(ok, "input %q", in)
		assert.Equal(col, o.Column)
		assert.Equal(desc, o.Desc)
	}

	one("id", "id", false)
	one("id ASC", "id", false)
	one("id desc", "id", true)
	one("id DESC", "id", true)
	one("id banana", "id", false) // unknown direction means ascending

	_, ok := ParseOrder("   ")
	assert.False(ok)
}

func TestParseEngine(t *testing.T) {
	assert := assert.New(t)
	for _, name := range []string{"tabular", "TABULAR", " Tabular "} {
		e, err := ParseEngine(name)
		assert.NoError(err)
		assert.Equal(EngineTabular, e)
	}
	e, err := ParseEngine("Relational")
	assert.NoError(err)
	assert.Equal(EngineRelational, e)

	_, err = ParseEngine("graph")
	assert.ErrorIs(err, ErrUnsupportedEngine)
}
