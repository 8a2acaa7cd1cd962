package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewAlias_Classifies(t *testing.T) {
	assert.Equal(t, AliasSimple, NewAlias("foo", "bar baz").Type)
	assert.Equal(t, AliasComplex, NewAlias("foo", "get all;wear all").Type)
	assert.Equal(t, AliasComplex, NewAlias("k", "kill $1").Type)
}

func TestAliases_SetFindDelete(t *testing.T) {
	var as Aliases
	as = as.Set("Foo", "bar")
	as = as.Set("foo", "baz")
	require.Len(t, as, 1)
	assert.Equal(t, "baz", as[0].Replacement)

	as, ok := as.Delete("foo")
	assert.True(t, ok)
	assert.Empty(t, as)
	_, ok = as.Delete("foo")
	assert.False(t, ok)
}

func TestExpand_Simple(t *testing.T) {
	as := Aliases{}.Set("foo", "bar baz")
	lines, queued := as.Expand("foo")
	assert.False(t, queued)
	assert.Equal(t, []string{"bar baz"}, lines)
}

func TestExpand_NoMatch(t *testing.T) {
	as := Aliases{}.Set("foo", "bar")
	lines, queued := as.Expand("food now")
	assert.False(t, queued)
	assert.Equal(t, []string{"food now"}, lines)
}

func TestExpand_ComplexPositional(t *testing.T) {
	as := Aliases{}.Set("gg", "get $1 $2;wear $1;say done with $*")
	lines, queued := as.Expand("gg sword bag")
	require.True(t, queued)
	assert.Equal(t, []string{"get sword bag", "wear sword", "say done with sword bag"}, lines)
}

func TestExpand_MissingTokenAndDollar(t *testing.T) {
	as := Aliases{}.Set("x", "say $3 costs $$5")
	lines, _ := as.Expand("x one")
	assert.Equal(t, []string{"say 3 costs $$5"}, lines)
}

func TestPropertyComplexSplitsOnSemicolons(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		parts := rapid.SliceOfN(rapid.StringMatching(`[a-z ]{1,10}`), 1, 6).Draw(t, "parts")
		as := Aliases{}.Set("mac", strings.Join(parts, ";"))
		lines, _ := as.Expand("mac")
		if len(parts) > 1 && len(lines) != len(parts) {
			t.Fatalf("got %d lines for %d parts", len(lines), len(parts))
		}
	})
}
