package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestOneArgument_SkipsFillWords(t *testing.T) {
	arg, rest := OneArgument("  the Sword in the stone")
	assert.Equal(t, "sword", arg)
	assert.Equal(t, "in the stone", rest)

	arg, rest = OneArgument("from the")
	assert.Equal(t, "", arg)
	assert.Equal(t, "", rest)
}

func TestAnyOneArg_KeepsFillWords(t *testing.T) {
	arg, rest := AnyOneArg("THE bag")
	assert.Equal(t, "the", arg)
	assert.Equal(t, "bag", rest)
}

func TestOneWord_Quoted(t *testing.T) {
	arg, rest := OneWord(`"magic missile" goblin`)
	assert.Equal(t, "magic missile", arg)
	assert.Equal(t, "goblin", rest)
}

func TestTwoArguments(t *testing.T) {
	a, b := TwoArguments("put the bread in the bag")
	assert.Equal(t, "put", a)
	assert.Equal(t, "bread", b)
}

func TestHalfChop(t *testing.T) {
	a, b := HalfChop("Tell   bob hello there")
	assert.Equal(t, "tell", a)
	assert.Equal(t, "bob hello there", b)
}

func TestIsAbbrev(t *testing.T) {
	assert.True(t, IsAbbrev("n", "north"))
	assert.True(t, IsAbbrev("NOR", "north"))
	assert.False(t, IsAbbrev("", "north"))
	assert.False(t, IsAbbrev("northern", "north"))
	assert.False(t, IsAbbrev("s", "north"))
}

func TestSearchBlock(t *testing.T) {
	list := []string{"north", "east", "south"}
	assert.Equal(t, 2, SearchBlock("SOUTH", list, true))
	assert.Equal(t, -1, SearchBlock("sou", list, true))
	assert.Equal(t, 2, SearchBlock("sou", list, false))
	assert.Equal(t, -1, SearchBlock("", list, false))
}

func TestReservedAndFill(t *testing.T) {
	assert.True(t, FillWord("The"))
	assert.True(t, ReservedWord("someone"))
	assert.False(t, ReservedWord("bob"))
}

func TestIsNumber(t *testing.T) {
	assert.True(t, IsNumber("42"))
	assert.True(t, IsNumber("-3"))
	assert.False(t, IsNumber("-"))
	assert.False(t, IsNumber("4a"))
	assert.False(t, IsNumber(""))
}

func TestGetNumber(t *testing.T) {
	n, name := GetNumber("2.sword")
	assert.Equal(t, 2, n)
	assert.Equal(t, "sword", name)

	n, name = GetNumber("sword")
	assert.Equal(t, 1, n)
	assert.Equal(t, "sword", name)

	n, _ = GetNumber("x.sword")
	assert.Equal(t, 0, n)
}

func TestIsName(t *testing.T) {
	assert.True(t, IsName("guard", "cityguard guard"))
	assert.True(t, IsName("GUARD", "cityguard guard"))
	assert.False(t, IsName("gua", "cityguard guard"))
	assert.False(t, IsName("", "guard"))
}

func TestValidName(t *testing.T) {
	name, ok := ValidName("  bOB ", 20)
	assert.True(t, ok)
	assert.Equal(t, "Bob", name)

	for _, bad := range []string{"", "a", "the", "someone", "bob smith", "b@b", strings.Repeat("x", 21)} {
		_, ok := ValidName(bad, 20)
		assert.False(t, ok, bad)
	}
}

func TestMisc(t *testing.T) {
	assert.Equal(t, "a $ b", DeleteDoubleDollar("a $$ b"))
	assert.Equal(t, "Hello", Cap("hello"))
	assert.Equal(t, "an", An("apple"))
	assert.Equal(t, "a", An("sword"))
}

func TestPropertyAnyOneArgIsLowercaseFirstWord(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[A-Za-z]{1,20}`).Draw(t, "word")
		tail := rapid.StringMatching(`[a-z ]{0,20}`).Draw(t, "tail")
		arg, rest := AnyOneArg("  " + word + " " + tail)
		if arg != strings.ToLower(word) {
			t.Fatalf("AnyOneArg(%q) = %q", word, arg)
		}
		if rest != strings.TrimLeft(tail, " ") {
			t.Fatalf("rest = %q, want %q", rest, strings.TrimLeft(tail, " "))
		}
	})
}

func TestPropertyIsAbbrevOfSelfAndPrefixes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		full := rapid.StringMatching(`[a-z]{1,15}`).Draw(t, "full")
		n := rapid.IntRange(1, len(full)).Draw(t, "n")
		if !IsAbbrev(strings.ToUpper(full[:n]), full) {
			t.Fatalf("%q should abbreviate %q", full[:n], full)
		}
	})
}
