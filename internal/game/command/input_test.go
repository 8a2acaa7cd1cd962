package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestNextLine(t *testing.T) {
	line, rest, ok := NextLine([]byte("look\r\nsay hi"))
	assert.True(t, ok)
	assert.Equal(t, "look", string(line))
	assert.Equal(t, "say hi", string(rest))

	_, rest, ok = NextLine(rest)
	assert.False(t, ok)
	assert.Equal(t, "say hi", string(rest))

	line, rest, ok = NextLine([]byte("\r\n"))
	assert.True(t, ok)
	assert.Empty(t, line)
	assert.Empty(t, rest)
}

func TestEditLine_Backspace(t *testing.T) {
	line, trunc := EditLine([]byte("lookk\b"))
	assert.Equal(t, "look", line)
	assert.False(t, trunc)

	line, _ = EditLine([]byte("a$\x7f"))
	assert.Equal(t, "a", line)
}

func TestEditLine_DoublesDollarAndDropsControl(t *testing.T) {
	line, _ := EditLine([]byte("say $5\x01\x07"))
	assert.Equal(t, "say $$5", line)
}

func TestEditLine_Truncates(t *testing.T) {
	line, trunc := EditLine([]byte(strings.Repeat("x", 400)))
	assert.True(t, trunc)
	assert.Len(t, line, MaxInputLength-1)
}

func TestHistory_Find(t *testing.T) {
	var h History
	h.Add("say hello")
	h.Add("look")
	h.Add("sav")

	got, ok := h.Find("sa")
	assert.True(t, ok)
	assert.Equal(t, "sav", got)

	got, ok = h.Find("say")
	assert.True(t, ok)
	assert.Equal(t, "say hello", got)

	_, ok = h.Find("zz")
	assert.False(t, ok)
}

func TestHistory_Wraps(t *testing.T) {
	var h History
	for _, l := range []string{"a1", "b", "c", "d", "e", "f"} {
		h.Add(l)
	}
	_, ok := h.Find("a1")
	assert.False(t, ok)
}

func TestSubstitute(t *testing.T) {
	got, ok := Substitute("say hello world", "^world^there")
	assert.True(t, ok)
	assert.Equal(t, "say hello there", got)

	got, ok = Substitute("get sword", "^sword^shield^")
	assert.True(t, ok)
	assert.Equal(t, "get shield", got)

	_, ok = Substitute("look", "^zzz^y")
	assert.False(t, ok)
	_, ok = Substitute("look", "^look")
	assert.False(t, ok)
}

func TestPropertyEditLineIsPrintableAndBounded(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), 0, 600).Draw(t, "raw")
		line, _ := EditLine(raw)
		if len(line) > MaxInputLength-1 {
			t.Fatalf("line too long: %d", len(line))
		}
		for i := 0; i < len(line); i++ {
			if line[i] < 32 || line[i] >= 127 {
				t.Fatalf("non-printable byte %d in %q", line[i], line)
			}
		}
	})
}
