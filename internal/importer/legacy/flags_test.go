package legacy

import (
	"math/bits"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAsciiFlags(t *testing.T) {
	cases := map[string]uint64{
		"0":   0,
		"12":  12,
		"a":   1,
		"de":  1<<3 | 1<<4,
		"A":   1 << 26,
		"abZ": 1 | 2 | 1<<51,
	}
	for in, want := range cases {
		got, err := asciiFlags(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := asciiFlags("a1")
	assert.Error(t, err)
	_, err = asciiFlags("a-b")
	assert.Error(t, err)
}

func TestAsciiFlags_NumberAndLettersAgree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Uint64Range(0, 1<<52-1).Draw(t, "bits")
		letters := ""
		for b := range 52 {
			if v&(1<<b) == 0 {
				continue
			}
			if b < 26 {
				letters += string(rune('a' + b))
			} else {
				letters += string(rune('A' + b - 26))
			}
		}
		fromNum, err := asciiFlags(strconv.FormatUint(v, 10))
		require.NoError(t, err)
		assert.Equal(t, v, fromNum)
		if letters != "" {
			fromLetters, err := asciiFlags(letters)
			require.NoError(t, err)
			assert.Equal(t, v, fromLetters)
		}
	})
}

func TestFlagNames_EveryBitAccounted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Uint64().Draw(t, "bits")
		names, dropped := flagNames(v, mobBits)
		assert.Equal(t, bits.OnesCount64(v), len(names)+len(dropped))
	})
}

func TestFlagNames_SkipsUnmodelledBits(t *testing.T) {
	names, dropped := flagNames(1<<1|1<<8|1<<11, mobBits)
	assert.Equal(t, []string{"sentinel", "memory"}, names)
	assert.Equal(t, []int{8}, dropped)
}
