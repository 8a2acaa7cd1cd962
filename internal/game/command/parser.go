// Package command holds the text side of command processing: argument
// parsing, alias expansion and the line editing applied to raw input.
package command

import (
	"strconv"
	"strings"
	"unicode"
)

var fillWords = []string{"in", "from", "with", "the", "on", "at", "to"}

var reservedWords = []string{"a", "an", "self", "me", "all", "room", "someone", "something"}

// SkipSpaces returns s without leading whitespace.
func SkipSpaces(s string) string {
	return strings.TrimLeftFunc(s, unicode.IsSpace)
}

// AnyOneArg splits off the first whitespace-delimited word, lowercased.
// The returned rest has its leading whitespace removed.
func AnyOneArg(s string) (arg, rest string) {
	s = SkipSpaces(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return strings.ToLower(s), ""
	}
	return strings.ToLower(s[:i]), SkipSpaces(s[i:])
}

// OneArgument is AnyOneArg that also discards fill words such as "the"
// and "from".
func OneArgument(s string) (arg, rest string) {
	rest = s
	for {
		arg, rest = AnyOneArg(rest)
		if arg == "" || !FillWord(arg) {
			return arg, rest
		}
	}
}

// OneWord is OneArgument that treats a double-quoted run as one word.
func OneWord(s string) (arg, rest string) {
	for {
		s = SkipSpaces(s)
		if strings.HasPrefix(s, "\"") {
			s = s[1:]
			end := strings.IndexByte(s, '"')
			if end < 0 {
				return strings.ToLower(s), ""
			}
			arg, rest = strings.ToLower(s[:end]), SkipSpaces(s[end+1:])
		} else {
			arg, rest = AnyOneArg(s)
		}
		if arg == "" || !FillWord(arg) {
			return arg, rest
		}
		s = rest
	}
}

// TwoArguments returns the first two arguments, skipping fill words.
func TwoArguments(s string) (first, second string) {
	first, rest := OneArgument(s)
	second, _ = OneArgument(rest)
	return first, second
}

// HalfChop splits s into its first word and everything after it.
func HalfChop(s string) (first, rest string) {
	return AnyOneArg(s)
}

// IsAbbrev reports whether arg is a non-empty, case-insensitive prefix of
// full.
func IsAbbrev(arg, full string) bool {
	if arg == "" || len(arg) > len(full) {
		return false
	}
	return strings.EqualFold(arg, full[:len(arg)])
}

// SearchBlock returns the index of arg in list, or -1. With exact false a
// case-insensitive prefix match is enough.
func SearchBlock(arg string, list []string, exact bool) int {
	if arg == "" {
		return -1
	}
	for i, item := range list {
		if exact {
			if strings.EqualFold(arg, item) {
				return i
			}
		} else if IsAbbrev(arg, item) {
			return i
		}
	}
	return -1
}

// FillWord reports whether s is a filler such as "in" or "the".
func FillWord(s string) bool { return SearchBlock(s, fillWords, true) >= 0 }

// ReservedWord reports whether s is reserved and cannot be a player name.
func ReservedWord(s string) bool { return SearchBlock(s, reservedWords, true) >= 0 }

// IsNumber reports whether s is an optionally negative run of digits.
func IsNumber(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// GetNumber splits a numbered reference such as "2.sword" into (2, "sword").
// A name without a dot is number 1; a malformed prefix yields 0.
func GetNumber(name string) (int, string) {
	dot := strings.IndexByte(name, '.')
	if dot < 0 {
		return 1, name
	}
	prefix, rest := name[:dot], name[dot+1:]
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return 0, rest
		}
	}
	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, rest
	}
	return n, rest
}

// IsName reports whether str matches any word of the keyword list.
func IsName(str, namelist string) bool {
	if str == "" {
		return false
	}
	for _, word := range strings.Fields(namelist) {
		if strings.EqualFold(str, word) {
			return true
		}
	}
	return false
}

// DeleteDoubleDollar collapses "$$" into "$".
func DeleteDoubleDollar(s string) string {
	return strings.ReplaceAll(s, "$$", "$")
}

// Cap upper-cases the first letter of s.
func Cap(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// An returns the indefinite article for s.
func An(s string) string {
	if s != "" && strings.ContainsRune("aeiouAEIOU", rune(s[0])) {
		return "an"
	}
	return "a"
}

// ValidName applies the structural name rules: letters and digits only,
// length within [2, maxLen], and not a fill or reserved word. The name is
// returned capitalized.
func ValidName(raw string, maxLen int) (string, bool) {
	name := strings.TrimSpace(raw)
	if len(name) < 2 || len(name) > maxLen {
		return "", false
	}
	for _, r := range name {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return "", false
		}
	}
	if FillWord(name) || ReservedWord(name) {
		return "", false
	}
	return Cap(strings.ToLower(name)), true
}
