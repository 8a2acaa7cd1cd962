package command

import (
	"strings"
)

// AliasType distinguishes plain substitutions from multi-command aliases.
type AliasType int

const (
	// AliasSimple replaces the whole input line with the replacement.
	AliasSimple AliasType = iota
	// AliasComplex expands into one or more queued commands with
	// positional substitution.
	AliasComplex
)

const (
	aliasSep    = ';'
	aliasVar    = '$'
	aliasGlob   = '*'
	aliasTokens = 9
)

// Alias is one player-defined command alias.
type Alias struct {
	Name        string    `json:"name"`
	Replacement string    `json:"replacement"`
	Type        AliasType `json:"type"`
}

// NewAlias builds an alias, classifying it as complex when the replacement
// contains a separator or a variable.
func NewAlias(name, replacement string) Alias {
	a := Alias{Name: strings.ToLower(name), Replacement: replacement, Type: AliasSimple}
	if strings.ContainsAny(replacement, ";$") {
		a.Type = AliasComplex
	}
	return a
}

// Aliases is a player's alias list, in definition order.
type Aliases []Alias

// Find returns the index of the alias named name, or -1.
func (as Aliases) Find(name string) int {
	for i, a := range as {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// Set adds or replaces an alias.
func (as Aliases) Set(name, replacement string) Aliases {
	a := NewAlias(name, replacement)
	if i := as.Find(a.Name); i >= 0 {
		as[i] = a
		return as
	}
	return append(as, a)
}

// Delete removes the alias named name and reports whether it existed.
func (as Aliases) Delete(name string) (Aliases, bool) {
	i := as.Find(name)
	if i < 0 {
		return as, false
	}
	return append(as[:i], as[i+1:]...), true
}

// Expand runs line through the alias list. When the first word names a
// simple alias the replacement is returned as the single line to run.
// When it names a complex alias the expansion is returned with queued set:
// the caller must push the lines onto the front of the input queue, marked
// as aliased, and run them from there. Lines that match no alias come back
// unchanged.
func (as Aliases) Expand(line string) (lines []string, queued bool) {
	if len(as) == 0 {
		return []string{line}, false
	}
	first, rest := AnyOneArg(line)
	if first == "" {
		return []string{line}, false
	}
	i := as.Find(first)
	if i < 0 {
		return []string{line}, false
	}
	a := as[i]
	if a.Type == AliasSimple {
		return []string{a.Replacement}, false
	}
	return expandComplex(a.Replacement, rest), true
}

func expandComplex(replacement, args string) []string {
	tokens := strings.Fields(args)
	if len(tokens) > aliasTokens {
		tokens = tokens[:aliasTokens]
	}

	var out []string
	var b strings.Builder
	for i := 0; i < len(replacement); i++ {
		c := replacement[i]
		switch c {
		case aliasSep:
			out = append(out, truncateInput(b.String()))
			b.Reset()
		case aliasVar:
			i++
			if i >= len(replacement) {
				b.WriteString("$$")
				continue
			}
			v := replacement[i]
			switch {
			case v >= '1' && v <= '9' && int(v-'1') < len(tokens):
				b.WriteString(tokens[v-'1'])
			case v == aliasGlob:
				b.WriteString(args)
			case v == '$':
				b.WriteString("$$")
			default:
				b.WriteByte(v)
			}
		default:
			b.WriteByte(c)
		}
	}
	return append(out, truncateInput(b.String()))
}

func truncateInput(s string) string {
	if len(s) >= MaxInputLength {
		return s[:MaxInputLength-1]
	}
	return s
}
