package legacy

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parser reads one file and collects warnings about data it had to drop.
type parser struct {
	r        *reader
	warnings *[]string
}

func newParser(name string, src io.Reader, warnings *[]string) *parser {
	return &parser{r: newReader(name, src), warnings: warnings}
}

func (p *parser) warn(format string, args ...any) {
	*p.warnings = append(*p.warnings, fmt.Sprintf("%s: %s", p.r.name, fmt.Sprintf(format, args...)))
}

// names converts a bitvector and warns about bits with no name.
func (p *parser) names(v uint64, table []string, what string, vnum int) []string {
	names, dropped := flagNames(v, table)
	for _, bit := range dropped {
		p.warn("#%d: ignoring unsupported %s flag bit %d", vnum, what, bit)
	}
	return names
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
