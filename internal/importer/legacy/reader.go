package legacy

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// reader walks a legacy world file line by line.
type reader struct {
	name string
	sc   *bufio.Scanner
	line int

	pushed  string
	hasPush bool
}

func newReader(name string, r io.Reader) *reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return &reader{name: name, sc: sc}
}

// errorf prefixes the file and line number.
func (r *reader) errorf(format string, args ...any) error {
	return fmt.Errorf("%s:%d: %s", r.name, r.line, fmt.Sprintf(format, args...))
}

func (r *reader) raw() (string, bool) {
	if r.hasPush {
		r.hasPush = false
		return r.pushed, true
	}
	if !r.sc.Scan() {
		return "", false
	}
	r.line++
	return strings.TrimRight(r.sc.Text(), "\r"), true
}

// unread pushes back one line.
func (r *reader) unread(s string) {
	r.pushed = s
	r.hasPush = true
}

// next returns the next line that is neither blank nor a '*' comment.
func (r *reader) next() (string, error) {
	for {
		s, ok := r.raw()
		if !ok {
			if err := r.sc.Err(); err != nil {
				return "", r.errorf("%v", err)
			}
			return "", io.EOF
		}
		if t := strings.TrimSpace(s); t != "" && !strings.HasPrefix(t, "*") {
			return s, nil
		}
	}
}

// tilde reads a string terminated by '~', which may span several lines.
// Line breaks are kept; text after the tilde is dropped.
func (r *reader) tilde(what string) (string, error) {
	var b strings.Builder
	for {
		s, ok := r.raw()
		if !ok {
			return "", r.errorf("file ended inside %s (missing '~')", what)
		}
		if i := strings.IndexByte(s, '~'); i >= 0 {
			b.WriteString(s[:i])
			return b.String(), nil
		}
		b.WriteString(s)
		b.WriteByte('\n')
	}
}

// ints parses at least n leading integer fields of the next line. Trailing
// fields are returned as text.
func (r *reader) ints(what string, n int) ([]int, []string, error) {
	s, err := r.next()
	if err != nil {
		return nil, nil, r.errorf("expecting %s: %v", what, err)
	}
	fields := strings.Fields(s)
	if len(fields) < n {
		return nil, nil, r.errorf("expecting %d numbers for %s, got %q", n, what, s)
	}
	out := make([]int, n)
	for i := range n {
		if _, err := fmt.Sscan(fields[i], &out[i]); err != nil {
			return nil, nil, r.errorf("bad number %q in %s", fields[i], what)
		}
	}
	return out, fields[n:], nil
}

// record reads a "#vnum" header. It reports done at '$' or end of file.
func (r *reader) record(kind string) (vnum int, done bool, err error) {
	s, err := r.next()
	if err == io.EOF {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "$") {
		return 0, true, nil
	}
	if !strings.HasPrefix(s, "#") {
		return 0, false, r.errorf("expecting a new %s, got %q", kind, s)
	}
	if _, err := fmt.Sscan(s[1:], &vnum); err != nil {
		return 0, false, r.errorf("bad %s number %q", kind, s)
	}
	if vnum >= 99999 {
		return 0, true, nil
	}
	return vnum, false, nil
}
