package command

import (
	"bytes"
	"strings"
)

// Input limits.
const (
	MaxInputLength    = 256
	MaxRawInputLength = 512
	HistorySize       = 5
)

// NextLine removes the first complete line from buf. A line ends at CR or
// LF; a run of consecutive line terminators counts as one. ok is false
// when buf holds no terminator yet.
func NextLine(buf []byte) (line, rest []byte, ok bool) {
	i := bytes.IndexAny(buf, "\r\n")
	if i < 0 {
		return nil, buf, false
	}
	j := i
	for j < len(buf) && (buf[j] == '\r' || buf[j] == '\n') {
		j++
	}
	return buf[:i], buf[j:], true
}

// EditLine applies in-line editing to raw: backspace and DEL erase the
// previous character (an escaped "$$" as a unit), non-printable bytes are
// dropped and "$" is doubled. The result holds at most
// MaxInputLength-1 bytes; truncated reports that input was cut.
func EditLine(raw []byte) (line string, truncated bool) {
	out := make([]byte, 0, len(raw)+8)
	space := MaxInputLength - 1
	for i, c := range raw {
		if space <= 0 {
			return string(out), i < len(raw)
		}
		switch {
		case c == '\b' || c == 127:
			if n := len(out); n > 0 {
				if out[n-1] == '$' && n > 1 && out[n-2] == '$' {
					out = out[:n-2]
					space += 2
				} else {
					out = out[:n-1]
					space++
				}
			}
		case c >= 32 && c < 127:
			if c == '$' {
				if space < 2 {
					return string(out), true
				}
				out = append(out, '$', '$')
				space -= 2
			} else {
				out = append(out, c)
				space--
			}
		}
	}
	return string(out), false
}

// History is the ring of recent command lines used by "!" recall.
type History struct {
	lines [HistorySize]string
	pos   int
}

// Add records line as the most recent command.
func (h *History) Add(line string) {
	h.pos = (h.pos + 1) % HistorySize
	h.lines[h.pos] = line
}

// Find returns the most recent line that prefix abbreviates.
func (h *History) Find(prefix string) (string, bool) {
	for n := range HistorySize {
		line := h.lines[(h.pos-n+HistorySize)%HistorySize]
		if line != "" && IsAbbrev(prefix, line) {
			return line, true
		}
	}
	return "", false
}

// Substitute applies a "^old^new" edit to orig, replacing the first
// occurrence of old. A trailing "^" is optional.
func Substitute(orig, subst string) (string, bool) {
	if !strings.HasPrefix(subst, "^") {
		return "", false
	}
	first, second, found := strings.Cut(subst[1:], "^")
	if !found || first == "" {
		return "", false
	}
	second = strings.TrimSuffix(second, "^")
	i := strings.Index(orig, first)
	if i < 0 {
		return "", false
	}
	out := orig[:i] + second + orig[i+len(first):]
	if len(out) >= MaxInputLength {
		out = out[:MaxInputLength-1]
	}
	return out, true
}
