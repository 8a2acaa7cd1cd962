package world

import "strings"

// Text is a growable buffer addressed by handle, used for descriptions,
// board posts and mail being composed.
type Text struct {
	Body   string
	MaxLen int
}

// Append adds s followed by CRLF. When the result would exceed MaxLen the
// line is dropped and Append returns false.
func (t *Text) Append(s string) bool {
	if t.MaxLen > 0 && len(t.Body)+len(s)+2 > t.MaxLen {
		return false
	}
	t.Body += s + "\r\n"
	return true
}

// Clear empties the buffer.
func (t *Text) Clear() { t.Body = "" }

// Lines returns the number of lines in the buffer.
func (t *Text) Lines() int { return strings.Count(t.Body, "\n") }
