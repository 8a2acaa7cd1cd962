package importer

import "strings"

// NameToID converts a zone name to a stable snake_case identifier. Runs of
// separators collapse to one underscore and an empty result becomes "zone".
//
// Postcondition: result is non-empty, lowercase, contains only [a-z0-9_],
// and is idempotent (NameToID(NameToID(s)) == NameToID(s)).
func NameToID(name string) string {
	var b strings.Builder
	sep := false
	for _, r := range strings.ToLower(name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			sep = false
			b.WriteRune(r)
		case r == ' ' || r == '_' || r == '-' || r == '/':
			sep = true
		}
	}
	if b.Len() == 0 {
		return "zone"
	}
	return b.String()
}
