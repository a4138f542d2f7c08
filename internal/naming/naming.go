package naming

import (
	"strconv"
	"strings"
	"unicode"
)

// Resolved is the outcome of mapping one raw display name.
type Resolved struct {
	SafeName string
	Renamed  bool
}

// Sanitize maps a display name onto the identifier grammar ^[A-Za-z0-9_]*$.
// Whitespace runs, hyphens and underscore runs become a single underscore,
// any other rune outside the grammar is dropped, and leading or trailing
// underscores are trimmed. The result may be empty.
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	sep := false
	for _, r := range raw {
		switch {
		case unicode.IsSpace(r) || r == '-' || r == '_':
			sep = true
		case isIdentRune(r):
			if sep && b.Len() > 0 {
				b.WriteByte('_')
			}
			sep = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Placeholder names a camera whose display name sanitized to nothing.
// index is the camera's 1-based position in the loaded batch.
func Placeholder(index int) string {
	return "Camera_" + strconv.Itoa(index)
}

// Resolve maps an ordered batch of raw display names onto unique safe
// identifiers. The first occurrence of a name keeps the unsuffixed form;
// later collisions get the lowest unused _2, _3, ... suffix. Collision
// matching is case-sensitive. Resolve never fails: the worst case is a
// batch of placeholders.
func Resolve(rawNames []string) []Resolved {
	used := make(map[string]struct{}, len(rawNames))
	out := make([]Resolved, 0, len(rawNames))

	for i, raw := range rawNames {
		base := Sanitize(raw)
		if base == "" {
			base = Placeholder(i + 1)
		}

		name := base
		for suffix := 2; ; suffix++ {
			if _, taken := used[name]; !taken {
				break
			}
			name = base + "_" + strconv.Itoa(suffix)
		}
		used[name] = struct{}{}

		out = append(out, Resolved{
			SafeName: name,
			Renamed:  name != strings.TrimSpace(raw),
		})
	}
	return out
}

func isIdentRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
	case r >= 'A' && r <= 'Z':
	case r >= '0' && r <= '9':
	default:
		return false
	}
	return true
}
