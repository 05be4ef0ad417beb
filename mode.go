package facet

import "strings"

// Built-in mode names.
const (
	ModeDefault  = "default"
	ModeMinimal  = "minimal"
	ModeDetailed = "detailed"
)

// NormalizeMode converts a PascalCase or camelCase method fragment to a
// kebab-case mode name: a dash goes between a lowercase letter and the
// uppercase letter that follows it, then everything is lowercased.
//
//	NormalizeMode("AuditTrail") // "audit-trail"
//	NormalizeMode("detailed")   // "detailed"
//	NormalizeMode("HTMLView")   // "htmlview"
func NormalizeMode(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if i > 0 && isUpper(c) && isLower(name[i-1]) {
			b.WriteByte('-')
		}
		b.WriteByte(c)
	}
	return strings.ToLower(b.String())
}

// modeAction is the mode mutation a dynamic method name maps to.
type modeAction int

const (
	actionNone modeAction = iota
	actionAdd
	actionRemove
)

// parseModeMethod matches the with<Mode> and without<Mode> patterns.
// without is checked first because it shares the with prefix. The fragment
// after the prefix must start with an uppercase letter.
func parseModeMethod(method string) (modeAction, string) {
	if rest, ok := strings.CutPrefix(method, "without"); ok && rest != "" && isUpper(rest[0]) {
		return actionRemove, NormalizeMode(rest)
	}
	if rest, ok := strings.CutPrefix(method, "with"); ok && rest != "" && isUpper(rest[0]) {
		return actionAdd, NormalizeMode(rest)
	}
	return actionNone, ""
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }

func isLower(c byte) bool { return c >= 'a' && c <= 'z' }

// modeSet is an insertion-ordered set of mode names.
type modeSet []string

func (m modeSet) has(mode string) bool {
	for _, v := range m {
		if v == mode {
			return true
		}
	}
	return false
}

// add returns m with mode appended if absent.
func (m modeSet) add(mode string) modeSet {
	if m.has(mode) {
		return m
	}
	return append(m, mode)
}

// remove returns m without mode, falling back to the default mode when empty.
func (m modeSet) remove(mode string) modeSet {
	out := make(modeSet, 0, len(m))
	for _, v := range m {
		if v != mode {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return modeSet{ModeDefault}
	}
	return out
}

// newModeSet deduplicates modes while keeping their first position.
// An empty input yields the default mode.
func newModeSet(modes []string) modeSet {
	out := make(modeSet, 0, len(modes))
	for _, m := range modes {
		out = out.add(m)
	}
	if len(out) == 0 {
		return modeSet{ModeDefault}
	}
	return out
}

func (m modeSet) clone() modeSet {
	return append(modeSet(nil), m...)
}
