package normalize

import "strings"

// ProtectionMarker is the prefix that defuses a spreadsheet formula
// trigger. A leading apostrophe makes spreadsheet software render the value
// as text instead of evaluating it.
const ProtectionMarker = '\''

// bidiReplacer strips bidirectional-override and direction-mark control
// characters that can visually reorder cell content.
var bidiReplacer = strings.NewReplacer(
	"‪", "", "‫", "", "‬", "", "‭", "", "‮", "",
	"⁦", "", "⁧", "", "⁨", "", "⁩", "",
	"؜", "", "‎", "", "‏", "",
)

// isTrigger reports whether c starts a spreadsheet formula.
func isTrigger(c byte) bool {
	switch c {
	case '=', '+', '-', '@', '\t', '\r':
		return true
	}
	return false
}

// NeutralizeFormula defuses values a spreadsheet would execute: when the
// first non-space character is a formula trigger, the value is prefixed
// with the protection marker. Bidirectional override characters are
// stripped unconditionally. Values without a trigger prefix pass through
// unchanged.
func NeutralizeFormula(s string) string {
	s = bidiReplacer.Replace(s)
	trimmed := strings.TrimLeft(s, " ")
	if trimmed != "" && isTrigger(trimmed[0]) {
		return string(ProtectionMarker) + s
	}
	return s
}

// Deneutralize strips one leading protection marker that guards a formula
// trigger, so a value round-tripped through the library twice does not
// accumulate escapes. A marker not followed by a trigger is ordinary data
// and is left alone.
func Deneutralize(s string) string {
	if len(s) >= 2 && s[0] == ProtectionMarker {
		rest := s[1:]
		if t := strings.TrimLeft(rest, " "); t != "" && isTrigger(t[0]) {
			return rest
		}
	}
	return s
}
