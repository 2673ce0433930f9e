package sim

import "strings"

// ParsePhoneLines splits free-form input (one per line, comma or semicolon
// separated, or any mix) into trimmed phone-line identifiers. Blank entries
// are dropped; order and duplicates are preserved.
func ParsePhoneLines(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == ';'
	})
	return NormalizePhoneLines(fields)
}

// NormalizePhoneLines trims every entry and drops the blank ones.
func NormalizePhoneLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
