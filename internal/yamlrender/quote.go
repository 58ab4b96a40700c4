package yamlrender

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

const indicators = "-?:,[]{}#&*!|>'\"%@`"

// YAML 1.1 booleans. yaml.v3 reads these as strings but older parsers,
// including the one kubectl vendors, do not.
var legacyBools = map[string]struct{}{
	"y": {}, "Y": {}, "yes": {}, "Yes": {}, "YES": {},
	"n": {}, "N": {}, "no": {}, "No": {}, "NO": {},
	"on": {}, "On": {}, "ON": {},
	"off": {}, "Off": {}, "OFF": {},
}

// Quote returns s as a plain scalar when a YAML parser reads it back as the
// same string, and as a double-quoted scalar otherwise. Invalid UTF-8 bytes
// cannot be written to a YAML stream and come out as U+FFFD.
func Quote(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, string(utf8.RuneError))
	}
	if needsQuote(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuote(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return true
	}
	// merge key
	if s == "<<" {
		return true
	}
	if strings.ContainsRune(indicators, rune(s[0])) {
		return true
	}
	if strings.Contains(s, ": ") || strings.Contains(s, " #") || strings.HasSuffix(s, ":") {
		return true
	}
	for _, r := range s {
		if unicode.IsControl(r) || r == unicode.ReplacementChar || isLineBreak(r) {
			return true
		}
	}
	if _, ok := legacyBools[s]; ok {
		return true
	}

	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return true
	}
	if str, ok := v.(string); !ok || str != s {
		return true
	}
	// yaml.v3 hands timestamps to an untyped target as strings.
	var ts time.Time
	return yaml.Unmarshal([]byte(s), &ts) == nil
}

// isLineBreak reports the non-ASCII characters YAML 1.1 treats as line breaks.
func isLineBreak(r rune) bool {
	return r == '\u0085' || r == '\u2028' || r == '\u2029'
}
