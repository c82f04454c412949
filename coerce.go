package dashboard

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// percentThreshold separates whole percentages (7 meaning 7%) from fractions (0.07).
// Values whose magnitude is strictly greater are divided by 100.
const percentThreshold = 1.5

// placeholders are cell contents that mean "no value" in the workbooks.
var placeholders = map[string]bool{
	"":             true,
	"-":            true,
	"—":            true,
	"–":            true,
	"#N/A":         true,
	"#REF!":        true,
	"#VALUE!":      true,
	"#DIV/0!":      true,
	"#NAME?":       true,
	"#NUM!":        true,
	"#NULL!":       true,
	"N/A":          true,
	"ACTUALIZAR":   true,
	"NEEDS UPDATE": true,
}

// isPlaceholder reports whether the trimmed string s stands for a missing value.
func isPlaceholder(s string) bool {
	s = strings.TrimLeft(s, "⚠️ ")
	return placeholders[strings.ToUpper(s)]
}

// Optional coerces raw cell content into a float.
// ok is false for nil, placeholders, unparsable or non finite content.
func Optional(raw any) (v float64, ok bool) {
	switch x := raw.(type) {
	case nil:
		return 0, false
	case float64:
		v = x
	case float32:
		v = float64(x)
	case int:
		v = float64(x)
	case int32:
		v = float64(x)
	case int64:
		v = float64(x)
	case uint:
		v = float64(x)
	case uint32:
		v = float64(x)
	case uint64:
		v = float64(x)
	case bool:
		return 0, false
	case string:
		return parseNumber(x)
	default:
		return parseNumber(fmt.Sprint(x))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseNumber parses a localized string: "1234,5 €", "7 %", " 12.3 ".
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if isPlaceholder(s) {
		return 0, false
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case r == ',':
			return '.'
		case r == '€', r == '$', r == '£', r == '%':
			return -1
		case unicode.IsSpace(r):
			return -1
		}
		return r
	}, s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Number converts raw cell content into a float, returning def when the content
// is missing, a placeholder or cannot be parsed.
func Number(raw any, def float64) float64 {
	if v, ok := Optional(raw); ok {
		return v
	}
	return def
}

// Percent is like Number but converts whole percentages into fractions.
//
// A value is divided by 100 only if its magnitude exceeds 1.5: 7 becomes 0.07,
// 0.07 stays 0.07 and 1.5 stays 1.5. Inputs near the threshold are ambiguous
// by construction, the threshold is kept as is.
func Percent(raw any, def float64) float64 {
	v := Number(raw, def)
	if math.Abs(v) > percentThreshold {
		return v / 100
	}
	return v
}

// Text returns the trimmed string form of raw, or def for nil.
func Text(raw any, def string) string {
	if raw == nil {
		return def
	}
	if s, ok := raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(raw))
}
