package symbol

import (
	"regexp"
	"strings"
)

// reManaString matches a run of one or more mana symbols and nothing else:
// colors, colorless, numerics, variables, hybrid and phyrexian forms, plus
// the tap, untap, snow and energy symbols that share the brace notation.
var reManaString = regexp.MustCompile(`^(\{(?:[0-9]+|[wubrgcsxyz]|[wubrg2]/[wubrgp]|t|q|e)\})+$`)

// reManaSymbol extracts individual symbols from a validated mana string.
var reManaSymbol = regexp.MustCompile(`\{([^{}]+)\}`)

// IsManaString reports whether s is a well-formed mana symbol string such
// as "{B}{B}{B}" or "{2}{W/U}". Matching is case-insensitive; malformed
// brace runs are not mana and fall through to literal tagging.
func IsManaString(s string) bool {
	return reManaString.MatchString(strings.ToLower(s))
}

// ParseManaString returns the ordered lowercase symbol identifiers of a
// mana string ("{B}{B}{B}" yields ["b","b","b"]). The second result is
// false when s is not a well-formed mana string.
func ParseManaString(s string) ([]string, bool) {
	low := strings.ToLower(s)
	if !reManaString.MatchString(low) {
		return nil, false
	}

	matches := reManaSymbol.FindAllStringSubmatch(low, -1)

	symbols := make([]string, len(matches))
	for i, m := range matches {
		symbols[i] = m[1]
	}

	return symbols, true
}
