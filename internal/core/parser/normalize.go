package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	partPrefixRe    = regexp.MustCompile(`(?i)^\s*(p\s*/\s*n\s*:?|part\s*(no|num|number)\.?\s*:?|pn\s*:|part\s*#|#)\s*`)
	partSeparatorRe = regexp.MustCompile(`[\s._/-]+`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
	quantityRe      = regexp.MustCompile(`^\s*([0-9]+(?:[.,][0-9]+)?)\s*([a-zA-Z]+\.?)?\s*$`)
	withoutRe       = regexp.MustCompile(`\bw/o\s*`)
	withRe          = regexp.MustCompile(`\bw/\s*`)
)

// Abbreviations expanded in descriptions before comparison. Expansion is
// word-boundary and case-insensitive; w/ and w/o are handled separately
// because the slash breaks the boundary regex.
var abbreviations = map[string]string{
	"ss":    "stainless steel",
	"stl":   "steel",
	"galv":  "galvanized",
	"alum":  "aluminum",
	"al":    "aluminum",
	"assy":  "assembly",
	"brkr":  "breaker",
	"bkr":   "breaker",
	"xfmr":  "transformer",
	"swbd":  "switchboard",
	"pnl":   "panel",
	"elec":  "electrical",
	"mtd":   "mounted",
	"mtg":   "mounting",
	"recpt": "receptacle",
	"cond":  "conduit",
	"conc":  "concrete",
	"dia":   "diameter",
	"ea":    "each",
	"pcs":   "pieces",
	"2p":    "2-pole",
	"3p":    "3-pole",
}

var abbreviationRe = func() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp, len(abbreviations))
	for abbr := range abbreviations {
		res[abbr] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(abbr) + `\b`)
	}
	return res
}()

// NormalizePartNumber makes loosely formatted part numbers comparable:
// "P/N: ABC 123", "ABC_123" and "ABC-123" all normalize to "ABC-123".
// Normalizing an already-normalized part number is a no-op.
func NormalizePartNumber(raw string) string {
	s := partPrefixRe.ReplaceAllString(raw, "")
	s = strings.ToUpper(s)
	s = partSeparatorRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeDescription lowercases, expands known abbreviations and
// collapses whitespace. Idempotent.
func NormalizeDescription(raw string) string {
	s := strings.ToLower(raw)

	// Slash forms first: the word-boundary regex would split them at
	// the punctuation.
	s = withoutRe.ReplaceAllString(s, "without ")
	s = withRe.ReplaceAllString(s, "with ")

	for abbr, re := range abbreviationRe {
		s = re.ReplaceAllString(s, abbreviations[abbr])
	}

	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// parseQuantity extracts a quantity and optional unit token from a raw
// cell value. Unparseable values default to quantity 1 with no unit.
func parseQuantity(raw any) (float64, string) {
	switch v := raw.(type) {
	case float64:
		if math.IsNaN(v) {
			return 1, ""
		}
		return v, ""
	case int:
		return float64(v), ""
	case int64:
		return float64(v), ""
	case string:
		m := quantityRe.FindStringSubmatch(v)
		if m == nil {
			return 1, ""
		}
		num := strings.ReplaceAll(m[1], ",", ".")
		q, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 1, ""
		}
		unit := strings.ToLower(strings.TrimSuffix(m[2], "."))
		return q, unit
	default:
		return 1, ""
	}
}
