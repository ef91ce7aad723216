package parser

import "regexp"

// Ordered pattern sets for column-role detection. The first header
// matching a role's patterns wins that role; earlier patterns are the
// stronger signals.
var (
	partNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^part\s*(no|num|number|#)`),
		regexp.MustCompile(`(?i)^p\s*/?\s*n\b`),
		regexp.MustCompile(`(?i)^(mfr|mfg|manufacturer)\s*(part|no|num|number|#)`),
		regexp.MustCompile(`(?i)^(item|catalog|cat|model)\s*(no|num|number|#|code)`),
		regexp.MustCompile(`(?i)^sku\b`),
		regexp.MustCompile(`(?i)part`),
	}

	descriptionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^desc`),
		regexp.MustCompile(`(?i)^(item|product|material)\s*(desc|description|name)`),
		regexp.MustCompile(`(?i)^(name|title)$`),
		regexp.MustCompile(`(?i)desc`),
		regexp.MustCompile(`(?i)^(item|product|material|equipment)$`),
		regexp.MustCompile(`(?i)detail`),
	}

	quantityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^qty`),
		regexp.MustCompile(`(?i)^quant`),
		regexp.MustCompile(`(?i)^(count|amount)$`),
		regexp.MustCompile(`(?i)^(no|num|number)\s*(of|req|required)`),
		regexp.MustCompile(`(?i)qty`),
	}

	unitPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(unit|uom|u/m)s?$`),
		regexp.MustCompile(`(?i)^unit\s*(of)?\s*(measure|issue)`),
		regexp.MustCompile(`(?i)^measure$`),
	}
)

func matchRole(header string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(header) {
			return true
		}
	}
	return false
}

// detectColumns assigns a header to each role. Each header is assigned
// to at most one role, tested in part-number, description, quantity,
// unit order.
func detectColumns(headers []string) (roles map[string]string) {
	roles = map[string]string{}
	assigned := map[string]bool{}

	type role struct {
		name     string
		patterns []*regexp.Regexp
	}
	for _, r := range []role{
		{"part_number", partNumberPatterns},
		{"description", descriptionPatterns},
		{"quantity", quantityPatterns},
		{"unit", unitPatterns},
	} {
		for _, h := range headers {
			if assigned[h] {
				continue
			}
			if matchRole(h, r.patterns) {
				roles[r.name] = h
				assigned[h] = true
				break
			}
		}
	}

	// Fall back to the first unassigned non-empty header for the
	// description role; without a description the LLM has nothing to
	// match on.
	if roles["description"] == "" {
		for _, h := range headers {
			if !assigned[h] && h != "" {
				roles["description"] = h
				assigned[h] = true
				break
			}
		}
	}

	return roles
}
