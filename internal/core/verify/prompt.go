package verify

import (
	"fmt"
	"strings"

	"github.com/equipcheck/validator/internal/core/compare"
	"github.com/equipcheck/validator/internal/core/model"
)

// BuildVerificationPrompt renders the flagged stage-2 outcomes for
// re-examination. Flagged comparisons come first, then flagged missing
// items; responses refer back by the Item number assigned here.
func BuildVerificationPrompt(result *model.ComparisonResult, equipment, spec *model.ParseResult, comparisons, missing []int) string {
	var b strings.Builder

	b.WriteString("You previously compared an equipment list against a specification. ")
	b.WriteString("Re-examine the uncertain verdicts below.\n\n")
	b.WriteString(`Common causes of FALSE mismatches to check for:
- abbreviation variance (SS vs Stainless Steel, W/ vs with)
- punctuation-only part number differences (ABC-123 vs ABC.123)
- numeric rounding (1.5 vs 1.50)
- trailing revision letters on otherwise equal part numbers

`)
	b.WriteString(strings.ReplaceAll(compare.DomainKnowledge, "MATCHING POLICY:", "ORIGINAL MATCHING POLICY:"))
	b.WriteString("\n\n<ITEMS TO RE-EXAMINE>\n")

	n := 0
	for _, idx := range comparisons {
		it := result.Items[idx]
		n++
		fmt.Fprintf(&b, "Item %d (original verdict: %s, confidence %.2f)\n", n, it.Status, it.Confidence)
		fmt.Fprintf(&b, "  equipment: %s\n", describeItem(equipment, it.EquipmentIndex))
		if it.SpecIndex != nil {
			fmt.Fprintf(&b, "  spec:      %s\n", describeItem(spec, *it.SpecIndex))
		} else {
			b.WriteString("  spec:      (no spec row was matched)\n")
		}
		if len(it.Differences) > 0 {
			fmt.Fprintf(&b, "  differences: %s\n", strings.Join(it.Differences, "; "))
		}
	}
	for _, idx := range missing {
		m := result.MissingFromEquipment[idx]
		n++
		fmt.Fprintf(&b, "Item %d (original verdict: MISSING from equipment)\n", n)
		fmt.Fprintf(&b, "  spec:      %s\n", describeItem(spec, m.SpecIndex))
	}

	b.WriteString("</ITEMS TO RE-EXAMINE>\n\n<FULL EQUIPMENT LIST>\n")
	writeSummary(&b, equipment)
	b.WriteString("</FULL EQUIPMENT LIST>\n\n<FULL SPECIFICATION>\n")
	writeSummary(&b, spec)
	b.WriteString("</FULL SPECIFICATION>\n\n")

	b.WriteString(`Instructions:
For each numbered item decide one of:
- CONFIRMED_MISMATCH: the original verdict stands.
- RECLASSIFIED_MATCH: the original verdict was a false mismatch; the items
  are equivalent. Requires confidence above 0.85. For MISSING items this
  means an equipment row does satisfy the spec row after all.
- NEEDS_HUMAN_REVIEW: you cannot decide confidently. Use this whenever
  your confidence is below 0.7; prefer it over a confident wrong answer.

Return ONLY a JSON object:
{
  "verified_items": [
    {
      "item": 1,
      "decision": "CONFIRMED_MISMATCH",
      "confidence": 0.9,
      "reasoning": "string",
      "revised_severity": "CRITICAL|MODERATE|LOW|null"
    }
  ]
}`)

	return b.String()
}

func describeItem(side *model.ParseResult, idx int) string {
	if idx < 0 || idx >= len(side.Items) {
		return "(unknown row)"
	}
	it := side.Items[idx]
	if it.PartNumber != "" {
		return fmt.Sprintf("row %d | PN: %s | %s | qty %g", it.RowNumber, it.PartNumber, it.Description, it.Quantity)
	}
	return fmt.Sprintf("row %d | %s | qty %g", it.RowNumber, it.Description, it.Quantity)
}

func writeSummary(b *strings.Builder, side *model.ParseResult) {
	for i := range side.Items {
		fmt.Fprintf(b, "%s\n", describeItem(side, i))
	}
}
