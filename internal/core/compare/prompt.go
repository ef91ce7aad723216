package compare

import (
	"fmt"
	"strings"

	"github.com/equipcheck/validator/internal/core/model"
)

// BuildComparisonPrompt renders one chunk's equipment and spec slices
// into the stage-2 comparison instruction. Items are referred to by row
// number; the response must come back keyed the same way.
func BuildComparisonPrompt(chunk Chunk) string {
	var b strings.Builder

	b.WriteString("You are comparing an equipment list against a master specification.\n\n")
	b.WriteString(DomainKnowledge)
	b.WriteString("\n\n<EQUIPMENT LIST>\n")
	writeItems(&b, chunk.Equipment)
	b.WriteString("</EQUIPMENT LIST>\n\n<SPECIFICATION>\n")
	writeItems(&b, chunk.Spec)
	b.WriteString("</SPECIFICATION>\n\n")

	b.WriteString(`Instructions:
For EVERY equipment row above, decide whether it satisfies a specification row.
Each spec row may be claimed by at most one equipment row.
Statuses: MATCH, PARTIAL_MATCH, NO_MATCH, QUANTITY_MISMATCH, EXTRA.
Use QUANTITY_MISMATCH when the item matches but quantities differ, and state
both quantities in the differences (e.g. "equipment has 4, spec requires 5").
Use EXTRA for equipment rows with no corresponding spec requirement.
List spec rows that no equipment row satisfies in missing_from_equipment.
Severity: CRITICAL for safety or rating substitutions, MODERATE for wrong
variant or quantity, LOW for cosmetic differences.

Return ONLY a JSON object, no prose, with exactly this shape:
{
  "industry_detected": "string",
  "results": [
    {
      "equipment_row": 1,
      "spec_row": 1,
      "status": "MATCH",
      "confidence": 0.95,
      "quantity_match": true,
      "differences": ["string"],
      "notes": "string",
      "severity": "CRITICAL|MODERATE|LOW|null",
      "match_basis": "PART_NUMBER|DESCRIPTION|INFERRED"
    }
  ],
  "missing_from_equipment": [
    {"spec_row": 2, "notes": "string", "severity": "MODERATE"}
  ]
}
"spec_row" is null for NO_MATCH and EXTRA. Row numbers refer to the
Row labels above.`)

	return b.String()
}

func writeItems(b *strings.Builder, items []model.CanonicalItem) {
	for _, it := range items {
		fmt.Fprintf(b, "Row %d", it.RowNumber)
		if it.PartNumber != "" {
			fmt.Fprintf(b, " | PN: %s", it.PartNumber)
		}
		fmt.Fprintf(b, " | Desc: %s | Qty: %s\n", it.Description, formatQuantity(it))
	}
}

func formatQuantity(it model.CanonicalItem) string {
	q := strings.TrimSuffix(strings.TrimSuffix(fmt.Sprintf("%.2f", it.Quantity), "0"), "0")
	q = strings.TrimSuffix(q, ".")
	if it.Unit != "" {
		return q + " " + it.Unit
	}
	return q
}
