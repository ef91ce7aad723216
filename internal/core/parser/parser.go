package parser

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/equipcheck/validator/internal/core/model"
)

// ParseRows turns loosely-typed rows (arbitrary column name -> scalar)
// into a ParseResult of canonical items. It never fails: degraded column
// detection is reported through warnings, and every non-blank row emits
// exactly one item. Row numbers are assigned 1-based over the emitted
// items, after blank rows have been skipped, so they stay stable as the
// identity used in prompts and response matching.
func ParseRows(rows []map[string]any, label string) *model.ParseResult {
	result := &model.ParseResult{
		Label:       label,
		RowCount:    len(rows),
		ByRowNumber: map[int]int{},
	}

	headers := collectHeaders(rows)
	roles := detectColumns(headers)
	result.Columns = model.ColumnRoles{
		PartNumber:  roles["part_number"],
		Description: roles["description"],
		Quantity:    roles["quantity"],
		Unit:        roles["unit"],
	}

	if roles["part_number"] == "" && roles["description"] == "" {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"%s: no part number or description column detected, using flattened row text", label))
	} else if roles["part_number"] == "" {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"%s: no part number column detected, matching on description only", label))
	}

	for _, row := range rows {
		if rowIsBlank(row) {
			result.SkippedRows++
			continue
		}

		item := buildItem(row, roles)
		item.RowNumber = len(result.Items) + 1
		result.ByRowNumber[item.RowNumber] = len(result.Items)
		result.Items = append(result.Items, item)
	}

	return result
}

func buildItem(row map[string]any, roles map[string]string) model.CanonicalItem {
	var item model.CanonicalItem

	pnCol := roles["part_number"]
	descCol := roles["description"]

	if pnCol != "" {
		item.PartNumberRaw = cellString(row[pnCol])
		item.PartNumber = NormalizePartNumber(item.PartNumberRaw)
	}
	if descCol != "" {
		item.DescriptionRaw = cellString(row[descCol])
		item.Description = NormalizeDescription(item.DescriptionRaw)
	}
	if item.DescriptionRaw == "" && item.PartNumberRaw == "" {
		// Nothing usable in the detected columns: fall back to the
		// whole row as text so the item is still comparable.
		item.DescriptionRaw = flattenRow(row)
		item.Description = NormalizeDescription(item.DescriptionRaw)
	}

	if qtyCol := roles["quantity"]; qtyCol != "" {
		item.Quantity, item.Unit = parseQuantity(row[qtyCol])
	} else {
		item.Quantity = 1
	}
	if unitCol := roles["unit"]; unitCol != "" && item.Unit == "" {
		item.Unit = strings.ToLower(cellString(row[unitCol]))
	}

	item.Confidence = scoreItem(item, pnCol != "", descCol != "")
	return item
}

// scoreItem grades how much signal the row carries. The score is
// informational only; it never gates downstream processing.
func scoreItem(item model.CanonicalItem, hasPNCol, hasDescCol bool) float64 {
	switch {
	case hasPNCol && hasDescCol && item.PartNumber != "" && item.Description != "":
		return 1.0
	case item.Description != "" && item.PartNumber == "" && hasDescCol:
		return 0.6
	case item.PartNumber != "" && item.Description == "":
		return 0.5
	case item.Description != "":
		return 0.1
	default:
		return 0.0
	}
}

func collectHeaders(rows []map[string]any) []string {
	seen := map[string]bool{}
	var headers []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	// Map iteration is unordered; sort so detection is deterministic.
	sort.Strings(headers)
	return headers
}

func rowIsBlank(row map[string]any) bool {
	for _, v := range row {
		if cellString(v) != "" {
			return false
		}
	}
	return true
}

func flattenRow(row map[string]any) string {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		if v := cellString(row[k]); v != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", k, v))
		}
	}
	return strings.Join(parts, " | ")
}

func cellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(c)
	case float64:
		if math.IsNaN(c) {
			return ""
		}
		return strconv.FormatFloat(c, 'f', -1, 64)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case bool:
		return strconv.FormatBool(c)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", c))
	}
}
