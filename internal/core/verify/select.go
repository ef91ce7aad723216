package verify

import (
	"sort"

	"github.com/equipcheck/validator/internal/core/model"
)

const (
	// verifyBudget caps how many flagged items one verification call
	// may carry.
	verifyBudget = 50
	// missingShare caps the missing-item portion of the budget;
	// comparisons fill the remainder.
	missingShare = 0.4
	// flagBelow flags confident-looking statuses whose score is still low.
	flagBelow = 0.8
)

// selectForVerification picks the outcomes worth a second look:
// PARTIAL_MATCH and NO_MATCH verdicts, anything under the confidence
// threshold, and every missing item. Over budget, the most uncertain
// comparisons win the comparison slots.
func selectForVerification(result *model.ComparisonResult) (comparisons, missing []int) {
	for i, it := range result.Items {
		if it.Status == model.StatusPartialMatch || it.Status == model.StatusNoMatch || it.Confidence < flagBelow {
			comparisons = append(comparisons, i)
		}
	}
	for i := range result.MissingFromEquipment {
		missing = append(missing, i)
	}

	if len(comparisons)+len(missing) <= verifyBudget {
		return comparisons, missing
	}

	// Most uncertain first.
	sort.SliceStable(comparisons, func(a, b int) bool {
		return result.Items[comparisons[a]].Confidence < result.Items[comparisons[b]].Confidence
	})

	missingCap := int(float64(verifyBudget) * missingShare)
	if len(missing) > missingCap {
		missing = missing[:missingCap]
	}
	compCap := verifyBudget - len(missing)
	if len(comparisons) > compCap {
		comparisons = comparisons[:compCap]
	}
	return comparisons, missing
}
