package verify

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/equipcheck/validator/internal/core/compare"
	"github.com/equipcheck/validator/internal/core/model"
)

func intp(v int) *int { return &v }

func sides(n int) (*model.ParseResult, *model.ParseResult) {
	build := func(label string) *model.ParseResult {
		r := &model.ParseResult{Label: label, ByRowNumber: map[int]int{}}
		for i := 0; i < n; i++ {
			r.Items = append(r.Items, model.CanonicalItem{
				RowNumber:   i + 1,
				PartNumber:  fmt.Sprintf("%s-%03d", label, i),
				Description: fmt.Sprintf("%s item %d", label, i),
				Quantity:    1,
			})
			r.ByRowNumber[i+1] = i
		}
		return r
	}
	return build("equipment"), build("spec")
}

func TestVerifyNothingFlagged(t *testing.T) {
	equipment, spec := sides(2)
	result := &model.ComparisonResult{
		Items: []model.ComparisonOutcome{
			{EquipmentIndex: 0, SpecIndex: intp(0), Status: model.StatusMatch, Confidence: 0.95},
			{EquipmentIndex: 1, SpecIndex: intp(1), Status: model.StatusMatch, Confidence: 0.9},
		},
	}
	result.Recount()

	mock := &compare.MockLLMClient{Err: errors.New("must not be called")}
	verifier := NewVerifier(mock, zap.NewNop())

	merged, summary, err := verifier.Verify(context.Background(), result, equipment, spec)
	require.NoError(t, err)

	assert.Zero(t, mock.Calls())
	assert.Same(t, result, merged)
	assert.Zero(t, summary.Checked)
}

func TestVerifyReclassifiesPartialMatch(t *testing.T) {
	equipment, spec := sides(1)
	equipment.Items[0].Description = "ss enclosure"
	spec.Items[0].Description = "stainless steel enclosure"

	result := &model.ComparisonResult{
		Items: []model.ComparisonOutcome{
			{EquipmentIndex: 0, SpecIndex: intp(0), Status: model.StatusPartialMatch, Confidence: 0.6},
		},
	}
	result.Recount()

	mock := &compare.MockLLMClient{Response: `{"verified_items": [
		{"item": 1, "decision": "RECLASSIFIED_MATCH", "confidence": 0.9,
		 "reasoning": "ss is a standard abbreviation for stainless steel"}
	]}`}
	verifier := NewVerifier(mock, zap.NewNop())

	merged, summary, err := verifier.Verify(context.Background(), result, equipment, spec)
	require.NoError(t, err)

	assert.Equal(t, model.StatusMatch, merged.Items[0].Status)
	assert.Equal(t, 0.9, merged.Items[0].Confidence)
	assert.Equal(t, 1, merged.Summary.Matches)

	// The stage-2 result itself stays untouched.
	assert.Equal(t, model.StatusPartialMatch, result.Items[0].Status)
	assert.Equal(t, 0.6, result.Items[0].Confidence)

	assert.Equal(t, 1, summary.Checked)
	assert.Equal(t, 1, summary.Reclassified)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, model.DecisionReclassifiedMatch, summary.Items[0].Decision)
	assert.False(t, summary.Items[0].IsMissing)
}

func TestVerifyConfirmedMismatchRevisesSeverity(t *testing.T) {
	equipment, spec := sides(1)
	result := &model.ComparisonResult{
		Items: []model.ComparisonOutcome{
			{EquipmentIndex: 0, SpecIndex: intp(0), Status: model.StatusNoMatch,
				Confidence: 0.5, Severity: model.SeverityLow},
		},
	}
	result.Recount()

	mock := &compare.MockLLMClient{Response: `{"verified_items": [
		{"item": 1, "decision": "CONFIRMED_MISMATCH", "confidence": 0.95,
		 "revised_severity": "CRITICAL"}
	]}`}
	verifier := NewVerifier(mock, zap.NewNop())

	merged, summary, err := verifier.Verify(context.Background(), result, equipment, spec)
	require.NoError(t, err)

	assert.Equal(t, model.StatusNoMatch, merged.Items[0].Status)
	assert.Equal(t, 0.95, merged.Items[0].Confidence)
	assert.Equal(t, model.SeverityCritical, merged.Items[0].Severity)
	assert.Equal(t, 1, summary.Confirmed)
}

func TestVerifyNeedsReviewNeverRaisesConfidence(t *testing.T) {
	equipment, spec := sides(1)
	result := &model.ComparisonResult{
		Items: []model.ComparisonOutcome{
			{EquipmentIndex: 0, SpecIndex: intp(0), Status: model.StatusPartialMatch, Confidence: 0.6},
		},
	}
	result.Recount()

	// Unknown decisions fall back to NEEDS_HUMAN_REVIEW.
	mock := &compare.MockLLMClient{Response: `{"verified_items": [
		{"item": 1, "decision": "SHRUG", "confidence": 0.9}
	]}`}
	verifier := NewVerifier(mock, zap.NewNop())

	merged, summary, err := verifier.Verify(context.Background(), result, equipment, spec)
	require.NoError(t, err)

	assert.Equal(t, 0.6, merged.Items[0].Confidence)
	assert.Equal(t, 1, summary.NeedsReview)
	assert.Equal(t, model.DecisionNeedsHumanReview, summary.Items[0].Decision)
}

func TestVerifyReclassifiedMissingItemIsRemoved(t *testing.T) {
	equipment, spec := sides(3)
	result := &model.ComparisonResult{
		Items: []model.ComparisonOutcome{
			{EquipmentIndex: 0, SpecIndex: intp(0), Status: model.StatusMatch, Confidence: 0.95},
		},
		MissingFromEquipment: []model.MissingOutcome{
			{SpecIndex: 1, Severity: model.SeverityModerate},
			{SpecIndex: 2, Severity: model.SeverityCritical},
		},
	}
	result.Recount()

	// No comparisons are flagged, so items 1 and 2 are the missing rows.
	mock := &compare.MockLLMClient{Response: `{"verified_items": [
		{"item": 1, "decision": "RECLASSIFIED_MATCH", "confidence": 0.9,
		 "reasoning": "covered by equipment row 1 under a different name"},
		{"item": 2, "decision": "CONFIRMED_MISMATCH", "confidence": 0.9}
	]}`}
	verifier := NewVerifier(mock, zap.NewNop())

	merged, summary, err := verifier.Verify(context.Background(), result, equipment, spec)
	require.NoError(t, err)

	require.Len(t, merged.MissingFromEquipment, 1)
	assert.Equal(t, 2, merged.MissingFromEquipment[0].SpecIndex)
	assert.Equal(t, 1, merged.Summary.MissingFromEquip)

	assert.Equal(t, 2, summary.Checked)
	assert.Equal(t, 1, summary.Reclassified)
	assert.Equal(t, 1, summary.Confirmed)
	assert.True(t, summary.Items[0].IsMissing)
}

func TestVerifyDegradesOnCompletionError(t *testing.T) {
	equipment, spec := sides(1)
	result := &model.ComparisonResult{
		Items: []model.ComparisonOutcome{
			{EquipmentIndex: 0, Status: model.StatusNoMatch, Confidence: 0.4},
		},
	}
	result.Recount()

	mock := &compare.MockLLMClient{Err: errors.New("completion timed out")}
	verifier := NewVerifier(mock, zap.NewNop())

	merged, summary, err := verifier.Verify(context.Background(), result, equipment, spec)
	require.Error(t, err)

	assert.Same(t, result, merged)
	assert.Zero(t, summary.Checked)
}

func TestVerifyDegradesOnBadResponse(t *testing.T) {
	equipment, spec := sides(1)
	result := &model.ComparisonResult{
		Items: []model.ComparisonOutcome{
			{EquipmentIndex: 0, Status: model.StatusNoMatch, Confidence: 0.4},
		},
	}
	result.Recount()

	mock := &compare.MockLLMClient{Response: "I am not sure about these items."}
	verifier := NewVerifier(mock, zap.NewNop())

	merged, summary, err := verifier.Verify(context.Background(), result, equipment, spec)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Same(t, result, merged)
	assert.Zero(t, summary.Checked)
}

func TestVerifyIgnoresUnknownItemNumbers(t *testing.T) {
	equipment, spec := sides(1)
	result := &model.ComparisonResult{
		Items: []model.ComparisonOutcome{
			{EquipmentIndex: 0, Status: model.StatusNoMatch, Confidence: 0.4},
		},
	}
	result.Recount()

	mock := &compare.MockLLMClient{Response: `{"verified_items": [
		{"item": 7, "decision": "CONFIRMED_MISMATCH", "confidence": 0.9}
	]}`}
	verifier := NewVerifier(mock, zap.NewNop())

	_, summary, err := verifier.Verify(context.Background(), result, equipment, spec)
	require.NoError(t, err)
	assert.Zero(t, summary.Checked)
}

func TestSelectForVerificationFlagsAndBudget(t *testing.T) {
	result := &model.ComparisonResult{}
	// 60 flaggable comparisons with descending confidence.
	for i := 0; i < 60; i++ {
		result.Items = append(result.Items, model.ComparisonOutcome{
			EquipmentIndex: i,
			Status:         model.StatusPartialMatch,
			Confidence:     0.79 - float64(i)*0.01,
		})
	}
	// A confident MATCH is never flagged.
	result.Items = append(result.Items, model.ComparisonOutcome{
		EquipmentIndex: 60, Status: model.StatusMatch, Confidence: 0.9,
	})
	for i := 0; i < 30; i++ {
		result.MissingFromEquipment = append(result.MissingFromEquipment, model.MissingOutcome{SpecIndex: i})
	}

	comparisons, missing := selectForVerification(result)

	assert.Len(t, missing, 20)
	require.Len(t, comparisons, 30)
	assert.Equal(t, 50, len(comparisons)+len(missing))

	// The least confident comparisons win the slots.
	for i := 1; i < len(comparisons); i++ {
		prev := result.Items[comparisons[i-1]].Confidence
		cur := result.Items[comparisons[i]].Confidence
		assert.LessOrEqual(t, prev, cur)
	}
	assert.Equal(t, 59, comparisons[0])
}

func TestSelectForVerificationUnderBudget(t *testing.T) {
	result := &model.ComparisonResult{
		Items: []model.ComparisonOutcome{
			{Status: model.StatusMatch, Confidence: 0.95},
			{Status: model.StatusMatch, Confidence: 0.7}, // low confidence flags a MATCH
			{Status: model.StatusNoMatch, Confidence: 0.9},
		},
		MissingFromEquipment: []model.MissingOutcome{{SpecIndex: 0}},
	}

	comparisons, missing := selectForVerification(result)

	assert.Equal(t, []int{1, 2}, comparisons)
	assert.Equal(t, []int{0}, missing)
}
