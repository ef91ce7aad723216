package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equipcheck/validator/internal/core/compare"
	"github.com/equipcheck/validator/internal/core/model"
	"github.com/equipcheck/validator/internal/llm"
)

func equipmentRows() []map[string]any {
	return []map[string]any{
		{"Part Number": "SQD-QO120", "Description": "20A 1-Pole Breaker", "Qty": 4},
		{"Part Number": "HUB-5352", "Description": "Duplex Receptacle", "Qty": 12},
	}
}

func specRows() []map[string]any {
	return []map[string]any{
		{"Part Number": "SQD-QO120", "Description": "20A 1-Pole Breaker", "Qty": 5},
		{"Part Number": "HUB-5352", "Description": "Duplex Receptacle", "Qty": 12},
		{"Part Number": "GFI-200", "Description": "GFCI Receptacle, Bathroom", "Qty": 2},
	}
}

const comparisonResponse = `{
	"industry_detected": "electrical",
	"results": [
		{"equipment_row": 1, "spec_row": 1, "status": "MATCH", "confidence": 0.95,
		 "quantity_match": false, "differences": ["equipment has 4, spec requires 5"],
		 "severity": "MODERATE", "match_basis": "PART_NUMBER"},
		{"equipment_row": 2, "spec_row": 2, "status": "MATCH", "confidence": 0.98,
		 "quantity_match": true, "match_basis": "PART_NUMBER"}
	],
	"missing_from_equipment": [
		{"spec_row": 3, "notes": "no GFCI protection in the equipment list", "severity": "CRITICAL"}
	]
}`

func TestPipelineRunWithoutVerification(t *testing.T) {
	mock := &compare.MockLLMClient{Response: comparisonResponse}
	pipeline := NewPipeline(mock, nil)

	rep, err := pipeline.Run(context.Background(), equipmentRows(), specRows(), Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, mock.Calls())
	assert.Equal(t, model.VerificationNotRequested, rep.VerificationStatus)
	assert.Nil(t, rep.Verification)

	assert.Equal(t, "electrical", rep.IndustryDetected)
	assert.Len(t, rep.Matches, 1)
	assert.Len(t, rep.Mismatches, 1)
	require.Len(t, rep.MissingFromEquipment, 1)
	assert.Equal(t, "GFI-200", rep.MissingFromEquipment[0].PartNumber)
	assert.Equal(t, model.SeverityCritical, rep.MissingFromEquipment[0].Severity)

	assert.Equal(t, model.ValidationFail, rep.Summary.ValidationStatus)
	assert.Equal(t, 2, rep.Summary.TotalEquipmentItems)
	assert.Equal(t, 3, rep.Summary.TotalSpecItems)
}

func TestPipelineRunWithVerification(t *testing.T) {
	// Second completion is the verification pass over the quantity
	// mismatch and the missing GFCI item.
	mock := &compare.MockLLMClient{Queue: []string{
		comparisonResponse,
		`{"verified_items": [
			{"item": 1, "decision": "CONFIRMED_MISMATCH", "confidence": 0.97},
			{"item": 2, "decision": "CONFIRMED_MISMATCH", "confidence": 0.99,
			 "reasoning": "nothing in the equipment list provides GFCI protection"}
		]}`,
	}}
	pipeline := NewPipeline(mock, nil)

	rep, err := pipeline.Run(context.Background(), equipmentRows(), specRows(), Options{Verify: true})
	require.NoError(t, err)

	assert.Equal(t, 2, mock.Calls())
	assert.Equal(t, model.VerificationCompleted, rep.VerificationStatus)
	require.NotNil(t, rep.Verification)
	assert.Equal(t, 2, rep.Verification.Checked)
	assert.Equal(t, 2, rep.Verification.Confirmed)

	assert.Equal(t, model.ValidationFail, rep.Summary.ValidationStatus)
	assert.Len(t, rep.MissingFromEquipment, 1)
}

func TestPipelineVerificationFailureDegrades(t *testing.T) {
	mock := &compare.MockLLMClient{Queue: []string{
		comparisonResponse,
		"sorry, I cannot help with that",
	}}
	pipeline := NewPipeline(mock, nil)

	rep, err := pipeline.Run(context.Background(), equipmentRows(), specRows(), Options{Verify: true})
	require.NoError(t, err)

	assert.Equal(t, model.VerificationFailed, rep.VerificationStatus)
	require.NotNil(t, rep.Verification)
	assert.Zero(t, rep.Verification.Checked)
	// The stage-2 result still reaches the report.
	assert.Len(t, rep.Mismatches, 1)
	assert.Len(t, rep.MissingFromEquipment, 1)
}

func TestPipelinePropagatesComparisonError(t *testing.T) {
	mock := &compare.MockLLMClient{Err: &llm.Error{Kind: llm.KindAuth}}
	pipeline := NewPipeline(mock, nil)

	rep, err := pipeline.Run(context.Background(), equipmentRows(), specRows(), Options{})
	assert.Nil(t, rep)
	assert.Equal(t, llm.KindAuth, llm.ErrorKind(err))
}

func TestPipelineOptionsOverrideChunking(t *testing.T) {
	rows := make([]map[string]any, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, map[string]any{
			"Part Number": "PN-" + string(rune('A'+i%26)) + "-" + string(rune('A'+i/26)),
			"Description": "bulk item",
			"Qty":         1,
		})
	}

	mock := &compare.MockLLMClient{Response: `{"results": []}`}
	pipeline := NewPipeline(mock, nil)

	_, err := pipeline.Run(context.Background(), rows, specRows(), Options{
		MaxChunkSize:   40,
		MaxConcurrency: 1,
	})
	require.NoError(t, err)

	// 120 rows at chunk size 40 is three completions.
	assert.Equal(t, 3, mock.Calls())
}
