package compare

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equipcheck/validator/internal/core/model"
)

func makeParseResult(label string, n int) *model.ParseResult {
	result := &model.ParseResult{Label: label, ByRowNumber: map[int]int{}}
	for i := 0; i < n; i++ {
		result.Items = append(result.Items, model.CanonicalItem{
			RowNumber:   i + 1,
			PartNumber:  fmt.Sprintf("PART-%04d", i),
			Description: fmt.Sprintf("item number %d description", i),
			Quantity:    1,
		})
		result.ByRowNumber[i+1] = i
	}
	return result
}

func TestBuildChunksSmallInputStaysWhole(t *testing.T) {
	// 100 items is within maxChunkSize+slack of the default 75.
	equipment := makeParseResult("equipment", 100)
	spec := makeParseResult("spec", 120)

	chunks := BuildChunks(equipment, spec, DefaultMaxChunkSize)

	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0].Equipment, 100)
	assert.Len(t, chunks[0].Spec, 120)
	assert.False(t, chunks[0].SpecFiltered)
}

func TestBuildChunksSplitsLargeInput(t *testing.T) {
	// 200 rows with chunk size 75: rows 1-75, 76-150, 151-200.
	equipment := makeParseResult("equipment", 200)
	spec := makeParseResult("spec", 200)

	chunks := BuildChunks(equipment, spec, 75)

	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0].Equipment, 75)
	assert.Len(t, chunks[1].Equipment, 75)
	assert.Len(t, chunks[2].Equipment, 50)
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		// Spec under the filter threshold is passed whole.
		assert.Len(t, c.Spec, 200)
	}
}

func TestBuildChunksFiltersHugeSpec(t *testing.T) {
	distinct := func(label string, n int) *model.ParseResult {
		result := &model.ParseResult{Label: label, ByRowNumber: map[int]int{}}
		for i := 0; i < n; i++ {
			result.Items = append(result.Items, model.CanonicalItem{
				RowNumber:   i + 1,
				PartNumber:  fmt.Sprintf("%05d", i),
				Description: fmt.Sprintf("alpha%d beta%d", i, i),
			})
			result.ByRowNumber[i+1] = i
		}
		return result
	}
	equipment := distinct("equipment", 200)
	spec := distinct("spec", 1500)

	chunks := BuildChunks(equipment, spec, 75)

	require.Len(t, chunks, 3)
	// Each chunk's parts exist verbatim in the spec, so the filter keeps
	// exactly the exact-part matches and stays above the over-prune floor.
	for _, c := range chunks {
		assert.True(t, c.SpecFiltered)
		assert.Equal(t, len(c.Equipment), len(c.Spec))
	}
}

func TestFilterSpecKeepsRelevantItems(t *testing.T) {
	chunk := []model.CanonicalItem{
		{RowNumber: 1, PartNumber: "ABC-123", Description: "stainless steel bracket assembly"},
		{RowNumber: 2, PartNumber: "XYZ-900", Description: "control valve actuator"},
	}
	spec := []model.CanonicalItem{
		{RowNumber: 1, PartNumber: "ABC-123", Description: "bracket"},                       // exact part
		{RowNumber: 2, PartNumber: "XYZ-9001", Description: "unrelated"},                    // 5-char prefix
		{RowNumber: 3, PartNumber: "QQQ-1", Description: "stainless steel mounting plate"},  // 2 shared words
		{RowNumber: 4, PartNumber: "QQQ-2", Description: "rubber gasket"},                   // no overlap
	}

	kept, filtered := filterSpec(chunk, spec)

	require.True(t, filtered)
	var rows []int
	for _, k := range kept {
		rows = append(rows, k.RowNumber)
	}
	assert.Equal(t, []int{1, 2, 3}, rows)
}

func TestFilterSpecFallsBackWhenOverPruned(t *testing.T) {
	// Nothing in the spec resembles the chunk; filtering would hide
	// whatever true matches the model might still find.
	chunk := make([]model.CanonicalItem, 10)
	for i := range chunk {
		chunk[i] = model.CanonicalItem{RowNumber: i + 1, PartNumber: fmt.Sprintf("EQ-%d", i), Description: "widget"}
	}
	spec := []model.CanonicalItem{
		{RowNumber: 1, PartNumber: "SP-1", Description: "something else entirely"},
		{RowNumber: 2, PartNumber: "SP-2", Description: "another thing"},
	}

	kept, filtered := filterSpec(chunk, spec)

	assert.False(t, filtered)
	assert.Len(t, kept, len(spec))
}
