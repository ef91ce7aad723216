package compare

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/equipcheck/validator/internal/core/common"
	"github.com/equipcheck/validator/internal/core/model"
	"github.com/equipcheck/validator/internal/llm"
)

// Comparator drives stage 2: chunked, bounded-concurrency comparison of
// the equipment list against the spec through the completion client.
type Comparator struct {
	LLM            llm.LLMClient
	Logger         *zap.Logger
	MaxChunkSize   int
	MaxConcurrency int
}

func NewComparator(llmClient llm.LLMClient, logger *zap.Logger) *Comparator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparator{
		LLM:            llmClient,
		Logger:         logger,
		MaxChunkSize:   DefaultMaxChunkSize,
		MaxConcurrency: DefaultMaxConcurrency,
	}
}

// chunkResult tags one chunk's completion as success or failure so the
// merge step can consume successes and record failures explicitly.
type chunkResult struct {
	chunk Chunk
	resp  *chunkResponse
	err   error
}

// Compare runs the full stage-2 fan-out and merge. Individual chunk
// failures are tolerated; zero successful chunks is fatal.
func (c *Comparator) Compare(ctx context.Context, equipment, spec *model.ParseResult) (*model.ComparisonResult, error) {
	chunks := BuildChunks(equipment, spec, c.MaxChunkSize)
	c.Logger.Info("comparison fan-out",
		zap.Int("equipment_items", len(equipment.Items)),
		zap.Int("spec_items", len(spec.Items)),
		zap.Int("chunks", len(chunks)))

	concurrency := c.MaxConcurrency
	if concurrency <= 0 {
		concurrency = DefaultMaxConcurrency
	}

	results := make([]chunkResult, len(chunks))

	// Batches of maxConcurrency; a batch fully settles before the next
	// starts, bounding peak concurrent completion calls.
	for start := 0; start < len(chunks); start += concurrency {
		end := start + concurrency
		if end > len(chunks) {
			end = len(chunks)
		}

		var g errgroup.Group
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				results[i] = c.compareChunk(ctx, chunks[i])
				return nil
			})
		}
		// Tasks report through the tagged results, never an error.
		_ = g.Wait()
	}

	return mergeChunks(equipment, spec, results, c.Logger)
}

func (c *Comparator) compareChunk(ctx context.Context, chunk Chunk) chunkResult {
	prompt := BuildComparisonPrompt(chunk)

	response, err := c.LLM.Generate(ctx, prompt)
	if err != nil {
		c.Logger.Warn("chunk completion failed", zap.Int("chunk", chunk.Index), zap.Error(err))
		return chunkResult{chunk: chunk, err: err}
	}

	resp, err := common.ParseJSON[chunkResponse](response)
	if err != nil {
		perr := &ParseError{Chunk: chunk.Index, Reason: "invalid JSON", Err: err}
		c.Logger.Warn("chunk response unparseable", zap.Int("chunk", chunk.Index), zap.Error(err))
		return chunkResult{chunk: chunk, err: perr}
	}
	if resp.Results == nil {
		perr := &ParseError{Chunk: chunk.Index, Reason: "missing results array"}
		c.Logger.Warn("chunk response missing results array", zap.Int("chunk", chunk.Index))
		return chunkResult{chunk: chunk, err: perr}
	}

	return chunkResult{chunk: chunk, resp: &resp}
}

// resolveOutcome maps one wire row onto a ComparisonOutcome, anchoring
// the response's row numbers back onto the canonical item arrays.
func resolveOutcome(row resultRow, equipment, spec *model.ParseResult) (model.ComparisonOutcome, error) {
	eqIdx, ok := equipment.ByRowNumber[row.EquipmentRow]
	if !ok {
		return model.ComparisonOutcome{}, fmt.Errorf("unknown equipment row %d", row.EquipmentRow)
	}

	outcome := model.ComparisonOutcome{
		EquipmentIndex: eqIdx,
		Status:         model.ParseMatchStatus(row.Status),
		Confidence:     clamp01(row.Confidence),
		Differences:    row.Differences,
		Notes:          row.Notes,
		Severity:       model.ParseSeverity(row.Severity),
		MatchBasis:     model.ParseMatchBasis(row.MatchBasis),
	}

	if row.SpecRow != nil {
		if specIdx, ok := spec.ByRowNumber[*row.SpecRow]; ok {
			outcome.SpecIndex = &specIdx
		}
	}

	// A MATCH the model itself flags as a quantity miss is a quantity
	// mismatch, whatever the status field says.
	if row.QuantityMatch != nil && !*row.QuantityMatch && outcome.Status == model.StatusMatch {
		outcome.Status = model.StatusQuantityMismatch
	}

	return outcome, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
