package compare

import (
	"go.uber.org/zap"

	"github.com/equipcheck/validator/internal/core/model"
)

// claimsSpecItem reports whether an outcome status claims a spec item.
func claimsSpecItem(s model.MatchStatus) bool {
	return s == model.StatusMatch || s == model.StatusPartialMatch || s == model.StatusQuantityMismatch
}

// mergeChunks folds the tagged per-chunk results into one ComparisonResult.
// Only successes contribute; failures are recorded for observability. The
// reduction is order-insensitive: summary counts are derived at the end,
// and a spec item matched by any chunk is excluded from the merged missing
// list even if another chunk (which may not have seen that spec item at
// all, because of filtering) reported it missing.
func mergeChunks(equipment, spec *model.ParseResult, results []chunkResult, logger *zap.Logger) (*model.ComparisonResult, error) {
	merged := &model.ComparisonResult{}

	matchedSpec := map[int]bool{}
	successes := 0
	var firstErr error

	for _, r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
			}
			merged.ChunkFailures = append(merged.ChunkFailures, model.ChunkFailure{
				Chunk:  r.chunk.Index,
				Reason: r.err.Error(),
			})
			continue
		}
		successes++

		if merged.IndustryDetected == "" {
			merged.IndustryDetected = r.resp.IndustryDetected
		}

		// Spec row numbers visible to this chunk, for the merge
		// invariant check below.
		visible := map[int]bool{}
		for _, s := range r.chunk.Spec {
			visible[s.RowNumber] = true
		}

		for _, row := range r.resp.Results {
			outcome, err := resolveOutcome(row, equipment, spec)
			if err != nil {
				logger.Warn("dropping unresolvable outcome",
					zap.Int("chunk", r.chunk.Index), zap.Error(err))
				continue
			}
			merged.Items = append(merged.Items, outcome)

			if outcome.SpecIndex != nil && claimsSpecItem(outcome.Status) {
				matchedSpec[*outcome.SpecIndex] = true
				// By construction the matching chunk was handed this
				// spec item; filtering bugs would break that silently.
				if row.SpecRow != nil && !visible[*row.SpecRow] {
					logger.Warn("chunk matched a spec row outside its filtered slice",
						zap.Int("chunk", r.chunk.Index), zap.Int("spec_row", *row.SpecRow))
				}
			}
		}

		for _, m := range r.resp.MissingFromEquipment {
			specIdx, ok := spec.ByRowNumber[m.SpecRow]
			if !ok {
				logger.Warn("dropping unknown missing spec row",
					zap.Int("chunk", r.chunk.Index), zap.Int("spec_row", m.SpecRow))
				continue
			}
			merged.MissingFromEquipment = append(merged.MissingFromEquipment, model.MissingOutcome{
				SpecIndex: specIdx,
				Notes:     m.Notes,
				Severity:  model.ParseSeverity(m.Severity),
			})
		}
	}

	if successes == 0 {
		// Wrapping the first failure keeps llm.Error kinds visible to
		// callers mapping errors onto status codes.
		return nil, &ParseError{Chunk: -1, Reason: "no chunk produced a valid comparison response", Err: firstErr}
	}

	merged.MissingFromEquipment = dedupMissing(merged.MissingFromEquipment, matchedSpec)
	merged.Recount()

	if len(merged.ChunkFailures) > 0 {
		logger.Warn("comparison completed with failed chunks",
			zap.Int("failed", len(merged.ChunkFailures)),
			zap.Int("succeeded", successes))
	}

	return merged, nil
}

// dedupMissing drops duplicate spec indices and any spec item some chunk
// matched.
func dedupMissing(missing []model.MissingOutcome, matched map[int]bool) []model.MissingOutcome {
	seen := map[int]bool{}
	out := missing[:0]
	for _, m := range missing {
		if matched[m.SpecIndex] || seen[m.SpecIndex] {
			continue
		}
		seen[m.SpecIndex] = true
		out = append(out, m)
	}
	return out
}
