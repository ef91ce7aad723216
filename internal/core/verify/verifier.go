package verify

import (
	"context"

	"go.uber.org/zap"

	"github.com/equipcheck/validator/internal/core/common"
	"github.com/equipcheck/validator/internal/core/model"
	"github.com/equipcheck/validator/internal/llm"
)

// Verifier drives the optional stage-3 pass: one completion call that
// re-examines the flagged subset of stage-2 outcomes and may reclassify
// them. Verification failure never fails the validation - any error
// degrades to the original result with zero items checked.
type Verifier struct {
	LLM    llm.LLMClient
	Logger *zap.Logger
}

func NewVerifier(llmClient llm.LLMClient, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{LLM: llmClient, Logger: logger}
}

type verifyResponse struct {
	VerifiedItems []verifiedRow `json:"verified_items"`
}

type verifiedRow struct {
	Item            int     `json:"item"`
	Decision        string  `json:"decision"`
	Confidence      float64 `json:"confidence"`
	Reasoning       string  `json:"reasoning"`
	RevisedSeverity string  `json:"revised_severity"`
}

// Verify re-examines the flagged subset and merges reclassifications
// into a copy of the stage-2 result. The returned VerificationResult is
// never nil. A non-nil error means verification degraded and the
// original result came back untouched; callers must not treat it as a
// pipeline failure.
func (v *Verifier) Verify(ctx context.Context, result *model.ComparisonResult, equipment, spec *model.ParseResult) (*model.ComparisonResult, *model.VerificationResult, error) {
	comparisons, missing := selectForVerification(result)
	if len(comparisons)+len(missing) == 0 {
		return result, &model.VerificationResult{}, nil
	}

	prompt := BuildVerificationPrompt(result, equipment, spec, comparisons, missing)

	response, err := v.LLM.Generate(ctx, prompt)
	if err != nil {
		v.Logger.Warn("verification call failed, keeping stage-2 result", zap.Error(err))
		return result, &model.VerificationResult{}, err
	}

	resp, err := common.ParseJSON[verifyResponse](response)
	if err != nil || resp.VerifiedItems == nil {
		v.Logger.Warn("verification response unparseable, keeping stage-2 result", zap.Error(err))
		return result, &model.VerificationResult{}, &ParseError{Err: err}
	}

	merged, summary := v.merge(result, resp, comparisons, missing)
	return merged, summary, nil
}

// ParseError marks an unusable verification response.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "verification response was not the expected JSON shape"
}

func (e *ParseError) Unwrap() error { return e.Err }

// merge applies the verification decisions. Item numbers in the response
// index into the flagged list: comparisons first, then missing items.
func (v *Verifier) merge(result *model.ComparisonResult, resp verifyResponse, comparisons, missing []int) (*model.ComparisonResult, *model.VerificationResult) {
	merged := copyResult(result)
	summary := &model.VerificationResult{}

	removeMissing := map[int]bool{}

	for _, row := range resp.VerifiedItems {
		flagPos := row.Item - 1
		if flagPos < 0 || flagPos >= len(comparisons)+len(missing) {
			v.Logger.Warn("verification referenced unknown item", zap.Int("item", row.Item))
			continue
		}

		decision := model.ParseVerifyDecision(row.Decision)
		verified := model.VerifiedItem{
			Decision:        decision,
			Confidence:      row.Confidence,
			Reasoning:       row.Reasoning,
			RevisedSeverity: model.ParseSeverity(row.RevisedSeverity),
		}
		summary.Checked++

		if flagPos < len(comparisons) {
			idx := comparisons[flagPos]
			verified.OriginalIndex = idx
			applyToComparison(&merged.Items[idx], verified, summary)
		} else {
			idx := missing[flagPos-len(comparisons)]
			verified.OriginalIndex = idx
			verified.IsMissing = true
			switch decision {
			case model.DecisionReclassifiedMatch:
				// The spec row is satisfied after all; drop it from the
				// missing list entirely.
				removeMissing[idx] = true
				summary.Reclassified++
			case model.DecisionConfirmedMismatch:
				if verified.RevisedSeverity != "" {
					merged.MissingFromEquipment[idx].Severity = verified.RevisedSeverity
				}
				summary.Confirmed++
			default:
				summary.NeedsReview++
			}
		}

		summary.Items = append(summary.Items, verified)
	}

	if len(removeMissing) > 0 {
		kept := merged.MissingFromEquipment[:0]
		for i, m := range merged.MissingFromEquipment {
			if !removeMissing[i] {
				kept = append(kept, m)
			}
		}
		merged.MissingFromEquipment = kept
	}

	merged.Recount()
	return merged, summary
}

func applyToComparison(outcome *model.ComparisonOutcome, verified model.VerifiedItem, summary *model.VerificationResult) {
	switch verified.Decision {
	case model.DecisionReclassifiedMatch:
		outcome.Status = model.StatusMatch
		if verified.Confidence > outcome.Confidence {
			outcome.Confidence = verified.Confidence
		}
		summary.Reclassified++
	case model.DecisionConfirmedMismatch:
		if verified.Confidence > outcome.Confidence {
			outcome.Confidence = verified.Confidence
		}
		if verified.RevisedSeverity != "" {
			outcome.Severity = verified.RevisedSeverity
		}
		summary.Confirmed++
	case model.DecisionNeedsHumanReview:
		// Never raise confidence on an undecided item.
		if verified.Confidence < outcome.Confidence {
			outcome.Confidence = verified.Confidence
		}
		summary.NeedsReview++
	}
}

func copyResult(r *model.ComparisonResult) *model.ComparisonResult {
	out := *r
	out.Items = append([]model.ComparisonOutcome(nil), r.Items...)
	out.MissingFromEquipment = append([]model.MissingOutcome(nil), r.MissingFromEquipment...)
	return &out
}
