package model

// VerifyDecision is the stage-3 verdict for a re-examined item.
type VerifyDecision string

const (
	DecisionConfirmedMismatch VerifyDecision = "CONFIRMED_MISMATCH"
	DecisionReclassifiedMatch VerifyDecision = "RECLASSIFIED_MATCH"
	DecisionNeedsHumanReview  VerifyDecision = "NEEDS_HUMAN_REVIEW"
)

// ParseVerifyDecision maps a response value onto the decision set.
// Unknown values default to NEEDS_HUMAN_REVIEW, the conservative choice.
func ParseVerifyDecision(s string) VerifyDecision {
	switch VerifyDecision(s) {
	case DecisionConfirmedMismatch, DecisionReclassifiedMatch, DecisionNeedsHumanReview:
		return VerifyDecision(s)
	default:
		return DecisionNeedsHumanReview
	}
}

// VerifiedItem is one stage-3 reclassification. OriginalIndex is the
// position in ComparisonResult.Items for comparison items, or in
// ComparisonResult.MissingFromEquipment for missing items (IsMissing
// distinguishes).
type VerifiedItem struct {
	OriginalIndex   int            `json:"original_index"`
	IsMissing       bool           `json:"is_missing"`
	Decision        VerifyDecision `json:"decision"`
	Confidence      float64        `json:"confidence"`
	Reasoning       string         `json:"reasoning,omitempty"`
	RevisedSeverity Severity       `json:"revised_severity,omitempty"`
}

// VerificationResult summarizes the optional second pass.
type VerificationResult struct {
	Checked      int            `json:"checked"`
	Reclassified int            `json:"reclassified"`
	Confirmed    int            `json:"confirmed"`
	NeedsReview  int            `json:"needs_review"`
	Items        []VerifiedItem `json:"items,omitempty"`
}
