package model

// MatchStatus is the comparison verdict for one equipment item.
type MatchStatus string

const (
	StatusMatch            MatchStatus = "MATCH"
	StatusPartialMatch     MatchStatus = "PARTIAL_MATCH"
	StatusNoMatch          MatchStatus = "NO_MATCH"
	StatusQuantityMismatch MatchStatus = "QUANTITY_MISMATCH"
	StatusExtra            MatchStatus = "EXTRA"
)

// ParseMatchStatus maps a response value onto the closed status set.
// Anything unrecognized becomes NO_MATCH rather than propagating an
// unknown string into the merge logic.
func ParseMatchStatus(s string) MatchStatus {
	switch MatchStatus(s) {
	case StatusMatch, StatusPartialMatch, StatusNoMatch, StatusQuantityMismatch, StatusExtra:
		return MatchStatus(s)
	default:
		return StatusNoMatch
	}
}

// Severity classifies a mismatch or missing item for the value estimate.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityModerate Severity = "MODERATE"
	SeverityLow      Severity = "LOW"
)

// ParseSeverity maps a response value onto the severity set; unknown
// values become the empty severity.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityCritical, SeverityModerate, SeverityLow:
		return Severity(s)
	default:
		return ""
	}
}

// MatchBasis records which signal the LLM matched on.
type MatchBasis string

const (
	BasisPartNumber  MatchBasis = "PART_NUMBER"
	BasisDescription MatchBasis = "DESCRIPTION"
	BasisInferred    MatchBasis = "INFERRED"
)

func ParseMatchBasis(s string) MatchBasis {
	switch MatchBasis(s) {
	case BasisPartNumber, BasisDescription, BasisInferred:
		return MatchBasis(s)
	default:
		return ""
	}
}

// ComparisonOutcome is one verdict per equipment item. EquipmentIndex and
// SpecIndex are indices into the respective ParseResult.Items slices;
// SpecIndex is nil for NO_MATCH and EXTRA outcomes.
type ComparisonOutcome struct {
	EquipmentIndex int         `json:"equipment_index"`
	SpecIndex      *int        `json:"spec_index,omitempty"`
	Status         MatchStatus `json:"status"`
	Confidence     float64     `json:"confidence"`
	Differences    []string    `json:"differences,omitempty"`
	Notes          string      `json:"notes,omitempty"`
	Severity       Severity    `json:"severity,omitempty"`
	MatchBasis     MatchBasis  `json:"match_basis,omitempty"`
}

// MissingOutcome is a spec item with no matching equipment outcome.
type MissingOutcome struct {
	SpecIndex int      `json:"spec_index"`
	Notes     string   `json:"notes,omitempty"`
	Severity  Severity `json:"severity,omitempty"`
}

// ChunkFailure records a tolerated per-chunk failure for observability.
type ChunkFailure struct {
	Chunk  int    `json:"chunk"`
	Reason string `json:"reason"`
}

// ComparisonSummary holds derived counts. It is always recomputed from
// the outcome list, never incrementally patched.
type ComparisonSummary struct {
	TotalEquipment   int `json:"total_equipment"`
	Matches          int `json:"matches"`
	PartialMatches   int `json:"partial_matches"`
	Mismatches       int `json:"mismatches"`
	QuantityIssues   int `json:"quantity_issues"`
	Extras           int `json:"extras"`
	MissingFromEquip int `json:"missing_from_equipment"`
}

// ComparisonResult is the merged stage-2 output.
type ComparisonResult struct {
	IndustryDetected     string              `json:"industry_detected"`
	Items                []ComparisonOutcome `json:"items"`
	MissingFromEquipment []MissingOutcome    `json:"missing_from_equipment"`
	Summary              ComparisonSummary   `json:"summary"`
	ChunkFailures        []ChunkFailure      `json:"chunk_failures,omitempty"`
}

// Recount rebuilds the summary from the outcome and missing lists.
func (r *ComparisonResult) Recount() {
	s := ComparisonSummary{
		TotalEquipment:   len(r.Items),
		MissingFromEquip: len(r.MissingFromEquipment),
	}
	for _, it := range r.Items {
		switch it.Status {
		case StatusMatch:
			s.Matches++
		case StatusPartialMatch:
			s.PartialMatches++
		case StatusNoMatch:
			s.Mismatches++
		case StatusQuantityMismatch:
			s.QuantityIssues++
		case StatusExtra:
			s.Extras++
		}
	}
	r.Summary = s
}
