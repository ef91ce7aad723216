package model

import "time"

// ConfidenceBucket is the externally reported confidence band.
type ConfidenceBucket string

const (
	ConfidenceHigh   ConfidenceBucket = "HIGH"
	ConfidenceMedium ConfidenceBucket = "MEDIUM"
	ConfidenceLow    ConfidenceBucket = "LOW"
)

// BucketConfidence maps a raw 0..1 score onto a band.
func BucketConfidence(score float64) ConfidenceBucket {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.5:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// ValidationStatus is the overall outcome of a run.
type ValidationStatus string

const (
	ValidationPass         ValidationStatus = "PASS"
	ValidationFail         ValidationStatus = "FAIL"
	ValidationReviewNeeded ValidationStatus = "REVIEW_NEEDED"
)

// Verification status labels on the report.
const (
	VerificationNotRequested = "NOT_REQUESTED"
	VerificationCompleted    = "COMPLETED"
	VerificationFailed       = "FAILED"
)

// ReportItem is one equipment line in the external report.
type ReportItem struct {
	EquipmentRow int              `json:"equipment_row"`
	SpecRow      *int             `json:"spec_row,omitempty"`
	PartNumber   string           `json:"part_number,omitempty"`
	Description  string           `json:"description"`
	Quantity     float64          `json:"quantity"`
	Status       MatchStatus      `json:"status"`
	Confidence   ConfidenceBucket `json:"confidence"`
	Issues       []string         `json:"issues,omitempty"`
	Notes        string           `json:"notes,omitempty"`
	Severity     Severity         `json:"severity,omitempty"`
	MatchBasis   MatchBasis       `json:"match_basis,omitempty"`
}

// MissingItem is one spec line absent from the equipment list.
type MissingItem struct {
	SpecRow     int      `json:"spec_row"`
	PartNumber  string   `json:"part_number,omitempty"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	Severity    Severity `json:"severity,omitempty"`
	Notes       string   `json:"notes,omitempty"`
}

// ValueEstimate is the severity-weighted cost model over mismatches and
// missing items.
type ValueEstimate struct {
	IssuesFound    int     `json:"issues_found"`
	EstimatedValue float64 `json:"estimated_value"`
	TimeSavedHours float64 `json:"time_saved_hours"`
	Currency       string  `json:"currency"`
}

// ReportSummary aggregates the run.
type ReportSummary struct {
	TotalEquipmentItems int              `json:"total_equipment_items"`
	TotalSpecItems      int              `json:"total_spec_items"`
	ExactMatches        int              `json:"exact_matches"`
	PartialMatches      int              `json:"partial_matches"`
	Mismatches          int              `json:"mismatches"`
	Missing             int              `json:"missing"`
	Extra               int              `json:"extra"`
	ValidationStatus    ValidationStatus `json:"validation_status"`
	OverallConfidence   ConfidenceBucket `json:"overall_confidence"`
}

// ValidationReport is the terminal artifact of a pipeline run. It is
// created once by the result mapper and never mutated afterward.
type ValidationReport struct {
	RunID                string              `json:"run_id"`
	GeneratedAt          time.Time           `json:"generated_at"`
	IndustryDetected     string              `json:"industry_detected,omitempty"`
	Matches              []ReportItem        `json:"matches"`
	Mismatches           []ReportItem        `json:"mismatches"`
	MissingFromEquipment []MissingItem       `json:"missing_from_equipment"`
	ExtraInEquipment     []ReportItem        `json:"extra_in_equipment"`
	Summary              ReportSummary       `json:"summary"`
	ValueEstimate        ValueEstimate       `json:"value_estimate"`
	VerificationStatus   string              `json:"verification_status"`
	Verification         *VerificationResult `json:"verification,omitempty"`
	Warnings             []string            `json:"warnings,omitempty"`
}
