package report

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/equipcheck/validator/internal/core/model"
)

// Per-severity cost model for the value estimate. Unlabeled issues are
// priced as LOW.
const (
	costCritical = 500
	costModerate = 350
	costLow      = 150

	// Review time saved per spec line item, in hours.
	timeSavedPerSpecItem = 0.05

	currency = "USD"
)

// Map projects the internal comparison and verification model into the
// external validation report. The report is a terminal artifact: it is
// created here once and never mutated afterward.
func Map(comparison *model.ComparisonResult, verification *model.VerificationResult, equipment, spec *model.ParseResult, verificationStatus string) *model.ValidationReport {
	rep := &model.ValidationReport{
		RunID:                uuid.New().String(),
		GeneratedAt:          time.Now().UTC(),
		IndustryDetected:     comparison.IndustryDetected,
		Matches:              []model.ReportItem{},
		Mismatches:           []model.ReportItem{},
		MissingFromEquipment: []model.MissingItem{},
		ExtraInEquipment:     []model.ReportItem{},
		VerificationStatus:   verificationStatus,
		Verification:         verification,
	}
	rep.Warnings = append(rep.Warnings, equipment.Warnings...)
	rep.Warnings = append(rep.Warnings, spec.Warnings...)

	var confidenceSum float64
	for _, outcome := range comparison.Items {
		confidenceSum += outcome.Confidence
		item := buildReportItem(outcome, equipment, spec)

		switch outcome.Status {
		case model.StatusMatch, model.StatusPartialMatch:
			rep.Matches = append(rep.Matches, item)
		case model.StatusNoMatch, model.StatusQuantityMismatch:
			rep.Mismatches = append(rep.Mismatches, item)
		case model.StatusExtra:
			rep.ExtraInEquipment = append(rep.ExtraInEquipment, item)
		}
	}

	for _, m := range comparison.MissingFromEquipment {
		rep.MissingFromEquipment = append(rep.MissingFromEquipment, buildMissingItem(m, spec))
	}

	rep.Summary = buildSummary(comparison, equipment, spec, confidenceSum)
	rep.ValueEstimate = buildValueEstimate(rep.Mismatches, rep.MissingFromEquipment, len(spec.Items))

	return rep
}

func buildReportItem(outcome model.ComparisonOutcome, equipment, spec *model.ParseResult) model.ReportItem {
	item := model.ReportItem{
		Status:     outcome.Status,
		Confidence: model.BucketConfidence(outcome.Confidence),
		Issues:     outcome.Differences,
		Notes:      outcome.Notes,
		Severity:   outcome.Severity,
		MatchBasis: outcome.MatchBasis,
	}

	if outcome.EquipmentIndex >= 0 && outcome.EquipmentIndex < len(equipment.Items) {
		eq := equipment.Items[outcome.EquipmentIndex]
		item.EquipmentRow = eq.RowNumber
		item.PartNumber = eq.PartNumber
		item.Description = eq.DescriptionRaw
		item.Quantity = eq.Quantity
	}
	if outcome.SpecIndex != nil && *outcome.SpecIndex >= 0 && *outcome.SpecIndex < len(spec.Items) {
		row := spec.Items[*outcome.SpecIndex].RowNumber
		item.SpecRow = &row
	}
	return item
}

func buildMissingItem(m model.MissingOutcome, spec *model.ParseResult) model.MissingItem {
	item := model.MissingItem{
		Severity: m.Severity,
		Notes:    m.Notes,
	}
	if m.SpecIndex >= 0 && m.SpecIndex < len(spec.Items) {
		s := spec.Items[m.SpecIndex]
		item.SpecRow = s.RowNumber
		item.PartNumber = s.PartNumber
		item.Description = s.DescriptionRaw
		item.Quantity = s.Quantity
	}
	return item
}

func buildSummary(comparison *model.ComparisonResult, equipment, spec *model.ParseResult, confidenceSum float64) model.ReportSummary {
	s := model.ReportSummary{
		TotalEquipmentItems: len(equipment.Items),
		TotalSpecItems:      len(spec.Items),
		ExactMatches:        comparison.Summary.Matches,
		PartialMatches:      comparison.Summary.PartialMatches,
		Mismatches:          comparison.Summary.Mismatches + comparison.Summary.QuantityIssues,
		Missing:             comparison.Summary.MissingFromEquip,
		Extra:               comparison.Summary.Extras,
	}

	switch {
	case s.Mismatches > 0 || s.Missing > 0:
		s.ValidationStatus = model.ValidationFail
	case s.PartialMatches > 0:
		s.ValidationStatus = model.ValidationReviewNeeded
	default:
		s.ValidationStatus = model.ValidationPass
	}

	if len(comparison.Items) > 0 {
		s.OverallConfidence = model.BucketConfidence(confidenceSum / float64(len(comparison.Items)))
	} else {
		s.OverallConfidence = model.ConfidenceLow
	}
	return s
}

func buildValueEstimate(mismatches []model.ReportItem, missing []model.MissingItem, specItems int) model.ValueEstimate {
	estimate := model.ValueEstimate{Currency: currency}

	for _, m := range mismatches {
		estimate.IssuesFound++
		estimate.EstimatedValue += severityCost(m.Severity)
	}
	for _, m := range missing {
		estimate.IssuesFound++
		estimate.EstimatedValue += severityCost(m.Severity)
	}

	estimate.TimeSavedHours = math.Round(float64(specItems)*timeSavedPerSpecItem*10) / 10
	return estimate
}

func severityCost(s model.Severity) float64 {
	switch s {
	case model.SeverityCritical:
		return costCritical
	case model.SeverityModerate:
		return costModerate
	default:
		return costLow
	}
}
