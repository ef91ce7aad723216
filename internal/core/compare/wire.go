package compare

// Wire shapes for the stage-2 response. Decoding is strict only about
// structure (valid JSON, results array present); field values are
// defensive - unknown enums fall back, missing fields default.

type chunkResponse struct {
	IndustryDetected     string       `json:"industry_detected"`
	Results              []resultRow  `json:"results"`
	MissingFromEquipment []missingRow `json:"missing_from_equipment"`
}

type resultRow struct {
	EquipmentRow  int      `json:"equipment_row"`
	SpecRow       *int     `json:"spec_row"`
	Status        string   `json:"status"`
	Confidence    float64  `json:"confidence"`
	QuantityMatch *bool    `json:"quantity_match"`
	Differences   []string `json:"differences"`
	Notes         string   `json:"notes"`
	Severity      string   `json:"severity"`
	MatchBasis    string   `json:"match_basis"`
}

type missingRow struct {
	SpecRow  int    `json:"spec_row"`
	Notes    string `json:"notes"`
	Severity string `json:"severity"`
}
