package model

// CanonicalItem is one source row after column-role detection and
// normalization. RowNumber is the 1-based position in the emitted item
// list (blank rows are skipped before numbering) and is the identity the
// LLM uses to refer to items in its responses.
type CanonicalItem struct {
	RowNumber      int     `json:"row_number"`
	PartNumber     string  `json:"part_number,omitempty"`
	PartNumberRaw  string  `json:"part_number_raw,omitempty"`
	Description    string  `json:"description"`
	DescriptionRaw string  `json:"description_raw"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit,omitempty"`
	Confidence     float64 `json:"confidence"`
}

// ColumnRoles records which source header was assigned to each role.
type ColumnRoles struct {
	PartNumber  string `json:"part_number,omitempty"`
	Description string `json:"description,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	Unit        string `json:"unit,omitempty"`
}

// ParseResult is the parsed form of one side (equipment or spec).
// ByRowNumber is built once at parse time and shared by the chunking and
// merge steps; it maps CanonicalItem.RowNumber to the index in Items.
type ParseResult struct {
	Label       string          `json:"label"`
	Items       []CanonicalItem `json:"items"`
	Columns     ColumnRoles     `json:"columns"`
	Warnings    []string        `json:"warnings,omitempty"`
	RowCount    int             `json:"row_count"`
	SkippedRows int             `json:"skipped_rows"`
	ByRowNumber map[int]int     `json:"-"`
}
