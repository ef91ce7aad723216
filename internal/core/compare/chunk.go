package compare

import (
	"github.com/equipcheck/validator/internal/core/model"
)

const (
	// DefaultMaxChunkSize is the equipment items per completion call.
	DefaultMaxChunkSize = 75
	// DefaultMaxConcurrency is the concurrent completion calls per batch.
	DefaultMaxConcurrency = 3

	// smallInputSlack avoids splitting a list that barely exceeds the
	// chunk size into one full chunk and one tiny remainder.
	smallInputSlack = 25

	// specFilterThreshold is the spec size above which each chunk gets a
	// narrowed spec slice instead of the full list.
	specFilterThreshold = 1000
)

// Chunk is one bounded slice of the equipment list plus the spec slice
// visible to it. SpecFiltered records whether the spec slice was
// narrowed by the pre-filter.
type Chunk struct {
	Index        int
	Equipment    []model.CanonicalItem
	Spec         []model.CanonicalItem
	SpecFiltered bool
}

// BuildChunks splits the equipment items into bounded chunks. Inputs at
// or below maxChunkSize+slack stay in a single chunk covering the full
// spec. For very large specs each chunk's spec slice is narrowed with
// the part-number/description pre-filter.
func BuildChunks(equipment, spec *model.ParseResult, maxChunkSize int) []Chunk {
	if maxChunkSize <= 0 {
		maxChunkSize = DefaultMaxChunkSize
	}

	items := equipment.Items
	if len(items) <= maxChunkSize+smallInputSlack {
		return []Chunk{{Index: 0, Equipment: items, Spec: spec.Items}}
	}

	var chunks []Chunk
	for start := 0; start < len(items); start += maxChunkSize {
		end := start + maxChunkSize
		if end > len(items) {
			end = len(items)
		}

		chunk := Chunk{
			Index:     len(chunks),
			Equipment: items[start:end],
			Spec:      spec.Items,
		}
		if len(spec.Items) > specFilterThreshold {
			chunk.Spec, chunk.SpecFiltered = filterSpec(chunk.Equipment, spec.Items)
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}
