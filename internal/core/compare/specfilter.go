package compare

import (
	"strings"

	"github.com/equipcheck/validator/internal/core/model"
)

const (
	partPrefixLen       = 5
	significantWordLen  = 3 // words must be longer than this
	sharedWordThreshold = 2
)

// filterSpec narrows a large spec list to the items plausibly relevant
// to one equipment chunk: exact normalized part-number matches, 5-char
// part-number prefix overlaps, or descriptions sharing at least two
// significant words with the chunk's vocabulary. If the filter would
// over-prune (fewer spec items than half the chunk), the full spec is
// used instead - hiding true matches costs more than a longer prompt.
func filterSpec(chunk []model.CanonicalItem, spec []model.CanonicalItem) ([]model.CanonicalItem, bool) {
	parts := map[string]bool{}
	prefixes := map[string]bool{}
	vocabulary := map[string]bool{}

	for _, it := range chunk {
		if it.PartNumber != "" {
			parts[it.PartNumber] = true
			if len(it.PartNumber) >= partPrefixLen {
				prefixes[it.PartNumber[:partPrefixLen]] = true
			}
		}
		for _, w := range strings.Fields(it.Description) {
			if len(w) > significantWordLen {
				vocabulary[w] = true
			}
		}
	}

	var kept []model.CanonicalItem
	for _, s := range spec {
		if keepSpecItem(s, parts, prefixes, vocabulary) {
			kept = append(kept, s)
		}
	}

	if len(kept) < len(chunk)/2 {
		return spec, false
	}
	return kept, true
}

func keepSpecItem(s model.CanonicalItem, parts, prefixes, vocabulary map[string]bool) bool {
	if s.PartNumber != "" {
		if parts[s.PartNumber] {
			return true
		}
		if len(s.PartNumber) >= partPrefixLen && prefixes[s.PartNumber[:partPrefixLen]] {
			return true
		}
	}

	shared := 0
	for _, w := range strings.Fields(s.Description) {
		if len(w) > significantWordLen && vocabulary[w] {
			shared++
			if shared >= sharedWordThreshold {
				return true
			}
		}
	}
	return false
}
