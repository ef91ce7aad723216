package common

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseJSON cleans and unmarshals a JSON string into a type T.
// It handles common LLM quirks: markdown code fences around the object
// and prose before or after it. The first top-level JSON object found is
// decoded; anything else is a parse failure.
func ParseJSON[T any](response string) (T, error) {
	var zero T

	jsonStr := StripCodeFences(response)

	// Find first '{' and last '}'
	start := strings.IndexByte(jsonStr, '{')
	end := strings.LastIndexByte(jsonStr, '}')

	if start == -1 || end == -1 || start >= end {
		return zero, fmt.Errorf("no JSON object found in response")
	}
	jsonStr = jsonStr[start : end+1]

	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return zero, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return result, nil
}

// StripCodeFences removes a surrounding markdown code fence, with or
// without a language tag, leaving the fenced content.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if nl := strings.IndexByte(trimmed, '\n'); nl != -1 {
		// Drop the language tag line ("json" etc).
		firstLine := strings.TrimSpace(trimmed[:nl])
		if firstLine == "" || !strings.ContainsAny(firstLine, "{}") {
			trimmed = trimmed[nl+1:]
		}
	}
	if idx := strings.LastIndex(trimmed, "```"); idx != -1 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
