package compare

import "fmt"

// ParseError is a response-format failure: the completion was not the
// expected JSON shape. Chunk is the failing chunk index, or -1 when the
// whole run produced no usable chunk.
type ParseError struct {
	Chunk  int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Chunk >= 0 {
		return fmt.Sprintf("chunk %d response: %s", e.Chunk, e.Reason)
	}
	return fmt.Sprintf("comparison response: %s", e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
