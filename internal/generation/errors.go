package generation

import "errors"

var (
	// ErrInsufficientInput means the transcript lacks enough user turns
	// to attempt document generation. No provider call is made.
	ErrInsufficientInput = errors.New("conversation too short to generate documents")

	// ErrGenerationFailed means at least one of the document calls
	// failed or produced an invalid payload. Nothing is persisted.
	ErrGenerationFailed = errors.New("failed to generate resume data")
)
