package service

import "errors"

// Sentinel errors shared by the service layer. Controllers map these to
// HTTP status codes with errors.Is; everything unmatched is a 500.
var (
	// ErrNotFound covers unknown quiz/question/attempt ids and unknown or
	// no-longer-valid share tokens.
	ErrNotFound = errors.New("not found")

	// ErrStateConflict marks an illegal lifecycle transition: publishing a
	// non-draft quiz, answering or finishing an already-finished attempt.
	ErrStateConflict = errors.New("state conflict")

	// ErrInvalidInput marks request data that refers to the wrong entity,
	// e.g. an option that does not belong to the question being answered.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGenerationFailed wraps LLM unavailability, malformed model output
	// and empty extraction results. Nothing is persisted when it occurs.
	ErrGenerationFailed = errors.New("generation failed")
)
