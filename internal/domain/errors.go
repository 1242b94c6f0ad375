package domain

import "errors"

// Sentinel errors distinguish expected outcomes from real failures.
// Repository and gateway methods wrap driver/provider errors instead of
// swallowing them, so callers can map outcomes with errors.Is.
var (
	// ErrNotFound means the requested user/word/category does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the operation clashes with existing state
	// (duplicate user, word already present).
	ErrConflict = errors.New("conflict")

	// ErrNoWords means the candidate set for a selection query is empty.
	// This is an expected outcome, not a failure.
	ErrNoWords = errors.New("no words available")

	// ErrQuotaExceeded means the user's daily AI request limit is spent.
	ErrQuotaExceeded = errors.New("daily request quota exceeded")

	// ErrValidation means a required field is missing or blank.
	ErrValidation = errors.New("validation failed")

	// ErrProvider means an external provider returned a non-success
	// response or was unreachable.
	ErrProvider = errors.New("external provider failure")

	// ErrMalformedResponse means the provider answered 200 but the body
	// did not contain the expected delimited sections.
	ErrMalformedResponse = errors.New("malformed provider response")
)
