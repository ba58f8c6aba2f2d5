package service

import "errors"

// Validation errors. These are returned before any record is written.
var (
	ErrClaimTooShort = errors.New("claim must be at least 10 characters long")
	ErrClaimTooLong  = errors.New("claim must be less than 500 characters")
	ErrEmptyQuery    = errors.New("search query must not be empty")
	ErrBadFormat     = errors.New("unsupported report format")
)

// Pipeline and infrastructure errors. Handlers map these to HTTP statuses.
var (
	// ErrPreprocessFailed means the claim could not be analyzed before
	// reasoning. The stored record is marked failed.
	ErrPreprocessFailed = errors.New("claim preprocessing failed")

	// ErrAnalysisFailed means the reasoning collaborator returned an error
	// or unusable output. The stored record is marked failed.
	ErrAnalysisFailed = errors.New("claim analysis failed")

	// ErrStoreUnavailable means the database rejected a read or write.
	ErrStoreUnavailable = errors.New("claim store unavailable")

	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
)
