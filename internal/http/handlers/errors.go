// Package handlers defines the error codes returned in ErrorResponse.code.
//
// Codes are lowercase snake_case. Generic codes mirror HTTP status semantics;
// the domain-specific ones name failures a status alone cannot convey.
// Clients are expected to branch on the code, not the message.
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeTimeout          = "timeout"

	// Domain-specific:
	ErrCodeNotReady         = "not_ready"
	ErrCodeSeedFailed       = "seed_failed"
	ErrCodeGenerationFailed = "generation_failed"
	ErrCodeAnalysisFailed   = "analysis_failed"
	ErrCodeReadFailed       = "read_failed"
)
