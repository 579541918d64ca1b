// Package services defines the business logic for the dashboard: read-side
// aggregation, record ingestion and demo seeding. This file centralizes
// service-level error values so handlers can map them to HTTP results.
//
// Store-level failures keep the domain sentinels (domain.ErrValidation,
// domain.ErrNotReady, domain.ErrNotFound, domain.ErrInvalidTransition,
// domain.ErrSeed); the values below cover cases only the services know about.
package services

import "errors"

var (
	// ErrGenerationFailed wraps a strategy error. The failed record is still
	// persisted and returned alongside it.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrUnknownStatus is returned when a transition names a status outside
	// the lifecycle enum.
	ErrUnknownStatus = errors.New("unknown generation status")
)
