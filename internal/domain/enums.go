package domain

import "strings"

// ContentType enumerates the kinds of placeholder content the generation
// pipeline knows how to produce.
type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentVideo ContentType = "video"
	ContentAudio ContentType = "audio"
	ContentCode  ContentType = "code"
)

// ContentTypes lists the known content types in display order.
var ContentTypes = []ContentType{ContentText, ContentImage, ContentVideo, ContentAudio, ContentCode}

// ParseContentType normalizes raw (trim + lowercase). An empty value becomes
// ContentText. The second result reports whether the type is a known one;
// unknown values are returned normalized so callers can still persist them.
func ParseContentType(raw string) (ContentType, bool) {
	ct := ContentType(strings.ToLower(strings.TrimSpace(raw)))
	if ct == "" {
		return ContentText, true
	}
	return ct, ct.Known()
}

// Known reports whether ct is one of the enumerated content types.
func (ct ContentType) Known() bool {
	switch ct {
	case ContentText, ContentImage, ContentVideo, ContentAudio, ContentCode:
		return true
	}
	return false
}

// GenerationStatus enumerates AIGeneration lifecycle states.
type GenerationStatus string

const (
	StatusPending    GenerationStatus = "pending"
	StatusProcessing GenerationStatus = "processing"
	StatusCompleted  GenerationStatus = "completed"
	StatusFailed     GenerationStatus = "failed"
)

// Valid reports whether s is a known status.
func (s GenerationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s GenerationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether the move s -> next is allowed:
//
//	pending -> processing -> {completed, failed}
func (s GenerationStatus) CanTransition(next GenerationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed
	case StatusCompleted, StatusFailed:
		return false
	}
	return false
}

// APIUsageStatus is the outcome of a metered call.
type APIUsageStatus string

const (
	UsageSuccess APIUsageStatus = "success"
	UsageError   APIUsageStatus = "error"
)
