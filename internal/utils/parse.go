// Package utils provides small parsing helpers shared by the HTTP layer and
// the services. They carry no domain logic.
package utils

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned by ParseID for anything but a positive integer.
var ErrInvalidID = errors.New("id must be a positive integer")

// AtoiDefault parses s (surrounding spaces ignored) and returns def when s is
// empty or not an integer.
//
//	utils.AtoiDefault("42", 0)  // 42
//	utils.AtoiDefault("", 50)   // 50
//	utils.AtoiDefault("x", 50)  // 50
func AtoiDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

// ParseID parses a path id. Zero, negatives and non-numeric input are
// rejected with ErrInvalidID.
func ParseID(s string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 || n > uint64(^uint(0)) {
		return 0, ErrInvalidID
	}
	return uint(n), nil
}

// ClampInt returns n bounded to [lo, hi]; values <= 0 become def first.
func ClampInt(n, def, lo, hi int) int {
	if n <= 0 {
		n = def
	}
	return min(max(n, lo), hi)
}
