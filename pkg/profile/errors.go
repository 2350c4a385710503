package profile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is returned when a record table lacks mandatory data
	ErrValidation = errors.New("invalid record table")

	// ErrInconsistent is returned when classification runs overlap
	ErrInconsistent = errors.New("inconsistent classification")

	// ErrLengthMismatch is returned when paired series differ in length
	ErrLengthMismatch = errors.New("length mismatch")
)

// ValidationError lists the columns that are absent, incomplete or out of order
type ValidationError struct {
	Missing    []string // columns not present at all
	Incomplete []string // columns present but holding missing values
	Unordered  []string // columns that must never decrease but do
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing columns %q", e.Missing))
	}
	if len(e.Incomplete) > 0 {
		parts = append(parts, fmt.Sprintf("columns with missing values %q", e.Incomplete))
	}
	if len(e.Unordered) > 0 {
		parts = append(parts, fmt.Sprintf("decreasing columns %q", e.Unordered))
	}
	return fmt.Sprintf("invalid record table: %s", strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// OverlapError reports two runs claiming the same rows
type OverlapError struct {
	First  Run
	Second Run
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("%s overlaps %s", e.First, e.Second)
}

func (e *OverlapError) Unwrap() error {
	return ErrInconsistent
}
