// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"fmt"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// MissingFieldError reports a required observable that was absent or blank.
type MissingFieldError struct {
	Field types.Field
}

func (e *MissingFieldError) Error() string {
	if e.Field == "" {
		return "required observable is missing"
	}
	return fmt.Sprintf("required observable %q is missing", e.Field)
}

// NumericParseError reports a value that is present but is not a finite
// floating-point literal. Raw is the offending input, untrimmed.
type NumericParseError struct {
	Field types.Field
	Raw   string
	Err   error
}

func (e *NumericParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("error converting number: %q", e.Raw)
	}
	return fmt.Sprintf("error converting number for %s: %q", e.Field, e.Raw)
}

func (e *NumericParseError) Unwrap() error {
	return e.Err
}
