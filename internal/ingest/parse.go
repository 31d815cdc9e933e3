// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest turns user-supplied strings into validated observables.
// It distinguishes a missing value from a malformed one and never coerces
// bad input to zero.
package ingest

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// errNotFinite marks literals such as "NaN", "Inf" or "1e400" that parse
// but cannot be an observable.
var errNotFinite = errors.New("value is not a finite number")

// ParseObservable parses raw as a float64 after trimming surrounding
// whitespace. Blank input yields *MissingFieldError; anything else that is
// not a finite float literal yields *NumericParseError.
func ParseObservable(raw string) (float64, error) {
	return ParseField("", raw)
}

// ParseField is ParseObservable with the field name attached to any error.
func ParseField(field types.Field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, &MissingFieldError{Field: field}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			err = errNotFinite
		}
		return 0, &NumericParseError{Field: field, Raw: raw, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &NumericParseError{Field: field, Raw: raw, Err: errNotFinite}
	}
	return v, nil
}
