// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"slices"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// ParseObservables builds an ObservableSet from raw field values. Keys are
// normalized first. Fields listed in skip (e.g. the swept observable) are
// not required and stay zero. Fields are checked in canonical order and the
// first problem is returned.
func ParseObservables(raw map[string]string, skip ...types.Field) (types.ObservableSet, error) {
	values := NormalizeKeys(raw)

	var set types.ObservableSet
	for _, f := range types.ObservableFields {
		if slices.Contains(skip, f) {
			continue
		}
		s, ok := values[f]
		if !ok {
			return types.ObservableSet{}, &MissingFieldError{Field: f}
		}
		v, err := ParseField(f, s)
		if err != nil {
			return types.ObservableSet{}, err
		}
		set = set.With(f, v)
	}
	return set, nil
}
