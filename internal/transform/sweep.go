// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// DefaultMaxSweepPoints caps sweep length when the caller passes zero.
const DefaultMaxSweepPoints = 100000

var (
	// ErrInvalidSweep is returned for a sweep with a bad kind, a
	// non-positive step, reversed bounds, or too many points.
	ErrInvalidSweep = errors.New("invalid sweep")

	// ErrConflictingSweeps is returned when more than one observable is
	// swept in a single request. Sweeping RV and distance together has no
	// defined meaning, so it is rejected.
	ErrConflictingSweeps = errors.New("only one of rv or dist may be swept per request")
)

// ValidateSweep checks the SweepSpec invariants.
func ValidateSweep(spec types.SweepSpec) error {
	if _, ok := types.SweepMode(spec.Kind); !ok {
		return fmt.Errorf("%w: cannot sweep %q, only rv or dist", ErrInvalidSweep, spec.Kind)
	}
	for _, v := range [...]float64{spec.Initial, spec.Final, spec.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: bounds and step must be finite", ErrInvalidSweep)
		}
	}
	if spec.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %g", ErrInvalidSweep, spec.Step)
	}
	if spec.Initial > spec.Final {
		return fmt.Errorf("%w: initial %g is greater than final %g", ErrInvalidSweep, spec.Initial, spec.Final)
	}
	return nil
}

// SweepValues generates Initial, Initial+Step, ... while below Final, then
// appends Final unless it is already the last value. Values are computed as
// Initial + i*Step so rounding does not accumulate. maxPoints <= 0 selects
// DefaultMaxSweepPoints.
func SweepValues(spec types.SweepSpec, maxPoints int) ([]float64, error) {
	if err := ValidateSweep(spec); err != nil {
		return nil, err
	}
	if maxPoints <= 0 {
		maxPoints = DefaultMaxSweepPoints
	}

	// Reject oversized sweeps before allocating.
	if points := (spec.Final-spec.Initial)/spec.Step + 1; points > float64(maxPoints) {
		return nil, fmt.Errorf("%w: %g to %g by %g exceeds %d points",
			ErrInvalidSweep, spec.Initial, spec.Final, spec.Step, maxPoints)
	}

	var values []float64
	for i := 0; ; i++ {
		v := spec.Initial + float64(i)*spec.Step
		if v >= spec.Final {
			break
		}
		values = append(values, v)
	}
	if len(values) == 0 || values[len(values)-1] != spec.Final {
		values = append(values, spec.Final)
	}
	return values, nil
}

// Sweep varies spec.Kind over the generated range while holding the other
// observables of base fixed. The result carries the swept values.
func Sweep(base types.ObservableSet, spec types.SweepSpec, maxPoints int) (types.CartesianResult, error) {
	values, err := SweepValues(spec, maxPoints)
	if err != nil {
		return types.CartesianResult{}, err
	}

	cols := Broadcast(base, len(values))
	*cols.Column(spec.Kind) = values

	res, err := Transform(cols)
	if err != nil {
		return types.CartesianResult{}, err
	}
	res.Mode, _ = types.SweepMode(spec.Kind)
	res.Swept = spec.Kind
	res.SweptValues = values
	return res, nil
}
