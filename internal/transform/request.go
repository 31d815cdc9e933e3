// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"fmt"
	"strings"

	"github.com/pdiddy/kinematics-engine/internal/ingest"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// RawSweep is a sweep descriptor as typed by the user.
type RawSweep struct {
	Kind    string `json:"kind" yaml:"kind"`
	Initial string `json:"initial" yaml:"initial"`
	Final   string `json:"final" yaml:"final"`
	Step    string `json:"step" yaml:"step"`
}

// RawRequest is a scalar or sweep request before validation: field name to
// raw string, plus any sweep descriptors.
type RawRequest struct {
	Fields map[string]string `json:"fields" yaml:"fields"`
	Sweeps []RawSweep        `json:"sweeps,omitempty" yaml:"sweeps,omitempty"`
}

// ParseRange splits "initial:final:step" into a RawSweep of the given kind.
func ParseRange(kind, spec string) (RawSweep, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 3 {
		return RawSweep{}, fmt.Errorf("%w: %s range %q must be initial:final:step", ErrInvalidSweep, kind, spec)
	}
	return RawSweep{Kind: kind, Initial: parts[0], Final: parts[1], Step: parts[2]}, nil
}

// ParseRequest validates raw input and builds an engine Request. All parse
// errors are reported here, before any computation runs.
func ParseRequest(raw RawRequest) (Request, error) {
	if len(raw.Sweeps) > 1 {
		return Request{}, ErrConflictingSweeps
	}

	if len(raw.Sweeps) == 0 {
		star, err := ingest.ParseObservables(raw.Fields)
		if err != nil {
			return Request{}, err
		}
		return Request{Mode: types.ModeSingle, Star: star}, nil
	}

	spec, err := ParseSweep(raw.Sweeps[0])
	if err != nil {
		return Request{}, err
	}
	star, err := ingest.ParseObservables(raw.Fields, spec.Kind)
	if err != nil {
		return Request{}, err
	}
	mode, _ := types.SweepMode(spec.Kind)
	return Request{Mode: mode, Star: star, Sweep: spec}, nil
}

// ParseSweep parses and validates a single sweep descriptor.
func ParseSweep(raw RawSweep) (types.SweepSpec, error) {
	kind := ingest.NormalizeField(raw.Kind)
	if _, ok := types.SweepMode(kind); !ok {
		return types.SweepSpec{}, fmt.Errorf("%w: cannot sweep %q, only rv or dist", ErrInvalidSweep, raw.Kind)
	}

	spec := types.SweepSpec{Kind: kind}
	for _, b := range []struct {
		label string
		raw   string
		dst   *float64
	}{
		{"initial", raw.Initial, &spec.Initial},
		{"final", raw.Final, &spec.Final},
		{"step", raw.Step, &spec.Step},
	} {
		v, err := ingest.ParseField(types.Field(string(kind)+"_"+b.label), b.raw)
		if err != nil {
			return types.SweepSpec{}, err
		}
		*b.dst = v
	}

	if err := ValidateSweep(spec); err != nil {
		return types.SweepSpec{}, err
	}
	return spec, nil
}
