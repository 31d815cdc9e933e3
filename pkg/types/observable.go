// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the kinematics engine.
// Observables flow in as ObservableSet values (one star, one sweep base, or
// one batch row) and leave as a CartesianResult holding parallel Galactic
// position and velocity columns.
package types

import "fmt"

// Field is a canonical column key. The six astrometric observables plus the
// display identifier used by batch uploads.
type Field string

const (
	FieldRA    Field = "ra"
	FieldDec   Field = "dec"
	FieldPMRA  Field = "pmra"
	FieldPMDec Field = "pmdec"
	FieldRV    Field = "rv"
	FieldDist  Field = "dist"
	FieldName  Field = "name"
)

// ObservableFields lists the six observables in canonical order. Validation
// walks this order so the first reported error is deterministic.
var ObservableFields = []Field{FieldRA, FieldDec, FieldPMRA, FieldPMDec, FieldRV, FieldDist}

// IsObservable reports whether f is one of the six numeric observables.
func (f Field) IsObservable() bool {
	switch f {
	case FieldRA, FieldDec, FieldPMRA, FieldPMDec, FieldRV, FieldDist:
		return true
	}
	return false
}

// Unit returns the physical unit of the observable, or "" for non-observables.
func (f Field) Unit() string {
	switch f {
	case FieldRA, FieldDec:
		return "deg"
	case FieldPMRA, FieldPMDec:
		return "mas/yr"
	case FieldRV:
		return "km/s"
	case FieldDist:
		return "pc"
	}
	return ""
}

// ObservableSet holds the six observables of one star.
// Angles are degrees, proper motions mas/yr, RV km/s, distance parsecs.
// It is a value type; With returns a modified copy.
type ObservableSet struct {
	RA    float64 `json:"ra" yaml:"ra"`
	Dec   float64 `json:"dec" yaml:"dec"`
	PMRA  float64 `json:"pmra" yaml:"pmra"`
	PMDec float64 `json:"pmdec" yaml:"pmdec"`
	RV    float64 `json:"rv" yaml:"rv"`
	Dist  float64 `json:"dist" yaml:"dist"`
}

// Get returns the value of observable f. It panics on a non-observable
// field, which is a programming error rather than bad input.
func (s ObservableSet) Get(f Field) float64 {
	switch f {
	case FieldRA:
		return s.RA
	case FieldDec:
		return s.Dec
	case FieldPMRA:
		return s.PMRA
	case FieldPMDec:
		return s.PMDec
	case FieldRV:
		return s.RV
	case FieldDist:
		return s.Dist
	}
	panic(fmt.Sprintf("types: %q is not an observable", f))
}

// With returns a copy of s with observable f set to v.
func (s ObservableSet) With(f Field, v float64) ObservableSet {
	switch f {
	case FieldRA:
		s.RA = v
	case FieldDec:
		s.Dec = v
	case FieldPMRA:
		s.PMRA = v
	case FieldPMDec:
		s.PMDec = v
	case FieldRV:
		s.RV = v
	case FieldDist:
		s.Dist = v
	default:
		panic(fmt.Sprintf("types: %q is not an observable", f))
	}
	return s
}

// NamedObservableSet is one row of a batch upload.
type NamedObservableSet struct {
	ObservableSet `yaml:",inline"`

	Name string `json:"name" yaml:"name"`
}

// SweepSpec designates one observable (rv or dist) as ranged.
// Step must be positive and Initial must not exceed Final.
type SweepSpec struct {
	Kind    Field   `json:"kind" yaml:"kind"`
	Initial float64 `json:"initial" yaml:"initial"`
	Final   float64 `json:"final" yaml:"final"`
	Step    float64 `json:"step" yaml:"step"`
}

// InputMode selects how the engine interprets a request.
type InputMode int

const (
	ModeSingle InputMode = iota
	ModeSweepRV
	ModeSweepDist
	ModeBatch
)

func (m InputMode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeSweepRV:
		return "sweep-rv"
	case ModeSweepDist:
		return "sweep-dist"
	case ModeBatch:
		return "batch"
	default:
		return "unknown"
	}
}

// SweepField returns the swept observable for sweep modes and "" otherwise.
func (m InputMode) SweepField() Field {
	switch m {
	case ModeSweepRV:
		return FieldRV
	case ModeSweepDist:
		return FieldDist
	}
	return ""
}

// SweepMode returns the InputMode that sweeps f.
func SweepMode(f Field) (InputMode, bool) {
	switch f {
	case FieldRV:
		return ModeSweepRV, true
	case FieldDist:
		return ModeSweepDist, true
	}
	return ModeSingle, false
}
