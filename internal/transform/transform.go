// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package transform converts astrometric observables into Galactic
// Cartesian position (X, Y, Z) and velocity (U, V, W).
//
// Both quantities are computed in the star's local observational basis
// (radial, east, north) and rotated into the Galactic frame by the same
// matrix: the ra/dec basis composed with the fixed equatorial-to-Galactic
// rotation. A non-positive or non-finite distance yields NaN components;
// the functions here never fail on degenerate numbers.
package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// ErrLengthMismatch is returned when vectorized input columns differ in length.
var ErrLengthMismatch = errors.New("input columns have different lengths")

// localBasis returns the rotation from the star's (radial, east, north)
// basis into the Galactic frame.
func localBasis(ra, dec float64) Mat3 {
	sa, ca := math.Sincos(ra * degToRad)
	sd, cd := math.Sincos(dec * degToRad)

	// Columns: line of sight, direction of increasing ra, increasing dec.
	b := Mat3{
		{cd * ca, -sa, -sd * ca},
		{cd * sa, ca, -sd * sa},
		{sd, 0, cd},
	}
	return equatorialToGalactic.Mul(b)
}

func validDistance(dist float64) bool {
	return dist > 0 && !math.IsInf(dist, 0)
}

// Position returns the Galactic position (X, Y, Z) in parsecs of a star at
// (ra, dec) degrees and dist parsecs.
func Position(ra, dec, dist float64) Vec3 {
	if !validDistance(dist) {
		return nanVec
	}
	return localBasis(ra, dec).Apply(Vec3{X: dist})
}

// Velocity returns the Galactic space velocity (U, V, W) in km/s. U points
// to the Galactic centre, V along rotation, W to the North Galactic Pole.
// Proper motions are mas/yr (pmra includes the cos(dec) factor) and rv is
// km/s.
func Velocity(ra, dec, dist, pmra, pmdec, rv float64) Vec3 {
	if !validDistance(dist) {
		return nanVec
	}
	local := Vec3{
		X: rv,
		Y: K * pmra * dist / 1000,
		Z: K * pmdec * dist / 1000,
	}
	return localBasis(ra, dec).Apply(local)
}

// Columns holds vectorized observables; all slices must have equal length.
type Columns struct {
	RA    []float64
	Dec   []float64
	PMRA  []float64
	PMDec []float64
	RV    []float64
	Dist  []float64
}

// Len returns the common length, or an error wrapping ErrLengthMismatch.
func (c Columns) Len() (int, error) {
	n := len(c.RA)
	for _, col := range []struct {
		f types.Field
		v []float64
	}{
		{types.FieldDec, c.Dec},
		{types.FieldPMRA, c.PMRA},
		{types.FieldPMDec, c.PMDec},
		{types.FieldRV, c.RV},
		{types.FieldDist, c.Dist},
	} {
		if len(col.v) != n {
			return 0, fmt.Errorf("%w: %s has %d values, ra has %d", ErrLengthMismatch, col.f, len(col.v), n)
		}
	}
	return n, nil
}

// Column returns the slice holding observable f.
func (c *Columns) Column(f types.Field) *[]float64 {
	switch f {
	case types.FieldRA:
		return &c.RA
	case types.FieldDec:
		return &c.Dec
	case types.FieldPMRA:
		return &c.PMRA
	case types.FieldPMDec:
		return &c.PMDec
	case types.FieldRV:
		return &c.RV
	case types.FieldDist:
		return &c.Dist
	}
	panic(fmt.Sprintf("transform: %q is not an observable", f))
}

// Broadcast repeats a scalar set into columns of length n.
func Broadcast(set types.ObservableSet, n int) Columns {
	var c Columns
	for _, f := range types.ObservableFields {
		col := make([]float64, n)
		v := set.Get(f)
		for i := range col {
			col[i] = v
		}
		*c.Column(f) = col
	}
	return c
}

// FromSets stacks independent rows into columns.
func FromSets(rows []types.ObservableSet) Columns {
	c := Columns{
		RA:    make([]float64, len(rows)),
		Dec:   make([]float64, len(rows)),
		PMRA:  make([]float64, len(rows)),
		PMDec: make([]float64, len(rows)),
		RV:    make([]float64, len(rows)),
		Dist:  make([]float64, len(rows)),
	}
	for i, r := range rows {
		c.RA[i], c.Dec[i] = r.RA, r.Dec
		c.PMRA[i], c.PMDec[i] = r.PMRA, r.PMDec
		c.RV[i], c.Dist[i] = r.RV, r.Dist
	}
	return c
}

// Transform computes position and velocity for every row of c. Degenerate
// rows hold NaN; only unequal column lengths are an error.
func Transform(c Columns) (types.CartesianResult, error) {
	n, err := c.Len()
	if err != nil {
		return types.CartesianResult{}, err
	}

	res := types.NewCartesianResult(types.ModeBatch, n)
	for i := 0; i < n; i++ {
		p := Position(c.RA[i], c.Dec[i], c.Dist[i])
		v := Velocity(c.RA[i], c.Dec[i], c.Dist[i], c.PMRA[i], c.PMDec[i], c.RV[i])
		res.SetRow(i, p.X, p.Y, p.Z, v.X, v.Y, v.Z)
	}
	return res, nil
}
