// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

func TestSweepValues(t *testing.T) {
	tests := []struct {
		name string
		spec types.SweepSpec
		want []float64
	}{
		{"final appended", types.SweepSpec{Kind: types.FieldRV, Initial: 0, Final: 10, Step: 3}, []float64{0, 3, 6, 9, 10}},
		{"exact division", types.SweepSpec{Kind: types.FieldRV, Initial: 0, Final: 9, Step: 3}, []float64{0, 3, 6, 9}},
		{"single point", types.SweepSpec{Kind: types.FieldDist, Initial: 5, Final: 5, Step: 1}, []float64{5}},
		{"step larger than range", types.SweepSpec{Kind: types.FieldDist, Initial: 10, Final: 12, Step: 5}, []float64{10, 12}},
		{"negative range", types.SweepSpec{Kind: types.FieldRV, Initial: -4, Final: 0, Step: 2}, []float64{-4, -2, 0}},
		{"fractional step", types.SweepSpec{Kind: types.FieldRV, Initial: 0, Final: 0.3, Step: 0.1}, []float64{0, 0.1, 0.2, 0.3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SweepValues(tt.spec, 0)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.spec.Final, got[len(got)-1])
		})
	}
}

func TestSweepValues_Invalid(t *testing.T) {
	tests := []struct {
		name string
		spec types.SweepSpec
	}{
		{"zero step", types.SweepSpec{Kind: types.FieldRV, Initial: 0, Final: 10, Step: 0}},
		{"negative step", types.SweepSpec{Kind: types.FieldRV, Initial: 0, Final: 10, Step: -1}},
		{"reversed bounds", types.SweepSpec{Kind: types.FieldDist, Initial: 10, Final: 0, Step: 1}},
		{"not sweepable", types.SweepSpec{Kind: types.FieldRA, Initial: 0, Final: 10, Step: 1}},
		{"too many points", types.SweepSpec{Kind: types.FieldRV, Initial: 0, Final: 1e9, Step: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SweepValues(tt.spec, 1000)
			assert.ErrorIs(t, err, ErrInvalidSweep)
		})
	}
}

func TestSweep_RV(t *testing.T) {
	spec := types.SweepSpec{Kind: types.FieldRV, Initial: 0, Final: 10, Step: 3}
	res, err := Sweep(twHya, spec, 0)
	require.NoError(t, err)
	require.NoError(t, res.Validate())

	assert.Equal(t, types.ModeSweepRV, res.Mode)
	assert.Equal(t, types.FieldRV, res.Swept)
	assert.Equal(t, []float64{0, 3, 6, 9, 10}, res.SweptValues)

	for i, rv := range res.SweptValues {
		p := Position(twHya.RA, twHya.Dec, twHya.Dist)
		v := Velocity(twHya.RA, twHya.Dec, twHya.Dist, twHya.PMRA, twHya.PMDec, rv)
		assert.Equal(t, p.X, res.X[i], "position does not depend on rv")
		assert.Equal(t, v.X, res.U[i])
		assert.Equal(t, v.Z, res.W[i])
	}
}

func TestSweep_DistWithDegenerateStart(t *testing.T) {
	spec := types.SweepSpec{Kind: types.FieldDist, Initial: 0, Final: 100, Step: 25}
	res, err := Sweep(twHya, spec, 0)
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 25, 50, 75, 100}, res.SweptValues)
	assert.False(t, res.RowFinite(0), "dist=0 row is degenerate")
	for i := 1; i < res.Len(); i++ {
		assert.True(t, res.RowFinite(i))
	}
	assert.Equal(t, 1, res.Degenerate())
}
