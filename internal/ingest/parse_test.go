// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

func TestParseObservable(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"integer", "42", 42},
		{"negative decimal", "-34.70473119", -34.70473119},
		{"explicit plus", "+13.40", 13.4},
		{"scientific", "5.37e1", 53.7},
		{"scientific upper", "1E-3", 0.001},
		{"leading dot", ".5", 0.5},
		{"whitespace padded", "  165.46627797\t", 165.46627797},
		{"newline padded", "\n53.7\n", 53.7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseObservable(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseObservable_Malformed(t *testing.T) {
	for _, raw := range []string{"abc", "12abc", "1,5", "--1", "1.2.3", "NaN", "nan", "Inf", "-infinity", "1e400"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseObservable(raw)
			var parseErr *NumericParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, raw, parseErr.Raw)

			var missing *MissingFieldError
			assert.False(t, errors.As(err, &missing), "malformed input must not look missing")
		})
	}
}

func TestParseObservable_Blank(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := ParseObservable(raw)
		var missing *MissingFieldError
		require.ErrorAs(t, err, &missing)

		var parseErr *NumericParseError
		assert.False(t, errors.As(err, &parseErr), "blank input must not look malformed")
	}
}

func TestParseObservable_RoundTrip(t *testing.T) {
	values := []float64{
		0, -0.0, 1, -1, 0.1, 1.0 / 3.0, math.Pi, -34.70473119, 165.46627797,
		1e-300, 1e300, math.SmallestNonzeroFloat64, math.MaxFloat64, -math.MaxFloat64,
	}
	for _, v := range values {
		for _, format := range []byte{'g', 'e', 'f'} {
			s := strconv.FormatFloat(v, format, -1, 64)
			got, err := ParseObservable(s)
			require.NoError(t, err, s)
			assert.Equal(t, v, got, s)
		}
	}
}

func TestParseField_NamesField(t *testing.T) {
	_, err := ParseField(types.FieldDist, "far")
	var parseErr *NumericParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, types.FieldDist, parseErr.Field)
	assert.Contains(t, err.Error(), "dist")
	assert.Contains(t, err.Error(), `"far"`)

	_, err = ParseField(types.FieldRV, " ")
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, types.FieldRV, missing.Field)
	assert.Contains(t, err.Error(), "rv")
}
