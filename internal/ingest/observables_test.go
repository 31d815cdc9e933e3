// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

func twHyaRaw() map[string]string {
	return map[string]string{
		"ra":    "165.46627797",
		"dec":   "-34.70473119",
		"pmra":  "-66.19",
		"pmdec": "-13.90",
		"rv":    "13.40",
		"dist":  "53.7",
	}
}

func TestParseObservables(t *testing.T) {
	set, err := ParseObservables(twHyaRaw())
	require.NoError(t, err)
	assert.Equal(t, types.ObservableSet{
		RA: 165.46627797, Dec: -34.70473119,
		PMRA: -66.19, PMDec: -13.90,
		RV: 13.40, Dist: 53.7,
	}, set)
}

func TestParseObservables_Synonyms(t *testing.T) {
	set, err := ParseObservables(map[string]string{
		"RAJ2000":         "1",
		"DEJ2000":         "2",
		"mualpha":         "3",
		"mudelta":         "4",
		"Radial Velocity": "5",
		"Distance":        "6",
	})
	require.NoError(t, err)
	assert.Equal(t, types.ObservableSet{RA: 1, Dec: 2, PMRA: 3, PMDec: 4, RV: 5, Dist: 6}, set)
}

func TestParseObservables_Missing(t *testing.T) {
	raw := twHyaRaw()
	delete(raw, "pmdec")

	_, err := ParseObservables(raw)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, types.FieldPMDec, missing.Field)
}

func TestParseObservables_Blank(t *testing.T) {
	raw := twHyaRaw()
	raw["rv"] = ""

	_, err := ParseObservables(raw)
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, types.FieldRV, missing.Field)
}

func TestParseObservables_Malformed(t *testing.T) {
	raw := twHyaRaw()
	raw["dec"] = "minus thirty"
	raw["dist"] = "far"

	_, err := ParseObservables(raw)
	var parseErr *NumericParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, types.FieldDec, parseErr.Field, "first field in canonical order is reported")
	assert.Equal(t, "minus thirty", parseErr.Raw)
}

func TestParseObservables_SkipSwept(t *testing.T) {
	raw := twHyaRaw()
	delete(raw, "rv")

	set, err := ParseObservables(raw, types.FieldRV)
	require.NoError(t, err)
	assert.Zero(t, set.RV)
	assert.Equal(t, 53.7, set.Dist)
}
