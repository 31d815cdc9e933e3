// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

func TestNormalizeField(t *testing.T) {
	tests := []struct {
		input string
		want  types.Field
	}{
		{"RAJ2000", types.FieldRA},
		{"ra_j2000", types.FieldRA},
		{"  RA  ", types.FieldRA},
		{"Right Ascension", types.FieldRA},
		{"DEJ2000", types.FieldDec},
		{"Declination", types.FieldDec},
		{"mualpha", types.FieldPMRA},
		{"pm_ra", types.FieldPMRA},
		{"PMRA", types.FieldPMRA},
		{"muDelta", types.FieldPMDec},
		{"pmDE", types.FieldPMDec},
		{"radial velocity", types.FieldRV},
		{"Radial   Velocity", types.FieldRV},
		{"RV", types.FieldRV},
		{"distance", types.FieldDist},
		{"Dist", types.FieldDist},
		{"Target Name", types.FieldName},
		{"object", types.FieldName},
		{"MAIN_ID", types.FieldName},
		{"designation", types.FieldName},
		{"unknown_col", "unknown_col"},
		{"  Spectral Type ", "  Spectral Type "},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeField(tt.input))
		})
	}
}

func TestNormalizeField_Deterministic(t *testing.T) {
	for name := range fieldSynonyms {
		first := NormalizeField(name)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, NormalizeField(name))
		}
	}
}

func TestNormalizeField_TableTargetsCanonical(t *testing.T) {
	for name, f := range fieldSynonyms {
		assert.True(t, f.IsObservable() || f == types.FieldName, "synonym %q maps to %q", name, f)
		assert.Equal(t, f, NormalizeField(string(f)), "canonical key %q must map to itself", f)
	}
}

func TestNormalizeKeys_PrefersCanonicalSpelling(t *testing.T) {
	got := NormalizeKeys(map[string]string{
		"RAJ2000": "10",
		"ra":      "20",
		"Dec":     "-5",
		"other":   "x",
	})
	assert.Equal(t, "20", got[types.FieldRA])
	assert.Equal(t, "-5", got[types.FieldDec])
	assert.Equal(t, "x", got["other"])
}
