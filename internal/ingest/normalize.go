// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"strings"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// fieldSynonyms maps lower-cased, whitespace-collapsed column names to
// canonical fields. Every recognized spelling is listed here explicitly.
var fieldSynonyms = map[string]types.Field{
	// Right ascension.
	"ra":              types.FieldRA,
	"raj2000":         types.FieldRA,
	"ra_j2000":        types.FieldRA,
	"_raj2000":        types.FieldRA,
	"ra_icrs":         types.FieldRA,
	"ra_deg":          types.FieldRA,
	"radeg":           types.FieldRA,
	"ra (deg)":        types.FieldRA,
	"alpha":           types.FieldRA,
	"right ascension": types.FieldRA,
	"right_ascension": types.FieldRA,

	// Declination.
	"dec":         types.FieldDec,
	"de":          types.FieldDec,
	"dej2000":     types.FieldDec,
	"decj2000":    types.FieldDec,
	"de_j2000":    types.FieldDec,
	"dec_j2000":   types.FieldDec,
	"_dej2000":    types.FieldDec,
	"de_icrs":     types.FieldDec,
	"dec_icrs":    types.FieldDec,
	"dec_deg":     types.FieldDec,
	"decdeg":      types.FieldDec,
	"dec (deg)":   types.FieldDec,
	"delta":       types.FieldDec,
	"declination": types.FieldDec,

	// Proper motion in right ascension (mu_alpha * cos(delta)).
	"pmra":             types.FieldPMRA,
	"pm_ra":            types.FieldPMRA,
	"pmra (mas/yr)":    types.FieldPMRA,
	"pmracosdec":       types.FieldPMRA,
	"pmra_cosdec":      types.FieldPMRA,
	"mualpha":          types.FieldPMRA,
	"mu_alpha":         types.FieldPMRA,
	"muacosd":          types.FieldPMRA,
	"proper motion ra": types.FieldPMRA,
	"proper_motion_ra": types.FieldPMRA,

	// Proper motion in declination.
	"pmdec":             types.FieldPMDec,
	"pm_dec":            types.FieldPMDec,
	"pmde":              types.FieldPMDec,
	"pm_de":             types.FieldPMDec,
	"pmdec (mas/yr)":    types.FieldPMDec,
	"mudelta":           types.FieldPMDec,
	"mu_delta":          types.FieldPMDec,
	"mudec":             types.FieldPMDec,
	"proper motion dec": types.FieldPMDec,
	"proper_motion_dec": types.FieldPMDec,

	// Radial velocity.
	"rv":              types.FieldRV,
	"vr":              types.FieldRV,
	"hrv":             types.FieldRV,
	"vrad":            types.FieldRV,
	"v_rad":           types.FieldRV,
	"rad_vel":         types.FieldRV,
	"rv (km/s)":       types.FieldRV,
	"radialvelocity":  types.FieldRV,
	"radial velocity": types.FieldRV,
	"radial_velocity": types.FieldRV,

	// Distance.
	"dist":          types.FieldDist,
	"d":             types.FieldDist,
	"dpc":           types.FieldDist,
	"d_pc":          types.FieldDist,
	"dist_pc":       types.FieldDist,
	"dist (pc)":     types.FieldDist,
	"distance":      types.FieldDist,
	"distance (pc)": types.FieldDist,
	"distance_pc":   types.FieldDist,

	// Identifier.
	"name":        types.FieldName,
	"names":       types.FieldName,
	"id":          types.FieldName,
	"identifier":  types.FieldName,
	"designation": types.FieldName,
	"main_id":     types.FieldName,
	"star":        types.FieldName,
	"star name":   types.FieldName,
	"star_name":   types.FieldName,
	"target":      types.FieldName,
	"target name": types.FieldName,
	"target_name": types.FieldName,
	"object":      types.FieldName,
	"object name": types.FieldName,
	"object_name": types.FieldName,
	"source":      types.FieldName,
	"source_id":   types.FieldName,
}

// NormalizeField maps a column name to its canonical field. Matching is
// case-insensitive and ignores surrounding and repeated inner whitespace.
// Unrecognized names are returned unchanged so that a later lookup for a
// required field fails explicitly.
func NormalizeField(name string) types.Field {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if f, ok := fieldSynonyms[key]; ok {
		return f
	}
	return types.Field(name)
}

// NormalizeKeys returns a copy of raw keyed by canonical field. When two
// spellings of the same field are present, the one whose name is already
// canonical wins; otherwise the lexically first spelling wins.
func NormalizeKeys(raw map[string]string) map[types.Field]string {
	out := make(map[types.Field]string, len(raw))
	chosen := make(map[types.Field]string, len(raw))
	for name, value := range raw {
		f := NormalizeField(name)
		prev, seen := chosen[f]
		if seen && !preferSpelling(f, name, prev) {
			continue
		}
		chosen[f] = name
		out[f] = value
	}
	return out
}

func preferSpelling(f types.Field, candidate, current string) bool {
	if current == string(f) {
		return false
	}
	if candidate == string(f) {
		return true
	}
	return candidate < current
}
