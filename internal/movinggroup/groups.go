// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package movinggroup holds the reference table of young nearby moving
// groups and the geometry used to compare a star against them.
//
// Means and 1-sigma extents are the BANYAN values of Malo et al. (2013),
// Table 1. They are reference data and must not be recomputed.
package movinggroup

import (
	"strings"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

var groups = []types.MovingGroup{
	{
		Name:   "Beta Pictoris",
		Abbrev: "βPMG",
		Mean:   types.Kinematics{U: -10.94, V: -16.25, W: -9.27, X: 9.27, Y: -5.96, Z: -13.59},
		Sigma:  types.Kinematics{U: 2.06, V: 1.30, W: 1.54, X: 31.71, Y: 15.19, Z: 8.22},
	},
	{
		Name:   "TW Hydrae",
		Abbrev: "TWA",
		Mean:   types.Kinematics{U: -9.87, V: -18.06, W: -4.52, X: 12.49, Y: -42.28, Z: 21.55},
		Sigma:  types.Kinematics{U: 4.15, V: 1.44, W: 2.80, X: 7.05, Y: 7.33, Z: 4.20},
	},
	{
		Name:   "Tucana-Horologium",
		Abbrev: "THA",
		Mean:   types.Kinematics{U: -9.88, V: -20.70, W: -0.90, X: 11.39, Y: -21.21, Z: -35.40},
		Sigma:  types.Kinematics{U: 1.51, V: 1.87, W: 1.31, X: 19.29, Y: 9.17, Z: 5.39},
	},
	{
		Name:   "Columba",
		Abbrev: "COL",
		Mean:   types.Kinematics{U: -12.24, V: -21.32, W: -5.58, X: -27.44, Y: -31.32, Z: -27.97},
		Sigma:  types.Kinematics{U: 1.03, V: 1.18, W: 1.11, X: 13.80, Y: 20.55, Z: 15.83},
	},
	{
		Name:   "Carina",
		Abbrev: "CAR",
		Mean:   types.Kinematics{U: -10.50, V: -22.36, W: -5.84, X: 15.55, Y: -58.53, Z: -22.95},
		Sigma:  types.Kinematics{U: 0.99, V: 0.55, W: 0.14, X: 5.66, Y: 16.69, Z: 2.74},
	},
	{
		Name:   "Argus",
		Abbrev: "ARG",
		Mean:   types.Kinematics{U: -21.78, V: -12.08, W: -4.52, X: 14.60, Y: -24.67, Z: -6.72},
		Sigma:  types.Kinematics{U: 1.32, V: 1.97, W: 0.50, X: 18.60, Y: 19.06, Z: 11.43},
	},
	{
		Name:   "AB Doradus",
		Abbrev: "ABDMG",
		Mean:   types.Kinematics{U: -7.12, V: -27.31, W: -13.81, X: -2.37, Y: 1.48, Z: -15.62},
		Sigma:  types.Kinematics{U: 1.39, V: 1.31, W: 2.16, X: 19.97, Y: 18.06, Z: 16.81},
	},
}

// All returns a copy of the reference table in display order.
func All() []types.MovingGroup {
	out := make([]types.MovingGroup, len(groups))
	copy(out, groups)
	return out
}

// Lookup finds a group by name or abbreviation, ignoring case. Spaces,
// hyphens and a "BPMG"/"beta pic" spelling are accepted.
func Lookup(name string) (types.MovingGroup, bool) {
	key := lookupKey(name)
	for _, g := range groups {
		if key == lookupKey(g.Name) || key == lookupKey(g.Abbrev) {
			return g, true
		}
	}
	switch key {
	case "bpmg", "betapic", "bpic":
		return groups[0], true
	case "twhya", "tw":
		return groups[1], true
	case "tuchor", "tucana":
		return groups[2], true
	case "abdor":
		return groups[6], true
	}
	return types.MovingGroup{}, false
}

func lookupKey(s string) string {
	s = strings.ToLower(s)
	return strings.NewReplacer(" ", "", "-", "", "_", "", "β", "b").Replace(s)
}
