// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package movinggroup

import (
	"math"
	"sort"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// Distance returns the sigma-normalized Euclidean distance between a
// result row and the group mean in UVW space. A value below 1 lies inside
// the 1-sigma velocity ellipsoid. Non-finite rows give NaN.
func Distance(g types.MovingGroup, row types.CartesianRow) float64 {
	du := (row.U - g.Mean.U) / g.Sigma.U
	dv := (row.V - g.Mean.V) / g.Sigma.V
	dw := (row.W - g.Mean.W) / g.Sigma.W
	return math.Sqrt(du*du + dv*dv + dw*dw)
}

// Match pairs a group with a row's distance from it.
type Match struct {
	Group    types.MovingGroup `json:"group"`
	Distance float64           `json:"distance"`
}

// Nearest ranks every group by Distance from row, closest first. Ties keep
// table order.
func Nearest(row types.CartesianRow) []Match {
	matches := make([]Match, len(groups))
	for i, g := range groups {
		matches[i] = Match{Group: g, Distance: Distance(g, row)}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})
	return matches
}
