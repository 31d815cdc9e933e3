// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package movinggroup

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

func TestAll_LiteralValues(t *testing.T) {
	all := All()
	require.Len(t, all, 7)

	abbrevs := make([]string, len(all))
	for i, g := range all {
		abbrevs[i] = g.Abbrev
		assert.Positive(t, g.Sigma.U, g.Name)
		assert.Positive(t, g.Sigma.V, g.Name)
		assert.Positive(t, g.Sigma.W, g.Name)
	}
	assert.Equal(t, []string{"βPMG", "TWA", "THA", "COL", "CAR", "ARG", "ABDMG"}, abbrevs)

	twa, ok := Lookup("TWA")
	require.True(t, ok)
	assert.Equal(t, types.Kinematics{U: -9.87, V: -18.06, W: -4.52, X: 12.49, Y: -42.28, Z: 21.55}, twa.Mean)
	assert.Equal(t, types.Kinematics{U: 4.15, V: 1.44, W: 2.80, X: 7.05, Y: 7.33, Z: 4.20}, twa.Sigma)
}

func TestAll_ReturnsCopy(t *testing.T) {
	a := All()
	a[0].Name = "changed"
	assert.Equal(t, "Beta Pictoris", All()[0].Name)
}

func TestLookup(t *testing.T) {
	for in, want := range map[string]string{
		"tw hydrae":         "TWA",
		"Tucana-Horologium": "THA",
		"col":               "COL",
		"AB Doradus":        "ABDMG",
		"bpmg":              "βPMG",
		"beta pic":          "βPMG",
		"βPMG":              "βPMG",
		"argus":             "ARG",
	} {
		g, ok := Lookup(in)
		require.True(t, ok, in)
		assert.Equal(t, want, g.Abbrev, in)
	}

	_, ok := Lookup("Hyades")
	assert.False(t, ok)
}

func TestProject(t *testing.T) {
	twa, _ := Lookup("TWA")

	uv := Project(twa, PlaneUV)
	assert.Equal(t, Ellipse{Group: "TWA", Plane: PlaneUV, CenterH: -9.87, CenterV: -18.06, RadiusH: 4.15, RadiusV: 1.44}, uv)

	yz := Project(twa, PlaneYZ)
	assert.Equal(t, -42.28, yz.CenterH)
	assert.Equal(t, 4.20, yz.RadiusV)
}

func TestEllipse_OutlineOnBoundary(t *testing.T) {
	e := Project(All()[3], PlaneXZ)
	pts := e.Outline(36)
	require.Len(t, pts, 36)
	assert.InDelta(t, e.CenterH+e.RadiusH, pts[0][0], 1e-12)
	assert.InDelta(t, e.CenterV, pts[0][1], 1e-12)

	for _, p := range pts {
		dh := (p[0] - e.CenterH) / e.RadiusH
		dv := (p[1] - e.CenterV) / e.RadiusV
		assert.InDelta(t, 1, dh*dh+dv*dv, 1e-9)
	}
	assert.Nil(t, e.Outline(0))
}

func TestEllipse_Contains(t *testing.T) {
	e := Ellipse{CenterH: 0, CenterV: 0, RadiusH: 2, RadiusV: 1}
	assert.True(t, e.Contains(0, 0))
	assert.True(t, e.Contains(2, 0))
	assert.False(t, e.Contains(2, 0.5))
}

func TestParsePlane(t *testing.T) {
	p, err := ParsePlane(" uw ")
	require.NoError(t, err)
	assert.Equal(t, PlaneUW, p)
	h, v := p.Axes()
	assert.Equal(t, "U", h)
	assert.Equal(t, "W", v)

	_, err = ParsePlane("UX")
	assert.Error(t, err)
}

func TestNearest_TWHya(t *testing.T) {
	// TW Hya's own space velocity.
	row := types.CartesianRow{U: -10.874, V: -18.348, W: -4.592}
	matches := Nearest(row)
	require.Len(t, matches, 7)
	assert.Equal(t, "TWA", matches[0].Group.Abbrev)
	assert.Less(t, matches[0].Distance, 1.0)
	for i := 1; i < len(matches); i++ {
		assert.LessOrEqual(t, matches[i-1].Distance, matches[i].Distance)
	}
}

func TestDistance(t *testing.T) {
	g := All()[0]
	at := types.CartesianRow{U: g.Mean.U, V: g.Mean.V, W: g.Mean.W}
	assert.Zero(t, Distance(g, at))

	oneSigma := at
	oneSigma.U += g.Sigma.U
	assert.InDelta(t, 1, Distance(g, oneSigma), 1e-12)

	nan := types.CartesianRow{U: math.NaN()}
	assert.True(t, math.IsNaN(Distance(g, nan)))
}
