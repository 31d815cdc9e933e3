// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package movinggroup

import (
	"fmt"
	"math"
	"strings"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// Plane is a pair of axes onto which a group is projected.
type Plane string

const (
	PlaneUV Plane = "UV"
	PlaneUW Plane = "UW"
	PlaneVW Plane = "VW"
	PlaneXY Plane = "XY"
	PlaneXZ Plane = "XZ"
	PlaneYZ Plane = "YZ"
)

// Planes lists the supported projections, velocity planes first.
var Planes = []Plane{PlaneUV, PlaneUW, PlaneVW, PlaneXY, PlaneXZ, PlaneYZ}

// ParsePlane accepts a plane name in any case.
func ParsePlane(s string) (Plane, error) {
	p := Plane(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Planes {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown plane %q (use UV, UW, VW, XY, XZ or YZ)", s)
}

// Axes returns the horizontal and vertical axis names.
func (p Plane) Axes() (string, string) {
	return string(p[:1]), string(p[1:])
}

func component(k types.Kinematics, axis string) float64 {
	switch axis {
	case "U":
		return k.U
	case "V":
		return k.V
	case "W":
		return k.W
	case "X":
		return k.X
	case "Y":
		return k.Y
	case "Z":
		return k.Z
	}
	panic("movinggroup: unknown axis " + axis)
}

// Ellipse is an axis-aligned ellipse in one projection plane.
type Ellipse struct {
	Group   string  `json:"group"`
	Plane   Plane   `json:"plane"`
	CenterH float64 `json:"center_h"`
	CenterV float64 `json:"center_v"`
	RadiusH float64 `json:"radius_h"`
	RadiusV float64 `json:"radius_v"`
}

// Project returns the 1-sigma ellipse of g in plane p.
func Project(g types.MovingGroup, p Plane) Ellipse {
	h, v := p.Axes()
	return Ellipse{
		Group:   g.Abbrev,
		Plane:   p,
		CenterH: component(g.Mean, h),
		CenterV: component(g.Mean, v),
		RadiusH: component(g.Sigma, h),
		RadiusV: component(g.Sigma, v),
	}
}

// Contains reports whether (h, v) lies inside or on the ellipse.
func (e Ellipse) Contains(h, v float64) bool {
	dh := (h - e.CenterH) / e.RadiusH
	dv := (v - e.CenterV) / e.RadiusV
	return dh*dh+dv*dv <= 1
}

// Outline returns n points evenly spaced in angle around the ellipse,
// starting on the positive horizontal axis. The last point does not
// repeat the first.
func (e Ellipse) Outline(n int) [][2]float64 {
	if n <= 0 {
		return nil
	}
	pts := make([][2]float64, n)
	for i := range pts {
		s, c := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = [2]float64{e.CenterH + e.RadiusH*c, e.CenterV + e.RadiusV*s}
	}
	return pts
}
