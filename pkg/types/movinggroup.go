// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Kinematics is a point in the six-dimensional Galactic phase space:
// velocity in km/s and position in parsecs.
type Kinematics struct {
	U float64 `json:"u" yaml:"u"`
	V float64 `json:"v" yaml:"v"`
	W float64 `json:"w" yaml:"w"`
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// MovingGroup is a reference association of co-moving young stars,
// described by its mean kinematics and the 1-sigma extent on each axis.
type MovingGroup struct {
	// Name is the display name (e.g. "TW Hydrae").
	Name string `json:"name" yaml:"name"`

	// Abbrev is the short label used on plots (e.g. "TWA").
	Abbrev string `json:"abbrev" yaml:"abbrev"`

	// Mean is the centre of the group.
	Mean Kinematics `json:"mean" yaml:"mean"`

	// Sigma is the 1-sigma dispersion along each axis.
	Sigma Kinematics `json:"sigma" yaml:"sigma"`
}
