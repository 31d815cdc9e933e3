// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package transform

// equatorialToGalactic rotates J2000 equatorial (ICRS) unit vectors into the
// right-handed Galactic frame: x toward the Galactic centre, y toward
// l = 90 deg, z toward the North Galactic Pole.
//
// Source: ESA (1997), The Hipparcos and Tycho Catalogues, Vol. 1,
// Sect. 1.5.3, Eq. 1.5.11 (matrix A_G transposed).
var equatorialToGalactic = Mat3{
	{-0.0548755604, -0.8734370902, -0.4838350155},
	{+0.4941094279, -0.4448296300, +0.7469822445},
	{-0.8676661490, -0.1980763734, +0.4559837762},
}

// K converts a proper motion times distance, in mas/yr x kpc, to km/s.
// It is one astronomical unit per Julian year: 149597870.7 km / 31557600 s.
const K = 4.740470463533348

// degToRad converts degrees to radians.
const degToRad = 0.017453292519943295
