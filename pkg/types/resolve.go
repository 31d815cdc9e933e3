// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strconv"
	"time"
)

// ResolvedStar is the answer of an external name-resolution service.
// Quantities the catalog does not provide are nil; callers must not guess
// them.
type ResolvedStar struct {
	// Query is the name as submitted.
	Query string `json:"query" yaml:"query"`

	// Name is the catalog's main identifier for the object.
	Name string `json:"name" yaml:"name"`

	RA    float64  `json:"ra" yaml:"ra"`
	Dec   float64  `json:"dec" yaml:"dec"`
	PMRA  *float64 `json:"pmra,omitempty" yaml:"pmra,omitempty"`
	PMDec *float64 `json:"pmdec,omitempty" yaml:"pmdec,omitempty"`
	RV    *float64 `json:"rv,omitempty" yaml:"rv,omitempty"`

	// Parallax is in milliarcseconds.
	Parallax *float64 `json:"parallax,omitempty" yaml:"parallax,omitempty"`

	// Dist is 1000/Parallax in parsecs when the parallax is positive.
	Dist *float64 `json:"dist,omitempty" yaml:"dist,omitempty"`

	// Source identifies the resolver that answered (e.g. "sesame:Simbad").
	Source string `json:"source" yaml:"source"`

	// Fetched is when the answer was obtained from the service.
	Fetched time.Time `json:"fetched" yaml:"fetched"`
}

// RawValues renders the resolved quantities as the raw string form accepted
// by the ingestion layer. Missing quantities are omitted so the caller sees
// an explicit missing-field error rather than a silent default.
func (s ResolvedStar) RawValues() map[string]string {
	out := map[string]string{
		string(FieldRA):  formatFloat(s.RA),
		string(FieldDec): formatFloat(s.Dec),
	}
	put := func(f Field, v *float64) {
		if v != nil {
			out[string(f)] = formatFloat(*v)
		}
	}
	put(FieldPMRA, s.PMRA)
	put(FieldPMDec, s.PMDec)
	put(FieldRV, s.RV)
	put(FieldDist, s.Dist)
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
