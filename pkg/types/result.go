// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"math"
)

// CartesianResult holds Galactic position (X, Y, Z in parsecs) and velocity
// (U, V, W in km/s) columns. For sweeps, Swept names the varied observable
// and SweptValues holds its value per row; for batches, Names holds the row
// identifiers. All present columns have equal length.
type CartesianResult struct {
	Mode InputMode `json:"-" yaml:"-"`

	X []float64 `json:"x" yaml:"x"`
	Y []float64 `json:"y" yaml:"y"`
	Z []float64 `json:"z" yaml:"z"`
	U []float64 `json:"u" yaml:"u"`
	V []float64 `json:"v" yaml:"v"`
	W []float64 `json:"w" yaml:"w"`

	Swept       Field     `json:"swept,omitempty" yaml:"swept,omitempty"`
	SweptValues []float64 `json:"swept_values,omitempty" yaml:"swept_values,omitempty"`
	Names       []string  `json:"names,omitempty" yaml:"names,omitempty"`
}

// CartesianRow is one row of a CartesianResult.
type CartesianRow struct {
	Name  string  `json:"name,omitempty" yaml:"name,omitempty"`
	Swept float64 `json:"-" yaml:"-"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Z     float64 `json:"z" yaml:"z"`
	U     float64 `json:"u" yaml:"u"`
	V     float64 `json:"v" yaml:"v"`
	W     float64 `json:"w" yaml:"w"`
}

// NewCartesianResult allocates the six columns with length n.
func NewCartesianResult(mode InputMode, n int) CartesianResult {
	return CartesianResult{
		Mode: mode,
		X:    make([]float64, n),
		Y:    make([]float64, n),
		Z:    make([]float64, n),
		U:    make([]float64, n),
		V:    make([]float64, n),
		W:    make([]float64, n),
	}
}

// Len returns the number of rows.
func (r CartesianResult) Len() int {
	return len(r.X)
}

// Validate checks that every present column has the same length.
func (r CartesianResult) Validate() error {
	n := len(r.X)
	for name, col := range map[string][]float64{"Y": r.Y, "Z": r.Z, "U": r.U, "V": r.V, "W": r.W} {
		if len(col) != n {
			return fmt.Errorf("column %s has %d rows, want %d", name, len(col), n)
		}
	}
	if r.Swept != "" && len(r.SweptValues) != n {
		return fmt.Errorf("swept column %s has %d rows, want %d", r.Swept, len(r.SweptValues), n)
	}
	if r.Names != nil && len(r.Names) != n {
		return fmt.Errorf("name column has %d rows, want %d", len(r.Names), n)
	}
	return nil
}

// Row returns row i.
func (r CartesianResult) Row(i int) CartesianRow {
	row := CartesianRow{X: r.X[i], Y: r.Y[i], Z: r.Z[i], U: r.U[i], V: r.V[i], W: r.W[i]}
	if r.Names != nil {
		row.Name = r.Names[i]
	}
	if r.Swept != "" {
		row.Swept = r.SweptValues[i]
	}
	return row
}

// SetRow stores position and velocity for row i.
func (r *CartesianResult) SetRow(i int, x, y, z, u, v, w float64) {
	r.X[i], r.Y[i], r.Z[i] = x, y, z
	r.U[i], r.V[i], r.W[i] = u, v, w
}

// Rows returns all rows in order.
func (r CartesianResult) Rows() []CartesianRow {
	rows := make([]CartesianRow, r.Len())
	for i := range rows {
		rows[i] = r.Row(i)
	}
	return rows
}

// RowFinite reports whether every value in row i is finite.
func (r CartesianResult) RowFinite(i int) bool {
	for _, v := range [...]float64{r.X[i], r.Y[i], r.Z[i], r.U[i], r.V[i], r.W[i]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Degenerate returns the number of rows holding a non-finite value.
// These rows were computed but are not meaningful.
func (r CartesianResult) Degenerate() int {
	n := 0
	for i := 0; i < r.Len(); i++ {
		if !r.RowFinite(i) {
			n++
		}
	}
	return n
}

// CorrelatingColumn returns the header of the leading column ("Name", "RV",
// "Dist") or "" when the result has none.
func (r CartesianResult) CorrelatingColumn() string {
	switch {
	case r.Names != nil:
		return "Name"
	case r.Swept == FieldRV:
		return "RV"
	case r.Swept == FieldDist:
		return "Dist"
	}
	return ""
}

// ValueColumns lists the fixed output headers in export order.
var ValueColumns = []string{"X", "Y", "Z", "U", "V", "W"}
