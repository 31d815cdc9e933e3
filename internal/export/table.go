// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"strconv"

	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// Header returns the column headers for res in export order.
func Header(res types.CartesianResult) []string {
	var h []string
	if c := res.CorrelatingColumn(); c != "" {
		h = append(h, c)
	}
	return append(h, types.ValueColumns...)
}

// Cells returns every row of res as formatted strings matching Header.
// Floats use the shortest representation that parses back to the same
// value.
func Cells(res types.CartesianResult) [][]string {
	corr := res.CorrelatingColumn()
	out := make([][]string, res.Len())
	for i := range out {
		row := res.Row(i)
		var cells []string
		switch corr {
		case "Name":
			cells = append(cells, row.Name)
		case "RV", "Dist":
			cells = append(cells, FormatFloat(row.Swept))
		}
		for _, v := range [...]float64{row.X, row.Y, row.Z, row.U, row.V, row.W} {
			cells = append(cells, FormatFloat(v))
		}
		out[i] = cells
	}
	return out
}

// FormatFloat formats v with the shortest round-trip representation.
// NaN and infinities become "NaN", "+Inf" and "-Inf".
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// fromTable rebuilds a result from headers and string cells.
func fromTable(header []string, rows [][]string) (types.CartesianResult, error) {
	width := len(header)
	lead := ""
	if len(header) == len(types.ValueColumns)+1 {
		lead = header[0]
		header = header[1:]
	}
	if len(header) != len(types.ValueColumns) {
		return types.CartesianResult{}, fmt.Errorf("reading table: got %d columns, want %d", len(header), len(types.ValueColumns))
	}
	for i, h := range header {
		if h != types.ValueColumns[i] {
			return types.CartesianResult{}, fmt.Errorf("reading table: column %d is %q, want %q", i, h, types.ValueColumns[i])
		}
	}

	mode := types.ModeSingle
	switch lead {
	case "":
	case "Name":
		mode = types.ModeBatch
	case "RV":
		mode = types.ModeSweepRV
	case "Dist":
		mode = types.ModeSweepDist
	default:
		return types.CartesianResult{}, fmt.Errorf("reading table: unknown leading column %q", lead)
	}

	res := types.NewCartesianResult(mode, len(rows))
	res.Swept = mode.SweepField()
	if res.Swept != "" {
		res.SweptValues = make([]float64, len(rows))
	}
	if mode == types.ModeBatch {
		res.Names = make([]string, len(rows))
	}

	for i, row := range rows {
		if len(row) != width {
			return types.CartesianResult{}, fmt.Errorf("reading table: row %d has %d cells", i+1, len(row))
		}
		if lead != "" {
			if mode == types.ModeBatch {
				res.Names[i] = row[0]
			} else {
				v, err := strconv.ParseFloat(row[0], 64)
				if err != nil {
					return types.CartesianResult{}, fmt.Errorf("reading row %d %s: %w", i+1, lead, err)
				}
				res.SweptValues[i] = v
			}
			row = row[1:]
		}

		var vals [6]float64
		for j, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return types.CartesianResult{}, fmt.Errorf("reading row %d %s: %w", i+1, types.ValueColumns[j], err)
			}
			vals[j] = v
		}
		res.SetRow(i, vals[0], vals[1], vals[2], vals[3], vals[4], vals[5])
	}
	return res, nil
}
