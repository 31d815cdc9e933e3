// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/kinematics-engine/internal/export"
	"github.com/pdiddy/kinematics-engine/internal/movinggroup"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

// formatTable is the aligned terminal layout; every other format name is
// an export encoding.
const formatTable = "table"

// writeResult prints res in the named format.
func writeResult(w io.Writer, res types.CartesianResult, format string) error {
	if format == "" || format == formatTable {
		return formatResultTable(w, res)
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	return export.Write(w, res, f)
}

func formatResultTable(w io.Writer, res types.CartesianResult) error {
	lead := res.CorrelatingColumn()
	if lead != "" {
		fmt.Fprintf(w, "%-20s  ", lead)
	}
	fmt.Fprintf(w, "%12s  %12s  %12s  %12s  %12s  %12s\n", "X (pc)", "Y (pc)", "Z (pc)", "U (km/s)", "V (km/s)", "W (km/s)")
	width := 6*12 + 5*2
	if lead != "" {
		width += 22
	}
	fmt.Fprintln(w, strings.Repeat("-", width))

	for _, row := range res.Rows() {
		switch {
		case res.Names != nil:
			name := row.Name
			if len(name) > 20 {
				name = name[:17] + "..."
			}
			fmt.Fprintf(w, "%-20s  ", name)
		case lead != "":
			fmt.Fprintf(w, "%-20s  ", export.FormatFloat(row.Swept))
		}
		fmt.Fprintf(w, "%12.4f  %12.4f  %12.4f  %12.4f  %12.4f  %12.4f\n",
			row.X, row.Y, row.Z, row.U, row.V, row.W)
	}

	if res.Len() != 1 {
		fmt.Fprintf(w, "\n%d rows", res.Len())
		if n := res.Degenerate(); n > 0 {
			fmt.Fprintf(w, ", %d degenerate", n)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// formatMatches ranks the groups for row and marks those whose UV
// ellipse contains it.
func formatMatches(w io.Writer, row types.CartesianRow, matches []movinggroup.Match) {
	fmt.Fprintf(w, "\n%-6s  %-24s  %-20s  %s\n", "Group", "Name", "UVW distance (sigma)", "In UV ellipse")
	fmt.Fprintln(w, strings.Repeat("-", 68))
	for _, m := range matches {
		inside := ""
		if movinggroup.Project(m.Group, movinggroup.PlaneUV).Contains(row.U, row.V) {
			inside = "yes"
		}
		fmt.Fprintf(w, "%-6s  %-24s  %-20.2f  %s\n", m.Group.Abbrev, m.Group.Name, m.Distance, inside)
	}
}

func formatGroups(w io.Writer, groups []types.MovingGroup) {
	fmt.Fprintf(w, "%-6s  %-24s  %-18s  %-18s  %-18s\n", "Group", "Name", "U (km/s)", "V (km/s)", "W (km/s)")
	fmt.Fprintln(w, strings.Repeat("-", 92))
	for _, g := range groups {
		fmt.Fprintf(w, "%-6s  %-24s  %-18s  %-18s  %-18s\n", g.Abbrev, g.Name,
			plusMinus(g.Mean.U, g.Sigma.U), plusMinus(g.Mean.V, g.Sigma.V), plusMinus(g.Mean.W, g.Sigma.W))
	}
}

func formatEllipses(w io.Writer, ellipses []movinggroup.Ellipse) {
	if len(ellipses) == 0 {
		return
	}
	h, v := ellipses[0].Plane.Axes()
	fmt.Fprintf(w, "%-6s  %-18s  %-18s\n", "Group", h+" centre / radius", v+" centre / radius")
	fmt.Fprintln(w, strings.Repeat("-", 46))
	for _, e := range ellipses {
		fmt.Fprintf(w, "%-6s  %-18s  %-18s\n", e.Group, plusMinus(e.CenterH, e.RadiusH), plusMinus(e.CenterV, e.RadiusV))
	}
}

func plusMinus(mean, sigma float64) string {
	return fmt.Sprintf("%.1f ± %.1f", mean, sigma)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
