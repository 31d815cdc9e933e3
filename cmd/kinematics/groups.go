// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kinematics-engine/internal/movinggroup"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

var groupsCmd = &cobra.Command{
	Use:   "groups [NAME]",
	Short: "List the young moving groups",
	Long: `Groups prints the reference moving groups with their mean UVW
velocities and 1-sigma extents. NAME selects one group by name or
abbreviation (e.g. "TWA", "beta pic").

With --plane, each group is projected to a 1-sigma ellipse in that plane
(UV, UW, VW, XY, XZ or YZ); --outline adds that many points around each
ellipse for plotting.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGroups,
}

func init() {
	groupsCmd.Flags().Bool("json", false, "output as JSON")
	groupsCmd.Flags().String("plane", "", "project groups into a plane: UV, UW, VW, XY, XZ, YZ")
	groupsCmd.Flags().Int("outline", 0, "number of outline points per ellipse (requires --plane)")

	rootCmd.AddCommand(groupsCmd)
}

// groupOutline is a projected group with its outline points.
type groupOutline struct {
	movinggroup.Ellipse
	Points [][2]float64 `json:"points,omitempty"`
}

func runGroups(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	planeName, _ := cmd.Flags().GetString("plane")
	points, _ := cmd.Flags().GetInt("outline")

	groups, err := selectGroups(args)
	if err != nil {
		return err
	}

	if planeName == "" {
		if jsonOutput {
			return writeJSON(os.Stdout, groups)
		}
		formatGroups(os.Stdout, groups)
		return nil
	}

	plane, err := movinggroup.ParsePlane(planeName)
	if err != nil {
		return err
	}
	outlines := make([]groupOutline, len(groups))
	for i, g := range groups {
		e := movinggroup.Project(g, plane)
		outlines[i] = groupOutline{Ellipse: e, Points: e.Outline(points)}
	}
	if jsonOutput {
		return writeJSON(os.Stdout, outlines)
	}
	formatOutlines(os.Stdout, outlines)
	return nil
}

func selectGroups(args []string) ([]types.MovingGroup, error) {
	if len(args) == 0 {
		return movinggroup.All(), nil
	}
	g, ok := movinggroup.Lookup(args[0])
	if !ok {
		return nil, fmt.Errorf("no moving group named %q", args[0])
	}
	return []types.MovingGroup{g}, nil
}

func formatOutlines(w io.Writer, outlines []groupOutline) {
	ellipses := make([]movinggroup.Ellipse, len(outlines))
	for i, o := range outlines {
		ellipses[i] = o.Ellipse
	}
	formatEllipses(w, ellipses)

	for _, o := range outlines {
		if len(o.Points) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s outline\n", o.Group)
		for _, p := range o.Points {
			fmt.Fprintf(w, "%10.3f  %10.3f\n", p[0], p[1])
		}
	}
}
