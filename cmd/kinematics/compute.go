// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kinematics-engine/internal/movinggroup"
	"github.com/pdiddy/kinematics-engine/internal/query"
	"github.com/pdiddy/kinematics-engine/internal/transform"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

var computeCmd = &cobra.Command{
	Use:   "compute",
	Short: "Compute Galactic XYZ and UVW for one star or a sweep",
	Long: `Compute converts one set of observables into Galactic position and
velocity. Use --sweep-rv or --sweep-dist with initial:final:step to vary
radial velocity or distance over a range; the matching scalar flag is
then ignored.

--query loads a saved YAML query file; flags given on the command line
override its values. --save writes the request and its results to a
query file that can be reloaded later.`,
	RunE: runCompute,
}

func init() {
	addComputeFlags(computeCmd)
	rootCmd.AddCommand(computeCmd)
}

func addComputeFlags(cmd *cobra.Command) {
	for _, f := range types.ObservableFields {
		cmd.Flags().String(string(f), "", fmt.Sprintf("%s (%s)", f, f.Unit()))
	}
	cmd.Flags().String("sweep-rv", "", "sweep radial velocity as initial:final:step (km/s)")
	cmd.Flags().String("sweep-dist", "", "sweep distance as initial:final:step (pc)")
	cmd.Flags().String("format", formatTable, "output format: table, csv, txt, html, json, yaml")
	cmd.Flags().String("query", "", "load request values from a query file")
	cmd.Flags().String("save", "", "save the request and results to a query file")
	cmd.Flags().Bool("stored", false, "print the results saved in the --query file instead of recomputing")
	cmd.Flags().Bool("groups", false, "rank moving groups by distance from a single star")
}

func runCompute(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	logger := newLogger(cfg)

	format, _ := cmd.Flags().GetString("format")
	groups, _ := cmd.Flags().GetBool("groups")

	if stored, _ := cmd.Flags().GetBool("stored"); stored {
		res, err := storedResult(cmd)
		if err != nil {
			return err
		}
		return printComputed(os.Stdout, res, format, groups)
	}

	params, err := computeParams(cmd)
	if err != nil {
		return err
	}
	raw := params.ToRawRequest()

	req, err := transform.ParseRequest(raw)
	if err != nil {
		return err
	}
	engine := transform.NewEngine(cfg.Engine, transform.WithLogger(logger))
	res, err := engine.Compute(req)
	if err != nil {
		return err
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := query.WriteQueryFile(savePath, query.NewQueryFile(params.Star, raw, cfg.Engine, &res)); err != nil {
			return err
		}
		logger.Info("saved query", slog.String("path", savePath), slog.Int("rows", res.Len()))
	}

	return printComputed(os.Stdout, res, format, groups)
}

// storedResult loads the results saved in the --query file.
func storedResult(cmd *cobra.Command) (types.CartesianResult, error) {
	path, _ := cmd.Flags().GetString("query")
	if path == "" {
		return types.CartesianResult{}, fmt.Errorf("--stored requires --query")
	}
	qf, err := query.ReadQueryFile(path)
	if err != nil {
		return types.CartesianResult{}, err
	}
	res, ok, err := qf.StoredResult()
	if err != nil {
		return types.CartesianResult{}, err
	}
	if !ok {
		return types.CartesianResult{}, fmt.Errorf("query file %s holds no results", path)
	}
	return res, nil
}

// computeParams merges a loaded query file with the command-line flags.
// Flags win; a sweep flag replaces any stored sweep.
func computeParams(cmd *cobra.Command) (query.QueryParams, error) {
	params := query.QueryParams{Fields: map[string]string{}}
	if path, _ := cmd.Flags().GetString("query"); path != "" {
		qf, err := query.ReadQueryFile(path)
		if err != nil {
			return query.QueryParams{}, err
		}
		params = qf.Query
	}

	overrides := map[string]string{}
	for _, f := range types.ObservableFields {
		if cmd.Flags().Changed(string(f)) {
			overrides[string(f)], _ = cmd.Flags().GetString(string(f))
		}
	}
	params = params.WithOverrides(overrides)

	var sweeps []transform.RawSweep
	for _, kind := range []types.Field{types.FieldRV, types.FieldDist} {
		spec, _ := cmd.Flags().GetString("sweep-" + string(kind))
		if spec == "" {
			continue
		}
		sw, err := transform.ParseRange(string(kind), spec)
		if err != nil {
			return query.QueryParams{}, err
		}
		sweeps = append(sweeps, sw)
	}
	if len(sweeps) > 0 {
		params.Sweeps = sweeps
	}
	return params, nil
}

func printComputed(w io.Writer, res types.CartesianResult, format string, groups bool) error {
	if err := writeResult(w, res, format); err != nil {
		return err
	}
	if groups && res.Mode == types.ModeSingle && res.Len() == 1 {
		row := res.Row(0)
		formatMatches(w, row, movinggroup.Nearest(row))
	}
	return nil
}
