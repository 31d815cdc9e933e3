// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kinematics-engine/internal/resolve"
	"github.com/pdiddy/kinematics-engine/internal/transform"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve NAME",
	Short: "Look up a star's observables by name",
	Long: `Resolve queries the CDS Sesame service for a star name and prints the
position, proper motion, radial velocity and parallax it returns.
Quantities the catalogs do not provide are left blank.

With --compute, the resolved values are fed to a single-star computation;
a missing quantity is reported rather than guessed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().Bool("compute", false, "compute XYZ and UVW from the resolved values")
	resolveCmd.Flags().String("format", formatTable, "output format: table, json, yaml (with --compute also csv, txt, html)")
	resolveCmd.Flags().Bool("purge-cache", false, "drop expired cache entries before the lookup")

	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	logger := newLogger(cfg)
	name := strings.Join(args, " ")

	resolver, closer, err := resolve.New(cfg.Resolver)
	if err != nil {
		return err
	}
	defer closer.Close()

	if purge, _ := cmd.Flags().GetBool("purge-cache"); purge {
		if cache, ok := resolver.(*resolve.Cache); ok {
			n, err := cache.Purge(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("purged resolver cache", slog.Int64("entries", n))
		}
	}

	star, err := resolver.Resolve(cmd.Context(), name)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if compute, _ := cmd.Flags().GetBool("compute"); !compute {
		return printStar(os.Stdout, star, format)
	}

	req, err := transform.ParseRequest(transform.RawRequest{Fields: star.RawValues()})
	if err != nil {
		return fmt.Errorf("computing %s: %w", star.Name, err)
	}
	engine := transform.NewEngine(cfg.Engine, transform.WithLogger(logger))
	res, err := engine.Compute(req)
	if err != nil {
		return err
	}
	return writeResult(os.Stdout, res, format)
}

func printStar(w io.Writer, star types.ResolvedStar, format string) error {
	switch format {
	case "json":
		return writeJSON(w, star)
	case "yaml", "yml":
		return writeYAML(w, star)
	case "", formatTable:
	default:
		return fmt.Errorf("unsupported format %q without --compute: use table, json or yaml", format)
	}

	fmt.Fprintf(w, "%-10s  %s\n", "Name", star.Name)
	fmt.Fprintf(w, "%-10s  %s\n", "Source", star.Source)
	values := star.RawValues()
	for _, f := range types.ObservableFields {
		v := values[string(f)]
		if v == "" {
			v = "-"
		}
		fmt.Fprintf(w, "%-10s  %s %s\n", f, v, f.Unit())
	}
	if star.Parallax != nil {
		fmt.Fprintf(w, "%-10s  %g mas\n", "parallax", *star.Parallax)
	}
	return nil
}
