// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/kinematics-engine/internal/batch"
	"github.com/pdiddy/kinematics-engine/internal/transform"
	"github.com/pdiddy/kinematics-engine/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Compute Galactic XYZ and UVW for every row of a table",
	Long: `Batch reads a table of stars with a name column and the six observables
(ra, dec, pmra, pmdec, rv, dist; common spellings are accepted) and
computes each row. FILE may be "-" to read standard input.

A schema problem or an unparseable cell aborts the run before anything is
computed. Rows whose inputs give no meaningful output are kept with NaN
values.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("delimiter", "auto", "column delimiter: auto, comma, tab, space")
	batchCmd.Flags().String("format", formatTable, "output format: table, csv, txt, html, json, yaml")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	logger := newLogger(cfg)

	delimName, _ := cmd.Flags().GetString("delimiter")
	delim, err := batch.ParseDelimiter(delimName)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening batch file: %w", err)
		}
		defer f.Close()
		in = f
	}

	rows, err := batch.Load(in, delim)
	if err != nil {
		return err
	}

	engine := transform.NewEngine(cfg.Engine, transform.WithLogger(logger))
	res, err := engine.Compute(transform.Request{Mode: types.ModeBatch, Rows: rows})
	if err != nil {
		return err
	}
	if n := res.Degenerate(); n > 0 {
		logger.Warn("degenerate rows in batch", slog.Int("rows", res.Len()), slog.Int("degenerate", n))
	}

	format, _ := cmd.Flags().GetString("format")
	return writeResult(os.Stdout, res, format)
}
