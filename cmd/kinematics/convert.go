// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/kinematics-engine/internal/export"
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Convert an exported result to another format",
	Long: `Convert reads a result previously exported as csv, txt, html, json or
yaml and writes it in another format. The input format defaults to the
file extension. FILE may be "-" to read standard input, in which case
--from is required.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("from", "", "input format (default: from the file extension)")
	convertCmd.Flags().String("to", formatTable, "output format: table, csv, txt, html, json, yaml")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	inFormat, err := inputFormat(args[0], from)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening %s: %w", args[0], err)
		}
		defer f.Close()
		in = f
	}

	res, err := export.Read(in, inFormat)
	if err != nil {
		return err
	}
	return writeResult(os.Stdout, res, to)
}

func inputFormat(path, from string) (export.Format, error) {
	if from != "" {
		return export.ParseFormat(from)
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer the format of %q: use --from", path)
	}
	return export.ParseFormat(ext)
}
