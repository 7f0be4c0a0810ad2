package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/satgraph/am"
	"github.com/teranos/satgraph/display"
	"github.com/teranos/satgraph/errors"
	"github.com/teranos/satgraph/logger"
)

// ExportCmd writes the whole entity graph as JSON or YAML
var ExportCmd = &cobra.Command{
	Use:   "export <file.sat>",
	Short: "Export the entity graph as JSON or YAML",
	Long: `Export the header, every entity in index order, skipped records and
dangling references.

Examples:
  satgraph export part.sat                      # JSON to stdout
  satgraph export part.sat --format yaml -o part.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	addWorkersFlag(ExportCmd)
	ExportCmd.Flags().String("format", "json", "Output format: json, yaml")
	ExportCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
}

func runExport(cmd *cobra.Command, args []string) error {
	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := display.ParseFormat(formatFlag)
	if err != nil {
		return err
	}

	doc, err := parseFile(cmd, args[0])
	if err != nil {
		return err
	}
	view := display.NewDocumentView(doc)

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		return display.Export(cmd.OutOrStdout(), view, format)
	}

	f, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, am.DefaultFilePermissions)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", out)
	}
	if err := display.Export(f, view, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", out)
	}

	logger.Logger.Infow("Exported entity graph",
		logger.FieldFile, args[0],
		"output", out,
		"format", string(format),
		logger.FieldCount, len(doc.Entities))
	return nil
}
