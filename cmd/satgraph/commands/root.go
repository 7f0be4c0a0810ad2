package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/satgraph/am"
	"github.com/teranos/satgraph/errors"
	"github.com/teranos/satgraph/logger"
)

// NewRootCmd assembles the satgraph command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "satgraph",
		Short: "satgraph - read ACIS SAT files into an entity graph",
		Long: `satgraph - read ACIS SAT (Standard ACIS Text) files into a typed entity graph.

Available commands:
  parse   - Parse a file and summarise its entities
  show    - Show one entity and its references
  bodies  - List bodies
  faces   - List faces
  export  - Export the entity graph as JSON or YAML
  db      - Import parsed files into SQLite and query them
  watch   - Re-parse a file whenever it changes
  am      - Manage satgraph configuration
  version - Show version information

Examples:
  satgraph parse part.sat              # Header, entity counts, skipped records
  satgraph show part.sat 5             # Entity -5 as JSON with resolved references
  satgraph export part.sat --format yaml -o part.yaml
  satgraph db import part.sat          # Store entities in satgraph.db`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initCommand,
	}

	root.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	root.PersistentFlags().Bool("json", false, "Output JSON instead of tables")
	root.PersistentFlags().String("config", "", "Read configuration from this file only")

	root.AddCommand(ParseCmd)
	root.AddCommand(ShowCmd)
	root.AddCommand(BodiesCmd)
	root.AddCommand(FacesCmd)
	root.AddCommand(ExportCmd)
	root.AddCommand(DbCmd)
	root.AddCommand(WatchCmd)
	root.AddCommand(AmCmd)
	root.AddCommand(VersionCmd)

	return root
}

// initCommand loads configuration and initialises the global logger before any command runs
func initCommand(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	var (
		cfg *am.Config
		err error
	)
	if configPath != "" {
		cfg, err = am.LoadFromFile(configPath)
	} else {
		cfg, err = am.Load()
	}
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}
	activeConfig = cfg

	verbosity, _ := cmd.Flags().GetCount("verbose")
	activeVerbosity = verbosity
	logger.SetTheme(cfg.GetLogTheme())
	if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	logger.Logger.Debugw("Configuration loaded",
		"config", cfg.String(),
		"verbosity", logger.LevelName(verbosity))
	return nil
}
