package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/teranos/satgraph/am"
	"github.com/teranos/satgraph/display"
	"github.com/teranos/satgraph/errors"
)

// AmCmd represents the am (configuration) command
var AmCmd = &cobra.Command{
	Use:   "am",
	Short: "Manage satgraph configuration",
	Long: `am — Manage satgraph configuration ("I am")

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (SATGRAPH_* prefix)
3. Project config (nearest satgraph.toml, searching up from the working directory)
4. User config (~/.satgraph/satgraph.toml)
5. System config (/etc/satgraph/satgraph.toml)
6. Default values

Examples:
  satgraph am show                    # Show current configuration
  satgraph am show --format yaml      # Show configuration in YAML format
  satgraph am init                    # Write defaults to ./satgraph.toml
  satgraph am where                   # List the files that were checked`,
}

var amShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runAmShow,
}

var amInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a configuration file with default values",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAmInit,
}

var amWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	Args:  cobra.NoArgs,
	RunE:  runAmWhere,
}

func init() {
	amShowCmd.Flags().String("format", "toml", "Output format: toml, json, yaml")
	amInitCmd.Flags().Bool("force", false, "Overwrite an existing file (the old one is kept as .back1)")

	AmCmd.AddCommand(amShowCmd)
	AmCmd.AddCommand(amInitCmd)
	AmCmd.AddCommand(amWhereCmd)
}

func runAmShow(cmd *cobra.Command, args []string) error {
	cfg := config()
	w := cmd.OutOrStdout()

	formatFlag, _ := cmd.Flags().GetString("format")
	if formatFlag == "toml" {
		out, err := am.Render(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "# satgraph configuration\n%s", out)
		return nil
	}

	format, err := display.ParseFormat(formatFlag)
	if err != nil {
		return errors.WithHint(err, "am show also accepts --format toml")
	}
	return display.Export(w, cfg, format)
}

func runAmInit(cmd *cobra.Command, args []string) error {
	path := am.ConfigFileName
	if len(args) == 1 {
		path = args[0]
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(path); err == nil && !force {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"pass --force to overwrite it")
	}

	v := viper.New()
	am.SetDefaults(v)
	cfg, err := am.LoadWithViper(v)
	if err != nil {
		return err
	}
	if err := am.Save(path, cfg); err != nil {
		return err
	}

	abs, _ := filepath.Abs(path)
	fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", pterm.Green("✓"), abs)
	return nil
}

func runAmWhere(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(w, "  1. [DEFAULT]  Built-in defaults")

	for i, path := range am.ConfigPaths() {
		status := pterm.Gray("missing")
		if _, err := os.Stat(path); err == nil {
			status = pterm.Green("loaded")
		}
		fmt.Fprintf(w, "  %d. %-60s %s\n", i+2, path, status)
	}
	fmt.Fprintln(w, "  then SATGRAPH_* environment variables")
	return nil
}
