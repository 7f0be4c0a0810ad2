package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/satgraph/display"
	"github.com/teranos/satgraph/sat"
	"github.com/teranos/satgraph/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show satgraph version information",
	Long:  `Display version, build time, commit hash, platform and the number of entity types with dedicated extractors.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()
		w := cmd.OutOrStdout()

		if display.ShouldOutputJSON(cmd) {
			return display.OutputJSON(w, struct {
				version.Info
				EntityTypes []string `json:"entity_types"`
			}{info, sat.SupportedTypes()})
		}

		fmt.Fprintln(w, info.String())
		fmt.Fprintf(w, "Platform: %s\n", info.Platform)
		fmt.Fprintf(w, "Go: %s\n", info.GoVersion)
		fmt.Fprintf(w, "Entity types: %d\n", len(sat.SupportedTypes()))
		return nil
	},
}
