package commands

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/satgraph/display"
	"github.com/teranos/satgraph/errors"
	"github.com/teranos/satgraph/sat"
)

// ParseCmd parses a SAT file and prints a summary
var ParseCmd = &cobra.Command{
	Use:   "parse <file.sat>",
	Short: "Parse a SAT file and summarise its entities",
	Long: `Parse a SAT file and print the header, per-type entity counts and any
records that had to be skipped.

Examples:
  satgraph parse part.sat
  satgraph parse part.sat --workers 4
  satgraph parse part.sat --require-acis ">= 21"
  satgraph parse part.sat --json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	addWorkersFlag(ParseCmd)
	ParseCmd.Flags().String("require-acis", "", "Fail unless the writing ACIS version satisfies this constraint")
}

func runParse(cmd *cobra.Command, args []string) error {
	doc, err := parseFile(cmd, args[0])
	if err != nil {
		return err
	}

	if constraint, _ := cmd.Flags().GetString("require-acis"); constraint != "" {
		if err := checkACISVersion(doc.Header, constraint); err != nil {
			return err
		}
	}

	summary := display.NewSummaryView(doc)
	w := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(w, summary)
	}

	h := doc.Header
	acis := "unknown"
	if h.ACISVersion != nil {
		acis = h.ACISVersion.String()
	}
	fmt.Fprintf(w, "%s\n", pterm.Bold.Sprint(doc.Path))
	fmt.Fprintf(w, "  Version code:  %d (ACIS %s)\n", h.VersionCode, acis)
	fmt.Fprintf(w, "  Product:       %s\n", h.ProductID)
	fmt.Fprintf(w, "  Units:         %d  resolution %g  tolerance %g\n", h.UnitsCode, h.Resolution, h.Tolerance)
	fmt.Fprintf(w, "  Entities:      %d (%d skipped, %d dangling references)\n\n",
		summary.Entities, len(summary.Skipped), summary.Dangling)

	types := make([]string, 0, len(summary.Counts))
	for typ := range summary.Counts {
		types = append(types, typ)
	}
	sort.Strings(types)

	data := pterm.TableData{{"Entity type", "Count"}}
	for _, typ := range types {
		data = append(data, []string{typ, strconv.Itoa(summary.Counts[typ])})
	}
	if err := renderTable(w, data); err != nil {
		return err
	}

	if len(doc.Skipped) > 0 {
		fmt.Fprintf(w, "\nSkipped records:\n")
		for _, rec := range doc.Skipped {
			fmt.Fprintf(w, "  %s\n", rec.FormatError(sat.ErrorContextTerminal))
		}
	}
	if doc.ReadError != "" {
		fmt.Fprintf(w, "\n%s reading stopped early: %s\n", pterm.Yellow("warning:"), doc.ReadError)
	}
	return nil
}

func checkACISVersion(h *sat.Header, constraint string) error {
	if h.ACISVersion == nil {
		return errors.WithHint(
			errors.Wrap(errors.ErrUnsupported, "header carries no ACIS version"),
			"drop --require-acis for files written by older kernels")
	}
	ok, err := h.ACISVersion.Satisfies(constraint)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrUnsupported, "ACIS %s does not satisfy %q", h.ACISVersion, constraint)
	}
	return nil
}
