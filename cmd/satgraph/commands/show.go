package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/satgraph/display"
	"github.com/teranos/satgraph/errors"
	"github.com/teranos/satgraph/sat"
)

// ShowCmd prints one entity
var ShowCmd = &cobra.Command{
	Use:   "show <file.sat> <index>",
	Short: "Show one entity and its references",
	Long: `Show the fields of one entity and where each of its references points.

Examples:
  satgraph show part.sat 5
  satgraph show part.sat 5 --json`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	addWorkersFlag(ShowCmd)
}

// entityView pairs an entity with its resolved references
type entityView struct {
	Entity     sat.Entity      `json:"entity"`
	References []referenceView `json:"references"`
}

type referenceView struct {
	Name       string `json:"name"`
	Target     *int   `json:"target"`
	TargetType string `json:"target_type,omitempty"`
	Dangling   bool   `json:"dangling,omitempty"`
}

func runShow(cmd *cobra.Command, args []string) error {
	idx, err := parseIndex(args[1])
	if err != nil {
		return err
	}
	doc, err := parseFile(cmd, args[0])
	if err != nil {
		return err
	}

	e, ok := doc.GetEntity(idx)
	if !ok {
		return errors.WithHintf(
			errors.NewNotFoundError("entity %d in %s", idx, args[0]),
			"the file has %d entities; run `satgraph parse %s` to list them", len(doc.Entities), args[0])
	}

	view := entityView{Entity: e}
	for _, r := range e.References() {
		rv := referenceView{Name: r.Name, Target: r.Target}
		if r.Target != nil {
			if target, ok := doc.Resolve(r.Target); ok {
				rv.TargetType = target.Type()
			} else {
				rv.Dangling = true
			}
		}
		view.References = append(view.References, rv)
	}

	w := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(w, view)
	}

	fmt.Fprintf(w, "%s\n\n", pterm.Bold.Sprintf("-%d %s", e.Index(), e.Type()))
	if len(view.References) > 0 {
		data := pterm.TableData{{"Reference", "Target", "Type"}}
		for _, rv := range view.References {
			typ := rv.TargetType
			if rv.Dangling {
				typ = pterm.Red("dangling")
			}
			data = append(data, []string{rv.Name, formatRef(rv.Target), typ})
		}
		if err := renderTable(w, data); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return display.OutputJSON(w, e)
}
