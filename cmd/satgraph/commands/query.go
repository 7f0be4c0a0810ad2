package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/satgraph/display"
	"github.com/teranos/satgraph/sat"
)

// BodiesCmd lists the bodies of a file
var BodiesCmd = &cobra.Command{
	Use:   "bodies <file.sat>",
	Short: "List bodies",
	Args:  cobra.ExactArgs(1),
	RunE:  runBodies,
}

// FacesCmd lists the faces of a file with their surface types
var FacesCmd = &cobra.Command{
	Use:   "faces <file.sat>",
	Short: "List faces and their surfaces",
	Args:  cobra.ExactArgs(1),
	RunE:  runFaces,
}

func init() {
	addWorkersFlag(BodiesCmd)
	addWorkersFlag(FacesCmd)
}

func runBodies(cmd *cobra.Command, args []string) error {
	doc, err := parseFile(cmd, args[0])
	if err != nil {
		return err
	}
	bodies := doc.Bodies()

	w := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(w, bodies)
	}

	data := pterm.TableData{{"Index", "Lump", "Wire", "Transform", "Bounding box"}}
	for _, b := range bodies {
		data = append(data, []string{
			strconv.Itoa(b.Index()),
			formatRef(b.Lump),
			formatRef(b.Wire),
			formatRef(b.Transform),
			formatBox(b.BoundingBox),
		})
	}
	return renderTable(w, data)
}

// faceView adds the resolved surface type to a face
type faceView struct {
	*sat.Face
	SurfaceType string `json:"surface_type,omitempty"`
}

func runFaces(cmd *cobra.Command, args []string) error {
	doc, err := parseFile(cmd, args[0])
	if err != nil {
		return err
	}

	var views []faceView
	for _, f := range doc.Faces() {
		v := faceView{Face: f}
		if s, ok := doc.Resolve(f.Surface); ok {
			v.SurfaceType = s.Type()
		}
		views = append(views, v)
	}

	w := cmd.OutOrStdout()
	if display.ShouldOutputJSON(cmd) {
		return display.OutputJSON(w, views)
	}

	data := pterm.TableData{{"Index", "Surface", "Surface type", "Sense", "Sides", "Containment", "Loop"}}
	for _, v := range views {
		sides := "single"
		if v.DoubleSided {
			sides = "double"
		}
		data = append(data, []string{
			strconv.Itoa(v.Index()),
			formatRef(v.Surface),
			v.SurfaceType,
			string(v.Sense),
			sides,
			v.Containment,
			formatRef(v.Loop),
		})
	}
	return renderTable(w, data)
}

func formatBox(b *sat.BoundingBox) string {
	if b == nil {
		return "-"
	}
	return fmt.Sprintf("(%g %g %g) (%g %g %g)", b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}
