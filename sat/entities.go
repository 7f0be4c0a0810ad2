package sat

// Vec3 is a point or direction in model space.
type Vec3 [3]float64

// BoundingBox is an axis-aligned box carried by some topology records.
type BoundingBox struct {
	Min Vec3 `json:"min"`
	Max Vec3 `json:"max"`
}

// Sense is the orientation of a face, coedge, edge or curve relative to its geometry.
type Sense string

const (
	SenseForward  Sense = "forward"
	SenseReversed Sense = "reversed"
	SenseBoth     Sense = "both"
	SenseUnknown  Sense = "unknown"
)

// Reference names one outgoing link of an entity. Target is nil for $-1.
type Reference struct {
	Name   string `json:"name"`
	Target *int   `json:"target"`
}

// Entity is one parsed SAT record. References are plain indices that the
// caller resolves through Document.GetEntity; entities never link each other.
type Entity interface {
	Index() int
	Type() string
	References() []Reference
}

// Base carries the fields every entity has.
type Base struct {
	ID   int    `json:"index"`
	Kind string `json:"entity_type"`
}

func (b Base) Index() int   { return b.ID }
func (b Base) Type() string { return b.Kind }

// Generic is the stub produced for entity types without an extractor.
type Generic struct {
	Base
}

func (Generic) References() []Reference { return nil }

func ref(name string, target *int) Reference {
	return Reference{Name: name, Target: target}
}

// Topology

type Body struct {
	Base
	Lump        *int         `json:"lump_ref"`
	Wire        *int         `json:"wire_ref"`
	Transform   *int         `json:"transform_ref"`
	BoundingBox *BoundingBox `json:"bbox,omitempty"`
}

func (e *Body) References() []Reference {
	return []Reference{
		ref("lump", e.Lump),
		ref("wire", e.Wire),
		ref("transform", e.Transform),
	}
}

type Lump struct {
	Base
	NextLump    *int         `json:"next_lump_ref"`
	Shell       *int         `json:"shell_ref"`
	Body        *int         `json:"body_ref"`
	BoundingBox *BoundingBox `json:"bbox,omitempty"`
}

func (e *Lump) References() []Reference {
	return []Reference{
		ref("next_lump", e.NextLump),
		ref("shell", e.Shell),
		ref("body", e.Body),
	}
}

type Shell struct {
	Base
	NextShell   *int         `json:"next_shell_ref"`
	Subshell    *int         `json:"subshell_ref"`
	Face        *int         `json:"face_ref"`
	Wire        *int         `json:"wire_ref"`
	Lump        *int         `json:"lump_ref"`
	BoundingBox *BoundingBox `json:"bbox,omitempty"`
}

func (e *Shell) References() []Reference {
	return []Reference{
		ref("next_shell", e.NextShell),
		ref("subshell", e.Subshell),
		ref("face", e.Face),
		ref("wire", e.Wire),
		ref("lump", e.Lump),
	}
}

type Subshell struct {
	Base
	NextSubshell *int `json:"next_subshell_ref"`
	Face         *int `json:"face_ref"`
	Shell        *int `json:"shell_ref"`
}

func (e *Subshell) References() []Reference {
	return []Reference{
		ref("next_subshell", e.NextSubshell),
		ref("face", e.Face),
		ref("shell", e.Shell),
	}
}

type Face struct {
	Base
	NextFace    *int         `json:"next_face_ref"`
	Attrib      *int         `json:"attrib_ref"`
	Shell       *int         `json:"shell_ref"`
	Loop        *int         `json:"loop_ref"`
	Sense       Sense        `json:"sense"`
	DoubleSided bool         `json:"double_sided"`
	Containment string       `json:"containment"`
	Surface     *int         `json:"surface_ref"`
	BoundingBox *BoundingBox `json:"bbox,omitempty"`
}

func (e *Face) References() []Reference {
	return []Reference{
		ref("next_face", e.NextFace),
		ref("attrib", e.Attrib),
		ref("shell", e.Shell),
		ref("loop", e.Loop),
		ref("surface", e.Surface),
	}
}

type Loop struct {
	Base
	NextLoop    *int         `json:"next_loop_ref"`
	Attrib      *int         `json:"attrib_ref"`
	Face        *int         `json:"face_ref"`
	Coedge      *int         `json:"coedge_ref"`
	BoundingBox *BoundingBox `json:"bbox,omitempty"`
}

func (e *Loop) References() []Reference {
	return []Reference{
		ref("next_loop", e.NextLoop),
		ref("attrib", e.Attrib),
		ref("face", e.Face),
		ref("coedge", e.Coedge),
	}
}

type Coedge struct {
	Base
	NextCoedge     *int  `json:"next_coedge_ref"`
	PreviousCoedge *int  `json:"previous_coedge_ref"`
	PartnerCoedge  *int  `json:"partner_coedge_ref"`
	Attrib         *int  `json:"attrib_ref"`
	Loop           *int  `json:"loop_ref"`
	Edge           *int  `json:"edge_ref"`
	Sense          Sense `json:"sense"`
}

func (e *Coedge) References() []Reference {
	return []Reference{
		ref("next_coedge", e.NextCoedge),
		ref("previous_coedge", e.PreviousCoedge),
		ref("partner_coedge", e.PartnerCoedge),
		ref("attrib", e.Attrib),
		ref("loop", e.Loop),
		ref("edge", e.Edge),
	}
}

// Edge. Edge records carry no next-edge slot, so NextEdge is always nil;
// edges are reached through coedges.
type Edge struct {
	Base
	NextEdge    *int         `json:"next_edge_ref"`
	Attrib      *int         `json:"attrib_ref"`
	StartVertex *int         `json:"start_vertex_ref"`
	EndVertex   *int         `json:"end_vertex_ref"`
	Coedge      *int         `json:"coedge_ref"`
	Curve       *int         `json:"curve_ref"`
	Sense       Sense        `json:"sense"`
	Convexity   string       `json:"convexity"`
	BoundingBox *BoundingBox `json:"bbox,omitempty"`
}

func (e *Edge) References() []Reference {
	return []Reference{
		ref("next_edge", e.NextEdge),
		ref("attrib", e.Attrib),
		ref("start_vertex", e.StartVertex),
		ref("end_vertex", e.EndVertex),
		ref("coedge", e.Coedge),
		ref("curve", e.Curve),
	}
}

type Vertex struct {
	Base
	Attrib *int `json:"attrib_ref"`
	Edge   *int `json:"edge_ref"`
	Point  *int `json:"point_ref"`
}

func (e *Vertex) References() []Reference {
	return []Reference{
		ref("attrib", e.Attrib),
		ref("edge", e.Edge),
		ref("point", e.Point),
	}
}

type Point struct {
	Base
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (*Point) References() []Reference { return nil }

// Curves

type StraightCurve struct {
	Base
	Origin    Vec3 `json:"origin"`
	Direction Vec3 `json:"direction"`
}

func (*StraightCurve) References() []Reference { return nil }

type EllipseCurve struct {
	Base
	Center      Vec3    `json:"center"`
	Normal      Vec3    `json:"normal"`
	MajorAxis   Vec3    `json:"major_axis"`
	RadiusRatio float64 `json:"radius_ratio"`
}

func (*EllipseCurve) References() []Reference { return nil }

type IntcurveCurve struct {
	Base
	Sense      Sense            `json:"sense"`
	Surface    *int             `json:"surface_ref"`
	PCurve     *int             `json:"pcurve_ref"`
	SplineData *SplineCurveData `json:"spline_data,omitempty"`
}

func (e *IntcurveCurve) References() []Reference {
	return []Reference{
		ref("surface", e.Surface),
		ref("pcurve", e.PCurve),
	}
}

type PCurve struct {
	Base
	Surface    *int             `json:"surface_ref"`
	Intcurve   *int             `json:"intcurve_ref"`
	SplineData *SplineCurveData `json:"spline_data,omitempty"`
}

func (e *PCurve) References() []Reference {
	return []Reference{
		ref("surface", e.Surface),
		ref("intcurve", e.Intcurve),
	}
}

// Surfaces

type PlaneSurface struct {
	Base
	Origin     Vec3 `json:"origin"`
	Normal     Vec3 `json:"normal"`
	UDirection Vec3 `json:"u_direction"`
}

func (*PlaneSurface) References() []Reference { return nil }

type ConeSurface struct {
	Base
	Origin      Vec3    `json:"origin"`
	Axis        Vec3    `json:"axis"`
	MajorAxis   Vec3    `json:"major_axis"`
	RadiusRatio float64 `json:"radius_ratio"`
	SineAngle   float64 `json:"sine_angle"`
	CosineAngle float64 `json:"cosine_angle"`
}

func (*ConeSurface) References() []Reference { return nil }

type CylinderSurface struct {
	Base
	Origin    Vec3    `json:"origin"`
	Axis      Vec3    `json:"axis"`
	MajorAxis Vec3    `json:"major_axis"`
	Radius    float64 `json:"radius"`
}

func (*CylinderSurface) References() []Reference { return nil }

type SphereSurface struct {
	Base
	Center  Vec3    `json:"center"`
	Radius  float64 `json:"radius"`
	Pole    Vec3    `json:"pole"`
	Equator Vec3    `json:"equator"`
}

func (*SphereSurface) References() []Reference { return nil }

type TorusSurface struct {
	Base
	Center      Vec3    `json:"center"`
	Axis        Vec3    `json:"axis"`
	MajorAxis   Vec3    `json:"major_axis"`
	MajorRadius float64 `json:"major_radius"`
	MinorRadius float64 `json:"minor_radius"`
}

func (*TorusSurface) References() []Reference { return nil }

type SplineSurface struct {
	Base
	Sense      Sense              `json:"sense"`
	SplineData *SplineSurfaceData `json:"spline_data,omitempty"`
}

func (*SplineSurface) References() []Reference { return nil }

// Other

// Transform. Rotation is row-major; Rotation and Translation are zero when
// the record carries fewer than 13 numeric values.
type Transform struct {
	Base
	Rotation    [9]float64 `json:"rotation"`
	Translation Vec3       `json:"translation"`
	Scale       float64    `json:"scale"`
	Rotate      bool       `json:"rotate"`
	Reflect     bool       `json:"reflect"`
	Shear       bool       `json:"shear"`
}

func (*Transform) References() []Reference { return nil }

// Attrib is the generic attribute record used for *attrib types without a
// dedicated extractor.
type Attrib struct {
	Base
	NextAttrib *int `json:"next_attrib_ref"`
	Owner      *int `json:"owner_ref"`
}

func (e *Attrib) References() []Reference {
	return []Reference{
		ref("next_attrib", e.NextAttrib),
		ref("owner", e.Owner),
	}
}

type NameAttrib struct {
	Attrib
	Name string `json:"name"`
}

type StringAttrib struct {
	Attrib
	Name  string `json:"name"`
	Value string `json:"value"`
}

type PositionAttrib struct {
	Attrib
	Position Vec3 `json:"position"`
}

type RgbColorAttrib struct {
	Attrib
	Red   float64 `json:"red"`
	Green float64 `json:"green"`
	Blue  float64 `json:"blue"`
}
