package sat

import "strings"

// Token positions within the data portion of topology records. Every record
// opens with "$attrib -1 -1 $-1", so owned fields start at 4. The bbox
// minimums are token counts the record must exceed before a bounding box is
// read; they track what sequence-numbered exporters actually write.
const (
	attribPos = 0

	bodyLump      = 4
	bodyWire      = 5
	bodyTransform = 6
	bodyBBox      = 8
	bodyBBoxMin   = 13

	lumpNext    = 4
	lumpShell   = 5
	lumpBody    = 6
	lumpBBox    = 8
	lumpBBoxMin = 13

	shellNext     = 4
	shellSubshell = 5
	shellFace     = 6
	shellWire     = 7
	shellLump     = 8
	shellBBox     = 10
	shellBBoxMin  = 15

	subshellShell = 4
	subshellNext  = 5
	subshellFace  = 7

	faceNext        = 4
	faceLoop        = 5
	faceShell       = 6
	faceSurface     = 8
	faceSense       = 9
	faceSidedness   = 10
	faceContainment = 11
	faceBBox        = 14
	faceBBoxMin     = 19

	loopNext    = 4
	loopCoedge  = 5
	loopFace    = 6
	loopBBox    = 8
	loopBBoxMin = 13

	coedgeNext    = 4
	coedgePrev    = 5
	coedgePartner = 6
	coedgeEdge    = 7
	coedgeSense   = 8
	coedgeLoop    = 9

	edgeStart     = 4
	edgeEnd       = 6
	edgeCoedge    = 8
	edgeCurve     = 9
	edgeSense     = 10
	edgeConvexity = 12
	edgeBBox      = 14
	edgeBBoxMin   = 19

	vertexEdge  = 4
	vertexPoint = 5
)

func extractBody(_ *Dispatcher, b Base, data string) (Entity, error) {
	t := strings.Fields(data)
	return &Body{
		Base:        b,
		Lump:        refAt(t, bodyLump),
		Wire:        refAt(t, bodyWire),
		Transform:   refAt(t, bodyTransform),
		BoundingBox: bboxAt(t, bodyBBox, bodyBBoxMin),
	}, nil
}

func extractLump(_ *Dispatcher, b Base, data string) (Entity, error) {
	t := strings.Fields(data)
	return &Lump{
		Base:        b,
		NextLump:    refAt(t, lumpNext),
		Shell:       refAt(t, lumpShell),
		Body:        refAt(t, lumpBody),
		BoundingBox: bboxAt(t, lumpBBox, lumpBBoxMin),
	}, nil
}

func extractShell(_ *Dispatcher, b Base, data string) (Entity, error) {
	t := strings.Fields(data)
	return &Shell{
		Base:        b,
		NextShell:   refAt(t, shellNext),
		Subshell:    refAt(t, shellSubshell),
		Face:        refAt(t, shellFace),
		Wire:        refAt(t, shellWire),
		Lump:        refAt(t, shellLump),
		BoundingBox: bboxAt(t, shellBBox, shellBBoxMin),
	}, nil
}

func extractSubshell(_ *Dispatcher, b Base, data string) (Entity, error) {
	t := strings.Fields(data)
	return &Subshell{
		Base:         b,
		Shell:        refAt(t, subshellShell),
		NextSubshell: refAt(t, subshellNext),
		Face:         refAt(t, subshellFace),
	}, nil
}

func extractFace(_ *Dispatcher, b Base, data string) (Entity, error) {
	t := strings.Fields(data)
	containment := "out"
	if wordAt(t, faceContainment, "") == "in" {
		containment = "in"
	}
	return &Face{
		Base:        b,
		Attrib:      refAt(t, attribPos),
		NextFace:    refAt(t, faceNext),
		Loop:        refAt(t, faceLoop),
		Shell:       refAt(t, faceShell),
		Surface:     refAt(t, faceSurface),
		Sense:       senseAt(t, faceSense),
		DoubleSided: wordAt(t, faceSidedness, "") == "double",
		Containment: containment,
		BoundingBox: bboxAt(t, faceBBox, faceBBoxMin),
	}, nil
}

func extractLoop(_ *Dispatcher, b Base, data string) (Entity, error) {
	t := strings.Fields(data)
	return &Loop{
		Base:        b,
		Attrib:      refAt(t, attribPos),
		NextLoop:    refAt(t, loopNext),
		Coedge:      refAt(t, loopCoedge),
		Face:        refAt(t, loopFace),
		BoundingBox: bboxAt(t, loopBBox, loopBBoxMin),
	}, nil
}

func extractCoedge(_ *Dispatcher, b Base, data string) (Entity, error) {
	t := strings.Fields(data)
	return &Coedge{
		Base:           b,
		Attrib:         refAt(t, attribPos),
		NextCoedge:     refAt(t, coedgeNext),
		PreviousCoedge: refAt(t, coedgePrev),
		PartnerCoedge:  refAt(t, coedgePartner),
		Edge:           refAt(t, coedgeEdge),
		Sense:          senseAt(t, coedgeSense),
		Loop:           refAt(t, coedgeLoop),
	}, nil
}

func extractEdge(_ *Dispatcher, b Base, data string) (Entity, error) {
	t := strings.Fields(data)
	return &Edge{
		Base:        b,
		Attrib:      refAt(t, attribPos),
		StartVertex: refAt(t, edgeStart),
		EndVertex:   refAt(t, edgeEnd),
		Coedge:      refAt(t, edgeCoedge),
		Curve:       refAt(t, edgeCurve),
		Sense:       senseAt(t, edgeSense),
		Convexity:   wordAt(t, edgeConvexity, "unknown"),
		BoundingBox: bboxAt(t, edgeBBox, edgeBBoxMin),
	}, nil
}

func extractVertex(_ *Dispatcher, b Base, data string) (Entity, error) {
	t := strings.Fields(data)
	v := &Vertex{
		Base:   b,
		Attrib: refAt(t, attribPos),
		Edge:   refAt(t, vertexEdge),
	}
	if isRefToken(wordAt(t, vertexPoint, "")) {
		v.Point = refAt(t, vertexPoint)
	} else {
		v.Point = lastRef(t)
	}
	return v, nil
}

// lastRef returns the last non-null "$N" token. Newer exporters insert a
// count before the point reference of a vertex.
func lastRef(tokens []string) *int {
	for i := len(tokens) - 1; i >= 0; i-- {
		if !isRefToken(tokens[i]) {
			continue
		}
		if r := ParseRef(tokens[i]); r != nil {
			return r
		}
	}
	return nil
}
