package sat

import "strings"

// Numeric value counts taken from the end of each geometry record.
const (
	pointValues     = 3  // x y z
	straightValues  = 6  // origin, direction
	ellipseValues   = 10 // center, normal, major axis, radius ratio
	planeValues     = 9  // origin, normal, u direction
	coneValues      = 12 // origin, axis, major axis, ratio, sine, cosine
	cylinderValues  = 10 // origin, axis, major axis, radius
	sphereValues    = 10 // center, radius, pole, equator
	torusValues     = 11 // center, axis, major axis, major radius, minor radius
	transformValues = 13 // 3x3 rotation, translation, scale
)

func extractPoint(_ *Dispatcher, b Base, data string) (Entity, error) {
	v, ok := lastFloats(strings.Fields(data), pointValues)
	if !ok {
		return nil, malformed(b, pointValues)
	}
	return &Point{Base: b, X: v[0], Y: v[1], Z: v[2]}, nil
}

func extractStraight(_ *Dispatcher, b Base, data string) (Entity, error) {
	v, ok := lastFloats(strings.Fields(data), straightValues)
	if !ok {
		return nil, malformed(b, straightValues)
	}
	return &StraightCurve{Base: b, Origin: vec(v, 0), Direction: vec(v, 3)}, nil
}

func extractEllipse(_ *Dispatcher, b Base, data string) (Entity, error) {
	v, ok := lastFloats(strings.Fields(data), ellipseValues)
	if !ok {
		return nil, malformed(b, ellipseValues)
	}
	return &EllipseCurve{
		Base:        b,
		Center:      vec(v, 0),
		Normal:      vec(v, 3),
		MajorAxis:   vec(v, 6),
		RadiusRatio: v[9],
	}, nil
}

func extractPlane(_ *Dispatcher, b Base, data string) (Entity, error) {
	v, ok := lastFloats(strings.Fields(data), planeValues)
	if !ok {
		return nil, malformed(b, planeValues)
	}
	return &PlaneSurface{Base: b, Origin: vec(v, 0), Normal: vec(v, 3), UDirection: vec(v, 6)}, nil
}

func extractCone(_ *Dispatcher, b Base, data string) (Entity, error) {
	v, ok := lastFloats(strings.Fields(data), coneValues)
	if !ok {
		return nil, malformed(b, coneValues)
	}
	return &ConeSurface{
		Base:        b,
		Origin:      vec(v, 0),
		Axis:        vec(v, 3),
		MajorAxis:   vec(v, 6),
		RadiusRatio: v[9],
		SineAngle:   v[10],
		CosineAngle: v[11],
	}, nil
}

func extractCylinder(_ *Dispatcher, b Base, data string) (Entity, error) {
	v, ok := lastFloats(strings.Fields(data), cylinderValues)
	if !ok {
		return nil, malformed(b, cylinderValues)
	}
	return &CylinderSurface{
		Base:      b,
		Origin:    vec(v, 0),
		Axis:      vec(v, 3),
		MajorAxis: vec(v, 6),
		Radius:    v[9],
	}, nil
}

func extractSphere(_ *Dispatcher, b Base, data string) (Entity, error) {
	v, ok := lastFloats(strings.Fields(data), sphereValues)
	if !ok {
		return nil, malformed(b, sphereValues)
	}
	return &SphereSurface{
		Base:    b,
		Center:  vec(v, 0),
		Radius:  v[3],
		Pole:    vec(v, 4),
		Equator: vec(v, 7),
	}, nil
}

func extractTorus(_ *Dispatcher, b Base, data string) (Entity, error) {
	v, ok := lastFloats(strings.Fields(data), torusValues)
	if !ok {
		return nil, malformed(b, torusValues)
	}
	return &TorusSurface{
		Base:        b,
		Center:      vec(v, 0),
		Axis:        vec(v, 3),
		MajorAxis:   vec(v, 6),
		MajorRadius: v[9],
		MinorRadius: v[10],
	}, nil
}

// firstSense returns the first sense word in tokens, or forward.
func firstSense(tokens []string) Sense {
	for _, tok := range tokens {
		if s := ParseSense(tok); s != SenseUnknown {
			return s
		}
	}
	return SenseForward
}

func extractIntcurve(d *Dispatcher, b Base, data string) (Entity, error) {
	head, block, _, hasBlock := splitBlock(data)
	c := &IntcurveCurve{Base: b, Sense: firstSense(strings.Fields(head))}
	if !hasBlock {
		return c, nil
	}
	c.SplineData = ParseSplineCurve(block)
	if c.SplineData != nil {
		d.reportSpline(b, c.SplineData.Subtype, c.SplineData.Issue, len(c.SplineData.ControlPoints))
	}
	// Trailing slots are surf1 surf2 pc1 pc2
	slots := blockRefSlots(block)
	c.Surface = firstSlot(slots, 0, 2)
	c.PCurve = firstSlot(slots, 2, 4)
	return c, nil
}

// pcurveHeaderRefs is where owned references start in a pcurve header.
const pcurveHeaderRefs = 4

func extractPCurve(d *Dispatcher, b Base, data string) (Entity, error) {
	head, block, _, hasBlock := splitBlock(data)
	p := &PCurve{Base: b}
	ht := strings.Fields(head)
	for i := pcurveHeaderRefs; i < len(ht); i++ {
		if !isRefToken(ht[i]) {
			continue
		}
		if r := ParseRef(ht[i]); r != nil {
			p.Intcurve = r
			break
		}
	}
	if !hasBlock {
		return p, nil
	}
	p.SplineData = ParseSplineCurve(block)
	if p.SplineData != nil {
		d.reportSpline(b, p.SplineData.Subtype, p.SplineData.Issue, len(p.SplineData.ControlPoints))
	}
	// Block slots are surface then intcurve
	slots := blockRefSlots(block)
	p.Surface = slotAt(slots, 0)
	if p.Intcurve == nil {
		p.Intcurve = slotAt(slots, 1)
	}
	return p, nil
}

func extractSplineSurface(d *Dispatcher, b Base, data string) (Entity, error) {
	head, block, _, hasBlock := splitBlock(data)
	s := &SplineSurface{Base: b, Sense: firstSense(strings.Fields(head))}
	if !hasBlock {
		return s, nil
	}
	s.SplineData = ParseSplineSurface(block)
	if s.SplineData != nil {
		d.reportSpline(b, s.SplineData.Subtype, s.SplineData.Issue, len(s.SplineData.ControlPoints))
	}
	return s, nil
}

// extractTransform reads a 3x3 rotation, a translation and a scale from the
// last 13 values, plus the rotate/reflect/shear flag words. Shorter records
// keep only the scale.
func extractTransform(_ *Dispatcher, b Base, data string) (Entity, error) {
	tokens := strings.Fields(data)
	t := &Transform{Base: b, Scale: 1}
	if v, ok := lastFloats(tokens, transformValues); ok {
		copy(t.Rotation[:], v[:9])
		t.Translation = vec(v, 9)
		t.Scale = v[12]
	} else if nums := numericTokens(tokens); len(nums) > 0 {
		t.Scale = nums[len(nums)-1]
	}
	for _, tok := range tokens {
		switch tok {
		case "rotate":
			t.Rotate = true
		case "reflect":
			t.Reflect = true
		case "shear":
			t.Shear = true
		}
	}
	return t, nil
}
