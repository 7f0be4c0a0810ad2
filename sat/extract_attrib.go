package sat

import "strings"

const (
	attribNext  = 2
	attribOwner = 4
)

// extractAttrib routes any "*attrib*" type by substring, in this order:
// name, string, position, rgb_color. Everything else is a plain Attrib.
func extractAttrib(_ *Dispatcher, b Base, data string) (Entity, error) {
	tokens := strings.Fields(data)
	a := Attrib{
		Base:       b,
		NextAttrib: refAt(tokens, attribNext),
		Owner:      refAt(tokens, attribOwner),
	}

	switch {
	case strings.Contains(b.Kind, "name"):
		strs := atStrings(data)
		n := &NameAttrib{Attrib: a}
		if len(strs) > 0 {
			n.Name = strs[len(strs)-1]
		}
		return n, nil

	case strings.Contains(b.Kind, "string"):
		strs := atStrings(data)
		s := &StringAttrib{Attrib: a}
		if len(strs) > 0 {
			s.Name = strs[0]
			s.Value = strs[len(strs)-1]
		}
		return s, nil

	case strings.Contains(b.Kind, "position"):
		v, ok := lastFloats(tokens, 3)
		if !ok {
			return nil, malformed(b, 3)
		}
		return &PositionAttrib{Attrib: a, Position: vec(v, 0)}, nil

	case strings.Contains(b.Kind, "rgb_color"):
		v, ok := lastFloats(tokens, 3)
		if !ok {
			return nil, malformed(b, 3)
		}
		return &RgbColorAttrib{Attrib: a, Red: v[0], Green: v[1], Blue: v[2]}, nil
	}
	return &a, nil
}
