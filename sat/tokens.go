package sat

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseRef reads an entity reference token. "$N" and bare "N" yield N;
// "$-1", "-1" and anything non-numeric yield nil.
func ParseRef(tok string) *int {
	n, err := strconv.Atoi(strings.TrimPrefix(tok, "$"))
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// isRefToken reports whether tok is written in "$N" form.
func isRefToken(tok string) bool {
	if len(tok) < 2 || tok[0] != '$' {
		return false
	}
	_, err := strconv.Atoi(tok[1:])
	return err == nil
}

// ParseSense maps a sense word to a Sense. Variants such as "forward_v"
// resolve on their prefix.
func ParseSense(tok string) Sense {
	switch {
	case strings.HasPrefix(tok, "forward"):
		return SenseForward
	case strings.HasPrefix(tok, "reversed"):
		return SenseReversed
	case tok == "both":
		return SenseBoth
	default:
		return SenseUnknown
	}
}

func isSenseWord(tok string) bool {
	return ParseSense(tok) != SenseUnknown
}

// refAt returns the reference at position i, or nil when the record is too short.
func refAt(tokens []string, i int) *int {
	if i < 0 || i >= len(tokens) {
		return nil
	}
	return ParseRef(tokens[i])
}

// senseAt returns the sense at position i, defaulting to forward when the
// token is missing.
func senseAt(tokens []string, i int) Sense {
	if i < 0 || i >= len(tokens) {
		return SenseForward
	}
	return ParseSense(tokens[i])
}

func wordAt(tokens []string, i int, fallback string) string {
	if i < 0 || i >= len(tokens) {
		return fallback
	}
	return tokens[i]
}

// bboxAt reads six floats starting at offset when the record holds more than
// minLen tokens. Any unparseable coordinate drops the box.
func bboxAt(tokens []string, offset, minLen int) *BoundingBox {
	if len(tokens) <= minLen || offset+6 > len(tokens) {
		return nil
	}
	var vals [6]float64
	for i := range vals {
		f, err := strconv.ParseFloat(tokens[offset+i], 64)
		if err != nil {
			return nil
		}
		vals[i] = f
	}
	return &BoundingBox{
		Min: Vec3{vals[0], vals[1], vals[2]},
		Max: Vec3{vals[3], vals[4], vals[5]},
	}
}

// placeholders are keyword slots that sit between the numeric fields of
// geometry records.
var placeholders = map[string]bool{
	"I": true, "F": true, "T": true, "#": true,
	"in": true, "out": true, "double": true, "single": true,
}

// numericTokens drops "$" references and placeholder keywords and parses the
// rest as floats, silently skipping anything that is not a number.
func numericTokens(tokens []string) []float64 {
	out := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "$") || placeholders[tok] || isSenseWord(tok) {
			continue
		}
		f, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			continue
		}
		out = append(out, f)
	}
	return out
}

// lastFloats takes the final n numeric values of a record. Exporters vary the
// number of leading reference slots, so counting from the end is stable.
func lastFloats(tokens []string, n int) ([]float64, bool) {
	nums := numericTokens(tokens)
	if len(nums) < n {
		return nil, false
	}
	return nums[len(nums)-n:], true
}

func vec(vals []float64, at int) Vec3 {
	return Vec3{vals[at], vals[at+1], vals[at+2]}
}

// parseFloats parses every whitespace-separated token of s, skipping
// anything that is not a number.
func parseFloats(s string) []float64 {
	fields := strings.Fields(s)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// parseFloatsStrict parses every token of s and fails on the first non-number.
func parseFloatsStrict(s string) ([]float64, bool) {
	fields := strings.Fields(s)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, v)
	}
	return out, true
}

// isFloat reports whether tok parses as a float.
func isFloat(tok string) bool {
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

// splitFieldsN splits s on runs of whitespace into at most n fields; the last
// field keeps the remainder untouched (including embedded newlines).
func splitFieldsN(s string, n int) []string {
	var out []string
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	for len(rest) > 0 && len(out) < n-1 {
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			out = append(out, rest)
			return out
		}
		out = append(out, rest[:end])
		rest = strings.TrimLeftFunc(rest[end:], unicode.IsSpace)
	}
	if len(rest) > 0 {
		out = append(out, rest)
	}
	return out
}

// atStrings reads SAT length-prefixed strings ("@4 Box1") from data, in order.
// The length counts bytes after the single separating space, so names with
// spaces survive intact.
func atStrings(data string) []string {
	var out []string
	for i := 0; i < len(data); i++ {
		if data[i] != '@' {
			continue
		}
		j := i + 1
		for j < len(data) && data[j] >= '0' && data[j] <= '9' {
			j++
		}
		if j == i+1 {
			continue
		}
		n, err := strconv.Atoi(data[i+1 : j])
		if err != nil || j >= len(data) || data[j] != ' ' {
			continue
		}
		start := j + 1
		end := start + n
		if end > len(data) {
			end = len(data)
		}
		out = append(out, data[start:end])
		i = end - 1
	}
	return out
}
