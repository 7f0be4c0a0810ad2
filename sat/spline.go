package sat

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SplineType distinguishes non-rational from rational B-splines.
type SplineType string

const (
	SplineNUBS  SplineType = "NUBS"
	SplineNURBS SplineType = "NURBS"
)

// Curve subtypes with dedicated layouts. Anything else follows the
// exactcur layout.
const (
	SubtypeExpPC     = "exppc"
	SubtypeLawIntCur = "lawintcur"
)

const (
	defaultExpPCDegree  = 1
	defaultSplineDegree = 3
)

// SplineCurveData is a B-spline curve rebuilt from a "{ ... }" block.
//
// When both are present, sum(KnotMultiplicities) == Degree + 1 + len(ControlPoints)
// is expected but not enforced; Issue explains why control points were
// dropped or came up short.
type SplineCurveData struct {
	Subtype            string      `json:"subtype"`
	CurveType          SplineType  `json:"curve_type"`
	Degree             int         `json:"degree"`
	Rational           bool        `json:"rational"`
	Knots              []float64   `json:"knots"`
	KnotMultiplicities []int       `json:"knot_multiplicities"`
	ControlPoints      [][]float64 `json:"control_points"`
	Issue              string      `json:"issue,omitempty"`
}

// SplineSurfaceData is a B-spline surface rebuilt from a "{ ... }" block.
// ControlPoints is indexed [u][v].
type SplineSurfaceData struct {
	Subtype             string        `json:"subtype"`
	HasExtraZero        bool          `json:"has_extra_zero"`
	SurfaceType         SplineType    `json:"surface_type"`
	UDegree             int           `json:"u_degree"`
	VDegree             int           `json:"v_degree"`
	Rational            bool          `json:"rational"`
	UKnots              []float64     `json:"u_knots"`
	UKnotMultiplicities []int         `json:"u_knot_multiplicities"`
	VKnots              []float64     `json:"v_knots"`
	VKnotMultiplicities []int         `json:"v_knot_multiplicities"`
	ControlPoints       [][][]float64 `json:"control_points"`
	Issue               string        `json:"issue,omitempty"`
}

// controlPointSkip lists first tokens of lines that never carry coordinates.
var controlPointSkip = map[string]bool{
	"null_surface": true,
	"nullbs":       true,
	"I":            true,
	"F":            true,
	"none":         true,
	"spline":       true,
}

// blockLines splits a spline block into trimmed non-blank lines. Some
// exporters write the whole block on one tab-separated line.
func blockLines(block string) []string {
	lines := nonBlank(strings.Split(block, "\n"))
	if len(lines) == 1 && strings.Contains(lines[0], "\t") {
		lines = nonBlank(strings.Split(lines[0], "\t"))
	}
	return lines
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, l := range in {
		if t := strings.TrimSpace(l); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func splineTypeOf(tok string) SplineType {
	if tok == "nubs" {
		return SplineNUBS
	}
	return SplineNURBS
}

func isSplineKeyword(tok string) bool {
	return tok == "nubs" || tok == "nurbs"
}

func intAt(tokens []string, i, fallback int) int {
	if i < 0 || i >= len(tokens) {
		return fallback
	}
	n, err := strconv.Atoi(tokens[i])
	if err != nil {
		return fallback
	}
	return n
}

// findSplineKeyword returns the position of the first nubs/nurbs token, or -1.
func findSplineKeyword(tokens []string) int {
	for i, tok := range tokens {
		if isSplineKeyword(tok) {
			return i
		}
	}
	return -1
}

// splitKnotPairs turns interleaved (knot, multiplicity) values into parallel
// slices. A trailing unpaired knot is dropped.
func splitKnotPairs(vals []float64) ([]float64, []int) {
	n := len(vals) / 2
	knots := make([]float64, 0, n)
	mults := make([]int, 0, n)
	for i := 0; i+1 < len(vals); i += 2 {
		knots = append(knots, vals[i])
		mults = append(mults, int(math.Round(vals[i+1])))
	}
	return knots, mults
}

func sum(vals []int) int {
	total := 0
	for _, v := range vals {
		total += v
	}
	return total
}

// looksLikeControlPoint is the knot-continuation test: a line of exactly
// three floats is taken as the first control point. Knot data that happens
// to pack into three values on one line is misread; this is accepted.
func looksLikeControlPoint(line string) bool {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return false
	}
	for _, f := range fields {
		if !isFloat(f) {
			return false
		}
	}
	return true
}

// collectControlPoints scans lines for up to want coordinate rows, keeping
// the first 3 values (4 when rational, the fourth being the weight).
func collectControlPoints(lines []string, want int, rational bool) [][]float64 {
	width := 3
	if rational {
		width = 4
	}
	points := make([][]float64, 0, want)
	for _, line := range lines {
		if len(points) >= want {
			break
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || controlPointSkip[fields[0]] || strings.HasPrefix(fields[0], "@") {
			continue
		}
		row := make([]float64, 0, width)
		for _, f := range fields {
			if len(row) == width {
				break
			}
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				break
			}
			row = append(row, v)
		}
		if len(row) < 3 {
			continue
		}
		points = append(points, row)
	}
	return points
}

// ParseSplineCurve rebuilds curve data from the interior of a spline block.
// It never fails: problems leave ControlPoints empty and set Issue.
// A block with no content yields nil.
func ParseSplineCurve(block string) *SplineCurveData {
	lines := blockLines(block)
	if len(lines) == 0 {
		return nil
	}
	header := strings.Fields(lines[0])
	data := &SplineCurveData{Subtype: header[0]}

	switch data.Subtype {
	case SubtypeExpPC:
		data.CurveType = splineTypeOf(wordAt(header, 1, ""))
		data.Degree = intAt(header, 2, defaultExpPCDegree)
		data.Rational = data.CurveType == SplineNURBS
		// exppc is a parametric reference, not a literal control polygon;
		// knot lines that do not parse cleanly are dropped wholesale.
		if len(lines) > 1 {
			if vals, ok := parseFloatsStrict(lines[1]); ok {
				data.Knots, data.KnotMultiplicities = splitKnotPairs(vals)
			}
		}
		return data
	case SubtypeLawIntCur:
		data.CurveType = splineTypeOf(wordAt(header, 2, ""))
		data.Degree = intAt(header, 3, defaultSplineDegree)
	default:
		data.CurveType = SplineNUBS
		data.Degree = defaultSplineDegree
		if k := findSplineKeyword(header); k >= 0 {
			data.CurveType = splineTypeOf(header[k])
			data.Degree = intAt(header, k+1, defaultSplineDegree)
		}
	}
	data.Rational = data.CurveType == SplineNURBS

	var knotData []float64
	if len(lines) > 1 {
		knotData = parseFloats(lines[1])
	}
	start := 2
	if len(lines) > 2 && !looksLikeControlPoint(lines[2]) {
		knotData = append(knotData, parseFloats(lines[2])...)
		start = 3
	}
	data.Knots, data.KnotMultiplicities = splitKnotPairs(knotData)

	poles := sum(data.KnotMultiplicities) - data.Degree - 1
	if poles <= 0 {
		data.Issue = fmt.Sprintf("invalid pole count %d (multiplicity sum %d, degree %d)",
			poles, sum(data.KnotMultiplicities), data.Degree)
		return data
	}
	if start < len(lines) {
		data.ControlPoints = collectControlPoints(lines[start:], poles, data.Rational)
	}
	if len(data.ControlPoints) < poles {
		data.Issue = fmt.Sprintf("found %d of %d control points", len(data.ControlPoints), poles)
	}
	return data
}

// ParseSplineSurface rebuilds surface data from the interior of a spline
// block: header, U knot pairs, V knot pairs, then control points filled with
// V as the outer loop and U as the inner loop.
func ParseSplineSurface(block string) *SplineSurfaceData {
	lines := blockLines(block)
	if len(lines) == 0 {
		return nil
	}
	header := strings.Fields(lines[0])
	data := &SplineSurfaceData{
		Subtype:      header[0],
		HasExtraZero: len(header) > 1 && header[1] == "0",
	}

	off := 1
	if data.HasExtraZero {
		off = 2
	}
	if !isSplineKeyword(wordAt(header, off, "")) {
		if k := findSplineKeyword(header); k >= 0 {
			off = k
		}
	}
	data.SurfaceType = SplineNUBS
	if isSplineKeyword(wordAt(header, off, "")) {
		data.SurfaceType = splineTypeOf(header[off])
	}
	data.UDegree = intAt(header, off+1, defaultSplineDegree)
	data.VDegree = intAt(header, off+2, defaultSplineDegree)
	data.Rational = data.SurfaceType == SplineNURBS

	if len(lines) > 1 {
		data.UKnots, data.UKnotMultiplicities = splitKnotPairs(parseFloats(lines[1]))
	}
	if len(lines) > 2 {
		data.VKnots, data.VKnotMultiplicities = splitKnotPairs(parseFloats(lines[2]))
	}

	nu := sum(data.UKnotMultiplicities) + 1 - data.UDegree
	nv := sum(data.VKnotMultiplicities) + 1 - data.VDegree
	if nu <= 0 || nv <= 0 {
		data.Issue = fmt.Sprintf("invalid control grid %dx%d", nu, nv)
		return data
	}

	var points [][]float64
	if len(lines) > 3 {
		points = collectControlPoints(lines[3:], nu*nv, data.Rational)
	}
	if len(points) < nu*nv {
		data.Issue = fmt.Sprintf("found %d of %d control points for %dx%d grid", len(points), nu*nv, nu, nv)
		return data
	}

	grid := make([][][]float64, nu)
	for u := range grid {
		grid[u] = make([][]float64, nv)
	}
	i := 0
	for v := 0; v < nv; v++ {
		for u := 0; u < nu; u++ {
			grid[u][v] = points[i]
			i++
		}
	}
	data.ControlPoints = grid
	return data
}

// blockRefSlots returns the "$N" tokens inside a spline block in order,
// keeping "$-1" as a nil slot so later slots keep their positions.
func blockRefSlots(block string) []*int {
	var out []*int
	for _, tok := range strings.Fields(block) {
		if isRefToken(tok) {
			out = append(out, ParseRef(tok))
		}
	}
	return out
}

// firstSlot returns the first non-nil slot in [from, to).
func firstSlot(slots []*int, from, to int) *int {
	for i := from; i < to && i < len(slots); i++ {
		if slots[i] != nil {
			return slots[i]
		}
	}
	return nil
}

// slotAt returns slot i, nil when absent.
func slotAt(slots []*int, i int) *int {
	if i < 0 || i >= len(slots) {
		return nil
	}
	return slots[i]
}
