package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/satgraph/internal/util"
)

const lawintcurBlock = `lawintcur full nubs 3 open 4
0 3 4.0199502484483425 1 10.049875621120814 1 11.557356964288923 3
145.30000000000001 31 20
146.80000000000001 32.5 20
148.19999999999999 34 20
150 35.700000000000003 20
151 36 20
152 37 20
`

func TestParseSplineCurveLawintcur(t *testing.T) {
	data := ParseSplineCurve(lawintcurBlock)
	require.NotNil(t, data)

	assert.Equal(t, "lawintcur", data.Subtype)
	assert.Equal(t, SplineNUBS, data.CurveType)
	assert.False(t, data.Rational)
	assert.Equal(t, 3, data.Degree)
	assert.Equal(t, []float64{0, 4.0199502484483425, 10.049875621120814, 11.557356964288923}, data.Knots)
	assert.Equal(t, []int{3, 1, 1, 3}, data.KnotMultiplicities)

	poles := sum(data.KnotMultiplicities) - data.Degree - 1
	require.Equal(t, 4, poles)
	require.Len(t, data.ControlPoints, poles)
	assert.InDeltaSlice(t, []float64{145.3, 31, 20}, data.ControlPoints[0], 1e-10)
	assert.InDeltaSlice(t, []float64{150, 35.7, 20}, data.ControlPoints[3], 1e-10)
	assert.Empty(t, data.Issue)
}

func TestParseSplineCurveExactcurFull(t *testing.T) {
	block := ` exactcur full 0 nubs 3 open 2
 0 3 4 3
 145.3 31.0 20
 150 35.7 20
 spline $10 $-1 $13 `
	data := ParseSplineCurve(block)
	require.NotNil(t, data)

	assert.Equal(t, "exactcur", data.Subtype)
	assert.Equal(t, 3, data.Degree)
	assert.Equal(t, []float64{0, 4}, data.Knots)
	assert.Equal(t, []int{3, 3}, data.KnotMultiplicities)
	require.Len(t, data.ControlPoints, 2)
	assert.Equal(t, []float64{145.3, 31.0, 20}, data.ControlPoints[0])
	assert.Equal(t, []float64{150, 35.7, 20}, data.ControlPoints[1])

	assert.Equal(t, []*int{util.Ptr(10), nil, util.Ptr(13)}, blockRefSlots(block))
}

func TestParseSplineCurveKnotContinuation(t *testing.T) {
	// Line 2 holds four values, so it extends the knot data.
	block := `exactcur nubs 3 open 4
0 4 1 1
2 1 3 4
0 0 0
1 0 0
2 1 0
3 1 0
4 2 0
5 2 0
`
	data := ParseSplineCurve(block)
	require.NotNil(t, data)
	assert.Equal(t, []float64{0, 1, 2, 3}, data.Knots)
	assert.Equal(t, []int{4, 1, 1, 4}, data.KnotMultiplicities)
	require.Len(t, data.ControlPoints, 6)
	assert.Equal(t, []float64{0, 0, 0}, data.ControlPoints[0])
	assert.Equal(t, []float64{5, 2, 0}, data.ControlPoints[5])
}

func TestParseSplineCurveThreeValueKnotLineIsReadAsPoint(t *testing.T) {
	// Knot data that packs into three values on the continuation line is
	// taken as the first control point.
	block := `exactcur nubs 1 open 3
0 2 1
1 2 2
5 5 5
`
	data := ParseSplineCurve(block)
	require.NotNil(t, data)
	assert.Equal(t, []float64{0}, data.Knots)
	assert.Equal(t, []int{2}, data.KnotMultiplicities)
	assert.Empty(t, data.ControlPoints)
	assert.NotEmpty(t, data.Issue)
}

func TestParseSplineCurveExppc(t *testing.T) {
	data := ParseSplineCurve("exppc nurbs 2\n0 3 1 3\n1 2 3\n")
	require.NotNil(t, data)
	assert.Equal(t, SplineNURBS, data.CurveType)
	assert.True(t, data.Rational)
	assert.Equal(t, 2, data.Degree)
	assert.Equal(t, []float64{0, 1}, data.Knots)
	assert.Equal(t, []int{3, 3}, data.KnotMultiplicities)
	assert.Empty(t, data.ControlPoints)

	t.Run("default degree", func(t *testing.T) {
		data := ParseSplineCurve("exppc nubs")
		assert.Equal(t, 1, data.Degree)
		assert.Equal(t, SplineNUBS, data.CurveType)
	})

	t.Run("unparseable knots are dropped", func(t *testing.T) {
		data := ParseSplineCurve("exppc nubs 1\n0 2 oops 2\n")
		assert.Empty(t, data.Knots)
		assert.Empty(t, data.KnotMultiplicities)
		assert.Empty(t, data.Issue)
	})
}

func TestParseSplineCurveInvalidPoleCount(t *testing.T) {
	data := ParseSplineCurve("exactcur nubs 3 open 2\n0 1 1 1\n0 0 0\n")
	require.NotNil(t, data)
	assert.Empty(t, data.ControlPoints)
	assert.Contains(t, data.Issue, "invalid pole count")
}

func TestParseSplineCurveShortControlPolygon(t *testing.T) {
	data := ParseSplineCurve("exactcur nubs 1 open 2\n0 2 1 2\n0 0 0\n")
	require.NotNil(t, data)
	assert.Len(t, data.ControlPoints, 1)
	assert.Contains(t, data.Issue, "found 1 of 2")
}

func TestParseSplineCurveSkipsPlaceholderLines(t *testing.T) {
	block := `exactcur nurbs 1 open 2
0 2 1 2
null_surface
@7 surface
I I
1 2 3 0.5 99
nullbs
4 5
6 7 8 1
`
	data := ParseSplineCurve(block)
	require.NotNil(t, data)
	require.Len(t, data.ControlPoints, 2)
	assert.Equal(t, []float64{1, 2, 3, 0.5}, data.ControlPoints[0], "weight kept, extra value dropped")
	assert.Equal(t, []float64{6, 7, 8, 1}, data.ControlPoints[1], "line with two values skipped")
}

func TestParseSplineCurveTabSeparated(t *testing.T) {
	data := ParseSplineCurve("exactcur nubs 1 open 2\t0 2 1 2\t0 0 0\t1 1 1")
	require.NotNil(t, data)
	assert.Equal(t, []int{2, 2}, data.KnotMultiplicities)
	require.Len(t, data.ControlPoints, 2)
	assert.Equal(t, []float64{1, 1, 1}, data.ControlPoints[1])
}

func TestParseSplineCurveEmpty(t *testing.T) {
	assert.Nil(t, ParseSplineCurve(""))
	assert.Nil(t, ParseSplineCurve(" \n \n"))
}

func TestParseSplineSurfaceGrid(t *testing.T) {
	block := ` exactsur full 0 nubs 1 1 both
 0 1 1 1
 0 1 1 1 2 1
 0 0 0
 1 0 0
 0 1 0
 1 1 0
 0 2 1
 1 2 1
 `
	data := ParseSplineSurface(block)
	require.NotNil(t, data)

	assert.Equal(t, "exactsur", data.Subtype)
	assert.False(t, data.HasExtraZero)
	assert.Equal(t, SplineNUBS, data.SurfaceType)
	assert.Equal(t, 1, data.UDegree)
	assert.Equal(t, 1, data.VDegree)
	assert.Equal(t, []float64{0, 1}, data.UKnots)
	assert.Equal(t, []float64{0, 1, 2}, data.VKnots)

	// (2+1-1) x (3+1-1), V outer and U inner
	require.Len(t, data.ControlPoints, 2)
	require.Len(t, data.ControlPoints[0], 3)
	assert.Equal(t, []float64{0, 0, 0}, data.ControlPoints[0][0])
	assert.Equal(t, []float64{1, 0, 0}, data.ControlPoints[1][0])
	assert.Equal(t, []float64{0, 1, 0}, data.ControlPoints[0][1])
	assert.Equal(t, []float64{1, 2, 1}, data.ControlPoints[1][2])
	assert.Empty(t, data.Issue)
}

func TestParseSplineSurfaceExtraZero(t *testing.T) {
	data := ParseSplineSurface("exactsur 0 nurbs 2 3\n0 3 1 3\n0 4 1 4\n")
	require.NotNil(t, data)
	assert.True(t, data.HasExtraZero)
	assert.Equal(t, SplineNURBS, data.SurfaceType)
	assert.True(t, data.Rational)
	assert.Equal(t, 2, data.UDegree)
	assert.Equal(t, 3, data.VDegree)
}

func TestParseSplineSurfacePositionalLayout(t *testing.T) {
	data := ParseSplineSurface("exactsur nubs 2 1\n")
	require.NotNil(t, data)
	assert.False(t, data.HasExtraZero)
	assert.Equal(t, 2, data.UDegree)
	assert.Equal(t, 1, data.VDegree)
}

func TestParseSplineSurfaceTooFewPoints(t *testing.T) {
	data := ParseSplineSurface("exactsur nubs 1 1\n0 1 1 1\n0 1 1 1\n0 0 0\n1 0 0\n")
	require.NotNil(t, data)
	assert.Empty(t, data.ControlPoints)
	assert.Contains(t, data.Issue, "found 2 of 4")
}

func TestParseSplineSurfaceInvalidGrid(t *testing.T) {
	data := ParseSplineSurface("exactsur nubs 3 3\n0 1\n0 1\n")
	require.NotNil(t, data)
	assert.Empty(t, data.ControlPoints)
	assert.Contains(t, data.Issue, "invalid control grid")
}
