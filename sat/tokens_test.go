package sat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/satgraph/internal/util"
)

func TestParseRef(t *testing.T) {
	tests := []struct {
		tok  string
		want *int
	}{
		{"$12", util.Ptr(12)},
		{"12", util.Ptr(12)},
		{"$0", util.Ptr(0)},
		{"$-1", nil},
		{"-1", nil},
		{"$abc", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRef(tt.tok))
		})
	}
}

func TestParseSense(t *testing.T) {
	assert.Equal(t, SenseForward, ParseSense("forward"))
	assert.Equal(t, SenseForward, ParseSense("forward_v"))
	assert.Equal(t, SenseReversed, ParseSense("reversed"))
	assert.Equal(t, SenseBoth, ParseSense("both"))
	assert.Equal(t, SenseUnknown, ParseSense("sideways"))

	assert.Equal(t, SenseForward, senseAt([]string{"a"}, 5), "missing sense defaults to forward")
}

func TestBBoxAtThreshold(t *testing.T) {
	tokens := []string{"$-1", "-1", "-1", "$-1", "$2", "$-1", "$3", "F", "0", "0", "0", "10", "10", "10"}

	// 14 tokens: exactly one more than the minimum
	box := bboxAt(tokens, 8, 13)
	require.NotNil(t, box)
	assert.Equal(t, Vec3{0, 0, 0}, box.Min)
	assert.Equal(t, Vec3{10, 10, 10}, box.Max)

	assert.Nil(t, bboxAt(tokens[:13], 8, 12), "box runs past the end")
	assert.Nil(t, bboxAt(tokens, 8, 14), "record not long enough")

	bad := append([]string(nil), tokens...)
	bad[10] = "x"
	assert.Nil(t, bboxAt(bad, 8, 13))
}

func TestNumericTokensFiltersPlaceholders(t *testing.T) {
	tokens := []string{"$-1", "I", "F", "T", "#", "forward", "reversed_v", "in", "out", "double", "single", "1.5", "abc", "-2"}
	assert.Equal(t, []float64{1.5, -2}, numericTokens(tokens))
}

func TestLastFloats(t *testing.T) {
	vals, ok := lastFloats([]string{"$-1", "-1", "-1", "$-1", "145.3", "31.0", "20", "#"}, 3)
	require.True(t, ok)
	assert.Equal(t, []float64{145.3, 31.0, 20}, vals)

	_, ok = lastFloats([]string{"$-1", "1"}, 3)
	assert.False(t, ok)
}

func TestParseFloatsStrict(t *testing.T) {
	vals, ok := parseFloatsStrict("0 2 1 2")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 2, 1, 2}, vals)

	_, ok = parseFloatsStrict("0 2 x 2")
	assert.False(t, ok)
}

func TestSplitFieldsN(t *testing.T) {
	got := splitFieldsN("  12   intcurve-curve $-1 { exactcur\n 0 3 }", 3)
	require.Len(t, got, 3)
	assert.Equal(t, "12", got[0])
	assert.Equal(t, "intcurve-curve", got[1])
	assert.Equal(t, "$-1 { exactcur\n 0 3 }", got[2])

	assert.Equal(t, []string{"1", "body"}, splitFieldsN("1 body", 3))
	assert.Empty(t, splitFieldsN("   ", 3))
}

func TestAtStrings(t *testing.T) {
	assert.Equal(t, []string{"Box1"}, atStrings("$-1 1 1 @4 Box1 #"))
	assert.Equal(t, []string{"my part", "steel"}, atStrings("@7 my part @5 steel #"))
	assert.Empty(t, atStrings("no strings here"))
	assert.Equal(t, []string{"ab"}, atStrings("@9 ab"), "length past the end is clamped")
}
