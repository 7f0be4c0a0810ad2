package sat

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/satgraph/errors"
)

const sesamHeader = "700 0 1 0\n" +
	"18 SESAM - gmGeometry 14 ACIS 33.0.1 NT 24 Mon Nov 17 12:39:41 2025\n" +
	"1000 9.9999999999999995e-07 1.0000000000000001e-10\n"

func TestReadHeader(t *testing.T) {
	h, err := ReadHeader(strings.NewReader(sesamHeader))
	require.NoError(t, err)

	assert.Equal(t, 700, h.VersionCode)
	assert.Equal(t, 0, h.NumRecords)
	assert.Equal(t, 1, h.NumEntities)
	assert.Equal(t, 0, h.Flags)
	assert.Equal(t, "18 SESAM - gmGeometry 14", h.ProductID)
	require.NotNil(t, h.ACISVersion)
	assert.Equal(t, ACISVersion{Major: 33, Minor: 0, Point: 1}, *h.ACISVersion)
	assert.Equal(t, "NT", h.Platform)
	assert.Equal(t, "24 Mon Nov 17 12:39:41 2025", h.Date)
	assert.Equal(t, 1000, h.UnitsCode)
	assert.InDelta(t, 1e-6, h.Resolution, 1e-18)
	assert.InDelta(t, 1e-10, h.Tolerance, 1e-22)
}

func TestReadHeaderDefaults(t *testing.T) {
	h, err := ReadHeader(strings.NewReader("400\nSomeTool 1.0\n\n"))
	require.NoError(t, err)

	assert.Equal(t, 400, h.VersionCode)
	assert.Equal(t, 0, h.NumRecords)
	assert.Equal(t, "SomeTool 1.0", h.ProductID)
	assert.Nil(t, h.ACISVersion)
	assert.Empty(t, h.Date)
	assert.Equal(t, DefaultUnitsCode, h.UnitsCode)
	assert.Equal(t, DefaultResolution, h.Resolution)
	assert.Equal(t, DefaultTolerance, h.Tolerance)
}

func TestReadHeaderBadVersionIsNotFatal(t *testing.T) {
	h, err := ReadHeader(strings.NewReader("700 0 1 0\nTool ACIS banana NT\n1000 x 1e-10\n"))
	require.NoError(t, err)
	assert.Nil(t, h.ACISVersion)
	assert.Equal(t, "NT", h.Platform)
	assert.Equal(t, DefaultResolution, h.Resolution, "unparseable resolution keeps the default")
}

func TestReadHeaderFatal(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"truncated", "700 0 1 0\nTool ACIS 7.0 NT\n"},
		{"missing version code", "\nTool\n1000\n"},
		{"non-numeric version code", "seven 0 1 0\nTool\n1000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadHeader(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.IsMalformedHeader(err))
		})
	}
}

func TestParseACISVersion(t *testing.T) {
	v := ParseACISVersion("7.0")
	require.NotNil(t, v)
	assert.Equal(t, "7.0.0", v.String())
	assert.True(t, v.AtLeast(7, 0))
	assert.False(t, v.AtLeast(21, 0))

	v = ParseACISVersion("33.0.1")
	require.NotNil(t, v)
	assert.True(t, v.AtLeast(21, 0))

	assert.Nil(t, ParseACISVersion("banana"))
}

func TestACISVersionSatisfies(t *testing.T) {
	v := ACISVersion{Major: 33, Minor: 0, Point: 1}

	ok, err := v.Satisfies(">= 21")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = v.Satisfies("7.x")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = v.Satisfies("not a constraint")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}
