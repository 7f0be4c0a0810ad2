package logger

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func stripANSI(str string) string {
	return regexp.MustCompile(`\x1b\[[0-9;]*m`).ReplaceAllString(str, "")
}

func TestMinimalEncoderKeepsAllFields(t *testing.T) {
	encoder := newMinimalEncoder()
	entry := zapcore.Entry{
		Level:      zapcore.WarnLevel,
		Time:       time.Date(2025, 11, 17, 12, 39, 41, 0, time.UTC),
		LoggerName: "sat.parser",
		Message:    "Skipping malformed record",
	}
	fields := []zapcore.Field{
		zap.Int("entity_index", 18),
		zap.String("entity_type", "point"),
		zap.String("preview", "-18 point $-1 -1"),
		zap.Bool("recovered", true),
		zap.Float64("tolerance", 1e-10),
	}

	buf, err := encoder.EncodeEntry(entry, fields)
	require.NoError(t, err)
	out := stripANSI(buf.String())

	assert.Contains(t, out, "12:39:41")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "s.parser")
	assert.Contains(t, out, "Skipping malformed record")
	assert.Contains(t, out, "entity_index=18")
	assert.Contains(t, out, "entity_type=point")
	assert.Contains(t, out, "preview=-18 point $-1 -1")
	assert.Contains(t, out, "recovered=true")
	assert.Contains(t, out, "tolerance=1e-10")
}

func TestMinimalEncoderInfoHasNoLevel(t *testing.T) {
	encoder := newMinimalEncoder()
	buf, err := encoder.EncodeEntry(zapcore.Entry{
		Level:   zapcore.InfoLevel,
		Time:    time.Now(),
		Message: "Parsed file",
	}, nil)
	require.NoError(t, err)

	out := stripANSI(buf.String())
	assert.NotContains(t, out, "INFO")
	assert.Contains(t, out, "Parsed file\n")
}

func TestAbbreviateName(t *testing.T) {
	assert.Equal(t, "s.parser", abbreviateName("sat.parser"))
	assert.Equal(t, "db", abbreviateName("db"))
}

func TestSetThemeIgnoresUnknown(t *testing.T) {
	t.Cleanup(func() { SetTheme("everforest") })

	SetTheme("gruvbox")
	assert.Equal(t, "gruvbox", currentTheme)
	SetTheme("solarized")
	assert.Equal(t, "gruvbox", currentTheme)
}
