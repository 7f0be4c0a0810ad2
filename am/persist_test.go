package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	return cfg
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFileName)
	cfg := defaultConfig(t)
	cfg.Parser.Workers = 6
	cfg.Watch.MetricsAddr = ":9464"

	require.NoError(t, Save(path, cfg))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveRotatesBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	cfg := defaultConfig(t)

	for workers := 1; workers <= 5; workers++ {
		cfg.Parser.Workers = workers
		require.NoError(t, Save(path, cfg))
	}

	for i := 1; i <= 3; i++ {
		_, err := os.Stat(backupPath(path, i))
		assert.NoError(t, err, ".back%d", i)
	}
	_, err := os.Stat(backupPath(path, 4))
	assert.True(t, os.IsNotExist(err))

	back1, err := LoadFromFile(backupPath(path, 1))
	require.NoError(t, err)
	assert.Equal(t, 4, back1.Parser.Workers)

	back3, err := LoadFromFile(backupPath(path, 3))
	require.NoError(t, err)
	assert.Equal(t, 2, back3.Parser.Workers)
}

func TestSaveRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	err := Save(path, &Config{Parser: ParserConfig{Workers: -1}})
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRender(t *testing.T) {
	out, err := Render(defaultConfig(t))
	require.NoError(t, err)
	assert.Contains(t, out, "[parser]")
	assert.Contains(t, out, "workers = 1")
	assert.Contains(t, out, `path = "satgraph.db"`)
	assert.Contains(t, out, "[watch]")
}
