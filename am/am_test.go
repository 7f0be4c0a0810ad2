package am

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/satgraph/sat"
)

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper instance without user/system config
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "satgraph.db", cfg.Database.Path)
	assert.Equal(t, 1, cfg.Parser.Workers)
	assert.Equal(t, sat.DefaultPreviewLength, cfg.Parser.PreviewLength)
	assert.Equal(t, sat.DefaultMaxLineBytes, cfg.Parser.MaxLineBytes)
	assert.Equal(t, "everforest", cfg.Log.Theme)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, 500, cfg.Watch.DebounceMS)
	assert.Empty(t, cfg.Watch.MetricsAddr)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(`
[parser]
workers = 4

[database]
path = "/tmp/models.db"

[watch]
metrics_addr = ":9464"
`), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Parser.Workers)
	assert.Equal(t, sat.DefaultPreviewLength, cfg.Parser.PreviewLength, "unset keys keep defaults")
	assert.Equal(t, "/tmp/models.db", cfg.Database.Path)
	assert.Equal(t, ":9464", cfg.Watch.MetricsAddr)
}

func TestLoadFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("[parser]\nworkers = -2\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parser.workers")
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestMergeConfigFiles_Precedence(t *testing.T) {
	dir := t.TempDir()
	system := filepath.Join(dir, "system.toml")
	project := filepath.Join(dir, "project.toml")
	require.NoError(t, os.WriteFile(system, []byte("[parser]\nworkers = 2\n[database]\npath = \"system.db\"\n"), 0644))
	require.NoError(t, os.WriteFile(project, []byte("[parser]\nworkers = 8\n"), 0644))

	v := viper.New()
	SetDefaults(v)
	mergeConfigFiles(v, []string{system, filepath.Join(dir, "missing.toml"), project})

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Parser.Workers)
	assert.Equal(t, "system.db", cfg.Database.Path)
}

func TestFindProjectConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	assert.Empty(t, FindProjectConfig(nested))

	want := filepath.Join(root, ConfigFileName)
	require.NoError(t, os.WriteFile(want, []byte(""), 0644))
	assert.Equal(t, want, FindProjectConfig(nested))
}

func TestLoad_EnvOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("SATGRAPH_DATABASE_PATH", "env.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "env.db", cfg.Database.Path)

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, again, "Load caches until Reset")
}

func TestValidate_ZeroValues(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "zero workers uses parser default",
			config:  Config{Parser: ParserConfig{Workers: 0}},
			wantErr: false,
		},
		{
			name:    "negative workers is invalid",
			config:  Config{Parser: ParserConfig{Workers: -1}},
			wantErr: true,
		},
		{
			name:    "preview below minimum is invalid",
			config:  Config{Parser: ParserConfig{PreviewLength: 4}},
			wantErr: true,
		},
		{
			name:    "preview at minimum is valid",
			config:  Config{Parser: ParserConfig{PreviewLength: MinPreviewLength}},
			wantErr: false,
		},
		{
			name:    "negative max line bytes is invalid",
			config:  Config{Parser: ParserConfig{MaxLineBytes: -1}},
			wantErr: true,
		},
		{
			name:    "unknown theme is invalid",
			config:  Config{Log: LogConfig{Theme: "solarized"}},
			wantErr: true,
		},
		{
			name:    "zero debounce is valid",
			config:  Config{Watch: WatchConfig{DebounceMS: 0}},
			wantErr: false,
		},
		{
			name:    "negative debounce is invalid",
			config:  Config{Watch: WatchConfig{DebounceMS: -5}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParserOptions(t *testing.T) {
	assert.Empty(t, (&Config{}).ParserOptions())

	cfg := Config{Parser: ParserConfig{Workers: 3, PreviewLength: 40, MaxLineBytes: 1024}}
	assert.Len(t, cfg.ParserOptions(), 3)
}

func TestGetters(t *testing.T) {
	var cfg Config
	assert.Equal(t, DefaultDatabasePath, cfg.GetDatabasePath())
	assert.Equal(t, DefaultLogTheme, cfg.GetLogTheme())

	cfg.Database.Path = "x.db"
	cfg.Log.Theme = "gruvbox"
	assert.Equal(t, "x.db", cfg.GetDatabasePath())
	assert.Equal(t, "gruvbox", cfg.GetLogTheme())
}
