package am

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/teranos/satgraph/sat"
)

// Default values shared by SetDefaults and the zero-value getters
const (
	DefaultWorkers      = 1
	DefaultDatabasePath = "satgraph.db"
	DefaultLogTheme     = "everforest"
	DefaultDebounceMS   = 500
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("parser.workers", DefaultWorkers)
	v.SetDefault("parser.preview_length", sat.DefaultPreviewLength)
	v.SetDefault("parser.max_line_bytes", sat.DefaultMaxLineBytes)

	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", DefaultLogTheme)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
	v.SetDefault("watch.metrics_addr", "")
}

// BindEnvVars binds the settings most often overridden per invocation
func BindEnvVars(v *viper.Viper) {
	v.BindEnv("database.path", "SATGRAPH_DATABASE_PATH")
	v.BindEnv("parser.workers", "SATGRAPH_PARSER_WORKERS")
	v.BindEnv("watch.metrics_addr", "SATGRAPH_WATCH_METRICS_ADDR")
}

// GetDatabasePath returns the configured database path
func (c *Config) GetDatabasePath() string {
	if c.Database.Path == "" {
		return DefaultDatabasePath
	}
	return c.Database.Path
}

// GetLogTheme returns the log theme (default: everforest)
func (c *Config) GetLogTheme() string {
	if c.Log.Theme == "" {
		return DefaultLogTheme
	}
	return c.Log.Theme
}

// ParserOptions turns the parser section into sat.Parser options.
// Zero values are left to the parser's own defaults.
func (c *Config) ParserOptions() []sat.Option {
	var opts []sat.Option
	if c.Parser.Workers > 0 {
		opts = append(opts, sat.WithWorkers(c.Parser.Workers))
	}
	if c.Parser.PreviewLength > 0 {
		opts = append(opts, sat.WithPreviewLength(c.Parser.PreviewLength))
	}
	if c.Parser.MaxLineBytes > 0 {
		opts = append(opts, sat.WithMaxLineBytes(c.Parser.MaxLineBytes))
	}
	return opts
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf("Config{Database: %s, Log: {Theme: %s}, Parser: {Workers: %d}}",
		c.Database.Path, c.Log.Theme, c.Parser.Workers)
}
