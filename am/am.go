package am

// Config represents the satgraph configuration
type Config struct {
	Parser   ParserConfig   `mapstructure:"parser" toml:"parser" json:"parser"`
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Log      LogConfig      `mapstructure:"log" toml:"log" json:"log"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch" json:"watch"`
}

// ParserConfig configures the SAT record parser
type ParserConfig struct {
	Workers       int `mapstructure:"workers" toml:"workers" json:"workers"`                      // concurrent record dispatchers (default: 1)
	PreviewLength int `mapstructure:"preview_length" toml:"preview_length" json:"preview_length"` // characters of record text kept in diagnostics
	MaxLineBytes  int `mapstructure:"max_line_bytes" toml:"max_line_bytes" json:"max_line_bytes"` // longest accepted physical line
}

// DatabaseConfig configures the SQLite entity store
type DatabaseConfig struct {
	Path string `mapstructure:"path" toml:"path" json:"path"`
}

// LogConfig configures log output
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" json:"json"`
	Theme string `mapstructure:"theme" toml:"theme" json:"theme"` // Color theme: gruvbox, everforest
}

// WatchConfig configures `satgraph watch`
type WatchConfig struct {
	DebounceMS  int    `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms"`
	MetricsAddr string `mapstructure:"metrics_addr" toml:"metrics_addr" json:"metrics_addr"` // empty disables the Prometheus endpoint
}

// File permission constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// ConfigFileName is the file name searched for in system, user and project locations
const ConfigFileName = "satgraph.toml"
