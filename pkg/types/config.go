package types

// IndexBackend selects the record index implementation.
type IndexBackend string

const (
	BackendMemory IndexBackend = "memory"
	BackendSQLite IndexBackend = "sqlite"
)

// DefaultMaxRange is the largest accepted distance between the bounds of a
// numeric citation range. Wider "ranges" are usually hyphenated text.
const DefaultMaxRange = 20

// MatcherConfig holds settings for reference marker matching.
type MatcherConfig struct {
	// MaxRange bounds numeric range expansion: a range a-b expands only when
	// b-a < MaxRange (default 20).
	MaxRange int `json:"max_range" yaml:"max_range" mapstructure:"max_range"`

	// IndexBackend selects the record index: memory or sqlite.
	IndexBackend IndexBackend `json:"index_backend" yaml:"index_backend" mapstructure:"index_backend"`
}

// StoreConfig holds settings for the bibliography store.
type StoreConfig struct {
	// Dir is the base directory for the store (contains records/, index/).
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is text or json (default text).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// MetricsConfig controls Prometheus counter export.
type MetricsConfig struct {
	// File is a node-exporter textfile path. Empty disables the export.
	File string `json:"file" yaml:"file" mapstructure:"file"`
}

// Config groups all citematch settings.
type Config struct {
	Matcher MatcherConfig `json:"matcher" yaml:"matcher" mapstructure:"matcher"`
	Store   StoreConfig   `json:"store" yaml:"store" mapstructure:"store"`
	Logging LoggingConfig `json:"logging" yaml:"logging" mapstructure:"logging"`
	Metrics MetricsConfig `json:"metrics" yaml:"metrics" mapstructure:"metrics"`
}

// DefaultConfig returns the configuration used when no file or flag
// overrides a setting.
func DefaultConfig() Config {
	return Config{
		Matcher: MatcherConfig{
			MaxRange:     DefaultMaxRange,
			IndexBackend: BackendMemory,
		},
		Store: StoreConfig{
			Dir: "bibliography",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
