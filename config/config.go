// Package config loads implgen settings from TOML files and IMPLGEN_*
// environment variables.
//
// Files are merged system < user < project < environment:
//
//	/etc/implgen/config.toml
//	~/.implgen/config.toml
//	implgen.toml (nearest one walking up from the working directory)
package config

import "github.com/teranos/implgen/implement"

// Config is the effective implgen configuration
type Config struct {
	Engine   EngineConfig   `mapstructure:"engine" toml:"engine" yaml:"engine" json:"engine"`
	Output   OutputConfig   `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Snapshot SnapshotConfig `mapstructure:"snapshot" toml:"snapshot" yaml:"snapshot" json:"snapshot"`
}

// EngineConfig tunes member generation
type EngineConfig struct {
	// Strict wraps enum values that match no member in CType.
	Strict bool `mapstructure:"strict" toml:"strict" yaml:"strict" json:"strict"`
	// NotImplementedException is thrown by stub bodies.
	NotImplementedException string `mapstructure:"not_implemented_exception" toml:"not_implemented_exception" yaml:"not_implemented_exception" json:"not_implemented_exception"`
	// DisposedField is the preferred name of the dispose flag.
	DisposedField string `mapstructure:"disposed_field" toml:"disposed_field" yaml:"disposed_field" json:"disposed_field"`
	// Workers bounds batch concurrency; 0 uses the engine default.
	Workers int `mapstructure:"workers" toml:"workers" yaml:"workers" json:"workers"`
}

// OutputConfig controls how plans are printed
type OutputConfig struct {
	JSON     bool   `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
	Indent   int    `mapstructure:"indent" toml:"indent" yaml:"indent" json:"indent"`         // spaces per block level in generated code
	Language string `mapstructure:"language" toml:"language" yaml:"language" json:"language"` // emitter used for --strategy previews
}

// SnapshotConfig points at the default symbol snapshot
type SnapshotConfig struct {
	Path string `mapstructure:"path" toml:"path" yaml:"path" json:"path"` // used when plan/watch get no --snapshot
}

// EngineOptions converts the engine section for implement.NewEngine.
func (c *Config) EngineOptions() implement.Options {
	return implement.Options{
		Strict:                  c.Engine.Strict,
		NotImplementedException: c.Engine.NotImplementedException,
		DisposedField:           c.Engine.DisposedField,
		Workers:                 c.Engine.Workers,
	}
}

// File system constants
const (
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// File names searched for configuration
const (
	ProjectFileName = "implgen.toml"
	UserFileName    = "config.toml"
	EnvPrefix       = "IMPLGEN"
)
