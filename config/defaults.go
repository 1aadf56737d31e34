package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/implgen/implement"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	engine := implement.DefaultOptions()

	v.SetDefault("engine.strict", engine.Strict)
	v.SetDefault("engine.not_implemented_exception", engine.NotImplementedException)
	v.SetDefault("engine.disposed_field", engine.DisposedField)
	v.SetDefault("engine.workers", engine.Workers)

	v.SetDefault("output.json", false)
	v.SetDefault("output.indent", 4)
	v.SetDefault("output.language", "vb")

	v.SetDefault("snapshot.path", "")
}

// envKeys maps every key to its IMPLGEN_* variable.
var envKeys = map[string]string{
	"engine.strict":                    "IMPLGEN_ENGINE_STRICT",
	"engine.not_implemented_exception": "IMPLGEN_ENGINE_NOT_IMPLEMENTED_EXCEPTION",
	"engine.disposed_field":            "IMPLGEN_ENGINE_DISPOSED_FIELD",
	"engine.workers":                   "IMPLGEN_ENGINE_WORKERS",
	"output.json":                      "IMPLGEN_OUTPUT_JSON",
	"output.indent":                    "IMPLGEN_OUTPUT_INDENT",
	"output.language":                  "IMPLGEN_OUTPUT_LANGUAGE",
	"snapshot.path":                    "IMPLGEN_SNAPSHOT_PATH",
}

// BindEnvVars binds every key to its IMPLGEN_* variable so that Unmarshal
// sees environment overrides for keys no file mentions.
func BindEnvVars(v *viper.Viper) {
	for key, env := range envKeys {
		v.BindEnv(key, env)
	}
}

// Default returns the configuration with nothing but defaults applied.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := LoadWithViper(v)
	if err != nil {
		// Defaults always unmarshal.
		panic(err)
	}
	return cfg
}
