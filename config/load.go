package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/implgen/errors"
)

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper
	sources       map[string]SourceInfo
	projectFile   string
)

// SystemConfigPath is the lowest-precedence config file.
var SystemConfigPath = "/etc/implgen/config.toml"

// Load reads the configuration once and caches it until Reset.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	cfg, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	globalConfig = cfg
	return globalConfig, nil
}

// GetViper returns the Viper instance behind Load.
func GetViper() *viper.Viper {
	mu.Lock()
	defer mu.Unlock()
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, nil
}

// LoadFromFile loads one file over the defaults, ignoring every other source.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	cfg, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config file %s", path)
	}
	return cfg, nil
}

// Reset clears the cached configuration
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	sources = nil
	projectFile = ""
}

// ProjectFile returns the implgen.toml found by the last load, if any.
func ProjectFile() string {
	mu.Lock()
	defer mu.Unlock()
	initViper()
	return projectFile
}

// initViper builds the merged Viper instance. Callers hold mu.
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	BindEnvVars(v)
	SetDefaults(v)

	sources = map[string]SourceInfo{}
	for _, key := range v.AllKeys() {
		sources[key] = SourceInfo{Source: SourceDefault}
	}

	wd, _ := os.Getwd()
	projectFile = findProjectConfig(wd)
	mergeConfigFiles(v, projectFile)

	for key, env := range envKeys {
		if _, ok := os.LookupEnv(env); ok {
			sources[key] = SourceInfo{Source: SourceEnvironment, Path: env}
		}
	}

	viperInstance = v
	return v
}

// UserConfigPath returns ~/.implgen/config.toml, or "" without a home directory.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".implgen", UserFileName)
}

// findProjectConfig walks up from dir looking for implgen.toml.
func findProjectConfig(dir string) string {
	if dir == "" {
		return ""
	}
	for {
		path := filepath.Join(dir, ProjectFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges the config files in precedence order, recording
// which file each key came from.
func mergeConfigFiles(v *viper.Viper, project string) {
	layers := []struct {
		path   string
		source ConfigSource
	}{
		{SystemConfigPath, SourceSystem},
		{UserConfigPath(), SourceUser},
		{project, SourceProject},
	}

	for _, layer := range layers {
		if layer.path == "" {
			continue
		}
		if _, err := os.Stat(layer.path); err != nil {
			continue
		}

		tmp := viper.New()
		tmp.SetConfigFile(layer.path)
		tmp.SetConfigType("toml")
		if err := tmp.ReadInConfig(); err != nil {
			continue
		}
		// MergeConfigMap keeps file values below environment overrides.
		if err := v.MergeConfigMap(tmp.AllSettings()); err != nil {
			continue
		}
		for _, key := range tmp.AllKeys() {
			sources[key] = SourceInfo{Source: layer.source, Path: layer.path}
		}
	}
}
