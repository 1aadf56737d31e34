package config

import (
	"sort"
)

// ConfigSource represents where a configuration value came from
type ConfigSource string

const (
	SourceDefault     ConfigSource = "default"
	SourceSystem      ConfigSource = "system"      // /etc/implgen/config.toml
	SourceUser        ConfigSource = "user"        // ~/.implgen/config.toml
	SourceProject     ConfigSource = "project"     // implgen.toml
	SourceEnvironment ConfigSource = "environment" // IMPLGEN_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source ConfigSource
	Path   string // file path or environment variable name
}

// SettingInfo contains metadata about a configuration setting
type SettingInfo struct {
	Key        string       `json:"key"`
	Value      interface{}  `json:"value"`
	Source     ConfigSource `json:"source"`
	SourcePath string       `json:"source_path,omitempty"`
}

// Introspection lists every effective setting with its origin
type Introspection struct {
	ProjectFile string        `json:"project_file,omitempty"`
	Settings    []SettingInfo `json:"settings"`
}

// Introspect reports the effective settings, sorted by key.
func Introspect() *Introspection {
	mu.Lock()
	defer mu.Unlock()

	v := initViper()
	keys := v.AllKeys()
	sort.Strings(keys)

	out := &Introspection{ProjectFile: projectFile, Settings: make([]SettingInfo, 0, len(keys))}
	for _, key := range keys {
		src, ok := sources[key]
		if !ok {
			src = SourceInfo{Source: SourceDefault}
		}
		out.Settings = append(out.Settings, SettingInfo{
			Key:        key,
			Value:      v.Get(key),
			Source:     src.Source,
			SourcePath: src.Path,
		})
	}
	return out
}
