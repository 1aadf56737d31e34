package snapshot

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/teranos/implgen/errors"
)

// SchemaVersion is the document schema written by this version of implgen.
const SchemaVersion = "1.0.0"

// supportedSchemas accepts every 1.x document.
const supportedSchemas = ">= 1.0.0, < 2.0.0"

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.NewInvalidRequestf("unsupported snapshot extension %q (want .yaml, .yml, .toml or .json)", filepath.Ext(path))
}

// Document is the on-disk form of a symbol snapshot.
type Document struct {
	Version  string       `yaml:"version" toml:"version" json:"version"`
	Types    []TypeDoc    `yaml:"types" toml:"types" json:"types"`
	Requests []RequestDoc `yaml:"requests,omitempty" toml:"requests,omitempty" json:"requests,omitempty"`
}

// TypeDoc declares one type. Interfaces list members as contract
// declarations; classes and structures list the members they already have.
type TypeDoc struct {
	Name       string         `yaml:"name" toml:"name" json:"name"`
	Kind       string         `yaml:"kind" toml:"kind" json:"kind"`
	TypeParams []TypeParamDoc `yaml:"type_params,omitempty" toml:"type_params,omitempty" json:"type_params,omitempty"`
	Abstract   bool           `yaml:"abstract,omitempty" toml:"abstract,omitempty" json:"abstract,omitempty"`
	Sealed     bool           `yaml:"sealed,omitempty" toml:"sealed,omitempty" json:"sealed,omitempty"`
	Base       string         `yaml:"base,omitempty" toml:"base,omitempty" json:"base,omitempty"`
	Interfaces []string       `yaml:"interfaces,omitempty" toml:"interfaces,omitempty" json:"interfaces,omitempty"`
	Members    []MemberDoc    `yaml:"members,omitempty" toml:"members,omitempty" json:"members,omitempty"`

	// Enums
	Flags      bool           `yaml:"flags,omitempty" toml:"flags,omitempty" json:"flags,omitempty"`
	Underlying string         `yaml:"underlying,omitempty" toml:"underlying,omitempty" json:"underlying,omitempty"`
	Values     []EnumValueDoc `yaml:"values,omitempty" toml:"values,omitempty" json:"values,omitempty"`

	// Delegates
	Invoke []ParamDoc `yaml:"invoke,omitempty" toml:"invoke,omitempty" json:"invoke,omitempty"`
}

type TypeParamDoc struct {
	Name        string   `yaml:"name" toml:"name" json:"name"`
	Constraints []string `yaml:"constraints,omitempty" toml:"constraints,omitempty" json:"constraints,omitempty"`
	Class       bool     `yaml:"class,omitempty" toml:"class,omitempty" json:"class,omitempty"`
	Structure   bool     `yaml:"structure,omitempty" toml:"structure,omitempty" json:"structure,omitempty"`
	New         bool     `yaml:"new,omitempty" toml:"new,omitempty" json:"new,omitempty"`
}

// MemberDoc is either a contract declaration or an existing member,
// depending on the declaring type's kind.
type MemberDoc struct {
	Kind        string         `yaml:"kind" toml:"kind" json:"kind"`
	Name        string         `yaml:"name" toml:"name" json:"name"`
	Access      string         `yaml:"access,omitempty" toml:"access,omitempty" json:"access,omitempty"`
	Type        string         `yaml:"type,omitempty" toml:"type,omitempty" json:"type,omitempty"`
	Params      []ParamDoc     `yaml:"params,omitempty" toml:"params,omitempty" json:"params,omitempty"`
	TypeParams  []TypeParamDoc `yaml:"type_params,omitempty" toml:"type_params,omitempty" json:"type_params,omitempty"`
	Shared      bool           `yaml:"shared,omitempty" toml:"shared,omitempty" json:"shared,omitempty"`
	Overridable bool           `yaml:"overridable,omitempty" toml:"overridable,omitempty" json:"overridable,omitempty"`
	Default     bool           `yaml:"default,omitempty" toml:"default,omitempty" json:"default,omitempty"`
	ReadOnly    bool           `yaml:"read_only,omitempty" toml:"read_only,omitempty" json:"read_only,omitempty"`
	WriteOnly   bool           `yaml:"write_only,omitempty" toml:"write_only,omitempty" json:"write_only,omitempty"`
	Implements  []string       `yaml:"implements,omitempty" toml:"implements,omitempty" json:"implements,omitempty"`
}

type ParamDoc struct {
	Name       string       `yaml:"name" toml:"name" json:"name"`
	Type       string       `yaml:"type" toml:"type" json:"type"`
	ByRef      bool         `yaml:"by_ref,omitempty" toml:"by_ref,omitempty" json:"by_ref,omitempty"`
	ParamArray bool         `yaml:"param_array,omitempty" toml:"param_array,omitempty" json:"param_array,omitempty"`
	Default    *ConstantDoc `yaml:"default,omitempty" toml:"default,omitempty" json:"default,omitempty"`
	Attributes []string     `yaml:"attributes,omitempty" toml:"attributes,omitempty" json:"attributes,omitempty"`
}

// ConstantDoc is a default value. Units overrides Text for strings and chars.
type ConstantDoc struct {
	Kind  string   `yaml:"kind" toml:"kind" json:"kind"`
	Text  string   `yaml:"text,omitempty" toml:"text,omitempty" json:"text,omitempty"`
	Units []uint16 `yaml:"units,omitempty" toml:"units,omitempty" json:"units,omitempty"`
}

type EnumValueDoc struct {
	Name  string `yaml:"name" toml:"name" json:"name"`
	Value string `yaml:"value" toml:"value" json:"value"`
}

// RequestDoc names a target type and the interfaces to implement on it.
type RequestDoc struct {
	Target     string   `yaml:"target" toml:"target" json:"target"`
	Interfaces []string `yaml:"interfaces" toml:"interfaces" json:"interfaces"`
}

// Decode parses a document and checks its schema version. Unknown keys are
// rejected in every format.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "failed to parse YAML snapshot"), errors.ErrInvalidRequest)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "failed to parse TOML snapshot"), errors.ErrInvalidRequest)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.NewInvalidRequestf("unknown TOML keys in snapshot: %v", undecoded)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Mark(errors.Wrap(err, "failed to parse JSON snapshot"), errors.ErrInvalidRequest)
		}
	default:
		return nil, errors.NewInvalidRequestf("unsupported snapshot format %q", format)
	}

	if err := checkVersion(doc.Version); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ReadFile loads a document, choosing the format from the extension.
func ReadFile(path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read snapshot %s", path)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot %s", path)
	}
	return doc, nil
}

// checkVersion accepts an empty version as the current schema.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	version, err := semver.NewVersion(v)
	if err != nil {
		return errors.NewInvalidRequestf("invalid snapshot version %q", v)
	}
	constraint, err := semver.NewConstraint(supportedSchemas)
	if err != nil {
		return errors.Wrap(err, "invalid schema constraint")
	}
	if !constraint.Check(version) {
		return errors.WithHintf(
			errors.NewInvalidRequestf("snapshot schema %s is not supported", version),
			"this build reads schema versions %s", supportedSchemas)
	}
	return nil
}
