package config

import (
	"strings"
	"unicode"

	"github.com/teranos/implgen/emit"
	_ "github.com/teranos/implgen/emit/vb"
	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/literal"
)

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	// Workers: 0 = engine default, negative = invalid
	if c.Engine.Workers < 0 {
		return errors.Newf("engine.workers must be >= 0, got %d", c.Engine.Workers)
	}

	if c.Engine.NotImplementedException == "" {
		return errors.New("engine.not_implemented_exception cannot be empty")
	}
	for _, part := range strings.Split(c.Engine.NotImplementedException, ".") {
		if !validIdentifier(part) {
			return errors.Newf("engine.not_implemented_exception %q is not a type name", c.Engine.NotImplementedException)
		}
	}

	// The flag field is emitted unescaped inside the helper body.
	if !validIdentifier(c.Engine.DisposedField) || literal.IsKeyword(c.Engine.DisposedField) {
		return errors.Newf("engine.disposed_field %q is not a usable identifier", c.Engine.DisposedField)
	}

	if c.Output.Indent < 0 || c.Output.Indent > 16 {
		return errors.Newf("output.indent must be between 0 and 16, got %d", c.Output.Indent)
	}
	if !emit.Supported(c.Output.Language) {
		return errors.WithHintf(
			errors.Newf("output.language %q has no generator", c.Output.Language),
			"available: %s", strings.Join(emit.Languages(), ", "))
	}

	return nil
}

// validIdentifier reports whether name is a plain identifier: a letter or
// underscore followed by letters, digits or underscores. A lone underscore
// is not an identifier.
func validIdentifier(name string) bool {
	if name == "" || name == "_" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Pc, r)):
		default:
			return false
		}
	}
	return true
}
