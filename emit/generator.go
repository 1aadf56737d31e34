// Package emit renders planned strategies as source text.
//
// The engine's output is language-neutral data; each target language gets
// a Generator in its own subpackage (emit/vb). Previews in the CLI and
// golden tests go through this interface so adding a language does not
// touch the engine.
package emit

import (
	"sort"
	"strings"
	"sync"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/implement"
)

// Generator renders strategies for one target language.
type Generator interface {
	// Language returns the language name (e.g., "vb")
	Language() string

	// FileExtension returns the file extension for this language (e.g., "vb")
	FileExtension() string

	// GenerateMember renders one generated member declaration
	GenerateMember(m implement.GeneratedMember) string

	// GenerateStrategy renders every member of a strategy, in order
	GenerateStrategy(s implement.Strategy) string
}

// Factory builds a generator that indents blocks by the given number of spaces.
type Factory func(indent int) Generator

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a generator available by language name. Generators
// register themselves from init.
func Register(language string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[strings.ToLower(language)] = f
}

// Supported reports whether a generator is registered for language.
func Supported(language string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := factories[strings.ToLower(language)]
	return ok
}

// New builds the generator registered for language.
func New(language string, indent int) (Generator, error) {
	mu.RLock()
	f, ok := factories[strings.ToLower(language)]
	mu.RUnlock()
	if !ok {
		return nil, errors.WithHintf(
			errors.Newf("no generator for language %q", language),
			"available: %s", strings.Join(Languages(), ", "))
	}
	return f(indent), nil
}

// Languages lists registered languages, sorted.
func Languages() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for name := range factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// JoinMembers renders members with gen and separates them with blank lines.
func JoinMembers(gen Generator, members []implement.GeneratedMember) string {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		parts = append(parts, strings.TrimRight(gen.GenerateMember(m), "\n"))
	}
	return strings.Join(parts, "\n\n") + "\n"
}
