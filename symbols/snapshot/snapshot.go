// Package snapshot is a file-backed symbols.Source.
//
// A snapshot is a YAML, TOML or JSON document that declares the interfaces,
// classes, enums and delegates a plan needs, together with the members a
// target already has. It lets the engine run outside an IDE: from the CLI,
// in tests and in golden fixtures.
package snapshot

import (
	"context"
	"strconv"

	"golang.org/x/text/cases"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/symbols"
)

// Request is a plan request declared in a snapshot.
type Request struct {
	Target     symbols.TypeRef
	Interfaces []symbols.TypeRef
}

type entry struct {
	doc        TypeDoc
	ref        symbols.TypeRef // canonical, open: Args are the type parameters
	info       symbols.TypeInfo
	base       *symbols.TypeRef
	interfaces []symbols.TypeRef
	decls      []symbols.Declaration
	members    []symbols.ExistingMember
}

func (e *entry) paramNames() []string {
	names := make([]string, len(e.info.TypeParams))
	for i, tp := range e.info.TypeParams {
		names[i] = tp.Name
	}
	return names
}

// Snapshot answers symbol questions from a loaded document. It is immutable
// after construction and safe for concurrent use.
type Snapshot struct {
	byQualified map[string][]*entry
	bySimple    map[string][]*entry
	requests    []Request
}

// Load reads a snapshot file.
func Load(path string) (*Snapshot, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := New(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot %s", path)
	}
	return s, nil
}

// Parse decodes and builds a snapshot in one step.
func Parse(data []byte, format Format) (*Snapshot, error) {
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return New(doc)
}

// New builds a snapshot from a decoded document. All type references are
// resolved eagerly, so a snapshot that builds never reports an unresolvable
// declaration later.
func New(doc *Document) (*Snapshot, error) {
	s := &Snapshot{
		byQualified: map[string][]*entry{},
		bySimple:    map[string][]*entry{},
	}

	types := append([]TypeDoc{}, doc.Types...)
	for _, b := range builtins {
		if !declares(doc.Types, b.Name) {
			types = append(types, b)
		}
	}

	entries := make([]*entry, 0, len(types))
	for _, td := range types {
		e, err := s.register(td)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	for _, e := range entries {
		if err := s.build(e); err != nil {
			return nil, errors.Wrapf(err, "type %s", e.doc.Name)
		}
	}

	// Bindings name contract declarations, so they resolve last.
	for _, e := range entries {
		if err := s.bind(e); err != nil {
			return nil, errors.Wrapf(err, "type %s", e.doc.Name)
		}
	}

	for i, rd := range doc.Requests {
		req, err := s.request(rd)
		if err != nil {
			return nil, errors.Wrapf(err, "request %d", i)
		}
		s.requests = append(s.requests, req)
	}

	return s, nil
}

// Requests returns the plan requests declared in the document, in order.
func (s *Snapshot) Requests() []Request {
	return s.requests
}

// Contract implements symbols.Source.
func (s *Snapshot) Contract(ctx context.Context, ref symbols.TypeRef) (*symbols.Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canon, e, err := s.resolve(ref)
	if err != nil {
		return nil, errors.NewContractNotFoundf("interface %s not found: %v", ref.String(), err)
	}
	if e == nil || e.info.Kind != symbols.TypeInterface {
		return nil, errors.NewContractNotFoundf("%s is not an interface", ref.String())
	}
	return &symbols.Contract{
		Ref:          canon,
		TypeParams:   e.info.TypeParams,
		Declarations: e.decls,
		Bases:        e.interfaces,
	}, nil
}

// Type implements symbols.Source.
func (s *Snapshot) Type(ctx context.Context, ref symbols.TypeRef) (*symbols.TypeInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch ref.Kind {
	case symbols.RefTypeParam:
		return nil, errors.NewUnresolvablef("type parameter %s has no fixed type", ref.Name)
	}

	canon, e, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}
	if canon.Kind == symbols.RefArray {
		return &symbols.TypeInfo{Ref: canon, Kind: symbols.TypeClass, Sealed: true}, nil
	}
	if e == nil {
		return specialInfo(canon), nil
	}
	info := e.info
	info.Ref = canon
	return &info, nil
}

// Members implements symbols.Source. The base-class chain is walked with
// each base's type arguments applied to its members.
func (s *Snapshot) Members(ctx context.Context, target symbols.TypeRef) ([]symbols.ExistingMember, error) {
	canon, e, err := s.resolve(target)
	if err != nil {
		return nil, err
	}

	var out []symbols.ExistingMember
	seen := map[string]bool{}
	for e != nil && !seen[canon.Key()] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		seen[canon.Key()] = true

		sub, err := symbols.NewSubstitution(e.info.TypeParams, canon.Args)
		if err != nil {
			return nil, err
		}
		for _, m := range e.members {
			out = append(out, substituteMember(m, sub, canon))
		}

		if e.base == nil {
			break
		}
		next := e.base.Substitute(sub)
		canon, e, err = s.resolve(next)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Provides implements symbols.Source. A type provides a contract when it is
// the contract or when its base class or any of its interfaces does. A
// supertype chain that re-enters a generic definition with new arguments
// is not followed further.
func (s *Snapshot) Provides(ctx context.Context, t symbols.TypeRef, contract symbols.TypeRef) (bool, error) {
	want, _, err := s.resolve(contract)
	if err != nil {
		return false, err
	}
	return s.provides(ctx, t, want.Key(), map[string]bool{}, map[string]bool{})
}

func (s *Snapshot) provides(ctx context.Context, t symbols.TypeRef, want string, seen, path map[string]bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if t.Kind != symbols.RefNamed {
		return false, nil
	}
	canon, e, err := s.resolve(t)
	if err != nil {
		return false, err
	}
	if canon.Key() == want {
		return true, nil
	}
	def := canon.QualifiedName() + "`" + strconv.Itoa(len(canon.Args))
	if e == nil || seen[canon.Key()] || path[def] {
		return false, nil
	}
	seen[canon.Key()] = true
	path[def] = true
	defer delete(path, def)

	sub, err := symbols.NewSubstitution(e.info.TypeParams, canon.Args)
	if err != nil {
		return false, err
	}
	var supers []symbols.TypeRef
	if e.base != nil {
		supers = append(supers, *e.base)
	}
	supers = append(supers, e.interfaces...)
	for _, super := range supers {
		ok, err := s.provides(ctx, super.Substitute(sub), want, seen, path)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// IsWellKnownDisposable implements symbols.Source. Only the namespace-qualified
// System.IDisposable counts; a local interface that happens to share the
// simple name does not.
func (s *Snapshot) IsWellKnownDisposable(ctx context.Context, contract symbols.TypeRef) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	canon, _, err := s.resolve(contract)
	if err != nil {
		return false, err
	}
	return len(canon.Args) == 0 && canon.QualifiedName() == disposableName, nil
}

// SameName implements symbols.Source with case-insensitive identifier matching.
func (s *Snapshot) SameName(a, b string) bool {
	return fold(a) == fold(b)
}

// fold applies Unicode case folding. Casers are stateful, so each call gets its own.
func fold(name string) string {
	return cases.Fold().String(name)
}

func substituteMember(m symbols.ExistingMember, sub symbols.Substitution, declaring symbols.TypeRef) symbols.ExistingMember {
	m.Declaring = declaring
	if len(sub) == 0 {
		return m
	}
	m.Type = m.Type.Substitute(sub)
	if len(m.Params) > 0 {
		params := make([]symbols.Parameter, len(m.Params))
		for i, p := range m.Params {
			p.Type = p.Type.Substitute(sub)
			params[i] = p
		}
		m.Params = params
	}
	return m
}

var _ symbols.Source = (*Snapshot)(nil)
