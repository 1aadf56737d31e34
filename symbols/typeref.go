package symbols

import (
	"strings"
)

// RefKind distinguishes the three shapes a type reference can take.
type RefKind int

const (
	RefNamed     RefKind = iota // Integer, List(Of T), System.IDisposable
	RefTypeParam                // T
	RefArray                    // Integer(), String(,)
)

// TypeRef is a reference to a type as it appears in a signature.
//
// Named references may carry a namespace and generic arguments; array
// references carry an element and a rank. Display rendering (String) omits
// namespaces and is meant for people. Qualified and Key include them.
type TypeRef struct {
	Kind      RefKind   `json:"kind" yaml:"kind"`
	Namespace string    `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Name      string    `json:"name,omitempty" yaml:"name,omitempty"`
	Args      []TypeRef `json:"args,omitempty" yaml:"args,omitempty"`
	Elem      *TypeRef  `json:"elem,omitempty" yaml:"elem,omitempty"`
	Rank      int       `json:"rank,omitempty" yaml:"rank,omitempty"`
}

// Named builds a named type reference. A dotted name is split into namespace and name.
func Named(name string, args ...TypeRef) TypeRef {
	ns := ""
	if i := strings.LastIndex(name, "."); i >= 0 {
		ns, name = name[:i], name[i+1:]
	}
	return TypeRef{Kind: RefNamed, Namespace: ns, Name: name, Args: args}
}

// TypeParamRef builds a reference to a type parameter.
func TypeParamRef(name string) TypeRef {
	return TypeRef{Kind: RefTypeParam, Name: name}
}

// ArrayOf builds an array reference; rank < 1 is treated as 1.
func ArrayOf(elem TypeRef, rank int) TypeRef {
	if rank < 1 {
		rank = 1
	}
	e := elem
	return TypeRef{Kind: RefArray, Elem: &e, Rank: rank}
}

// IsZero reports whether r is the empty reference (no type, e.g. a Sub's return).
func (r TypeRef) IsZero() bool {
	return r.Kind == RefNamed && r.Name == "" && r.Elem == nil
}

// IsNullable reports whether r is Nullable(Of X).
func (r TypeRef) IsNullable() bool {
	return r.Kind == RefNamed && r.Name == "Nullable" && len(r.Args) == 1 &&
		(r.Namespace == "" || r.Namespace == "System")
}

// QualifiedName returns the namespace-qualified name without type arguments.
func (r TypeRef) QualifiedName() string {
	if r.Namespace == "" {
		return r.Name
	}
	return r.Namespace + "." + r.Name
}

// String renders the reference in target-language display syntax.
func (r TypeRef) String() string {
	return r.render(false)
}

// Qualified renders the reference in target-language syntax with every
// named type namespace-qualified. Generated code uses this form.
func (r TypeRef) Qualified() string {
	return r.render(true)
}

// MarshalText renders the namespace-qualified form used by Key.
func (r TypeRef) MarshalText() ([]byte, error) {
	return []byte(r.Key()), nil
}

// Key renders the reference with namespaces; two references denote the same
// type exactly when their keys are equal.
func (r TypeRef) Key() string {
	return r.render(true)
}

// Equal compares two references by identity.
func (r TypeRef) Equal(o TypeRef) bool {
	return r.Key() == o.Key()
}

func (r TypeRef) render(qualified bool) string {
	switch r.Kind {
	case RefTypeParam:
		return r.Name
	case RefArray:
		if r.Elem == nil {
			return "()"
		}
		return r.Elem.render(qualified) + "(" + strings.Repeat(",", r.Rank-1) + ")"
	}

	if r.IsNullable() && r.Args[0].Kind != RefArray {
		return r.Args[0].render(qualified) + "?"
	}

	name := r.Name
	if qualified {
		name = r.QualifiedName()
	}
	if len(r.Args) == 0 {
		return name
	}

	args := make([]string, len(r.Args))
	for i, a := range r.Args {
		args[i] = a.render(qualified)
	}
	return name + "(Of " + strings.Join(args, ", ") + ")"
}

// TypeParamsMentioned returns the type parameter names r refers to, in first-seen order.
func (r TypeRef) TypeParamsMentioned() []string {
	var out []string
	seen := map[string]bool{}
	r.walk(func(t TypeRef) {
		if t.Kind == RefTypeParam && !seen[t.Name] {
			seen[t.Name] = true
			out = append(out, t.Name)
		}
	})
	return out
}

func (r TypeRef) walk(fn func(TypeRef)) {
	fn(r)
	for _, a := range r.Args {
		a.walk(fn)
	}
	if r.Elem != nil {
		r.Elem.walk(fn)
	}
}

// Substitute replaces type parameter references according to s.
// Unmapped parameters are left as they are.
func (r TypeRef) Substitute(s Substitution) TypeRef {
	switch r.Kind {
	case RefTypeParam:
		if to, ok := s[r.Name]; ok {
			return to
		}
		return r
	case RefArray:
		if r.Elem == nil {
			return r
		}
		return ArrayOf(r.Elem.Substitute(s), r.Rank)
	}
	if len(r.Args) == 0 {
		return r
	}
	out := r
	out.Args = make([]TypeRef, len(r.Args))
	for i, a := range r.Args {
		out.Args[i] = a.Substitute(s)
	}
	return out
}
