package snapshot

import (
	"strings"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/symbols"
)

// resolveBinding turns "IFoo(Of Integer).Bar(String, ByRef Integer)" into
// the key of the slot it names. The parameter list may be omitted when the
// member name alone is unambiguous.
func (s *Snapshot) resolveBinding(text string, scope []string) (symbols.SlotKey, error) {
	text = strings.TrimSpace(text)
	prefix, params, hasParams := splitParamList(text)

	dot := lastTopLevelDot(prefix)
	if dot < 0 {
		return symbols.SlotKey{}, errors.NewInvalidRequestf("binding %q has no member name", text)
	}
	name := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(prefix[dot+1:]), "["), "]")

	ref, err := s.parse(prefix[:dot], scope)
	if err != nil {
		return symbols.SlotKey{}, err
	}
	_, e, err := s.resolve(ref)
	if err != nil {
		return symbols.SlotKey{}, err
	}
	if e == nil || e.info.Kind != symbols.TypeInterface {
		return symbols.SlotKey{}, errors.NewInvalidRequestf("binding %q does not name an interface", text)
	}

	contract := &symbols.Contract{Ref: ref, TypeParams: e.info.TypeParams, Declarations: e.decls}
	sub, err := contract.Substitution()
	if err != nil {
		return symbols.SlotKey{}, err
	}

	var matches []symbols.SlotKey
	for _, d := range e.decls {
		if !d.Kind.IsMember() || !s.SameName(d.Name, name) {
			continue
		}
		inst := symbols.Instantiate(d, sub, scope)
		key := symbols.KeyOf(contract.ID(), inst)
		if hasParams {
			// Member type parameters are written with their declared names.
			own := make([]string, len(d.TypeParams))
			for i, tp := range d.TypeParams {
				own[i] = tp.Name
			}
			ps, err := s.paramTypes(params, append(append([]string{}, scope...), own...))
			if err != nil {
				return symbols.SlotKey{}, err
			}
			if symbols.ParamSignature(ps, d.TypeParams) != key.Signature {
				continue
			}
		}
		matches = append(matches, key)
	}

	switch len(matches) {
	case 0:
		return symbols.SlotKey{}, errors.NewUnresolvablef("no member of %s matches %q", ref.String(), text)
	case 1:
		return matches[0], nil
	}
	return symbols.SlotKey{}, errors.NewInvalidRequestf("binding %q is ambiguous; add a parameter list", text)
}

func (s *Snapshot) paramTypes(list string, scope []string) ([]symbols.Parameter, error) {
	var out []symbols.Parameter
	for _, part := range splitTopLevel(list) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p := symbols.Parameter{}
		if len(part) > 6 && strings.EqualFold(part[:6], "ByRef ") {
			p.ByRef = true
			part = strings.TrimSpace(part[6:])
		}
		t, err := s.parse(part, scope)
		if err != nil {
			return nil, err
		}
		p.Type = t
		out = append(out, p)
	}
	return out, nil
}

// splitParamList separates a trailing "(...)" parameter list. A trailing
// "(Of ...)" group is a type argument list, not parameters.
func splitParamList(text string) (prefix, params string, ok bool) {
	if !strings.HasSuffix(text, ")") {
		return text, "", false
	}
	depth := 0
	for i := len(text) - 1; i >= 0; i-- {
		switch text[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				inner := strings.TrimSpace(text[i+1 : len(text)-1])
				if len(inner) >= 3 && strings.EqualFold(inner[:3], "Of ") {
					return text, "", false
				}
				return text[:i], inner, true
			}
		}
	}
	return text, "", false
}

func lastTopLevelDot(text string) int {
	depth := 0
	for i := len(text) - 1; i >= 0; i-- {
		switch text[i] {
		case ')':
			depth++
		case '(':
			depth--
		case '.':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func splitTopLevel(text string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, text[start:])
}
