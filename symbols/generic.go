package symbols

import (
	"strconv"

	"github.com/teranos/implgen/errors"
)

// Substitution maps type parameter names to type arguments.
type Substitution map[string]TypeRef

// NewSubstitution pairs parameters with arguments. No arguments means an
// open (uninstantiated) reference and yields an empty substitution.
func NewSubstitution(params []TypeParam, args []TypeRef) (Substitution, error) {
	s := Substitution{}
	if len(args) == 0 {
		return s, nil
	}
	if len(params) != len(args) {
		return nil, errors.NewInvalidRequestf("expected %d type arguments, got %d", len(params), len(args))
	}
	for i, p := range params {
		s[p.Name] = args[i]
	}
	return s, nil
}

// mentioned returns every type parameter name referenced by the substitution's arguments.
func (s Substitution) mentioned() map[string]bool {
	out := map[string]bool{}
	for _, to := range s {
		for _, name := range to.TypeParamsMentioned() {
			out[name] = true
		}
	}
	return out
}

// Instantiate applies s to a declaration.
//
// The substitution is capture-avoiding: when one of the declaration's own
// type parameters has the same name as a type parameter already in scope
// (inScope, typically the implementing type's parameters, or any parameter
// mentioned by the substituted arguments) it is renamed to a fresh name
// (U -> U1) so the two stay distinct.
func Instantiate(d Declaration, s Substitution, inScope []string) Declaration {
	taken := s.mentioned()
	for _, name := range inScope {
		taken[name] = true
	}

	local := Substitution{}
	for k, v := range s {
		local[k] = v
	}

	used := map[string]bool{}
	for name := range taken {
		used[name] = true
	}
	for _, tp := range d.TypeParams {
		used[tp.Name] = true
	}

	renamed := make([]string, len(d.TypeParams))
	for i, tp := range d.TypeParams {
		// An own type parameter shadows the contract's parameter of the same name.
		delete(local, tp.Name)
		renamed[i] = tp.Name
		if !taken[tp.Name] {
			continue
		}
		fresh := freshName(tp.Name, used)
		used[fresh] = true
		renamed[i] = fresh
		local[tp.Name] = TypeParamRef(fresh)
	}

	out := d
	out.Type = d.Type.Substitute(local)

	if len(d.Params) > 0 {
		out.Params = make([]Parameter, len(d.Params))
		for i, p := range d.Params {
			p.Type = p.Type.Substitute(local)
			out.Params[i] = p
		}
	}

	if len(d.TypeParams) > 0 {
		out.TypeParams = make([]TypeParam, len(d.TypeParams))
		for i, tp := range d.TypeParams {
			ntp := tp
			ntp.Name = renamed[i]
			if len(tp.Constraints) > 0 {
				ntp.Constraints = make([]TypeRef, len(tp.Constraints))
				for j, c := range tp.Constraints {
					ntp.Constraints[j] = c.Substitute(local)
				}
			}
			out.TypeParams[i] = ntp
		}
	}

	return out
}

func freshName(base string, used map[string]bool) string {
	for i := 1; ; i++ {
		candidate := base + strconv.Itoa(i)
		if !used[candidate] {
			return candidate
		}
	}
}
