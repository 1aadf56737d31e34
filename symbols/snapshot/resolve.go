package snapshot

import (
	"strings"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/symbols"
)

const disposableName = "System.IDisposable"

// builtins are declared unless the document declares the same name itself.
var builtins = []TypeDoc{
	{
		Name: disposableName,
		Kind: "interface",
		Members: []MemberDoc{
			{Kind: "method", Name: "Dispose"},
		},
	},
	{Name: "System.EventArgs", Kind: "class"},
	{
		Name: "System.EventHandler",
		Kind: "delegate",
		Invoke: []ParamDoc{
			{Name: "sender", Type: "Object"},
			{Name: "e", Type: "System.EventArgs"},
		},
	},
}

func declares(types []TypeDoc, name string) bool {
	for _, td := range types {
		if fold(td.Name) == fold(name) {
			return true
		}
	}
	return false
}

func (s *Snapshot) register(td TypeDoc) (*entry, error) {
	if td.Name == "" {
		return nil, errors.NewInvalidRequestf("type without a name")
	}
	kind, err := symbols.ParseTypeKind(td.Kind)
	if err != nil {
		return nil, errors.Wrapf(err, "type %s", td.Name)
	}

	ref := symbols.Named(td.Name)
	e := &entry{doc: td}
	for _, tp := range td.TypeParams {
		ref.Args = append(ref.Args, symbols.TypeParamRef(tp.Name))
	}
	e.ref = ref
	e.info = symbols.TypeInfo{Kind: kind, Sealed: td.Sealed, Abstract: td.Abstract}

	q, n := fold(ref.QualifiedName()), fold(ref.Name)
	for _, other := range s.byQualified[q] {
		if len(other.ref.Args) == len(ref.Args) {
			return nil, errors.NewInvalidRequestf("type %s declared twice", td.Name)
		}
	}
	s.byQualified[q] = append(s.byQualified[q], e)
	s.bySimple[n] = append(s.bySimple[n], e)
	return e, nil
}

// build resolves every reference inside a type declaration.
func (s *Snapshot) build(e *entry) error {
	td := e.doc
	scope := typeParamNames(td.TypeParams)

	tps, err := s.typeParams(td.TypeParams, scope)
	if err != nil {
		return err
	}
	e.info.TypeParams = tps
	e.info.Ref = e.ref

	if td.Base != "" {
		base, err := s.parse(td.Base, scope)
		if err != nil {
			return errors.Wrap(err, "base")
		}
		e.base = &base
	}
	for _, iface := range td.Interfaces {
		ref, err := s.parse(iface, scope)
		if err != nil {
			return errors.Wrap(err, "interfaces")
		}
		e.interfaces = append(e.interfaces, ref)
	}

	switch e.info.Kind {
	case symbols.TypeEnum:
		return s.buildEnum(e)
	case symbols.TypeDelegate:
		params, err := s.params(td.Invoke, scope)
		if err != nil {
			return errors.Wrap(err, "invoke")
		}
		e.info.Invoke = params
		return nil
	case symbols.TypeInterface:
		for _, md := range td.Members {
			d, err := s.declaration(md, scope)
			if err != nil {
				return errors.Wrapf(err, "member %s", md.Name)
			}
			e.decls = append(e.decls, d)
		}
		return nil
	}

	for _, md := range td.Members {
		m, err := s.member(md, scope)
		if err != nil {
			return errors.Wrapf(err, "member %s", md.Name)
		}
		e.members = append(e.members, m)
	}
	return nil
}

func (s *Snapshot) buildEnum(e *entry) error {
	td := e.doc
	underlying := symbols.SpecialInt32
	if td.Underlying != "" {
		sp, ok := symbols.SpecialByName(td.Underlying)
		if !ok || !sp.IsIntegral() {
			return errors.NewInvalidRequestf("enum underlying type %q is not integral", td.Underlying)
		}
		underlying = sp
	}
	info := &symbols.EnumInfo{Flags: td.Flags, Underlying: underlying}
	for _, v := range td.Values {
		info.Members = append(info.Members, symbols.EnumMember{Name: v.Name, Value: v.Value})
	}
	e.info.Enum = info
	e.info.Special = symbols.SpecialNone
	return nil
}

func (s *Snapshot) declaration(md MemberDoc, scope []string) (symbols.Declaration, error) {
	kind, err := symbols.ParseMemberKind(md.Kind)
	if err != nil {
		return symbols.Declaration{}, err
	}
	inner := append(append([]string{}, scope...), typeParamNames(md.TypeParams)...)

	d := symbols.Declaration{
		Kind:      kind,
		Name:      md.Name,
		IsDefault: md.Default,
		ReadOnly:  md.ReadOnly,
		WriteOnly: md.WriteOnly,
	}
	if d.TypeParams, err = s.typeParams(md.TypeParams, inner); err != nil {
		return d, err
	}
	if d.Params, err = s.params(md.Params, inner); err != nil {
		return d, err
	}
	if md.Type != "" {
		if d.Type, err = s.parse(md.Type, inner); err != nil {
			return d, err
		}
	}
	return d, nil
}

func (s *Snapshot) member(md MemberDoc, scope []string) (symbols.ExistingMember, error) {
	kind, err := symbols.ParseMemberKind(md.Kind)
	if err != nil {
		return symbols.ExistingMember{}, err
	}
	access, err := symbols.ParseAccessibility(md.Access)
	if err != nil {
		return symbols.ExistingMember{}, err
	}
	inner := append(append([]string{}, scope...), typeParamNames(md.TypeParams)...)

	m := symbols.ExistingMember{
		Name:        md.Name,
		Kind:        kind,
		Access:      access,
		Shared:      md.Shared,
		Overridable: md.Overridable,
		IsDefault:   md.Default,
		Readable:    !md.WriteOnly,
		Writable:    !md.ReadOnly,
	}
	if m.Params, err = s.params(md.Params, inner); err != nil {
		return m, err
	}
	if md.Type != "" {
		if m.Type, err = s.parse(md.Type, inner); err != nil {
			return m, err
		}
	}
	return m, nil
}

// bind resolves the implements lists of existing members.
func (s *Snapshot) bind(e *entry) error {
	switch e.info.Kind {
	case symbols.TypeInterface, symbols.TypeEnum, symbols.TypeDelegate:
		return nil
	}
	for i, md := range e.doc.Members {
		m := &e.members[i]
		for _, b := range md.Implements {
			key, err := s.resolveBinding(b, typeParamNames(e.doc.TypeParams))
			if err != nil {
				return errors.Wrapf(err, "member %s implements %q", md.Name, b)
			}
			m.Implements = append(m.Implements, key)
		}
	}
	return nil
}

func (s *Snapshot) request(rd RequestDoc) (Request, error) {
	target, err := s.parse(rd.Target, nil)
	if err != nil {
		return Request{}, errors.Wrap(err, "target")
	}
	req := Request{Target: target}
	for _, iface := range rd.Interfaces {
		ref, err := s.parse(iface, nil)
		if err != nil {
			return Request{}, errors.Wrap(err, "interfaces")
		}
		req.Interfaces = append(req.Interfaces, ref)
	}
	return req, nil
}

func (s *Snapshot) typeParams(docs []TypeParamDoc, scope []string) ([]symbols.TypeParam, error) {
	var out []symbols.TypeParam
	for _, tpd := range docs {
		tp := symbols.TypeParam{Name: tpd.Name, Class: tpd.Class, Structure: tpd.Structure, New: tpd.New}
		for _, c := range tpd.Constraints {
			ref, err := s.parse(c, scope)
			if err != nil {
				return nil, errors.Wrapf(err, "constraint of %s", tpd.Name)
			}
			tp.Constraints = append(tp.Constraints, ref)
		}
		out = append(out, tp)
	}
	return out, nil
}

func (s *Snapshot) params(docs []ParamDoc, scope []string) ([]symbols.Parameter, error) {
	var out []symbols.Parameter
	for _, pd := range docs {
		t, err := s.parse(pd.Type, scope)
		if err != nil {
			return nil, errors.Wrapf(err, "parameter %s", pd.Name)
		}
		p := symbols.Parameter{
			Name:       pd.Name,
			Type:       t,
			ByRef:      pd.ByRef,
			ParamArray: pd.ParamArray,
			Attributes: pd.Attributes,
		}
		if pd.Default != nil {
			kind, err := symbols.ParseConstantKind(pd.Default.Kind)
			if err != nil {
				return nil, errors.Wrapf(err, "default of %s", pd.Name)
			}
			p.Default = &symbols.Constant{Kind: kind, Text: pd.Default.Text, Units: pd.Default.Units}
		}
		out = append(out, p)
	}
	return out, nil
}

// parse parses display syntax and canonicalizes it against the snapshot.
func (s *Snapshot) parse(text string, scope []string) (symbols.TypeRef, error) {
	ref, err := symbols.ParseTypeRef(text, scope...)
	if err != nil {
		return symbols.TypeRef{}, err
	}
	canon, _, err := s.resolve(ref)
	return canon, err
}

// resolve returns the canonical form of ref and, for declared named types,
// its entry. Built-in types canonicalize to their keyword with no namespace.
func (s *Snapshot) resolve(ref symbols.TypeRef) (symbols.TypeRef, *entry, error) {
	switch ref.Kind {
	case symbols.RefTypeParam:
		return ref, nil, nil
	case symbols.RefArray:
		if ref.Elem == nil {
			return symbols.TypeRef{}, nil, errors.NewUnresolvablef("array without element type")
		}
		elem, _, err := s.resolve(*ref.Elem)
		if err != nil {
			return symbols.TypeRef{}, nil, err
		}
		return symbols.ArrayOf(elem, ref.Rank), nil, nil
	}

	args := make([]symbols.TypeRef, len(ref.Args))
	for i, a := range ref.Args {
		ca, _, err := s.resolve(a)
		if err != nil {
			return symbols.TypeRef{}, nil, err
		}
		args[i] = ca
	}

	if ref.Namespace == "" || strings.EqualFold(ref.Namespace, "System") {
		if len(args) == 0 {
			if sp, ok := symbols.SpecialByName(ref.Name); ok && !s.shadowsSpecial(ref) {
				return symbols.TypeRef{Kind: symbols.RefNamed, Name: sp.Keyword()}, nil, nil
			}
		}
		if len(args) == 1 && strings.EqualFold(ref.Name, "Nullable") {
			return symbols.TypeRef{Kind: symbols.RefNamed, Name: "Nullable", Args: args}, nil, nil
		}
	}

	e, err := s.lookup(ref)
	if err != nil {
		return symbols.TypeRef{}, nil, err
	}
	canon := e.ref
	canon.Args = nil
	if len(args) > 0 {
		canon.Args = args
	}
	return canon, e, nil
}

// shadowsSpecial reports whether the document declares an unqualified type
// with a built-in's name; references then go to the declaration.
func (s *Snapshot) shadowsSpecial(ref symbols.TypeRef) bool {
	if ref.Namespace != "" {
		return false
	}
	for _, e := range s.bySimple[fold(ref.Name)] {
		if e.ref.Namespace == "" && len(e.ref.Args) == 0 {
			return true
		}
	}
	return false
}

func (s *Snapshot) lookup(ref symbols.TypeRef) (*entry, error) {
	var candidates []*entry
	if ref.Namespace != "" {
		candidates = s.byQualified[fold(ref.QualifiedName())]
	} else {
		candidates = s.bySimple[fold(ref.Name)]
	}

	var found []*entry
	for _, e := range candidates {
		if len(e.ref.Args) == len(ref.Args) {
			found = append(found, e)
		}
	}
	switch len(found) {
	case 0:
		return nil, errors.NewUnresolvablef("type %s is not declared", ref.String())
	case 1:
		return found[0], nil
	}
	// An unqualified name matching several namespaces prefers the global one.
	for _, e := range found {
		if e.ref.Namespace == "" {
			return e, nil
		}
	}
	return nil, errors.NewUnresolvablef("type %s is ambiguous", ref.String())
}

func specialInfo(canon symbols.TypeRef) *symbols.TypeInfo {
	if canon.IsNullable() {
		return &symbols.TypeInfo{Ref: canon, Kind: symbols.TypeStructure}
	}
	sp, _ := symbols.SpecialByName(canon.Name)
	info := &symbols.TypeInfo{Ref: canon, Kind: symbols.TypeClass, Special: sp}
	if sp.IsValueType() {
		info.Kind = symbols.TypeStructure
	}
	return info
}

func typeParamNames(docs []TypeParamDoc) []string {
	names := make([]string, len(docs))
	for i, tp := range docs {
		names[i] = tp.Name
	}
	return names
}
