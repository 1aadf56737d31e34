package implement

import (
	"context"
	"strconv"

	"github.com/teranos/implgen/literal"
	"github.com/teranos/implgen/logger"
	"github.com/teranos/implgen/symbols"
)

// disposeEligible decides whether the dispose pattern is offered.
//
// The contract must be the platform's releasable-resource interface (a
// local interface with the same name does not count) whose only slot is a
// parameterless method. The target must be a class, and the slot must keep
// its public name. An existing member with that name at any accessibility,
// such as a helper taking one Boolean, makes the slot fall back, and the
// pattern is not offered.
func (p *planner) disposeEligible(ctx context.Context, flat *Flattened, named []namedSlot) (bool, error) {
	known, err := p.src.IsWellKnownDisposable(ctx, flat.Root.Ref)
	if err != nil || !known {
		return false, err
	}

	if len(flat.Slots) != 1 || len(named) != 1 {
		return false, nil
	}
	slot := flat.Slots[0]
	if slot.Kind != symbols.KindMethod || len(slot.Params) != 0 || len(slot.TypeParams) != 0 {
		return false, nil
	}

	if p.target.Kind != symbols.TypeClass {
		logger.StageDebugw(p.log, logger.StageStrategy, "dispose pattern needs a class",
			logger.FieldTarget, p.target.Ref.String(), "kind", p.target.Kind.String())
		return false, nil
	}

	if named[0].Fallback {
		logger.StageDebugw(p.log, logger.StageStrategy, "dispose pattern needs the public release name",
			logger.FieldMember, slot.Name, "fallback", named[0].Name)
		return false, nil
	}
	return true, nil
}

// dispose builds the releasable-resource pattern: a private flag, a guarded
// helper that flips the flag before cleaning up, a commented finalizer hook,
// and the bound public member that calls the helper and suppresses
// finalization.
func (p *planner) dispose(ns namedSlot, sig literal.Signature) Strategy {
	flag := p.uniqueName(p.opts.DisposedField, ns.Name)
	helper := ns.Declaration.Name

	s := Strategy{Kind: StrategyDispose, Title: titleDispose, Contract: ns.Contract.Ref}

	s.Members = append(s.Members, GeneratedMember{
		Kind:       symbols.KindField,
		Name:       flag,
		Identifier: literal.Escape(flag),
		Access:     symbols.AccessPrivate,
		Signature:  literal.Signature{Type: "Boolean"},
		Body:       BodyField,
	})

	s.Members = append(s.Members, GeneratedMember{
		Kind:       symbols.KindMethod,
		Name:       helper,
		Identifier: literal.Escape(helper),
		Access:     symbols.AccessProtected,
		Modifiers:  Modifiers{Overridable: !p.target.Sealed},
		Signature:  literal.Signature{Params: []literal.Param{{Name: "disposing", Type: "Boolean"}}},
		Body:       BodyDisposeHelper,
		Flag:       flag,
	})

	s.Members = append(s.Members, GeneratedMember{
		Kind:       symbols.KindMethod,
		Name:       "Finalize",
		Identifier: "Finalize",
		Access:     symbols.AccessProtected,
		Body:       BodyFinalizerHook,
		Helper:     literal.Escape(helper),
	})

	m := p.base(ns, sig)
	m.Body = BodyDisposeCall
	m.Flag = flag
	m.Helper = literal.Escape(helper)
	s.Members = append(s.Members, m)

	return s
}

// uniqueName returns base, or base followed by the smallest number that
// makes it differ from every existing member and from the generated slot
// member's name.
func (p *planner) uniqueName(base, generated string) string {
	taken := func(name string) bool {
		if p.src.SameName(name, generated) {
			return true
		}
		for _, m := range p.members {
			if p.src.SameName(m.Name, name) {
				return true
			}
		}
		return false
	}

	if !taken(base) {
		return base
	}
	for i := 1; ; i++ {
		candidate := base + strconv.Itoa(i)
		if !taken(candidate) {
			return candidate
		}
	}
}
