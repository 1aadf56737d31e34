package implement

import (
	"github.com/samber/lo"

	"github.com/teranos/implgen/literal"
	"github.com/teranos/implgen/symbols"
)

// namedSlot is an unsatisfied slot with its generated name decided.
type namedSlot struct {
	symbols.Slot
	Key        symbols.SlotKey
	Name       string
	Identifier string
	Access     symbols.Accessibility
	Fallback   bool
}

// Implements renders the binding clause target for the slot.
func (n namedSlot) Implements() string {
	return n.Contract.Ref.Qualified() + "." + literal.Escape(n.Declaration.Name)
}

// fallbackName is the contract-qualified private name used after a conflict.
func fallbackName(s symbols.Slot) string {
	return s.Contract.SimpleName() + "_" + s.Declaration.Name
}

// resolveNames picks a name and accessibility for each slot, in slot order.
//
// A slot keeps its own name, publicly, unless an existing member of any
// kind and accessibility has the same name, or an earlier slot's generated
// member already claimed it. Either way it falls back to the private name
// <Contract>_<Slot>; the fallback is not checked again.
func resolveNames(sameName func(a, b string) bool, slots []symbols.Slot, members []symbols.ExistingMember) ([]namedSlot, []Conflict) {
	var (
		named     []namedSlot
		conflicts []Conflict
		claimed   []string
	)

	for _, s := range slots {
		key := s.Key()
		existing := lo.Filter(members, func(m symbols.ExistingMember, _ int) bool {
			return sameName(m.Name, s.Declaration.Name) && !m.BoundTo(key)
		})
		taken := lo.ContainsBy(claimed, func(name string) bool {
			return sameName(name, s.Declaration.Name)
		})

		ns := namedSlot{Slot: s, Key: key, Name: s.Declaration.Name, Access: symbols.AccessPublic}
		if len(existing) > 0 || taken {
			ns.Name = fallbackName(s)
			ns.Access = symbols.AccessPrivate
			ns.Fallback = true
			conflicts = append(conflicts, Conflict{
				Slot:      key,
				Existing:  existing,
				Generated: taken,
				Fallback:  ns.Name,
			})
		} else {
			claimed = append(claimed, ns.Name)
		}
		ns.Identifier = literal.Escape(ns.Name)
		named = append(named, ns)
	}

	return named, conflicts
}
