package implement

import (
	"github.com/samber/lo"

	"github.com/teranos/implgen/symbols"
)

// Unsatisfied drops every slot that an existing member of the target or an
// ancestor is explicitly bound to. Only a binding to the exact slot key
// counts: a same-named member without the binding leaves the slot open and
// shows up later as a naming conflict. The binder's accessibility does not
// matter.
func Unsatisfied(slots []symbols.Slot, members []symbols.ExistingMember) []symbols.Slot {
	return lo.Filter(slots, func(s symbols.Slot, _ int) bool {
		key := s.Key()
		return !lo.ContainsBy(members, func(m symbols.ExistingMember) bool {
			return m.BoundTo(key)
		})
	})
}
