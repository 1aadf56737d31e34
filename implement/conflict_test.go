package implement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/implgen/symbols"
)

func TestResolveNames(t *testing.T) {
	foo := &symbols.Contract{Ref: symbols.Named("Acme.IFoo")}
	bar := &symbols.Contract{Ref: symbols.Named("IBar")}
	str := symbols.Named("String")

	slot := func(c *symbols.Contract, kind symbols.MemberKind, name string, params ...symbols.Parameter) symbols.Slot {
		return symbols.Slot{Contract: c, Declaration: symbols.Declaration{Kind: kind, Name: name, Params: params}}
	}

	slots := []symbols.Slot{
		slot(foo, symbols.KindMethod, "Open"),
		slot(foo, symbols.KindProperty, "Count"),
		slot(bar, symbols.KindMethod, "Open", symbols.Parameter{Name: "path", Type: str}),
		slot(bar, symbols.KindMethod, "Loop"),
	}
	members := []symbols.ExistingMember{
		{Name: "COUNT", Kind: symbols.KindField, Access: symbols.AccessPrivate},
		{Name: "Loop", Kind: symbols.KindMethod, Implements: []symbols.SlotKey{slots[3].Key()}},
	}

	named, conflicts := resolveNames(strings.EqualFold, slots, members)
	require.Len(t, named, 4)

	assert.Equal(t, "Open", named[0].Name)
	assert.Equal(t, symbols.AccessPublic, named[0].Access)

	assert.Equal(t, "IFoo_Count", named[1].Name, "a private field of any case conflicts")
	assert.Equal(t, symbols.AccessPrivate, named[1].Access)
	assert.Equal(t, "Acme.IFoo.Count", named[1].Key.Contract+"."+named[1].Key.Name)

	assert.Equal(t, "IBar_Open", named[2].Name, "an earlier generated member claimed the name")
	assert.True(t, named[2].Fallback)

	assert.Equal(t, "Loop", named[3].Name, "the member bound to the slot itself is not a conflict")
	assert.Equal(t, "Loop", named[3].Identifier)

	require.Len(t, conflicts, 2)
	assert.Len(t, conflicts[0].Existing, 1)
	assert.False(t, conflicts[0].Generated)
	assert.True(t, conflicts[1].Generated)
}

func TestResolveNames_KeywordsAreEscaped(t *testing.T) {
	c := &symbols.Contract{Ref: symbols.Named("IStepper")}
	slots := []symbols.Slot{{Contract: c, Declaration: symbols.Declaration{Kind: symbols.KindMethod, Name: "Next"}}}

	named, _ := resolveNames(strings.EqualFold, slots, nil)
	require.Len(t, named, 1)
	assert.Equal(t, "Next", named[0].Name)
	assert.Equal(t, "[Next]", named[0].Identifier)
	assert.Equal(t, "IStepper.[Next]", named[0].Implements())
}

func TestUnsatisfied(t *testing.T) {
	c := &symbols.Contract{Ref: symbols.Named("IFoo")}
	other := &symbols.Contract{Ref: symbols.Named("IOther")}
	a := symbols.Slot{Contract: c, Declaration: symbols.Declaration{Kind: symbols.KindMethod, Name: "A"}}
	b := symbols.Slot{Contract: c, Declaration: symbols.Declaration{Kind: symbols.KindMethod, Name: "B"}}
	otherA := symbols.Slot{Contract: other, Declaration: a.Declaration}

	members := []symbols.ExistingMember{
		{Name: "Whatever", Access: symbols.AccessPrivate, Implements: []symbols.SlotKey{a.Key()}},
		{Name: "B", Kind: symbols.KindMethod},
		{Name: "A2", Implements: []symbols.SlotKey{otherA.Key()}},
	}

	open := Unsatisfied([]symbols.Slot{a, b}, members)
	require.Len(t, open, 1)
	assert.Equal(t, "B", open[0].Name, "an unbound same-named member does not satisfy")
}
