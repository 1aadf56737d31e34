package implement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/teranos/implgen/symbols"
	"github.com/teranos/implgen/symbols/snapshot"
)

const fixtureYAML = `
version: "1.0.0"
types:
  # Contracts
  - name: IEmpty
    kind: interface
    members:
      - {kind: delegate, name: Callback}
      - {kind: type, name: Nested}
  - name: IFoo
    kind: interface
    members:
      - {kind: method, name: Bar, type: Integer, params: [{name: x, type: String}]}
      - {kind: property, name: Name, type: String}
  - name: IBase
    kind: interface
    members:
      - {kind: method, name: Run}
  - name: IDerived
    kind: interface
    interfaces: [IBase]
    members:
      - {kind: method, name: Run}
      - {kind: method, name: Step}
  - name: ILoopA
    kind: interface
    interfaces: [ILoopB]
    members:
      - {kind: method, name: A}
  - name: ILoopB
    kind: interface
    interfaces: [ILoopA]
    members:
      - {kind: method, name: B}
  - name: IMulti
    kind: interface
    members:
      - {kind: method, name: A}
      - {kind: method, name: B}
  - name: IPartA
    kind: interface
    members:
      - {kind: method, name: A}
  - name: I2
    kind: interface
    type_params: [{name: T}, {name: U, constraints: [T]}]
    members:
      - kind: method
        name: Map
        type: "Dictionary(Of T, U())"
        params:
          - {name: key, type: T}
          - {name: values, type: "List(Of List(Of U))"}
  - name: IDef
    kind: interface
    type_params: [{name: T}]
    members:
      - kind: method
        name: Configure
        params: [{name: level, type: T, default: {kind: integer, text: "5"}}]
  - name: IEvents
    kind: interface
    members:
      - {kind: event, name: Changed, type: System.EventHandler}
  - name: IDisposable
    kind: interface
    members:
      - {kind: method, name: Dispose}
  - name: IG
    kind: interface
    type_params: [{name: T}]
    interfaces: ["IG(Of IG(Of T))"]
    members:
      - {kind: method, name: G}
  - {name: N1.Thing, kind: class}
  - {name: N2.Thing, kind: class}
  - name: N1.IFoo
    kind: interface
    members:
      - {kind: method, name: M, params: [{name: x, type: N1.Thing}]}
  - name: N2.IFoo
    kind: interface
    members:
      - {kind: method, name: M, params: [{name: x, type: N2.Thing}]}

  # Support types
  - {name: Dictionary, kind: class, type_params: [{name: K}, {name: V}]}
  - {name: List, kind: class, type_params: [{name: E}]}
  - {name: X, kind: class}
  - {name: Y, kind: class}
  - {name: PartOnly, kind: class, interfaces: [IPartA]}
  - {name: FullImpl, kind: class, interfaces: [IMulti]}
  - {name: EventsImpl, kind: class, interfaces: [IEvents]}

  # Targets
  - {name: Widget, kind: class}
  - {name: FooImpl, kind: class, interfaces: [IFoo]}
  - {name: Module1, kind: module}
  - name: BaseWithBinding
    kind: class
    members:
      - {kind: method, name: Hidden, access: private, type: Integer, params: [{name: s, type: String}], implements: ["IFoo.Bar"]}
  - {name: DerivedFromBinding, kind: class, base: BaseWithBinding}
  - name: BaseWithBar
    kind: class
    members:
      - {kind: field, name: bar, access: private, type: Integer}
  - {name: DerivedConflict, kind: class, base: BaseWithBar}
  - name: Holder
    kind: class
    abstract: true
    members:
      - {kind: field, name: partial, type: PartOnly}
      - {kind: field, name: full, type: FullImpl}
      - {kind: property, name: FullProp, type: FullImpl}
      - {kind: property, name: full, type: FullImpl}
      - {kind: property, name: Item, type: FullImpl, default: true, params: [{name: i, type: Integer}]}
      - {kind: property, name: Sink, type: FullImpl, write_only: true}
      - {kind: method, name: Make, type: FullImpl}
  - {name: Point, kind: structure}
  - name: Resource
    kind: class
    members:
      - {kind: field, name: disposedValue, access: private, type: Boolean}
  - {name: SealedResource, kind: class, sealed: true}
  - name: HasHelper
    kind: class
    members:
      - {kind: method, name: Dispose, access: protected, overridable: true, params: [{name: disposing, type: Boolean}]}
  - name: PublicHelper
    kind: class
    members:
      - {kind: method, name: Dispose, params: [{name: disposing, type: Boolean}]}
  - name: Eventful
    kind: class
    members:
      - {kind: field, name: inner, type: EventsImpl}
  - name: GenericHolder
    kind: class
    type_params: [{name: V}]
`

func loadFixture(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	s, err := snapshot.Parse([]byte(fixtureYAML), snapshot.FormatYAML)
	require.NoError(t, err)
	return s
}

func newTestEngine(t *testing.T, src symbols.Source) *Engine {
	t.Helper()
	return NewEngine(src, DefaultOptions(), zaptest.NewLogger(t).Sugar())
}

func request(target string, ifaces ...string) Request {
	req := Request{Target: symbols.MustParseTypeRef(target)}
	for _, i := range ifaces {
		req.Interfaces = append(req.Interfaces, symbols.MustParseTypeRef(i))
	}
	return req
}

func planOne(t *testing.T, target string, iface string) ContractPlan {
	t.Helper()
	e := newTestEngine(t, loadFixture(t))
	res, err := e.Plan(context.Background(), request(target, iface))
	require.NoError(t, err)
	require.Len(t, res.Plans, 1)
	return res.Plans[0]
}

func titles(p ContractPlan) []string {
	out := make([]string, len(p.Strategies))
	for i, s := range p.Strategies {
		out[i] = s.Title
	}
	return out
}

func memberNames(s Strategy) []string {
	out := make([]string, len(s.Members))
	for i, m := range s.Members {
		out[i] = m.Name
	}
	return out
}
