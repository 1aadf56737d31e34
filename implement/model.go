package implement

import (
	"github.com/teranos/implgen/literal"
	"github.com/teranos/implgen/symbols"
)

// Request asks for the members a target type needs to implement one or
// more interfaces. Each interface is planned independently.
type Request struct {
	Target     symbols.TypeRef   `json:"target"`
	Interfaces []symbols.TypeRef `json:"interfaces"`
}

// Result is the outcome of one request: one plan per requested interface,
// in request order.
type Result struct {
	RequestID string          `json:"request_id"`
	Target    symbols.TypeRef `json:"target"`
	Plans     []ContractPlan  `json:"plans"`
}

// NotApplicable reports whether no requested interface needs any member.
func (r *Result) NotApplicable() bool {
	for _, p := range r.Plans {
		if !p.NotApplicable {
			return false
		}
	}
	return true
}

// ContractPlan lists the alternative strategies for one interface. The
// caller picks exactly one; the list has no notion of a current selection.
type ContractPlan struct {
	Contract      symbols.TypeRef `json:"contract"`
	NotApplicable bool            `json:"not_applicable,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Conflicts     []Conflict      `json:"conflicts,omitempty"`
	// Skipped lists members that might have been delegation candidates but
	// whose type could not be resolved.
	Skipped    []SkippedCandidate `json:"skipped,omitempty"`
	Strategies []Strategy         `json:"strategies,omitempty"`
}

// SkippedCandidate is a member left out of delegation.
type SkippedCandidate struct {
	Name   string          `json:"name"`
	Type   symbols.TypeRef `json:"type"`
	Reason string          `json:"reason"`
}

// Conflict records why a slot could not keep its default name.
type Conflict struct {
	Slot     symbols.SlotKey          `json:"slot"`
	Existing []symbols.ExistingMember `json:"existing,omitempty"`
	// Generated is set when an earlier generated member already claimed the name.
	Generated bool   `json:"generated,omitempty"`
	Fallback  string `json:"fallback"`
}

// StrategyKind identifies one of the four ways to implement a contract.
type StrategyKind int

const (
	StrategyStub StrategyKind = iota
	StrategyAbstract
	StrategyDelegate
	StrategyDispose
)

var strategyKindNames = map[StrategyKind]string{
	StrategyStub:     "stub",
	StrategyAbstract: "abstract",
	StrategyDelegate: "delegate",
	StrategyDispose:  "dispose",
}

func (k StrategyKind) String() string {
	if name, ok := strategyKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k StrategyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Strategy is one complete, independently applicable set of generated members.
type Strategy struct {
	Kind     StrategyKind      `json:"kind"`
	Title    string            `json:"title"`
	Contract symbols.TypeRef   `json:"contract"`
	Via      *Candidate        `json:"via,omitempty"`
	Members  []GeneratedMember `json:"members"`
}

// BodyKind describes what a generated member's body does.
type BodyKind int

const (
	BodyThrow         BodyKind = iota // throws the not-implemented exception
	BodyNone                          // MustOverride, no body
	BodyDelegate                      // forwards through CType(via, Contract)
	BodyDisposeHelper                 // guarded Dispose(disposing As Boolean)
	BodyDisposeCall                   // public Dispose calling the helper
	BodyFinalizerHook                 // commented-out Finalize override
	BodyField                         // field declaration, no body
)

var bodyKindNames = map[BodyKind]string{
	BodyThrow:         "throw",
	BodyNone:          "none",
	BodyDelegate:      "delegate",
	BodyDisposeHelper: "dispose_helper",
	BodyDisposeCall:   "dispose_call",
	BodyFinalizerHook: "finalizer_hook",
	BodyField:         "field",
}

func (k BodyKind) String() string {
	if name, ok := bodyKindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k BodyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Modifiers on a generated member.
type Modifiers struct {
	MustOverride bool `json:"must_override,omitempty"`
	Overridable  bool `json:"overridable,omitempty"`
	Default      bool `json:"default,omitempty"`
	ReadOnly     bool `json:"read_only,omitempty"`
	WriteOnly    bool `json:"write_only,omitempty"`
}

// GeneratedMember is one declaration to insert into the target type.
//
// Name is the logical name used for comparisons; Identifier is the same
// name escaped for emission. Slot is nil for the supporting members of the
// dispose pattern (flag field, helper, finalizer hook).
type GeneratedMember struct {
	Slot       *symbols.SlotKey      `json:"slot,omitempty"`
	Kind       symbols.MemberKind    `json:"kind"`
	Name       string                `json:"name"`
	Identifier string                `json:"identifier"`
	Access     symbols.Accessibility `json:"access"`
	Fallback   bool                  `json:"fallback,omitempty"`
	Modifiers  Modifiers             `json:"modifiers"`
	Signature  literal.Signature     `json:"signature"`
	Body       BodyKind              `json:"body"`

	// Implements is the binding clause target, e.g. "IFoo(Of Integer).Bar".
	Implements string `json:"implements,omitempty"`

	// Exception is thrown by BodyThrow members.
	Exception string `json:"exception,omitempty"`

	// Via is the candidate identifier forwarded through by BodyDelegate members.
	Via string `json:"via,omitempty"`
	// Cast is the contract type the candidate is cast to.
	Cast string `json:"cast,omitempty"`
	// Forward is the contract member name invoked on the cast candidate.
	Forward string `json:"forward,omitempty"`
	// EventInvoke is the handler signature used by a forwarded event's RaiseEvent block.
	EventInvoke []literal.Param `json:"event_invoke,omitempty"`

	// Flag and Helper name the dispose pattern's field and helper method.
	Flag   string `json:"flag,omitempty"`
	Helper string `json:"helper,omitempty"`
}

// Candidate is an existing field or property a contract can be delegated through.
type Candidate struct {
	Name       string             `json:"name"`
	Identifier string             `json:"identifier"`
	Kind       symbols.MemberKind `json:"kind"`
	Type       symbols.TypeRef    `json:"type"`
	Shared     bool               `json:"shared,omitempty"`
}
