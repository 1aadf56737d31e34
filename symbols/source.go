package symbols

import "context"

// Source is the semantic-model collaborator. It answers symbol questions;
// the engine never inspects source text or concrete type representations.
//
// Implementations must be safe for concurrent use when the engine plans
// several requests at once. Any memoization belongs to the implementation,
// scoped to one instance.
type Source interface {
	// Contract resolves an interface reference. Missing interfaces must be
	// reported with errors.ErrContractNotFound.
	Contract(ctx context.Context, ref TypeRef) (*Contract, error)

	// Type resolves any type reference to its traits. Unknown types must be
	// reported with errors.ErrUnresolvable.
	Type(ctx context.Context, ref TypeRef) (*TypeInfo, error)

	// Members enumerates the members of target and all its ancestors,
	// target's own members first, each group in declaration order.
	Members(ctx context.Context, target TypeRef) ([]ExistingMember, error)

	// Provides reports whether t statically implements the whole contract.
	Provides(ctx context.Context, t TypeRef, contract TypeRef) (bool, error)

	// IsWellKnownDisposable reports whether contract is the platform's
	// releasable-resource interface rather than a same-named local one.
	IsWellKnownDisposable(ctx context.Context, contract TypeRef) (bool, error)

	// SameName applies the language's identifier comparison rules.
	SameName(a, b string) bool
}
