package implement

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/logger"
	"github.com/teranos/implgen/symbols"
)

// Flattened is a contract together with everything it inherits.
type Flattened struct {
	Root *symbols.Contract
	// Contracts holds the root and its inherited contracts, derived before
	// base, each exactly once.
	Contracts []*symbols.Contract
	// Slots are the member slots of Contracts, instantiated with the
	// contracts' type arguments, in the same order.
	Slots []symbols.Slot
}

// Extract resolves a contract, flattens its inheritance closure and returns
// the slots an implementer must provide.
//
// inScope names the target's own type parameters; member type parameters
// that collide with them are renamed during instantiation. A contract with
// no member declarations (only nested types or delegates) is reported as
// errors.ErrNotApplicable. Inheritance cycles that return to a contract
// with the same arguments are followed once; a cycle that re-enters a
// definition with different arguments would never close and is reported as
// errors.ErrInvalidRequest.
func Extract(ctx context.Context, src symbols.Source, ref symbols.TypeRef, inScope []string, log *zap.SugaredLogger) (*Flattened, error) {
	root, err := src.Contract(ctx, ref)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve contract %s", ref.String())
	}

	var order []*symbols.Contract
	bases := map[string][]string{}
	visited := map[string]bool{}
	// onPath maps each generic definition on the current inheritance path
	// to the instantiation that entered it.
	onPath := map[string]string{}

	var visit func(c *symbols.Contract) error
	visit = func(c *symbols.Contract) error {
		if visited[c.ID()] {
			return nil
		}
		def := definitionKey(c.Ref)
		if entered, ok := onPath[def]; ok {
			return errors.NewInvalidRequestf("inheritance cycle through %s expands %s without bound",
				entered, c.Ref.String())
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		visited[c.ID()] = true
		order = append(order, c)

		onPath[def] = c.Ref.String()
		defer delete(onPath, def)

		sub, err := c.Substitution()
		if err != nil {
			return errors.Wrapf(err, "contract %s", c.Ref.String())
		}
		for _, b := range c.Bases {
			bref := b.Substitute(sub)
			bc, err := src.Contract(ctx, bref)
			if err != nil {
				return errors.WrapUnresolvable(err, "inherited contract "+bref.String())
			}
			bases[c.ID()] = append(bases[c.ID()], bc.ID())
			if err := visit(bc); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(root); err != nil {
		return nil, err
	}

	flat := &Flattened{Root: root, Contracts: derivedFirst(order, bases)}

	for _, c := range flat.Contracts {
		sub, err := c.Substitution()
		if err != nil {
			return nil, errors.Wrapf(err, "contract %s", c.Ref.String())
		}
		for _, d := range c.Declarations {
			if !d.Kind.IsMember() {
				logger.StageDebugw(log, logger.StageExtract, "skipping non-member declaration",
					logger.FieldContract, c.ID(), logger.FieldMember, d.Name, "kind", d.Kind.String())
				continue
			}
			flat.Slots = append(flat.Slots, symbols.Slot{
				Contract:    c,
				Declaration: symbols.Instantiate(d, sub, inScope),
			})
		}
	}

	logger.StageDebugw(log, logger.StageExtract, "flattened contract",
		logger.FieldContract, root.ID(),
		"contracts", len(flat.Contracts),
		logger.FieldCount, len(flat.Slots))

	if len(flat.Slots) == 0 {
		return flat, errors.NewNotApplicablef("%s declares no members", root.Ref.String())
	}
	return flat, nil
}

// definitionKey identifies a contract's generic definition regardless of
// its type arguments.
func definitionKey(ref symbols.TypeRef) string {
	return ref.QualifiedName() + "`" + strconv.Itoa(len(ref.Args))
}

// derivedFirst orders contracts so every contract precedes the contracts it
// inherits from. Among contracts that are ready at the same time the one
// visited first wins. Inheritance cycles are broken at the earliest
// remaining contract.
func derivedFirst(order []*symbols.Contract, bases map[string][]string) []*symbols.Contract {
	pending := map[string]int{}
	for _, c := range order {
		for _, b := range bases[c.ID()] {
			pending[b]++
		}
	}

	out := make([]*symbols.Contract, 0, len(order))
	done := map[string]bool{}
	for len(out) < len(order) {
		var next *symbols.Contract
		for _, c := range order {
			if !done[c.ID()] && pending[c.ID()] == 0 {
				next = c
				break
			}
		}
		if next == nil {
			for _, c := range order {
				if !done[c.ID()] {
					next = c
					break
				}
			}
		}

		done[next.ID()] = true
		out = append(out, next)
		for _, b := range bases[next.ID()] {
			pending[b]--
		}
	}
	return out
}
