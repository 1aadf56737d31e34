package implement

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/literal"
	"github.com/teranos/implgen/logger"
	"github.com/teranos/implgen/symbols"
)

// Strategy titles as presented to the user.
const (
	titleStub     = "Implement interface"
	titleAbstract = "Implement interface abstractly"
	titleDelegate = "Implement interface through '%s'"
	titleDispose  = "Implement interface with Dispose pattern"
)

// planner holds the per-request facts shared by every contract of a request.
type planner struct {
	src     symbols.Source
	lit     *literal.Transcriber
	opts    Options
	log     *zap.SugaredLogger
	target  *symbols.TypeInfo
	members []symbols.ExistingMember
}

// planContract runs the pipeline for one contract.
func (p *planner) planContract(ctx context.Context, ref symbols.TypeRef) (ContractPlan, error) {
	log := p.log.With(logger.FieldContract, ref.String())

	flat, err := Extract(ctx, p.src, ref, typeParamNames(p.target.TypeParams), log)
	if errors.IsNotApplicable(err) {
		logger.StageInfow(log, logger.StageExtract, "nothing to implement", logger.FieldError, err.Error())
		return ContractPlan{Contract: flat.Root.Ref, NotApplicable: true, Reason: err.Error()}, nil
	}
	if err != nil {
		return ContractPlan{}, err
	}
	if err := ctx.Err(); err != nil {
		return ContractPlan{}, err
	}

	open := Unsatisfied(flat.Slots, p.members)
	logger.StageDebugw(log, logger.StageSatisfy, "checked existing bindings",
		"slots", len(flat.Slots), "unsatisfied", len(open))
	if len(open) == 0 {
		reason := errors.NewNotApplicablef("every member of %s is already implemented", flat.Root.Ref.String())
		logger.StageInfow(log, logger.StageSatisfy, "nothing to implement")
		return ContractPlan{Contract: flat.Root.Ref, NotApplicable: true, Reason: reason.Error()}, nil
	}
	if err := ctx.Err(); err != nil {
		return ContractPlan{}, err
	}

	named, conflicts := resolveNames(p.src.SameName, open, p.members)
	for _, c := range conflicts {
		logger.StageDebugw(log, logger.StageConflict, "slot falls back to private name",
			logger.FieldSlot, c.Slot.String(), "fallback", c.Fallback,
			"existing", len(c.Existing), "generated", c.Generated)
	}

	candidates, skipped, err := findCandidates(ctx, p.src, p.target.Ref, p.members, flat.Root.Ref, log)
	if err != nil {
		return ContractPlan{}, err
	}
	if err := ctx.Err(); err != nil {
		return ContractPlan{}, err
	}

	sigs := make([]literal.Signature, len(named))
	for i, ns := range named {
		sig, err := p.lit.Signature(ctx, ns.Declaration)
		if err != nil {
			return ContractPlan{}, errors.Wrapf(err, "slot %s", ns.Key.String())
		}
		sigs[i] = sig
	}

	plan := ContractPlan{Contract: flat.Root.Ref, Conflicts: conflicts, Skipped: skipped}

	plan.Strategies = append(plan.Strategies, p.stub(flat, named, sigs))

	if p.target.CanHaveAbstractMembers() {
		plan.Strategies = append(plan.Strategies, p.abstract(flat, named, sigs))
	}

	for _, c := range candidates {
		s, err := p.delegate(ctx, flat, named, sigs, c)
		if err != nil {
			return ContractPlan{}, errors.Wrapf(err, "delegate through %s", c.Name)
		}
		plan.Strategies = append(plan.Strategies, s)
	}

	if ok, err := p.disposeEligible(ctx, flat, named); err != nil {
		return ContractPlan{}, err
	} else if ok {
		plan.Strategies = append(plan.Strategies, p.dispose(named[0], sigs[0]))
	}

	for _, s := range plan.Strategies {
		logger.StageDebugw(log, logger.StageStrategy, "offering strategy",
			logger.FieldStrategy, s.Kind.String(), "title", s.Title, logger.FieldCount, len(s.Members))
	}
	return plan, nil
}

// base builds the parts of a generated member every strategy shares.
func (p *planner) base(ns namedSlot, sig literal.Signature) GeneratedMember {
	key := ns.Key
	return GeneratedMember{
		Slot:       &key,
		Kind:       ns.Declaration.Kind,
		Name:       ns.Name,
		Identifier: ns.Identifier,
		Access:     ns.Access,
		Fallback:   ns.Fallback,
		Modifiers: Modifiers{
			// A private member cannot be the type's default property.
			Default:   ns.Declaration.IsDefault && !ns.Fallback,
			ReadOnly:  ns.Declaration.ReadOnly,
			WriteOnly: ns.Declaration.WriteOnly,
		},
		Signature:  sig,
		Implements: ns.Implements(),
	}
}

func (p *planner) throwing(ns namedSlot, sig literal.Signature) GeneratedMember {
	m := p.base(ns, sig)
	if ns.Declaration.Kind != symbols.KindEvent {
		m.Body = BodyThrow
		m.Exception = p.opts.NotImplementedException
	} else {
		m.Body = BodyNone
	}
	return m
}

// stub makes every slot a member that throws the not-implemented exception.
// Events have no body to throw from and are declared plainly.
func (p *planner) stub(flat *Flattened, named []namedSlot, sigs []literal.Signature) Strategy {
	s := Strategy{Kind: StrategyStub, Title: titleStub, Contract: flat.Root.Ref}
	for i, ns := range named {
		s.Members = append(s.Members, p.throwing(ns, sigs[i]))
	}
	return s
}

// abstract declares every slot MustOverride. Fallback members are private
// and events cannot be MustOverride, so those are generated as in stub.
func (p *planner) abstract(flat *Flattened, named []namedSlot, sigs []literal.Signature) Strategy {
	s := Strategy{Kind: StrategyAbstract, Title: titleAbstract, Contract: flat.Root.Ref}
	for i, ns := range named {
		if ns.Fallback || ns.Declaration.Kind == symbols.KindEvent {
			s.Members = append(s.Members, p.throwing(ns, sigs[i]))
			continue
		}
		m := p.base(ns, sigs[i])
		m.Body = BodyNone
		m.Modifiers.MustOverride = true
		s.Members = append(s.Members, m)
	}
	return s
}

// delegate forwards every slot through CType(candidate, Contract).
func (p *planner) delegate(ctx context.Context, flat *Flattened, named []namedSlot, sigs []literal.Signature, c Candidate) (Strategy, error) {
	via := c
	s := Strategy{
		Kind:     StrategyDelegate,
		Title:    fmt.Sprintf(titleDelegate, c.Name),
		Contract: flat.Root.Ref,
		Via:      &via,
	}
	for i, ns := range named {
		m := p.base(ns, sigs[i])
		m.Body = BodyDelegate
		m.Via = c.Identifier
		m.Cast = flat.Root.Ref.Qualified()
		m.Forward = literal.Escape(ns.Declaration.Name)

		if ns.Declaration.Kind == symbols.KindEvent {
			invoke, err := p.eventInvoke(ctx, ns.Declaration.Type)
			if err != nil {
				return Strategy{}, err
			}
			m.EventInvoke = invoke
		}
		s.Members = append(s.Members, m)
	}
	return s, nil
}

// eventInvoke renders the handler delegate's invoke parameters.
func (p *planner) eventInvoke(ctx context.Context, handler symbols.TypeRef) ([]literal.Param, error) {
	info, err := p.src.Type(ctx, handler)
	if err != nil {
		return nil, errors.WrapUnresolvable(err, "event handler "+handler.String())
	}
	if info.Kind != symbols.TypeDelegate {
		return nil, errors.NewUnresolvablef("event handler %s is not a delegate", handler.String())
	}
	sub, err := symbols.NewSubstitution(info.TypeParams, handler.Args)
	if err != nil {
		return nil, err
	}
	params := make([]symbols.Parameter, len(info.Invoke))
	for i, ip := range info.Invoke {
		ip.Type = ip.Type.Substitute(sub)
		params[i] = ip
	}
	return p.lit.Params(ctx, params)
}

func typeParamNames(tps []symbols.TypeParam) []string {
	names := make([]string, len(tps))
	for i, tp := range tps {
		names[i] = tp.Name
	}
	return names
}
