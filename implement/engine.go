// Package implement computes the members a type must gain to implement an
// interface, and the alternative ways of generating them.
//
// # Pipeline
//
// Each requested interface runs through the same stages:
//
//  1. Extract flattens the contract and its inherited contracts into slots
//  2. Unsatisfied drops slots an existing member is already bound to
//  3. Conflict resolution names each remaining slot
//  4. Delegation finds members whose type provides the whole contract
//  5. Strategy generation assembles stub, abstract, delegate and dispose plans
//
// Signatures and default values are rendered by package literal. All symbol
// facts come from a symbols.Source; the engine keeps no state between
// requests.
package implement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/literal"
	"github.com/teranos/implgen/logger"
	"github.com/teranos/implgen/symbols"
)

// Options tunes generation.
type Options struct {
	// Strict enables strict typing rules in rendered literals.
	Strict bool
	// NotImplementedException is thrown by stub bodies.
	NotImplementedException string
	// DisposedField is the preferred name of the dispose pattern's flag.
	DisposedField string
	// Workers bounds PlanBatch concurrency.
	Workers int
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		NotImplementedException: "NotImplementedException",
		DisposedField:           "disposedValue",
		Workers:                 4,
	}
}

// Engine plans interface implementations.
type Engine struct {
	src  symbols.Source
	opts Options
	log  *zap.SugaredLogger
}

// NewEngine creates an engine over src. Empty option fields fall back to
// DefaultOptions; a nil logger uses the global logger.
func NewEngine(src symbols.Source, opts Options, log *zap.SugaredLogger) *Engine {
	defaults := DefaultOptions()
	if opts.NotImplementedException == "" {
		opts.NotImplementedException = defaults.NotImplementedException
	}
	if opts.DisposedField == "" {
		opts.DisposedField = defaults.DisposedField
	}
	if opts.Workers <= 0 {
		opts.Workers = defaults.Workers
	}
	if log == nil {
		log = logger.Logger
	}
	return &Engine{src: src, opts: opts, log: log}
}

// Plan computes the strategies for one request.
//
// A contract with nothing left to implement is reported in its plan's
// NotApplicable flag, not as an error. Any other failure aborts the whole
// request: no partial result is returned.
func (e *Engine) Plan(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Target.IsZero() {
		return nil, errors.NewInvalidRequestf("request has no target type")
	}
	if len(req.Interfaces) == 0 {
		return nil, errors.NewInvalidRequestf("request for %s names no interfaces", req.Target.String())
	}

	id := logger.RequestIDFromContext(ctx)
	if id == "" {
		id = uuid.NewString()
		ctx = logger.WithRequestID(ctx, id)
	}
	log := logger.FromContext(ctx, e.log).With(logger.FieldTarget, req.Target.String())

	target, err := e.src.Type(ctx, req.Target)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "resolve target %s", req.Target.String()), errors.ErrInvalidRequest)
	}
	if target.Kind != symbols.TypeClass && target.Kind != symbols.TypeStructure {
		return nil, errors.NewInvalidRequestf("target %s is a %s; only classes and structures implement interfaces",
			req.Target.String(), target.Kind)
	}

	members, err := e.src.Members(ctx, target.Ref)
	if err != nil {
		return nil, errors.Wrapf(err, "members of %s", target.Ref.String())
	}

	p := &planner{
		src:     e.src,
		lit:     literal.New(e.src, literal.Options{Strict: e.opts.Strict}, log),
		opts:    e.opts,
		log:     log,
		target:  target,
		members: members,
	}

	res := &Result{RequestID: id, Target: target.Ref}
	for _, iface := range req.Interfaces {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		plan, err := p.planContract(ctx, iface)
		if err != nil {
			log.Debugw("plan failed", logger.FieldContract, iface.String(), logger.FieldError, err)
			return nil, err
		}
		res.Plans = append(res.Plans, plan)
	}

	log.Infow("planned request",
		"plans", len(res.Plans),
		logger.FieldCount, countStrategies(res),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return res, nil
}

// PlanBatch plans independent requests concurrently, at most Workers at a
// time. Results keep request order. The first failure cancels the rest and
// is returned alone.
func (e *Engine) PlanBatch(ctx context.Context, reqs []Request) ([]*Result, error) {
	results := make([]*Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)

	e.log.Debugw("planning batch", logger.FieldCount, len(reqs), logger.FieldWorkers, e.opts.Workers)

	for i, req := range reqs {
		g.Go(func() error {
			res, err := e.Plan(gctx, req)
			if err != nil {
				return errors.Wrapf(err, "request %d (%s)", i, req.Target.String())
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func countStrategies(res *Result) int {
	n := 0
	for _, p := range res.Plans {
		n += len(p.Strategies)
	}
	return n
}
