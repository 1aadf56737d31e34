// Package commands implements the implgen CLI subcommands.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/implgen/config"
	"github.com/teranos/implgen/display"
	"github.com/teranos/implgen/emit"
	"github.com/teranos/implgen/errors"
	"github.com/teranos/implgen/implement"
	"github.com/teranos/implgen/logger"
	"github.com/teranos/implgen/symbols"
	"github.com/teranos/implgen/symbols/snapshot"
)

// loadConfig honours the --config flag, falling back to the merged sources.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// requestFlags are shared by plan and watch.
type requestFlags struct {
	snapshot   string
	target     string
	interfaces []string
	strategy   string
	strict     bool
}

func (f *requestFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.snapshot, "snapshot", "s", "", "Symbol snapshot file (default: snapshot.path from config)")
	cmd.Flags().StringVarP(&f.target, "target", "t", "", "Target class or structure (default: the snapshot's requests)")
	cmd.Flags().StringSliceVarP(&f.interfaces, "interface", "i", nil, "Interface to implement (repeatable)")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "Preview generated code for a strategy (kind or table number)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Strict typing for rendered literals")
}

// apply folds flag overrides into cfg.
func (f *requestFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("strict") {
		cfg.Engine.Strict = f.strict
	}
}

func (f *requestFlags) snapshotPath(cfg *config.Config) (string, error) {
	if f.snapshot != "" {
		return f.snapshot, nil
	}
	if cfg.Snapshot.Path != "" {
		return cfg.Snapshot.Path, nil
	}
	return "", errors.WithHint(
		errors.New("no snapshot file"),
		"pass --snapshot or set snapshot.path in implgen.toml")
}

// requests builds the request list: the flags when --target is given,
// otherwise every request stored in the snapshot.
func (f *requestFlags) requests(snap *snapshot.Snapshot) ([]implement.Request, error) {
	if f.target == "" {
		if len(f.interfaces) > 0 {
			return nil, errors.New("--interface requires --target")
		}
		stored := snap.Requests()
		if len(stored) == 0 {
			return nil, errors.WithHint(
				errors.New("snapshot contains no requests"),
				"pass --target and --interface")
		}
		reqs := make([]implement.Request, len(stored))
		for i, r := range stored {
			reqs[i] = implement.Request{Target: r.Target, Interfaces: r.Interfaces}
		}
		return reqs, nil
	}

	target, err := symbols.ParseTypeRef(f.target)
	if err != nil {
		return nil, errors.Wrap(err, "--target")
	}
	req := implement.Request{Target: target}
	for _, s := range f.interfaces {
		ref, err := symbols.ParseTypeRef(s)
		if err != nil {
			return nil, errors.Wrapf(err, "--interface %s", s)
		}
		req.Interfaces = append(req.Interfaces, ref)
	}
	return []implement.Request{req}, nil
}

// runRequests plans reqs against snap and prints the results.
func runRequests(ctx context.Context, cmd *cobra.Command, cfg *config.Config, snap *snapshot.Snapshot, reqs []implement.Request, strategy string) error {
	engine := implement.NewEngine(snap, cfg.EngineOptions(), logger.Logger.Named("engine"))

	results, err := engine.PlanBatch(ctx, reqs)
	if err != nil {
		return err
	}

	if display.ShouldOutputJSON(cmd, cfg.Output.JSON) {
		return display.OutputJSON(cmd, results)
	}

	opts := display.PlanOptions{Strategy: strategy}
	if strategy != "" {
		gen, err := emit.New(cfg.Output.Language, cfg.Output.Indent)
		if err != nil {
			return err
		}
		opts.Generator = gen
	}

	for _, res := range results {
		if err := display.RenderResult(cmd.OutOrStdout(), res, opts); err != nil {
			return fmt.Errorf("render %s: %w", res.Target.String(), err)
		}
	}
	return nil
}
