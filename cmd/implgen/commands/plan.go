package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/implgen/symbols/snapshot"

	_ "github.com/teranos/implgen/emit/vb"
)

var (
	planFlags   requestFlags
	planTimeout time.Duration
)

// PlanCmd plans implementations from a snapshot
var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Plan interface implementations",
	Long: `Plan the strategies for implementing interfaces on a target type.

Without --target, every request stored in the snapshot is planned
concurrently (engine.workers at a time). Each interface gets its own table
of strategies; --strategy prints the generated members of one of them.

Examples:
  implgen plan -s symbols.yaml
  implgen plan -s symbols.yaml -t Shapes.Circle -i "IComparable(Of Shapes.Circle)"
  implgen plan -s symbols.yaml -t Widget -i IFoo --strategy 2
  implgen plan -s symbols.yaml --json`,
	RunE: runPlan,
}

func init() {
	planFlags.register(PlanCmd)
	PlanCmd.Flags().DurationVar(&planTimeout, "timeout", 0, "Abort planning after this long (0 = no limit)")
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	planFlags.apply(cmd, cfg)

	path, err := planFlags.snapshotPath(cfg)
	if err != nil {
		return err
	}
	snap, err := snapshot.Load(path)
	if err != nil {
		return err
	}
	reqs, err := planFlags.requests(snap)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if planTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, planTimeout)
		defer cancel()
	}

	return runRequests(ctx, cmd, cfg, snap, reqs, planFlags.strategy)
}
