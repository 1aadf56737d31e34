package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/implgen/config"
	"github.com/teranos/implgen/logger"
	"github.com/teranos/implgen/symbols/snapshot"
)

var (
	watchFlags    requestFlags
	watchDebounce int
)

// WatchCmd re-plans whenever the snapshot or configuration changes
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-plan whenever the snapshot changes",
	Long: `Plan once, then watch the snapshot file (and implgen.toml, when one is
found) and plan again after every change. Errors in a changed snapshot are
reported and watching continues. Stop with Ctrl+C.`,
	RunE: runWatch,
}

func init() {
	watchFlags.register(WatchCmd)
	WatchCmd.Flags().IntVar(&watchDebounce, "debounce-ms", 500, "Quiet period before re-planning")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	watchFlags.apply(cmd, cfg)

	path, err := watchFlags.snapshotPath(cfg)
	if err != nil {
		return err
	}
	if path, err = filepath.Abs(path); err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Change callbacks for different files run on their own timers.
	var mu sync.Mutex

	replan := func() error {
		snap, err := snapshot.Load(path)
		if err != nil {
			return err
		}
		reqs, err := watchFlags.requests(snap)
		if err != nil {
			return err
		}
		return runRequests(ctx, cmd, cfg, snap, reqs, watchFlags.strategy)
	}

	if err := replan(); err != nil {
		pterm.Error.Println(err.Error())
	}

	paths := []string{path}
	if project := config.ProjectFile(); project != "" {
		paths = append(paths, project)
	}

	w, err := config.NewWatcher(msDuration(watchDebounce), paths...)
	if err != nil {
		return err
	}
	config.SetGlobalWatcher(w)
	defer config.SetGlobalWatcher(nil)

	w.OnChange(func(changed string) error {
		mu.Lock()
		defer mu.Unlock()

		if changed != path {
			config.Reset()
			fresh, err := loadConfig(cmd)
			if err != nil {
				pterm.Error.Println(err.Error())
				return err
			}
			watchFlags.apply(cmd, fresh)
			cfg = fresh
		}
		pterm.Info.Printf("%s changed, re-planning\n", changed)
		if err := replan(); err != nil {
			pterm.Error.Println(err.Error())
			return err
		}
		return nil
	})
	w.Start()

	logger.Infow("Watching for changes", "files", paths)
	pterm.Info.Println(fmt.Sprintf("Watching %d file(s), press Ctrl+C to stop", len(paths)))

	<-ctx.Done()
	if err := w.Stop(); err != nil {
		return err
	}
	if ctx.Err() == context.Canceled {
		pterm.Info.Println("Stopped watching")
	}
	return nil
}

func msDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
