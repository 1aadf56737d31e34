package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/implgen/cmd/implgen/commands"
	"github.com/teranos/implgen/logger"
)

var rootCmd = &cobra.Command{
	Use:   "implgen",
	Short: "Plan and preview interface implementations",
	Long: `implgen computes the members a class or structure must gain to implement
one or more interfaces, and the alternative ways of generating them.

Symbols come from a snapshot file (YAML, TOML or JSON) describing types,
interfaces, members and optional requests.

Available commands:
  plan    - Plan implementations for a target type
  watch   - Re-plan whenever the snapshot changes
  config  - Show or initialise configuration
  version - Show version information

Examples:
  implgen plan -s symbols.yaml                        # Run the snapshot's requests
  implgen plan -s symbols.yaml -t Widget -i IFoo      # Plan one request
  implgen plan -s symbols.yaml -t Widget -i IFoo --strategy stub
  implgen watch -s symbols.yaml                       # Re-plan on change
  implgen config show --sources                       # Where settings come from`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json", false, "Output results as JSON")
	rootCmd.PersistentFlags().Bool("log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().String("config", "", "Read configuration from this file only")

	rootCmd.AddCommand(commands.PlanCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
