package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/implgen/display"
	"github.com/teranos/implgen/version"
)

// VersionCmd represents the version command
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show implgen version information",
	Long:  `Display version, build time, commit hash, snapshot schema and platform information for the implgen binary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Get()

		if display.ShouldOutputJSON(cmd, false) {
			return display.OutputJSON(cmd, info)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, info.String())
		fmt.Fprintf(out, "Snapshot schema: %s\n", info.Schema)
		fmt.Fprintf(out, "Platform: %s\n", info.Platform)
		fmt.Fprintf(out, "Go: %s\n", info.GoVersion)
		return nil
	},
}
