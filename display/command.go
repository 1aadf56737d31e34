package display

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// IsAgentEnvironment reports whether implgen was invoked by a tool that
// wants machine-readable output (IMPLGEN_CALLER=llm).
func IsAgentEnvironment() bool {
	return os.Getenv("IMPLGEN_CALLER") == "llm"
}

// ShouldOutputJSON decides between JSON and terminal output. An explicit
// --json flag wins, then the configured default, then agent detection.
func ShouldOutputJSON(cmd *cobra.Command, configured bool) bool {
	if cmd != nil {
		if cmd.Flags().Changed("json") {
			jsonFlag, _ := cmd.Flags().GetBool("json")
			return jsonFlag
		}
		if f := cmd.Root().PersistentFlags().Lookup("json"); f != nil && f.Changed {
			return f.Value.String() == "true"
		}
	}
	if configured {
		return true
	}
	return IsAgentEnvironment()
}

// OutputJSON marshals and prints JSON using display.MarshalJSON
func OutputJSON(cmd *cobra.Command, v interface{}) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
