package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/implgen/config"
	"github.com/teranos/implgen/display"
)

// ConfigCmd groups configuration subcommands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialise implgen configuration",
	Long: `Show or initialise implgen configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (IMPLGEN_* prefix)
3. Project config (implgen.toml, nearest parent directory)
4. User config (~/.implgen/config.toml)
5. System config (/etc/implgen/config.toml)
6. Default values

Examples:
  implgen config show                 # Effective configuration as TOML
  implgen config show --format yaml   # ... as YAML
  implgen config show --sources       # Where every setting comes from
  implgen config init                 # Write implgen.toml here`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default implgen.toml",
	Long: `Write the default configuration to implgen.toml in dir (default: the
current directory). An existing file is kept as .back1, rotating older
backups up to .back3.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var (
	configFormat  string
	configSources bool
)

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	configShowCmd.Flags().BoolVar(&configSources, "sources", false, "List every setting with its source")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if configSources {
		info := config.Introspect()
		if display.ShouldOutputJSON(cmd, false) {
			return display.OutputJSON(cmd, info)
		}
		data := pterm.TableData{{"Key", "Value", "Source", "From"}}
		for _, s := range info.Settings {
			data = append(data, []string{s.Key, fmt.Sprint(s.Value), string(s.Source), s.SourcePath})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, table)
		return nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch configFormat {
	case "json":
		return display.OutputJSON(cmd, cfg)
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Fprintf(out, "# implgen configuration\n%s", data)
	case "toml":
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "# implgen configuration\n%s", data)
	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("config directory: %w", err)
	}

	path, err := config.Init(dir)
	if err != nil {
		return err
	}
	pterm.Success.Printf("Wrote %s\n", path)
	return nil
}
