package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/varunisrani/marketscope/internal/config"
	"github.com/varunisrani/marketscope/internal/model"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage MarketScope configuration",
	Long: `Manage MarketScope configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (MARKETSCOPE_*, .env is loaded first)
3. Config file (./config.yaml or ~/.marketscope/config.yaml)
4. Defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration after defaults, config file and environment are merged.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		shown := *appConfig
		shown.LLM.APIKey = redact(shown.LLM.APIKey)
		shown.Search.APIKey = redact(shown.Search.APIKey)

		data, err := yaml.Marshal(&shown)
		if err != nil {
			return fmt.Errorf("error marshaling config: %w", err)
		}

		banner(out, "Current Configuration")
		fmt.Fprintln(out, string(data))
		fmt.Fprintln(out, styleMuted.Render("Environment overrides use the MARKETSCOPE_ prefix, e.g. MARKETSCOPE_LLM_PROVIDER=anthropic"))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration file",
	Long:  `Create a default configuration file at ~/.marketscope/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.Dir()
		if err != nil {
			return err
		}
		path, err := writeDefaultConfig(dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		success(out, "Created default configuration: %s", path)
		fmt.Fprintf(out, "\nTo view the configuration:\n  marketscope config show\n")
		fmt.Fprintf(out, "\nAPI keys are best kept in the environment or a .env file:\n")
		fmt.Fprintf(out, "  OPENAI_API_KEY=sk-...\n  ANTHROPIC_API_KEY=sk-ant-...\n  SERPER_API_KEY=...\n")
		return nil
	},
}

// writeDefaultConfig writes the default configuration into dir and
// refuses to overwrite an existing file.
func writeDefaultConfig(dir string) (path string, err error) {
	path = filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists: %s\nUse 'marketscope config show' to view it, or delete it first to recreate", path)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(model.DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("error marshaling config: %w", err)
	}

	header := "# MarketScope configuration\n" +
		"#\n" +
		"# Every key can be overridden with MARKETSCOPE_<SECTION>_<KEY>,\n" +
		"# e.g. MARKETSCOPE_SERVER_PORT=8080.\n\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return "", fmt.Errorf("error writing config: %w", err)
	}
	return path, nil
}

func redact(key string) string {
	if key == "" {
		return ""
	}
	return "****"
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
