package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gbshahaq/sf-field-analysis/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Config prints the configuration an analysis run would use, after
merging defaults, sf-field-analysis.yml and SFFA_* environment variables.
Useful for checking which glob patterns each metadata category resolves
to.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigFromDir(projectDirFlag)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	out, err := cfg.Dump()
	if err != nil {
		return err
	}

	fmt.Print(string(out))
	return nil
}
