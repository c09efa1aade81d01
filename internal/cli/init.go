package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gbshahaq/sf-field-analysis/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration into the project directory",
	Long: `Init writes a commented sf-field-analysis.yml into the project
directory. The file documents every key and starts with pure defaults;
an existing configuration is never overwritten.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := config.WriteStarter(projectDirFlag)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Wrote %s\n", path)
	fmt.Println("Edit the object key, then run 'sf-field-analysis analyze'")
	return nil
}
