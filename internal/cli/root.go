package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var projectDirFlag string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sf-field-analysis",
	Short: "Field-level data dictionary for Salesforce objects",
	Long: `sf-field-analysis builds a field-level data dictionary for a Salesforce
object from a source format project.

It parses every field definition under objects/<Object>/fields, searches
the project metadata (Apex, flows, layouts, validation rules, reports and
more) for references to each field, optionally folds in org-only fields
and last-modified dates via the sf CLI, and writes the result as a
spreadsheet, CSV file or SQLite database.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectDirFlag, "project-dir", "p", ".", "Salesforce project directory")
}
