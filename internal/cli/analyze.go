package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gbshahaq/sf-field-analysis/internal/analysis"
	"github.com/gbshahaq/sf-field-analysis/internal/config"
	"github.com/gbshahaq/sf-field-analysis/internal/corpus"
	"github.com/gbshahaq/sf-field-analysis/internal/export"
	"github.com/gbshahaq/sf-field-analysis/internal/git"
	"github.com/gbshahaq/sf-field-analysis/internal/match"
	"github.com/gbshahaq/sf-field-analysis/internal/metadata"
	"github.com/gbshahaq/sf-field-analysis/internal/salesforce"
)

var (
	objectFlag    string
	targetOrgFlag string
	outputFlag    string
	formatFlag    string
	openFlag      bool
	quietFlag     bool
	skipOrgFlag   bool
	watchFlag     bool
	workersFlag   int
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build the field dictionary for a Salesforce object",
	Long: `Analyze builds the field-level data dictionary for one object.

The pipeline:
  - Parses every field definition under objects/<Object>/fields
  - Loads the project metadata corpora (Apex, flows, layouts, validation
    rules, record types, flexipages, reports, email templates, LWC, Aura,
    profiles and permission sets)
  - Collects whole-word references to each field across the corpora
  - Queries the org via the sf CLI for last-modified dates and fields
    that exist only in the org (unless --skip-org)
  - Writes the dictionary as xlsx, csv or sqlite

Examples:
  # Analyze the Account object in the current project
  sf-field-analysis analyze --object Account

  # Write CSV into a specific file, without org queries
  sf-field-analysis analyze --object Invoice__c --format csv \
    --output invoice-fields.csv --skip-org

  # Re-run automatically when project metadata changes
  sf-field-analysis analyze --object Account --watch
`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	registerAnalyzeFlags(analyzeCmd)
}

func registerAnalyzeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&objectFlag, "object", "", "API name of the object to analyze")
	cmd.Flags().StringVarP(&targetOrgFlag, "target-org", "o", "", "sf CLI org alias for date and inventory queries")
	cmd.Flags().StringVar(&outputFlag, "output", "", "output file path")
	cmd.Flags().StringVar(&formatFlag, "format", "", "output format: xlsx, csv or sqlite")
	cmd.Flags().BoolVar(&openFlag, "open", false, "open the written file when done")
	cmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress bars and non-error output")
	cmd.Flags().BoolVar(&skipOrgFlag, "skip-org", false, "skip sf CLI queries and analyze local sources only")
	cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "watch for metadata changes and re-run analysis")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "field documents parsed concurrently (0 = one per CPU)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling analysis...")
		cancel()
	}()

	cfg, err := loadAnalyzeConfig(cmd)
	if err != nil {
		return err
	}

	if watchFlag {
		return runWatch(ctx, cfg, quietFlag)
	}

	return runAnalysis(ctx, cfg, quietFlag)
}

// loadAnalyzeConfig loads the project configuration and applies flag
// overrides on top. Flags win over environment variables and the config
// file.
func loadAnalyzeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfigFromDir(projectDirFlag)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	applyFlagOverrides(cmd, cfg)

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.RequireObject(cfg); err != nil {
		return nil, fmt.Errorf("%w, or pass --object", err)
	}

	return cfg, nil
}

func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("object") {
		cfg.Object = objectFlag
	}
	if flags.Changed("target-org") {
		cfg.TargetOrg = targetOrgFlag
	}
	if flags.Changed("output") {
		cfg.Output.Path = outputFlag
	}
	if flags.Changed("format") {
		cfg.Output.Format = formatFlag
	}
	if flags.Changed("open") {
		cfg.Output.Open = openFlag
	}
	if flags.Changed("skip-org") {
		cfg.Analysis.SkipOrg = skipOrgFlag
	}
	if flags.Changed("workers") {
		cfg.Analysis.Workers = workersFlag
	}
}

// runAnalysis executes one full analysis pass and writes the output file.
func runAnalysis(ctx context.Context, cfg *config.Config, quiet bool) error {
	start := time.Now()
	sourceRoot := cfg.SourceRoot()

	fieldsDir, err := metadata.FindFieldsDir(sourceRoot, cfg.Object)
	if err != nil {
		return err
	}

	loader, err := corpus.NewLoader(sourceRoot, corpus.ExpandObject(cfg.Categories, cfg.Object))
	if err != nil {
		return fmt.Errorf("failed to compile category patterns: %w", err)
	}
	library, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load metadata corpora: %w", err)
	}

	matcher, err := match.NewMatcher(match.WholeWord)
	if err != nil {
		return fmt.Errorf("failed to create matcher: %w", err)
	}
	defer matcher.Close()
	collector := analysis.NewCollector(library, matcher)

	dates, inventory := orgLookups(ctx, cfg, quiet)
	if ctx.Err() != nil {
		return errors.New("analysis cancelled")
	}

	assembler := analysis.NewAssembler(collector, cfg.Analysis.Workers, NewAnalyzeProgress(quiet))
	rows, stats, err := assembler.Assemble(fieldsDir, dates)
	if err != nil {
		return err
	}

	rows = analysis.MergeRemote(collector, rows, inventory)

	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	outPath := cfg.OutputPath(export.DefaultPath(cfg.Object, format))
	exporter, err := export.New(format)
	if err != nil {
		return err
	}

	gitOps := git.NewOperations()
	run := export.Run{
		Object:     cfg.Object,
		ProjectDir: absProjectDir(cfg.ProjectDir),
		Branch:     gitOps.CurrentBranch(cfg.ProjectDir),
		Commit:     gitOps.HeadCommit(cfg.ProjectDir),
		Timestamp:  time.Now(),
	}
	if err := exporter.Export(outPath, run, rows); err != nil {
		return fmt.Errorf("failed to export results: %w", err)
	}

	if !quiet {
		fmt.Printf("✓ Analyzed %d fields for %s in %.1fs\n", len(rows), cfg.Object, time.Since(start).Seconds())
		if stats.Skipped > 0 {
			fmt.Printf("  Skipped %d unreadable field documents\n", stats.Skipped)
		}
		if orgOnly := len(rows) - stats.Parsed; orgOnly > 0 {
			fmt.Printf("  Included %d org-only fields\n", orgOnly)
		}
		fmt.Printf("✓ Wrote %s\n", outPath)
	}

	if cfg.Output.Open {
		if err := export.Open(outPath); err != nil {
			log.Printf("Warning: could not open %s: %v", outPath, err)
		}
	}

	return nil
}

// orgLookups fetches last-modified dates and the remote field inventory.
// Both queries degrade to local-only analysis on failure.
func orgLookups(ctx context.Context, cfg *config.Config, quiet bool) (map[string]string, []analysis.RemoteField) {
	if cfg.Analysis.SkipOrg {
		return nil, nil
	}

	if !quiet {
		log.Println("Querying org for field dates and inventory...")
	}
	client := salesforce.NewClient(cfg.TargetOrg)

	dates, err := client.FieldDates(ctx, cfg.Object)
	if err != nil {
		log.Printf("Warning: proceeding without last-modified dates: %v", err)
		dates = nil
	}
	inventory, err := client.FieldInventory(ctx, cfg.Object)
	if err != nil {
		log.Printf("Warning: proceeding without the org field inventory: %v", err)
		inventory = nil
	}
	return dates, inventory
}

// runWatch performs an initial analysis and then re-runs it whenever
// project metadata changes, until the context is cancelled.
func runWatch(ctx context.Context, cfg *config.Config, quiet bool) error {
	if err := runAnalysis(ctx, cfg, quiet); err != nil {
		return err
	}

	loader, err := corpus.NewLoader(cfg.SourceRoot(), corpus.ExpandObject(cfg.Categories, cfg.Object))
	if err != nil {
		return fmt.Errorf("failed to compile category patterns: %w", err)
	}

	watcher, err := analysis.NewWatcher(cfg.SourceRoot(), loader, func(ctx context.Context, changed []string) {
		if err := runAnalysis(ctx, cfg, quiet); err != nil {
			log.Printf("Warning: analysis failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watch mode: %w", err)
	}

	watcher.Start(ctx)
	if !quiet {
		log.Println("Watching for metadata changes. Press Ctrl+C to stop.")
	}

	<-ctx.Done()
	watcher.Stop()
	if !quiet {
		log.Println("Watch mode stopped")
	}
	return nil
}

func absProjectDir(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
