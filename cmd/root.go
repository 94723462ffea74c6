// =============================================================================
// Purchase Order Generator - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Run without a
// subcommand, the root command generates the purchase order CSV.
//
// COBRA CLI STRUCTURE:
//   rootCmd (pogen [count])
//   ├── validateCmd (pogen validate [file])
//   ├── serveCmd    (pogen serve)
//   └── versionCmd  (pogen version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/po-data-generator/internal/config"
	"github.com/ginjaninja78/po-data-generator/internal/generator"
	"github.com/ginjaninja78/po-data-generator/internal/logger"
	"github.com/ginjaninja78/po-data-generator/internal/runner"
)

// =============================================================================
// GLOBAL OPTIONS
// =============================================================================

// globalOptions holds the persistent flags shared by every command.
type globalOptions struct {
	// cfgFile is the path to the configuration file.
	cfgFile string

	// verbose forces debug logging.
	verbose bool
}

// generateOptions holds the root command flags.
type generateOptions struct {
	seed      uint64
	outputDir string
	xlsx      bool
	xml       bool
	progress  bool
}

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	global := &globalOptions{}
	opts := &generateOptions{}

	rootCmd := &cobra.Command{
		Use:   "pogen [count]",
		Short: "Purchase Order Generator - Write synthetic purchase orders to CSV",
		Long: `Purchase Order Generator creates a CSV file of randomized but
internally consistent purchase order records for demos and tests.

Every record carries 1-5 line items from a fixed catalog. Quantities, totals,
tax (10%) and grand totals are derived from those items.

Example Usage:
  pogen                       # Generate 10000 records into purchase_orders.csv
  pogen 500                   # Generate 500 records
  pogen 500 --seed 42         # Reproducible output
  pogen 500 --xlsx            # Also write purchase_orders.xlsx
  pogen 500 --xml             # Also write purchase_orders.xml
  pogen validate              # Check a generated file
  pogen serve                 # Serve the file over HTTP`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, global, opts)
		},
	}

	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================

	rootCmd.PersistentFlags().StringVar(
		&global.cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&global.verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	// ==========================================================================
	// GENERATE FLAGS
	// ==========================================================================

	rootCmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Random seed (0 picks one)")
	rootCmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory to write the CSV file to")
	rootCmd.Flags().BoolVar(&opts.xlsx, "xlsx", false, "Also write an XLSX workbook")
	rootCmd.Flags().BoolVar(&opts.xml, "xml", false, "Also write an XML document with line items")
	rootCmd.Flags().BoolVar(&opts.progress, "progress", false, "Show a progress bar on stderr")

	rootCmd.AddCommand(
		newValidateCmd(global),
		newServeCmd(global),
		newVersionCmd(),
	)

	return rootCmd
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. It is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command, global *globalOptions) (*config.Config, *logger.Logger, error) {
	explicit := false
	if f := cmd.Flag("config"); f != nil {
		explicit = f.Changed
	}

	cfg, err := config.Load(global.cfgFile, explicit)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if global.verbose {
		level = "debug"
	}

	log, err := logger.New(level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, log, nil
}

// =============================================================================
// GENERATE
// =============================================================================

// runGenerate is the main generation function.
//
// PROCESSING STEPS:
//  1. Load configuration and apply flag overrides
//  2. Resolve the record count
//  3. Run the generator
//  4. Report the result
func runGenerate(cmd *cobra.Command, args []string, global *globalOptions, opts *generateOptions) error {
	cfg, log, err := setup(cmd, global)
	if err != nil {
		return err
	}
	defer log.Sync()

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("xlsx") {
		cfg.WriteXLSX = opts.xlsx
	}
	if flags.Changed("xml") {
		cfg.WriteXML = opts.xml
	}

	count, err := runner.ResolveCount(args, cfg.DefaultCount)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Generating %d Purchase Order records...\n", count)

	var progress generator.Progress
	if opts.progress {
		progress = newProgressBar(cmd, count)
	}

	result, err := runner.New(log, nil).Run(runner.Options{
		Count:      count,
		Seed:       cfg.Seed,
		OutputDir:  cfg.OutputDir,
		OutputFile: cfg.OutputFile,
		WriteXLSX:  cfg.WriteXLSX,
		WriteXML:   cfg.WriteXML,
		Progress:   progress,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "✓ CSV file created successfully: %s\n", result.OutputFile)
	fmt.Fprintf(out, "✓ Total records: %d\n", result.Records)
	if result.XLSXFile != "" {
		fmt.Fprintf(out, "✓ XLSX file created successfully: %s\n", result.XLSXFile)
	}
	if result.XMLFile != "" {
		fmt.Fprintf(out, "✓ XML file created successfully: %s\n", result.XMLFile)
	}

	return nil
}

// newProgressBar renders generation progress on stderr.
func newProgressBar(cmd *cobra.Command, count int) *progressbar.ProgressBar {
	return progressbar.NewOptions64(
		int64(count),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetDescription("Generating"),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}
