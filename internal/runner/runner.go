// =============================================================================
// Purchase Order Generator - Runner
// =============================================================================
//
// This module orchestrates one generation run.
//
// PROCESSING STEPS:
//   1. Check the record count
//   2. Build the dataset
//   3. Serialize it to CSV
//   4. Write the CSV file (single attempt, overwrite)
//   5. Optionally write the XLSX workbook
//   6. Optionally write the XML document
//
// Every error is terminal for the run. Nothing is written when the count is
// invalid.
//
// =============================================================================

package runner

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ginjaninja78/po-data-generator/internal/csvwriter"
	"github.com/ginjaninja78/po-data-generator/internal/generator"
	"github.com/ginjaninja78/po-data-generator/internal/logger"
	"github.com/ginjaninja78/po-data-generator/internal/metrics"
	"github.com/ginjaninja78/po-data-generator/internal/xlsxwriter"
	"github.com/ginjaninja78/po-data-generator/internal/xmlwriter"
	"github.com/ginjaninja78/po-data-generator/pkg/utils"
)

// ErrInvalidCountArg is returned when the count argument is not an integer.
var ErrInvalidCountArg = errors.New("invalid record count")

// =============================================================================
// OPTIONS AND RESULT
// =============================================================================

// Options configures a run.
type Options struct {
	// Count is the number of records to generate.
	Count int

	// Seed fixes the random source. Zero picks a random seed.
	Seed uint64

	// OutputDir is the directory the files are written to.
	OutputDir string

	// OutputFile is the CSV file name format (see utils.OutputFileName).
	OutputFile string

	// WriteXLSX additionally writes an XLSX workbook.
	WriteXLSX bool

	// WriteXML additionally writes an XML document.
	WriteXML bool

	// Progress is notified once per generated record. May be nil.
	Progress generator.Progress

	// Clock overrides the generator clock. Nil means time.Now.
	Clock func() time.Time
}

// Result describes a completed run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string

	// OutputFile is the absolute path of the CSV file.
	OutputFile string

	// XLSXFile is the path of the workbook, if one was written.
	XLSXFile string

	// XMLFile is the path of the XML document, if one was written.
	XMLFile string

	// Replaced reports whether the CSV file already existed and was overwritten.
	Replaced bool

	// Records is the number of records written.
	Records int

	// Seed is the seed actually used.
	Seed uint64

	// Stats contains timing information.
	Stats Stats
}

// Stats contains timing and size information for a run.
type Stats struct {
	GenerateTime  time.Duration
	SerializeTime time.Duration
	Bytes         int
}

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes generation runs.
type Runner struct {
	log     *logger.Logger
	metrics *metrics.Metrics
}

// New creates a Runner. m may be nil.
func New(log *logger.Logger, m *metrics.Metrics) *Runner {
	return &Runner{log: log, metrics: m}
}

// Run generates opts.Count records and writes them.
//
// RETURNS:
//   - The run result.
//   - generator.ErrInvalidCount if the count is not positive; nothing is
//     written in that case.
//   - A wrapped filesystem error if writing fails.
func (r *Runner) Run(opts Options) (Result, error) {
	result := Result{RunID: uuid.NewString()}
	log := r.log.With(zap.String("run_id", result.RunID))

	// =========================================================================
	// STEP 1: CHECK COUNT
	// =========================================================================

	if opts.Count <= 0 {
		return result, fmt.Errorf("%w: got %d", generator.ErrInvalidCount, opts.Count)
	}

	// =========================================================================
	// STEP 2: BUILD DATASET
	// =========================================================================

	result.Seed = opts.Seed
	if result.Seed == 0 {
		result.Seed = rand.Uint64()
	}

	var genOpts []generator.Option
	if opts.Clock != nil {
		genOpts = append(genOpts, generator.WithClock(opts.Clock))
	}
	gen := generator.NewSeeded(result.Seed, genOpts...)

	log.Debug("generating records", zap.Int("count", opts.Count), zap.Uint64("seed", result.Seed))

	start := time.Now()
	records, err := gen.Build(opts.Count, opts.Progress)
	if err != nil {
		return result, err
	}
	result.Stats.GenerateTime = time.Since(start)

	if r.metrics != nil {
		r.metrics.RecordsGenerated.Add(float64(len(records)))
	}

	// =========================================================================
	// STEP 3: SERIALIZE
	// =========================================================================

	start = time.Now()
	data, err := csvwriter.Marshal(records)
	if err != nil {
		return result, fmt.Errorf("failed to serialize records: %w", err)
	}
	result.Stats.SerializeTime = time.Since(start)
	result.Stats.Bytes = len(data)

	// =========================================================================
	// STEP 4: WRITE CSV
	// =========================================================================

	fm := utils.NewFileManager(opts.OutputDir)
	name := fm.OutputFileName(opts.OutputFile, len(records))

	result.Replaced = utils.FileExists(fm.Path(name))

	result.OutputFile, err = fm.Write(name, data)
	if err != nil {
		return result, err
	}
	result.Records = len(records)

	log.Info("wrote csv",
		zap.String("path", result.OutputFile),
		zap.Bool("replaced", result.Replaced),
		zap.Int("records", result.Records),
		zap.Int("bytes", result.Stats.Bytes),
		zap.Duration("generate_time", result.Stats.GenerateTime),
	)

	// =========================================================================
	// STEP 5: WRITE XLSX
	// =========================================================================

	if opts.WriteXLSX {
		workbook, err := xlsxwriter.Marshal(records)
		if err != nil {
			return result, fmt.Errorf("failed to build workbook: %w", err)
		}
		result.XLSXFile, err = fm.Write(utils.ReplaceExt(name, ".xlsx"), workbook)
		if err != nil {
			return result, err
		}
		log.Info("wrote xlsx", zap.String("path", result.XLSXFile))
	}

	// =========================================================================
	// STEP 6: WRITE XML
	// =========================================================================

	if opts.WriteXML {
		document, err := xmlwriter.Marshal(records)
		if err != nil {
			return result, fmt.Errorf("failed to build xml: %w", err)
		}
		result.XMLFile, err = fm.Write(utils.ReplaceExt(name, ".xml"), document)
		if err != nil {
			return result, err
		}
		log.Info("wrote xml", zap.String("path", result.XMLFile))
	}

	return result, nil
}

// =============================================================================
// ARGUMENT HANDLING
// =============================================================================

// ResolveCount turns the optional count argument into a record count.
//
// POLICY:
//   - No argument: defaultCount.
//   - An argument that is not an integer: ErrInvalidCountArg.
//   - An integer <= 0: generator.ErrInvalidCount.
func ResolveCount(args []string, defaultCount int) (int, error) {
	if len(args) == 0 {
		return defaultCount, nil
	}

	count, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("%w %q: must be a whole number", ErrInvalidCountArg, args[0])
	}
	if count <= 0 {
		return 0, fmt.Errorf("%w: got %d", generator.ErrInvalidCount, count)
	}

	return count, nil
}
