// =============================================================================
// Transcript Converter - Converter Module
// =============================================================================
//
// This module orchestrates one conversion run: one transcript document in,
// one report out in every configured format.
//
// CONVERSION PIPELINE:
//   1. Fetch the raw document from its source
//   2. Validate the document (hygiene findings, see internal/validation)
//   3. Transform the document into a report
//   4. Render the report in each output format (concurrently)
//   5. Write the output files
//   6. Archive the input document and outputs (optional)
//
// On failure an error log is written to the output directory and the input
// document stays where it is.
//
// CONCURRENCY:
//   A run transforms exactly one document. Only the rendering and writing of
//   output formats fans out, one goroutine per format.
//
// =============================================================================

package converter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/transcript-converter/internal/config"
	"github.com/ginjaninja78/transcript-converter/internal/csvwriter"
	"github.com/ginjaninja78/transcript-converter/internal/source"
	"github.com/ginjaninja78/transcript-converter/internal/transcript"
	"github.com/ginjaninja78/transcript-converter/internal/types"
	"github.com/ginjaninja78/transcript-converter/internal/validation"
	"github.com/ginjaninja78/transcript-converter/internal/xlsxwriter"
	"github.com/ginjaninja78/transcript-converter/internal/xmlwriter"
	"github.com/ginjaninja78/transcript-converter/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of one conversion run.
type Result struct {
	// FilePath is the path of the input document ("" for in-memory sources).
	FilePath string

	// RunID identifies the run in logs and error log files.
	RunID string

	// OutputFiles are the written reports, in configured format order.
	// This is empty if processing failed or for a dry run.
	OutputFiles []string

	// Report is the transformed report. It is nil if the transform did not run
	// or failed.
	Report *types.Report

	// Validation holds the document's validation findings.
	Validation *validation.ValidationResult

	// Success indicates whether the processing was successful.
	Success bool

	// Disabled is true when the school has disabled transcript access.
	Disabled bool

	// Error contains the error if processing failed.
	Error error

	// ErrorLog is the path of the error log written for a failed run.
	ErrorLog string

	// Stats contains processing statistics.
	Stats ProcessingStats
}

// ProcessingStats contains statistics about the processing.
type ProcessingStats struct {
	Sections    int
	Assignments int
	Attendances int

	// Warnings is the number of validation warnings.
	Warnings int

	// ProcessingTime is the time taken by the run.
	ProcessingTime time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Options adjusts a single run.
type Options struct {
	// Formats overrides the configured output formats when non-empty.
	Formats []string

	// DryRun transforms without writing any file.
	DryRun bool
}

// Converter handles the conversion of a single transcript document.
type Converter struct {
	src         source.Source
	inputPath   string
	cfg         *config.MainConfig
	opts        Options
	files       *utils.FileManager
	transformer *transcript.Transformer
	validator   *validation.Validator
	logger      *slog.Logger
}

// =============================================================================
// CONSTRUCTOR
// =============================================================================

// New creates a Converter for the document at inputPath.
//
// PARAMETERS:
//   - inputPath: The path to the input document.
//   - cfg: The main application configuration.
//   - opts: Per-run options.
//   - logger: Receives progress and anomaly logs. Nil discards them.
//
// RETURNS:
//   - A new Converter instance.
//   - An error if the configured time zone cannot be loaded.
func New(inputPath string, cfg *config.MainConfig, opts Options, logger *slog.Logger) (*Converter, error) {
	return NewWithSource(source.File{Path: inputPath}, inputPath, cfg, opts, logger)
}

// NewWithSource creates a Converter that fetches from src. inputPath names
// the document for output naming and archival and may be empty.
func NewWithSource(src source.Source, inputPath string, cfg *config.MainConfig, opts Options, logger *slog.Logger) (*Converter, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	for _, format := range opts.Formats {
		if !isKnownFormat(format) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to load time zone: %w", err)
	}

	return &Converter{
		src:       src,
		inputPath: inputPath,
		cfg:       cfg,
		opts:      opts,
		files: utils.NewFileManager(cfg.InputDir, cfg.OutputDir,
			cfg.InputArchiveDir, cfg.OutputArchiveDir),
		transformer: transcript.New(transcript.Options{
			Location:    loc,
			ProductName: cfg.Notice.ProductName,
			Attendance:  transcript.AttendanceOptions{KeepUnmatched: cfg.Attendance.KeepUnmatched},
			Logger:      logger,
		}),
		validator: validation.NewValidator(transcript.NewDateParser(loc)),
		logger:    logger,
	}, nil
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the conversion pipeline for the document.
//
// RETURNS:
//   - A Result struct containing the outcome of the processing.
func (c *Converter) Run(ctx context.Context) (result Result) {
	startTime := time.Now()
	result = Result{
		FilePath: c.inputPath,
		RunID:    uuid.NewString(),
	}
	log := c.logger.With("run_id", result.RunID)
	if c.inputPath != "" {
		log = log.With("input", c.inputPath)
	}

	defer func() {
		result.Stats.ProcessingTime = time.Since(startTime)
	}()

	// =========================================================================
	// STEP 1: FETCH
	// =========================================================================

	log.Info("processing document")

	doc, err := c.src.Fetch(ctx)
	if err != nil {
		return c.fail(result, log, fmt.Errorf("failed to fetch document: %w", err))
	}

	// =========================================================================
	// STEP 2: VALIDATE
	// =========================================================================

	findings := c.validator.ValidateDocument(doc)
	result.Validation = findings
	result.Stats.Warnings = findings.WarningCount

	for _, f := range findings.Errors {
		log.Warn("validation finding",
			"severity", f.Severity, "record", f.Record, "field", f.Field,
			"value", f.Value, "message", f.Message)
	}

	if !findings.IsValid {
		return c.fail(result, log, fmt.Errorf("%w: %d error(s)", ErrValidation, findings.ErrorCount))
	}
	if findings.WarningCount > 0 && !c.cfg.ShouldContinueOnWarning() {
		return c.fail(result, log, fmt.Errorf("%w: %d warning(s) and continue_on_warning is off",
			ErrValidation, findings.WarningCount))
	}

	// =========================================================================
	// STEP 3: TRANSFORM
	// =========================================================================

	report, err := c.transformer.Transform(doc)
	if err != nil {
		return c.fail(result, log, fmt.Errorf("failed to transform document: %w", err))
	}

	result.Report = report
	result.Disabled = report.IsDisabled()
	result.Stats.Sections = len(report.Sections)
	result.Stats.Assignments = report.AssignmentCount()
	result.Stats.Attendances = len(report.Attendances)

	if c.opts.DryRun {
		log.Info("dry run complete", "sections", result.Stats.Sections,
			"attendances", result.Stats.Attendances, "disabled", result.Disabled)
		result.Success = true
		return result
	}

	// =========================================================================
	// STEP 4-5: RENDER AND WRITE OUTPUTS
	// =========================================================================

	archive := c.cfg.ArchiveInput && c.inputPath != ""
	if err := c.files.EnsureDirectories(archive); err != nil {
		return c.fail(result, log, err)
	}

	outputs, err := c.writeOutputs(ctx, report)
	if err != nil {
		return c.fail(result, log, err)
	}
	result.OutputFiles = outputs

	for _, path := range outputs {
		log.Info("wrote output", "path", path)
	}

	// =========================================================================
	// STEP 6: ARCHIVE
	// =========================================================================

	if archive {
		if err := c.archiveFiles(outputs); err != nil {
			// Archival failures are logged, not fatal.
			log.Warn("failed to archive files", "error", err)
		}
	}

	result.Success = true
	log.Info("document processed",
		"sections", result.Stats.Sections,
		"assignments", result.Stats.Assignments,
		"attendances", result.Stats.Attendances,
		"disabled", result.Disabled,
		"duration", time.Since(startTime))

	return result
}

// fail records err on result and writes the error log.
func (c *Converter) fail(result Result, log *slog.Logger, err error) Result {
	result.Error = err
	log.Error("processing failed", "error", err)

	if c.opts.DryRun {
		return result
	}
	if mkErr := os.MkdirAll(c.cfg.OutputDir, 0755); mkErr != nil {
		log.Warn("failed to create output directory for error log", "error", mkErr)
		return result
	}

	path, logErr := utils.WriteErrorLog(c.errorLogEntries(result), c.cfg.OutputDir)
	if logErr != nil {
		log.Warn("failed to write error log", "error", logErr)
		return result
	}
	result.ErrorLog = path
	return result
}

// errorLogEntries lists the run error followed by every validation error.
func (c *Converter) errorLogEntries(result Result) []utils.ErrorLogEntry {
	now := time.Now()
	fileName := filepath.Base(c.inputPath)

	entry := utils.ErrorLogEntry{
		Timestamp:    now,
		FileName:     fileName,
		ErrorType:    errorType(result.Error),
		ErrorMessage: result.Error.Error(),
	}
	var dateErr *transcript.DateError
	if errors.As(result.Error, &dateErr) {
		entry.Record, entry.FieldName, entry.FieldValue = dateErr.Record, dateErr.Field, dateErr.Value
	}
	entries := []utils.ErrorLogEntry{entry}

	if result.Validation != nil {
		for _, f := range result.Validation.Errors {
			entries = append(entries, utils.ErrorLogEntry{
				Timestamp:    now,
				FileName:     fileName,
				ErrorType:    "validation_" + f.Severity,
				ErrorMessage: f.Message,
				Record:       f.Record,
				FieldName:    f.Field,
				FieldValue:   f.Value,
			})
		}
	}
	return entries
}

func errorType(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, transcript.ErrMalformedDate):
		return "malformed_date"
	case errors.Is(err, source.ErrNoDocument):
		return "empty_document"
	default:
		return "processing"
	}
}

// =============================================================================
// OUTPUT
// =============================================================================

// formats returns the formats to write for this run.
func (c *Converter) formats() []string {
	if len(c.opts.Formats) > 0 {
		return c.opts.Formats
	}
	return c.cfg.OutputFormats
}

// writeOutputs renders and writes every format concurrently.
//
// RETURNS:
//   - The written paths in format order.
//   - The first error encountered.
func (c *Converter) writeOutputs(ctx context.Context, report *types.Report) ([]string, error) {
	formats := c.formats()
	paths := make([]string, len(formats))
	original := "report"
	if c.inputPath != "" {
		original = utils.OriginalName(c.inputPath)
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			data, err := Render(report, format, c.cfg)
			if err != nil {
				return err
			}

			name := utils.GenerateOutputFileName(c.cfg.OutputFileFormat,
				map[string]string{"original": original}, format)
			path := filepath.Join(c.cfg.OutputDir, name)

			if err := os.WriteFile(path, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s output: %w", format, err)
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// Render encodes report in the named output format. cfg supplies the CSV
// dialect; nil means defaults.
func Render(report *types.Report, format string, cfg *config.MainConfig) ([]byte, error) {
	switch format {
	case config.FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to generate JSON: %w", err)
		}
		return append(data, '\n'), nil
	case config.FormatXML:
		return xmlwriter.Generate(report)
	case config.FormatXLSX:
		return xlsxwriter.Generate(report)
	case config.FormatCSV:
		var settings csvwriter.Settings
		if cfg != nil {
			settings = csvwriter.Settings{
				Delimiter:  cfg.CSV.Delimiter,
				OmitHeader: cfg.CSV.OmitHeader,
				UseCRLF:    cfg.CSV.UseCRLF,
			}
		}
		return csvwriter.Generate(report, settings)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func isKnownFormat(format string) bool {
	switch format {
	case config.FormatJSON, config.FormatXML, config.FormatXLSX, config.FormatCSV:
		return true
	}
	return false
}

// archiveFiles moves the input document and copies every output to the
// archive directories.
func (c *Converter) archiveFiles(outputs []string) error {
	var errs []error
	if _, err := c.files.ArchiveInputFile(c.inputPath); err != nil {
		errs = append(errs, fmt.Errorf("input: %w", err))
	}
	for _, path := range outputs {
		if _, err := c.files.ArchiveOutputFile(path); err != nil {
			errs = append(errs, fmt.Errorf("output %s: %w", filepath.Base(path), err))
		}
	}
	return errors.Join(errs...)
}
