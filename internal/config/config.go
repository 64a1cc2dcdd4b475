// =============================================================================
// Transcript Converter - Configuration Module
// =============================================================================
//
// This module loads the main application configuration from a YAML file.
//
// CONFIGURATION FILE (config.yaml):
//   input_dir: ./input
//   output_dir: ./output
//   input_archive_dir: ./input_archive
//   output_archive_dir: ./output_archive
//   log_level: info               # debug | info | warn | error
//   log_format: text              # text | json
//   output_file_format: "{original}_{timestamp}"
//   output_formats: [json, xml, xlsx, csv]
//   timezone: UTC                 # zone for dates that carry none
//   archive_input: false
//   continue_on_warning: true
//   notice:
//     product_name: SchoolPower
//   attendance:
//     keep_unmatched: false
//   csv:
//     delimiter: comma            # comma | tab | pipe | semicolon
//     omit_header: false
//     use_crlf: false
//
// A missing configuration file is not an error: defaults apply.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// InputDir is where transcript documents are picked up from when a
	// relative file name is given. Default: "./input"
	InputDir string `yaml:"input_dir" validate:"required"`

	// OutputDir receives the rendered reports. Default: "./output"
	OutputDir string `yaml:"output_dir" validate:"required"`

	// InputArchiveDir receives the source document after a successful run
	// when ArchiveInput is set. Default: "./input_archive"
	InputArchiveDir string `yaml:"input_archive_dir" validate:"required"`

	// OutputArchiveDir receives a copy of every rendered report when
	// ArchiveInput is set. Default: "./output_archive"
	OutputArchiveDir string `yaml:"output_archive_dir" validate:"required"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging. Default: "info"
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat selects the slog handler. Default: "text"
	LogFormat string `yaml:"log_format" validate:"oneof=text json"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputFileFormat names output files (without extension).
	// Placeholders: {uuid}, {timestamp}, {date}, {original}.
	// Default: "{original}_{timestamp}"
	OutputFileFormat string `yaml:"output_file_format" validate:"required"`

	// OutputFormats lists the renderings written for each report.
	// Default: ["json"]
	OutputFormats []string `yaml:"output_formats" validate:"min=1,unique,dive,oneof=json xml xlsx csv"`

	// CSV configures the CSV dialect of the attendance ledger.
	CSV CSVConfig `yaml:"csv"`

	// =========================================================================
	// TRANSFORM SETTINGS
	// =========================================================================

	// Timezone is the IANA zone applied to date strings without an offset.
	// Default: "UTC"
	Timezone string `yaml:"timezone" validate:"timezone"`

	// Notice configures the disabled-school notice.
	Notice NoticeConfig `yaml:"notice"`

	// Attendance configures the attendance ledger.
	Attendance AttendanceConfig `yaml:"attendance"`

	// =========================================================================
	// PROCESSING SETTINGS
	// =========================================================================

	// ArchiveInput moves the source document to InputArchiveDir and copies
	// outputs to OutputArchiveDir after a successful run. Default: false
	ArchiveInput bool `yaml:"archive_input"`

	// ContinueOnWarning lets a run proceed when document validation reports
	// warnings. Validation errors always stop the run. Default: true
	ContinueOnWarning *bool `yaml:"continue_on_warning"`
}

// NoticeConfig holds the disabled-notice settings.
type NoticeConfig struct {
	// ProductName is named in the notice suffix. Default: "SchoolPower"
	ProductName string `yaml:"product_name"`
}

// AttendanceConfig holds the attendance ledger settings.
type AttendanceConfig struct {
	// KeepUnmatched keeps attendance events whose enrollment matches no
	// section, with empty period and name. Default: false (skip them)
	KeepUnmatched bool `yaml:"keep_unmatched"`
}

// CSVConfig holds the CSV output dialect.
type CSVConfig struct {
	// Delimiter names the field separator. Default: "comma"
	Delimiter string `yaml:"delimiter" validate:"omitempty,oneof=comma tab pipe semicolon"`

	// OmitHeader drops the header row.
	OmitHeader bool `yaml:"omit_header"`

	// UseCRLF ends lines with \r\n.
	UseCRLF bool `yaml:"use_crlf"`
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Location returns the configured time zone. The zone is checked during
// validation, so an error here means the config was built by hand.
func (c *MainConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// ShouldContinueOnWarning reports the effective ContinueOnWarning value.
func (c *MainConfig) ShouldContinueOnWarning() bool {
	return c.ContinueOnWarning == nil || *c.ContinueOnWarning
}

// SlogLevel maps LogLevel to a slog.Level.
func (c *MainConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *MainConfig {
	cfg := &MainConfig{}
	applyMainConfigDefaults(cfg)
	return cfg
}

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct. If the file does not exist, the
//     defaults are returned.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file: defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyMainConfigDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.InputDir == "" {
		config.InputDir = "./input"
	}
	if config.OutputDir == "" {
		config.OutputDir = "./output"
	}
	if config.InputArchiveDir == "" {
		config.InputArchiveDir = "./input_archive"
	}
	if config.OutputArchiveDir == "" {
		config.OutputArchiveDir = "./output_archive"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if config.OutputFileFormat == "" {
		config.OutputFileFormat = "{original}_{timestamp}"
	}
	if len(config.OutputFormats) == 0 {
		config.OutputFormats = []string{FormatJSON}
	}
	if config.Timezone == "" {
		config.Timezone = "UTC"
	}
	if config.Notice.ProductName == "" {
		config.Notice.ProductName = "SchoolPower"
	}
}

// Validate checks the configuration's struct tags.
func Validate(config *MainConfig) error {
	v := validator.New()
	if err := v.Struct(config); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return err
	}
	return nil
}
