package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dersalik/fibscope/internal/analysis"
	"github.com/dersalik/fibscope/internal/fault"
	"github.com/dersalik/fibscope/internal/parse"
)

// FileName is the default config file name.
const FileName = "fibscope.yaml"

// DefaultHistoryFile is where analysis runs are recorded.
const DefaultHistoryFile = "logs/analysis-log.csv"

// Environment variables that override the file.
const (
	EnvLogLevel       = "FIBSCOPE_LOG_LEVEL"
	EnvLogFormat      = "FIBSCOPE_LOG_FORMAT"
	EnvReportFormat   = "FIBSCOPE_REPORT_FORMAT"
	EnvIgnoreInternal = "FIBSCOPE_IGNORE_INTERNAL"
)

// Config represents the top-level fibscope.yaml configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Report   ReportConfig   `yaml:"report"`
	Log      LogConfig      `yaml:"log"`
	Import   ImportConfig   `yaml:"import"`
}

// AnalysisConfig selects the transactions that are analyzed.
type AnalysisConfig struct {
	IgnoreInternal bool   `yaml:"ignore_internal"`
	From           string `yaml:"from"` // dd/MM/yyyy, empty for no lower bound
	To             string `yaml:"to"` // dd/MM/yyyy, empty for no upper bound
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	Format            string `yaml:"format"`
	TopTypes          int    `yaml:"top_types"`
	TopCounterparties int    `yaml:"top_counterparties"`
	Largest           int    `yaml:"largest"`
	Recent            int    `yaml:"recent"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level   string `yaml:"level"`
	Format  string `yaml:"format"`
	History string `yaml:"history"` // analysis run log, empty to disable
}

// ImportConfig locates exports waiting to be analyzed.
type ImportConfig struct {
	Dir     string `yaml:"dir"`
	Archive bool   `yaml:"archive"`
}

// Load reads a fibscope.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			IgnoreInternal: true,
		},
		Report: ReportConfig{
			Format:            "text",
			TopTypes:          10,
			TopCounterparties: 5,
			Largest:           3,
			Recent:            10,
		},
		Log: LogConfig{
			Level:   "info",
			Format:  "console",
			History: DefaultHistoryFile,
		},
		Import: ImportConfig{
			Dir: "import",
		},
	}
}

// LoadDotEnv loads variables from a .env file at path, if present.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from FIBSCOPE_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(EnvReportFormat); v != "" {
		c.Report.Format = v
	}
	if v := os.Getenv(EnvIgnoreInternal); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &fault.ValidationError{Field: EnvIgnoreInternal, Reason: fmt.Sprintf("%q is not a boolean", v)}
		}
		c.Analysis.IgnoreInternal = b
	}
	return nil
}

// Validate checks the config for values no command can work with.
func (c *Config) Validate() error {
	switch c.Report.Format {
	case "text", "json":
	default:
		return &fault.ValidationError{Field: "report.format", Reason: fmt.Sprintf("%q is not text or json", c.Report.Format)}
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return &fault.ValidationError{Field: "log.format", Reason: fmt.Sprintf("%q is not console or json", c.Log.Format)}
	}
	limits := []struct {
		field string
		n     int
	}{
		{"report.top_types", c.Report.TopTypes},
		{"report.top_counterparties", c.Report.TopCounterparties},
		{"report.largest", c.Report.Largest},
		{"report.recent", c.Report.Recent},
	}
	for _, l := range limits {
		if l.n < 0 {
			return &fault.ValidationError{Field: l.field, Reason: "must not be negative"}
		}
	}
	if c.Import.Dir == "" {
		return &fault.ValidationError{Field: "import.dir", Reason: "must not be blank"}
	}
	_, _, err := c.Range()
	return err
}

// Range returns the configured analysis bounds. Missing bounds are open.
func (c *Config) Range() (from, to time.Time, err error) {
	all := analysis.AllTime()
	from, to = all.From, all.To

	if c.Analysis.From != "" {
		if from, err = parse.Date(c.Analysis.From); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("analysis.from: %w", err)
		}
	}
	if c.Analysis.To != "" {
		if to, err = parse.Date(c.Analysis.To); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("analysis.to: %w", err)
		}
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, &fault.ValidationError{Field: "analysis.from", Reason: "must not be after analysis.to"}
	}
	return from, to, nil
}

// Options converts the analysis section into analysis.Options.
func (c *Config) Options() (analysis.Options, error) {
	from, to, err := c.Range()
	if err != nil {
		return analysis.Options{}, err
	}
	return analysis.Options{IgnoreInternal: c.Analysis.IgnoreInternal, From: from, To: to}, nil
}
