package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Uchennaokeke444/Gradle/internal/report"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScriptPaths []string // files or directories of .hcl scripts
	Context     schema.EvaluationContext
	RootDir     string // empty means the directory of each script

	LogFormat    string
	LogLevel     string
	OutputFormat report.Format
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.ScriptPaths) == 0 {
		return nil, errors.New("at least one script path is required")
	}
	if cfg.Context == schema.UnknownScript {
		return nil, errors.New("an evaluation context is required")
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = report.FormatText
	}
	if !slices.Contains(report.Formats, cfg.OutputFormat) {
		return nil, fmt.Errorf("unknown output format %q", cfg.OutputFormat)
	}
	return &cfg, nil
}
