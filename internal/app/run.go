package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Uchennaokeke444/Gradle/internal/ctxlog"
	"github.com/Uchennaokeke444/Gradle/internal/evaluator"
	"github.com/Uchennaokeke444/Gradle/internal/fsutil"
	"github.com/Uchennaokeke444/Gradle/internal/report"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/Uchennaokeke444/Gradle/internal/settings"
)

// ErrNotEvaluated is returned by Run when at least one script was rejected.
// The reasons have already been reported.
var ErrNotEvaluated = errors.New("one or more scripts were not evaluated")

// ScriptExtension is the file extension of scripts found in directories.
const ScriptExtension = ".hcl"

// Run evaluates every configured script against a fresh target and writes a
// report for each.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	scripts, err := fsutil.ExpandPaths(cfg.ScriptPaths, ScriptExtension)
	if err != nil {
		return fmt.Errorf("failed to find scripts: %w", err)
	}
	if len(scripts) == 0 {
		a.logger.Warn("No scripts found, evaluation not required.", "paths", cfg.ScriptPaths)
		return nil
	}

	rejected := 0
	for i, path := range scripts {
		if err := ctx.Err(); err != nil {
			a.logger.Warn("Evaluation interrupted.", "evaluated", i, "remaining", len(scripts)-i)
			return fmt.Errorf("evaluation interrupted: %w", err)
		}
		ok, err := a.runScript(ctx, cfg, path)
		if err != nil {
			return err
		}
		if !ok {
			rejected++
		}
	}

	a.logger.Info("Evaluation finished.", "scripts", len(scripts), "rejected", rejected)
	if rejected > 0 {
		return ErrNotEvaluated
	}
	return nil
}

func (a *App) runScript(ctx context.Context, cfg *Config, path string) (bool, error) {
	src, err := evaluator.SourceFromFile(path)
	if err != nil {
		return false, err
	}

	rootDir := cfg.RootDir
	if rootDir == "" {
		rootDir = filepath.Dir(path)
	}
	target, err := newTarget(cfg.Context, rootDir)
	if err != nil {
		return false, err
	}

	res, err := a.evaluator.Evaluate(ctx, target, src)
	if err != nil {
		return false, fmt.Errorf("evaluation of %s failed: %w", path, err)
	}

	r := report.Report{Script: path, Result: res, Target: target}
	if err := report.Write(ctx, a.outW, cfg.OutputFormat, r); err != nil {
		return false, err
	}
	_, evaluated := res.(evaluator.Evaluated)
	return evaluated, nil
}

// newTarget creates the object a script of the given context configures.
func newTarget(ec schema.EvaluationContext, rootDir string) (any, error) {
	switch ec {
	case schema.SettingsScript:
		return settings.New(rootDir), nil
	case schema.PluginsBlock:
		return settings.NewPluginsReceiver(), nil
	default:
		return nil, fmt.Errorf("no target for %s scripts", ec)
	}
}
