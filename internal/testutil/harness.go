// Package testutil holds helpers shared by the application's integration tests.
package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Uchennaokeke444/Gradle/internal/app"
	"github.com/Uchennaokeke444/Gradle/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string // where the scripts were written
	Output    string // reports
	LogOutput string
	Err       error
	App       *app.App
}

// RunScripts writes files under a temporary directory and runs the app over
// that directory. cfg may leave ScriptPaths empty; it defaults to the whole
// directory. Modules replace the core ones when given.
func RunScripts(t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunScriptsWithContext(context.Background(), t, files, cfg, modules...)
}

// RunScriptsWithContext is RunScripts with a caller-provided context.
func RunScriptsWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	if len(cfg.ScriptPaths) == 0 {
		cfg.ScriptPaths = []string{tmpDir}
	} else {
		for i, p := range cfg.ScriptPaths {
			cfg.ScriptPaths[i] = filepath.Join(tmpDir, p)
		}
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	appConfig, err := app.NewConfig(cfg)
	require.NoError(t, err)

	out := &SafeBuffer{}
	logBuffer := &SafeBuffer{}
	result := &HarnessResult{Dir: tmpDir}

	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				if os.Getenv("GRADLE_TEST_LOGS") == "true" {
					t.Logf("--- HARNESS RECOVERED PANIC ---\n%q", fmt.Sprintf("%v", r))
				}
				panicErr = r
			}
		}()
		result.App = app.NewApp(out, logBuffer, appConfig, modules...)
	}()

	if panicErr != nil {
		result.LogOutput = logBuffer.String()
		result.Err = fmt.Errorf("application startup panicked | %v", panicErr)
		return result
	}

	result.Err = result.App.Run(ctx, appConfig)

	if os.Getenv("GRADLE_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	result.Output = out.String()
	result.LogOutput = logBuffer.String()
	return result
}
