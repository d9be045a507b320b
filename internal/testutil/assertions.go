package testutil

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertEvaluated checks the report output for a successful evaluation of
// the named script, relative to the harness directory.
func AssertEvaluated(t *testing.T, result *HarnessResult, script string) {
	t.Helper()

	want := fmt.Sprintf("%s evaluated", result.path(script))
	require.True(t,
		strings.Contains(result.Output, want),
		"expected %q in report output:\n%s", want, result.Output,
	)
}

// AssertNotEvaluated checks the report output for a rejected evaluation of
// the named script.
func AssertNotEvaluated(t *testing.T, result *HarnessResult, script string) {
	t.Helper()

	want := fmt.Sprintf("%s not evaluated", result.path(script))
	require.True(t,
		strings.Contains(result.Output, want),
		"expected %q in report output:\n%s", want, result.Output,
	)
}

func (r *HarnessResult) path(script string) string {
	return filepath.Join(r.Dir, script)
}
