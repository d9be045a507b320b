package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/Uchennaokeke444/Gradle/internal/ctxlog"
)

// ValidateRegistry builds the schema of every registered root so that a
// mismatch between host Go types and their function declarations is found
// before any script runs.
func (p *Provider) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, ec := range p.registry.Contexts() {
		root, _ := p.registry.Root(ec)
		s, err := p.build(root, ec)
		if err != nil {
			errs = append(errs, fmt.Sprintf("context '%s' (%s): %v", ec, root, err))
			continue
		}
		logger.Debug("Schema validated.", "context", ec.String(), "classes", len(s.DataClasses()))
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}
