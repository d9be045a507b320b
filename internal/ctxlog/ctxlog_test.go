package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	assert.Same(t, discard, FromContext(context.Background()))

	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	FromContext(With(ctx, "file", "settings.hcl")).Info("parsed")
	assert.Contains(t, buf.String(), "file=settings.hcl")
	assert.Contains(t, buf.String(), "msg=parsed")
}
