// Package parser turns script text into an HCL native-syntax tree.
//
// The grammar engine is hclsyntax. Any error diagnostic it reports means the
// script has no tree at all; constructs that parse as HCL but fall outside
// the restricted language are left for the language tree builder to reject
// one by one.
package parser

import (
	"context"

	"github.com/Uchennaokeke444/Gradle/internal/ctxlog"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Tree is a successfully parsed script.
type Tree struct {
	FileName string
	Body     *hclsyntax.Body
	Bytes    []byte
}

// Parse parses text. The returned tree is nil when the parser rejected the
// input; the diagnostics then explain why.
func Parse(ctx context.Context, fileName string, text []byte) (*Tree, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx).With("file", fileName)

	file, diags := hclsyntax.ParseConfig(text, fileName, hcl.InitialPos)
	if diags.HasErrors() {
		logger.Debug("Parser rejected script.", "diagnostics", len(diags), "first", diags[0].Error())
		return nil, diags
	}
	if file == nil {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		// hclsyntax always produces its own body type.
		return nil, diags
	}

	logger.Debug("Script parsed.", "attributes", len(body.Attributes), "blocks", len(body.Blocks))
	return &Tree{FileName: fileName, Body: body, Bytes: file.Bytes}, diags
}
