package langtree

import (
	"context"
	"sort"
	"strings"

	"github.com/Uchennaokeke444/Gradle/internal/ctxlog"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Result is the language tree of one script. Statements at the top of the
// script are wrapped in TopLevelBlock, the block run against the script's
// implicit receiver. Failures are in source order and include those found
// inside nested blocks.
type Result struct {
	TopLevelBlock *Block
	Failures      []*UnsupportedConstruct
}

// Elements returns the well-formed top-level statements.
func (r *Result) Elements() []Statement {
	if r == nil || r.TopLevelBlock == nil {
		return nil
	}
	return r.TopLevelBlock.Statements
}

// Builder converts syntax trees into language trees.
type Builder struct{}

// NewBuilder creates a language tree builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build converts body. It never fails as a whole: fragments the restricted
// language does not accept are recorded as failures and left out.
func (b *Builder) Build(ctx context.Context, body *hclsyntax.Body, id SourceIdentifier) *Result {
	logger := ctxlog.FromContext(ctx).With("file", id.FileName)

	c := &converter{id: id}
	top := c.block(body)

	logger.Debug("Language tree built.", "statements", len(top.Statements), "failures", len(c.failures))
	return &Result{TopLevelBlock: top, Failures: c.failures}
}

type converter struct {
	id       SourceIdentifier
	failures []*UnsupportedConstruct
}

func (c *converter) source(r hcl.Range) SourceData {
	return SourceData{Identifier: c.id, Range: r}
}

func (c *converter) fail(feature UnsupportedFeature, r hcl.Range) {
	c.failures = append(c.failures, &UnsupportedConstruct{Feature: feature, SourceData: c.source(r)})
}

// bodyItem is an attribute or a block, in one list so they can be put back
// into source order. hclsyntax keeps attributes in a map.
type bodyItem struct {
	start int
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

func (c *converter) block(body *hclsyntax.Body) *Block {
	out := &Block{SourceData: c.source(body.SrcRange)}

	items := make([]bodyItem, 0, len(body.Attributes)+len(body.Blocks))
	for _, a := range body.Attributes {
		items = append(items, bodyItem{start: a.SrcRange.Start.Byte, attr: a})
	}
	for _, blk := range body.Blocks {
		items = append(items, bodyItem{start: blk.Range().Start.Byte, block: blk})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].start < items[j].start })

	for _, item := range items {
		var st Statement
		var ok bool
		if item.attr != nil {
			st, ok = c.assignment(item.attr)
		} else {
			st, ok = c.call(item.block)
		}
		if ok {
			out.Statements = append(out.Statements, st)
		}
	}
	return out
}

func (c *converter) assignment(a *hclsyntax.Attribute) (Statement, bool) {
	rhs, ok := c.expr(a.Expr)
	if !ok {
		return nil, false
	}
	return &Assignment{
		Lhs:        &PropertyAccess{Name: a.Name, SourceData: c.source(a.NameRange)},
		Rhs:        rhs,
		SourceData: c.source(a.SrcRange),
	}, true
}

func (c *converter) call(blk *hclsyntax.Block) (Statement, bool) {
	args := make([]Expr, 0, len(blk.Labels))
	for i, label := range blk.Labels {
		r := blk.TypeRange
		if i < len(blk.LabelRanges) {
			r = blk.LabelRanges[i]
		}
		args = append(args, &Literal{Value: cty.StringVal(label), SourceData: c.source(r)})
	}
	return &FunctionCall{
		Name:       blk.Type,
		Args:       args,
		Configure:  c.block(blk.Body),
		SourceData: c.source(blk.Range()),
	}, true
}

func (c *converter) expr(e hclsyntax.Expression) (Expr, bool) {
	switch v := e.(type) {
	case *hclsyntax.LiteralValueExpr:
		return c.literal(v.Val, v.SrcRange)

	case *hclsyntax.TemplateExpr:
		var sb strings.Builder
		for _, part := range v.Parts {
			lit, isLit := part.(*hclsyntax.LiteralValueExpr)
			if !isLit || !lit.Val.Type().Equals(cty.String) || lit.Val.IsNull() {
				c.fail(TemplateInterpolation, part.Range())
				return nil, false
			}
			sb.WriteString(lit.Val.AsString())
		}
		return &Literal{Value: cty.StringVal(sb.String()), SourceData: c.source(v.SrcRange)}, true

	case *hclsyntax.TemplateWrapExpr:
		c.fail(TemplateInterpolation, v.SrcRange)
		return nil, false

	case *hclsyntax.ParenthesesExpr:
		return c.expr(v.Expression)

	case *hclsyntax.ScopeTraversalExpr:
		return c.traversal(v.Traversal)

	case *hclsyntax.FunctionCallExpr:
		if v.ExpandFinal {
			c.fail(ArgumentExpansion, v.Range())
			return nil, false
		}
		call := &FunctionCall{Name: v.Name, SourceData: c.source(v.Range())}
		ok := true
		for _, arg := range v.Args {
			a, argOK := c.expr(arg)
			if !argOK {
				ok = false
				continue
			}
			call.Args = append(call.Args, a)
		}
		if !ok {
			return nil, false
		}
		return call, true

	case *hclsyntax.UnaryOpExpr:
		if lit, isLit := v.Val.(*hclsyntax.LiteralValueExpr); isLit && v.Op == hclsyntax.OpNegate &&
			lit.Val.Type().Equals(cty.Number) && !lit.Val.IsNull() {
			return &Literal{Value: lit.Val.Negate(), SourceData: c.source(v.SrcRange)}, true
		}
		c.fail(UnaryOperation, v.SrcRange)
		return nil, false

	case *hclsyntax.BinaryOpExpr:
		c.fail(BinaryOperation, v.SrcRange)
	case *hclsyntax.ConditionalExpr:
		c.fail(ConditionalExpression, v.SrcRange)
	case *hclsyntax.ForExpr:
		c.fail(ForExpression, v.SrcRange)
	case *hclsyntax.SplatExpr:
		c.fail(SplatExpression, v.SrcRange)
	case *hclsyntax.IndexExpr:
		c.fail(Indexing, v.SrcRange)
	case *hclsyntax.TupleConsExpr:
		c.fail(CollectionLiteral, v.SrcRange)
	case *hclsyntax.ObjectConsExpr:
		c.fail(CollectionLiteral, v.SrcRange)
	case *hclsyntax.RelativeTraversalExpr:
		c.fail(MemberOfCallResult, v.SrcRange)
	default:
		c.fail(OtherExpression, e.Range())
	}
	return nil, false
}

func (c *converter) literal(val cty.Value, r hcl.Range) (Expr, bool) {
	if val.IsNull() {
		return &Null{SourceData: c.source(r)}, true
	}
	switch {
	case val.Type().Equals(cty.String), val.Type().Equals(cty.Number), val.Type().Equals(cty.Bool):
		return &Literal{Value: val, SourceData: c.source(r)}, true
	default:
		c.fail(UnsupportedLiteral, r)
		return nil, false
	}
}

func (c *converter) traversal(t hcl.Traversal) (Expr, bool) {
	var cur *PropertyAccess
	start := t.SourceRange()
	for _, step := range t {
		switch s := step.(type) {
		case hcl.TraverseRoot:
			cur = &PropertyAccess{Name: s.Name, SourceData: c.source(s.SrcRange)}
		case hcl.TraverseAttr:
			cur = &PropertyAccess{
				Receiver:   cur,
				Name:       s.Name,
				SourceData: c.source(hcl.RangeBetween(start, s.SrcRange)),
			}
		default:
			c.fail(Indexing, step.SourceRange())
			return nil, false
		}
	}
	if cur == nil {
		c.fail(OtherExpression, start)
		return nil, false
	}
	return cur, true
}
