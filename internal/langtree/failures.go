package langtree

import "fmt"

// UnsupportedFeature names an HCL construct the restricted language does
// not accept.
type UnsupportedFeature string

const (
	BinaryOperation       UnsupportedFeature = "binary operation"
	UnaryOperation        UnsupportedFeature = "unary operation"
	ConditionalExpression UnsupportedFeature = "conditional expression"
	ForExpression         UnsupportedFeature = "for expression"
	SplatExpression       UnsupportedFeature = "splat expression"
	Indexing              UnsupportedFeature = "index access"
	TemplateInterpolation UnsupportedFeature = "template interpolation"
	CollectionLiteral     UnsupportedFeature = "collection literal"
	MemberOfCallResult    UnsupportedFeature = "member access on a call result"
	ArgumentExpansion     UnsupportedFeature = "argument expansion"
	UnsupportedLiteral    UnsupportedFeature = "literal of unsupported type"
	OtherExpression       UnsupportedFeature = "expression"
)

// UnsupportedConstruct is a failing fragment of the tree.
type UnsupportedConstruct struct {
	Feature    UnsupportedFeature
	SourceData SourceData
}

// Error implements the error interface.
func (u *UnsupportedConstruct) Error() string {
	return fmt.Sprintf("%s: unsupported language feature: %s", u.SourceData, u.Feature)
}
