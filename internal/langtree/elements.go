package langtree

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// SourceIdentifier names the script a tree came from.
type SourceIdentifier struct {
	FileName string
}

// SourceData locates an element in its script.
type SourceData struct {
	Identifier SourceIdentifier
	Range      hcl.Range
}

func (s SourceData) String() string {
	return s.Range.String()
}

// Element is any node of the language tree.
type Element interface {
	Source() SourceData
}

// Statement is an element that may appear directly in a block.
type Statement interface {
	Element
	statement()
}

// Expr is an element that produces a value.
type Expr interface {
	Element
	expr()
}

// Block is an ordered list of statements run against one receiver.
type Block struct {
	Statements []Statement
	SourceData SourceData
}

// Assignment stores Rhs in the property named by Lhs.
type Assignment struct {
	Lhs        *PropertyAccess
	Rhs        Expr
	SourceData SourceData
}

// PropertyAccess reads Name from Receiver, or from the innermost implicit
// receiver that has it when Receiver is nil.
type PropertyAccess struct {
	Receiver   Expr
	Name       string
	SourceData SourceData
}

// FunctionCall invokes a function. Calls written as blocks carry a non-nil
// Configure block, possibly empty; calls in value position never do.
type FunctionCall struct {
	Name       string
	Args       []Expr
	Configure  *Block
	SourceData SourceData
}

// Literal is a constant string, number or bool.
type Literal struct {
	Value      cty.Value
	SourceData SourceData
}

// Null is the null literal.
type Null struct {
	SourceData SourceData
}

func (b *Block) Source() SourceData          { return b.SourceData }
func (a *Assignment) Source() SourceData     { return a.SourceData }
func (p *PropertyAccess) Source() SourceData { return p.SourceData }
func (f *FunctionCall) Source() SourceData   { return f.SourceData }
func (l *Literal) Source() SourceData        { return l.SourceData }
func (n *Null) Source() SourceData           { return n.SourceData }

func (*Assignment) statement()   {}
func (*FunctionCall) statement() {}

func (*PropertyAccess) expr() {}
func (*FunctionCall) expr()   {}
func (*Literal) expr()        {}
func (*Null) expr()           {}

// String renders the access as a traversal, e.g. `rootProject.name`.
func (p *PropertyAccess) String() string {
	var names []string
	var cur Expr = p
	for cur != nil {
		pa, ok := cur.(*PropertyAccess)
		if !ok {
			names = append(names, "<expr>")
			break
		}
		names = append(names, pa.Name)
		cur = pa.Receiver
	}
	traversal := make(hcl.Traversal, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		if len(traversal) == 0 {
			traversal = append(traversal, hcl.TraverseRoot{Name: names[i]})
			continue
		}
		traversal = append(traversal, hcl.TraverseAttr{Name: names[i]})
	}
	return strings.TrimSpace(string(hclwrite.TokensForTraversal(traversal).Bytes()))
}
