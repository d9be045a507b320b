package resolution

import (
	"strconv"

	"github.com/Uchennaokeke444/Gradle/internal/langtree"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// ObjectOrigin is the resolved, static form of a value.
type ObjectOrigin interface {
	Source() langtree.SourceData
	Type() schema.TypeRef
	String() string
	origin()
}

// TopLevelReceiver is the script's implicit outermost receiver, standing for
// the evaluation target.
type TopLevelReceiver struct {
	ReceiverType schema.TypeRef
	SourceData   langtree.SourceData
}

// ConstantValue is a literal.
type ConstantValue struct {
	Value      cty.Value
	SourceData langtree.SourceData
}

// NullValue is the null literal.
type NullValue struct {
	SourceData langtree.SourceData
}

// PropertyReference reads Property from Receiver.
type PropertyReference struct {
	Receiver   ObjectOrigin
	Property   *schema.Property
	SourceData langtree.SourceData
}

// FunctionInvocation is the result of calling a member function on
// Receiver. ID is unique within one resolution result.
type FunctionInvocation struct {
	ID         int
	Receiver   ObjectOrigin
	Function   *schema.Function
	Args       []ObjectOrigin
	SourceData langtree.SourceData
}

// ExternalInvocation is the result of calling an external pure function.
type ExternalInvocation struct {
	ID         int
	Function   *schema.ExternalFunction
	Args       []ObjectOrigin
	ReturnType schema.TypeRef
	SourceData langtree.SourceData
}

func (o *TopLevelReceiver) Source() langtree.SourceData   { return o.SourceData }
func (o *ConstantValue) Source() langtree.SourceData      { return o.SourceData }
func (o *NullValue) Source() langtree.SourceData          { return o.SourceData }
func (o *PropertyReference) Source() langtree.SourceData  { return o.SourceData }
func (o *FunctionInvocation) Source() langtree.SourceData { return o.SourceData }
func (o *ExternalInvocation) Source() langtree.SourceData { return o.SourceData }

func (o *TopLevelReceiver) Type() schema.TypeRef   { return o.ReceiverType }
func (o *ConstantValue) Type() schema.TypeRef      { return schema.Primitive(o.Value.Type()) }
func (o *NullValue) Type() schema.TypeRef          { return schema.Null }
func (o *PropertyReference) Type() schema.TypeRef  { return o.Property.Type }
func (o *FunctionInvocation) Type() schema.TypeRef { return o.Function.ReturnType }
func (o *ExternalInvocation) Type() schema.TypeRef { return o.ReturnType }

func (*TopLevelReceiver) origin()   {}
func (*ConstantValue) origin()      {}
func (*NullValue) origin()          {}
func (*PropertyReference) origin()  {}
func (*FunctionInvocation) origin() {}
func (*ExternalInvocation) origin() {}

func (o *TopLevelReceiver) String() string { return "(top-level-object)" }

func (o *ConstantValue) String() string {
	switch {
	case o.Value.Type().Equals(cty.String):
		return strconv.Quote(o.Value.AsString())
	case o.Value.Type().Equals(cty.Bool):
		return strconv.FormatBool(o.Value.True())
	case o.Value.Type().Equals(cty.Number):
		return o.Value.AsBigFloat().Text('f', -1)
	default:
		return o.Value.GoString()
	}
}

func (o *NullValue) String() string { return "null" }

func (o *PropertyReference) String() string {
	if _, top := o.Receiver.(*TopLevelReceiver); top {
		return o.Property.Name
	}
	return o.Receiver.String() + "." + o.Property.Name
}

func (o *FunctionInvocation) String() string {
	return callString(o.Function.Name, o.ID, o.Args)
}

func (o *ExternalInvocation) String() string {
	return callString(o.Function.Name, o.ID, o.Args)
}

func callString(name string, id int, args []ObjectOrigin) string {
	s := name + "("
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + ")#" + strconv.Itoa(id)
}
