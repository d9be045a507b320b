package objectgraph

import (
	"strconv"
	"strings"

	"github.com/Uchennaokeke444/Gradle/internal/langtree"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// TopLevelID is the object ID of the evaluation target.
const TopLevelID = 0

// ObjectReflection is the ordered list of operations applied while one
// object is being configured.
type ObjectReflection struct {
	Receiver   Value
	Class      *schema.DataClass
	Operations []Operation
}

// Operation is one step of a reflection.
type Operation interface {
	Source() langtree.SourceData
	operation()
}

// SetProperty stores Value into Property of Receiver.
type SetProperty struct {
	Receiver   Value
	Property   *schema.Property
	Value      Value
	SourceData langtree.SourceData
}

// InvokeFunction calls an add-and-configure function. Its result, if an
// object, becomes object ID and is configured by Configure.
type InvokeFunction struct {
	Receiver   Value
	Function   *schema.Function
	ID         int
	Args       []Value
	Configure  *ObjectReflection
	SourceData langtree.SourceData
}

// Nest configures the object held by Accessor of Receiver.
type Nest struct {
	Receiver   Value
	Accessor   *schema.Property
	Object     *ObjectReflection
	SourceData langtree.SourceData
}

func (o *SetProperty) Source() langtree.SourceData    { return o.SourceData }
func (o *InvokeFunction) Source() langtree.SourceData { return o.SourceData }
func (o *Nest) Source() langtree.SourceData           { return o.SourceData }

func (*SetProperty) operation()    {}
func (*InvokeFunction) operation() {}
func (*Nest) operation()           {}

// Value is something the materializer can compute at apply time.
type Value interface {
	String() string
	value()
}

// Constant is a literal.
type Constant struct {
	Value cty.Value
}

// Null is the null literal.
type Null struct{}

// ObjectRef is an object created earlier during the same apply, or the
// target itself for TopLevelID.
type ObjectRef struct {
	ID int
}

// PureCall calls a pure member function.
type PureCall struct {
	Receiver Value
	Function *schema.Function
	Args     []Value
}

// ExternalCall calls an external function.
type ExternalCall struct {
	Function *schema.ExternalFunction
	Args     []Value
}

// HostProperty reads a read-only property the host provides.
type HostProperty struct {
	Receiver Value
	Property *schema.Property
}

func (Constant) value()     {}
func (Null) value()         {}
func (ObjectRef) value()    {}
func (PureCall) value()     {}
func (ExternalCall) value() {}
func (HostProperty) value() {}

func (v Constant) String() string {
	if v.Value.Type().Equals(cty.String) {
		return strconv.Quote(v.Value.AsString())
	}
	return v.Value.GoString()
}

func (Null) String() string { return "null" }

func (v ObjectRef) String() string {
	if v.ID == TopLevelID {
		return "$target"
	}
	return "$" + strconv.Itoa(v.ID)
}

func (v PureCall) String() string {
	return v.Receiver.String() + "." + call(v.Function.Name, v.Args)
}

func (v ExternalCall) String() string { return call(v.Function.Name, v.Args) }

func (v HostProperty) String() string {
	return v.Receiver.String() + "." + v.Property.Name
}

func call(name string, args []Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
