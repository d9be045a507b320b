package schemabuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/zclconf/go-cty/cty/gocty"
)

// TagName is the struct tag read for property declarations.
const TagName = "dsl"

// FunctionDecl exposes one Go method as a schema function.
type FunctionDecl struct {
	Name      string
	Method    string
	Params    []string
	Semantics schema.Semantics
}

// Declarer is implemented (on the pointer receiver) by host types that
// expose functions to scripts.
type Declarer interface {
	DeclareFunctions() []FunctionDecl
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Builder turns host Go types into schemas.
type Builder struct {
	externals []*schema.ExternalFunction
}

// New returns a builder whose schemas all carry the given external
// functions.
func New(externals ...*schema.ExternalFunction) *Builder {
	return &Builder{externals: externals}
}

// Build derives the schema whose top-level receiver is root. Root may be a
// struct type or a pointer to one.
func (b *Builder) Build(root reflect.Type) (*schema.AnalysisSchema, error) {
	st, ok := structType(root)
	if !ok {
		return nil, fmt.Errorf("top-level receiver must be a struct or pointer to struct, got %s", root)
	}

	w := &walker{seen: make(map[reflect.Type]*schema.DataClass)}
	top, err := w.class(st)
	if err != nil {
		return nil, err
	}
	return schema.New(top, w.order, b.externals), nil
}

type walker struct {
	seen  map[reflect.Type]*schema.DataClass
	order []*schema.DataClass
}

func (w *walker) class(t reflect.Type) (*schema.DataClass, error) {
	if c, ok := w.seen[t]; ok {
		return c, nil
	}
	c := &schema.DataClass{Name: ClassName(t), GoType: t}
	w.seen[t] = c
	w.order = append(w.order, c)

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag, ok := field.Tag.Lookup(TagName)
		if !ok || tag == "-" || !field.IsExported() {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			return nil, fmt.Errorf("%s.%s: empty %q tag name", t, field.Name, TagName)
		}

		prop := &schema.Property{
			Name:     name,
			ReadOnly: hasOption(opts, "readonly"),
			GoField:  field.Name,
		}

		if nested, isNested := structPointer(field.Type); isNested {
			nc, err := w.class(nested)
			if err != nil {
				return nil, err
			}
			prop.Type = schema.ClassRef(nc.Name)
			prop.ReadOnly = true
			c.Properties = append(c.Properties, prop)
			c.MemberFunctions = append(c.MemberFunctions, &schema.Function{
				Name:       name,
				Receiver:   c.Name,
				ReturnType: prop.Type,
				Semantics:  schema.AccessAndConfigure{Accessor: name},
			})
			continue
		}

		pt, err := primitiveType(field.Type)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", t, field.Name, err)
		}
		prop.Type = pt
		c.Properties = append(c.Properties, prop)
	}

	ptr := reflect.PointerTo(t)
	if !ptr.Implements(reflect.TypeOf((*Declarer)(nil)).Elem()) {
		return c, nil
	}
	decls := reflect.New(t).Interface().(Declarer).DeclareFunctions()
	for _, d := range decls {
		fn, err := w.function(c, ptr, d)
		if err != nil {
			return nil, fmt.Errorf("%s: function %q: %w", t, d.Name, err)
		}
		c.MemberFunctions = append(c.MemberFunctions, fn)
	}
	return c, nil
}

func (w *walker) function(owner *schema.DataClass, ptr reflect.Type, d FunctionDecl) (*schema.Function, error) {
	method, ok := ptr.MethodByName(d.Method)
	if !ok {
		return nil, fmt.Errorf("method %s not found", d.Method)
	}
	if d.Semantics == nil {
		return nil, errors.New("missing semantics")
	}
	if _, ok := d.Semantics.(schema.AccessAndConfigure); ok {
		return nil, errors.New("access-and-configure functions are derived from nested properties")
	}

	mt := method.Type
	// In(0) is the receiver.
	argc := mt.NumIn() - 1
	if argc != len(d.Params) {
		return nil, fmt.Errorf("method %s takes %d arguments, %d parameter names declared", d.Method, argc, len(d.Params))
	}

	fn := &schema.Function{
		Name:      d.Name,
		Receiver:  owner.Name,
		Semantics: d.Semantics,
		GoMethod:  d.Method,
	}
	for i := 0; i < argc; i++ {
		in := mt.In(i + 1)
		variadic := mt.IsVariadic() && i == argc-1
		if variadic {
			in = in.Elem()
		}
		ref, err := w.typeRef(in)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", d.Params[i], err)
		}
		fn.Parameters = append(fn.Parameters, &schema.Parameter{
			Name:     d.Params[i],
			Type:     ref,
			Optional: variadic,
			Variadic: variadic,
			Nullable: true,
		})
	}

	ret, err := w.returnType(mt)
	if err != nil {
		return nil, err
	}
	fn.ReturnType = ret

	switch s := d.Semantics.(type) {
	case schema.Pure:
		if ret.IsUnit() {
			return nil, errors.New("pure functions must return a value")
		}
	case schema.AddAndConfigure:
		if s.ConfigureBlock != schema.BlockNotAllowed && !ret.IsClass() {
			return nil, errors.New("a configuring block needs a function returning an object")
		}
	}
	return fn, nil
}

func (w *walker) returnType(mt reflect.Type) (schema.TypeRef, error) {
	switch mt.NumOut() {
	case 0:
		return schema.Unit, nil
	case 1:
		if mt.Out(0) == errorType {
			return schema.Unit, nil
		}
		return w.typeRef(mt.Out(0))
	case 2:
		if mt.Out(1) != errorType {
			return schema.TypeRef{}, errors.New("second result must be error")
		}
		return w.typeRef(mt.Out(0))
	default:
		return schema.TypeRef{}, fmt.Errorf("too many results (%d)", mt.NumOut())
	}
}

func (w *walker) typeRef(t reflect.Type) (schema.TypeRef, error) {
	if st, ok := structPointer(t); ok {
		c, err := w.class(st)
		if err != nil {
			return schema.TypeRef{}, err
		}
		return schema.ClassRef(c.Name), nil
	}
	return primitiveType(t)
}

func primitiveType(t reflect.Type) (schema.TypeRef, error) {
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
	default:
		return schema.TypeRef{}, fmt.Errorf("unsupported type %s", t)
	}
	ct, err := gocty.ImpliedType(reflect.Zero(t).Interface())
	if err != nil {
		return schema.TypeRef{}, fmt.Errorf("cannot imply cty type for %s: %w", t, err)
	}
	if !ct.IsPrimitiveType() {
		return schema.TypeRef{}, fmt.Errorf("type %s is not primitive", t)
	}
	return schema.HostPrimitive(ct, t), nil
}

// ClassName is the schema name of a host struct type.
func ClassName(t reflect.Type) string {
	if st, ok := structType(t); ok {
		return st.String()
	}
	return t.String()
}

func structType(t reflect.Type) (reflect.Type, bool) {
	if t == nil {
		return nil, false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t, t.Kind() == reflect.Struct
}

func structPointer(t reflect.Type) (reflect.Type, bool) {
	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return nil, false
	}
	return t.Elem(), true
}

func hasOption(opts, want string) bool {
	for _, o := range strings.Split(opts, ",") {
		if strings.TrimSpace(o) == want {
			return true
		}
	}
	return false
}
