package materialize

import (
	"reflect"
)

// dispatch holds the bindable members of one host struct type.
type dispatch struct {
	fields  map[string][]int
	methods map[string]reflect.Method
}

func newDispatch(t reflect.Type) *dispatch {
	d := &dispatch{
		fields:  make(map[string][]int),
		methods: make(map[string]reflect.Method),
	}
	for _, f := range reflect.VisibleFields(t) {
		if f.IsExported() {
			d.fields[f.Name] = f.Index
		}
	}
	ptr := reflect.PointerTo(t)
	for i := 0; i < ptr.NumMethod(); i++ {
		m := ptr.Method(i)
		d.methods[m.Name] = m
	}
	return d
}

// table returns the dispatch table of t, building it on first use.
func (m *Materializer) table(t reflect.Type) *dispatch {
	if d, ok := m.tables.Load(t); ok {
		return d.(*dispatch)
	}
	d, _ := m.tables.LoadOrStore(t, newDispatch(t))
	return d.(*dispatch)
}

// field returns the addressable field named name of obj, a pointer to a
// struct of the table's type.
func (d *dispatch) field(obj reflect.Value, name string) (reflect.Value, bool) {
	idx, ok := d.fields[name]
	if !ok {
		return reflect.Value{}, false
	}
	return obj.Elem().FieldByIndex(idx), true
}

func (d *dispatch) method(obj reflect.Value, name string) (reflect.Value, reflect.Type, bool) {
	m, ok := d.methods[name]
	if !ok {
		return reflect.Value{}, nil, false
	}
	return obj.Method(m.Index), m.Type, true
}
