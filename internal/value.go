package internal

import "reflect"

// Cloner is implemented by values that must be deep copied when a
// snapshot leaves a variable.
type Cloner interface {
	Clone() any
}

// Cell is a type-erased value slot. It keeps the declared type of the
// value so that nil interfaces still carry a type identity.
type Cell struct {
	value any
	typ   reflect.Type
}

func NewCell(value any, typ reflect.Type) Cell {
	checkAssignable(typ, value)
	return Cell{value: value, typ: typ}
}

// Get returns a snapshot of the value.
func (c *Cell) Get() any {
	if cl, ok := c.value.(Cloner); ok {
		return cl.Clone()
	}

	return c.value
}

// Raw returns the stored value without cloning it.
func (c *Cell) Raw() any {
	return c.value
}

func (c *Cell) Set(value any) {
	checkAssignable(c.typ, value)
	c.value = value
}

func (c *Cell) Type() reflect.Type {
	return c.typ
}

func checkAssignable(typ reflect.Type, value any) {
	if typ == nil {
		return
	}

	if value == nil {
		switch typ.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return
		}
		violation(ErrTypeMismatch, "nil is not a valid %s", typ)
	}

	if got := reflect.TypeOf(value); !got.AssignableTo(typ) {
		violation(ErrTypeMismatch, "cannot store %s in a %s variable", got, typ)
	}
}
