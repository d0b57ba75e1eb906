package reactive

import "reflect"

// A TypeRef describes the element type of a body at runtime,
// surviving the trip through an any.
//
// The zero value describes no type.
type TypeRef struct {
	t reflect.Type
}

// TypeOf builds the TypeRef for T.
func TypeOf[T any]() TypeRef { return TypeRef{t: reflect.TypeFor[T]()} }

// TypeFor wraps an existing reflect.Type.
func TypeFor(t reflect.Type) TypeRef { return TypeRef{t: t} }

// Type returns the described reflect.Type, nil for the zero TypeRef.
func (r TypeRef) Type() reflect.Type { return r.t }

// IsZero reports whether r describes no type.
func (r TypeRef) IsZero() bool { return r.t == nil }

// AssignableFrom reports whether a value of type t can be stored as the described type.
func (r TypeRef) AssignableFrom(t reflect.Type) bool {
	if r.t == nil || t == nil {
		return false
	}

	return t.AssignableTo(r.t)
}

func (r TypeRef) String() string {
	if r.t == nil {
		return "<nil>"
	}

	return r.t.String()
}
