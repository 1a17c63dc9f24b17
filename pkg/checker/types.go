package checker

// Primitive is the type of a binding as far as the checker tracks it.
type Primitive string

const (
	Unknown   Primitive = "" // Not tracked; everything is assignable
	Number    Primitive = "number"
	String    Primitive = "string"
	Boolean   Primitive = "boolean"
	Null      Primitive = "null"
	Undefined Primitive = "undefined"
)

// primitiveNamed maps a type annotation name to the primitive it denotes.
func primitiveNamed(name string) Primitive {
	switch p := Primitive(name); p {
	case Number, String, Boolean, Null, Undefined:
		return p
	}
	return Unknown
}

// widen returns the declared type inferred from a literal initializer.
// Bindings initialized with null or undefined are not tracked.
func widen(p Primitive) Primitive {
	switch p {
	case Null, Undefined:
		return Unknown
	}
	return p
}

// assignable reports whether a value of type src may be stored in a binding
// of type dst under strict null checks.
func assignable(src, dst Primitive) bool {
	return dst == Unknown || src == Unknown || src == dst
}
