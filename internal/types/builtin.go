package types

// Builtins are shared singletons; identity comparison is safe for them.
var (
	Int    = &Nominal{Kind: KindBuiltin, Name: "Int"}
	Float  = &Nominal{Kind: KindBuiltin, Name: "Float"}
	Bool   = &Nominal{Kind: KindBuiltin, Name: "Bool"}
	String = &Nominal{Kind: KindBuiltin, Name: "String"}
	Void   = &Nominal{Kind: KindBuiltin, Name: "Void"}
)

var builtins = map[string]*Nominal{
	"Int":    Int,
	"Float":  Float,
	"Bool":   Bool,
	"String": String,
	"Void":   Void,
}

// Builtin returns the builtin type for a name, if any.
func Builtin(name string) (*Nominal, bool) {
	t, ok := builtins[name]
	return t, ok
}

// Unresolved names a type the binder could not find.
func Unresolved(name string) *Nominal {
	return &Nominal{Kind: KindUnresolved, Name: name}
}

// SameName reports whether two types print the same spelling. Glint has no
// structural types, so spelling equality is type equality for nominals.
func SameName(a, b Type) bool {
	return a != nil && b != nil && a.String() == b.String()
}
