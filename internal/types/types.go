package types

import (
	"strings"
)

// Type is a resolved semantic type. Printing and stable-identifier (USR)
// printing are the only operations the query pipeline needs; both are pure.
type Type interface {
	// String is the human-readable spelling (what the user would write).
	String() string
	// USR is the stable identifier, canonical across analysis runs.
	USR() string
}

// NominalKind classifies named types.
type NominalKind uint8

const (
	KindBuiltin NominalKind = iota
	KindStruct
	KindEnum
	KindProtocol
	// KindUnresolved marks a reference the binder could not resolve; it still
	// prints, so diagnostics and results remain readable.
	KindUnresolved
)

func (k NominalKind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindProtocol:
		return "protocol"
	default:
		return "unresolved"
	}
}

// usrTag is the kind discriminator inside a USR.
func (k NominalKind) usrTag() byte {
	switch k {
	case KindBuiltin:
		return 'b'
	case KindStruct:
		return 'v'
	case KindEnum:
		return 'o'
	case KindProtocol:
		return 'p'
	default:
		return 'u'
	}
}

// Nominal is a named type.
type Nominal struct {
	Kind NominalKind
	Name string
}

func (n *Nominal) String() string { return n.Name }

// USR format: "g:" prefix, kind tag, length-prefixed name. Length prefixing
// keeps concatenated USRs (function types) unambiguous.
func (n *Nominal) USR() string {
	var sb strings.Builder
	sb.WriteString("g:")
	sb.WriteByte(n.Kind.usrTag())
	writeLenPrefixed(&sb, n.Name)
	return sb.String()
}

// Func is a function type: the member interface type of a method.
type Func struct {
	Params []Type
	Result Type
}

func (f *Func) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") -> ")
	sb.WriteString(f.Result.String())
	return sb.String()
}

func (f *Func) USR() string {
	var sb strings.Builder
	sb.WriteString("g:f(")
	for _, p := range f.Params {
		sb.WriteString(p.USR())
	}
	sb.WriteByte(')')
	sb.WriteString(f.Result.USR())
	return sb.String()
}

func writeLenPrefixed(sb *strings.Builder, s string) {
	sb.WriteString(itoa(len(s)))
	sb.WriteString(s)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
