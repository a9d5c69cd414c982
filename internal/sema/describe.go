package sema

import (
	"strings"

	"glint/internal/ast"
)

// MemberDescription prints a member the way completion results show it.
// With placeholder=false: `f(x: Int)` / `red`. With placeholder=true the
// argument slots become editor placeholders: `f(x: <#Int#>)`. The printed
// text never triggers further analysis; member types were computed at bind
// time.
func MemberDescription(m *Member, placeholder bool) string {
	fd, ok := m.Decl.(*ast.FuncDecl)
	if !ok {
		// Enum cases and properties print as their bare name.
		return m.Name
	}
	var sb strings.Builder
	sb.WriteString(fd.Name)
	sb.WriteByte('(')
	for i, p := range fd.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		typeName := p.Type.Name
		if typeName == "" {
			typeName = "_"
		}
		if placeholder {
			sb.WriteString("<#")
			sb.WriteString(typeName)
			sb.WriteString("#>")
		} else {
			sb.WriteString(typeName)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}
