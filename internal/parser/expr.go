package parser

import (
	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/token"
)

// parseExpr parses a postfix expression chain: primary followed by member
// accesses and calls. This is the whole Glint expression grammar; it exists
// to classify the completion marker's context.
func (p *parser) parseExpr() ast.Expr {
	e := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.Dot:
			dot := p.next()
			switch p.cur().Kind {
			case token.Ident:
				name := p.next()
				e = &ast.MemberExpr{Base: e, Name: name.Text, Span: e.ExprSpan().Cover(name.Span)}
			case token.Marker:
				t := p.next()
				e = &ast.MemberExpr{Base: e, Name: "", Span: e.ExprSpan().Cover(t.Span)}
			default:
				p.report(diag.SynExpectIdent, p.cur().Span, "expected member name after '.'")
				return &ast.MemberExpr{Base: e, Name: "", Span: e.ExprSpan().Cover(dot.Span)}
			}
		case token.LParen:
			open := p.next()
			call := &ast.CallExpr{Callee: e, Span: e.ExprSpan().Cover(open.Span)}
			for !p.at(token.RParen) && !p.at(token.EOF) {
				call.Args = append(call.Args, p.parseExpr())
				if _, ok := p.eat(token.Comma); !ok {
					break
				}
			}
			if end, ok := p.eat(token.RParen); ok {
				call.Span = call.Span.Cover(end.Span)
			} else {
				p.report(diag.SynExpectRParen, p.cur().Span, "expected ')' in call")
			}
			e = call
		default:
			return e
		}
	}
}

func (p *parser) parsePrimary() ast.Expr {
	switch p.cur().Kind {
	case token.Ident:
		t := p.next()
		return &ast.IdentExpr{Name: t.Text, Span: t.Span}
	case token.Marker:
		t := p.next()
		return &ast.MarkerExpr{Span: t.Span}
	case token.Int:
		t := p.next()
		return &ast.LiteralExpr{Text: t.Text, Span: t.Span}
	case token.String:
		t := p.next()
		return &ast.LiteralExpr{Text: t.Text, IsString: true, Span: t.Span}
	case token.Dot:
		// Leading-dot member literal (.red); base type comes from context.
		dot := p.next()
		if name, ok := p.eat(token.Ident); ok {
			return &ast.MemberExpr{Base: nil, Name: name.Text, Span: dot.Span.Cover(name.Span)}
		}
		if t, ok := p.eat(token.Marker); ok {
			return &ast.MemberExpr{Base: nil, Name: "", Span: dot.Span.Cover(t.Span)}
		}
		p.report(diag.SynExpectIdent, p.cur().Span, "expected member name after '.'")
		return &ast.IdentExpr{Span: dot.Span}
	default:
		t := p.next()
		p.report(diag.SynUnexpectedToken, t.Span, "expected expression, found %s", t.Kind)
		return &ast.IdentExpr{Span: t.Span}
	}
}
