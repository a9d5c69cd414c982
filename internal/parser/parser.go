package parser

import (
	"fmt"

	"glint/internal/ast"
	"glint/internal/diag"
	"glint/internal/lexer"
	"glint/internal/source"
	"glint/internal/token"
)

// Options configure a parse.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors int
}

// ParseFile lexes and parses one source file. The resulting tree, together
// with the token slice, is the persistent parser state the second pass
// re-enters; ParseFile itself never runs semantic analysis.
func ParseFile(file *source.File, opts Options) *ast.File {
	r := opts.Reporter
	if r == nil {
		r = diag.NopReporter{}
	}
	maxErrors := opts.MaxErrors
	if maxErrors <= 0 {
		maxErrors = 100
	}
	p := &parser{
		toks:      lexer.Tokens(file, lexer.Options{Reporter: r}),
		reporter:  r,
		maxErrors: maxErrors,
		out:       &ast.File{Path: file.Path, ID: file.ID},
	}
	p.parseTopLevel()
	return p.out
}

type parser struct {
	toks      []token.Token
	i         int
	reporter  diag.Reporter
	errs      int
	maxErrors int
	out       *ast.File

	pendingDoc string
}

func (p *parser) cur() token.Token  { return p.toks[p.i] }
func (p *parser) next() token.Token { t := p.toks[p.i]; p.advance(); return t }

func (p *parser) advance() {
	if p.i < len(p.toks)-1 {
		p.i++
	}
}

func (p *parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *parser) eat(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.next(), true
	}
	return p.cur(), false
}

func (p *parser) report(code diag.Code, span source.Span, format string, args ...any) {
	if p.errs >= p.maxErrors {
		return
	}
	p.errs++
	p.reporter.Report(code, diag.SevError, span, fmt.Sprintf(format, args...))
}

// takeDoc consumes buffered doc-comment text for the declaration being built.
func (p *parser) takeDoc() string {
	doc := p.pendingDoc
	p.pendingDoc = ""
	return doc
}

func (p *parser) collectDoc() {
	for p.at(token.DocComment) {
		t := p.next()
		if p.pendingDoc != "" {
			p.pendingDoc += "\n"
		}
		p.pendingDoc += t.Text
	}
}

func (p *parser) parseTopLevel() {
	for {
		p.collectDoc()
		switch p.cur().Kind {
		case token.EOF:
			return
		case token.KwImport:
			p.parseImport()
		case token.KwProtocol:
			p.parseProtocol()
		case token.KwStruct:
			p.parseStruct()
		case token.KwEnum:
			p.parseEnum()
		case token.KwExtension:
			p.parseExtension()
		case token.KwFunc, token.KwStatic, token.KwExtern:
			if d := p.parseFunc(false); d != nil {
				p.out.Decls = append(p.out.Decls, d)
			}
		case token.KwLet, token.KwVar:
			if d := p.parseVar(false); d != nil {
				p.out.Decls = append(p.out.Decls, d)
			}
		case token.Ident, token.Marker, token.Int, token.String:
			p.out.Code = append(p.out.Code, p.parseExpr())
		default:
			t := p.next()
			p.report(diag.SynUnexpectedToken, t.Span, "unexpected token %s at top level", t.Kind)
		}
	}
}

func (p *parser) parseImport() {
	kw := p.next()
	name, ok := p.eat(token.Ident)
	if !ok {
		p.report(diag.SynExpectIdent, p.cur().Span, "expected module name after 'import'")
		return
	}
	p.out.Decls = append(p.out.Decls, &ast.ImportDecl{
		Path: name.Text,
		Span: kw.Span.Cover(name.Span),
	})
}

func (p *parser) parseConformList() []string {
	if _, ok := p.eat(token.Colon); !ok {
		return nil
	}
	var names []string
	for {
		name, ok := p.eat(token.Ident)
		if !ok {
			p.report(diag.SynExpectIdent, p.cur().Span, "expected protocol name in conformance list")
			return names
		}
		names = append(names, name.Text)
		if _, ok := p.eat(token.Comma); !ok {
			return names
		}
	}
}

func (p *parser) parseProtocol() {
	doc := p.takeDoc()
	kw := p.next()
	name, ok := p.eat(token.Ident)
	if !ok {
		p.report(diag.SynExpectIdent, p.cur().Span, "expected protocol name")
		return
	}
	decl := &ast.ProtocolDecl{Name: name.Text, Doc: doc, Span: kw.Span.Cover(name.Span)}
	decl.Inherits = p.parseConformList()
	if _, ok := p.eat(token.LBrace); !ok {
		p.report(diag.SynExpectLBrace, p.cur().Span, "expected '{' in protocol body")
		p.out.Decls = append(p.out.Decls, decl)
		return
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.collectDoc()
		switch p.cur().Kind {
		case token.KwFunc, token.KwStatic:
			if fd, _ := p.parseFunc(true).(*ast.FuncDecl); fd != nil {
				decl.Reqs = append(decl.Reqs, fd)
			}
		case token.Marker:
			t := p.next()
			p.report(diag.SynStrayMarker, t.Span, "completion marker inside protocol body")
		default:
			t := p.next()
			p.report(diag.SynUnexpectedToken, t.Span, "unexpected token %s in protocol body", t.Kind)
		}
	}
	if end, ok := p.eat(token.RBrace); ok {
		decl.Span = decl.Span.Cover(end.Span)
	}
	p.out.Decls = append(p.out.Decls, decl)
}

func (p *parser) parseStruct() {
	doc := p.takeDoc()
	kw := p.next()
	name, ok := p.eat(token.Ident)
	if !ok {
		p.report(diag.SynExpectIdent, p.cur().Span, "expected struct name")
		return
	}
	decl := &ast.StructDecl{Name: name.Text, Doc: doc, Span: kw.Span.Cover(name.Span)}
	decl.Conforms = p.parseConformList()
	open, ok := p.eat(token.LBrace)
	if !ok {
		p.report(diag.SynExpectLBrace, p.cur().Span, "expected '{' in struct body")
		p.out.Decls = append(p.out.Decls, decl)
		return
	}
	decl.Members = p.parseMembers()
	end, _ := p.eat(token.RBrace)
	decl.BodySpan = open.Span.Cover(end.Span)
	decl.Span = decl.Span.Cover(end.Span)
	p.out.Decls = append(p.out.Decls, decl)
}

// parseMembers parses struct/extension members up to the closing brace.
func (p *parser) parseMembers() []ast.Decl {
	var members []ast.Decl
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.collectDoc()
		switch p.cur().Kind {
		case token.KwFunc, token.KwStatic, token.KwExtern:
			if d := p.parseFunc(false); d != nil {
				members = append(members, d)
			}
		case token.KwLet, token.KwVar:
			if d := p.parseVar(false); d != nil {
				members = append(members, d)
			}
		case token.Marker:
			t := p.next()
			members = append(members, &ast.MarkerDecl{Span: t.Span})
		case token.RBrace, token.EOF:
			// handled by loop condition
		default:
			t := p.next()
			p.report(diag.SynUnexpectedToken, t.Span, "unexpected token %s in type body", t.Kind)
		}
	}
	return members
}

func (p *parser) parseEnum() {
	doc := p.takeDoc()
	kw := p.next()
	name, ok := p.eat(token.Ident)
	if !ok {
		p.report(diag.SynExpectIdent, p.cur().Span, "expected enum name")
		return
	}
	decl := &ast.EnumDecl{Name: name.Text, Doc: doc, Span: kw.Span.Cover(name.Span)}
	decl.Conforms = p.parseConformList()
	open, ok := p.eat(token.LBrace)
	if !ok {
		p.report(diag.SynExpectLBrace, p.cur().Span, "expected '{' in enum body")
		p.out.Decls = append(p.out.Decls, decl)
		return
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		p.collectDoc()
		switch p.cur().Kind {
		case token.KwCase:
			p.next()
			p.parseEnumCaseList(decl)
		case token.Ident:
			// Bare case list: enum Color { red, blue }
			p.parseEnumCaseList(decl)
		case token.KwFunc, token.KwStatic:
			if d := p.parseFunc(false); d != nil {
				decl.Members = append(decl.Members, d)
			}
		case token.Marker:
			t := p.next()
			decl.Members = append(decl.Members, &ast.MarkerDecl{Span: t.Span})
		default:
			t := p.next()
			p.report(diag.SynUnexpectedToken, t.Span, "unexpected token %s in enum body", t.Kind)
		}
	}
	end, _ := p.eat(token.RBrace)
	decl.BodySpan = open.Span.Cover(end.Span)
	decl.Span = decl.Span.Cover(end.Span)
	p.out.Decls = append(p.out.Decls, decl)
}

func (p *parser) parseEnumCaseList(decl *ast.EnumDecl) {
	for {
		doc := p.takeDoc()
		name, ok := p.eat(token.Ident)
		if !ok {
			p.report(diag.SynExpectIdent, p.cur().Span, "expected enum case name")
			return
		}
		decl.Cases = append(decl.Cases, &ast.EnumCaseDecl{Name: name.Text, Doc: doc, Span: name.Span})
		if _, ok := p.eat(token.Comma); !ok {
			return
		}
	}
}

func (p *parser) parseExtension() {
	kw := p.next()
	name, ok := p.eat(token.Ident)
	if !ok {
		p.report(diag.SynExpectIdent, p.cur().Span, "expected extended type name")
		return
	}
	decl := &ast.ExtensionDecl{Name: name.Text, Span: kw.Span.Cover(name.Span)}
	decl.Conforms = p.parseConformList()
	open, ok := p.eat(token.LBrace)
	if !ok {
		p.report(diag.SynExpectLBrace, p.cur().Span, "expected '{' in extension body")
		p.out.Decls = append(p.out.Decls, decl)
		return
	}
	decl.Members = p.parseMembers()
	end, _ := p.eat(token.RBrace)
	decl.BodySpan = open.Span.Cover(end.Span)
	decl.Span = decl.Span.Cover(end.Span)
	p.out.Decls = append(p.out.Decls, decl)
}

// parseFunc parses a function declaration or protocol requirement signature.
// Returns nil on a malformed header.
func (p *parser) parseFunc(requirement bool) ast.Decl {
	doc := p.takeDoc()
	static := false
	origin := ast.OriginNative
	start := p.cur().Span
	for {
		if _, ok := p.eat(token.KwStatic); ok {
			static = true
			continue
		}
		if _, ok := p.eat(token.KwExtern); ok {
			origin = ast.OriginForeign
			continue
		}
		break
	}
	if _, ok := p.eat(token.KwFunc); !ok {
		p.report(diag.SynUnexpectedToken, p.cur().Span, "expected 'func'")
		return nil
	}
	name, ok := p.eat(token.Ident)
	if !ok {
		p.report(diag.SynExpectIdent, p.cur().Span, "expected function name")
		return nil
	}
	decl := &ast.FuncDecl{
		Name:   name.Text,
		Doc:    doc,
		Static: static,
		Origin: origin,
		Span:   start.Cover(name.Span),
	}
	if _, ok := p.eat(token.LParen); !ok {
		p.report(diag.SynUnexpectedToken, p.cur().Span, "expected '(' after function name")
		return decl
	}
	for !p.at(token.RParen) && !p.at(token.EOF) {
		pname, ok := p.eat(token.Ident)
		if !ok {
			p.report(diag.SynExpectIdent, p.cur().Span, "expected parameter name")
			break
		}
		param := ast.Param{Name: pname.Text, Span: pname.Span}
		if _, ok := p.eat(token.Colon); ok {
			param.Type = p.parseTypeExpr()
		}
		decl.Params = append(decl.Params, param)
		if _, ok := p.eat(token.Comma); !ok {
			break
		}
	}
	if end, ok := p.eat(token.RParen); ok {
		decl.Span = decl.Span.Cover(end.Span)
	} else {
		p.report(diag.SynExpectRParen, p.cur().Span, "expected ')' after parameters")
	}
	if _, ok := p.eat(token.Arrow); ok {
		decl.Result = p.parseTypeExpr()
	}
	// Requirement signatures and extern functions have no body.
	if !requirement && origin == ast.OriginNative {
		if open, ok := p.eat(token.LBrace); ok {
			p.parseFuncBody(open)
		}
	}
	return decl
}

// parseFuncBody parses body statements as expressions so a completion marker
// inside a body is still discoverable, then consumes the closing brace.
func (p *parser) parseFuncBody(open token.Token) {
	_ = open
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.Ident, token.Marker, token.Int, token.String:
			p.out.Code = append(p.out.Code, p.parseExpr())
		case token.KwLet, token.KwVar:
			if d := p.parseVar(true); d != nil {
				p.out.Decls = append(p.out.Decls, d)
			}
		default:
			p.advance()
		}
	}
	p.eat(token.RBrace)
}

// parseVar parses a let/var binding. Local bindings are hoisted into the
// declaration list; scope resolution in Glint is flat.
func (p *parser) parseVar(local bool) ast.Decl {
	_ = local
	doc := p.takeDoc()
	kw := p.next()
	name, ok := p.eat(token.Ident)
	if !ok {
		p.report(diag.SynExpectIdent, p.cur().Span, "expected name after '%s'", kw.Kind)
		return nil
	}
	decl := &ast.VarDecl{
		Name: name.Text,
		Doc:  doc,
		Let:  kw.Kind == token.KwLet,
		Span: kw.Span.Cover(name.Span),
	}
	if _, ok := p.eat(token.Colon); ok {
		decl.Type = p.parseTypeExpr()
	}
	if _, ok := p.eat(token.Equal); ok {
		// Initializers are hoisted like body expressions so a marker inside
		// one stays discoverable.
		p.out.Code = append(p.out.Code, p.parseExpr())
	}
	return decl
}

func (p *parser) parseTypeExpr() ast.TypeExpr {
	name, ok := p.eat(token.Ident)
	if !ok {
		p.report(diag.SynExpectType, p.cur().Span, "expected type name")
		return ast.TypeExpr{}
	}
	return ast.TypeExpr{Name: name.Text, Span: name.Span}
}
