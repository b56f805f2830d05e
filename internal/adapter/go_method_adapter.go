package adapter

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"

	"golang.org/x/tools/go/ast/inspector"

	m "codeaug.dev/pkg/codeaug/internal/model"
	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

// goMethodPrefix turns a lone function declaration into a parseable file.
const goMethodPrefix = "package p\n\n"

// goBasicTypes are the predeclared types a call-shaped conversion may name.
var goBasicTypes = map[string]bool{
	"bool": true, "byte": true, "rune": true, "string": true, "uintptr": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
}

var goPredeclared = map[string]bool{
	"any": true, "comparable": true, "error": true,
	"true": true, "false": true, "iota": true, "nil": true,
	"append": true, "cap": true, "clear": true, "close": true, "complex": true, "copy": true,
	"delete": true, "imag": true, "len": true, "make": true, "max": true, "min": true,
	"new": true, "panic": true, "print": true, "println": true, "real": true, "recover": true,
}

// GoMethodParser lowers Go function and method declarations.
type GoMethodParser struct{}

// NewGoMethodParser constructs a GoMethodParser.
func NewGoMethodParser() *GoMethodParser {
	return &GoMethodParser{}
}

// Language returns m.LanguageGo.
func (p *GoMethodParser) Language() m.Language {
	return m.LanguageGo
}

// Parse lowers the first function declaration with a body found in src.
func (p *GoMethodParser) Parse(ctx context.Context, src string) (*ir.Method, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, "method.go", goMethodPrefix+src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	var fn *ast.FuncDecl

	for _, decl := range file.Decls {
		if d, ok := decl.(*ast.FuncDecl); ok && d.Body != nil {
			fn = d
			break
		}
	}

	if fn == nil {
		return nil, parseError("no function declaration with a body")
	}

	l := &goLowerer{file: fset.File(file.Pos()), src: src}

	method := &ir.Method{
		At:      ir.Span{Start: 0, End: len(src)},
		Source:  src,
		Name:    l.ident(fn.Name, ir.RoleMember),
		Escaped: escapedNames(file),
	}

	method.Params = append(method.Params, l.params(fn.Recv)...)
	method.Params = append(method.Params, l.params(fn.Type.Params)...)
	method.Params = append(method.Params, l.params(fn.Type.Results)...)
	method.Body = l.block(fn.Body)

	return method, nil
}

// Tokens scans src with the Go scanner. Automatic semicolons are dropped.
func (p *GoMethodParser) Tokens(ctx context.Context, src string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fset := token.NewFileSet()
	file := fset.AddFile("method.go", fset.Base(), len(src))

	var (
		errs scanner.ErrorList
		s    scanner.Scanner
	)

	s.Init(file, []byte(src), func(pos token.Position, msg string) { errs.Add(pos, msg) }, 0)

	var tokens []string

	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}

		if lit == "" {
			lit = tok.String()
		}

		tokens = append(tokens, lit)
	}

	if err := errs.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return tokens, nil
}

// IsReserved rejects keywords and predeclared identifiers.
func (p *GoMethodParser) IsReserved(name string) bool {
	return token.IsKeyword(name) || goPredeclared[name] || goBasicTypes[name]
}

// escapedNames collects the variables whose address is taken. Writes through
// the resulting pointers are invisible to name-based analysis.
func escapedNames(file *ast.File) map[string]bool {
	escaped := make(map[string]bool)

	in := inspector.New([]*ast.File{file})
	in.Preorder([]ast.Node{(*ast.UnaryExpr)(nil)}, func(n ast.Node) {
		unary, ok := n.(*ast.UnaryExpr)
		if !ok || unary.Op != token.AND {
			return
		}

		if id := rootIdent(unary.X); id != nil {
			escaped[id.Name] = true
		}
	})

	return escaped
}

// rootIdent returns the variable at the base of a selector or index chain.
func rootIdent(e ast.Expr) *ast.Ident {
	for {
		switch x := e.(type) {
		case *ast.Ident:
			return x
		case *ast.ParenExpr:
			e = x.X
		case *ast.SelectorExpr:
			e = x.X
		case *ast.IndexExpr:
			e = x.X
		default:
			return nil
		}
	}
}

type goLowerer struct {
	file *token.File
	src  string
}

func (l *goLowerer) offset(pos token.Pos) int {
	return l.file.Offset(pos) - len(goMethodPrefix)
}

func (l *goLowerer) span(n ast.Node) ir.Span {
	return ir.Span{Start: l.offset(n.Pos()), End: l.offset(n.End())}
}

func (l *goLowerer) text(n ast.Node) string {
	at := l.span(n)
	return l.src[at.Start:at.End]
}

func (l *goLowerer) ident(id *ast.Ident, role ir.Role) *ir.Ident {
	if id == nil {
		return nil
	}

	return &ir.Ident{At: l.span(id), Name: id.Name, Role: role}
}

func (l *goLowerer) params(fields *ast.FieldList) []*ir.Param {
	if fields == nil {
		return nil
	}

	var params []*ir.Param

	for _, field := range fields.List {
		typ := l.typeExpr(field.Type)
		text := l.text(field.Type)

		for _, name := range field.Names {
			params = append(params, &ir.Param{
				At:       l.span(name),
				Name:     l.ident(name, ir.RoleParam),
				Type:     typ,
				TypeText: text,
			})
		}
	}

	return params
}

// typeExpr lowers a type to the identifiers it mentions.
func (l *goLowerer) typeExpr(e ast.Expr) ir.Expr {
	if e == nil {
		return nil
	}

	if id, ok := e.(*ast.Ident); ok {
		return l.ident(id, ir.RoleType)
	}

	other := &ir.Other{At: l.span(e)}

	ast.Inspect(e, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok {
			other.Kids = append(other.Kids, l.ident(id, ir.RoleType))
		}

		return true
	})

	return other
}

func (l *goLowerer) block(b *ast.BlockStmt) *ir.Block {
	if b == nil {
		return nil
	}

	return ir.NewBlock(l.span(b), l.stmts(b.List))
}

// clauseBody turns the statements after a case colon into a block of their
// own.
func (l *goLowerer) clauseBody(colon token.Pos, end token.Pos, list []ast.Stmt) *ir.Block {
	start := l.offset(colon) + 1

	return ir.NewBlock(ir.Span{Start: start, End: max(start, l.offset(end))}, l.stmts(list))
}

func (l *goLowerer) stmts(list []ast.Stmt) []ir.Stmt {
	out := make([]ir.Stmt, 0, len(list))
	for _, s := range list {
		out = append(out, l.stmt(s))
	}

	return out
}

func (l *goLowerer) optStmt(s ast.Stmt) ir.Stmt {
	if s == nil {
		return nil
	}

	return l.stmt(s)
}

//nolint:cyclop,funlen // one case per statement kind
func (l *goLowerer) stmt(s ast.Stmt) ir.Stmt {
	at := l.span(s)

	switch x := s.(type) {
	case *ast.BlockStmt:
		return l.block(x)
	case *ast.ExprStmt:
		return &ir.ExprStmt{At: at, X: l.expr(x.X)}
	case *ast.AssignStmt:
		return &ir.ExprStmt{At: at, X: &ir.Assign{
			At:     at,
			Lhs:    l.exprs(x.Lhs),
			Op:     x.Tok.String(),
			Rhs:    l.exprs(x.Rhs),
			Define: x.Tok == token.DEFINE,
		}}
	case *ast.IncDecStmt:
		return &ir.ExprStmt{At: at, X: &ir.IncDec{At: at, X: l.expr(x.X), Op: x.Tok.String()}}
	case *ast.DeclStmt:
		return l.decl(x)
	case *ast.IfStmt:
		return &ir.If{At: at, Init: l.optStmt(x.Init), Cond: l.expr(x.Cond), Then: l.block(x.Body), Else: l.optStmt(x.Else)}
	case *ast.ForStmt:
		loop := &ir.For{At: at, Cond: l.expr(x.Cond), Body: l.block(x.Body)}
		if x.Init != nil {
			loop.Init = []ir.Stmt{l.stmt(x.Init)}
		}

		if x.Post != nil {
			loop.Post = []ir.Stmt{l.stmt(x.Post)}
		}

		return loop
	case *ast.RangeStmt:
		return &ir.Range{
			At:     at,
			Key:    l.expr(x.Key),
			Value:  l.expr(x.Value),
			Define: x.Tok == token.DEFINE,
			X:      l.expr(x.X),
			Body:   l.block(x.Body),
		}
	case *ast.SwitchStmt:
		sw := &ir.Switch{At: at, Init: l.optStmt(x.Init), Tag: l.expr(x.Tag)}
		sw.Clauses = l.caseClauses(x.Body)

		return sw
	case *ast.TypeSwitchStmt:
		sw := &ir.Switch{At: at, Init: l.optStmt(x.Init)}
		if es, ok := l.stmt(x.Assign).(*ir.ExprStmt); ok {
			sw.Tag = es.X
		}

		sw.Clauses = l.caseClauses(x.Body)

		return sw
	case *ast.SelectStmt:
		sel := &ir.Select{At: at}

		for _, c := range x.Body.List {
			cc, ok := c.(*ast.CommClause)
			if !ok {
				continue
			}

			sel.Clauses = append(sel.Clauses, &ir.CaseClause{
				At:   l.span(cc),
				Comm: l.optStmt(cc.Comm),
				Body: l.clauseBody(cc.Colon, cc.End(), cc.Body),
			})
		}

		return sel
	case *ast.GoStmt:
		return &ir.Defer{At: at, Keyword: "go", Call: l.expr(x.Call)}
	case *ast.DeferStmt:
		return &ir.Defer{At: at, Keyword: "defer", Call: l.expr(x.Call)}
	case *ast.SendStmt:
		return &ir.Send{At: at, Chan: l.expr(x.Chan), Value: l.expr(x.Value)}
	case *ast.ReturnStmt:
		return &ir.Branch{At: at, Kind: ir.BranchReturn, Results: l.exprs(x.Results)}
	case *ast.BranchStmt:
		return &ir.Branch{At: at, Kind: goBranchKind(x.Tok), Label: l.ident(x.Label, ir.RoleLabel)}
	case *ast.LabeledStmt:
		return &ir.Labeled{At: at, Label: l.ident(x.Label, ir.RoleLabel), Stmt: l.stmt(x.Stmt)}
	case *ast.EmptyStmt:
		return &ir.Empty{At: at}
	}

	return &ir.Bad{At: at}
}

func goBranchKind(tok token.Token) ir.BranchKind {
	switch tok {
	case token.CONTINUE:
		return ir.BranchContinue
	case token.GOTO:
		return ir.BranchGoto
	case token.FALLTHROUGH:
		return ir.BranchFallthrough
	default:
		return ir.BranchBreak
	}
}

func (l *goLowerer) caseClauses(body *ast.BlockStmt) []*ir.CaseClause {
	var clauses []*ir.CaseClause

	for _, c := range body.List {
		cc, ok := c.(*ast.CaseClause)
		if !ok {
			continue
		}

		clauses = append(clauses, &ir.CaseClause{
			At:    l.span(cc),
			Exprs: l.exprs(cc.List),
			Body:  l.clauseBody(cc.Colon, cc.End(), cc.Body),
		})
	}

	return clauses
}

// decl lowers a local var, const or type declaration. A grouped declaration
// becomes a single statement whose names are untyped for lookups.
func (l *goLowerer) decl(x *ast.DeclStmt) ir.Stmt {
	at := l.span(x)

	gen, ok := x.Decl.(*ast.GenDecl)
	if !ok {
		return &ir.Bad{At: at}
	}

	if gen.Tok == token.TYPE {
		td := &ir.TypeDecl{At: at}

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			if td.Name == nil {
				td.Name = l.ident(ts.Name, ir.RoleDecl)
			} else {
				td.Kids = append(td.Kids, l.ident(ts.Name, ir.RoleDecl))
			}

			td.Kids = append(td.Kids, l.typeExpr(ts.Type))
		}

		return td
	}

	vd := &ir.VarDecl{At: at}

	for _, spec := range gen.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok {
			continue
		}

		if len(gen.Specs) == 1 && vs.Type != nil {
			vd.Type = l.typeExpr(vs.Type)
			vd.TypeText = l.text(vs.Type)
		}

		for _, name := range vs.Names {
			vd.Names = append(vd.Names, l.ident(name, ir.RoleDecl))
		}

		vd.Values = append(vd.Values, l.exprs(vs.Values)...)
	}

	return vd
}

func (l *goLowerer) exprs(list []ast.Expr) []ir.Expr {
	out := make([]ir.Expr, 0, len(list))
	for _, e := range list {
		out = append(out, l.expr(e))
	}

	return out
}

// name lowers an identifier in expression position. The predeclared
// constants become literals.
func (l *goLowerer) name(id *ast.Ident) ir.Expr {
	switch id.Name {
	case "true", "false":
		return &ir.Literal{At: l.span(id), Kind: ir.LitBool, Value: id.Name}
	case "nil":
		return &ir.Literal{At: l.span(id), Kind: ir.LitNull, Value: id.Name}
	}

	return l.ident(id, ir.RoleUse)
}

//nolint:cyclop,funlen // one case per expression kind
func (l *goLowerer) expr(e ast.Expr) ir.Expr {
	if e == nil {
		return nil
	}

	at := l.span(e)

	switch x := e.(type) {
	case *ast.Ident:
		return l.name(x)
	case *ast.BasicLit:
		return &ir.Literal{At: at, Kind: goLitKind(x.Kind), Value: x.Value}
	case *ast.CompositeLit:
		lit := &ir.Other{At: at}
		if x.Type != nil {
			lit.Kids = append(lit.Kids, l.typeExpr(x.Type))
		}

		for _, elt := range x.Elts {
			lit.Kids = append(lit.Kids, l.element(elt))
		}

		return lit
	case *ast.FuncLit:
		params := l.params(x.Type.Params)
		params = append(params, l.params(x.Type.Results)...)

		return &ir.FuncLit{At: at, Params: params, Body: l.block(x.Body)}
	case *ast.ParenExpr:
		return &ir.Paren{At: at, X: l.expr(x.X)}
	case *ast.SelectorExpr:
		return &ir.Selector{At: at, X: l.expr(x.X), Sel: l.ident(x.Sel, ir.RoleMember)}
	case *ast.IndexExpr:
		return &ir.Index{At: at, X: l.expr(x.X), Index: []ir.Expr{l.expr(x.Index)}}
	case *ast.IndexListExpr:
		return &ir.Index{At: at, X: l.expr(x.X), Index: l.exprs(x.Indices)}
	case *ast.SliceExpr:
		idx := &ir.Index{At: at, X: l.expr(x.X)}

		for _, bound := range []ast.Expr{x.Low, x.High, x.Max} {
			if bound != nil {
				idx.Index = append(idx.Index, l.expr(bound))
			}
		}

		return idx
	case *ast.TypeAssertExpr:
		if x.Type == nil {
			return &ir.Cast{At: at, TypeText: "type", X: l.expr(x.X)}
		}

		return &ir.Cast{At: at, Type: l.typeExpr(x.Type), TypeText: l.text(x.Type), X: l.expr(x.X)}
	case *ast.CallExpr:
		if id, ok := ast.Unparen(x.Fun).(*ast.Ident); ok && goBasicTypes[id.Name] && len(x.Args) == 1 {
			return &ir.Cast{At: at, Type: l.ident(id, ir.RoleType), TypeText: id.Name, X: l.expr(x.Args[0])}
		}

		return &ir.Call{At: at, Fun: l.expr(x.Fun), Args: l.exprs(x.Args)}
	case *ast.StarExpr:
		return &ir.Star{At: at, X: l.expr(x.X)}
	case *ast.UnaryExpr:
		if x.Op == token.ARROW {
			return &ir.Receive{At: at, X: l.expr(x.X)}
		}

		return &ir.Unary{At: at, Op: x.Op.String(), X: l.expr(x.X)}
	case *ast.BinaryExpr:
		opStart := l.offset(x.OpPos)
		op := x.Op.String()

		return ir.NewBinary(at, l.expr(x.X), op, ir.Span{Start: opStart, End: opStart + len(op)}, l.expr(x.Y))
	case *ast.KeyValueExpr:
		return &ir.Other{At: at, Kids: []ir.Node{l.expr(x.Key), l.expr(x.Value)}}
	case *ast.Ellipsis, *ast.ArrayType, *ast.MapType, *ast.ChanType, *ast.FuncType,
		*ast.StructType, *ast.InterfaceType:
		return l.typeExpr(x)
	}

	return &ir.Other{At: at}
}

// element lowers a composite literal element. A bare identifier key may name
// a struct field, so it is a key rather than a use.
func (l *goLowerer) element(elt ast.Expr) ir.Node {
	kv, ok := elt.(*ast.KeyValueExpr)
	if !ok {
		return l.expr(elt)
	}

	var key ir.Node
	if id, ok := kv.Key.(*ast.Ident); ok {
		key = l.ident(id, ir.RoleKey)
	} else {
		key = l.expr(kv.Key)
	}

	return &ir.Other{At: l.span(kv), Kids: []ir.Node{key, l.expr(kv.Value)}}
}

func goLitKind(kind token.Token) ir.LitKind {
	switch kind {
	case token.INT:
		return ir.LitInt
	case token.FLOAT:
		return ir.LitFloat
	case token.CHAR:
		return ir.LitChar
	case token.STRING:
		return ir.LitString
	default:
		return ir.LitOther
	}
}
