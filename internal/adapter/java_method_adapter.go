package adapter

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	m "codeaug.dev/pkg/codeaug/internal/model"
	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

// The method is parsed as the only member of a synthetic class.
const (
	javaMethodPrefix = "class __Augment {\n"
	javaMethodSuffix = "\n}"
)

var javaKeywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
	"true": true, "false": true, "null": true, "var": true, "yield": true,
	"record": true, "sealed": true, "permits": true, "_": true,
}

// javaAtoms are tokens whose inner nodes are not tokens of their own.
var javaAtoms = map[string]bool{
	"string_literal":    true,
	"character_literal": true,
	"text_block":        true,
}

var javaTypeDecls = map[string]bool{
	"class_declaration":           true,
	"interface_declaration":       true,
	"enum_declaration":            true,
	"record_declaration":          true,
	"annotation_type_declaration": true,
}

// JavaMethodParser lowers Java method and constructor declarations.
type JavaMethodParser struct{}

// NewJavaMethodParser constructs a JavaMethodParser.
func NewJavaMethodParser() *JavaMethodParser {
	return &JavaMethodParser{}
}

// Language returns m.LanguageJava.
func (p *JavaMethodParser) Language() m.Language {
	return m.LanguageJava
}

func (p *JavaMethodParser) parse(ctx context.Context, src string) (*sitter.Tree, []byte, error) {
	content := []byte(javaMethodPrefix + src + javaMethodSuffix)

	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return tree, content, nil
}

// Parse lowers the first method or constructor declaration with a body.
func (p *JavaMethodParser) Parse(ctx context.Context, src string) (*ir.Method, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, content, err := p.parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, parseError("syntax error")
	}

	decl := findJavaMethod(root)
	if decl == nil {
		return nil, parseError("no method declaration with a body")
	}

	l := &javaLowerer{content: content, src: src}

	return &ir.Method{
		At:      ir.Span{Start: 0, End: len(src)},
		Source:  src,
		Name:    l.ident(decl.ChildByFieldName("name"), ir.RoleMember),
		Params:  l.formalParams(decl.ChildByFieldName("parameters")),
		Body:    l.block(decl.ChildByFieldName("body")),
		Escaped: map[string]bool{},
	}, nil
}

// Tokens returns the leaves of the syntax tree. String and character
// literals are single tokens; comments are dropped.
func (p *JavaMethodParser) Tokens(ctx context.Context, src string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, content, err := p.parse(ctx, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	lo, hi := uint32(len(javaMethodPrefix)), uint32(len(javaMethodPrefix)+len(src))

	var (
		tokens []string
		visit  func(n *sitter.Node)
	)

	visit = func(n *sitter.Node) {
		if n.EndByte() <= lo || n.StartByte() >= hi || isJavaComment(n) {
			return
		}

		if n.ChildCount() == 0 || javaAtoms[n.Type()] {
			if text := n.Content(content); text != "" {
				tokens = append(tokens, text)
			}

			return
		}

		for i := range int(n.ChildCount()) {
			visit(n.Child(i))
		}
	}

	visit(tree.RootNode())

	return tokens, nil
}

// IsReserved rejects keywords, literals and contextual keywords.
func (p *JavaMethodParser) IsReserved(name string) bool {
	return javaKeywords[name]
}

func findJavaMethod(n *sitter.Node) *sitter.Node {
	switch n.Type() {
	case "method_declaration", "constructor_declaration":
		if n.ChildByFieldName("body") != nil {
			return n
		}
	}

	for i := range int(n.NamedChildCount()) {
		if found := findJavaMethod(n.NamedChild(i)); found != nil {
			return found
		}
	}

	return nil
}

func isJavaComment(n *sitter.Node) bool {
	switch n.Type() {
	case "line_comment", "block_comment", "comment":
		return true
	}

	return false
}

type javaLowerer struct {
	content []byte
	src     string
}

func (l *javaLowerer) offset(b uint32) int {
	return int(b) - len(javaMethodPrefix)
}

func (l *javaLowerer) span(n *sitter.Node) ir.Span {
	return ir.Span{Start: l.offset(n.StartByte()), End: l.offset(n.EndByte())}
}

func (l *javaLowerer) text(n *sitter.Node) string {
	return n.Content(l.content)
}

// named lists the named children of n, comments excluded.
func (l *javaLowerer) named(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}

	out := make([]*sitter.Node, 0, n.NamedChildCount())

	for i := range int(n.NamedChildCount()) {
		if c := n.NamedChild(i); !isJavaComment(c) {
			out = append(out, c)
		}
	}

	return out
}

func (l *javaLowerer) ident(n *sitter.Node, role ir.Role) *ir.Ident {
	if n == nil {
		return nil
	}

	return &ir.Ident{At: l.span(n), Name: l.text(n), Role: role}
}

func (l *javaLowerer) formalParams(n *sitter.Node) []*ir.Param {
	var params []*ir.Param

	for _, c := range l.named(n) {
		switch c.Type() {
		case "formal_parameter":
			params = append(params, l.param(c, c.ChildByFieldName("type"), c.ChildByFieldName("name"), ""))
		case "spread_parameter":
			var typ, name *sitter.Node

			for _, k := range l.named(c) {
				switch k.Type() {
				case "modifiers":
				case "variable_declarator":
					name = k.ChildByFieldName("name")
				default:
					if typ == nil {
						typ = k
					}
				}
			}

			params = append(params, l.param(c, typ, name, "..."))
		case "identifier":
			params = append(params, &ir.Param{At: l.span(c), Name: l.ident(c, ir.RoleParam)})
		}
	}

	return params
}

func (l *javaLowerer) param(n, typ, name *sitter.Node, suffix string) *ir.Param {
	p := &ir.Param{At: l.span(n), Name: l.ident(name, ir.RoleParam)}

	if typ != nil {
		p.Type = l.typeNode(typ)
		p.TypeText = l.text(typ) + suffix
	}

	if dims := n.ChildByFieldName("dimensions"); dims != nil {
		p.TypeText += l.text(dims)
	}

	return p
}

// typeNode lowers a type to the type names it mentions.
func (l *javaLowerer) typeNode(n *sitter.Node) ir.Node {
	if n == nil {
		return nil
	}

	switch n.Type() {
	case "type_identifier", "integral_type", "floating_point_type", "boolean_type", "void_type":
		return l.ident(n, ir.RoleType)
	}

	other := &ir.Other{At: l.span(n)}
	l.leaves(n, func(leaf *sitter.Node) {
		if leaf.Type() == "type_identifier" {
			other.Kids = append(other.Kids, l.ident(leaf, ir.RoleType))
		}
	})

	return other
}

// opaque lowers a class body or a local type declaration. Its identifiers
// may be fields, so outer variables sharing their names are never renamed.
func (l *javaLowerer) opaque(n *sitter.Node) *ir.Other {
	other := &ir.Other{At: l.span(n)}
	l.leaves(n, func(leaf *sitter.Node) {
		switch leaf.Type() {
		case "identifier":
			other.Kids = append(other.Kids, l.ident(leaf, ir.RoleKey))
		case "type_identifier":
			other.Kids = append(other.Kids, l.ident(leaf, ir.RoleType))
		}
	})

	return other
}

func (l *javaLowerer) leaves(n *sitter.Node, f func(*sitter.Node)) {
	if isJavaComment(n) {
		return
	}

	if n.ChildCount() == 0 {
		f(n)
		return
	}

	for i := range int(n.ChildCount()) {
		l.leaves(n.Child(i), f)
	}
}

func (l *javaLowerer) block(n *sitter.Node) *ir.Block {
	if n == nil {
		return nil
	}

	return ir.NewBlock(l.span(n), l.stmts(n, 0))
}

// stmts lowers the statement children of n that start at or after from.
func (l *javaLowerer) stmts(n *sitter.Node, from int) []ir.Stmt {
	var out []ir.Stmt

	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		if l.offset(c.StartByte()) < from || !isJavaStmt(c) {
			continue
		}

		out = append(out, l.stmt(c))
	}

	return out
}

func isJavaStmt(n *sitter.Node) bool {
	if isJavaComment(n) {
		return false
	}

	return n.IsNamed() || n.Type() == ";"
}

// stmtBlock wraps a statement that is not a block into a block of its own.
func (l *javaLowerer) stmtBlock(n *sitter.Node) *ir.Block {
	if n.Type() == "block" {
		return l.block(n)
	}

	return ir.NewBlock(l.span(n), []ir.Stmt{l.stmt(n)})
}

func (l *javaLowerer) optStmt(n *sitter.Node) ir.Stmt {
	if n == nil {
		return nil
	}

	return l.stmt(n)
}

func (l *javaLowerer) optExpr(n *sitter.Node) ir.Expr {
	if n == nil {
		return nil
	}

	return l.expr(n)
}

func (l *javaLowerer) first(n *sitter.Node) *sitter.Node {
	if kids := l.named(n); len(kids) > 0 {
		return kids[0]
	}

	return nil
}

//nolint:cyclop,funlen // one case per statement kind
func (l *javaLowerer) stmt(n *sitter.Node) ir.Stmt {
	at := l.span(n)

	switch n.Type() {
	case "block":
		return l.block(n)
	case ";":
		return &ir.Empty{At: at}
	case "expression_statement":
		return &ir.ExprStmt{At: at, X: l.optExpr(l.first(n))}
	case "local_variable_declaration":
		return l.varDecl(n)
	case "if_statement":
		return &ir.If{
			At:   at,
			Cond: l.optExpr(n.ChildByFieldName("condition")),
			Then: l.optStmt(n.ChildByFieldName("consequence")),
			Else: l.optStmt(n.ChildByFieldName("alternative")),
		}
	case "while_statement":
		return &ir.While{At: at, Cond: l.optExpr(n.ChildByFieldName("condition")), Body: l.optStmt(n.ChildByFieldName("body"))}
	case "do_statement":
		return &ir.While{
			At:      at,
			Cond:    l.optExpr(n.ChildByFieldName("condition")),
			Body:    l.optStmt(n.ChildByFieldName("body")),
			DoWhile: true,
		}
	case "for_statement":
		return l.forStmt(n)
	case "enhanced_for_statement":
		return l.rangeStmt(n)
	case "labeled_statement":
		kids := l.named(n)
		if len(kids) < 2 {
			return &ir.Bad{At: at}
		}

		return &ir.Labeled{At: at, Label: l.ident(kids[0], ir.RoleLabel), Stmt: l.stmt(kids[len(kids)-1])}
	case "return_statement":
		return l.branch(n, ir.BranchReturn)
	case "throw_statement":
		return l.branch(n, ir.BranchThrow)
	case "yield_statement":
		return l.branch(n, ir.BranchYield)
	case "break_statement", "continue_statement":
		kind := ir.BranchBreak
		if n.Type() == "continue_statement" {
			kind = ir.BranchContinue
		}

		return &ir.Branch{At: at, Kind: kind, Label: l.ident(l.first(n), ir.RoleLabel)}
	case "switch_expression", "switch_statement":
		return l.switchStmt(n)
	case "try_statement", "try_with_resources_statement":
		return l.tryStmt(n)
	case "synchronized_statement":
		sync := &ir.Sync{At: at, Body: l.block(n.ChildByFieldName("body"))}

		for _, c := range l.named(n) {
			if c.Type() == "parenthesized_expression" {
				sync.Lock = l.expr(c)
				break
			}
		}

		return sync
	case "assert_statement":
		kids := l.named(n)
		as := &ir.Assert{At: at}

		if len(kids) > 0 {
			as.Cond = l.expr(kids[0])
		}

		if len(kids) > 1 {
			as.Msg = l.expr(kids[1])
		}

		return as
	case "explicit_constructor_invocation":
		return &ir.ExprStmt{At: at, X: l.constructorCall(n)}
	}

	if name := n.ChildByFieldName("name"); javaTypeDecls[n.Type()] && name != nil {
		return &ir.TypeDecl{At: at, Name: l.ident(name, ir.RoleDecl), Kids: []ir.Node{l.opaqueRest(n, name)}}
	}

	return &ir.Bad{At: at}
}

// opaqueRest lowers a type declaration past its name.
func (l *javaLowerer) opaqueRest(n, name *sitter.Node) ir.Node {
	other := &ir.Other{At: ir.Span{Start: l.offset(name.EndByte()), End: l.offset(n.EndByte())}}

	for _, c := range l.named(n) {
		if c.StartByte() >= name.EndByte() {
			other.Kids = append(other.Kids, l.opaque(c))
		}
	}

	return other
}

func (l *javaLowerer) branch(n *sitter.Node, kind ir.BranchKind) *ir.Branch {
	b := &ir.Branch{At: l.span(n), Kind: kind}
	if value := l.first(n); value != nil {
		b.Results = []ir.Expr{l.expr(value)}
	}

	return b
}

func (l *javaLowerer) varDecl(n *sitter.Node) *ir.VarDecl {
	vd := &ir.VarDecl{At: l.span(n)}

	if typ := n.ChildByFieldName("type"); typ != nil {
		vd.Type = l.typeNode(typ)
		vd.TypeText = l.text(typ)
	}

	for _, c := range l.named(n) {
		if c.Type() != "variable_declarator" {
			continue
		}

		vd.Names = append(vd.Names, l.ident(c.ChildByFieldName("name"), ir.RoleDecl))
		vd.Values = append(vd.Values, l.optExpr(c.ChildByFieldName("value")))
	}

	return vd
}

// forStmt splits the header by its separators: the init declaration carries
// its own semicolon and every clause may hold several expressions.
func (l *javaLowerer) forStmt(n *sitter.Node) *ir.For {
	const (
		inInit = iota
		inCond
		inPost
		inBody
	)

	loop := &ir.For{At: l.span(n), Body: l.optStmt(n.ChildByFieldName("body"))}
	part := inInit

	for i := range int(n.ChildCount()) {
		c := n.Child(i)

		switch {
		case part == inBody:
		case c.Type() == ";":
			part++
		case c.Type() == ")":
			part = inBody
		case !c.IsNamed() || isJavaComment(c):
		case part == inInit && c.Type() == "local_variable_declaration":
			loop.Init = append(loop.Init, l.varDecl(c))
			part = inCond
		case part == inInit:
			loop.Init = append(loop.Init, &ir.ExprStmt{At: l.span(c), X: l.expr(c)})
		case part == inCond:
			loop.Cond = l.expr(c)
		case part == inPost:
			loop.Post = append(loop.Post, &ir.ExprStmt{At: l.span(c), X: l.expr(c)})
		}
	}

	return loop
}

func (l *javaLowerer) rangeStmt(n *sitter.Node) *ir.Range {
	r := &ir.Range{
		At:   l.span(n),
		X:    l.optExpr(n.ChildByFieldName("value")),
		Body: l.optStmt(n.ChildByFieldName("body")),
	}

	typ, name := n.ChildByFieldName("type"), n.ChildByFieldName("name")
	if typ == nil || name == nil {
		return r
	}

	r.Decl = &ir.VarDecl{
		At:       ir.Span{Start: l.offset(typ.StartByte()), End: l.offset(name.EndByte())},
		Type:     l.typeNode(typ),
		TypeText: l.text(typ),
		Names:    []*ir.Ident{l.ident(name, ir.RoleDecl)},
	}

	return r
}

func (l *javaLowerer) switchStmt(n *sitter.Node) *ir.Switch {
	sw := &ir.Switch{At: l.span(n), Tag: l.optExpr(n.ChildByFieldName("condition"))}

	// Label-only groups (case "a": case "b": ...) join the next group.
	var pending *ir.CaseClause

	flush := func() {
		if pending != nil {
			sw.Clauses = append(sw.Clauses, pending)
			pending = nil
		}
	}

	for _, c := range l.named(n.ChildByFieldName("body")) {
		switch c.Type() {
		case "switch_block_statement_group":
			clause := l.group(c)

			if pending != nil {
				clause.At.Start = pending.At.Start
				clause.Exprs = append(pending.Exprs, clause.Exprs...)
				pending = nil
			}

			if len(clause.Body.Stmts) == 0 {
				pending = clause
				continue
			}

			sw.Clauses = append(sw.Clauses, clause)
		case "switch_rule":
			flush()
			sw.Clauses = append(sw.Clauses, l.rule(c))
		}
	}

	flush()

	return sw
}

// group lowers an old-style case group. The statements after the last label
// form the clause body; its locals are visible to the following groups.
func (l *javaLowerer) group(n *sitter.Node) *ir.CaseClause {
	clause := &ir.CaseClause{At: l.span(n), Shared: true}
	start := l.offset(n.EndByte())

	for i := range int(n.ChildCount()) {
		c := n.Child(i)

		switch c.Type() {
		case "switch_label":
			clause.Exprs = append(clause.Exprs, l.labelExprs(c)...)
		case ":", "->":
			start = l.offset(c.EndByte())
		}
	}

	end := l.offset(n.EndByte())
	clause.Body = ir.NewBlock(ir.Span{Start: start, End: max(start, end)}, l.stmts(n, start))

	return clause
}

func (l *javaLowerer) rule(n *sitter.Node) *ir.CaseClause {
	clause := &ir.CaseClause{At: l.span(n)}
	kids := l.named(n)

	for _, c := range kids {
		if c.Type() == "switch_label" {
			clause.Exprs = append(clause.Exprs, l.labelExprs(c)...)
		}
	}

	if len(kids) > 0 && kids[len(kids)-1].Type() != "switch_label" {
		body := kids[len(kids)-1]
		clause.Body = l.stmtBlock(body)
	} else {
		end := l.offset(n.EndByte())
		clause.Body = ir.NewBlock(ir.Span{Start: end, End: end}, nil)
	}

	return clause
}

func (l *javaLowerer) labelExprs(n *sitter.Node) []ir.Expr {
	kids := l.named(n)
	out := make([]ir.Expr, 0, len(kids))

	for _, c := range kids {
		out = append(out, l.expr(c))
	}

	return out
}

func (l *javaLowerer) tryStmt(n *sitter.Node) *ir.Try {
	try := &ir.Try{At: l.span(n), Body: l.block(n.ChildByFieldName("body"))}

	for _, c := range l.named(n) {
		switch c.Type() {
		case "resource_specification":
			for _, res := range l.named(c) {
				try.Resources = append(try.Resources, l.resource(res))
			}
		case "catch_clause":
			try.Catches = append(try.Catches, l.catchClause(c))
		case "finally_clause":
			try.Finally = l.block(l.first(c))
		}
	}

	return try
}

func (l *javaLowerer) resource(n *sitter.Node) ir.Node {
	typ := n.ChildByFieldName("type")
	if typ == nil {
		return l.optExpr(l.first(n))
	}

	return &ir.VarDecl{
		At:       l.span(n),
		Type:     l.typeNode(typ),
		TypeText: l.text(typ),
		Names:    []*ir.Ident{l.ident(n.ChildByFieldName("name"), ir.RoleDecl)},
		Values:   []ir.Expr{l.optExpr(n.ChildByFieldName("value"))},
	}
}

func (l *javaLowerer) catchClause(n *sitter.Node) *ir.Catch {
	c := &ir.Catch{At: l.span(n), Body: l.block(n.ChildByFieldName("body"))}

	for _, k := range l.named(n) {
		if k.Type() != "catch_formal_parameter" {
			continue
		}

		var typ *sitter.Node

		for _, t := range l.named(k) {
			if t.Type() == "catch_type" {
				typ = t
			}
		}

		c.Params = append(c.Params, l.param(k, typ, k.ChildByFieldName("name"), ""))
	}

	return c
}

func (l *javaLowerer) exprs(list []*sitter.Node) []ir.Expr {
	out := make([]ir.Expr, 0, len(list))
	for _, n := range list {
		out = append(out, l.expr(n))
	}

	return out
}

//nolint:cyclop,funlen // one case per expression kind
func (l *javaLowerer) expr(n *sitter.Node) ir.Expr {
	at := l.span(n)

	switch n.Type() {
	case "identifier", "this", "super":
		return l.ident(n, ir.RoleUse)
	case "type_identifier":
		return l.ident(n, ir.RoleType)
	case "decimal_integer_literal", "hex_integer_literal", "octal_integer_literal", "binary_integer_literal":
		return &ir.Literal{At: at, Kind: ir.LitInt, Value: l.text(n)}
	case "decimal_floating_point_literal", "hex_floating_point_literal":
		return &ir.Literal{At: at, Kind: ir.LitFloat, Value: l.text(n)}
	case "character_literal":
		return &ir.Literal{At: at, Kind: ir.LitChar, Value: l.text(n)}
	case "string_literal", "text_block":
		return &ir.Literal{At: at, Kind: ir.LitString, Value: l.text(n)}
	case "true", "false":
		return &ir.Literal{At: at, Kind: ir.LitBool, Value: l.text(n)}
	case "null_literal":
		return &ir.Literal{At: at, Kind: ir.LitNull, Value: l.text(n)}
	case "parenthesized_expression":
		return &ir.Paren{At: at, X: l.optExpr(l.first(n))}
	case "field_access":
		return &ir.Selector{
			At:  at,
			X:   l.optExpr(n.ChildByFieldName("object")),
			Sel: l.ident(n.ChildByFieldName("field"), ir.RoleMember),
		}
	case "array_access":
		return &ir.Index{At: at, X: l.optExpr(n.ChildByFieldName("array")), Index: []ir.Expr{l.optExpr(n.ChildByFieldName("index"))}}
	case "method_invocation":
		return l.call(n)
	case "object_creation_expression":
		return l.newExpr(n)
	case "assignment_expression":
		return &ir.Assign{
			At:  at,
			Lhs: []ir.Expr{l.optExpr(n.ChildByFieldName("left"))},
			Op:  l.text(n.ChildByFieldName("operator")),
			Rhs: []ir.Expr{l.optExpr(n.ChildByFieldName("right"))},
		}
	case "binary_expression":
		op := n.ChildByFieldName("operator")

		return ir.NewBinary(at, l.expr(n.ChildByFieldName("left")), l.text(op), l.span(op), l.expr(n.ChildByFieldName("right")))
	case "unary_expression":
		return &ir.Unary{At: at, Op: l.text(n.ChildByFieldName("operator")), X: l.optExpr(n.ChildByFieldName("operand"))}
	case "update_expression":
		inc := &ir.IncDec{At: at, X: l.optExpr(l.first(n))}

		for i := range int(n.ChildCount()) {
			if c := n.Child(i); !c.IsNamed() {
				inc.Op = c.Type()
			}
		}

		return inc
	case "cast_expression":
		typ := n.ChildByFieldName("type")

		return &ir.Cast{At: at, Type: l.typeNode(typ), TypeText: l.text(typ), X: l.optExpr(n.ChildByFieldName("value"))}
	case "lambda_expression":
		return l.lambda(n)
	case "switch_expression", "switch_statement":
		sw := l.switchStmt(n)
		other := &ir.Other{At: at, Kids: []ir.Node{sw.Tag}}

		for _, c := range sw.Clauses {
			other.Kids = append(other.Kids, c)
		}

		return other
	case "method_reference":
		kids := l.named(n)
		other := &ir.Other{At: at}

		for i, c := range kids {
			if i > 0 && c.Type() == "identifier" {
				other.Kids = append(other.Kids, l.ident(c, ir.RoleMember))
				continue
			}

			other.Kids = append(other.Kids, l.expr(c))
		}

		return other
	}

	return l.generic(n)
}

// generic lowers an expression without a dedicated kind: identifiers are
// reads, nested blocks stay blocks.
func (l *javaLowerer) generic(n *sitter.Node) *ir.Other {
	other := &ir.Other{At: l.span(n)}

	for _, c := range l.named(n) {
		switch c.Type() {
		case "modifiers", "annotation", "marker_annotation":
		case "block":
			other.Kids = append(other.Kids, l.block(c))
		case "class_body":
			other.Kids = append(other.Kids, l.opaque(c))
		default:
			other.Kids = append(other.Kids, l.expr(c))
		}
	}

	return other
}

func (l *javaLowerer) args(n *sitter.Node) []ir.Expr {
	return l.exprs(l.named(n))
}

func (l *javaLowerer) call(n *sitter.Node) *ir.Call {
	name := l.ident(n.ChildByFieldName("name"), ir.RoleMember)
	c := &ir.Call{At: l.span(n), Fun: name, Args: l.args(n.ChildByFieldName("arguments"))}

	if object := n.ChildByFieldName("object"); object != nil {
		c.Fun = &ir.Selector{
			At:  ir.Span{Start: l.offset(object.StartByte()), End: name.At.End},
			X:   l.expr(object),
			Sel: name,
		}
	}

	return c
}

// constructorCall lowers this(...) and super(...) at the start of a
// constructor body.
func (l *javaLowerer) constructorCall(n *sitter.Node) *ir.Call {
	ctor := l.ident(n.ChildByFieldName("constructor"), ir.RoleMember)
	c := &ir.Call{At: l.span(n), Fun: ctor, Args: l.args(n.ChildByFieldName("arguments"))}

	if object := n.ChildByFieldName("object"); object != nil && ctor != nil {
		c.Fun = &ir.Selector{
			At:  ir.Span{Start: l.offset(object.StartByte()), End: ctor.At.End},
			X:   l.expr(object),
			Sel: ctor,
		}
	}

	return c
}

func (l *javaLowerer) newExpr(n *sitter.Node) *ir.New {
	typ := n.ChildByFieldName("type")
	nw := &ir.New{At: l.span(n), Type: l.typeNode(typ), Args: l.args(n.ChildByFieldName("arguments"))}

	for _, c := range l.named(n) {
		switch {
		case c.Type() == "class_body":
			nw.Body = append(nw.Body, l.opaque(c))
		case typ != nil && c.EndByte() <= typ.StartByte() && c.Type() != "type_arguments":
			// outer.new Inner()
			nw.Args = append([]ir.Expr{l.expr(c)}, nw.Args...)
		}
	}

	return nw
}

func (l *javaLowerer) lambda(n *sitter.Node) *ir.FuncLit {
	fn := &ir.FuncLit{At: l.span(n)}

	if params := n.ChildByFieldName("parameters"); params != nil {
		if params.Type() == "identifier" {
			fn.Params = []*ir.Param{{At: l.span(params), Name: l.ident(params, ir.RoleParam)}}
		} else {
			fn.Params = l.formalParams(params)
		}
	}

	body := n.ChildByFieldName("body")

	switch {
	case body == nil:
	case body.Type() == "block":
		fn.Body = l.block(body)
	default:
		fn.Body = &ir.ExprStmt{At: l.span(body), X: l.expr(body)}
	}

	return fn
}
