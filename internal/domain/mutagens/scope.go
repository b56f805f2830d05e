// Package mutagens holds the lightweight mutation operators that run next to
// statement permutation: operand swapping and variable renaming.
package mutagens

import "codeaug.dev/pkg/codeaug/internal/model/ir"

// declaration is a local variable or parameter visible in some scope.
type declaration struct {
	ident    *ir.Ident
	typeText string
	uses     []*ir.Ident
	// param declarations shadow outer names but are never renamed.
	param bool
	// blocked declarations share their name with a composite literal key and
	// keep it.
	blocked bool
}

// scopeWalker walks a method in source order while tracking which local
// declarations are visible. visit is called on every node before its
// children, with the scopes as they stand at that point.
type scopeWalker struct {
	scopes []map[string]*declaration
	decls  []*declaration
	visit  func(n ir.Node)
}

func newScopeWalker(visit func(ir.Node)) *scopeWalker {
	return &scopeWalker{visit: visit}
}

func (w *scopeWalker) lookup(name string) *declaration {
	for i := len(w.scopes) - 1; i >= 0; i-- {
		if decl, ok := w.scopes[i][name]; ok {
			return decl
		}
	}

	return nil
}

// typeOf returns the declared type text of a visible local, or "" when the
// name is unknown.
func (w *scopeWalker) typeOf(name string) (string, bool) {
	decl := w.lookup(name)
	if decl == nil {
		return "", false
	}

	return decl.typeText, true
}

func (w *scopeWalker) declare(ident *ir.Ident, typeText string, param bool) {
	if ident == nil || ident.Name == "_" {
		return
	}

	decl := &declaration{ident: ident, typeText: typeText, param: param}
	w.scopes[len(w.scopes)-1][ident.Name] = decl

	if !param {
		w.decls = append(w.decls, decl)
	}
}

func (w *scopeWalker) declaredHere(name string) bool {
	_, ok := w.scopes[len(w.scopes)-1][name]
	return ok
}

func (w *scopeWalker) method(m *ir.Method) {
	w.scopes = append(w.scopes, map[string]*declaration{})

	if w.visit != nil {
		w.visit(m)
	}

	for _, p := range m.Params {
		w.walk(p)
	}

	w.walk(m.Body)
}

func opensScope(n ir.Node) bool {
	switch x := n.(type) {
	case *ir.CaseClause:
		return !x.Shared
	case *ir.Block, *ir.If, *ir.For, *ir.While, *ir.Range, *ir.Switch,
		*ir.FuncLit, *ir.Catch, *ir.Try:
		return true
	}

	return false
}

// sharedClause walks a clause whose body declares into the switch scope.
func (w *scopeWalker) sharedClause(c *ir.CaseClause) {
	for _, e := range c.Exprs {
		w.walk(e)
	}

	w.walk(c.Comm)

	if c.Body == nil {
		return
	}

	if w.visit != nil {
		w.visit(c.Body)
	}

	for _, stmt := range c.Body.Stmts {
		w.walk(stmt)
	}
}

//nolint:cyclop // one case per declaring kind
func (w *scopeWalker) walk(n ir.Node) {
	if ir.IsNil(n) {
		return
	}

	if w.visit != nil {
		w.visit(n)
	}

	if opensScope(n) {
		w.scopes = append(w.scopes, map[string]*declaration{})
		defer func() { w.scopes = w.scopes[:len(w.scopes)-1] }()
	}

	switch x := n.(type) {
	case *ir.Ident:
		w.resolve(x)
		return
	case *ir.Param:
		w.walk(x.Type)
		w.declare(x.Name, x.TypeText, true)

		return
	case *ir.VarDecl:
		w.varDecl(x)
		return
	case *ir.Assign:
		if x.Define {
			w.define(x)
			return
		}
	case *ir.Range:
		w.rangeStmt(x)
		return
	case *ir.CaseClause:
		if x.Shared {
			w.sharedClause(x)
			return
		}
	}

	for _, kid := range ir.Children(n) {
		w.walk(kid)
	}
}

func (w *scopeWalker) resolve(id *ir.Ident) {
	switch id.Role {
	case ir.RoleUse:
		if decl := w.lookup(id.Name); decl != nil {
			decl.uses = append(decl.uses, id)
		}
	case ir.RoleKey:
		if decl := w.lookup(id.Name); decl != nil {
			decl.blocked = true
		}
	case ir.RoleDecl, ir.RoleParam, ir.RoleMember, ir.RoleType, ir.RoleLabel:
	}
}

// varDecl registers each name after its own initializer, so an initializer
// never sees the variable it initializes.
func (w *scopeWalker) varDecl(x *ir.VarDecl) {
	w.walk(x.Type)

	if len(x.Values) == len(x.Names) {
		for i, name := range x.Names {
			w.walk(x.Values[i])
			w.declare(name, x.TypeText, false)
		}

		return
	}

	for _, value := range x.Values {
		w.walk(value)
	}

	for _, name := range x.Names {
		w.declare(name, x.TypeText, false)
	}
}

// define handles a short variable declaration: only names new to the
// current scope are declared, the others are plain uses.
func (w *scopeWalker) define(x *ir.Assign) {
	for _, value := range x.Rhs {
		w.walk(value)
	}

	for i, target := range x.Lhs {
		id, ok := target.(*ir.Ident)
		if !ok || w.declaredHere(id.Name) || id.Name == "_" {
			w.walk(target)
			continue
		}

		typeText := ""
		if len(x.Rhs) == len(x.Lhs) {
			typeText = inferredType(x.Rhs[i])
		}

		w.declare(id, typeText, false)
	}
}

func (w *scopeWalker) rangeStmt(x *ir.Range) {
	w.walk(x.X)

	for _, target := range []ir.Expr{x.Key, x.Value} {
		if ir.IsNil(target) {
			continue
		}

		if id, ok := target.(*ir.Ident); ok && x.Define {
			w.declare(id, "", false)
			continue
		}

		w.walk(target)
	}

	if x.Decl != nil {
		w.walk(x.Decl)
	}

	w.walk(x.Body)
}

// inferredType is the type a short variable declaration gives an untyped
// constant.
func inferredType(value ir.Expr) string {
	lit, ok := value.(*ir.Literal)
	if !ok {
		return ""
	}

	switch lit.Kind {
	case ir.LitInt:
		return "int"
	case ir.LitFloat:
		return "float64"
	case ir.LitChar:
		return "rune"
	case ir.LitBool:
		return "bool"
	case ir.LitOther, ir.LitString, ir.LitNull:
	}

	return ""
}
