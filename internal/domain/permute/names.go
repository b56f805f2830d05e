package permute

import (
	"fmt"

	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

const (
	// elementName stands for "some element of some array, slice or map".
	// Every index expression touches it, so element writes and reads through
	// different variables never cross.
	elementName = "[]"
	// pointeeName stands for "memory reached through a pointer". Pointer
	// dereferences and variables whose address is taken touch it.
	pointeeName = "*"
)

// nameSet is an insertion-ordered set of names.
type nameSet struct {
	order []string
	seen  map[string]struct{}
}

func (s *nameSet) add(name string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}

	if _, ok := s.seen[name]; ok {
		return
	}

	s.seen[name] = struct{}{}
	s.order = append(s.order, name)
}

func (s *nameSet) has(name string) bool {
	_, ok := s.seen[name]
	return ok
}

func (s *nameSet) list() []string {
	return s.order
}

// access tells how an identifier is touched.
type access struct {
	read  bool
	write bool
}

var (
	readOnly  = access{read: true}
	readWrite = access{read: true, write: true}
)

// touch adds name to every statement record on the stack, so enclosing
// statements inherit what their nested statements read and write.
func (s *segmenter) touch(name string, how access) {
	for _, rec := range s.stack {
		if how.read {
			rec.reads.add(name)
		}

		if how.write {
			rec.writes.add(name)
		}
	}

	if name != pointeeName && s.method.Escaped[name] {
		s.touch(pointeeName, how)
	}
}

// touchAll touches every identifier mentioned under n, plus the pseudo-names
// of element and pointer accesses.
func (s *segmenter) touchAll(n ir.Node, how access) {
	ir.Inspect(n, func(node ir.Node) bool {
		switch x := node.(type) {
		case *ir.Ident:
			s.touch(x.Name, how)
		case *ir.Index:
			s.touch(elementName, how)
		case *ir.Star:
			s.touch(pointeeName, how)
		}

		return true
	})
}

// expr classifies every identifier touch of e as a read, a write or both.
//
//nolint:cyclop,funlen // one case per kind
func (s *segmenter) expr(e ir.Expr) {
	if ir.IsNil(e) {
		return
	}

	switch x := e.(type) {
	case *ir.Ident:
		if x.Role != ir.RoleLabel {
			s.touch(x.Name, readOnly)
		}
	case *ir.Literal:
	case *ir.Selector:
		s.expr(x.X)
		s.expr(x.Sel)
	case *ir.Index:
		s.expr(x.X)
		s.exprs(x.Index)
		s.touch(elementName, readOnly)
	case *ir.Call:
		s.exprs(x.Args)
		s.expr(x.Fun)
		s.touchAll(x.Fun, readWrite)
		s.split()
	case *ir.New:
		s.touchAll(x.Type, readOnly)
		s.exprs(x.Args)

		for _, member := range x.Body {
			s.node(member)
		}

		s.split()
	case *ir.Assign:
		for _, target := range x.Lhs {
			s.expr(target)
			s.touchAll(target, readWrite)
		}

		s.exprs(x.Rhs)
	case *ir.IncDec:
		s.expr(x.X)
		s.touchAll(x.X, readWrite)
	case *ir.Unary:
		s.expr(x.X)
	case *ir.Star:
		s.expr(x.X)
		s.touch(pointeeName, readOnly)
	case *ir.Receive:
		s.expr(x.X)
		s.split()
	case *ir.Binary:
		s.expr(x.X)
		s.expr(x.Y)
	case *ir.Paren:
		s.expr(x.X)
	case *ir.Cast:
		s.touchAll(x.Type, readOnly)
		s.expr(x.X)
	case *ir.FuncLit:
		for _, p := range x.Params {
			s.touchAll(p, readOnly)
		}

		s.stmt(x.Body)
	case *ir.Other:
		if text := ir.Text(s.method, x); len(x.Kids) == 0 && text != "" {
			s.touch(text, readOnly)
		}

		for _, kid := range x.Kids {
			s.node(kid)
		}
	default:
		panic(fmt.Sprintf("permute: unexpected expression %T", e))
	}
}

func (s *segmenter) exprs(list []ir.Expr) {
	for _, e := range list {
		s.expr(e)
	}
}

// node dispatches a child of unknown category.
func (s *segmenter) node(n ir.Node) {
	if ir.IsNil(n) {
		return
	}

	switch x := n.(type) {
	case ir.Stmt:
		s.stmt(x)
	case ir.Expr:
		s.expr(x)
	case *ir.Param:
		s.touchAll(x, readOnly)
	case *ir.CaseClause:
		s.clause(x)
	case *ir.Catch:
		for _, p := range x.Params {
			s.touchAll(p, readOnly)
		}

		s.stmt(x.Body)
	default:
		panic(fmt.Sprintf("permute: unexpected node %T", n))
	}
}
