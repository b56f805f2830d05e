package ir

import (
	"fmt"
	"reflect"
	"sort"
)

// Children returns the direct children of n. Block statements come in their
// current order and binary operands in their current slots; all other kinds
// list their children in source order.
//
//nolint:cyclop,funlen // one case per kind
func Children(n Node) []Node {
	var kids []Node

	switch x := n.(type) {
	case *Method:
		kids = collect(x.Name)
		for _, p := range x.Params {
			kids = append(kids, p)
		}

		kids = append(kids, collect(x.Body)...)
	case *Param:
		kids = collect(x.Type, x.Name)
	case *CaseClause:
		kids = exprs(x.Exprs)
		kids = append(kids, collect(x.Comm, x.Body)...)
	case *Catch:
		kids = collect(x.Params...)
		kids = append(kids, collect(x.Body)...)
	case *Block:
		return stmts(x.Stmts)
	case *ExprStmt:
		kids = collect(x.X)
	case *VarDecl:
		kids = collect(x.Type)
		for _, name := range x.Names {
			kids = append(kids, name)
		}

		kids = append(kids, exprs(x.Values)...)
	case *TypeDecl:
		kids = collect(x.Name)
		kids = append(kids, collect(x.Kids...)...)
	case *If:
		kids = collect(x.Init, x.Cond, x.Then, x.Else)
	case *For:
		kids = stmts(x.Init)
		kids = append(kids, collect(x.Cond)...)
		kids = append(kids, stmts(x.Post)...)
		kids = append(kids, collect(x.Body)...)
	case *While:
		kids = collect(x.Cond, x.Body)
	case *Range:
		kids = collect(x.Key, x.Value, x.Decl, x.X, x.Body)
	case *Switch:
		kids = collect(x.Init, x.Tag)
		for _, c := range x.Clauses {
			kids = append(kids, c)
		}
	case *Select:
		for _, c := range x.Clauses {
			kids = append(kids, c)
		}
	case *Try:
		kids = collect(x.Resources...)
		kids = append(kids, collect(x.Body)...)

		for _, c := range x.Catches {
			kids = append(kids, c)
		}

		kids = append(kids, collect(x.Finally)...)
	case *Sync:
		kids = collect(x.Lock, x.Body)
	case *Defer:
		kids = collect(x.Call)
	case *Send:
		kids = collect(x.Chan, x.Value)
	case *Branch:
		kids = collect(x.Label)
		kids = append(kids, exprs(x.Results)...)
	case *Labeled:
		kids = collect(x.Label, x.Stmt)
	case *Assert:
		kids = collect(x.Cond, x.Msg)
	case *Empty, *Bad, *Ident, *Literal:
		return nil
	case *Selector:
		kids = collect(x.X, x.Sel)
	case *Index:
		kids = collect(x.X)
		kids = append(kids, exprs(x.Index)...)
	case *Call:
		kids = collect(x.Fun)
		kids = append(kids, exprs(x.Args)...)
	case *New:
		kids = collect(x.Type)
		kids = append(kids, exprs(x.Args)...)
		kids = append(kids, collect(x.Body...)...)
	case *Assign:
		kids = exprs(x.Lhs)
		kids = append(kids, exprs(x.Rhs)...)
	case *IncDec:
		kids = collect(x.X)
	case *Unary:
		kids = collect(x.X)
	case *Star:
		kids = collect(x.X)
	case *Receive:
		kids = collect(x.X)
	case *Binary:
		return collect(x.X, x.Y)
	case *Paren:
		kids = collect(x.X)
	case *Cast:
		kids = collect(x.Type, x.X)
	case *FuncLit:
		for _, p := range x.Params {
			kids = append(kids, p)
		}

		kids = append(kids, collect(x.Body)...)
	case *Other:
		kids = collect(x.Kids...)
	default:
		panic(fmt.Sprintf("ir: unexpected node %T", n))
	}

	sort.SliceStable(kids, func(i, j int) bool {
		return kids[i].Pos().Start < kids[j].Pos().Start
	})

	return kids
}

// Inspect traverses the tree rooted at n in depth-first order, calling f for
// each node. Children are skipped when f returns false.
func Inspect(n Node, f func(Node) bool) {
	if IsNil(n) || !f(n) {
		return
	}

	for _, kid := range Children(n) {
		Inspect(kid, f)
	}
}

// Idents returns every identifier in the tree rooted at n.
func Idents(n Node) []*Ident {
	var out []*Ident

	Inspect(n, func(node Node) bool {
		if id, ok := node.(*Ident); ok {
			out = append(out, id)
		}

		return true
	})

	return out
}

// IsNil reports whether n holds no node, including a typed nil pointer.
func IsNil(n Node) bool {
	if n == nil {
		return true
	}

	v := reflect.ValueOf(n)

	return v.Kind() == reflect.Ptr && v.IsNil()
}

func collect(nodes ...Node) []Node {
	out := make([]Node, 0, len(nodes))

	for _, n := range nodes {
		if !IsNil(n) {
			out = append(out, n)
		}
	}

	return out
}

func exprs(list []Expr) []Node {
	out := make([]Node, 0, len(list))

	for _, e := range list {
		if !IsNil(e) {
			out = append(out, e)
		}
	}

	return out
}

func stmts(list []Stmt) []Node {
	out := make([]Node, 0, len(list))

	for _, s := range list {
		if !IsNil(s) {
			out = append(out, s)
		}
	}

	return out
}
