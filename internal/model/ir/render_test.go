package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildAssignMethod builds the tree of "{ a = 1; b = x + y; }" by hand.
func buildAssignMethod() (*Method, *Block, *Binary) {
	src := "{ a = 1; b = x + y; }"

	a := &Ident{At: Span{2, 3}, Name: "a"}
	one := &Literal{At: Span{6, 7}, Kind: LitInt, Value: "1"}
	first := &ExprStmt{At: Span{2, 8}, X: &Assign{At: Span{2, 7}, Lhs: []Expr{a}, Op: "=", Rhs: []Expr{one}}}

	b := &Ident{At: Span{9, 10}, Name: "b"}
	x := &Ident{At: Span{13, 14}, Name: "x"}
	y := &Ident{At: Span{17, 18}, Name: "y"}
	sum := NewBinary(Span{13, 18}, x, "+", Span{15, 16}, y)
	second := &ExprStmt{At: Span{9, 19}, X: &Assign{At: Span{9, 18}, Lhs: []Expr{b}, Op: "=", Rhs: []Expr{sum}}}

	body := NewBlock(Span{0, len(src)}, []Stmt{first, second})

	return &Method{At: Span{0, len(src)}, Source: src, Body: body}, body, sum
}

func TestRender(t *testing.T) {
	t.Run("reproduces untouched source", func(t *testing.T) {
		method, _, _ := buildAssignMethod()
		assert.Equal(t, method.Source, Render(method))
	})

	t.Run("swapped statements keep the gaps", func(t *testing.T) {
		method, body, _ := buildAssignMethod()
		body.Swap(0, 1)
		assert.Equal(t, "{ b = x + y; a = 1; }", Render(method))
	})

	t.Run("swapped operands", func(t *testing.T) {
		method, _, sum := buildAssignMethod()
		sum.X, sum.Y = sum.Y, sum.X
		assert.Equal(t, "{ a = 1; b = y + x; }", Render(method))
	})

	t.Run("renamed identifier", func(t *testing.T) {
		method, _, sum := buildAssignMethod()
		sum.X.(*Ident).Name = "count"
		assert.Equal(t, "{ a = 1; b = count + y; }", Render(method))
	})

	t.Run("all mutations combined", func(t *testing.T) {
		method, body, sum := buildAssignMethod()
		sum.X, sum.Y = sum.Y, sum.X
		sum.Op = "*"
		body.Swap(0, 1)
		body.Stmts[1].(*ExprStmt).X.(*Assign).Lhs[0].(*Ident).Name = "alpha"
		assert.Equal(t, "{ b = y * x; alpha = 1; }", Render(method))
	})

	t.Run("text ignores mutations", func(t *testing.T) {
		method, body, _ := buildAssignMethod()
		body.Swap(0, 1)
		assert.Equal(t, "b = x + y;", RenderNode(method, body.Stmts[0]))
		assert.Equal(t, "a = 1;", Text(method, &Empty{At: body.Slots[0]}))
	})
}

func TestChildren(t *testing.T) {
	method, body, sum := buildAssignMethod()

	kids := Children(method)
	require.Len(t, kids, 1)
	assert.Same(t, body, kids[0])

	assert.Len(t, Children(body), 2)
	assert.Equal(t, []Node{sum.X, sum.Y}, Children(sum))
	assert.Nil(t, Children(&Ident{}))

	names := make([]string, 0)
	for _, id := range Idents(method) {
		names = append(names, id.Name)
	}

	assert.Equal(t, []string{"a", "b", "x", "y"}, names)
}

func TestChildrenSkipsTypedNil(t *testing.T) {
	var missing *Block

	stmt := &If{At: Span{0, 10}, Cond: &Ident{At: Span{3, 4}, Name: "c"}, Then: missing}
	assert.Len(t, Children(stmt), 1)
	assert.True(t, IsNil(missing))
	assert.False(t, IsNil(stmt))
}

func TestChildrenPanicsOnForeignKind(t *testing.T) {
	assert.Panics(t, func() {
		Children(nil)
	})
}
