package permute

import (
	"math/rand/v2"
	"strconv"

	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

func id(name string) *ir.Ident { return &ir.Ident{Name: name} }

func lit(v int) *ir.Literal { return &ir.Literal{Kind: ir.LitInt, Value: strconv.Itoa(v)} }

func bin(x ir.Expr, op string, y ir.Expr) *ir.Binary { return &ir.Binary{X: x, Op: op, Y: y} }

func set(name string, value ir.Expr) ir.Stmt {
	return &ir.ExprStmt{X: &ir.Assign{Lhs: []ir.Expr{id(name)}, Op: "=", Rhs: []ir.Expr{value}}}
}

func inc(name string) ir.Stmt {
	return &ir.ExprStmt{X: &ir.IncDec{X: id(name), Op: "++"}}
}

func call(recv, name string, args ...ir.Expr) ir.Stmt {
	fun := &ir.Selector{X: id(recv), Sel: &ir.Ident{Name: name, Role: ir.RoleMember}}
	return &ir.ExprStmt{X: &ir.Call{Fun: fun, Args: args}}
}

func ret(results ...ir.Expr) ir.Stmt {
	return &ir.Branch{Kind: ir.BranchReturn, Results: results}
}

func block(stmts ...ir.Stmt) *ir.Block { return ir.NewBlock(ir.Span{}, stmts) }

func method(stmts ...ir.Stmt) *ir.Method {
	return &ir.Method{Name: id("m"), Body: block(stmts...)}
}

func newRand(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }

// run interprets straight-line integer code: assignments of literals, names
// and binary arithmetic, and increments.
func run(m *ir.Method, env map[string]int) map[string]int {
	out := make(map[string]int, len(env))
	for k, v := range env {
		out[k] = v
	}

	for _, stmt := range m.Body.Stmts {
		switch x := stmt.(*ir.ExprStmt).X.(type) {
		case *ir.Assign:
			out[x.Lhs[0].(*ir.Ident).Name] = eval(x.Rhs[0], out)
		case *ir.IncDec:
			out[x.X.(*ir.Ident).Name]++
		default:
			panic("unsupported statement")
		}
	}

	return out
}

func eval(e ir.Expr, env map[string]int) int {
	switch x := e.(type) {
	case *ir.Ident:
		return env[x.Name]
	case *ir.Literal:
		v, err := strconv.Atoi(x.Value)
		if err != nil {
			panic(err)
		}

		return v
	case *ir.Binary:
		l, r := eval(x.X, env), eval(x.Y, env)

		switch x.Op {
		case "+":
			return l + r
		case "-":
			return l - r
		case "*":
			return l * r
		}
	}

	panic("unsupported expression")
}

var programNames = []string{"a", "b", "c", "d", "e"}

// randomProgram builds a straight-line program over a handful of names.
func randomProgram(rng *rand.Rand, size int) *ir.Method {
	pick := func() string { return programNames[rng.IntN(len(programNames))] }
	operand := func() ir.Expr {
		if rng.IntN(3) == 0 {
			return lit(rng.IntN(7))
		}

		return id(pick())
	}
	ops := []string{"+", "-", "*"}

	stmts := make([]ir.Stmt, 0, size)

	for range size {
		switch rng.IntN(4) {
		case 0:
			stmts = append(stmts, set(pick(), lit(rng.IntN(9))))
		case 1:
			stmts = append(stmts, inc(pick()))
		default:
			stmts = append(stmts, set(pick(), bin(operand(), ops[rng.IntN(len(ops))], operand())))
		}
	}

	return method(stmts...)
}
