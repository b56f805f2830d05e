package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "codeaug.dev/pkg/codeaug/internal/model"
	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

const javaSample = `public int sum(int[] xs, String label) {
    // running total
    int total = 0;
    for (int x : xs) {
        total += x;
    }
    for (int i = 0, j = xs.length; i < j; i++, j--) {
        total = total + xs[i];
    }
    switch (label) {
        case "a":
        case "b":
            total++;
            break;
        default:
            total--;
    }
    return total;
}`

func parseJava(t *testing.T, src string) *ir.Method {
	t.Helper()

	method, err := NewJavaMethodParser().Parse(context.Background(), src)
	require.NoError(t, err, src)

	return method
}

func TestJavaMethodParserRoundTrip(t *testing.T) {
	sources := []string{
		javaSample,
		"void f() {}",
		"Foo(int a) {\n  super(a);\n  this.a = a;\n}",
		"void f(List<String> xs) {\n  xs.forEach(x -> System.out.println(x));\n  Runnable r = () -> { count++; };\n}",
		"int f(Object o) {\n  try (Reader r = open()) {\n    return r.read();\n  } catch (IOException | RuntimeException e) {\n    throw e;\n  } finally {\n    close();\n  }\n}",
		"void f() {\n  outer:\n  while (true) {\n    do { n--; } while (n > 0);\n    continue outer;\n  }\n}",
	}

	for _, src := range sources {
		assert.Equal(t, src, ir.Render(parseJava(t, src)))
	}
}

func TestJavaMethodParserLowering(t *testing.T) {
	method := parseJava(t, javaSample)

	assert.Equal(t, "sum", method.Name.Name)
	require.Len(t, method.Params, 2)
	assert.Equal(t, "xs", method.Params[0].Name.Name)
	assert.Equal(t, "int[]", method.Params[0].TypeText)
	assert.Equal(t, "String", method.Params[1].TypeText)

	stmts := method.Body.Stmts
	require.Len(t, stmts, 5)

	decl := stmts[0].(*ir.VarDecl)
	assert.Equal(t, "int", decl.TypeText)
	require.Len(t, decl.Names, 1)
	assert.Equal(t, "total", decl.Names[0].Name)
	assert.Equal(t, ir.LitInt, decl.Values[0].(*ir.Literal).Kind)

	each := stmts[1].(*ir.Range)
	require.NotNil(t, each.Decl)
	assert.Equal(t, "x", each.Decl.Names[0].Name)
	assert.Equal(t, "xs", each.X.(*ir.Ident).Name)

	loop := stmts[2].(*ir.For)
	require.Len(t, loop.Init, 1)
	assert.Len(t, loop.Init[0].(*ir.VarDecl).Names, 2)
	assert.Equal(t, "<", loop.Cond.(*ir.Binary).Op)
	assert.Len(t, loop.Post, 2)

	sw := stmts[3].(*ir.Switch)
	require.Len(t, sw.Clauses, 2)
	assert.Len(t, sw.Clauses[0].Exprs, 2)
	assert.Len(t, sw.Clauses[0].Body.Stmts, 2)
	assert.Equal(t, ir.BranchBreak, sw.Clauses[0].Body.Stmts[1].(*ir.Branch).Kind)
	assert.Len(t, sw.Clauses[1].Body.Stmts, 1)

	assert.Equal(t, ir.BranchReturn, stmts[4].(*ir.Branch).Kind)
}

func TestJavaMethodParserCaseGroups(t *testing.T) {
	src := "void f(int k) {\n  switch (k) {\n    case 1:\n    case 2: n++; break;\n    case 3:\n    default:\n  }\n  switch (k) {\n    case 4 -> n--;\n    default -> {}\n  }\n}"
	method := parseJava(t, src)

	groups := method.Body.Stmts[0].(*ir.Switch)
	require.Len(t, groups.Clauses, 2)

	assert.Len(t, groups.Clauses[0].Exprs, 2)
	assert.Len(t, groups.Clauses[0].Body.Stmts, 2)
	assert.True(t, groups.Clauses[0].Shared)

	assert.Len(t, groups.Clauses[1].Exprs, 1)
	assert.Empty(t, groups.Clauses[1].Body.Stmts)
	assert.True(t, groups.Clauses[1].Shared)

	rules := method.Body.Stmts[1].(*ir.Switch)
	require.Len(t, rules.Clauses, 2)
	assert.False(t, rules.Clauses[0].Shared)
	assert.False(t, rules.Clauses[1].Shared)

	assert.Equal(t, src, ir.Render(method))
}

func TestJavaMethodParserConstructor(t *testing.T) {
	method := parseJava(t, "Foo(int a) {\n  super(a);\n  this.a = a;\n}")

	assert.Equal(t, "Foo", method.Name.Name)
	require.Len(t, method.Body.Stmts, 2)

	call := method.Body.Stmts[0].(*ir.ExprStmt).X.(*ir.Call)
	assert.Equal(t, "super", call.Fun.(*ir.Ident).Name)

	assign := method.Body.Stmts[1].(*ir.ExprStmt).X.(*ir.Assign)
	assert.Equal(t, "a", assign.Lhs[0].(*ir.Selector).Sel.Name)
	assert.Equal(t, ir.RoleMember, assign.Lhs[0].(*ir.Selector).Sel.Role)
}

func TestJavaMethodParserCalls(t *testing.T) {
	method := parseJava(t, "void f(List<String> xs) {\n  xs.forEach(x -> System.out.println(x));\n  new Thread(() -> {}).start();\n}")

	call := method.Body.Stmts[0].(*ir.ExprStmt).X.(*ir.Call)
	fun := call.Fun.(*ir.Selector)
	assert.Equal(t, "forEach", fun.Sel.Name)
	assert.Equal(t, "xs", fun.X.(*ir.Ident).Name)

	lambda := call.Args[0].(*ir.FuncLit)
	require.Len(t, lambda.Params, 1)
	assert.Equal(t, ir.RoleParam, lambda.Params[0].Name.Role)
	assert.IsType(t, &ir.ExprStmt{}, lambda.Body)

	start := method.Body.Stmts[1].(*ir.ExprStmt).X.(*ir.Call)
	assert.IsType(t, &ir.New{}, start.Fun.(*ir.Selector).X)
}

func TestJavaMethodParserMutationsRender(t *testing.T) {
	src := "int f() {\n  int a = 1;\n  int b = 2; // two\n  return a * b;\n}"
	method := parseJava(t, src)

	method.Body.Swap(0, 1)

	product := method.Body.Stmts[2].(*ir.Branch).Results[0].(*ir.Binary)
	product.X, product.Y = product.Y, product.X

	want := "int f() {\n  int b = 2;\n  int a = 1; // two\n  return b * a;\n}"
	assert.Equal(t, want, ir.Render(method))
	parseJava(t, want)
}

func TestJavaMethodParserErrors(t *testing.T) {
	p := NewJavaMethodParser()

	for _, src := range []string{"void f( {", "int x = 1;", "abstract void f();"} {
		_, err := p.Parse(context.Background(), src)
		assert.ErrorIs(t, err, ErrParse, src)
	}
}

func TestJavaMethodParserTokens(t *testing.T) {
	tokens, err := NewJavaMethodParser().Tokens(context.Background(), "int f() {\n  return \"a b\".length(); // c\n}")
	require.NoError(t, err)

	assert.Equal(t, []string{"int", "f", "(", ")", "{", "return", `"a b"`, ".", "length", "(", ")", ";", "}"}, tokens)
}

func TestJavaMethodParserIsReserved(t *testing.T) {
	p := NewJavaMethodParser()

	for _, name := range []string{"class", "int", "null", "var", "record"} {
		assert.True(t, p.IsReserved(name), name)
	}

	assert.False(t, p.IsReserved("length"))
	assert.Equal(t, m.LanguageJava, p.Language())
}
