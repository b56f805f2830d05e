// Package ir defines the language-neutral tree of a single method that every
// mutation operator works on.
//
// Frontends in the adapter package lower a parsed method into this tree. Each
// node remembers the byte range it occupied in the original source, so Render
// can rebuild the method by splicing: untouched code is reproduced byte for
// byte and only relocated statements, swapped operands and renamed identifiers
// change.
//
// The set of node kinds is closed. Every switch over kinds in this module is
// exhaustive and panics on an unknown kind.
package ir

// Span is a half-open byte range [Start, End) into Method.Source.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Node is implemented by every kind of the tree.
type Node interface {
	Pos() Span
	node()
}

// Stmt is a statement kind.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression kind.
type Expr interface {
	Node
	exprNode()
}

// Role tells what an identifier occurrence stands for.
type Role uint8

// Identifier roles.
const (
	// RoleUse is a plain name expression (a variable, a function value...).
	RoleUse Role = iota
	// RoleDecl declares a local variable.
	RoleDecl
	// RoleParam declares a parameter. Parameters shadow but are never renamed.
	RoleParam
	// RoleMember is a field or method name reached through a selector or call.
	RoleMember
	// RoleKey is a key of a composite literal; it may be a field or a variable.
	RoleKey
	// RoleType names a type.
	RoleType
	// RoleLabel names a statement label.
	RoleLabel
)

// LitKind classifies literals.
type LitKind uint8

// Literal kinds.
const (
	LitOther LitKind = iota
	LitInt
	LitFloat
	LitChar
	LitBool
	LitString
	LitNull
)

// BranchKind classifies control-transfer statements.
type BranchKind uint8

// Branch kinds.
const (
	BranchReturn BranchKind = iota
	BranchBreak
	BranchContinue
	BranchThrow
	BranchGoto
	BranchFallthrough
	BranchYield
)

var branchNames = [...]string{"return", "break", "continue", "throw", "goto", "fallthrough", "yield"}

func (k BranchKind) String() string {
	if int(k) < len(branchNames) {
		return branchNames[k]
	}

	return "branch"
}

// Method is the root of the tree: one function or method declaration.
type Method struct {
	At     Span
	Source string
	Name   *Ident
	Params []*Param
	Body   *Block
	// Escaped holds names whose address is taken somewhere in the method.
	Escaped map[string]bool
}

// Param is a declared parameter of a method or function literal.
type Param struct {
	At       Span
	Name     *Ident
	Type     Node
	TypeText string
}

// CaseClause is one arm of a switch or select statement. Its body is an
// independent block.
type CaseClause struct {
	At    Span
	Exprs []Expr
	// Comm is the communication of a select arm, nil otherwise.
	Comm Stmt
	Body *Block
	// Shared marks a clause whose declarations belong to the enclosing
	// switch, as in Java case groups that fall through to each other.
	Shared bool
}

// Catch is one catch clause of a try statement.
type Catch struct {
	At     Span
	Params []Node
	Body   *Block
}

// --- statements

// Block is a braced (or implicit, for case clauses) statement list. Stmts is
// the current order; Slots keeps the spans the statements occupied at parse
// time, so a relocation is an exchange of two Stmts elements.
type Block struct {
	At    Span
	Stmts []Stmt
	Slots []Span
}

// NewBlock builds a block whose slots are the current statement spans.
func NewBlock(at Span, stmts []Stmt) *Block {
	slots := make([]Span, len(stmts))
	for i, stmt := range stmts {
		slots[i] = stmt.Pos()
	}

	return &Block{At: at, Stmts: stmts, Slots: slots}
}

// Swap exchanges the statements at positions i and j.
func (b *Block) Swap(i, j int) {
	b.Stmts[i], b.Stmts[j] = b.Stmts[j], b.Stmts[i]
}

// ExprStmt is an expression evaluated for its effect.
type ExprStmt struct {
	At Span
	X  Expr
}

// VarDecl declares local variables. Values is either aligned with Names
// (entries may be nil) or holds a single multi-valued expression.
type VarDecl struct {
	At       Span
	Type     Node
	TypeText string
	Names    []*Ident
	Values   []Expr
}

// TypeDecl is a local type declaration (class, record, enum, named type).
// Kids hold everything mentioned by the declaration: header identifiers and
// member bodies.
type TypeDecl struct {
	At   Span
	Name *Ident
	Kids []Node
}

// If is a conditional statement.
type If struct {
	At   Span
	Init Stmt
	Cond Expr
	Then Stmt
	Else Stmt
}

// For is a three-clause loop.
type For struct {
	At   Span
	Init []Stmt
	Cond Expr
	Post []Stmt
	Body Stmt
}

// While is a pre-test loop, or a post-test loop when DoWhile is set.
type While struct {
	At      Span
	Cond    Expr
	Body    Stmt
	DoWhile bool
}

// Range iterates a collection. Go fills Key/Value, Java fills Decl.
type Range struct {
	At     Span
	Key    Expr
	Value  Expr
	Define bool
	Decl   *VarDecl
	X      Expr
	Body   Stmt
}

// Switch is a switch statement over Tag (nil for a tagless switch).
type Switch struct {
	At      Span
	Init    Stmt
	Tag     Expr
	Clauses []*CaseClause
}

// Select waits on channel operations.
type Select struct {
	At      Span
	Clauses []*CaseClause
}

// Try is an exception-handling statement.
type Try struct {
	At        Span
	Resources []Node
	Body      *Block
	Catches   []*Catch
	Finally   *Block
}

// Sync is a block guarded by a monitor.
type Sync struct {
	At   Span
	Lock Expr
	Body *Block
}

// Defer schedules a call: go or defer.
type Defer struct {
	At      Span
	Keyword string
	Call    Expr
}

// Send sends a value on a channel.
type Send struct {
	At    Span
	Chan  Expr
	Value Expr
}

// Branch transfers control.
type Branch struct {
	At      Span
	Kind    BranchKind
	Label   *Ident
	Results []Expr
}

// Labeled attaches a label to a statement.
type Labeled struct {
	At    Span
	Label *Ident
	Stmt  Stmt
}

// Assert checks a condition.
type Assert struct {
	At   Span
	Cond Expr
	Msg  Expr
}

// Empty is an empty statement.
type Empty struct {
	At Span
}

// Bad is a statement the frontend could not classify.
type Bad struct {
	At Span
}

// --- expressions

// Ident is an identifier occurrence.
type Ident struct {
	At   Span
	Name string
	Role Role
}

// Literal is a constant written in the source.
type Literal struct {
	At    Span
	Kind  LitKind
	Value string
}

// Selector is a member access x.sel.
type Selector struct {
	At  Span
	X   Expr
	Sel *Ident
}

// Index is an element access or a slice expression.
type Index struct {
	At    Span
	X     Expr
	Index []Expr
}

// Call invokes Fun.
type Call struct {
	At   Span
	Fun  Expr
	Args []Expr
}

// New constructs an object, optionally with an anonymous class body.
type New struct {
	At   Span
	Type Node
	Args []Expr
	Body []Node
}

// Assign stores Rhs into Lhs. Define marks a Go short variable declaration.
type Assign struct {
	At     Span
	Lhs    []Expr
	Op     string
	Rhs    []Expr
	Define bool
}

// IncDec is an increment or decrement.
type IncDec struct {
	At Span
	X  Expr
	Op string
}

// Unary applies a prefix operator.
type Unary struct {
	At Span
	Op string
	X  Expr
}

// Star dereferences a pointer.
type Star struct {
	At Span
	X  Expr
}

// Receive reads from a channel.
type Receive struct {
	At Span
	X  Expr
}

// Binary applies an infix operator. The slots are fixed at parse time so the
// operands can be exchanged without touching the surrounding text.
type Binary struct {
	At     Span
	X      Expr
	Op     string
	Y      Expr
	XSlot  Span
	OpSlot Span
	YSlot  Span
}

// NewBinary builds a binary expression whose slots are the current operand
// and operator positions.
func NewBinary(at Span, x Expr, op string, opAt Span, y Expr) *Binary {
	return &Binary{At: at, X: x, Op: op, Y: y, XSlot: x.Pos(), OpSlot: opAt, YSlot: y.Pos()}
}

// Paren is a parenthesized expression.
type Paren struct {
	At Span
	X  Expr
}

// Cast converts X to Type. Go type assertions are casts as well.
type Cast struct {
	At       Span
	Type     Node
	TypeText string
	X        Expr
}

// FuncLit is a function literal or lambda.
type FuncLit struct {
	At     Span
	Params []*Param
	Body   Stmt
}

// Other is any expression shape without a dedicated kind. Its kids are
// visited conservatively.
type Other struct {
	At   Span
	Kids []Node
}

func (n *Method) Pos() Span     { return n.At }
func (n *Param) Pos() Span      { return n.At }
func (n *CaseClause) Pos() Span { return n.At }
func (n *Catch) Pos() Span      { return n.At }
func (n *Block) Pos() Span      { return n.At }
func (n *ExprStmt) Pos() Span   { return n.At }
func (n *VarDecl) Pos() Span    { return n.At }
func (n *TypeDecl) Pos() Span   { return n.At }
func (n *If) Pos() Span         { return n.At }
func (n *For) Pos() Span        { return n.At }
func (n *While) Pos() Span      { return n.At }
func (n *Range) Pos() Span      { return n.At }
func (n *Switch) Pos() Span     { return n.At }
func (n *Select) Pos() Span     { return n.At }
func (n *Try) Pos() Span        { return n.At }
func (n *Sync) Pos() Span       { return n.At }
func (n *Defer) Pos() Span      { return n.At }
func (n *Send) Pos() Span       { return n.At }
func (n *Branch) Pos() Span     { return n.At }
func (n *Labeled) Pos() Span    { return n.At }
func (n *Assert) Pos() Span     { return n.At }
func (n *Empty) Pos() Span      { return n.At }
func (n *Bad) Pos() Span        { return n.At }
func (n *Ident) Pos() Span      { return n.At }
func (n *Literal) Pos() Span    { return n.At }
func (n *Selector) Pos() Span   { return n.At }
func (n *Index) Pos() Span      { return n.At }
func (n *Call) Pos() Span       { return n.At }
func (n *New) Pos() Span        { return n.At }
func (n *Assign) Pos() Span     { return n.At }
func (n *IncDec) Pos() Span     { return n.At }
func (n *Unary) Pos() Span      { return n.At }
func (n *Star) Pos() Span       { return n.At }
func (n *Receive) Pos() Span    { return n.At }
func (n *Binary) Pos() Span     { return n.At }
func (n *Paren) Pos() Span      { return n.At }
func (n *Cast) Pos() Span       { return n.At }
func (n *FuncLit) Pos() Span    { return n.At }
func (n *Other) Pos() Span      { return n.At }

func (*Method) node()     {}
func (*Param) node()      {}
func (*CaseClause) node() {}
func (*Catch) node()      {}
func (*Block) node()      {}
func (*ExprStmt) node()   {}
func (*VarDecl) node()    {}
func (*TypeDecl) node()   {}
func (*If) node()         {}
func (*For) node()        {}
func (*While) node()      {}
func (*Range) node()      {}
func (*Switch) node()     {}
func (*Select) node()     {}
func (*Try) node()        {}
func (*Sync) node()       {}
func (*Defer) node()      {}
func (*Send) node()       {}
func (*Branch) node()     {}
func (*Labeled) node()    {}
func (*Assert) node()     {}
func (*Empty) node()      {}
func (*Bad) node()        {}
func (*Ident) node()      {}
func (*Literal) node()    {}
func (*Selector) node()   {}
func (*Index) node()      {}
func (*Call) node()       {}
func (*New) node()        {}
func (*Assign) node()     {}
func (*IncDec) node()     {}
func (*Unary) node()      {}
func (*Star) node()       {}
func (*Receive) node()    {}
func (*Binary) node()     {}
func (*Paren) node()      {}
func (*Cast) node()       {}
func (*FuncLit) node()    {}
func (*Other) node()      {}

func (*Block) stmtNode()    {}
func (*ExprStmt) stmtNode() {}
func (*VarDecl) stmtNode()  {}
func (*TypeDecl) stmtNode() {}
func (*If) stmtNode()       {}
func (*For) stmtNode()      {}
func (*While) stmtNode()    {}
func (*Range) stmtNode()    {}
func (*Switch) stmtNode()   {}
func (*Select) stmtNode()   {}
func (*Try) stmtNode()      {}
func (*Sync) stmtNode()     {}
func (*Defer) stmtNode()    {}
func (*Send) stmtNode()     {}
func (*Branch) stmtNode()   {}
func (*Labeled) stmtNode()  {}
func (*Assert) stmtNode()   {}
func (*Empty) stmtNode()    {}
func (*Bad) stmtNode()      {}

func (*Ident) exprNode()    {}
func (*Literal) exprNode()  {}
func (*Selector) exprNode() {}
func (*Index) exprNode()    {}
func (*Call) exprNode()     {}
func (*New) exprNode()      {}
func (*Assign) exprNode()   {}
func (*IncDec) exprNode()   {}
func (*Unary) exprNode()    {}
func (*Star) exprNode()     {}
func (*Receive) exprNode()  {}
func (*Binary) exprNode()   {}
func (*Paren) exprNode()    {}
func (*Cast) exprNode()     {}
func (*FuncLit) exprNode()  {}
func (*Other) exprNode()    {}
