package permute

import (
	"fmt"

	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

// Record is one direct-child statement of a block with the names it reads
// and writes, nested statements included.
type Record struct {
	Block    *ir.Block
	Stmt     ir.Stmt
	Fraction int
	// Index is the current position of Stmt in Block.Stmts.
	Index int
	// Pinned records sit on a split point and belong to no fraction.
	Pinned bool

	reads  nameSet
	writes nameSet
	state  *blockState
}

// Reads returns the names the statement reads, in first-touch order.
func (r *Record) Reads() []string { return r.reads.list() }

// Writes returns the names the statement writes, in first-touch order.
func (r *Record) Writes() []string { return r.writes.list() }

// Fraction is a maximal run of statements of one block that may be freely
// reordered among themselves.
type Fraction struct {
	Block   *ir.Block
	ID      int
	Records []*Record
}

// BlockInfo is the segmentation of one block.
type BlockInfo struct {
	Block     *ir.Block
	Fractions []*Fraction
	Pinned    []*Record
}

// Analysis is the segmentation of a whole method.
type Analysis struct {
	Blocks []*BlockInfo
	// Labeled is set when the method holds a labeled statement; nothing else
	// is filled in that case.
	Labeled bool
}

type blockState struct {
	info    *BlockInfo
	current int
}

type segmenter struct {
	method  *ir.Method
	stack   []*Record
	blocks  []*blockState
	labeled bool
}

// Analyze splits every block of the method into fractions and records the
// names touched by each statement.
func Analyze(method *ir.Method) *Analysis {
	s := &segmenter{method: method}
	s.block(method.Body)

	if s.labeled {
		return &Analysis{Labeled: true}
	}

	analysis := &Analysis{Blocks: make([]*BlockInfo, 0, len(s.blocks))}
	for _, st := range s.blocks {
		analysis.Blocks = append(analysis.Blocks, st.info)
	}

	return analysis
}

func (s *segmenter) block(b *ir.Block) {
	if b == nil || s.labeled {
		return
	}

	st := &blockState{info: &BlockInfo{
		Block:     b,
		Fractions: []*Fraction{{Block: b, ID: 0}},
	}}
	s.blocks = append(s.blocks, st)

	for i, stmt := range b.Stmts {
		if s.labeled {
			return
		}

		rec := &Record{Block: b, Stmt: stmt, Fraction: st.current, Index: i, state: st}

		s.stack = append(s.stack, rec)
		s.stmt(stmt)
		s.stack = s.stack[:len(s.stack)-1]

		if rec.Pinned {
			st.info.Pinned = append(st.info.Pinned, rec)
			continue
		}

		fraction := st.info.Fractions[rec.Fraction]
		fraction.Records = append(fraction.Records, rec)
	}
}

// split closes the current fraction of every block on the stack. The records
// on the stack are pinned: the triggering statement and the statements
// enclosing it stay where they are.
func (s *segmenter) split() {
	for _, rec := range s.stack {
		if rec.Pinned {
			continue
		}

		rec.Pinned = true

		st := rec.state
		st.current++
		st.info.Fractions = append(st.info.Fractions, &Fraction{Block: st.info.Block, ID: st.current})
	}
}

//nolint:cyclop,funlen // one case per kind
func (s *segmenter) stmt(stmt ir.Stmt) {
	if ir.IsNil(stmt) || s.labeled {
		return
	}

	switch x := stmt.(type) {
	case *ir.Block:
		s.block(x)
	case *ir.ExprStmt:
		s.expr(x.X)
	case *ir.VarDecl:
		s.touchAll(x.Type, readOnly)

		for _, name := range x.Names {
			s.touch(name.Name, readWrite)
		}

		s.exprs(x.Values)
	case *ir.TypeDecl:
		s.touch(x.Name.Name, readWrite)

		for _, kid := range x.Kids {
			s.node(kid)
		}
	case *ir.If:
		s.stmt(x.Init)
		s.expr(x.Cond)
		s.stmt(x.Then)
		s.stmt(x.Else)
	case *ir.For:
		for _, init := range x.Init {
			s.stmt(init)
		}

		s.expr(x.Cond)

		for _, post := range x.Post {
			s.stmt(post)
		}

		s.stmt(x.Body)
	case *ir.While:
		s.expr(x.Cond)
		s.stmt(x.Body)
	case *ir.Range:
		for _, target := range []ir.Expr{x.Key, x.Value} {
			if !ir.IsNil(target) {
				s.expr(target)
				s.touchAll(target, readWrite)
			}
		}

		if x.Decl != nil {
			s.stmt(x.Decl)
		}

		s.expr(x.X)
		s.stmt(x.Body)
	case *ir.Switch:
		s.stmt(x.Init)
		s.expr(x.Tag)

		for _, clause := range x.Clauses {
			s.clause(clause)
		}
	case *ir.Select:
		for _, clause := range x.Clauses {
			s.clause(clause)
		}

		s.split()
	case *ir.Try:
		for _, resource := range x.Resources {
			s.node(resource)
		}

		s.stmt(x.Body)

		for _, c := range x.Catches {
			s.node(c)
		}

		if x.Finally != nil {
			s.stmt(x.Finally)
		}

		s.split()
	case *ir.Sync:
		s.expr(x.Lock)
		s.stmt(x.Body)
		s.split()
	case *ir.Defer:
		s.expr(x.Call)
		s.split()
	case *ir.Send:
		s.expr(x.Chan)
		s.expr(x.Value)
		s.split()
	case *ir.Branch:
		s.exprs(x.Results)
		s.split()
	case *ir.Labeled:
		s.labeled = true
	case *ir.Assert:
		s.expr(x.Cond)
		s.expr(x.Msg)
	case *ir.Empty:
	case *ir.Bad:
		s.split()
	default:
		panic(fmt.Sprintf("permute: unexpected statement %T", stmt))
	}
}

func (s *segmenter) clause(c *ir.CaseClause) {
	s.exprs(c.Exprs)
	s.stmt(c.Comm)

	if c.Body != nil {
		s.stmt(c.Body)
	}
}
