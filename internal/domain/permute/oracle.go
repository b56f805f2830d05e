package permute

import (
	"errors"
	"fmt"
)

// ErrInvariant marks an internal inconsistency of the engine.
var ErrInvariant = errors.New("permute invariant violated")

func invariantError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}

// legal reports whether exchanging a and b keeps every def-use binding of
// the fraction, the bindings of the exit node included. The order of the
// arguments does not matter.
//
//nolint:cyclop,gocognit // each loop is one illegal-swap condition
func (g *graph) legal(a, b *graphNode) bool {
	if a.position() > b.position() {
		a, b = b, a
	}

	ai, bi := a.position(), b.position()
	between := func(p, lo, hi int) bool { return p >= lo && p <= hi }

	// Something between a and b (or b itself) observes a write of a.
	for _, get := range a.getters {
		if !get.node.sentinel && get.node.position() <= bi {
			return false
		}
	}

	// b observes a write of a or of something between them.
	for _, setter := range b.setters {
		if !setter.sentinel && setter.position() >= ai {
			return false
		}
	}

	// A later reader bound to a writer between them would observe a instead.
	for _, inc := range a.incompatibleGetters {
		if !inc.node.sentinel && inc.node.position() <= bi {
			continue
		}

		if setter := inc.node.setterOf(inc.name); !setter.sentinel && between(setter.position(), ai+1, bi) {
			return false
		}
	}

	// a would observe a writer between them instead of its own setter.
	for _, inc := range a.incompatibleSetters {
		if between(inc.node.position(), ai+1, bi) {
			return false
		}
	}

	// A reader between them, bound to a writer before a, would observe b.
	for _, inc := range b.incompatibleGetters {
		if inc.node.sentinel || !between(inc.node.position(), ai, bi-1) {
			continue
		}

		if setter := inc.node.setterOf(inc.name); setter.sentinel || setter.position() < ai {
			return false
		}
	}

	// A later reader bound to b would observe a writer between them instead.
	for _, get := range b.getters {
		if !get.node.sentinel && get.node.position() <= bi {
			continue
		}

		for _, inc := range get.node.incompatibleSetters {
			if inc.name == get.name && between(inc.node.position(), ai, bi-1) {
				return false
			}
		}
	}

	return true
}

// swap exchanges the statements of a and b in their block.
func (g *graph) swap(a, b *graphNode) error {
	if a.sentinel || b.sentinel {
		return invariantError("cannot move a sentinel")
	}

	ra, rb := a.rec, b.rec

	if ra.Block != rb.Block {
		return invariantError("records at %d and %d belong to different blocks", ra.Index, rb.Index)
	}

	if ra.Fraction != rb.Fraction {
		return invariantError("records at %d and %d belong to fractions %d and %d",
			ra.Index, rb.Index, ra.Fraction, rb.Fraction)
	}

	block := ra.Block
	if block.Stmts[ra.Index] != ra.Stmt || block.Stmts[rb.Index] != rb.Stmt {
		return invariantError("record index out of date in fraction %d", ra.Fraction)
	}

	block.Swap(ra.Index, rb.Index)
	ra.Index, rb.Index = rb.Index, ra.Index

	return nil
}
