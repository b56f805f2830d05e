package ir

import (
	"sort"
	"strings"
)

type piece struct {
	at   Span
	node Node
	text string
}

// Render rebuilds the source of the method from its current tree.
func Render(m *Method) string {
	return RenderNode(m, m)
}

// RenderNode rebuilds the source of a single node of m.
func RenderNode(m *Method, n Node) string {
	var b strings.Builder

	b.Grow(n.Pos().Len())
	writeNode(&b, m.Source, n)

	return b.String()
}

// Text returns the original source of n, ignoring any mutation.
func Text(m *Method, n Node) string {
	at := n.Pos()
	if at.Start < 0 || at.End > len(m.Source) || at.Start > at.End {
		return ""
	}

	return m.Source[at.Start:at.End]
}

func writeNode(b *strings.Builder, src string, n Node) {
	if id, ok := n.(*Ident); ok {
		b.WriteString(id.Name)
		return
	}

	at := n.Pos()
	cur := at.Start

	for _, p := range pieces(n) {
		if p.at.Start < cur || p.at.End > at.End {
			continue
		}

		b.WriteString(src[cur:p.at.Start])

		if p.node != nil {
			writeNode(b, src, p.node)
		} else {
			b.WriteString(p.text)
		}

		cur = p.at.End
	}

	b.WriteString(src[cur:at.End])
}

// pieces lists the replaceable regions of n in source order. Blocks and
// binary expressions use the slots fixed at parse time; every other child
// stays where it was parsed.
func pieces(n Node) []piece {
	switch x := n.(type) {
	case *Block:
		out := make([]piece, 0, len(x.Stmts))
		for i, stmt := range x.Stmts {
			out = append(out, piece{at: x.Slots[i], node: stmt})
		}

		sort.SliceStable(out, func(i, j int) bool {
			return out[i].at.Start < out[j].at.Start
		})

		return out
	case *Binary:
		return []piece{
			{at: x.XSlot, node: x.X},
			{at: x.OpSlot, text: x.Op},
			{at: x.YSlot, node: x.Y},
		}
	}

	kids := Children(n)
	out := make([]piece, 0, len(kids))

	for _, kid := range kids {
		out = append(out, piece{at: kid.Pos(), node: kid})
	}

	return out
}
