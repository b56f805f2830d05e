package permute

import "math"

// Sentinel indices. The entry node sits before every statement of a fraction
// and the exit node after every statement.
const (
	entryIndex = -1
	exitIndex  = math.MaxInt
)

// edge is a def-use relation over one name.
type edge struct {
	node *graphNode
	name string
}

// graphNode is a statement record, or one of the two sentinels, inside the
// dependency graph of a fraction.
type graphNode struct {
	rec *Record

	// setters binds every read name to the writer it observes.
	setters map[string]*graphNode
	// getters lists the readers observing a write of this node.
	getters []edge
	// incompatibleSetters lists, per read name, every writer of the name in
	// the fraction other than the bound setter and the node itself.
	incompatibleSetters []edge
	// incompatibleGetters is the inverse of incompatibleSetters.
	incompatibleGetters []edge

	sentinel bool
	index    int
}

func (n *graphNode) position() int {
	if n.sentinel {
		return n.index
	}

	return n.rec.Index
}

// setterOf returns the node whose write of name n observes.
func (n *graphNode) setterOf(name string) *graphNode {
	return n.setters[name]
}

type graph struct {
	fraction *Fraction
	entry    *graphNode
	exit     *graphNode
	nodes    []*graphNode
}

// buildGraph binds every read of the fraction to its nearest preceding writer
// and the exit node to the last writer of every written name.
func buildGraph(f *Fraction) *graph {
	g := &graph{
		fraction: f,
		entry:    &graphNode{sentinel: true, index: entryIndex, setters: map[string]*graphNode{}},
		exit:     &graphNode{sentinel: true, index: exitIndex, setters: map[string]*graphNode{}},
		nodes:    make([]*graphNode, 0, len(f.Records)),
	}

	writers := make(map[string][]*graphNode)

	for _, rec := range f.Records {
		node := &graphNode{rec: rec, setters: map[string]*graphNode{}}
		g.nodes = append(g.nodes, node)

		for _, name := range rec.Writes() {
			writers[name] = append(writers[name], node)
		}
	}

	var last nameSet

	lastSetters := make(map[string]*graphNode)

	for _, node := range g.nodes {
		for _, name := range node.rec.Reads() {
			setter, ok := lastSetters[name]
			if !ok {
				setter = g.entry
			}

			g.bind(node, name, setter, writers[name])
		}

		for _, name := range node.rec.Writes() {
			lastSetters[name] = node
			last.add(name)
		}
	}

	for _, name := range last.list() {
		g.bind(g.exit, name, lastSetters[name], writers[name])
	}

	return g
}

func (g *graph) bind(reader *graphNode, name string, setter *graphNode, writers []*graphNode) {
	reader.setters[name] = setter
	setter.getters = append(setter.getters, edge{node: reader, name: name})

	for _, w := range writers {
		if w == setter || w == reader {
			continue
		}

		reader.incompatibleSetters = append(reader.incompatibleSetters, edge{node: w, name: name})
		w.incompatibleGetters = append(w.incompatibleGetters, edge{node: reader, name: name})
	}
}

// verify checks that every binding still holds under the current order: each
// setter precedes its reader and no other writer of the name sits between
// them.
func (g *graph) verify() error {
	check := func(reader *graphNode) error {
		for name, setter := range reader.setters {
			if setter.position() >= reader.position() {
				return invariantError("setter of %q at %d does not precede its reader at %d",
					name, setter.position(), reader.position())
			}
		}

		for _, inc := range reader.incompatibleSetters {
			setter := reader.setterOf(inc.name)

			if p := inc.node.position(); p > setter.position() && p < reader.position() {
				return invariantError("writer of %q at %d hides setter at %d from reader at %d",
					inc.name, p, setter.position(), reader.position())
			}
		}

		return nil
	}

	for _, node := range g.nodes {
		if node.rec.Fraction != g.fraction.ID || node.rec.Block != g.fraction.Block {
			return invariantError("record at %d left fraction %d", node.rec.Index, g.fraction.ID)
		}

		if err := check(node); err != nil {
			return err
		}
	}

	return check(g.exit)
}
