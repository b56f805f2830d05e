package mutagens

import (
	"math/rand/v2"

	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

// renameTries bounds the proposals per variable before it keeps its name.
const renameTries = 10

// RenameVariables gives randomly chosen local variables of the method new
// names and returns how many were renamed. Only variables used at least once
// are candidates; each is picked with the given probability. reserved
// rejects keywords and other names the language forbids; it may be nil.
func RenameVariables(method *ir.Method, probability float64, rng *rand.Rand, reserved func(string) bool) int {
	used := make(map[string]bool)

	ir.Inspect(method, func(n ir.Node) bool {
		if id, ok := n.(*ir.Ident); ok {
			used[id.Name] = true
		}

		return true
	})

	w := newScopeWalker(nil)
	w.method(method)

	changes := 0

	for _, decl := range w.decls {
		if len(decl.uses) == 0 || decl.blocked {
			continue
		}

		if rng.Float64() >= probability {
			continue
		}

		for range renameTries {
			name := AlternativeName(decl.ident.Name, rng)
			if used[name] || (reserved != nil && reserved(name)) {
				continue
			}

			used[name] = true
			decl.ident.Name = name

			for _, use := range decl.uses {
				use.Name = name
			}

			changes++

			break
		}
	}

	return changes
}
