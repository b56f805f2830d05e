package mutagens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "codeaug.dev/pkg/codeaug/internal/model"
	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

func TestRegistry(t *testing.T) {
	registry := Registry(nil, nil)

	for _, typ := range m.AllOperators().Types() {
		assert.NotNil(t, registry[typ], typ)
	}

	t.Run("zero effort changes nothing", func(t *testing.T) {
		a, b := use("a"), use("b")
		method := body(exprStmt(&ir.Binary{X: a, Op: "==", Y: b}))

		for _, typ := range m.AllOperators().Types() {
			changes, err := registry[typ](method, m.Effort{}, newRand(3))
			require.NoError(t, err)
			assert.Zero(t, changes, typ)
		}
	})

	t.Run("operand probability is honored", func(t *testing.T) {
		a, b := use("a"), use("b")
		method := body(exprStmt(&ir.Binary{X: a, Op: "==", Y: b}))

		changes, err := registry[m.MutationSwapOperands](method, m.Effort{OperandProbability: 1}, newRand(3))
		require.NoError(t, err)
		assert.Equal(t, 1, changes)
	})

	t.Run("rename consults reserved names", func(t *testing.T) {
		decl, names := declare("int", "count")
		method := body(decl, exprStmt(use("count")))

		reserved := Registry(func(string) bool { return true }, nil)
		changes, err := reserved[m.MutationRenameVariables](method, m.Effort{RenameProbability: 1}, newRand(9))
		require.NoError(t, err)
		assert.Zero(t, changes)
		assert.Equal(t, "count", names[0].Name)
	})
}
