package model

// MutationType represents one independent code-transformation pass.
type MutationType string

const (
	// MutationSwapOperands exchanges operands of commutative or mirrored binary operators.
	MutationSwapOperands MutationType = "swap-operands"
	// MutationRenameVariables gives local variables alternative names.
	MutationRenameVariables MutationType = "rename-variables"
	// MutationSwapStatements reorders independent statements inside blocks.
	MutationSwapStatements MutationType = "swap-statements"
)

// Operators selects which mutation types run during augmentation.
type Operators struct {
	SwapOperands    bool `yaml:"swap_operands"`
	RenameVariables bool `yaml:"rename_variables"`
	SwapStatements  bool `yaml:"swap_statements"`
}

// AllOperators enables every mutation type.
func AllOperators() Operators {
	return Operators{SwapOperands: true, RenameVariables: true, SwapStatements: true}
}

// Enabled reports whether the given mutation type is switched on.
func (o Operators) Enabled(t MutationType) bool {
	switch t {
	case MutationSwapOperands:
		return o.SwapOperands
	case MutationRenameVariables:
		return o.RenameVariables
	case MutationSwapStatements:
		return o.SwapStatements
	}

	return false
}

// Types returns the enabled mutation types in their application order.
func (o Operators) Types() []MutationType {
	types := make([]MutationType, 0, 3)

	for _, t := range []MutationType{MutationSwapOperands, MutationRenameVariables, MutationSwapStatements} {
		if o.Enabled(t) {
			types = append(types, t)
		}
	}

	return types
}

// Effort holds the per-operator strength of one augmentation round.
type Effort struct {
	// OperandProbability is the chance each eligible binary expression is swapped.
	OperandProbability float64
	// RenameProbability is the chance each eligible variable is renamed.
	RenameProbability float64
	// StatementDensity is the expected number of swap attempts per statement.
	StatementDensity float64
}

// Changes counts the changes each operator made in one round.
type Changes struct {
	SwapOperands    int `msgpack:"swap_operands" yaml:"swap_operands"`
	RenameVariables int `msgpack:"rename_variables" yaml:"rename_variables"`
	SwapStatements  int `msgpack:"swap_statements" yaml:"swap_statements"`
}

// Total is the sum of all changes.
func (c Changes) Total() int {
	return c.SwapOperands + c.RenameVariables + c.SwapStatements
}

// Add records n changes for the given mutation type.
func (c *Changes) Add(t MutationType, n int) {
	switch t {
	case MutationSwapOperands:
		c.SwapOperands += n
	case MutationRenameVariables:
		c.RenameVariables += n
	case MutationSwapStatements:
		c.SwapStatements += n
	}
}
