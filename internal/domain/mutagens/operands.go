package mutagens

import (
	"math/rand/v2"

	"codeaug.dev/pkg/codeaug/internal/model/ir"
)

// mirrored maps operators to the operator that keeps their meaning once the
// operands are exchanged. Operators absent from the map keep their text.
var mirrored = map[string]string{
	"<":  ">",
	">":  "<",
	"<=": ">=",
	">=": "<=",
}

// anyOperands lists the operators whose operands may be exchanged whatever
// their types.
var anyOperands = map[string]bool{
	"&&": true, "||": true, "==": true, "!=": true,
	"<": true, ">": true, "<=": true, ">=": true,
}

// primitiveOperands lists the operators whose operands may be exchanged only
// when every operand is of a primitive type.
var primitiveOperands = map[string]bool{"+": true, "*": true}

var primitiveTypes = map[string]bool{
	// Java
	"boolean": true, "char": true, "int": true, "long": true, "float": true, "double": true,
	// Go
	"bool": true, "byte": true, "rune": true, "uintptr": true,
	"int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"float32": true, "float64": true,
}

// IsPrimitiveType reports whether the type name stands for a boolean,
// character or numeric type.
func IsPrimitiveType(name string) bool {
	return primitiveTypes[name]
}

// SwapOperands exchanges the operands of randomly chosen binary expressions
// of the method and returns how many were exchanged. Every eligible
// expression is picked with the given probability.
func SwapOperands(method *ir.Method, probability float64, rng *rand.Rand) int {
	var picked []*ir.Binary

	var w *scopeWalker

	w = newScopeWalker(func(n ir.Node) {
		bin, ok := n.(*ir.Binary)
		if !ok || !swappable(w, bin) {
			return
		}

		if rng.Float64() < probability {
			picked = append(picked, bin)
		}
	})
	w.method(method)

	for _, bin := range picked {
		bin.X, bin.Y = bin.Y, bin.X

		if op, ok := mirrored[bin.Op]; ok {
			bin.Op = op
		}
	}

	return len(picked)
}

func swappable(w *scopeWalker, bin *ir.Binary) bool {
	if anyOperands[bin.Op] {
		return true
	}

	return primitiveOperands[bin.Op] && unsupportedOperands(w, bin) == 0
}

// unsupportedOperands counts the operands of bin, nested binary expressions
// included, whose type is not known to be primitive.
func unsupportedOperands(w *scopeWalker, bin *ir.Binary) int {
	return unsupportedOperand(w, bin.X) + unsupportedOperand(w, bin.Y)
}

func unsupportedOperand(w *scopeWalker, e ir.Expr) int {
	switch x := e.(type) {
	case *ir.Binary:
		return unsupportedOperands(w, x)
	case *ir.Paren:
		return unsupportedOperand(w, x.X)
	case *ir.Literal:
		switch x.Kind {
		case ir.LitInt, ir.LitFloat, ir.LitChar, ir.LitBool:
			return 0
		case ir.LitOther, ir.LitString, ir.LitNull:
		}
	case *ir.Ident:
		if x.Role == ir.RoleUse {
			if typeText, ok := w.typeOf(x.Name); ok && IsPrimitiveType(typeText) {
				return 0
			}
		}
	case *ir.Cast:
		if IsPrimitiveType(x.TypeText) {
			return 0
		}
	}

	return 1
}
