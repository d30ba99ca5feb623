// Package value defines Lox's dynamic value domain: the Nil, Boolean,
// Number and String variants of spec.md §3's tagged Value sum, plus the
// logical and arithmetic operators the interpreter dispatches to.
//
// Grounded closely on cmdneo-tree_lox/value/value.go; object.Callable,
// object.Class and object.Instance (the remaining three Value variants)
// live in package object instead, since they need the environment and
// AST types value must not depend on.
package value

import (
	"math"
	"strconv"
)

// Value is any Lox runtime value. The four primitive variants below all
// have comparable underlying Go types, and so do every object.Callable,
// object.Class and object.Instance implementation (they are all
// pointers) — which is what makes Equal below correct for every variant
// spec.md §4.6 describes, with no type switch required.
type Value interface {
	String() string
}

// TypeError is panicked by the arithmetic/relational helpers below when
// an operand has the wrong type. The interpreter recovers it and
// attaches the operator token and source line to build a proper
// *errs.RuntimeError; these helpers have no line information of their
// own to report with.
type TypeError struct{}

type Nil struct{}
type Boolean bool
type Number float64
type String string

func (Nil) String() string { return "nil" }

func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// String renders n in canonical form: NaN and the infinities print as
// "nan", "inf" and "-inf"; an integer-valued number whose magnitude is
// below 1e21 prints as plain digits with no decimal point and no
// exponent (strconv's 'f' verb, so 1000000 prints "1000000" where 'g'
// would give "1e+06"); every other number prints as strconv's shortest
// round-trip 'g' form (precision -1), which may use an exponent.
func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (s String) String() string { return string(s) }

// Truthiness reports whether v is truthy: everything except nil and
// false is truthy (spec.md §4.6), including 0, "" and NaN.
func Truthiness(v Value) bool {
	switch b := v.(type) {
	case Nil:
		return false
	case Boolean:
		return bool(b)
	default:
		return true
	}
}

// Equal implements spec.md §4.6's Equality rules in one line: every
// Value variant (Nil, Boolean, Number, String, and every pointer-typed
// object.Callable/Class/Instance) has a comparable underlying Go type,
// so Go's own == already gives same-tag structural/identity comparison,
// cross-tag false, and (since Go floats follow IEEE 754) NaN != NaN.
func Equal(a, b Value) bool {
	return a == b
}

// LessThan and GreaterThan require both operands to be Number (spec.md
// §4.6: relational operators, unlike '+', never fall back to String).
func LessThan(a, b Value) bool {
	x, ok := a.(Number)
	y, ok2 := b.(Number)
	if ok && ok2 {
		return x < y
	}
	panic(TypeError{})
}

func GreaterThan(a, b Value) bool {
	x, ok := a.(Number)
	y, ok2 := b.(Number)
	if ok && ok2 {
		return x > y
	}
	panic(TypeError{})
}

// LessOrEqual and GreaterOrEqual compare directly rather than negating
// LessThan/GreaterThan: negation would make NaN, which is unordered
// w.r.t. every Number including itself, compare as both <= and >=
// everything.
func LessOrEqual(a, b Value) bool {
	x, ok := a.(Number)
	y, ok2 := b.(Number)
	if ok && ok2 {
		return x <= y
	}
	panic(TypeError{})
}

func GreaterOrEqual(a, b Value) bool {
	x, ok := a.(Number)
	y, ok2 := b.(Number)
	if ok && ok2 {
		return x >= y
	}
	panic(TypeError{})
}

// Add implements '+': numeric addition for two Numbers, concatenation
// for two Strings, TypeError otherwise (spec.md §4.6).
func Add(a, b Value) Value {
	switch x := a.(type) {
	case Number:
		if y, ok := b.(Number); ok {
			return x + y
		}
	case String:
		if y, ok := b.(String); ok {
			return x + y
		}
	}
	panic(TypeError{})
}

func Sub(a, b Value) Value {
	x, ok := a.(Number)
	y, ok2 := b.(Number)
	if ok && ok2 {
		return x - y
	}
	panic(TypeError{})
}

func Mul(a, b Value) Value {
	x, ok := a.(Number)
	y, ok2 := b.(Number)
	if ok && ok2 {
		return x * y
	}
	panic(TypeError{})
}

// Div divides two Numbers. Division by zero yields IEEE +/-Inf or NaN,
// never an error (spec.md §4.6).
func Div(a, b Value) Value {
	x, ok := a.(Number)
	y, ok2 := b.(Number)
	if ok && ok2 {
		return x / y
	}
	panic(TypeError{})
}

func Neg(a Value) Value {
	if x, ok := a.(Number); ok {
		return -x
	}
	panic(TypeError{})
}
