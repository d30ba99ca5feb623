package object

import (
	"fmt"
	"time"

	"github.com/ashbyglade/golox/value"
)

// NativeFunction wraps a host Go function as a Lox Callable, per spec.md
// §4.7's uniform { arity, name, invoke } contract. Grounded on
// cmdneo-tree_lox/object/native.go.
type NativeFunction struct {
	Name   string
	Arity_ int
	Fn     func(args []value.Value) value.Value
}

func (n *NativeFunction) Arity() int { return n.Arity_ }

func (n *NativeFunction) String() string {
	return fmt.Sprintf("<native fn %s>", n.Name)
}

// Call invokes the wrapped Go function. Arity is checked by the
// interpreter before this is reached, so a mismatch here is a host bug.
func (n *NativeFunction) Call(args []value.Value) value.Value {
	if len(args) != n.Arity_ {
		panic("native function called with wrong argument count")
	}
	return n.Fn(args)
}

// NativeError is panicked by a native's Fn on a domain error (e.g.
// assert_eq's mismatch). The interpreter recovers it and attaches the
// call site's line to build a *errs.RuntimeError.
type NativeError struct {
	Message string
}

func (e NativeError) Error() string { return e.Message }

func newNativeError(format string, args ...any) NativeError {
	return NativeError{Message: fmt.Sprintf(format, args...)}
}

// Clock returns a native whose calls report the seconds elapsed since
// Clock itself was called (interpreter.New calls it once, when the
// interpreter is created), measured with time.Since, so the values are
// monotonic and comparable across calls within one process.
func Clock() *NativeFunction {
	start := time.Now()
	return &NativeFunction{
		Name:   "clock",
		Arity_: 0,
		Fn: func(args []value.Value) value.Value {
			return value.Number(time.Since(start).Seconds())
		},
	}
}

// Str returns the canonical string form of its single argument
// (spec.md §4.7/§4.6 "Canonical str / print form").
func Str() *NativeFunction {
	return &NativeFunction{
		Name:   "str",
		Arity_: 1,
		Fn: func(args []value.Value) value.Value {
			return value.String(args[0].String())
		},
	}
}

// AssertEq succeeds (returns nil) iff its two arguments are Equal per
// spec.md §4.6's equality rules; otherwise it reports both canonical
// forms in a NativeError (spec.md §4.7).
func AssertEq() *NativeFunction {
	return &NativeFunction{
		Name:   "assert_eq",
		Arity_: 2,
		Fn: func(args []value.Value) value.Value {
			actual, expected := args[0], args[1]
			if value.Equal(actual, expected) {
				return value.Nil{}
			}
			panic(newNativeError(
				"assert_eq failed: %s != %s",
				actual.String(), expected.String(),
			))
		},
	}
}
