package interpreter

import "github.com/ashbyglade/golox/value"

// return/break/continue are non-local control flow, not RUNTIME_ERROR
// (spec.md §4.6, "Control flow signals"). Grounded on
// cmdneo-tree_lox/interpreter/interpreter.go's controlReturn/
// controlBreak/controlContinue panic values, which the teacher's own
// call and loop visitors already recover distinctly from runtimeError.
type returnSignal struct {
	Value value.Value
}

type breakSignal struct{}

type continueSignal struct{}
