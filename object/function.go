package object

import (
	"fmt"

	"github.com/ashbyglade/golox/ast"
)

// Callable is anything the interpreter can invoke via a Call expression:
// a user Function, a NativeFunction, or a Class (construction). Each
// knows its own arity; the interpreter package owns the actual call
// protocol for each (see interpreter/calls.go), since that needs the
// statement executor and the return/break/continue signal machinery
// that would otherwise pull package interpreter into an import cycle
// with package object.
type Callable interface {
	Arity() int
}

// Function is a user-defined function or method: its declaration plus
// the environment it closed over at definition time (spec.md §4.6,
// "Closures"). Grounded on cmdneo-tree_lox/object/function.go, adapted
// from the teacher's slot-based LocalEnv to the name-based Environment.
type Function struct {
	Declaration *ast.Function
	Closure     *Environment
	IsInit      bool // true for a class's "init" method
}

func NewFunction(decl *ast.Function, closure *Environment, isInit bool) *Function {
	return &Function{Declaration: decl, Closure: closure, IsInit: isInit}
}

func (f *Function) Arity() int { return len(f.Declaration.Params) }

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme)
}

// Bind returns a copy of f whose closure additionally defines "this" as
// instance, one frame inside f's original closure — turning an
// unbound method into a bound method (spec.md §4.6, "Get on an
// Instance... method access returns a bound method").
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Declaration: f.Declaration, Closure: env, IsInit: f.IsInit}
}
