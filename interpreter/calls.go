package interpreter

import (
	"github.com/ashbyglade/golox/ast"
	"github.com/ashbyglade/golox/object"
	"github.com/ashbyglade/golox/token"
	"github.com/ashbyglade/golox/value"
)

// VisitCallExpr implements spec.md §4.6's Call rule: evaluate the
// callee, then each argument left-to-right; the callee must be a
// Callable (object.Function/object.NativeFunction/object.Class) with
// matching arity. Grounded on
// cmdneo-tree_lox/interpreter/interpreter.go's VisitCallExpr, extended
// to dispatch over all three Callable kinds instead of just Function —
// the teacher's class/instance construction was never wired in.
func (i *Interpreter) VisitCallExpr(e *ast.Call) any {
	callee := i.evaluate(e.Callee)

	args := make([]value.Value, len(e.Arguments))
	for idx, a := range e.Arguments {
		args[idx] = i.evaluate(a)
	}

	callable, ok := callee.(object.Callable)
	if !ok {
		panic(i.runtimeErr(e.Paren, "Can only call functions and classes."))
	}
	i.checkArity(e.Paren, callable.Arity(), len(args))

	switch c := callable.(type) {
	case *object.Function:
		return i.callFunction(c, args)
	case *object.NativeFunction:
		return i.callNative(e.Paren, c, args)
	case *object.Class:
		return i.instantiate(c, args)
	default:
		panic(i.runtimeErr(e.Paren, "Can only call functions and classes."))
	}
}

func (i *Interpreter) checkArity(paren token.Token, want, got int) {
	if want != got {
		panic(i.runtimeErr(paren, "Expected %d arguments but got %d.", want, got))
	}
}

// callFunction runs the user-function call protocol of spec.md §4.6: a
// new frame enclosing the function's closure, parameters defined there,
// the body executed with Return unwinding back to here, the bound
// `this` returned in place of the return value for an initializer.
func (i *Interpreter) callFunction(fn *object.Function, args []value.Value) (result value.Value) {
	env := object.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	result = value.Nil{}
	func() {
		defer func() {
			if r := recover(); r != nil {
				if ret, ok := r.(returnSignal); ok {
					result = ret.Value
					return
				}
				panic(r)
			}
		}()
		i.executeBlock(fn.Declaration.Body, env)
	}()

	if fn.IsInit {
		this, _ := fn.Closure.Get("this")
		return this
	}
	return result
}

// callNative invokes a NativeFunction, turning an object.NativeError
// panic into a *errs.RuntimeError at the call site (spec.md §4.7:
// assert_eq and friends fail with RUNTIME_ERROR, not a host-level panic).
func (i *Interpreter) callNative(paren token.Token, n *object.NativeFunction, args []value.Value) value.Value {
	defer func() {
		if r := recover(); r != nil {
			if ne, ok := r.(object.NativeError); ok {
				panic(i.runtimeErr(paren, "%s", ne.Message))
			}
			panic(r)
		}
	}()
	return n.Call(args)
}

// instantiate constructs an Instance and, if the class or one of its
// superclasses declares "init", binds and calls it with args (spec.md §4.6, "Calling a Class").
func (i *Interpreter) instantiate(class *object.Class, args []value.Value) value.Value {
	inst := object.NewInstance(class)
	if init := class.FindMethod("init"); init != nil {
		i.callFunction(init.Bind(inst), args)
	}
	return inst
}

// VisitGetExpr implements field-then-method lookup on an Instance
// (spec.md §4.6, "Get on an Instance").
func (i *Interpreter) VisitGetExpr(e *ast.Get) any {
	obj := i.evaluate(e.Object)
	inst, ok := obj.(*object.Instance)
	if !ok {
		panic(i.runtimeErr(e.Name, "Only instances have properties."))
	}
	v, ok := inst.Get(e.Name.Lexeme)
	if !ok {
		panic(i.runtimeErr(e.Name, "Undefined property '%s'.", e.Name.Lexeme))
	}
	return v
}

// VisitSetExpr implements unconditional field assignment on an Instance
// (spec.md §4.6, "Set on an Instance").
func (i *Interpreter) VisitSetExpr(e *ast.Set) any {
	obj := i.evaluate(e.Object)
	inst, ok := obj.(*object.Instance)
	if !ok {
		panic(i.runtimeErr(e.Name, "Only instances have fields."))
	}
	v := i.evaluate(e.Value)
	inst.Set(e.Name.Lexeme, v)
	return v
}

func (i *Interpreter) VisitThisExpr(e *ast.This) any {
	return i.lookUpVariable(e.ID, e.Keyword)
}

// VisitSuperExpr implements spec.md §4.6's Super rule: resolve "super"
// at its recorded depth to get the superclass, "this" one frame
// shallower to get the receiver, then look up and bind the method.
func (i *Interpreter) VisitSuperExpr(e *ast.Super) any {
	depth, ok := i.resolutions[e.ID]
	if !ok {
		panic("resolver bug: super expression has no recorded depth")
	}

	superVal, ok := i.env.GetAt(depth, "super")
	if !ok {
		panic("resolver bug: 'super' not found at its recorded depth")
	}
	superclass := superVal.(*object.Class)

	thisVal, ok := i.env.GetAt(depth-1, "this")
	if !ok {
		panic("resolver bug: 'this' not found one frame inside 'super'")
	}
	inst := thisVal.(*object.Instance)

	method := superclass.FindMethod(e.Method.Lexeme)
	if method == nil {
		panic(i.runtimeErr(e.Method, "Undefined property '%s'.", e.Method.Lexeme))
	}
	return method.Bind(inst)
}
