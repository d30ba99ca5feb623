// Package interpreter is the tree-walking evaluator of spec.md §4.6: it
// walks a resolved AST, evaluating statements for effect and
// expressions for their Value, dispatching control flow, closures,
// classes, inheritance and native calls. Grounded throughout on
// cmdneo-tree_lox/interpreter/interpreter.go, whose control structure
// (Interpret's top-level recover, executeBlock's env swap-and-restore,
// the per-operator type checks in VisitBinaryExpr/VisitUnaryExpr) is
// kept closely, generalized from the teacher's any-typed values and
// slot-indexed LocalEnv to value.Value and name-indexed
// object.Environment. The class/Get/Set/Super/This evaluation the
// teacher left as "Undone!" TODOs is built fresh here, from spec.md
// §4.6 and object/instance.go's already-complete Get/Set/Bind support.
package interpreter

import (
	"fmt"
	"io"

	"github.com/ashbyglade/golox/ast"
	"github.com/ashbyglade/golox/errs"
	"github.com/ashbyglade/golox/object"
	"github.com/ashbyglade/golox/resolver"
	"github.com/ashbyglade/golox/token"
	"github.com/ashbyglade/golox/value"
)

// Interpreter holds the state that persists across statements within
// one run, and (for the REPL) across runs: globals, the current
// environment, and the sink errors and print output are written to.
type Interpreter struct {
	globals *object.Environment
	env     *object.Environment
	sink    *errs.Sink
	out     io.Writer

	resolutions resolver.Resolutions
}

// New returns an Interpreter with clock/str/assert_eq defined in its
// global environment (spec.md §4.7), printing to out and reporting
// runtime errors to sink.
func New(sink *errs.Sink, out io.Writer) *Interpreter {
	globals := object.NewEnvironment(nil)
	globals.Define("clock", object.Clock())
	globals.Define("str", object.Str())
	globals.Define("assert_eq", object.AssertEq())

	return &Interpreter{globals: globals, env: globals, sink: sink, out: out}
}

// Run executes statements under resolutions (the side-table produced by
// resolver.Resolve), stopping at the first RUNTIME_ERROR and reporting
// it to the sink (spec.md §7: runtime errors "abort the current run").
// It is safe to call repeatedly on the same Interpreter (the REPL does,
// once per line), since globals and outer closures persist across
// calls.
func (i *Interpreter) Run(statements []ast.Stmt, resolutions resolver.Resolutions) {
	i.resolutions = resolutions

	defer func() {
		if r := recover(); r != nil {
			if rtErr, ok := r.(*errs.RuntimeError); ok {
				i.sink.RuntimeError(rtErr)
				return
			}
			panic(r)
		}
	}()

	for _, stmt := range statements {
		i.execute(stmt)
	}
}

func (i *Interpreter) execute(s ast.Stmt) {
	if s == nil {
		return
	}
	s.Accept(i)
}

func (i *Interpreter) evaluate(e ast.Expr) value.Value {
	return e.Accept(i).(value.Value)
}

// runtimeErr builds and returns (does not panic) a *errs.RuntimeError at
// tok's line; callers panic it so it propagates to Run's recover.
func (i *Interpreter) runtimeErr(tok token.Token, format string, args ...any) *errs.RuntimeError {
	return errs.NewRuntimeError(tok.Line, format, args...)
}

// Statement visitors
// --------------------------------------------------------

func (i *Interpreter) VisitBlockStmt(s *ast.Block) {
	i.executeBlock(s.Statements, object.NewEnvironment(i.env))
}

// executeBlock runs statements in a fresh child environment, restoring
// the caller's environment afterward even if a control signal or
// runtime error unwinds through it.
func (i *Interpreter) executeBlock(statements []ast.Stmt, env *object.Environment) {
	previous := i.env
	i.env = env
	defer func() { i.env = previous }()

	for _, stmt := range statements {
		i.execute(stmt)
	}
}

func (i *Interpreter) VisitExpressionStmt(s *ast.Expression) {
	i.evaluate(s.Expression)
}

func (i *Interpreter) VisitPrintStmt(s *ast.Print) {
	fmt.Fprintf(i.out, "%s\n", i.evaluate(s.Expression).String())
}

func (i *Interpreter) VisitBreakStmt(s *ast.Break) {
	panic(breakSignal{})
}

func (i *Interpreter) VisitContinueStmt(s *ast.Continue) {
	panic(continueSignal{})
}

func (i *Interpreter) VisitReturnStmt(s *ast.Return) {
	var v value.Value = value.Nil{}
	if s.Value != nil {
		v = i.evaluate(s.Value)
	}
	panic(returnSignal{Value: v})
}

func (i *Interpreter) VisitIfStmt(s *ast.If) {
	if value.Truthiness(i.evaluate(s.Condition)) {
		i.execute(s.ThenBranch)
	} else if s.ElseBranch != nil {
		i.execute(s.ElseBranch)
	}
}

func (i *Interpreter) VisitWhileStmt(s *ast.While) {
	i.runLoop(s.Condition, nil, s.Body)
}

func (i *Interpreter) VisitForStmt(s *ast.For) {
	cond := s.Condition
	if cond == nil {
		cond = &ast.Literal{Value: true}
	}
	i.runLoop(cond, s.Update, s.Body)
}

// runLoop implements both While and For: break stops the loop entirely;
// continue skips to the update expression (if any) and the next
// condition test, per spec.md §4.6's control-flow signal description.
func (i *Interpreter) runLoop(cond, update ast.Expr, body ast.Stmt) {
	for value.Truthiness(i.evaluate(cond)) {
		if !i.runLoopBody(body) {
			break
		}
		if update != nil {
			i.evaluate(update)
		}
	}
}

// runLoopBody executes body once, returning false if a break propagated
// out of it (the caller should stop looping) and true otherwise
// (normal completion or a caught continue).
func (i *Interpreter) runLoopBody(body ast.Stmt) (keepLooping bool) {
	keepLooping = true
	defer func() {
		switch r := recover().(type) {
		case nil:
		case continueSignal:
		case breakSignal:
			keepLooping = false
		default:
			panic(r)
		}
	}()
	i.execute(body)
	return
}

func (i *Interpreter) VisitVarStmt(s *ast.Var) {
	var v value.Value = value.Nil{}
	if s.Initializer != nil {
		v = i.evaluate(s.Initializer)
	}
	i.env.Define(s.Name.Lexeme, v)
}

func (i *Interpreter) VisitFunctionStmt(s *ast.Function) {
	fn := object.NewFunction(s, i.env, false)
	i.env.Define(s.Name.Lexeme, fn)
}

// VisitClassStmt evaluates a class declaration per spec.md §4.6: the
// superclass expression is evaluated first, then the class name is
// defined (nil) before the methods are built, so a method body may refer
// to its own class by name; a subclass gets a frame defining "super"
// that every method closes over.
func (i *Interpreter) VisitClassStmt(s *ast.Class) {
	var superclass *object.Class
	if s.Superclass != nil {
		v := i.evaluate(s.Superclass)
		sc, ok := v.(*object.Class)
		if !ok {
			panic(i.runtimeErr(s.Superclass.Name, "Superclass must be a class."))
		}
		superclass = sc
	}

	i.env.Define(s.Name.Lexeme, value.Nil{})

	methodEnv := i.env
	if superclass != nil {
		methodEnv = object.NewEnvironment(i.env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*object.Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = object.NewFunction(m, methodEnv, m.Name.Lexeme == "init")
	}

	class := object.NewClass(s.Name.Lexeme, superclass, methods)
	i.env.Assign(s.Name.Lexeme, class)
}

// Expression visitors: variables, logic, arithmetic
// --------------------------------------------------------

func (i *Interpreter) VisitAssignExpr(e *ast.Assign) any {
	v := i.evaluate(e.Value)

	if depth, ok := i.resolutions[e.ID]; ok {
		i.env.AssignAt(depth, e.Name.Lexeme, v)
	} else if !i.globals.Assign(e.Name.Lexeme, v) {
		panic(i.runtimeErr(e.Name, "Undefined variable '%s'.", e.Name.Lexeme))
	}
	return v
}

func (i *Interpreter) VisitLogicalExpr(e *ast.Logical) any {
	left := i.evaluate(e.Left)

	switch e.Operator.Kind {
	case token.OR:
		if value.Truthiness(left) {
			return left
		}
	case token.AND:
		if !value.Truthiness(left) {
			return left
		}
	}
	return i.evaluate(e.Right)
}

func (i *Interpreter) VisitBinaryExpr(e *ast.Binary) any {
	left := i.evaluate(e.Left)
	right := i.evaluate(e.Right)

	switch e.Operator.Kind {
	case token.PLUS:
		return i.checkedArith(e.Operator, "Operands must be two numbers or two strings.",
			func() value.Value { return value.Add(left, right) })
	case token.MINUS:
		return i.checkedArith(e.Operator, "Operands must be numbers.",
			func() value.Value { return value.Sub(left, right) })
	case token.STAR:
		return i.checkedArith(e.Operator, "Operands must be numbers.",
			func() value.Value { return value.Mul(left, right) })
	case token.SLASH:
		return i.checkedArith(e.Operator, "Operands must be numbers.",
			func() value.Value { return value.Div(left, right) })

	case token.GREATER:
		return i.checkedArith(e.Operator, "Operands must be numbers.",
			func() value.Value { return value.Boolean(value.GreaterThan(left, right)) })
	case token.GREATER_EQUAL:
		return i.checkedArith(e.Operator, "Operands must be numbers.",
			func() value.Value { return value.Boolean(value.GreaterOrEqual(left, right)) })
	case token.LESS:
		return i.checkedArith(e.Operator, "Operands must be numbers.",
			func() value.Value { return value.Boolean(value.LessThan(left, right)) })
	case token.LESS_EQUAL:
		return i.checkedArith(e.Operator, "Operands must be numbers.",
			func() value.Value { return value.Boolean(value.LessOrEqual(left, right)) })

	case token.EQUAL_EQUAL:
		return value.Boolean(value.Equal(left, right))
	case token.BANG_EQUAL:
		return value.Boolean(!value.Equal(left, right))
	}

	panic(fmt.Sprintf("unreachable binary operator %v", e.Operator.Kind))
}

// checkedArith runs f, translating a value.TypeError panic into a
// *errs.RuntimeError carrying message and the operator's line — f
// itself has no line information to report with.
func (i *Interpreter) checkedArith(op token.Token, message string, f func() value.Value) value.Value {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(value.TypeError); ok {
				panic(i.runtimeErr(op, "%s", message))
			}
			panic(r)
		}
	}()
	return f()
}

func (i *Interpreter) VisitUnaryExpr(e *ast.Unary) any {
	right := i.evaluate(e.Right)

	switch e.Operator.Kind {
	case token.BANG:
		return value.Boolean(!value.Truthiness(right))
	case token.MINUS:
		return i.checkedArith(e.Operator, "Operand must be a number.",
			func() value.Value { return value.Neg(right) })
	}
	panic(fmt.Sprintf("unreachable unary operator %v", e.Operator.Kind))
}

func (i *Interpreter) VisitGroupingExpr(e *ast.Grouping) any {
	return i.evaluate(e.Expr)
}

func (i *Interpreter) VisitLiteralExpr(e *ast.Literal) any {
	return literalValue(e.Value)
}

func literalValue(v any) value.Value {
	switch x := v.(type) {
	case nil:
		return value.Nil{}
	case bool:
		return value.Boolean(x)
	case float64:
		return value.Number(x)
	case string:
		return value.String(x)
	default:
		panic(fmt.Sprintf("unreachable literal type %T", v))
	}
}

func (i *Interpreter) VisitVariableExpr(e *ast.Variable) any {
	return i.lookUpVariable(e.ID, e.Name)
}

func (i *Interpreter) lookUpVariable(id ast.ExprID, name token.Token) value.Value {
	if depth, ok := i.resolutions[id]; ok {
		v, ok := i.env.GetAt(depth, name.Lexeme)
		if !ok {
			panic(fmt.Sprintf("resolver bug: %q not found at depth %d", name.Lexeme, depth))
		}
		return v
	}
	v, ok := i.globals.Get(name.Lexeme)
	if !ok {
		panic(i.runtimeErr(name, "Undefined variable '%s'.", name.Lexeme))
	}
	return v
}
