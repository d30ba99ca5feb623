// Package resolver implements spec.md §4.4's single static pass over
// the AST: a scope stack that assigns each variable-referring
// expression a lexical scope-distance, recorded in an external
// side-table rather than written onto the AST.
//
// The algorithm is the book's classic resolver, grounded on the
// bookkeeping cmdneo-tree_lox/parser/locals.go and parser/info.go do
// inline in the parser (declared/defined booleans per name in a
// localScope, function/class/loop kind tracking) — generalized here
// into its own phase that produces depths instead of parser-time slot
// indices, per spec.md's explicit separation of parsing from
// resolution.
package resolver

import (
	"github.com/ashbyglade/golox/ast"
	"github.com/ashbyglade/golox/errs"
	"github.com/ashbyglade/golox/token"
)

type functionKind uint8

const (
	noFunction functionKind = iota
	function
	method
	initializer
)

type classKind uint8

const (
	noClass classKind = iota
	class
	subclass
)

// varState tracks whether a name has been declared and/or defined in
// one scope, per spec.md §4.4's declare/define distinction (used to
// catch "read local in its own initializer").
type varState struct {
	declared bool
	defined  bool
}

// Resolutions maps an expression's ExprID to its lexical scope
// distance, as spec.md §3 and §4.4 require. Absence means "resolve
// against globals".
type Resolutions map[ast.ExprID]int

// Resolver performs the single DFS pass.
type Resolver struct {
	sink  *errs.Sink
	scope []map[string]*varState

	currentFunction functionKind
	currentClass    classKind
	loopDepth       int

	resolutions Resolutions
}

// New returns a Resolver reporting RESOLVE_ERROR diagnostics to sink.
func New(sink *errs.Sink) *Resolver {
	return &Resolver{sink: sink, resolutions: make(Resolutions)}
}

// Resolve walks every statement and returns the resolutions side-table.
// It never mutates stmts.
func (r *Resolver) Resolve(stmts []ast.Stmt) Resolutions {
	r.resolveStmts(stmts)
	return r.resolutions
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) {
	if s == nil {
		return
	}
	s.Accept(r)
}

// ast.StmtVisitor
// --------------------------------------------------------

func (r *Resolver) VisitBlockStmt(s *ast.Block) {
	r.beginScope()
	r.resolveStmts(s.Statements)
	r.endScope()
}

func (r *Resolver) VisitExpressionStmt(s *ast.Expression) {
	r.resolveExpr(s.Expression)
}

func (r *Resolver) VisitPrintStmt(s *ast.Print) {
	r.resolveExpr(s.Expression)
}

func (r *Resolver) VisitBreakStmt(s *ast.Break) {
	if r.loopDepth == 0 {
		r.sink.TokenError(s.Keyword, "%s", "Can't use 'break' outside of a loop.")
	}
}

func (r *Resolver) VisitContinueStmt(s *ast.Continue) {
	if r.loopDepth == 0 {
		r.sink.TokenError(s.Keyword, "%s", "Can't use 'continue' outside of a loop.")
	}
}

func (r *Resolver) VisitReturnStmt(s *ast.Return) {
	if r.currentFunction == noFunction {
		r.sink.TokenError(s.Keyword, "%s", "Can't return from top-level code.")
	}
	if s.Value != nil {
		if r.currentFunction == initializer {
			r.sink.TokenError(s.Keyword, "%s", "Can't return a value from an initializer.")
		}
		r.resolveExpr(s.Value)
	}
}

func (r *Resolver) VisitIfStmt(s *ast.If) {
	r.resolveExpr(s.Condition)
	r.resolveStmt(s.ThenBranch)
	r.resolveStmt(s.ElseBranch)
}

func (r *Resolver) VisitWhileStmt(s *ast.While) {
	r.resolveExpr(s.Condition)
	r.loopDepth++
	r.resolveStmt(s.Body)
	r.loopDepth--
}

func (r *Resolver) VisitForStmt(s *ast.For) {
	r.resolveExpr(s.Condition)
	r.resolveExpr(s.Update)
	r.loopDepth++
	r.resolveStmt(s.Body)
	r.loopDepth--
}

func (r *Resolver) VisitVarStmt(s *ast.Var) {
	r.declare(s.Name)
	if s.Initializer != nil {
		r.resolveExpr(s.Initializer)
	}
	r.define(s.Name)
}

func (r *Resolver) VisitFunctionStmt(s *ast.Function) {
	r.declare(s.Name)
	r.define(s.Name)
	r.resolveFunction(s, function)
}

func (r *Resolver) VisitClassStmt(s *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = class
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.sink.TokenError(s.Superclass.Name, "%s", "A class can't inherit from itself.")
		}
		r.currentClass = subclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		defer r.endScope()
		r.defineName("super")
	}

	r.beginScope()
	defer r.endScope()
	r.defineName("this")

	for _, m := range s.Methods {
		kind := method
		if m.Name.Lexeme == "init" {
			kind = initializer
		}
		r.resolveFunction(m, kind)
	}
}

func (r *Resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	defer r.endScope()

	for _, p := range fn.Params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
}

// ast.ExprVisitor
// --------------------------------------------------------

func (r *Resolver) resolveExpr(e ast.Expr) {
	if e == nil {
		return
	}
	e.Accept(r)
}

func (r *Resolver) VisitAssignExpr(e *ast.Assign) any {
	r.resolveExpr(e.Value)
	r.resolveLocal(e.ID, e.Name.Lexeme)
	return nil
}

func (r *Resolver) VisitLogicalExpr(e *ast.Logical) any {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil
}

func (r *Resolver) VisitBinaryExpr(e *ast.Binary) any {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil
}

func (r *Resolver) VisitUnaryExpr(e *ast.Unary) any {
	r.resolveExpr(e.Right)
	return nil
}

func (r *Resolver) VisitCallExpr(e *ast.Call) any {
	r.resolveExpr(e.Callee)
	for _, a := range e.Arguments {
		r.resolveExpr(a)
	}
	return nil
}

func (r *Resolver) VisitGetExpr(e *ast.Get) any {
	r.resolveExpr(e.Object)
	return nil
}

func (r *Resolver) VisitSetExpr(e *ast.Set) any {
	r.resolveExpr(e.Value)
	r.resolveExpr(e.Object)
	return nil
}

func (r *Resolver) VisitSuperExpr(e *ast.Super) any {
	switch r.currentClass {
	case noClass:
		r.sink.TokenError(e.Keyword, "%s", "Can't use 'super' outside of a class.")
	case class:
		r.sink.TokenError(e.Keyword, "%s", "Can't use 'super' in a class with no superclass.")
	}
	r.resolveLocal(e.ID, "super")
	return nil
}

func (r *Resolver) VisitThisExpr(e *ast.This) any {
	if r.currentClass == noClass {
		r.sink.TokenError(e.Keyword, "%s", "Can't use 'this' outside of a class.")
	}
	r.resolveLocal(e.ID, "this")
	return nil
}

func (r *Resolver) VisitGroupingExpr(e *ast.Grouping) any {
	r.resolveExpr(e.Expr)
	return nil
}

func (r *Resolver) VisitLiteralExpr(e *ast.Literal) any {
	return nil
}

func (r *Resolver) VisitVariableExpr(e *ast.Variable) any {
	if len(r.scope) > 0 {
		if st, ok := r.scope[len(r.scope)-1][e.Name.Lexeme]; ok && st.declared && !st.defined {
			r.sink.TokenError(e.Name, "%s", "Can't read local variable in its own initializer.")
		}
	}
	r.resolveLocal(e.ID, e.Name.Lexeme)
	return nil
}

// Scope management
// --------------------------------------------------------

func (r *Resolver) beginScope() {
	r.scope = append(r.scope, make(map[string]*varState))
}

func (r *Resolver) endScope() {
	r.scope = r.scope[:len(r.scope)-1]
}

// declare records name as declared-but-not-yet-defined in the
// innermost scope. A name already declared there is a static error
// (spec.md §4.4); the global scope is exempt, since redefinition of a
// global is explicitly allowed (spec.md §3).
func (r *Resolver) declare(name token.Token) {
	if len(r.scope) == 0 {
		return
	}
	current := r.scope[len(r.scope)-1]
	if _, ok := current[name.Lexeme]; ok {
		r.sink.TokenError(name, "%s", "Already a variable with this name in this scope.")
	}
	current[name.Lexeme] = &varState{declared: true}
}

func (r *Resolver) define(name token.Token) {
	r.defineName(name.Lexeme)
}

// defineName marks a name defined in the innermost scope, declaring it
// there first if needed — used by define, and for the synthetic
// "this"/"super" bindings VisitClassStmt injects, which have no
// declaring token of their own.
func (r *Resolver) defineName(name string) {
	if len(r.scope) == 0 {
		return
	}
	current := r.scope[len(r.scope)-1]
	if st, ok := current[name]; ok {
		st.defined = true
	} else {
		current[name] = &varState{declared: true, defined: true}
	}
}

// resolveLocal scans scopes innermost to outermost; on a hit at
// distance d it records (id -> d) in the side-table. No hit leaves id
// unrecorded, meaning "resolve against globals" (spec.md §4.4).
func (r *Resolver) resolveLocal(id ast.ExprID, name string) {
	for i := len(r.scope) - 1; i >= 0; i-- {
		if _, ok := r.scope[i][name]; ok {
			r.resolutions[id] = len(r.scope) - 1 - i
			return
		}
	}
}
