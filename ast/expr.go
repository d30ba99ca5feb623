// Package ast defines the AST node types produced by the parser and
// walked by the resolver and interpreter, per spec.md §3.
package ast

import "github.com/ashbyglade/golox/token"

// ExprID uniquely identifies an expression node, assigned monotonically
// at parse time (spec.md §3: "Every expression node has a unique expr_id
// stable across resolution and evaluation"). The resolver's side-table
// and the interpreter's lookups are both keyed by this id rather than by
// pointer identity, so AST nodes can stay plain value types.
type ExprID int64

// Expr is any expression node.
type Expr interface {
	Accept(ExprVisitor) any
}

// ExprVisitor dispatches over every concrete Expr type.
type ExprVisitor interface {
	VisitAssignExpr(e *Assign) any
	VisitLogicalExpr(e *Logical) any
	VisitBinaryExpr(e *Binary) any
	VisitUnaryExpr(e *Unary) any
	VisitCallExpr(e *Call) any
	VisitGetExpr(e *Get) any
	VisitSetExpr(e *Set) any
	VisitSuperExpr(e *Super) any
	VisitThisExpr(e *This) any
	VisitGroupingExpr(e *Grouping) any
	VisitLiteralExpr(e *Literal) any
	VisitVariableExpr(e *Variable) any
}

type Assign struct {
	ID    ExprID
	Name  token.Token
	Value Expr
}

type Logical struct {
	Operator    token.Token
	Left, Right Expr
}

type Binary struct {
	Operator    token.Token
	Left, Right Expr
}

type Unary struct {
	Operator token.Token
	Right    Expr
}

type Call struct {
	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

type Get struct {
	Object Expr
	Name   token.Token
}

type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

// Super, This, Grouping, Variable and Literal are primary expressions.

type Super struct {
	ID       ExprID
	Keyword  token.Token
	Method   token.Token
}

type This struct {
	ID      ExprID
	Keyword token.Token
}

type Grouping struct {
	Expr Expr
}

type Variable struct {
	ID   ExprID
	Name token.Token
}

type Literal struct {
	Value any // nil, bool, float64 or string
}

func (e *Assign) Accept(v ExprVisitor) any   { return v.VisitAssignExpr(e) }
func (e *Logical) Accept(v ExprVisitor) any  { return v.VisitLogicalExpr(e) }
func (e *Binary) Accept(v ExprVisitor) any   { return v.VisitBinaryExpr(e) }
func (e *Unary) Accept(v ExprVisitor) any    { return v.VisitUnaryExpr(e) }
func (e *Call) Accept(v ExprVisitor) any     { return v.VisitCallExpr(e) }
func (e *Get) Accept(v ExprVisitor) any      { return v.VisitGetExpr(e) }
func (e *Set) Accept(v ExprVisitor) any      { return v.VisitSetExpr(e) }
func (e *Super) Accept(v ExprVisitor) any    { return v.VisitSuperExpr(e) }
func (e *This) Accept(v ExprVisitor) any     { return v.VisitThisExpr(e) }
func (e *Grouping) Accept(v ExprVisitor) any { return v.VisitGroupingExpr(e) }
func (e *Literal) Accept(v ExprVisitor) any  { return v.VisitLiteralExpr(e) }
func (e *Variable) Accept(v ExprVisitor) any { return v.VisitVariableExpr(e) }
