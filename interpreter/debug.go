package interpreter

import (
	"strconv"
	"strings"

	"github.com/ashbyglade/golox/ast"
	"github.com/ashbyglade/golox/resolver"
)

// ExprPrinter renders an expression as a parenthesized Lisp-like dump,
// annotating each Variable/This/Super/Assign with whether it resolved
// to a local (and at what depth) or a global — useful for inspecting
// what the resolver decided. Grounded on
// cmdneo-tree_lox/interpreter/debug.go, adapted from the teacher's
// Distance-on-the-AST check to a resolutions side-table lookup, and
// from its two-class This/Super handling (which never printed their
// binding) to report resolved depth like Variable does.
type ExprPrinter struct {
	Resolutions resolver.Resolutions
}

func (p ExprPrinter) Print(e ast.Expr) string {
	return e.Accept(p).(string)
}

func (p ExprPrinter) VisitAssignExpr(e *ast.Assign) any {
	return parens("=", p.varRef(e.ID, e.Name.Lexeme), p.Print(e.Value))
}

func (p ExprPrinter) VisitLogicalExpr(e *ast.Logical) any {
	return parens(e.Operator.Lexeme, p.Print(e.Left), p.Print(e.Right))
}

func (p ExprPrinter) VisitBinaryExpr(e *ast.Binary) any {
	return parens(e.Operator.Lexeme, p.Print(e.Left), p.Print(e.Right))
}

func (p ExprPrinter) VisitUnaryExpr(e *ast.Unary) any {
	return parens(e.Operator.Lexeme, p.Print(e.Right))
}

func (p ExprPrinter) VisitCallExpr(e *ast.Call) any {
	frags := []string{"call", p.Print(e.Callee)}
	for _, arg := range e.Arguments {
		frags = append(frags, p.Print(arg))
	}
	return parens(frags...)
}

func (p ExprPrinter) VisitGetExpr(e *ast.Get) any {
	return parens("get", p.Print(e.Object), e.Name.Lexeme)
}

func (p ExprPrinter) VisitSetExpr(e *ast.Set) any {
	return parens("set", p.Print(e.Object), e.Name.Lexeme, p.Print(e.Value))
}

func (p ExprPrinter) VisitSuperExpr(e *ast.Super) any {
	return parens("super."+e.Method.Lexeme, p.varRef(e.ID, "super"))
}

func (p ExprPrinter) VisitThisExpr(e *ast.This) any {
	return p.varRef(e.ID, "this")
}

func (p ExprPrinter) VisitGroupingExpr(e *ast.Grouping) any {
	return parens("group", p.Print(e.Expr))
}

func (p ExprPrinter) VisitLiteralExpr(e *ast.Literal) any {
	if e.Value == nil {
		return "nil"
	}
	return literalValue(e.Value).String()
}

func (p ExprPrinter) VisitVariableExpr(e *ast.Variable) any {
	return p.varRef(e.ID, e.Name.Lexeme)
}

func (p ExprPrinter) varRef(id ast.ExprID, name string) string {
	if depth, ok := p.Resolutions[id]; ok {
		return "local:" + name + "@" + strconv.Itoa(depth)
	}
	return "global:" + name
}

func parens(frags ...string) string {
	return "(" + strings.Join(frags, " ") + ")"
}
