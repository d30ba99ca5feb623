package resolver

import (
	"bytes"
	"testing"

	"github.com/ashbyglade/golox/ast"
	"github.com/ashbyglade/golox/errs"
	"github.com/ashbyglade/golox/lexer"
	"github.com/ashbyglade/golox/parser"
)

func resolve(t *testing.T, source string) ([]ast.Stmt, Resolutions, *errs.Sink, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	sink := errs.New(&out)
	p := parser.New(lexer.New(source, sink), sink)
	stmts := p.Parse()
	if sink.HadError() {
		t.Fatalf("parse error: %s", out.String())
	}
	res := New(sink).Resolve(stmts)
	return stmts, res, sink, &out
}

func TestGlobalReferenceIsUnresolved(t *testing.T) {
	stmts, res, sink, out := resolve(t, `var x = 1; print x;`)
	if sink.HadError() {
		t.Fatalf("unexpected error: %s", out.String())
	}
	printStmt := stmts[1].(*ast.Print)
	varExpr := printStmt.Expression.(*ast.Variable)
	if _, ok := res[varExpr.ID]; ok {
		t.Fatalf("global reference should have no resolution entry")
	}
}

func TestLocalReferenceGetsDepthZero(t *testing.T) {
	_, res, sink, out := resolve(t, `{ var x = 1; print x; }`)
	if sink.HadError() {
		t.Fatalf("unexpected error: %s", out.String())
	}
	found := false
	for _, d := range res {
		if d == 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected at least one depth-0 resolution, got %v", res)
	}
}

func TestShadowedOuterResolvesToOuterDepth(t *testing.T) {
	stmts, res, sink, out := resolve(t, `
		var x = "outer";
		{
			fun show() { print x; }
			var x = "inner";
			show();
		}
	`)
	if sink.HadError() {
		t.Fatalf("unexpected error: %s", out.String())
	}
	// show's print x refers to the global x (captured before the inner x
	// was declared), so that reference must have no resolution entry at
	// all. (The show() call itself is a local reference and does get one.)
	show := stmts[1].(*ast.Block).Statements[0].(*ast.Function)
	xRef := show.Body[0].(*ast.Print).Expression.(*ast.Variable)
	if d, ok := res[xRef.ID]; ok {
		t.Fatalf("expected x inside show to refer to the global (no entry), got depth %d; table %v", d, res)
	}
}

func TestRedeclareInSameBlockIsError(t *testing.T) {
	_, _, sink, out := resolve(t, `{ var x = 1; var x = 2; }`)
	if !sink.HadError() {
		t.Fatalf("expected a redeclaration error: %s", out.String())
	}
}

func TestReadOwnInitializerIsError(t *testing.T) {
	_, _, sink, out := resolve(t, `{ var x = x; }`)
	if !sink.HadError() {
		t.Fatalf("expected a self-reference error: %s", out.String())
	}
}

func TestBreakOutsideLoopIsError(t *testing.T) {
	_, _, sink, out := resolve(t, `break;`)
	if !sink.HadError() {
		t.Fatalf("expected break-outside-loop error: %s", out.String())
	}
}

func TestBreakInsideLoopIsFine(t *testing.T) {
	_, _, sink, out := resolve(t, `while (true) { break; }`)
	if sink.HadError() {
		t.Fatalf("unexpected error: %s", out.String())
	}
}

func TestReturnOutsideFunctionIsError(t *testing.T) {
	_, _, sink, out := resolve(t, `return 1;`)
	if !sink.HadError() {
		t.Fatalf("expected return-outside-function error: %s", out.String())
	}
}

func TestReturnValueInInitializerIsError(t *testing.T) {
	_, _, sink, out := resolve(t, `class A { init() { return 1; } }`)
	if !sink.HadError() {
		t.Fatalf("expected return-value-in-initializer error: %s", out.String())
	}
}

func TestThisOutsideClassIsError(t *testing.T) {
	_, _, sink, out := resolve(t, `fun f() { print this; }`)
	if !sink.HadError() {
		t.Fatalf("expected this-outside-class error: %s", out.String())
	}
}

func TestSuperOutsideSubclassIsError(t *testing.T) {
	_, _, sink, out := resolve(t, `class A { f() { super.f(); } }`)
	if !sink.HadError() {
		t.Fatalf("expected super-outside-subclass error: %s", out.String())
	}
}

func TestSuperInSubclassIsFine(t *testing.T) {
	_, _, sink, out := resolve(t, `class A { f() {} } class B < A { f() { super.f(); } }`)
	if sink.HadError() {
		t.Fatalf("unexpected error: %s", out.String())
	}
}

func TestGlobalRedefinitionIsAllowed(t *testing.T) {
	_, _, sink, out := resolve(t, `var x = 1; var x = 2;`)
	if sink.HadError() {
		t.Fatalf("global redefinition should be allowed: %s", out.String())
	}
}
