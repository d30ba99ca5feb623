package interpreter

import (
	"bytes"
	"testing"

	"github.com/ashbyglade/golox/ast"
	"github.com/ashbyglade/golox/errs"
	"github.com/ashbyglade/golox/lexer"
	"github.com/ashbyglade/golox/parser"
	"github.com/ashbyglade/golox/resolver"
)

func TestExprPrinterAnnotatesGlobalAndLocal(t *testing.T) {
	var diag bytes.Buffer
	sink := errs.New(&diag)
	p := parser.New(lexer.New(`var x = 1; { var y = 2; print x + y; }`, sink), sink)
	stmts := p.Parse()
	if sink.HadError() {
		t.Fatalf("parse error: %s", diag.String())
	}
	res := resolver.New(sink).Resolve(stmts)
	if sink.HadError() {
		t.Fatalf("resolve error: %s", diag.String())
	}

	block := stmts[1].(*ast.Block)
	printStmt := block.Statements[1].(*ast.Print)

	got := ExprPrinter{Resolutions: res}.Print(printStmt.Expression)
	want := "(+ global:x local:y@0)"
	if got != want {
		t.Fatalf("Print() = %q; want %q", got, want)
	}
}
