// Package parser implements the recursive-descent, single-token-lookahead
// parser of spec.md §4.3. Grounded closely on
// cmdneo-tree_lox/parser/parser.go's control structure
// (match/check/consume/synchronize, finish_call's 255-arg cap,
// assignment's Get->Set rewrite, this/super primary parsing), with the
// teacher's inline scope-tracking (declareVariable/useVariable/
// localScope) removed: spec.md restructures that into a separate
// resolver phase that never touches the AST (see resolver.Resolver).
package parser

import (
	"fmt"

	"github.com/ashbyglade/golox/ast"
	"github.com/ashbyglade/golox/errs"
	"github.com/ashbyglade/golox/lexer"
	"github.com/ashbyglade/golox/token"
)

// MaxCallArgs is the argument/parameter count cap from spec.md §4.3.
const MaxCallArgs = 255

// syntaxError unwinds parsing of the current declaration back up to
// Parse's panic-mode recovery point (spec.md §4.3, "enter panic-mode
// recovery"). It carries no data; the diagnostic was already reported
// to sink at the point of the error.
type syntaxError struct{}

// Parser turns a token stream into a slice of ast.Stmt.
type Parser struct {
	lex     *lexer.Lexer
	sink    *errs.Sink
	prev    token.Token
	current token.Token
	nextID  ast.ExprID
}

// New returns a Parser reading tokens from lex, reporting PARSE_ERROR
// diagnostics to sink.
func New(lex *lexer.Lexer, sink *errs.Sink) *Parser {
	return &Parser{lex: lex, sink: sink}
}

// Parse consumes the whole token stream and returns the program's
// statements. It always returns everything it could parse, even in the
// presence of errors — callers check sink.HadError() to decide whether
// to run the result (spec.md §7, "compilation fails overall").
func (p *Parser) Parse() []ast.Stmt {
	p.advance()

	var stmts []ast.Stmt
	for !p.check(token.EOF) {
		stmts = append(stmts, p.declarationRecovering())
	}
	return stmts
}

// ParseSingle parses exactly one declaration-or-statement and returns
// it, or nil on a syntax error (already reported to sink). Used by the
// REPL, which treats each line independently (spec.md §6, "each line
// is parsed as a declaration-or-statement").
func (p *Parser) ParseSingle() ast.Stmt {
	p.advance()
	if p.check(token.EOF) {
		return nil
	}
	return p.declarationRecovering()
}

func (p *Parser) declarationRecovering() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(syntaxError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()
	return p.declaration()
}

// Statement parsing
// --------------------------------------------------------

func (p *Parser) declaration() ast.Stmt {
	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		fn := p.function("function")
		return fn
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect class name.")

	var superclass *ast.Variable
	if p.match(token.LESS) {
		sname := p.consume(token.IDENTIFIER, "Expect superclass name.")
		if sname.Lexeme == name.Lexeme {
			p.errorAt(sname, "A class can't inherit from itself.")
		}
		superclass = p.variableRef(sname)
	}

	p.consume(token.LEFT_BRACE, "Expect '{' before class body.")

	var methods []*ast.Function
	for !p.check(token.RIGHT_BRACE) && !p.check(token.EOF) {
		methods = append(methods, p.function("method"))
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after class body.")

	return &ast.Class{Name: name, Superclass: superclass, Methods: methods}
}

func (p *Parser) function(kind string) *ast.Function {
	name := p.consume(token.IDENTIFIER, "Expect "+kind+" name.")
	p.consume(token.LEFT_PAREN, "Expect '(' after "+kind+" name.")

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= MaxCallArgs {
				p.errorAt(p.current, fmt.Sprintf("Can't have more than %d parameters.", MaxCallArgs))
			}
			params = append(params, p.consume(token.IDENTIFIER, "Expect parameter name."))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after parameters.")

	p.consume(token.LEFT_BRACE, "Expect '{' before "+kind+" body.")
	body := p.bareBlock()

	return &ast.Function{Name: name, Params: params, Body: body}
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "Expect a variable name.")

	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")
	return &ast.Var{Name: name, Initializer: init}
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.BREAK):
		return p.breakStatement()
	case p.match(token.CONTINUE):
		return p.continueStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.LEFT_BRACE):
		return &ast.Block{Statements: p.bareBlock()}
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	return &ast.Print{Expression: expr}
}

func (p *Parser) breakStatement() ast.Stmt {
	kw := p.prev
	p.consume(token.SEMICOLON, "Expect ';' after 'break'.")
	return &ast.Break{Keyword: kw}
}

func (p *Parser) continueStatement() ast.Stmt {
	kw := p.prev
	p.consume(token.SEMICOLON, "Expect ';' after 'continue'.")
	return &ast.Continue{Keyword: kw}
}

func (p *Parser) returnStatement() ast.Stmt {
	kw := p.prev
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after return value.")
	return &ast.Return{Keyword: kw, Value: value}
}

func (p *Parser) ifStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'if'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after if condition.")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.If{Condition: cond, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func (p *Parser) whileStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'while'.")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "Expect ')' after condition.")
	body := p.statement()
	return &ast.While{Condition: cond, Body: body}
}

// forStatement builds a dedicated ast.For rather than desugaring all
// the way to ast.While, per spec.md §4.3's note: "The loop node retains
// the original incr so continue can run it before the next condition
// test" — folding Update into the body as a trailing statement (the
// book's classic desugaring) would put it out of continue's reach.
func (p *Parser) forStatement() ast.Stmt {
	p.consume(token.LEFT_PAREN, "Expect '(' after 'for'.")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
	case p.match(token.VAR):
		init = p.varDeclaration()
	default:
		init = p.expressionStatement()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	var update ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		update = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "Expect ')' after for clauses.")

	body := p.statement()
	loop := &ast.For{Condition: cond, Update: update, Body: body}
	return ast.NewBlock(init, loop)
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	return &ast.Expression{Expression: expr}
}

func (p *Parser) bareBlock() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.check(token.EOF) {
		stmts = append(stmts, p.declaration())
	}
	p.consume(token.RIGHT_BRACE, "Expect '}' after block.")
	return stmts
}

// Expression parsing
// --------------------------------------------------------

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

func (p *Parser) assignment() ast.Expr {
	expr := p.logicOr()

	if p.match(token.EQUAL) {
		equals := p.prev
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{ID: p.newID(), Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
		}
	}
	return expr
}

func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.OR) {
		op := p.prev
		right := p.logicAnd()
		expr = &ast.Logical{Operator: op, Left: expr, Right: right}
	}
	return expr
}

func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.prev
		right := p.equality()
		expr = &ast.Logical{Operator: op, Left: expr, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.matchAny(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.prev
		right := p.comparison()
		expr = &ast.Binary{Operator: op, Left: expr, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.matchAny(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.prev
		right := p.term()
		expr = &ast.Binary{Operator: op, Left: expr, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.matchAny(token.MINUS, token.PLUS) {
		op := p.prev
		right := p.factor()
		expr = &ast.Binary{Operator: op, Left: expr, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.matchAny(token.SLASH, token.STAR) {
		op := p.prev
		right := p.unary()
		expr = &ast.Binary{Operator: op, Left: expr, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.matchAny(token.BANG, token.MINUS) {
		op := p.prev
		right := p.unary()
		return &ast.Unary{Operator: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "Expect property name after '.'.")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= MaxCallArgs {
				p.errorAt(p.current, fmt.Sprintf("Can't have more than %d arguments.", MaxCallArgs))
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "Expect ')' after arguments.")
	return &ast.Call{Callee: callee, Paren: paren, Arguments: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Value: false}
	case p.match(token.TRUE):
		return &ast.Literal{Value: true}
	case p.match(token.NIL):
		return &ast.Literal{Value: nil}
	case p.matchAny(token.NUMBER, token.STRING):
		return &ast.Literal{Value: p.prev.Literal}
	case p.match(token.THIS):
		return &ast.This{ID: p.newID(), Keyword: p.prev}
	case p.match(token.SUPER):
		return p.super_()
	case p.match(token.IDENTIFIER):
		return p.variableRef(p.prev)
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "Expect ')' after expression.")
		return &ast.Grouping{Expr: expr}
	}

	p.errorAt(p.current, "Expect expression.")
	panic(syntaxError{})
}

func (p *Parser) super_() ast.Expr {
	keyword := p.prev
	p.consume(token.DOT, "Expect '.' after 'super'.")
	method := p.consume(token.IDENTIFIER, "Expect superclass method name.")
	return &ast.Super{ID: p.newID(), Keyword: keyword, Method: method}
}

func (p *Parser) variableRef(name token.Token) *ast.Variable {
	return &ast.Variable{ID: p.newID(), Name: name}
}

func (p *Parser) newID() ast.ExprID {
	p.nextID++
	return p.nextID
}

// Token matching helpers
// --------------------------------------------------------

func (p *Parser) match(kind token.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchAny(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.match(k) {
			return true
		}
	}
	return false
}

func (p *Parser) check(kind token.Kind) bool {
	return p.current.Kind == kind
}

func (p *Parser) advance() token.Token {
	p.prev = p.current
	p.current = p.lex.NextToken()
	return p.prev
}

func (p *Parser) consume(kind token.Kind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorAt(p.current, message)
	panic(syntaxError{})
}

func (p *Parser) errorAt(tok token.Token, message string) {
	p.sink.TokenError(tok, "%s", message)
}

// synchronize discards tokens until a likely statement boundary, per
// spec.md §4.3's panic-mode recovery.
func (p *Parser) synchronize() {
	for !p.check(token.EOF) {
		if p.prev.Kind == token.SEMICOLON {
			return
		}
		switch p.current.Kind {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF,
			token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}
