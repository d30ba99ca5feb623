// Package errs is the shared diagnostic sink used by every phase of the
// pipeline (scanner/lexer, parser, resolver, interpreter), per spec.md §7.
// It centralizes the two stable wire formats spec.md §6 pins for tests:
// compile-time diagnostics and runtime errors.
package errs

import (
	"fmt"
	"io"

	"github.com/ashbyglade/golox/token"
)

// Sink collects diagnostics for one run (one file execution or one REPL
// line) and reports whether compilation or execution failed, for the
// CLI's exit-code logic (spec.md §6: 0 / 65 / 70).
type Sink struct {
	w               io.Writer
	hadError        bool
	hadRuntimeError bool
}

// New returns a Sink that writes formatted diagnostics to w.
func New(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Reset clears the error flags so a Sink can be reused across REPL lines.
func (s *Sink) Reset() {
	s.hadError = false
	s.hadRuntimeError = false
}

// HadError reports whether any LEX_ERROR, PARSE_ERROR or RESOLVE_ERROR
// was reported since the last Reset.
func (s *Sink) HadError() bool { return s.hadError }

// HadRuntimeError reports whether RuntimeError was called since the last
// Reset.
func (s *Sink) HadRuntimeError() bool { return s.hadRuntimeError }

// Report emits a compile-time diagnostic: "[line N] Error: MESSAGE" or,
// when where is non-empty, "[line N] Error at WHERE: MESSAGE".
func (s *Sink) Report(line int, where, message string) {
	s.hadError = true
	if where == "" {
		fmt.Fprintf(s.w, "[line %d] Error: %s\n", line, message)
	} else {
		fmt.Fprintf(s.w, "[line %d] Error at %s: %s\n", line, where, message)
	}
}

// Reportf is Report with a printf-style message.
func (s *Sink) Reportf(line int, where, format string, args ...any) {
	s.Report(line, where, fmt.Sprintf(format, args...))
}

// LexError reports a LEX_ERROR. Scanning continues past it.
func (s *Sink) LexError(line int, message string) {
	s.Report(line, "", message)
}

// TokenError reports a PARSE_ERROR or RESOLVE_ERROR located at tok,
// rendering the "at 'LEXEME'" / "at end" clause spec.md §6 specifies.
func (s *Sink) TokenError(tok token.Token, format string, args ...any) {
	where := "'" + tok.Lexeme + "'"
	if tok.Kind == token.EOF {
		where = "end"
	}
	s.Reportf(tok.Line, where, format, args...)
}

// RuntimeError is the payload every runtime panic carries: a message and
// the source line it occurred on. It is not a PARSE_ERROR/RESOLVE_ERROR —
// it unwinds the evaluator rather than being collected, per spec.md §7.
type RuntimeError struct {
	Message string
	Line    int
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Line)
}

// NewRuntimeError builds a RuntimeError with a printf-style message.
func NewRuntimeError(line int, format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Line: line}
}

// RuntimeError reports a runtime error in the "MESSAGE\n[line N]" format
// spec.md §6 pins, and marks the sink as having failed at runtime.
func (s *Sink) RuntimeError(err *RuntimeError) {
	s.hadRuntimeError = true
	fmt.Fprintf(s.w, "%s\n[line %d]\n", err.Message, err.Line)
}
