// Package report defines the diagnostic reporting abstraction shared by the
// scanner, parser, resolver and evaluator: a single place that accumulates
// syntax and runtime errors and decides the process's exit code.
package report

import (
	"fmt"
	"io"

	"github.com/mna/loxi/lang/token"
)

// Reporter accumulates diagnostics produced while scanning, parsing,
// resolving or evaluating a program. A single Reporter is shared across a
// REPL session so HadError can be reset between lines.
type Reporter interface {
	// Error reports a diagnostic tied to a source line (used by the scanner,
	// which has no token to point at).
	Error(line int, msg string)

	// ErrorAt reports a diagnostic tied to a specific token, distinguishing
	// "at end" from "at '<lexeme>'" the way the reference implementation does.
	ErrorAt(tok token.Token, msg string)

	// RuntimeError reports an error raised while evaluating, tied to the token
	// responsible for it.
	RuntimeError(tok token.Token, msg string)

	// HadError reports whether Error or ErrorAt was called since the last
	// Reset.
	HadError() bool

	// HadRuntimeError reports whether RuntimeError was called since the last
	// Reset.
	HadRuntimeError() bool

	// Reset clears both error flags, so a REPL can keep accepting input after
	// a line failed.
	Reset()
}

// Default is the Reporter used by the command-line driver: it writes
// human-readable diagnostics to Output and tracks the had-error flags
// required to pick an exit code (see internal/maincmd).
type Default struct {
	Output io.Writer

	hadError        bool
	hadRuntimeError bool
}

// NewDefault returns a Default Reporter that writes to w.
func NewDefault(w io.Writer) *Default {
	return &Default{Output: w}
}

func (d *Default) Error(line int, msg string) {
	d.report(line, "", msg)
}

func (d *Default) ErrorAt(tok token.Token, msg string) {
	if tok.Kind == token.EOF {
		d.report(tok.Line, " at end", msg)
	} else {
		d.report(tok.Line, fmt.Sprintf(" at '%s'", tok.Lexeme), msg)
	}
}

func (d *Default) report(line int, where, msg string) {
	fmt.Fprintf(d.Output, "[line %d] Error%s: %s\n", line, where, msg)
	d.hadError = true
}

func (d *Default) RuntimeError(tok token.Token, msg string) {
	fmt.Fprintf(d.Output, "[line %d] %s\n", tok.Line, msg)
	d.hadRuntimeError = true
}

func (d *Default) HadError() bool        { return d.hadError }
func (d *Default) HadRuntimeError() bool { return d.hadRuntimeError }

func (d *Default) Reset() {
	d.hadError = false
	d.hadRuntimeError = false
}
