package machine

import "github.com/mna/loxi/lang/token"

// RuntimeError is a Lox runtime error tied to the token responsible for it,
// reported by the driver via report.Reporter.RuntimeError and used to decide
// the process's exit code.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }
