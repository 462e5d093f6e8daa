package css

import "fmt"

// SyntaxError is any grammar rule violation, citing the line/column of the
// offending token (spec.md §7).
type SyntaxError struct {
	Message string
	Line    int
	Col     int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Line, e.Col)
}

// fail raises a SyntaxError positioned at the engine's current token. It
// never returns: the two recovery boundaries (parseRulesetWithRecovery,
// readOneDeclarationWithRecovery) recover it in non-strict mode, and each
// public entry point's guard turns whatever escapes them into a returned
// error. The recursive-descent productions themselves always just panic on
// violation, matching the reference grammar's raise/catch control flow
// instead of threading an error return through every production method.
func (e *Engine) fail(format string, args ...interface{}) {
	line, col := 1, 1
	if tok := e.s.Token(); tok != nil {
		line, col = tok.StartRow, tok.StartCol
	}
	panic(&SyntaxError{Message: fmt.Sprintf(format, args...), Line: line, Col: col})
}

// failAt is fail with an explicit position, used when the offending
// position belongs to a token already consumed or peeked rather than the
// engine's current token.
func (e *Engine) failAt(line, col int, format string, args ...interface{}) {
	panic(&SyntaxError{Message: fmt.Sprintf(format, args...), Line: line, Col: col})
}

// recoverSyntaxError is the shared recover() body for both error-recovery
// boundaries in spec.md §7: it turns an unrecovered, non-*SyntaxError
// panic back into a real panic (a programmer bug, not a grammar
// violation). A *SyntaxError is re-panicked when Options.Strict is set, so
// it propagates further, and returned otherwise.
func (e *Engine) recoverSyntaxError(r interface{}) *SyntaxError {
	se, ok := r.(*SyntaxError)
	if !ok {
		panic(r)
	}
	if e.opts.Strict {
		panic(se)
	}
	return se
}
