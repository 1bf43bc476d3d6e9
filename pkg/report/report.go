// Package report carries syntax diagnostics and the sinks that display
// them. Scanning and parsing return SyntaxError values instead of
// flipping a global flag, so a run can be repeated without resetting state.
package report

import (
	"fmt"
	"io"

	"github.com/ostnam/nlox/pkg/tokens"
)

// A malformed-input error found while scanning or parsing.
// Where is "" for scanner errors, " at end" at EOF and " at 'lexeme'"
// otherwise.
type SyntaxError struct {
	Line  int
	Where string
	Msg   string
}

func (self SyntaxError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", self.Line, self.Where, self.Msg)
}

// Builds the SyntaxError for a parser error found at tok.
func AtToken(tok tokens.Token, msg string) SyntaxError {
	if tok.Type == tokens.EOF {
		return SyntaxError{Line: tok.Line, Where: " at end", Msg: msg}
	}
	return SyntaxError{Line: tok.Line, Where: fmt.Sprintf(" at '%s'", tok.Lexeme), Msg: msg}
}

// Diagnostic sink. The core never exits the process; it only reports.
type Reporter interface {
	Report(line int, where string, msg string)
	ReportRuntimeError(line int, msg string)
}

// Writes diagnostics to Out, one per line.
type Console struct {
	Out io.Writer
}

func (c Console) Report(line int, where string, msg string) {
	fmt.Fprintln(c.Out, SyntaxError{Line: line, Where: where, Msg: msg})
}

func (c Console) ReportRuntimeError(line int, msg string) {
	fmt.Fprintf(c.Out, "%s\n[line %d]\n", msg, line)
}

// Keeps every diagnostic in memory. Used by embedders that want to
// inspect errors rather than print them.
type Recorder struct {
	Syntax  []SyntaxError
	Runtime []string
}

func (r *Recorder) Report(line int, where string, msg string) {
	r.Syntax = append(r.Syntax, SyntaxError{Line: line, Where: where, Msg: msg})
}

func (r *Recorder) ReportRuntimeError(line int, msg string) {
	r.Runtime = append(r.Runtime, fmt.Sprintf("[line %d] %s", line, msg))
}

func (r *Recorder) HadError() bool {
	return len(r.Syntax) > 0 || len(r.Runtime) > 0
}
