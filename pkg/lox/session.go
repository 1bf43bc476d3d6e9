// Package lox wires the scanner, parser and interpreter into a single
// run-a-source-string pipeline shared by script mode and the REPL.
package lox

import (
	"errors"
	"fmt"
	"io"

	"github.com/ostnam/nlox/pkg/ast"
	"github.com/ostnam/nlox/pkg/eval"
	"github.com/ostnam/nlox/pkg/parser"
	"github.com/ostnam/nlox/pkg/report"
	"github.com/ostnam/nlox/pkg/scanner"
)

type Status uint8

const (
	StatusOK Status = iota
	StatusSyntaxError
	StatusRuntimeError
)

// Process exit code for a script that ended with status.
func ExitCode(status Status) int {
	switch status {
	case StatusSyntaxError:
		return 65
	case StatusRuntimeError:
		return 70
	default:
		return 0
	}
}

// A Session keeps one interpreter alive across runs, so definitions made
// by one Run are visible to the next.
type Session struct {
	interp   *eval.Interpreter
	reporter report.Reporter
	out      io.Writer

	// Dump the scanned tokens and the parsed tree to out before running.
	DumpTokens bool
	DumpAST    bool
}

func NewSession(out io.Writer, reporter report.Reporter, opts ...eval.Option) *Session {
	return &Session{
		interp:   eval.NewInterpreter(out, opts...),
		reporter: reporter,
		out:      out,
	}
}

func (s *Session) Interpreter() *eval.Interpreter {
	return s.interp
}

// Evaluates the source passed as input. Every syntax error is reported
// and prevents evaluation; a runtime error is reported once and ends the
// run.
func (s *Session) Run(source string) Status {
	toks, scanErrs := scanner.Scan(source)
	if s.DumpTokens {
		fmt.Fprintln(s.out, "Tokens scanned:")
		for _, tok := range toks {
			fmt.Fprintf(s.out, "  %d %s\n", tok.Line, tok)
		}
	}

	stmts, parseErrs := parser.Parse(toks)
	errs := append(scanErrs, parseErrs...)
	if len(errs) > 0 {
		for _, err := range errs {
			s.reportSyntax(err)
		}
		return StatusSyntaxError
	}
	if s.DumpAST {
		fmt.Fprintln(s.out, "AST parsed:")
		for _, stmt := range stmts {
			ast.PrettyPrint(s.out, stmt)
		}
	}

	if err := s.interp.Interpret(stmts); err != nil {
		var rtErr *eval.RunTimeError
		if errors.As(err, &rtErr) {
			s.reporter.ReportRuntimeError(rtErr.Line(), rtErr.Msg)
		} else {
			s.reporter.ReportRuntimeError(0, err.Error())
		}
		return StatusRuntimeError
	}
	return StatusOK
}

func (s *Session) reportSyntax(err error) {
	var syntaxErr report.SyntaxError
	if errors.As(err, &syntaxErr) {
		s.reporter.Report(syntaxErr.Line, syntaxErr.Where, syntaxErr.Msg)
		return
	}
	s.reporter.Report(0, "", err.Error())
}
