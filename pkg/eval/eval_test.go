package eval

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ostnam/nlox/pkg/ast"
	"github.com/ostnam/nlox/pkg/parser"
	"github.com/ostnam/nlox/pkg/scanner"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	toks, errs := scanner.Scan(src)
	if len(errs) > 0 {
		t.Fatalf("Scan(%q) errors: %v", src, errs)
	}
	stmts, errs := parser.Parse(toks)
	if len(errs) > 0 {
		t.Fatalf("Parse(%q) errors: %v", src, errs)
	}
	return stmts
}

// Runs src in a fresh interpreter and returns what it printed.
func run(t *testing.T, src string, opts ...Option) (string, error) {
	t.Helper()
	var out bytes.Buffer
	inter := NewInterpreter(&out, opts...)
	err := inter.Interpret(parse(t, src))
	return out.String(), err
}

func TestPrograms(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"empty", "", ""},
		{"precedence", "print 1 + 2 * 3;", "7\n"},
		{"grouping", "print (1 + 2) * 3;", "9\n"},
		{"division", "print 10 / 4;", "2.5\n"},
		{"division by zero", "print 1 / 0; print -1 / 0; print 0 / 0;", "Infinity\n-Infinity\nNaN\n"},
		{"negation", "print -(3 - 5);", "2\n"},
		{"not", "print !nil; print !0; print !!\"\";", "true\nfalse\ntrue\n"},
		{"comparison", "print 1 < 2; print 2 <= 2; print 3 > 4; print 4 >= 5;", "true\ntrue\nfalse\nfalse\n"},
		{"concatenation", `print "foo" + "bar";`, "foobar\n"},
		{"equality", `print nil == nil; print 0 == false; print "a" == "a"; print 1 != 2;`, "true\nfalse\ntrue\ntrue\n"},
		{"shadowing", "var a = 1; { var a = 2; print a; } print a;", "2\n1\n"},
		{"assign outer", "var a = 1; { a = 2; } print a;", "2\n"},
		{"assignment value", "var a; var b; a = b = 3; print a; print b;", "3\n3\n"},
		{"uninitialized", "var a; print a;", "nil\n"},
		{"truthiness", `if (0) print "zero"; if ("") print "empty"; if (nil) print "nil"; else print "else";`, "zero\nempty\nelse\n"},
		{"or", `print nil or "x"; print "y" or undefined;`, "x\ny\n"},
		{"and", "print 1 and 2; print false and undefined; print nil and 1;", "2\nfalse\nnil\n"},
		{"while", "var i = 0; while (i < 3) { print i; i = i + 1; }", "0\n1\n2\n"},
		{"function", "fun add(a, b) { print a + b; } add(2, 3);", "5\n"},
		{"call result", "fun f() {} print f();", "nil\n"},
		{"recursion", "var n = 0; fun count() { if (n < 3) { n = n + 1; count(); } } count(); print n;", "3\n"},
		{"local function", `fun outer() { var x = "local"; fun inner() { print x; } inner(); } outer();`, "local\n"},
		{"closure outlives block", `var f; { var a = "captured"; fun g() { print a; } f = g; } f();`, "captured\n"},
		{"closure sees updates", `var f; { var a = 1; fun g() { print a; } f = g; a = 2; } f();`, "2\n"},
		{"params shadow globals", `var a = "global"; fun f(a) { print a; } f("param"); print a;`, "param\nglobal\n"},
		{"print functions", "fun f() {} print f; print clock;", "<fn f>\n<native fn clock>\n"},
		{"function identity", "fun f() {} fun g() {} var h = f; print f == h; print f == g;", "true\nfalse\n"},
		{"case conversion", `print upper("abc"); print lower("ABC");`, "ABC\nabc\n"},
		{"clock", "print clock() > 0;", "true\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := run(t, tc.src)
			if err != nil {
				t.Fatalf("unexpected runtime error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("program %q\nwant %q\ngot  %q", tc.src, tc.want, got)
			}
		})
	}
}

func TestRuntimeErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		msg  string
		kind RunTimeErrorKind
		line int
		out  string
	}{
		{"add mismatch", "print 1 + \"bar\"; print \"after\";", "Both operands must be numbers or strings.", TypeError, 1, ""},
		{"negate string", "print \"before\";\n-\"a\";", "Operand must be a number.", TypeError, 2, "before\n"},
		{"compare mismatch", "1 < \"a\";", "Operands must be a number.", TypeError, 1, ""},
		{"multiply nil", "nil * 2;", "Operands must be a number.", TypeError, 1, ""},
		{"undefined read", "print y;", "Undefined variable 'y'.", NameError, 1, ""},
		{"undefined assign", "\n\nx = 1;", "Undefined variable 'x'.", NameError, 3, ""},
		{"not callable", `"str"();`, "Can only call functions and classes.", CallError, 1, ""},
		{"arity", "fun add(a, b) { print a + b; }\nadd(1);", "Expected 2 arguments but got 1.", CallError, 2, ""},
		{"native arity", "clock(1);", "Expected 0 arguments but got 1.", CallError, 1, ""},
		{"native failure", "upper(1);", "Argument must be a string.", NativeError, 1, ""},
		{"error inside function", "fun f() { print \"in\"; nil + 1; print \"unreachable\"; }\nf();", "Both operands must be numbers or strings.", TypeError, 1, "in\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := run(t, tc.src)
			var rtErr *RunTimeError
			if !errors.As(err, &rtErr) {
				t.Fatalf("want a *RunTimeError, got %v", err)
			}
			if rtErr.Msg != tc.msg || rtErr.Kind != tc.kind || rtErr.Line() != tc.line {
				t.Fatalf("want %q (kind %d) on line %d, got %q (kind %d) on line %d",
					tc.msg, tc.kind, tc.line, rtErr.Msg, rtErr.Kind, rtErr.Line())
			}
			if out != tc.out {
				t.Fatalf("want output %q, got %q", tc.out, out)
			}
		})
	}
}

func TestArgumentsEvaluatedLeftToRight(t *testing.T) {
	src := `
var log = "";
fun mark(s) { log = log + s; }
fun three(a, b, c) {}
three(mark("a"), mark("b"), mark("c"));
print log;
`
	got, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "abc\n" {
		t.Fatalf("want abc, got %q", got)
	}
}

func TestScopeRestoredAfterError(t *testing.T) {
	var out bytes.Buffer
	inter := NewInterpreter(&out)
	if err := inter.Interpret(parse(t, "{ var inner = 1; missing; }")); err == nil {
		t.Fatalf("want a runtime error")
	}
	if inter.env != inter.Globals {
		t.Fatalf("the global scope must be current after an error")
	}
	err := inter.Interpret(parse(t, "print inner;"))
	if err == nil || err.Error() != "Undefined variable 'inner'." {
		t.Fatalf("block bindings must not leak, got %v", err)
	}
}

func TestGlobalsPersistAcrossRuns(t *testing.T) {
	var out bytes.Buffer
	inter := NewInterpreter(&out)
	for _, src := range []string{"var a = 1;", "fun inc() { a = a + 1; }", "inc(); inc();", "print a;"} {
		if err := inter.Interpret(parse(t, src)); err != nil {
			t.Fatalf("%q: unexpected error %v", src, err)
		}
	}
	if out.String() != "3\n" {
		t.Fatalf("want 3, got %q", out.String())
	}
}

func TestStackOverflow(t *testing.T) {
	_, err := run(t, "fun f() { f(); }\nf();", WithMaxDepth(50))
	var rtErr *RunTimeError
	if !errors.As(err, &rtErr) || rtErr.Kind != StackOverflow || rtErr.Msg != "Stack overflow." {
		t.Fatalf("want a stack overflow, got %v", err)
	}

	got, err := run(t, "var n = 0; fun f() { if (n < 60) { n = n + 1; f(); } } f(); print n;", WithMaxDepth(0))
	if err != nil || got != "60\n" {
		t.Fatalf("an unlimited depth must allow recursion, got %q / %v", got, err)
	}
}

func TestDefineNative(t *testing.T) {
	var out bytes.Buffer
	inter := NewInterpreter(&out)
	inter.DefineNative("twice", 1, func(args []Value) (Value, error) {
		n, ok := args[0].(Num)
		if !ok {
			return nil, errors.New("twice wants a number")
		}
		return Num{Val: n.Val * 2}, nil
	})
	if err := inter.Interpret(parse(t, "print twice(4);")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "8\n" {
		t.Fatalf("want 8, got %q", out.String())
	}
	err := inter.Interpret(parse(t, `twice("x");`))
	if err == nil || err.Error() != "twice wants a number" {
		t.Fatalf("native errors must surface as runtime errors, got %v", err)
	}
}

func TestReevaluationIsDeterministic(t *testing.T) {
	stmts := parse(t, `var a = 2; print a * 3 + 1; print "x" + "y"; print a == 2;`)
	var out bytes.Buffer
	inter := NewInterpreter(&out)
	for i := 0; i < 2; i++ {
		if err := inter.Interpret(stmts); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 6 || strings.Join(lines[:3], ",") != strings.Join(lines[3:], ",") {
		t.Fatalf("both runs must print the same thing, got %q", lines)
	}
}
