package eval

import (
	"errors"
	"fmt"
	"io"

	"github.com/ostnam/nlox/pkg/ast"
	"github.com/ostnam/nlox/pkg/tokens"
)

// Default limit on nested function calls.
const DefaultMaxDepth = 1000

type RunTimeError struct {
	Kind  RunTimeErrorKind
	Token tokens.Token
	Msg   string
}

func (self *RunTimeError) Error() string {
	return self.Msg
}

// Source line of the token that raised the error.
func (self *RunTimeError) Line() int {
	return self.Token.Line
}

type RunTimeErrorKind uint8

const (
	TypeError RunTimeErrorKind = iota
	NameError
	CallError
	NativeError
	StackOverflow
)

// Tree-walking evaluator. An Interpreter owns its globals for its whole
// life and is not safe for concurrent use.
type Interpreter struct {
	Globals  *Env
	env      *Env
	out      io.Writer
	maxDepth int
	depth    int
}

type Option func(*Interpreter)

// Limits nesting of function calls; 0 disables the limit.
func WithMaxDepth(n int) Option {
	return func(inter *Interpreter) {
		inter.maxDepth = n
	}
}

// Creates an interpreter writing `print` output to out, with the native
// functions already defined.
func NewInterpreter(out io.Writer, opts ...Option) *Interpreter {
	globals := NewEnv()
	inter := &Interpreter{
		Globals:  globals,
		env:      globals,
		out:      out,
		maxDepth: DefaultMaxDepth,
	}
	for _, fn := range builtins() {
		globals.Define(fn.Name, fn)
	}
	for _, opt := range opts {
		opt(inter)
	}
	return inter
}

// Installs a host function in the global scope.
func (inter *Interpreter) DefineNative(name string, arity int, fn func(args []Value) (Value, error)) {
	inter.Globals.Define(name, &BuiltinFn{Name: name, CallFn: fn, ArityVal: arity})
}

// Executes the statements in order. The first runtime error stops the
// run and is returned; the statements after it are not executed.
func (inter *Interpreter) Interpret(stmts []ast.Stmt) error {
	inter.env = inter.Globals
	inter.depth = 0
	for _, stmt := range stmts {
		if err := inter.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Executes stmts in env, restoring the current scope afterwards whether
// or not an error occurred.
func (inter *Interpreter) ExecuteBlock(stmts []ast.Stmt, env *Env) error {
	prev := inter.env
	inter.env = env
	defer func() {
		inter.env = prev
	}()
	for _, stmt := range stmts {
		if err := inter.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (inter *Interpreter) Exec(stmt ast.Stmt) error {
	switch node := stmt.(type) {
	case ast.ExprStmt:
		_, err := inter.Eval(node.Expr)
		return err

	case ast.PrintStmt:
		val, err := inter.Eval(node.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(inter.out, Stringify(val))
		return nil

	case ast.VarStmt:
		var val Value = Nil{}
		if node.Init != nil {
			evald, err := inter.Eval(node.Init)
			if err != nil {
				return err
			}
			val = evald
		}
		inter.env.Define(node.Name.Lexeme, val)
		return nil

	case ast.Block:
		return inter.ExecuteBlock(node.Statements, inter.env.NewChild())

	case ast.IfStmt:
		cond, err := inter.Eval(node.Cond)
		if err != nil {
			return err
		}
		if isTruthy(cond) {
			return inter.Exec(node.Then)
		}
		if node.Else != nil {
			return inter.Exec(node.Else)
		}
		return nil

	case ast.While:
		for {
			cond, err := inter.Eval(node.Cond)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := inter.Exec(node.Body); err != nil {
				return err
			}
		}

	case ast.FunctionStmt:
		inter.env.Define(node.Name.Lexeme, &Fn{Decl: node, Closure: inter.env})
		return nil

	default:
		return fmt.Errorf("BUG: unmatched statement type during evaluation: %T", stmt)
	}
}

func (inter *Interpreter) Eval(expr ast.Expr) (Value, error) {
	switch node := expr.(type) {
	case ast.Literal:
		return fromLiteral(node.Value), nil

	case ast.Grouping:
		return inter.Eval(node.Expr)

	case ast.Variable:
		return inter.env.Get(node.Name)

	case ast.Assign:
		val, err := inter.Eval(node.Val)
		if err != nil {
			return nil, err
		}
		if err := inter.env.Assign(node.Name, val); err != nil {
			return nil, err
		}
		return val, nil

	case ast.Logical:
		lhs, err := inter.Eval(node.Lhs)
		if err != nil {
			return nil, err
		}
		switch node.Op {
		case ast.Or:
			if isTruthy(lhs) {
				return lhs, nil
			}
		case ast.And:
			if !isTruthy(lhs) {
				return lhs, nil
			}
		}
		return inter.Eval(node.Rhs)

	case ast.Unary:
		val, err := inter.Eval(node.Operand)
		if err != nil {
			return nil, err
		}
		switch node.Op {
		case ast.Not:
			return Bool{Val: !isTruthy(val)}, nil
		case ast.Neg:
			n, ok := val.(Num)
			if !ok {
				return nil, &RunTimeError{Kind: TypeError, Token: node.Tok, Msg: "Operand must be a number."}
			}
			return Num{Val: -n.Val}, nil
		default:
			return nil, fmt.Errorf("BUG: Unhandled unary operator in eval: %s", node.Op)
		}

	case ast.Binary:
		lhs, err := inter.Eval(node.Lhs)
		if err != nil {
			return nil, err
		}
		rhs, err := inter.Eval(node.Rhs)
		if err != nil {
			return nil, err
		}
		return binop(node, lhs, rhs)

	case ast.Call:
		return inter.call(node)

	default:
		return nil, fmt.Errorf("BUG: unmatched AST node type during evaluation: %T", expr)
	}
}

func binop(node ast.Binary, lhs Value, rhs Value) (Value, error) {
	switch node.Op {
	case ast.Eql:
		return Bool{Val: isEqual(lhs, rhs)}, nil
	case ast.NotEql:
		return Bool{Val: !isEqual(lhs, rhs)}, nil
	case ast.Plus:
		if l, ok := lhs.(Str); ok {
			if r, ok := rhs.(Str); ok {
				return Str{Val: l.Val + r.Val}, nil
			}
		}
		if l, ok := lhs.(Num); ok {
			if r, ok := rhs.(Num); ok {
				return Num{Val: l.Val + r.Val}, nil
			}
		}
		return nil, &RunTimeError{Kind: TypeError, Token: node.Tok, Msg: "Both operands must be numbers or strings."}
	}

	l, lok := lhs.(Num)
	r, rok := rhs.(Num)
	if !lok || !rok {
		return nil, &RunTimeError{Kind: TypeError, Token: node.Tok, Msg: "Operands must be a number."}
	}
	switch node.Op {
	case ast.Minus:
		return Num{Val: l.Val - r.Val}, nil
	case ast.Mult:
		return Num{Val: l.Val * r.Val}, nil
	case ast.Div:
		return Num{Val: l.Val / r.Val}, nil
	case ast.Greater:
		return Bool{Val: l.Val > r.Val}, nil
	case ast.GreaterEql:
		return Bool{Val: l.Val >= r.Val}, nil
	case ast.Less:
		return Bool{Val: l.Val < r.Val}, nil
	case ast.LessEql:
		return Bool{Val: l.Val <= r.Val}, nil
	default:
		return nil, fmt.Errorf("Unimplemented binary operator: %s", node.Op)
	}
}

func (inter *Interpreter) call(node ast.Call) (Value, error) {
	callee, err := inter.Eval(node.Callee)
	if err != nil {
		return nil, err
	}
	args := make([]Value, 0, len(node.Args))
	for _, arg := range node.Args {
		val, err := inter.Eval(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, val)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, &RunTimeError{Kind: CallError, Token: node.Paren, Msg: "Can only call functions and classes."}
	}
	if len(args) != fn.Arity() {
		msg := fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args))
		return nil, &RunTimeError{Kind: CallError, Token: node.Paren, Msg: msg}
	}
	if inter.maxDepth > 0 && inter.depth >= inter.maxDepth {
		return nil, &RunTimeError{Kind: StackOverflow, Token: node.Paren, Msg: "Stack overflow."}
	}

	inter.depth++
	defer func() {
		inter.depth--
	}()
	val, err := fn.Call(inter, args)
	if err != nil {
		var rtErr *RunTimeError
		if errors.As(err, &rtErr) {
			return nil, err
		}
		return nil, &RunTimeError{Kind: NativeError, Token: node.Paren, Msg: err.Error()}
	}
	return val, nil
}
