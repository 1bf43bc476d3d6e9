package eval

import (
	"fmt"

	"github.com/ostnam/nlox/pkg/ast"
)

// Interface of every callable value. Arity is checked by the interpreter
// before Call is invoked, so Call always receives exactly Arity() args.
type Callable interface {
	Call(inter *Interpreter, args []Value) (Value, error)
	Arity() int
	String() string
}

// A function implemented by the host. CallFn must not call back into the
// interpreter; an error it returns becomes a runtime error at the call site.
type BuiltinFn struct {
	Name     string
	CallFn   func(args []Value) (Value, error)
	ArityVal int
}

func (fn *BuiltinFn) Call(_ *Interpreter, args []Value) (Value, error) {
	return fn.CallFn(args)
}

func (fn *BuiltinFn) Arity() int {
	return fn.ArityVal
}

func (fn *BuiltinFn) String() string {
	return fmt.Sprintf("<native fn %s>", fn.Name)
}

// A user-defined function, closing over the scope it was declared in.
type Fn struct {
	Decl    ast.FunctionStmt
	Closure *Env
}

// Runs the body in a fresh scope whose parent is the closure. Without a
// return statement every call evaluates to nil.
func (fn *Fn) Call(inter *Interpreter, args []Value) (Value, error) {
	env := fn.Closure.NewChild()
	for i, param := range fn.Decl.Params {
		env.Define(param.Lexeme, args[i])
	}
	if err := inter.ExecuteBlock(fn.Decl.Body, env); err != nil {
		return nil, err
	}
	return Nil{}, nil
}

func (fn *Fn) Arity() int {
	return len(fn.Decl.Params)
}

func (fn *Fn) String() string {
	return fmt.Sprintf("<fn %s>", fn.Decl.Name.Lexeme)
}
