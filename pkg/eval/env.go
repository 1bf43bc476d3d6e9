package eval

import (
	"fmt"

	"github.com/ostnam/nlox/pkg/tokens"
)

// One lexical scope. Scopes form a chain through Parent up to the globals,
// which have no parent. A scope captured by a function stays alive as long
// as that function value does.
type Env struct {
	Parent *Env
	Store  map[string]Value
}

func NewEnv() *Env {
	return &Env{
		Parent: nil,
		Store:  map[string]Value{},
	}
}

func (env *Env) NewChild() *Env {
	return &Env{
		Parent: env,
		Store:  map[string]Value{},
	}
}

// Creates or overwrites name in this scope, shadowing outer bindings.
func (env *Env) Define(name string, val Value) {
	env.Store[name] = val
}

// Looks name up from this scope outward.
func (env *Env) Get(name tokens.Token) (Value, error) {
	for scope := env; scope != nil; scope = scope.Parent {
		if val, ok := scope.Store[name.Lexeme]; ok {
			return val, nil
		}
	}
	return nil, undefined(name)
}

// Only updates a pre-existing variable: the nearest binding of name is
// overwritten, and assigning to an undefined name is an error.
func (env *Env) Assign(name tokens.Token, val Value) error {
	for scope := env; scope != nil; scope = scope.Parent {
		if _, ok := scope.Store[name.Lexeme]; ok {
			scope.Store[name.Lexeme] = val
			return nil
		}
	}
	return undefined(name)
}

func undefined(name tokens.Token) *RunTimeError {
	return &RunTimeError{
		Kind:  NameError,
		Token: name,
		Msg:   fmt.Sprintf("Undefined variable '%s'.", name.Lexeme),
	}
}
