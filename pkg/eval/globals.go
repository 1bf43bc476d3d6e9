package eval

import (
	"errors"
	"strings"
	"time"
)

var errNotString = errors.New("Argument must be a string.")

// Native functions installed in the global scope of every interpreter.
func builtins() []*BuiltinFn {
	return []*BuiltinFn{
		{
			Name:     "clock",
			ArityVal: 0,
			CallFn: func([]Value) (Value, error) {
				return Num{Val: float64(time.Now().UnixNano()) / float64(time.Second)}, nil
			},
		},
		{
			Name:     "upper",
			ArityVal: 1,
			CallFn: func(args []Value) (Value, error) {
				s, ok := args[0].(Str)
				if !ok {
					return nil, errNotString
				}
				return Str{Val: strings.ToUpper(s.Val)}, nil
			},
		},
		{
			Name:     "lower",
			ArityVal: 1,
			CallFn: func(args []Value) (Value, error) {
				s, ok := args[0].(Str)
				if !ok {
					return nil, errNotString
				}
				return Str{Val: strings.ToLower(s.Val)}, nil
			},
		},
	}
}
