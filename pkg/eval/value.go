package eval

import (
	"math"
	"strconv"
)

// A runtime value: Nil, Bool, Num, Str or a Callable.
// Values only exist while a program runs; the AST holds host literals.
type Value interface{}

// numeric value
type Num struct {
	Val float64
}

type Str struct {
	Val string
}

type Bool struct {
	Val bool
}

// the lox nil
type Nil struct{}

// Converts a literal stored in the AST (nil, bool, float64 or string).
func fromLiteral(lit any) Value {
	switch lit := lit.(type) {
	case bool:
		return Bool{Val: lit}
	case float64:
		return Num{Val: lit}
	case string:
		return Str{Val: lit}
	default:
		return Nil{}
	}
}

// nil and false are falsy, everything else is truthy.
func isTruthy(val Value) bool {
	switch val := val.(type) {
	case nil, Nil:
		return false
	case Bool:
		return val.Val
	default:
		return true
	}
}

// Values of different kinds are never equal. Functions are equal only to
// themselves.
func isEqual(lhs Value, rhs Value) bool {
	switch l := lhs.(type) {
	case Nil:
		_, ok := rhs.(Nil)
		return ok
	case Bool:
		r, ok := rhs.(Bool)
		return ok && l.Val == r.Val
	case Num:
		r, ok := rhs.(Num)
		return ok && l.Val == r.Val
	case Str:
		r, ok := rhs.(Str)
		return ok && l.Val == r.Val
	case Callable:
		r, ok := rhs.(Callable)
		return ok && l == r
	default:
		return false
	}
}

// Text printed for a value by `print`.
func Stringify(val Value) string {
	switch val := val.(type) {
	case nil, Nil:
		return "nil"
	case Bool:
		return strconv.FormatBool(val.Val)
	case Num:
		return formatNum(val.Val)
	case Str:
		return val.Val
	case Callable:
		return val.String()
	default:
		return "<unknown>"
	}
}

// Integral numbers print without a fractional part.
func formatNum(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case math.IsNaN(n):
		return "NaN"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
