package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Renders an expression in parenthesized prefix form, ie:
// -123 * (45.67) => (* (- 123) (group 45.67))
// The output is meant for humans and is not guaranteed to parse back.
func Render(expr Expr) string {
	switch node := expr.(type) {
	case Literal:
		return renderLiteral(node.Value)
	case Grouping:
		return parenthesize("group", node.Expr)
	case Unary:
		return parenthesize(node.Tok.Lexeme, node.Operand)
	case Binary:
		return parenthesize(node.Tok.Lexeme, node.Lhs, node.Rhs)
	case Logical:
		return parenthesize(node.Tok.Lexeme, node.Lhs, node.Rhs)
	case Variable:
		return node.Name.Lexeme
	case Assign:
		return parenthesize("= "+node.Name.Lexeme, node.Val)
	case Call:
		return parenthesize("call", append([]Expr{node.Callee}, node.Args...)...)
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("<unknown %T>", node)
	}
}

func parenthesize(name string, exprs ...Expr) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, expr := range exprs {
		b.WriteString(" ")
		b.WriteString(Render(expr))
	}
	b.WriteString(")")
	return b.String()
}

func renderLiteral(val any) string {
	switch v := val.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Writes an indented dump of a statement or expression tree to w.
func PrettyPrint(w io.Writer, node any) {
	prettyPrint(w, node, 0)
}

func prettyPrint(w io.Writer, node any, indent int) {
	const INDENT_LVL = 3
	if indent > 0 {
		fmt.Fprint(w, strings.Repeat(" ", indent-1)+"| ")
	}
	switch node := node.(type) {
	case ExprStmt:
		fmt.Fprintln(w, "Expression statement:")
		prettyPrint(w, node.Expr, indent+INDENT_LVL)
	case PrintStmt:
		fmt.Fprintln(w, "Print:")
		prettyPrint(w, node.Expr, indent+INDENT_LVL)
	case VarStmt:
		if node.Init == nil {
			fmt.Fprintf(w, "Variable declaration: %s\n", node.Name.Lexeme)
			return
		}
		fmt.Fprintf(w, "Initializing %s to the value of:\n", node.Name.Lexeme)
		prettyPrint(w, node.Init, indent+INDENT_LVL)
	case Block:
		fmt.Fprintln(w, "Block, with statements:")
		for _, stmt := range node.Statements {
			prettyPrint(w, stmt, indent+INDENT_LVL)
		}
	case IfStmt:
		fmt.Fprintln(w, "If statement, with predicate:")
		prettyPrint(w, node.Cond, indent+INDENT_LVL)
		prettyPrint(w, node.Then, indent+INDENT_LVL)
		if node.Else != nil {
			prettyPrint(w, node.Else, indent+INDENT_LVL)
		}
	case While:
		fmt.Fprintln(w, "While:")
		prettyPrint(w, node.Cond, indent+INDENT_LVL)
		prettyPrint(w, node.Body, indent+INDENT_LVL)
	case FunctionStmt:
		params := make([]string, 0, len(node.Params))
		for _, param := range node.Params {
			params = append(params, param.Lexeme)
		}
		fmt.Fprintf(w, "Declaration of function %s(%s) with body:\n", node.Name.Lexeme, strings.Join(params, ", "))
		for _, stmt := range node.Body {
			prettyPrint(w, stmt, indent+INDENT_LVL)
		}
	case Binary:
		fmt.Fprintf(w, "Binary: %s\n", node.Op)
		prettyPrint(w, node.Lhs, indent+INDENT_LVL)
		prettyPrint(w, node.Rhs, indent+INDENT_LVL)
	case Logical:
		fmt.Fprintf(w, "Logical: %s\n", node.Op)
		prettyPrint(w, node.Lhs, indent+INDENT_LVL)
		prettyPrint(w, node.Rhs, indent+INDENT_LVL)
	case Unary:
		fmt.Fprintf(w, "Unary: %s\n", node.Op)
		prettyPrint(w, node.Operand, indent+INDENT_LVL)
	case Literal:
		fmt.Fprintf(w, "Literal: %s\n", renderLiteral(node.Value))
	case Grouping:
		fmt.Fprintln(w, "Grouping")
		prettyPrint(w, node.Expr, indent+INDENT_LVL)
	case Variable:
		fmt.Fprintf(w, "Variable: %s\n", node.Name.Lexeme)
	case Assign:
		fmt.Fprintf(w, "Assigning to the name %s the value:\n", node.Name.Lexeme)
		prettyPrint(w, node.Val, indent+INDENT_LVL)
	case Call:
		fmt.Fprintf(w, "Call with %d args, callee:\n", len(node.Args))
		prettyPrint(w, node.Callee, indent+INDENT_LVL)
		for _, arg := range node.Args {
			prettyPrint(w, arg, indent+INDENT_LVL)
		}
	default:
		fmt.Fprintf(w, "Error pretty-printing AST, unknown node type: %T\n", node)
	}
}
