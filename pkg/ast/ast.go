// Package ast defines the syntax tree produced by the parser.
//
// Expr and Stmt are closed sum types: every variant is a struct in this
// package implementing an unexported marker method, and consumers switch
// over the concrete types. Nodes are built once by the parser and only
// read afterwards.
package ast

import (
	"github.com/ostnam/nlox/pkg/tokens"
)

// Interface of every expression node type
type Expr interface {
	exprNode()
}

// Interface of every statement node type
type Stmt interface {
	stmtNode()
}

// AST node for literal values. Value is nil, bool, float64 or string.
type Literal struct {
	Value any
}

// AST node for expressions between parens
type Grouping struct {
	Expr Expr
}

// AST node for unary operations
type Unary struct {
	Op      UnaryOperator
	Tok     tokens.Token
	Operand Expr
}

type UnaryOperator uint8

const (
	Not UnaryOperator = iota
	Neg
)

func (self UnaryOperator) String() string {
	return []string{"Not", "Neg"}[self]
}

// AST node for binary operations
type Binary struct {
	Op  BinaryOperator
	Tok tokens.Token
	Lhs Expr
	Rhs Expr
}

type BinaryOperator uint8

const (
	Eql BinaryOperator = iota
	NotEql
	Minus
	Plus
	Mult
	Div
	Greater
	GreaterEql
	Less
	LessEql
)

func (self BinaryOperator) String() string {
	return []string{"Eql", "NotEql", "Minus", "Plus", "Mult", "Div", "Greater", "GreaterEql", "Less", "LessEql"}[self]
}

// AST node for the short-circuiting `and` / `or`
type Logical struct {
	Op  LogicalOperator
	Tok tokens.Token
	Lhs Expr
	Rhs Expr
}

type LogicalOperator uint8

const (
	And LogicalOperator = iota
	Or
)

func (self LogicalOperator) String() string {
	return []string{"And", "Or"}[self]
}

// AST node for reading a variable
type Variable struct {
	Name tokens.Token
}

// AST node for setting a new value to a variable, ie:
// x = 11;
type Assign struct {
	Name tokens.Token
	Val  Expr
}

// AST node for function calls. Paren is the closing parenthesis, used to
// locate call errors.
type Call struct {
	Callee Expr
	Paren  tokens.Token
	Args   []Expr
}

func (Literal) exprNode()  {}
func (Grouping) exprNode() {}
func (Unary) exprNode()    {}
func (Binary) exprNode()   {}
func (Logical) exprNode()  {}
func (Variable) exprNode() {}
func (Assign) exprNode()   {}
func (Call) exprNode()     {}

// Statement evaluated for its side effects only
type ExprStmt struct {
	Expr Expr
}

type PrintStmt struct {
	Expr Expr
}

// AST node for declaring a variable, ie:
// var x = 10;
// Init is nil when there is no initializer.
type VarStmt struct {
	Name tokens.Token
	Init Expr
}

// AST node for blocks
type Block struct {
	Statements []Stmt
}

// AST node for if statements. Else is nil without an else branch.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

// AST node for while loops
type While struct {
	Cond Expr
	Body Stmt
}

// AST node for function declarations
type FunctionStmt struct {
	Name   tokens.Token
	Params []tokens.Token
	Body   []Stmt
}

func (ExprStmt) stmtNode()     {}
func (PrintStmt) stmtNode()    {}
func (VarStmt) stmtNode()      {}
func (Block) stmtNode()        {}
func (IfStmt) stmtNode()       {}
func (While) stmtNode()        {}
func (FunctionStmt) stmtNode() {}

// Maps tokens to their corresponding BinaryOperator if such a mapping exists.
var TokToBinop = map[tokens.TokType]BinaryOperator{
	tokens.EqlEql:     Eql,
	tokens.BangEql:    NotEql,
	tokens.Minus:      Minus,
	tokens.Plus:       Plus,
	tokens.Star:       Mult,
	tokens.Slash:      Div,
	tokens.Greater:    Greater,
	tokens.GreaterEql: GreaterEql,
	tokens.Less:       Less,
	tokens.LessEql:    LessEql,
}

// Maps tokens to their corresponding UnaryOperator if such a mapping exists.
var TokToUnop = map[tokens.TokType]UnaryOperator{
	tokens.Bang:  Not,
	tokens.Minus: Neg,
}

var TokToLogical = map[tokens.TokType]LogicalOperator{
	tokens.And: And,
	tokens.Or:  Or,
}
