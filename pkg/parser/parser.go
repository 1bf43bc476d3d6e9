package parser

import (
	"github.com/ostnam/nlox/pkg/ast"
	"github.com/ostnam/nlox/pkg/report"
	. "github.com/ostnam/nlox/pkg/tokens"
	"github.com/ostnam/nlox/pkg/utils"
)

// Maximum number of parameters of a function, and of arguments of a call.
const MaxArgs = 255

type parser struct {
	toks []Token
	pos  int
	errs []error
}

// Top-level parsing function. Every syntax error is returned; a declaration
// that failed to parse is left out of the result, so the statements must
// not be evaluated when errs is non-empty.
func Parse(toks []Token) ([]ast.Stmt, []error) {
	if len(toks) == 0 || toks[len(toks)-1].Type != EOF {
		line := 1
		if len(toks) > 0 {
			line = toks[len(toks)-1].Line
		}
		toks = append(toks[:len(toks):len(toks)], Token{Type: EOF, Line: line})
	}
	p := parser{toks: toks}
	res := []ast.Stmt{}
	for !p.isAtEnd() {
		stmt := p.declaration()
		if stmt != nil {
			res = append(res, stmt)
		}
	}
	return res, p.errs
}

// Parses one declaration, synchronizing to the next statement boundary
// when it fails. Returns nil on failure.
func (p *parser) declaration() ast.Stmt {
	var stmt ast.Stmt
	var err error
	switch {
	case utils.MatchTokenType(p.toks, &p.pos, Fun):
		stmt, err = p.function("function")
	case utils.MatchTokenType(p.toks, &p.pos, Var):
		stmt, err = p.varDeclaration()
	default:
		stmt, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return nil
	}
	return stmt
}

func (p *parser) varDeclaration() (ast.Stmt, error) {
	name, err := p.consume(Identifier, "Expect variable name.")
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if utils.MatchTokenType(p.toks, &p.pos, Eql) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(Semicolon, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return ast.VarStmt{Name: name, Init: init}, nil
}

func (p *parser) function(kind string) (ast.Stmt, error) {
	name, err := p.consume(Identifier, "Expect "+kind+" name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(LeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return nil, err
	}
	params := []Token{}
	if !p.check(RightParen) {
		for {
			if len(params) >= MaxArgs {
				p.error(p.peek(), "Can't have more than 255 parameters.")
			}
			param, err := p.consume(Identifier, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !utils.MatchTokenType(p.toks, &p.pos, Comma) {
				break
			}
		}
	}
	if _, err := p.consume(RightParen, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	if _, err := p.consume(LeftBrace, "Expect '{' before "+kind+" body."); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return ast.FunctionStmt{Name: name, Params: params, Body: body}, nil
}

func (p *parser) statement() (ast.Stmt, error) {
	switch {
	case utils.MatchTokenType(p.toks, &p.pos, If):
		return p.ifStatement()
	case utils.MatchTokenType(p.toks, &p.pos, Print):
		return p.printStatement()
	case utils.MatchTokenType(p.toks, &p.pos, While):
		return p.whileStatement()
	case utils.MatchTokenType(p.toks, &p.pos, LeftBrace):
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return ast.Block{Statements: stmts}, nil
	default:
		return p.expressionStatement()
	}
}

func (p *parser) ifStatement() (ast.Stmt, error) {
	if _, err := p.consume(LeftParen, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RightParen, "Expect ')' after if condition."); err != nil {
		return nil, err
	}
	then, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch ast.Stmt
	if utils.MatchTokenType(p.toks, &p.pos, Else) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return ast.IfStmt{Cond: cond, Then: then, Else: elseBranch}, nil
}

func (p *parser) printStatement() (ast.Stmt, error) {
	val, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return ast.PrintStmt{Expr: val}, nil
}

func (p *parser) whileStatement() (ast.Stmt, error) {
	if _, err := p.consume(LeftParen, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(RightParen, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return ast.While{Cond: cond, Body: body}, nil
}

func (p *parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Semicolon, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return ast.ExprStmt{Expr: expr}, nil
}

// Parses the statements of a block, after its opening brace. Declarations
// that fail inside the block are recovered from locally.
func (p *parser) block() ([]ast.Stmt, error) {
	stmts := []ast.Stmt{}
	for !p.check(RightBrace) && !p.isAtEnd() {
		stmt := p.declaration()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	if _, err := p.consume(RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *parser) expression() (ast.Expr, error) {
	return p.assignment()
}

func (p *parser) assignment() (ast.Expr, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}
	if utils.MatchTokenType(p.toks, &p.pos, Eql) {
		equals := p.previous()
		val, err := p.assignment()
		if err != nil {
			return nil, err
		}
		if target, ok := expr.(ast.Variable); ok {
			return ast.Assign{Name: target.Name, Val: val}, nil
		}
		p.error(equals, "Invalid assignment target.")
	}
	return expr, nil
}

func (p *parser) or() (ast.Expr, error) {
	return p.logical(p.and, Or)
}

func (p *parser) and() (ast.Expr, error) {
	return p.logical(p.equality, And)
}

func (p *parser) logical(next func() (ast.Expr, error), ops ...TokType) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for utils.MatchTokenType(p.toks, &p.pos, ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = ast.Logical{
			Op:  ast.TokToLogical[op.Type],
			Tok: op,
			Lhs: expr,
			Rhs: right,
		}
	}
	return expr, nil
}

func (p *parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, BangEql, EqlEql)
}

func (p *parser) comparison() (ast.Expr, error) {
	return p.binary(p.term, Greater, GreaterEql, Less, LessEql)
}

func (p *parser) term() (ast.Expr, error) {
	return p.binary(p.factor, Minus, Plus)
}

func (p *parser) factor() (ast.Expr, error) {
	return p.binary(p.unary, Slash, Star)
}

// One left-associative precedence level: operands come from next, and the
// level loops while the current token is one of ops.
func (p *parser) binary(next func() (ast.Expr, error), ops ...TokType) (ast.Expr, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}
	for utils.MatchTokenType(p.toks, &p.pos, ops...) {
		op := p.previous()
		right, err := next()
		if err != nil {
			return nil, err
		}
		expr = ast.Binary{
			Op:  ast.TokToBinop[op.Type],
			Tok: op,
			Lhs: expr,
			Rhs: right,
		}
	}
	return expr, nil
}

func (p *parser) unary() (ast.Expr, error) {
	if utils.MatchTokenType(p.toks, &p.pos, Bang, Minus) {
		op := p.previous()
		val, err := p.unary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Op: ast.TokToUnop[op.Type], Tok: op, Operand: val}, nil
	}
	return p.call()
}

func (p *parser) call() (ast.Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for utils.MatchTokenType(p.toks, &p.pos, LeftParen) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return nil, err
		}
	}
	return expr, nil
}

func (p *parser) finishCall(callee ast.Expr) (ast.Expr, error) {
	args := []ast.Expr{}
	if !p.check(RightParen) {
		for {
			if len(args) >= MaxArgs {
				p.error(p.peek(), "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !utils.MatchTokenType(p.toks, &p.pos, Comma) {
				break
			}
		}
	}
	paren, err := p.consume(RightParen, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return ast.Call{Callee: callee, Paren: paren, Args: args}, nil
}

func (p *parser) primary() (ast.Expr, error) {
	switch {
	case utils.MatchTokenType(p.toks, &p.pos, False):
		return ast.Literal{Value: false}, nil
	case utils.MatchTokenType(p.toks, &p.pos, True):
		return ast.Literal{Value: true}, nil
	case utils.MatchTokenType(p.toks, &p.pos, Nil):
		return ast.Literal{Value: nil}, nil
	case utils.MatchTokenType(p.toks, &p.pos, Num, Str):
		return ast.Literal{Value: p.previous().Literal}, nil
	case utils.MatchTokenType(p.toks, &p.pos, Identifier):
		return ast.Variable{Name: p.previous()}, nil
	case utils.MatchTokenType(p.toks, &p.pos, LeftParen):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(RightParen, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return ast.Grouping{Expr: expr}, nil
	}
	return nil, p.error(p.peek(), "Expect expression.")
}

// Advances the parsing state until the probable beginning of the next
// statement, or the end of the token stream.
func (p *parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == Semicolon {
			return
		}
		if utils.PeekMatchesTokType(p.toks, p.pos, Class, Fun, Var, For, If, While, Print, Return) {
			return
		}
		p.advance()
	}
}

func (p *parser) consume(type_ TokType, msg string) (Token, error) {
	if p.check(type_) {
		return p.advance(), nil
	}
	return Token{}, p.error(p.peek(), msg)
}

// Records a syntax error at tok and returns it. Callers that can keep
// parsing simply ignore the result.
func (p *parser) error(tok Token, msg string) error {
	err := report.AtToken(tok, msg)
	p.errs = append(p.errs, err)
	return err
}

func (p *parser) check(type_ TokType) bool {
	if p.isAtEnd() {
		return false
	}
	return utils.PeekMatchesTokType(p.toks, p.pos, type_)
}

func (p *parser) advance() Token {
	if p.isAtEnd() {
		return p.peek()
	}
	p.pos++
	return p.previous()
}

func (p *parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

func (p *parser) peek() Token {
	return *utils.Peek(p.toks, p.pos)
}

func (p *parser) previous() Token {
	return *utils.Previous(p.toks, p.pos)
}
