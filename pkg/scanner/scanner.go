package scanner

import (
	"strconv"

	"github.com/ostnam/nlox/pkg/report"
	. "github.com/ostnam/nlox/pkg/tokens"
	"github.com/ostnam/nlox/pkg/utils"
)

// Turns source text into tokens. Scanning never stops at an error: bad
// characters and unterminated strings are returned as report.SyntaxError
// values and scanning resumes with the next character. The token slice
// always ends with a single EOF token.
func Scan(source string) ([]Token, []error) {
	input := []rune(source)
	pos := 0
	lineNumber := 1
	toks := make([]Token, 0)
	errs := []error{}
	for !utils.IsAtEnd(input, pos) {
		tok, err := scanToken(input, &pos, &lineNumber)
		if err != nil {
			errs = append(errs, err)
		}
		if tok != nil {
			toks = append(toks, *tok)
		}
	}
	toks = append(toks, Token{Type: EOF, Lexeme: "", Literal: nil, Line: lineNumber})
	return toks, errs
}

func scanToken(str []rune, pos *int, lineNumber *int) (*Token, error) {
	start := *pos
	c := utils.Advance(str, pos)
	if c == nil {
		return nil, nil
	}
	switch *c {
	case '(':
		return mkToken(LeftParen, str, start, *pos, *lineNumber), nil
	case ')':
		return mkToken(RightParen, str, start, *pos, *lineNumber), nil
	case '{':
		return mkToken(LeftBrace, str, start, *pos, *lineNumber), nil
	case '}':
		return mkToken(RightBrace, str, start, *pos, *lineNumber), nil
	case ',':
		return mkToken(Comma, str, start, *pos, *lineNumber), nil
	case '.':
		return mkToken(Dot, str, start, *pos, *lineNumber), nil
	case '-':
		return mkToken(Minus, str, start, *pos, *lineNumber), nil
	case '+':
		return mkToken(Plus, str, start, *pos, *lineNumber), nil
	case ';':
		return mkToken(Semicolon, str, start, *pos, *lineNumber), nil
	case '*':
		return mkToken(Star, str, start, *pos, *lineNumber), nil
	case '!':
		return mkToken(pick(str, pos, '=', BangEql, Bang), str, start, *pos, *lineNumber), nil
	case '=':
		return mkToken(pick(str, pos, '=', EqlEql, Eql), str, start, *pos, *lineNumber), nil
	case '>':
		return mkToken(pick(str, pos, '=', GreaterEql, Greater), str, start, *pos, *lineNumber), nil
	case '<':
		return mkToken(pick(str, pos, '=', LessEql, Less), str, start, *pos, *lineNumber), nil
	case '/':
		if utils.Match(str, pos, '/') {
			consumeRestOfLine(str, pos)
			return nil, nil
		}
		return mkToken(Slash, str, start, *pos, *lineNumber), nil
	case '"':
		return scanStrLiteral(str, pos, start, lineNumber)
	case ' ', '\t', '\r':
		return nil, nil
	case '\n':
		*lineNumber++
		return nil, nil
	default:
		if isDigit(*c) {
			return scanNumLiteral(str, pos, start, *lineNumber)
		}
		if isAlpha(*c) {
			return scanIdentifier(str, pos, start, *lineNumber), nil
		}
		return nil, report.SyntaxError{Line: *lineNumber, Msg: "Unexpected character."}
	}
}

// Maximal munch: consumes next and returns long if the following rune
// is next, else returns short.
func pick(str []rune, pos *int, next rune, long TokType, short TokType) TokType {
	if utils.Match(str, pos, next) {
		return long
	}
	return short
}

// Strings may span lines and carry no escape sequences.
func scanStrLiteral(str []rune, pos *int, start int, line *int) (*Token, error) {
	for {
		char := utils.Advance(str, pos)
		if char == nil {
			break
		}
		switch *char {
		case '"':
			tok := mkToken(Str, str, start, *pos, *line)
			tok.Literal = string(str[start+1 : *pos-1])
			return tok, nil
		case '\n':
			*line++
		}
	}
	return nil, report.SyntaxError{Line: *line, Msg: "Unterminated string."}
}

func scanNumLiteral(str []rune, pos *int, start int, line int) (*Token, error) {
	consumeDigits(str, pos)
	next := utils.Peek(str, *pos)
	afterDot := utils.Peek(str, *pos+1)
	if next != nil && *next == '.' && afterDot != nil && isDigit(*afterDot) {
		*pos++
		consumeDigits(str, pos)
	}
	tok := mkToken(Num, str, start, *pos, line)
	val, err := strconv.ParseFloat(tok.Lexeme, 64)
	if err != nil {
		return nil, report.SyntaxError{Line: line, Msg: "Invalid number literal."}
	}
	tok.Literal = val
	return tok, nil
}

func consumeDigits(str []rune, pos *int) {
	for {
		c := utils.Peek(str, *pos)
		if c == nil || !isDigit(*c) {
			return
		}
		*pos++
	}
}

func scanIdentifier(str []rune, pos *int, start int, line int) *Token {
	for {
		c := utils.Peek(str, *pos)
		if c == nil || !isAlphaNumeric(*c) {
			break
		}
		*pos++
	}
	tok, identifierIsKeyword := Keywords[string(str[start:*pos])]
	if identifierIsKeyword {
		return mkToken(tok, str, start, *pos, line)
	}
	return mkToken(Identifier, str, start, *pos, line)
}

func mkToken(type_ TokType, str []rune, start int, pos int, line int) *Token {
	return &Token{
		Type:   type_,
		Lexeme: string(str[start:pos]),
		Line:   line,
	}
}

// Stops before the newline so the line counter still sees it.
func consumeRestOfLine(str []rune, pos *int) {
	for ; *pos < len(str); *pos++ {
		if str[*pos] == '\n' {
			return
		}
	}
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}
