package tokens

import "fmt"

// A single lexical unit. Literal holds the parsed value of Num (float64)
// and Str (string) tokens, and is nil for every other kind.
type Token struct {
	Type    TokType
	Lexeme  string
	Literal any
	Line    int
}

func (tok Token) String() string {
	if tok.Literal == nil {
		return fmt.Sprintf("%s %q", tok.Type, tok.Lexeme)
	}
	return fmt.Sprintf("%s %q %v", tok.Type, tok.Lexeme, tok.Literal)
}

type TokType int8

const (
	// single char tokens
	LeftParen TokType = iota
	RightParen
	LeftBrace
	RightBrace
	Comma
	Dot
	Minus
	Plus
	Semicolon
	Slash
	Star
	// 1 or 2 char tokens
	Bang
	BangEql
	Eql
	EqlEql
	Greater
	GreaterEql
	Less
	LessEql
	// literals
	Identifier
	Str
	Num
	// keywords
	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While
	EOF
)

var tokTypeNames = [...]string{
	LeftParen:  "LeftParen",
	RightParen: "RightParen",
	LeftBrace:  "LeftBrace",
	RightBrace: "RightBrace",
	Comma:      "Comma",
	Dot:        "Dot",
	Minus:      "Minus",
	Plus:       "Plus",
	Semicolon:  "Semicolon",
	Slash:      "Slash",
	Star:       "Star",
	Bang:       "Bang",
	BangEql:    "BangEql",
	Eql:        "Eql",
	EqlEql:     "EqlEql",
	Greater:    "Greater",
	GreaterEql: "GreaterEql",
	Less:       "Less",
	LessEql:    "LessEql",
	Identifier: "Identifier",
	Str:        "Str",
	Num:        "Num",
	And:        "And",
	Class:      "Class",
	Else:       "Else",
	False:      "False",
	Fun:        "Fun",
	For:        "For",
	If:         "If",
	Nil:        "Nil",
	Or:         "Or",
	Print:      "Print",
	Return:     "Return",
	Super:      "Super",
	This:       "This",
	True:       "True",
	Var:        "Var",
	While:      "While",
	EOF:        "EOF",
}

func (self TokType) String() string {
	if self < 0 || int(self) >= len(tokTypeNames) {
		return fmt.Sprintf("TokType(%d)", int8(self))
	}
	return tokTypeNames[self]
}

// Reserved words. An identifier lexeme found here is scanned as the
// corresponding keyword token.
var Keywords = map[string]TokType{
	"and":    And,
	"class":  Class,
	"else":   Else,
	"false":  False,
	"for":    For,
	"fun":    Fun,
	"if":     If,
	"nil":    Nil,
	"or":     Or,
	"print":  Print,
	"return": Return,
	"super":  Super,
	"this":   This,
	"true":   True,
	"var":    Var,
	"while":  While,
}
