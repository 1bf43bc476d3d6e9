package scanner

import (
	"reflect"
	"testing"

	"github.com/ostnam/nlox/pkg/report"
	. "github.com/ostnam/nlox/pkg/tokens"
)

func scanOK(t *testing.T, src string) []Token {
	t.Helper()
	toks, errs := Scan(src)
	if len(errs) > 0 {
		t.Fatalf("Scan(%q) errors: %v", src, errs)
	}
	return toks
}

func types(toks []Token) []TokType {
	out := make([]TokType, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Type)
	}
	return out
}

func TestScanTypes(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []TokType
	}{
		{"empty", "", []TokType{EOF}},
		{"arithmetic", "1 + 2 * 3;", []TokType{Num, Plus, Num, Star, Num, Semicolon, EOF}},
		{"punctuation", "(){},.-+;/*", []TokType{LeftParen, RightParen, LeftBrace, RightBrace, Comma, Dot, Minus, Plus, Semicolon, Slash, Star, EOF}},
		{"maximal munch", "!= == <= >= ! = < >", []TokType{BangEql, EqlEql, LessEql, GreaterEql, Bang, Eql, Less, Greater, EOF}},
		{"no spaces", "a>=b", []TokType{Identifier, GreaterEql, Identifier, EOF}},
		{"comment", "// nothing here\nvar", []TokType{Var, EOF}},
		{"comment after code", "print 1; // trailing", []TokType{Print, Num, Semicolon, EOF}},
		{"keywords", "and class else false fun for if nil or print return super this true var while",
			[]TokType{And, Class, Else, False, Fun, For, If, Nil, Or, Print, Return, Super, This, True, Var, While, EOF}},
		{"identifiers", "andy _x1 orchid Var", []TokType{Identifier, Identifier, Identifier, Identifier, EOF}},
		{"whitespace", " \t\r\n", []TokType{EOF}},
		{"trailing dot", "3.", []TokType{Num, Dot, EOF}},
		{"leading dot", ".5", []TokType{Dot, Num, EOF}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := types(scanOK(t, tc.src))
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Scan(%q)\nwant %v\ngot  %v", tc.src, tc.want, got)
			}
		})
	}
}

func TestScanLiterals(t *testing.T) {
	toks := scanOK(t, `12.5 7 "hi there" name`)
	want := []Token{
		{Type: Num, Lexeme: "12.5", Literal: 12.5, Line: 1},
		{Type: Num, Lexeme: "7", Literal: 7.0, Line: 1},
		{Type: Str, Lexeme: `"hi there"`, Literal: "hi there", Line: 1},
		{Type: Identifier, Lexeme: "name", Literal: nil, Line: 1},
		{Type: EOF, Lexeme: "", Literal: nil, Line: 1},
	}
	if !reflect.DeepEqual(toks, want) {
		t.Fatalf("want %v\ngot  %v", want, toks)
	}
}

func TestScanNoEscapes(t *testing.T) {
	toks := scanOK(t, `"a\nb"`)
	if toks[0].Literal != `a\nb` {
		t.Fatalf("escape sequences must be kept verbatim, got %q", toks[0].Literal)
	}
}

func TestScanLineNumbers(t *testing.T) {
	toks := scanOK(t, "a\n\"multi\nline\"\nb\n")
	lines := []int{}
	for _, tok := range toks {
		lines = append(lines, tok.Line)
	}
	want := []int{1, 3, 4, 5}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("want lines %v, got %v", want, lines)
	}
	if toks[1].Literal != "multi\nline" {
		t.Fatalf("unexpected string literal %q", toks[1].Literal)
	}
}

func TestScanErrorsContinue(t *testing.T) {
	toks, errs := Scan("@ 1 # 2")
	if got := types(toks); !reflect.DeepEqual(got, []TokType{Num, Num, EOF}) {
		t.Fatalf("unexpected tokens %v", got)
	}
	want := []error{
		report.SyntaxError{Line: 1, Msg: "Unexpected character."},
		report.SyntaxError{Line: 1, Msg: "Unexpected character."},
	}
	if !reflect.DeepEqual(errs, want) {
		t.Fatalf("want %v\ngot  %v", want, errs)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	toks, errs := Scan("print \"abc\n")
	if got := types(toks); !reflect.DeepEqual(got, []TokType{Print, EOF}) {
		t.Fatalf("unterminated string must not produce a token, got %v", got)
	}
	if len(errs) != 1 {
		t.Fatalf("want 1 error, got %v", errs)
	}
	if errs[0].Error() != "[line 2] Error: Unterminated string." {
		t.Fatalf("unexpected error %q", errs[0])
	}
}

func TestScanSingleEOF(t *testing.T) {
	for _, src := range []string{"", "x", "\"open", "1;\n\n"} {
		toks, _ := Scan(src)
		n := 0
		for _, tok := range toks {
			if tok.Type == EOF {
				n++
			}
		}
		if n != 1 || toks[len(toks)-1].Type != EOF {
			t.Fatalf("Scan(%q) must end with exactly one EOF, got %v", src, toks)
		}
	}
}
