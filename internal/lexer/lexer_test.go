package lexer

import (
	"testing"

	"github.com/quill-lang/quillc/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestAllScansKeywordsAndPunctuation(t *testing.T) {
	src := `function add(int a, int b) -> int { return a + b; }`
	toks := New(src).All()
	want := []token.Kind{
		token.FUNCTION, token.IDENT, token.LPAREN, token.INT, token.IDENT, token.COMMA,
		token.INT, token.IDENT, token.RPAREN, token.ARROW, token.INT, token.LBRACE,
		token.RETURN, token.IDENT, token.PLUS, token.IDENT, token.SEMI, token.RBRACE,
		token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestTwoCharOperatorsDisambiguateFromSingleChar(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{"&", token.AMP}, {"&&", token.AND},
		{"|", token.PIPE}, {"||", token.OR},
		{"=", token.EQ}, {"==", token.EQ}, {"=>", token.IMPLIES},
		{"!", token.NOT}, {"!=", token.NEQ},
		{"<", token.LT}, {"<=", token.LE}, {"<<", token.SHL}, {"<=>", token.IFF},
		{">", token.GT}, {">=", token.GE}, {">>", token.SHR},
		{"-", token.MINUS}, {"->", token.ARROW},
		{":", token.COLON}, {":=", token.ASSIGN},
	}
	for _, tc := range cases {
		toks := New(tc.src).All()
		if len(toks) < 1 || toks[0].Kind != tc.kind {
			t.Errorf("%q: expected first token %v, got %v", tc.src, tc.kind, kinds(toks))
		}
	}
}

func TestStringLiteralUnescapes(t *testing.T) {
	toks := New(`"a\nb"`).All()
	if toks[0].Kind != token.STRING_LIT {
		t.Fatalf("expected a string literal token, got %v", toks[0].Kind)
	}
	if toks[0].Literal != "a\nb" {
		t.Errorf("expected unescaped literal %q, got %q", "a\nb", toks[0].Literal)
	}
}

func TestCharLiteral(t *testing.T) {
	toks := New(`'x'`).All()
	if toks[0].Kind != token.CHAR_LIT || toks[0].Literal != "x" {
		t.Errorf("expected char literal 'x', got %v %q", toks[0].Kind, toks[0].Literal)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	src := "// a line comment\nint /* block\ncomment */ x"
	toks := New(src).All()
	got := kinds(toks)
	want := []token.Kind{token.INT, token.IDENT, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	src := "int\nx"
	toks := New(src).All()
	if toks[0].Pos.Line != 1 {
		t.Errorf("expected 'int' on line 1, got %d", toks[0].Pos.Line)
	}
	if toks[1].Pos.Line != 2 {
		t.Errorf("expected 'x' on line 2, got %d", toks[1].Pos.Line)
	}
	if toks[0].Pos.Column != 1 || toks[1].Pos.Column != 1 {
		t.Errorf("expected 'int' and 'x' at column 1, got %d and %d", toks[0].Pos.Column, toks[1].Pos.Column)
	}
}

func TestIdentifierKeywordLookup(t *testing.T) {
	toks := New("block notakeyword").All()
	if toks[0].Kind != token.BLOCK {
		t.Errorf("expected 'block' to lex as a keyword, got %v", toks[0].Kind)
	}
	if toks[1].Kind != token.IDENT {
		t.Errorf("expected 'notakeyword' to lex as an identifier, got %v", toks[1].Kind)
	}
}

func TestIllegalCharacter(t *testing.T) {
	toks := New("@").All()
	if toks[0].Kind != token.ILLEGAL {
		t.Errorf("expected an illegal token for '@', got %v", toks[0].Kind)
	}
}
