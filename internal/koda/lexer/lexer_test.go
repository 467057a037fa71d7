package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/koda-lang/koda/internal/koda/token"
)

func TestNextToken(t *testing.T) {
	input := `
lokal räknare = 10
funktion öka(n)
    om n >= 5 och inte klar utför
        ge n .. "klar"
    annarsom n ~= 2 utför
        ge 'två'
    slut
    ge #lista * 2.5 + 7.
slut
-- en kommentar
`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.LOCAL, "lokal"},
		{token.IDENT, "räknare"},
		{token.ASSIGN, "="},
		{token.NUMBER, "10"},

		{token.FUNCTION, "funktion"},
		{token.IDENT, "öka"},
		{token.LPAREN, "("},
		{token.IDENT, "n"},
		{token.RPAREN, ")"},

		{token.IF, "om"},
		{token.IDENT, "n"},
		{token.GTE, ">="},
		{token.NUMBER, "5"},
		{token.AND, "och"},
		{token.NOT, "inte"},
		{token.IDENT, "klar"},
		{token.THEN, "utför"},

		{token.RETURN, "ge"},
		{token.IDENT, "n"},
		{token.CONCAT, ".."},
		{token.STRING, `"klar"`},

		{token.ELSEIF, "annarsom"},
		{token.IDENT, "n"},
		{token.NOT_EQ, "~="},
		{token.NUMBER, "2"},
		{token.THEN, "utför"},

		{token.RETURN, "ge"},
		{token.STRING, "'två'"},
		{token.END, "slut"},

		{token.RETURN, "ge"},
		{token.LENGTH, "#"},
		{token.IDENT, "lista"},
		{token.ASTERISK, "*"},
		{token.NUMBER, "2.5"},
		{token.PLUS, "+"},
		{token.NUMBER, "7."},
		{token.END, "slut"},

		{token.COMMENT, "-- en kommentar"},
		{token.EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextTokenPositions(t *testing.T) {
	l := New("x = 1\n  skriv(x)")

	want := []token.Token{
		{Type: token.IDENT, Literal: "x", Line: 1, Column: 1},
		{Type: token.ASSIGN, Literal: "=", Line: 1, Column: 3},
		{Type: token.NUMBER, Literal: "1", Line: 1, Column: 5},
		{Type: token.IDENT, Literal: "skriv", Line: 2, Column: 3},
		{Type: token.LPAREN, Literal: "(", Line: 2, Column: 8},
		{Type: token.IDENT, Literal: "x", Line: 2, Column: 9},
		{Type: token.RPAREN, Literal: ")", Line: 2, Column: 10},
		{Type: token.EOF, Literal: "", Line: 2, Column: 11},
	}
	var got []token.Token
	for {
		tok := l.NextToken()
		got = append(got, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("token positions mismatch (-want +got):\n%s", diff)
	}
}

func TestOperatorsLongestMatch(t *testing.T) {
	tokens := Lex("... .. . == = ~= >= > <= < # % ^ / - : ; , { } [ ]")
	want := []token.TokenType{
		token.VARARGS, token.CONCAT, token.DOT, token.EQ, token.ASSIGN, token.NOT_EQ,
		token.GTE, token.GT, token.LTE, token.LT, token.LENGTH, token.PERCENT,
		token.CARET, token.SLASH, token.MINUS, token.COLON, token.SEMICOLON,
		token.COMMA, token.LBRACE, token.RBRACE, token.LBRACKET, token.RBRACKET,
	}
	if diff := cmp.Diff(want, types(tokens)); diff != "" {
		t.Fatalf("operator types mismatch (-want +got):\n%s", diff)
	}
}

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Token
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "keyword prefix stays identifier",
			input: "funkar funktion",
			want: []token.Token{
				{Type: token.IDENT, Literal: "funkar", Line: 1, Column: 1},
				{Type: token.FUNCTION, Literal: "funktion", Line: 1, Column: 8},
			},
		},
		{
			name:  "hyphen is subtraction",
			input: "a-b",
			want: []token.Token{
				{Type: token.IDENT, Literal: "a", Line: 1, Column: 1},
				{Type: token.MINUS, Literal: "-", Line: 1, Column: 2},
				{Type: token.IDENT, Literal: "b", Line: 1, Column: 3},
			},
		},
		{
			name:  "digits inside identifiers",
			input: "x1y2",
			want: []token.Token{
				{Type: token.IDENT, Literal: "x1y2", Line: 1, Column: 1},
			},
		},
		{
			name:  "leading dot is not a number",
			input: ".5",
			want: []token.Token{
				{Type: token.DOT, Literal: ".", Line: 1, Column: 1},
				{Type: token.NUMBER, Literal: "5", Line: 1, Column: 2},
			},
		},
		{
			name:  "number followed by concatenation",
			input: "1..x",
			want: []token.Token{
				{Type: token.NUMBER, Literal: "1", Line: 1, Column: 1},
				{Type: token.CONCAT, Literal: "..", Line: 1, Column: 2},
				{Type: token.IDENT, Literal: "x", Line: 1, Column: 4},
			},
		},
		{
			name:  "escaped quotes stay inside the string",
			input: `"säg \"hej\" \\" 'it\'s'`,
			want: []token.Token{
				{Type: token.STRING, Literal: `"säg \"hej\" \\"`, Line: 1, Column: 1},
				{Type: token.STRING, Literal: `'it\'s'`, Line: 1, Column: 18},
			},
		},
		{
			name:  "keywords inside strings are not translated",
			input: `"funktion om slut"`,
			want: []token.Token{
				{Type: token.STRING, Literal: `"funktion om slut"`, Line: 1, Column: 1},
			},
		},
		{
			name:  "unterminated string runs to end of line",
			input: "\"hej\nx",
			want: []token.Token{
				{Type: token.ILLEGAL, Literal: `"hej`, Line: 1, Column: 1},
				{Type: token.IDENT, Literal: "x", Line: 2, Column: 1},
			},
		},
		{
			name:  "long comment spans lines",
			input: "--[[ rad ett\nrad två ]] x",
			want: []token.Token{
				{Type: token.COMMENT, Literal: "--[[ rad ett\nrad två ]]", Line: 1, Column: 1},
				{Type: token.IDENT, Literal: "x", Line: 2, Column: 12},
			},
		},
		{
			name:  "leveled long comment",
			input: "--[==[ ]] ]==]",
			want: []token.Token{
				{Type: token.COMMENT, Literal: "--[==[ ]] ]==]", Line: 1, Column: 1},
			},
		},
		{
			name:  "unterminated long comment",
			input: "--[[ aldrig slut",
			want: []token.Token{
				{Type: token.ILLEGAL, Literal: "--[[ aldrig slut", Line: 1, Column: 1},
			},
		},
		{
			name:  "long string",
			input: "[[två\nrader]]",
			want: []token.Token{
				{Type: token.STRING, Literal: "[[två\nrader]]", Line: 1, Column: 1},
			},
		},
		{
			name:  "unknown characters",
			input: "x @ $",
			want: []token.Token{
				{Type: token.IDENT, Literal: "x", Line: 1, Column: 1},
				{Type: token.ILLEGAL, Literal: "@", Line: 1, Column: 3},
				{Type: token.ILLEGAL, Literal: "$", Line: 1, Column: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lex(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("Lex(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestLexRetagsKeywordsAfterSelectors(t *testing.T) {
	tokens := Lex("t.slut = 1 t:om() t.i")
	want := []token.TokenType{
		token.IDENT, token.DOT, token.IDENT, token.ASSIGN, token.NUMBER,
		token.IDENT, token.COLON, token.IDENT, token.LPAREN, token.RPAREN,
		token.IDENT, token.DOT, token.IDENT,
	}
	if diff := cmp.Diff(want, types(tokens)); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	if tokens[2].Literal != "slut" {
		t.Fatalf("retagged identifier should keep Swedish text, got %q", tokens[2].Literal)
	}
}

func TestLexKeywordI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.TokenType
	}{
		{
			name:  "numeric for uses i as a name",
			input: "för i = 1, 3 gör skriv(i) slut",
			want: []token.TokenType{
				token.FOR, token.IDENT, token.ASSIGN, token.NUMBER, token.COMMA, token.NUMBER,
				token.DO, token.IDENT, token.LPAREN, token.IDENT, token.RPAREN, token.END,
			},
		},
		{
			name:  "generic for keeps in",
			input: "för k, v i par(t) gör slut",
			want: []token.TokenType{
				token.FOR, token.IDENT, token.COMMA, token.IDENT, token.IN, token.IDENT,
				token.LPAREN, token.IDENT, token.RPAREN, token.DO, token.END,
			},
		},
		{
			name:  "loop variable named i in generic for",
			input: "för i, v i ipar(t) gör slut",
			want: []token.TokenType{
				token.FOR, token.IDENT, token.COMMA, token.IDENT, token.IN, token.IDENT,
				token.LPAREN, token.IDENT, token.RPAREN, token.DO, token.END,
			},
		},
		{
			name:  "i outside loops",
			input: "lokal i = i + 1",
			want: []token.TokenType{
				token.LOCAL, token.IDENT, token.ASSIGN, token.IDENT, token.PLUS, token.NUMBER,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, types(Lex(tt.input))); diff != "" {
				t.Fatalf("types mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func types(tokens []token.Token) []token.TokenType {
	out := make([]token.TokenType, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}
