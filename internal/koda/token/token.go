package token

import "fmt"

// TokenType is a string representing the type of a token.
type TokenType string

// Token represents a single token in Koda source code.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
}

const (
	// Special tokens
	ILLEGAL = "ILLEGAL" // Unrecognised input, unterminated strings and comments
	EOF     = "EOF"     // End of file
	COMMENT = "COMMENT" // -- rad eller --[[ block ]]

	// Identifiers & Literals
	IDENT  = "IDENT"  // räknare, _hej
	NUMBER = "NUMBER" // 12, 3.14, 7.
	STRING = "STRING" // "hej", 'då', [[lång]]

	// Delimiters
	LPAREN    = "("
	RPAREN    = ")"
	LBRACE    = "{"
	RBRACE    = "}"
	LBRACKET  = "["
	RBRACKET  = "]"
	DOT       = "."
	COMMA     = ","
	COLON     = ":"
	SEMICOLON = ";"

	// Operators
	ASSIGN   = "="
	CONCAT   = ".."
	VARARGS  = "..."
	LENGTH   = "#"
	EQ       = "=="
	NOT_EQ   = "~="
	GT       = ">"
	LT       = "<"
	GTE      = ">="
	LTE      = "<="
	ASTERISK = "*"
	SLASH    = "/"
	PERCENT  = "%"
	PLUS     = "+"
	MINUS    = "-"
	CARET    = "^"

	// Keywords
	AND      = "AND"
	BREAK    = "BREAK"
	DO       = "DO"
	ELSE     = "ELSE"
	ELSEIF   = "ELSEIF"
	END      = "END"
	FALSE    = "FALSE"
	FOR      = "FOR"
	FUNCTION = "FUNCTION"
	IF       = "IF"
	IN       = "IN"
	LOCAL    = "LOCAL"
	NOT      = "NOT"
	OR       = "OR"
	REPEAT   = "REPEAT"
	RETURN   = "RETURN"
	TRUE     = "TRUE"
	UNTIL    = "UNTIL"
	WHILE    = "WHILE"
	THEN     = "THEN"
	NIL      = "NIL"
)

var keywords = map[string]TokenType{
	"och":       AND,
	"bryt":      BREAK,
	"gör":       DO,
	"annars":    ELSE,
	"annarsom":  ELSEIF,
	"slut":      END,
	"falskt":    FALSE,
	"för":       FOR,
	"funktion":  FUNCTION,
	"om":        IF,
	"i":         IN,
	"lokal":     LOCAL,
	"inte":      NOT,
	"eller":     OR,
	"upprepa":   REPEAT,
	"ge":        RETURN,
	"sant":      TRUE,
	"tills":     UNTIL,
	"medan":     WHILE,
	"utför":     THEN,
	"ingenting": NIL,
}

// hostKeywords maps each keyword type to the Lua keyword it is emitted as.
var hostKeywords = map[TokenType]string{
	AND:      "and",
	BREAK:    "break",
	DO:       "do",
	ELSE:     "else",
	ELSEIF:   "elseif",
	END:      "end",
	FALSE:    "false",
	FOR:      "for",
	FUNCTION: "function",
	IF:       "if",
	IN:       "in",
	LOCAL:    "local",
	NOT:      "not",
	OR:       "or",
	REPEAT:   "repeat",
	RETURN:   "return",
	TRUE:     "true",
	UNTIL:    "until",
	WHILE:    "while",
	THEN:     "then",
	NIL:      "nil",
}

// operators lists every punctuation and operator literal, longest first so a
// scanner can take the first prefix match.
var operators = []TokenType{
	VARARGS,
	CONCAT, EQ, NOT_EQ, GTE, LTE,
	LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET,
	DOT, COMMA, COLON, SEMICOLON, ASSIGN, LENGTH,
	GT, LT, ASTERISK, SLASH, PERCENT, PLUS, MINUS, CARET,
}

// LookupIdent checks the keywords table to see whether the given identifier is a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword reports whether the type is one of the Swedish keywords.
func IsKeyword(t TokenType) bool {
	_, ok := hostKeywords[t]
	return ok
}

// HostKeyword returns the Lua keyword for a keyword token type.
func HostKeyword(t TokenType) (string, bool) {
	kw, ok := hostKeywords[t]
	return kw, ok
}

// Keywords returns a copy of the Swedish keyword table.
func Keywords() map[string]TokenType {
	out := make(map[string]TokenType, len(keywords))
	for k, v := range keywords {
		out[k] = v
	}
	return out
}

// Operators returns the punctuation and operator types, longest literal first.
// The literal of an operator token is its type.
func Operators() []TokenType {
	return append([]TokenType(nil), operators...)
}

// IsOperator reports whether the type is punctuation or an operator.
func IsOperator(t TokenType) bool {
	for _, op := range operators {
		if op == t {
			return true
		}
	}
	return false
}

// String renders the token on one line for debug dumps.
func (t Token) String() string {
	return fmt.Sprintf("%d:%d\t%s\t%q", t.Line, t.Column, t.Type, t.Literal)
}
