package linter

import (
	"github.com/koda-lang/koda/internal/koda/token"
	"github.com/koda-lang/koda/internal/prelude"
)

// luaGlobals are the names the interpreter provides without the prelude.
var luaGlobals = []string{
	"_G", "_VERSION", "assert", "collectgarbage", "coroutine", "debug", "dofile",
	"error", "getfenv", "getmetatable", "io", "ipairs", "load", "loadfile",
	"loadstring", "math", "module", "next", "os", "package", "pairs", "pcall",
	"print", "rawequal", "rawget", "rawset", "require", "select", "self",
	"setfenv", "setmetatable", "string", "table", "tonumber", "tostring",
	"type", "unpack", "xpcall",
	"_FILENAME", "_PARAMETERS", "_FILNAMN", "_PARAMETRAR",
	"skriv", "fråga", "öppna", "_TOKENS",
}

type undefinedGlobal struct {
	name string
	line int
}

// checkUndefinedGlobals reports names that are read but never bound by an
// assignment, a declaration, a loop header or a parameter list. Each name is
// reported once, at its first use.
func checkUndefinedGlobals(tokens []token.Token) []undefinedGlobal {
	code := significant(tokens)
	known := knownNames()
	defined := make(map[string]struct{})
	for _, name := range definedNames(code) {
		defined[name] = struct{}{}
	}

	reported := make(map[string]struct{})
	var out []undefinedGlobal
	braces := 0
	for i, tok := range code {
		switch tok.Type {
		case token.LBRACE:
			braces++
		case token.RBRACE:
			braces--
		}
		if tok.Type != token.IDENT || isField(code, i) || (braces > 0 && isTableKey(code, i)) {
			continue
		}
		if _, ok := known[tok.Literal]; ok {
			continue
		}
		if _, ok := defined[tok.Literal]; ok {
			continue
		}
		if _, ok := reported[tok.Literal]; ok {
			continue
		}
		reported[tok.Literal] = struct{}{}
		out = append(out, undefinedGlobal{name: tok.Literal, line: tok.Line})
	}
	return out
}

func knownNames() map[string]struct{} {
	known := make(map[string]struct{}, len(luaGlobals)+64)
	for _, name := range luaGlobals {
		known[name] = struct{}{}
	}
	if aliases, err := prelude.Aliases(); err == nil {
		for _, a := range aliases {
			known[a.Name] = struct{}{}
		}
	}
	return known
}

func definedNames(code []token.Token) []string {
	var names []string
	braces := 0
	for i, tok := range code {
		switch tok.Type {
		case token.LBRACE:
			braces++
		case token.RBRACE:
			braces--
		case token.LOCAL, token.FOR:
			names = append(names, nameList(code, i+1)...)
		case token.FUNCTION:
			j := i + 1
			if j < len(code) && code[j].Type == token.IDENT {
				names = append(names, code[j].Literal)
				for j+2 < len(code) && (code[j+1].Type == token.DOT || code[j+1].Type == token.COLON) {
					j += 2
				}
				j++
			}
			if j < len(code) && code[j].Type == token.LPAREN {
				names = append(names, nameList(code, j+1)...)
			}
		case token.ASSIGN:
			if braces == 0 {
				names = append(names, assignmentTargets(code, i)...)
			}
		}
	}
	return names
}

// nameList collects "name {, name}" starting at code[i].
func nameList(code []token.Token, i int) []string {
	var names []string
	for i < len(code) && code[i].Type == token.IDENT {
		names = append(names, code[i].Literal)
		if i+1 >= len(code) || code[i+1].Type != token.COMMA {
			break
		}
		i += 2
	}
	return names
}

// assignmentTargets walks back from an "=" over "a, b" and collects plain
// names. Field targets such as t.x are skipped.
func assignmentTargets(code []token.Token, assign int) []string {
	var names []string
	for j := assign - 1; j >= 0 && code[j].Type == token.IDENT; j -= 2 {
		if isField(code, j) {
			break
		}
		names = append(names, code[j].Literal)
		if j == 0 || code[j-1].Type != token.COMMA {
			break
		}
	}
	return names
}

func isField(code []token.Token, i int) bool {
	return i > 0 && (code[i-1].Type == token.DOT || code[i-1].Type == token.COLON)
}

func isTableKey(code []token.Token, i int) bool {
	return i+1 < len(code) && code[i+1].Type == token.ASSIGN
}

func significant(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type != token.COMMENT && tok.Type != token.ILLEGAL {
			out = append(out, tok)
		}
	}
	return out
}
