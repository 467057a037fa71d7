// Package mangle rewrites Koda identifiers into names Lua accepts and maps
// those names back for display.
//
// Swedish letters become double-underscore triplets and identifiers that end
// up equal to a Lua reserved word are prefixed with Sentinel.
package mangle

import (
	"strings"
)

// Sentinel prefixes identifiers that would otherwise be Lua reserved words.
const Sentinel = "__escaped_host_keyword__"

// HostKeywords are the words Lua refuses as identifiers.
var HostKeywords = []string{
	"and", "break", "do", "else", "elseif", "end", "false", "for",
	"function", "goto", "if", "in", "local", "nil", "not", "or",
	"repeat", "return", "then", "true", "until", "while",
}

var letters = []struct {
	swedish string
	ascii   string
}{
	{"å", "__ao__"},
	{"ä", "__ae__"},
	{"ö", "__oe__"},
	{"Å", "__AO__"},
	{"Ä", "__AE__"},
	{"Ö", "__OE__"},
}

var (
	toASCII   *strings.Replacer
	toSwedish *strings.Replacer
	reserved  = make(map[string]struct{}, len(HostKeywords))
)

func init() {
	forward := make([]string, 0, 2*len(letters))
	backward := make([]string, 0, 2*len(letters))
	for _, l := range letters {
		forward = append(forward, l.swedish, l.ascii)
		backward = append(backward, l.ascii, l.swedish)
	}
	toASCII = strings.NewReplacer(forward...)
	toSwedish = strings.NewReplacer(backward...)

	for _, kw := range HostKeywords {
		reserved[kw] = struct{}{}
	}
}

// Mangle returns the Lua-safe form of a Koda identifier.
func Mangle(identifier string) string {
	out := toASCII.Replace(identifier)
	if _, ok := reserved[out]; ok {
		return Sentinel + out
	}
	return out
}

// Demangle restores Swedish letters and strips escape sentinels anywhere in
// text, typically an interpreter message.
func Demangle(message string) string {
	return toSwedish.Replace(strings.ReplaceAll(message, Sentinel, ""))
}

// IsReserved reports whether an identifier collides with the escape sentinel
// once mangled. Such names cannot round-trip and are rejected.
func IsReserved(identifier string) bool {
	return strings.HasPrefix(toASCII.Replace(identifier), Sentinel)
}

// IsHostKeyword reports whether word is a Lua reserved word.
func IsHostKeyword(word string) bool {
	_, ok := reserved[word]
	return ok
}
