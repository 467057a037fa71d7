package emitter

import (
	"strings"
	"testing"

	"github.com/koda-lang/koda/internal/koda/lexer"
	"github.com/koda-lang/koda/internal/koda/mangle"
	"github.com/koda-lang/koda/internal/koda/token"
)

func TestEmitSingleLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"call", `skriv("hej")`, `skriv ( "hej" )`},
		{"for loop", "för i = 1, 3 gör skriv(i) slut", "for i = 1 , 3 do skriv ( i ) end"},
		{"generic for", "för k, v i par(t) gör slut", "for k , v in par ( t ) do end"},
		{"swedish identifier", "lokal å = 7", "local __ao__ = 7"},
		{"host keyword as identifier", "lokal end = ingenting", "local " + mangle.Sentinel + "end = nil"},
		{"string untouched", `skriv("funktion")`, `skriv ( "funktion" )`},
		{"comment dropped", "x = 1 -- kommentar", "x = 1"},
		{"illegal dropped", "x = 1 @", "x = 1"},
		{"field named like keyword", "t.slut = sant", "t . slut = true"},
		{"if then", "om a eller b utför ge annars ge slut", "if a or b then return else return end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Emit(lexer.Lex(tt.input))
			if got != tt.want {
				t.Fatalf("Emit(%q)\nwant %q\ngot  %q", tt.input, tt.want, got)
			}
		})
	}
}

func TestEmitEveryKeyword(t *testing.T) {
	for swedish, typ := range token.Keywords() {
		host, ok := token.HostKeyword(typ)
		if !ok {
			t.Fatalf("keyword %q has no host keyword", swedish)
		}
		got := Emit([]token.Token{{Type: typ, Literal: swedish}})
		if got != host {
			t.Fatalf("keyword %q: want %q, got %q", swedish, host, got)
		}
	}
}

func TestEmitPreservesLines(t *testing.T) {
	input := "lokal x = 2 + 3\n\n--[[ två\nrader ]]\nskriv(x)"
	want := "local x = 2 + 3\n\n\n\nskriv ( x )"
	if got := Emit(lexer.Lex(input)); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestEmitMultilineStringAdvancesLine(t *testing.T) {
	input := "x = [[a\nb]]\ny = 1"
	want := "x = [[a\nb]]\ny = 1"
	if got := Emit(lexer.Lex(input)); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestEmitEmptyAndCommentOnly(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "-- bara kommentar", "--[[ a\nb ]]\n-- c"} {
		got := Emit(lexer.Lex(input))
		if strings.TrimSpace(got) != "" {
			t.Fatalf("Emit(%q) should be whitespace only, got %q", input, got)
		}
	}
}

func TestStringTransparency(t *testing.T) {
	literals := []string{`"hej"`, `'då'`, `"a\"b"`, `'\\'`, `"funktion slut"`, `"åäö\n"`, `[==[ ]] ]==]`}
	for _, lit := range literals {
		src := "x = " + lit + " .. y"
		got := Emit(lexer.Lex(src))
		if !strings.Contains(got, lit) {
			t.Fatalf("string literal %q not preserved in %q", lit, got)
		}
	}
}

func TestCommentIrrelevance(t *testing.T) {
	with := "lokal a = 1 -- ett\n--[[ block\n]] skriv(a) -- två"
	without := "lokal a = 1\n\n skriv(a)"
	if Emit(lexer.Lex(with)) != Emit(lexer.Lex(without)) {
		t.Fatalf("comments changed the output:\n%q\n%q", Emit(lexer.Lex(with)), Emit(lexer.Lex(without)))
	}
}
