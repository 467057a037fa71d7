package diff

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerateReindentedLine(t *testing.T) {
	before := []byte("om x utför\nskriv(1)\nslut\n")
	after := []byte("om x utför\n    skriv(1)\nslut\n")

	got := Generate(before, after, 0)
	want := []Line{
		{Kind: KindDel, Text: "skriv(1)", BeforeLine: 2},
		{Kind: KindAdd, Text: "    skriv(1)", AfterLine: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected lines (-want +got):\n%s", diff)
	}

	full := Generate(before, after, -1)
	if len(full) != 4 || full[0].Kind != KindContext || full[3].Kind != KindContext {
		t.Fatalf("expected context on both sides, got %+v", full)
	}
}

func TestGenerateIdenticalInputs(t *testing.T) {
	src := []byte("skriv(1)\n")
	if got := Generate(src, src, 3); got != nil {
		t.Fatalf("expected no lines, got %+v", got)
	}
	if got := Generate(src, src, -1); got != nil {
		t.Fatalf("expected no lines with full context, got %+v", got)
	}
	if got := Generate([]byte("a\x00b"), src, 3); got != nil {
		t.Fatalf("binary input should not be diffed, got %+v", got)
	}
}

func TestFormatProducesAsciiTable(t *testing.T) {
	lines := []Line{
		{Kind: KindDel, Text: "skriv(1)", BeforeLine: 2},
		{Kind: KindAdd, Text: "    skriv(1)", AfterLine: 2},
	}

	want := strings.Join([]string{
		"  +----+----------------+",
		"  | x.kod (@@ -2 +2 @@) |",
		"  +----+----------------+",
		"  | -2 | skriv(1)       |",
		"  | +2 |     skriv(1)   |",
		"  +----+----------------+",
	}, "\n") + "\n"

	plain := Format("x.kod", lines, false)
	if plain != want {
		t.Fatalf("unexpected table.\nwant:\n%s\ngot:\n%s", want, plain)
	}

	colored := Format("x.kod", lines, true)
	if !strings.Contains(colored, redColor) || !strings.Contains(colored, greenColor) {
		t.Fatalf("expected colour codes in %q", colored)
	}
	if stripANSI(colored) != want {
		t.Fatalf("colours should not change the layout:\n%s", stripANSI(colored))
	}
}

func TestFormatEmptyLines(t *testing.T) {
	if got := Format("any", nil, true); got != "" {
		t.Fatalf("expected empty format for nil lines, got %q", got)
	}
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
