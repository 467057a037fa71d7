// Package diff renders line differences between two versions of a source file.
package diff

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	redColor   = "\033[31m"
	greenColor = "\033[32m"
	resetColor = "\033[0m"
)

// Kind tells whether a line is shared, removed or added.
type Kind string

const (
	KindContext Kind = "context"
	KindDel     Kind = "del"
	KindAdd     Kind = "add"
)

// Line is one row of a diff. BeforeLine and AfterLine are 1-based and zero
// when the line does not exist on that side.
type Line struct {
	Kind       Kind
	Text       string
	BeforeLine int
	AfterLine  int
}

// Generate computes the line diff from before to after. Context limits the
// unchanged lines kept around each change; a negative value keeps them all.
// Identical inputs yield nil.
func Generate(before, after []byte, context int) []Line {
	if looksBinary(before) || looksBinary(after) {
		return nil
	}
	full := fullLines(before, after)
	if context < 0 {
		if !hasChange(full) {
			return nil
		}
		return full
	}
	return trimContext(full, context)
}

// Format draws lines as a table headed by path. Removed lines are red and
// added lines green when color is set.
func Format(path string, lines []Line, color bool) string {
	if len(lines) == 0 {
		return ""
	}

	firstBefore, firstAfter := headerLineNumbers(lines)
	header := fmt.Sprintf("%s (@@ -%d +%d @@)", path, firstBefore, firstAfter)

	type row struct {
		number, plainNumber string
		text, plainText     string
	}

	rows := make([]row, 0, len(lines))
	numberWidth, textWidth := 2, 0
	for _, line := range lines {
		plainNumber := lineNumber(line)
		r := row{number: plainNumber, plainNumber: plainNumber, text: line.Text, plainText: line.Text}
		if color {
			if c := colorFor(line.Kind); c != "" {
				r.number = c + plainNumber + resetColor
				r.text = c + line.Text + resetColor
			}
		}
		rows = append(rows, r)
		numberWidth = max(numberWidth, visibleLength(plainNumber))
		textWidth = max(textWidth, visibleLength(line.Text))
	}

	innerWidth := numberWidth + textWidth + 3
	if headerLen := visibleLength(header); headerLen > innerWidth {
		textWidth += headerLen - innerWidth
		innerWidth = headerLen
	}

	var b strings.Builder
	border := borderLine(numberWidth, textWidth)
	b.WriteString(border)
	b.WriteString("  | " + pad(header, header, innerWidth, false) + " |\n")
	b.WriteString(border)
	for _, r := range rows {
		b.WriteString("  | ")
		b.WriteString(pad(r.number, r.plainNumber, numberWidth, true))
		b.WriteString(" | ")
		b.WriteString(pad(r.text, r.plainText, textWidth, false))
		b.WriteString(" |\n")
	}
	b.WriteString(border)
	return b.String()
}

func fullLines(before, after []byte) []Line {
	a := splitLines(before)
	b := splitLines(after)

	m, n := len(a), len(b)
	lcs := make([][]int, m+1)
	for i := range lcs {
		lcs[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			switch {
			case a[i] == b[j]:
				lcs[i][j] = lcs[i+1][j+1] + 1
			case lcs[i+1][j] >= lcs[i][j+1]:
				lcs[i][j] = lcs[i+1][j]
			default:
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var lines []Line
	i, j := 0, 0
	for i < m || j < n {
		switch {
		case i < m && j < n && a[i] == b[j]:
			lines = append(lines, Line{Kind: KindContext, Text: a[i], BeforeLine: i + 1, AfterLine: j + 1})
			i++
			j++
		case i < m && (j == n || lcs[i+1][j] >= lcs[i][j+1]):
			lines = append(lines, Line{Kind: KindDel, Text: a[i], BeforeLine: i + 1})
			i++
		default:
			lines = append(lines, Line{Kind: KindAdd, Text: b[j], AfterLine: j + 1})
			j++
		}
	}
	return lines
}

func hasChange(lines []Line) bool {
	for _, line := range lines {
		if line.Kind != KindContext {
			return true
		}
	}
	return false
}

func trimContext(lines []Line, context int) []Line {
	keep := make([]bool, len(lines))
	for idx, line := range lines {
		if line.Kind == KindContext {
			continue
		}
		for k := max(0, idx-context); k < min(len(lines), idx+context+1); k++ {
			keep[k] = true
		}
	}
	var result []Line
	for idx, line := range lines {
		if keep[idx] {
			result = append(result, line)
		}
	}
	return result
}

func splitLines(content []byte) []string {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func looksBinary(data []byte) bool {
	const sample = 200
	for i, b := range data {
		if i >= sample {
			break
		}
		if b == 0 {
			return true
		}
	}
	return false
}

func headerLineNumbers(lines []Line) (int, int) {
	first, second := 0, 0
	for _, line := range lines {
		if first == 0 && line.BeforeLine > 0 {
			first = line.BeforeLine
		}
		if second == 0 && line.AfterLine > 0 {
			second = line.AfterLine
		}
	}
	return max(first, 1), max(second, 1)
}

func lineNumber(line Line) string {
	switch line.Kind {
	case KindDel:
		return fmt.Sprintf("-%d", line.BeforeLine)
	case KindAdd:
		return fmt.Sprintf("+%d", line.AfterLine)
	default:
		return fmt.Sprintf("%d", line.BeforeLine)
	}
}

func colorFor(kind Kind) string {
	switch kind {
	case KindDel:
		return redColor
	case KindAdd:
		return greenColor
	}
	return ""
}

func borderLine(numberWidth, textWidth int) string {
	return "  +" + strings.Repeat("-", numberWidth+2) + "+" + strings.Repeat("-", textWidth+2) + "+\n"
}

func pad(display, plain string, width int, alignRight bool) string {
	fill := strings.Repeat(" ", max(0, width-visibleLength(plain)))
	if alignRight {
		return fill + display
	}
	return display + fill
}

func visibleLength(s string) int {
	return utf8.RuneCountInString(s)
}
