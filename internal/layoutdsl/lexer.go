// Package layoutdsl compiles the concise layout macro notation of spec
// §4.8 into a layout.Table.
//
// Grounded on the teacher's internal/asm/assembler.go two-pass pipeline
// (parse -> firstPass -> secondPass, a statement struct carrying
// per-line fields) and on internal/corelx/lexer.go's line-oriented,
// delimiter-driven token scanning.
package layoutdsl

import (
	"fmt"
	"strings"
)

// scanTokens splits one row's text into tokens, honoring the structural
// delimiters of §4.8's notation: "(N)" layer references, "[...]"
// bracketed lists, "{...}" brace expressions, and "..." quoted atoms.
// Brackets and braces are not required to nest for this notation, but
// scanTokens tracks depth so a nested "[...]" inside a "[...]" does not
// terminate early.
func scanTokens(line string) ([]string, error) {
	var toks []string
	r := []rune(line)
	i := 0
	for i < len(r) {
		if isSpace(r[i]) {
			i++
			continue
		}
		switch r[i] {
		case '(':
			j, err := matchDelim(r, i, '(', ')')
			if err != nil {
				return nil, err
			}
			toks = append(toks, string(r[i:j+1]))
			i = j + 1
		case '[':
			j, err := matchDelim(r, i, '[', ']')
			if err != nil {
				return nil, err
			}
			toks = append(toks, string(r[i:j+1]))
			i = j + 1
		case '{':
			j, err := matchDelim(r, i, '{', '}')
			if err != nil {
				return nil, err
			}
			toks = append(toks, string(r[i:j+1]))
			i = j + 1
		case '"':
			j := i + 1
			for j < len(r) && r[j] != '"' {
				j++
			}
			if j >= len(r) {
				return nil, fmt.Errorf("layoutdsl: unterminated quote starting at %q", string(r[i:]))
			}
			toks = append(toks, string(r[i:j+1]))
			i = j + 1
		default:
			j := i
			for j < len(r) && !isSpace(r[j]) && !isDelim(r[j]) {
				j++
			}
			if j == i {
				return nil, fmt.Errorf("layoutdsl: unexpected character %q", string(r[i]))
			}
			toks = append(toks, string(r[i:j]))
			i = j
		}
	}
	return toks, nil
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }

func isDelim(r rune) bool {
	return r == '(' || r == ')' || r == '[' || r == ']' || r == '{' || r == '}' || r == '"'
}

// matchDelim finds the index of the close delimiter matching the open
// delimiter at r[i], tracking nesting depth of the same pair.
func matchDelim(r []rune, i int, open, close rune) (int, error) {
	depth := 0
	for j := i; j < len(r); j++ {
		switch r[j] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}
	return 0, fmt.Errorf("layoutdsl: unterminated %q starting at %q", string(open), string(r[i:]))
}

// splitBlocks splits source into layer blocks, one per blank-line-
// separated group of rows, in source order (block index = layer index).
func splitBlocks(source string) [][]string {
	var blocks [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, current)
			current = nil
		}
	}
	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(trimmed) == "" {
			flush()
			continue
		}
		current = append(current, trimmed)
	}
	flush()
	return blocks
}
