package layoutdsl

import (
	"fmt"
	"strconv"
	"strings"

	"quickdraw/internal/action"
	"quickdraw/internal/layout"
)

// Compile parses source (one blank-line-separated block per layer, one
// line per row, space-separated tokens per column) into a layout.Table
// sized rows x cols.
//
// Mirrors the teacher's assembler pipeline shape: splitBlocks/scanTokens
// is the first pass (structure only), resolveToken is the second pass
// (semantic resolution into Actions).
func Compile(source string, rows, cols uint8) (*layout.Table, error) {
	blocks := splitBlocks(source)
	if len(blocks) == 0 {
		return nil, fmt.Errorf("layoutdsl: source has no layer blocks")
	}
	table, err := layout.NewTable(len(blocks), rows, cols)
	if err != nil {
		return nil, err
	}
	for layerIdx, block := range blocks {
		if len(block) != int(rows) {
			return nil, fmt.Errorf("layoutdsl: layer %d has %d rows, want %d", layerIdx, len(block), rows)
		}
		for rowIdx, line := range block {
			toks, err := scanTokens(line)
			if err != nil {
				return nil, fmt.Errorf("layoutdsl: layer %d row %d: %w", layerIdx, rowIdx, err)
			}
			if len(toks) != int(cols) {
				return nil, fmt.Errorf("layoutdsl: layer %d row %d has %d tokens, want %d", layerIdx, rowIdx, len(toks), cols)
			}
			for colIdx, tok := range toks {
				a, err := resolveToken(tok)
				if err != nil {
					return nil, fmt.Errorf("layoutdsl: layer %d row %d col %d: %w", layerIdx, rowIdx, colIdx, err)
				}
				table.Set(layerIdx, uint8(rowIdx), uint8(colIdx), a)
			}
		}
	}
	return table, nil
}

// resolveToken resolves one already-delimited token into an Action.
func resolveToken(tok string) (action.Action, error) {
	if tok == "" {
		return action.Action{}, fmt.Errorf("empty token")
	}
	switch tok[0] {
	case '(':
		inner := strings.TrimSuffix(strings.TrimPrefix(tok, "("), ")")
		n, err := strconv.Atoi(strings.TrimSpace(inner))
		if err != nil {
			return action.Action{}, fmt.Errorf("bad layer reference %q: %w", tok, err)
		}
		return action.Layer(n), nil
	case '[':
		inner := strings.TrimSuffix(strings.TrimPrefix(tok, "["), "]")
		subtoks, err := scanTokens(inner)
		if err != nil {
			return action.Action{}, err
		}
		actions := make([]action.Action, 0, len(subtoks))
		for _, st := range subtoks {
			a, err := resolveToken(st)
			if err != nil {
				return action.Action{}, err
			}
			actions = append(actions, a)
		}
		return action.Seq(actions...), nil
	case '{':
		inner := strings.TrimSuffix(strings.TrimPrefix(tok, "{"), "}")
		return resolveBraceExpr(strings.TrimSpace(inner))
	case '"':
		inner := strings.TrimSuffix(strings.TrimPrefix(tok, "\""), "\"")
		return resolveAtom(inner)
	default:
		return resolveAtom(tok)
	}
}

// resolveBraceExpr resolves a braced "verbatim Action expression" (§4.8).
// This notation is a host-language escape hatch in the source material;
// here it supports the constructs an action expression actually needs
// beyond the bare/bracketed forms: KC:<name>, DefaultLayer:<n>, and
// Custom:<token> (opaque to the core, see action.Custom).
func resolveBraceExpr(inner string) (action.Action, error) {
	name, arg, ok := strings.Cut(inner, ":")
	if !ok {
		return action.Action{}, fmt.Errorf("brace expression %q missing ':'", inner)
	}
	name = strings.TrimSpace(name)
	arg = strings.TrimSpace(arg)
	switch name {
	case "KC":
		k, ok := nameToKeycode[arg]
		if !ok {
			return action.Action{}, fmt.Errorf("unknown keycode %q in brace expression", arg)
		}
		return action.KC(k), nil
	case "DefaultLayer":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return action.Action{}, fmt.Errorf("bad DefaultLayer argument %q: %w", arg, err)
		}
		return action.DefaultLayer(n), nil
	case "Custom":
		return action.Custom(arg), nil
	}
	return action.Action{}, fmt.Errorf("unsupported brace expression form %q", name)
}

// resolveAtom resolves a bare or quoted single atom: "n", "t", a bare
// keycode name, a bare digit/punctuation character, or a shifted symbol.
func resolveAtom(s string) (action.Action, error) {
	switch s {
	case "n":
		return action.NoOp(), nil
	case "t":
		return action.Trans(), nil
	}
	if k, ok := nameToKeycode[s]; ok {
		return action.KC(k), nil
	}
	if len([]rune(s)) == 1 {
		r := []rune(s)[0]
		if k, ok := digitKeycode(r); ok {
			return action.KC(k), nil
		}
		if base, ok := shiftedPunctuation[r]; ok {
			return action.Multi(nameToKeycode["LShift"], base), nil
		}
		if k, ok := punctuation[r]; ok {
			return action.KC(k), nil
		}
	}
	return action.Action{}, fmt.Errorf("unknown atom %q", s)
}
