// Package layout implements the layout/layer engine (spec §4.5): it
// resolves key presses against a static per-layer table into Actions,
// tracks the resulting ActiveState stack, and derives the current layer
// as a saturating sum of active layer modifiers.
package layout

import (
	"fmt"

	"quickdraw/internal/action"
)

// Table is the static LayerTable: Layers[layer][row][col]. It is built
// once (by hand or by the layoutdsl compiler) and never mutated at
// runtime, per §9 "entire layer universe is compile-time constant ...
// no allocation per event".
type Table struct {
	layers [][][]action.Action
	rows   uint8
	cols   uint8
}

// NewTable allocates a table of numLayers layers, each rows x cols,
// every cell initialized to NoOp until Set is called.
func NewTable(numLayers int, rows, cols uint8) (*Table, error) {
	if numLayers <= 0 {
		return nil, fmt.Errorf("layout: numLayers must be > 0")
	}
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("layout: table must have at least one row and column")
	}
	t := &Table{
		layers: make([][][]action.Action, numLayers),
		rows:   rows,
		cols:   cols,
	}
	for l := range t.layers {
		t.layers[l] = make([][]action.Action, rows)
		for r := range t.layers[l] {
			t.layers[l][r] = make([]action.Action, cols)
		}
	}
	return t, nil
}

// NumLayers reports the table's layer count.
func (t *Table) NumLayers() int { return len(t.layers) }

// Set writes the action at (layer, row, col). Out-of-bounds writes are a
// programmer error (compile-time table construction), so Set panics
// rather than returning an error the caller would have to check on every
// line of a generated table.
func (t *Table) Set(layer int, row, col uint8, a action.Action) {
	t.layers[layer][row][col] = a
}

// Get returns the action at (layer, row, col) and whether the coordinate
// was in bounds. An out-of-bounds coordinate is the §7 "Coord out of
// table bounds" case and is reported as absent (ok=false) so the caller
// can treat it as NoOp.
func (t *Table) Get(layer int, row, col uint8) (action.Action, bool) {
	if layer < 0 || layer >= len(t.layers) || row >= t.rows || col >= t.cols {
		return action.Action{}, false
	}
	return t.layers[layer][row][col], true
}
