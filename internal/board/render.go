package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Glyph is what a player sees in a cell:
//
//   - 0 to 8 mean the cell is revealed; 0 is a blank cell, anything
//     else is a neighbour mine count.
//
//   - -2 means the cell is still hidden.
//
//   - 64 means the cell holds a mine which is being shown.
type Glyph int8

const (
	Hidden    Glyph = -2
	Blank     Glyph = 0
	MineGlyph Glyph = 64
)

const cellWidth = 7

func (g Glyph) String() string {
	switch {
	case g == Hidden:
		return "*"
	case g == MineGlyph:
		return "Mine"
	case g == Blank:
		return "Empty"
	case 1 <= g && g <= 8:
		return strconv.Itoa(int(g))
	default:
		return "!"
	}
}

// Classify turns a cell state into a glyph. With showMines set, mines
// are shown even while hidden.
func Classify(s CellState, showMines bool) Glyph {
	switch {
	case showMines && s.Cell.IsMine():
		return MineGlyph
	case !s.Revealed:
		return Hidden
	case s.Cell.IsMine():
		return MineGlyph
	default:
		return Glyph(s.Cell.Count())
	}
}

type View []Glyph

func (b *Board) View(showMines bool) View {
	view := make(View, len(b.cells))
	for i, s := range b.cells {
		view[i] = Classify(s, showMines)
	}
	return view
}

func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad/2) + s + strings.Repeat(" ", pad-pad/2)
}

// ToString lays out the view in rows of stride cells, each cell padded to
// a fixed width.
func (v View) ToString(stride int) string {
	var b strings.Builder
	if stride <= 0 {
		return ""
	}
	for y := range len(v) / stride {
		for x := range stride {
			fmt.Fprint(&b, center(v[y*stride+x].String(), cellWidth))
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

func (b *Board) Render(showMines bool) string {
	return b.View(showMines).ToString(b.stride())
}
