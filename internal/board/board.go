package board

import "iter"

const defaultMineChance = 0.2

// Board is a width x height field surrounded by a one cell border, stored
// row-major in a single slice. Border cells are always revealed and
// Empty. A Board is not safe for concurrent use.
type Board struct {
	width      int
	height     int
	seed       *uint64
	mineChance float64
	cells      []CellState
}

// New does not allocate the grid; call Generate before anything else.
// A nil seed draws mines from process entropy.
func New(width, height int, seed *uint64) *Board {
	if seed != nil {
		s := *seed
		seed = &s
	}
	return &Board{
		width:      width,
		height:     height,
		seed:       seed,
		mineChance: defaultMineChance,
	}
}

func (b *Board) Width() int {
	return b.width
}

func (b *Board) Height() int {
	return b.height
}

func (b *Board) Seed() (seed uint64, ok bool) {
	if b.seed == nil {
		return 0, false
	}
	return *b.seed, true
}

// Len is the length of the generated grid, border included.
func (b *Board) Len() int {
	return (b.width + 2) * (b.height + 2)
}

func (b *Board) Generated() bool {
	return b.cells != nil
}

func (b *Board) stride() int {
	return b.width + 2
}

func (b *Board) isBorder(index int) bool {
	var (
		stride = b.stride()
		col    = index % stride
	)
	if col == 0 || col == stride-1 {
		return true
	}
	return index < stride || index >= b.Len()-stride
}

// Generate replaces the whole grid. Interior cells become mines with a
// fixed probability; the rest get their neighbour counts.
func (b *Board) Generate() {
	var (
		r     = newRand(b.seed)
		cells = make([]CellState, b.Len())
	)
	for i := range cells {
		switch {
		case b.isBorder(i):
			cells[i] = CellState{Revealed: true, Cell: Empty()}
		case r.Float64() < b.mineChance:
			cells[i] = CellState{Revealed: false, Cell: Mine()}
		default:
			cells[i] = CellState{Revealed: true, Cell: Empty()}
		}
	}
	b.cells = cells
	b.countMines()
}

// countMines turns every interior non-mine cell next to a mine into a
// hidden NearMine. Mines and cells with no mine around are left alone.
func (b *Board) countMines() {
	for i := range b.cells {
		if b.isBorder(i) || b.cells[i].Cell.IsMine() {
			continue
		}
		count, ok := b.minesAround(i)
		switch {
		case !ok:
			b.cells[i] = CellState{Revealed: false, Cell: Empty()}
		case count > 0:
			b.cells[i] = CellState{Revealed: false, Cell: NearMine(count)}
		}
	}
}

// Reveal marks the cell at index as revealed. It never cascades to the
// neighbours. Panics if index is outside the grid.
func (b *Board) Reveal(index int) CellState {
	b.cells[index].Revealed = true
	return b.cells[index]
}

// At panics if index is outside the grid.
func (b *Board) At(index int) CellState {
	return b.cells[index]
}

func (b *Board) Cells() []CellState {
	cells := make([]CellState, len(b.cells))
	copy(cells, b.cells)
	return cells
}

// Rows yields every row of the grid, border rows included.
func (b *Board) Rows() iter.Seq2[int, []CellState] {
	return func(yield func(int, []CellState) bool) {
		stride := b.stride()
		if stride <= 0 {
			return
		}
		for y := 0; (y+1)*stride <= len(b.cells); y++ {
			if !yield(y, b.cells[y*stride:(y+1)*stride]) {
				return
			}
		}
	}
}
