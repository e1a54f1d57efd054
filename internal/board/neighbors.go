package board

func (b *Board) mineAt(index int) bool {
	if index < 0 || index >= len(b.cells) {
		return false
	}
	return b.cells[index].Cell.IsMine()
}

// minesAround counts mines among the 8 neighbours of index: left, right
// and the three cell spans directly above and below. ok is false when the
// span above would start before the grid.
func (b *Board) minesAround(index int) (count int, ok bool) {
	stride := b.stride()
	top := index - (stride + 1)
	if top < 0 {
		return 0, false
	}
	bottom := index + (stride - 1)

	if b.mineAt(index - 1) {
		count++
	}
	if b.mineAt(index + 1) {
		count++
	}
	for i := range 3 {
		if b.mineAt(top + i) {
			count++
		}
		if b.mineAt(bottom + i) {
			count++
		}
	}
	return count, true
}
