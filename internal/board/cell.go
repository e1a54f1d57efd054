package board

import "strconv"

type Kind int8

const (
	KindEmpty Kind = iota
	KindMine
	KindNearMine
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindMine:
		return "mine"
	case KindNearMine:
		return "near_mine"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Cell is one of Empty, Mine or NearMine(n) with n in [1, 8]. The zero
// value is Empty.
type Cell struct {
	kind  Kind
	count int8
}

func Empty() Cell {
	return Cell{kind: KindEmpty}
}

func Mine() Cell {
	return Cell{kind: KindMine}
}

func NearMine(count int) Cell {
	return Cell{kind: KindNearMine, count: int8(count)}
}

func (c Cell) Kind() Kind {
	return c.kind
}

// Count is the number of neighbouring mines; zero unless the cell is
// NearMine.
func (c Cell) Count() int {
	return int(c.count)
}

func (c Cell) IsMine() bool {
	return c.kind == KindMine
}

func (c Cell) String() string {
	switch c.kind {
	case KindMine:
		return "Mine"
	case KindNearMine:
		return strconv.Itoa(int(c.count))
	default:
		return "Empty"
	}
}

type CellState struct {
	Revealed bool
	Cell     Cell
}
