// Package board contains the falling-block board simulation: the grid,
// the piece catalog, movement and rotation legality, line clearing,
// scoring and the game state machine that ties them together.
package board

import "fmt"

// Cell is the content of a single grid or shape position.
// The zero value is Empty.
type Cell uint8

const (
	Empty Cell = iota
	I
	J
	L
	T
	O
	S
	Z
)

// PieceTypes lists every spawnable piece. Empty is a placeholder
// and is never drawn.
var PieceTypes = [7]Cell{I, J, L, T, O, S, Z}

var cellNames = [...]string{"", "I", "J", "L", "T", "O", "S", "Z"}

func (c Cell) String() string {
	if int(c) < len(cellNames) {
		return cellNames[c]
	}
	return fmt.Sprintf("Cell(%d)", uint8(c))
}

// MarshalText writes the piece letter, or nothing for Empty, so that
// persisted grids read as letters instead of raw ordinals.
func (c Cell) MarshalText() ([]byte, error) {
	if int(c) >= len(cellNames) {
		return nil, fmt.Errorf("invalid cell %d", uint8(c))
	}
	return []byte(cellNames[c]), nil
}

func (c *Cell) UnmarshalText(text []byte) error {
	for i, name := range cellNames {
		if string(text) == name {
			*c = Cell(i)
			return nil
		}
	}
	return fmt.Errorf("invalid cell %q", text)
}
