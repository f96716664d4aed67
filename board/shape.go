package board

import "slices"

// Shape is a small row-major cell pattern. The catalog shapes are
// immutable templates; the active piece works on its own copy and
// replaces it wholesale on rotation.
type Shape struct {
	rows, cols int
	cells      []Cell
}

func (s Shape) Rows() int { return s.rows }
func (s Shape) Cols() int { return s.cols }

// At panics when row or col is outside the shape, which is a
// programmer error rather than an expected condition.
func (s Shape) At(row, col int) Cell {
	if col < 0 || col >= s.cols {
		panic("shape column out of range")
	}
	return s.cells[row*s.cols+col]
}

// Rotated returns the shape turned 90 degrees clockwise: source
// columns become rows, within each taking the source rows bottom to
// top. All catalog shapes have square bounding boxes, so the
// dimensions carry over unchanged.
func (s Shape) Rotated() Shape {
	out := Shape{rows: s.rows, cols: s.cols, cells: make([]Cell, len(s.cells))}
	i := 0
	for c := range s.cols {
		for r := s.rows - 1; r >= 0; r-- {
			out.cells[i] = s.At(r, c)
			i++
		}
	}
	return out
}

// Cells returns the pattern as a fresh 2D copy for renderers.
func (s Shape) Cells() [][]Cell {
	out := make([][]Cell, s.rows)
	for r := range out {
		out[r] = slices.Clone(s.cells[r*s.cols : (r+1)*s.cols])
	}
	return out
}

func (s Shape) clone() Shape {
	return Shape{rows: s.rows, cols: s.cols, cells: slices.Clone(s.cells)}
}

/*
The canonical tetromino patterns, drawn with their own letter for the
occupied cells:

	I .I..   J .J.   L .L.   T .T.   O OO   S ...   Z ...
	  .I..     .J.     .L.     TTT     OO     .SS     ZZ.
	  .I..     JJ.     .LL     ...            SS.     .ZZ
	  .I..
*/
var catalog = [...]Shape{
	Empty: {rows: 1, cols: 1, cells: []Cell{Empty}},
	I: {rows: 4, cols: 4, cells: []Cell{
		Empty, I, Empty, Empty,
		Empty, I, Empty, Empty,
		Empty, I, Empty, Empty,
		Empty, I, Empty, Empty,
	}},
	J: {rows: 3, cols: 3, cells: []Cell{
		Empty, J, Empty,
		Empty, J, Empty,
		J, J, Empty,
	}},
	L: {rows: 3, cols: 3, cells: []Cell{
		Empty, L, Empty,
		Empty, L, Empty,
		Empty, L, L,
	}},
	T: {rows: 3, cols: 3, cells: []Cell{
		Empty, T, Empty,
		T, T, T,
		Empty, Empty, Empty,
	}},
	O: {rows: 2, cols: 2, cells: []Cell{
		O, O,
		O, O,
	}},
	S: {rows: 3, cols: 3, cells: []Cell{
		Empty, Empty, Empty,
		Empty, S, S,
		S, S, Empty,
	}},
	Z: {rows: 3, cols: 3, cells: []Cell{
		Empty, Empty, Empty,
		Z, Z, Empty,
		Empty, Z, Z,
	}},
}

// ShapeOf returns a working copy of the canonical shape for t.
func ShapeOf(t Cell) Shape { return catalog[t].clone() }
