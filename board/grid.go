package board

import "slices"

// Grid is the playfield: rows x cols cells in row-major order, row 0
// at the top. Dimensions are fixed for the lifetime of a game.
type Grid struct {
	rows, cols int
	cells      []Cell
}

func NewGrid(rows, cols int) *Grid {
	return &Grid{rows: rows, cols: cols, cells: make([]Cell, rows*cols)}
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// At panics when row or col is outside the grid. Callers run the
// legality predicates first, so an out-of-range access here is a
// programmer error and fails fast.
func (g *Grid) At(row, col int) Cell {
	if col < 0 || col >= g.cols {
		panic("grid column out of range")
	}
	return g.cells[row*g.cols+col]
}

func (g *Grid) set(row, col int, c Cell) {
	if col < 0 || col >= g.cols {
		panic("grid column out of range")
	}
	g.cells[row*g.cols+col] = c
}

// FullRows returns the indices of rows with no Empty cell, in
// ascending order.
func (g *Grid) FullRows() []int {
	var full []int
	for r := range g.rows {
		complete := true
		for c := range g.cols {
			if g.At(r, c) == Empty {
				complete = false
				break
			}
		}
		if complete {
			full = append(full, r)
		}
	}
	return full
}

// ClearRows removes the given rows and prepends as many empty rows at
// the top, preserving the relative order of the remaining rows.
func (g *Grid) ClearRows(rows []int) {
	cleared := make(map[int]bool, len(rows))
	for _, r := range rows {
		cleared[r] = true
	}
	fresh := make([]Cell, len(cleared)*g.cols, len(g.cells))
	for r := range g.rows {
		if cleared[r] {
			continue
		}
		fresh = append(fresh, g.cells[r*g.cols:(r+1)*g.cols]...)
	}
	g.cells = fresh
}

func (g *Grid) rowsCopy() [][]Cell {
	out := make([][]Cell, g.rows)
	for r := range out {
		out[r] = slices.Clone(g.cells[r*g.cols : (r+1)*g.cols])
	}
	return out
}
