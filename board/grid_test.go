package board

import (
	"reflect"
	"testing"
)

func TestFullRows(t *testing.T) {
	g := NewGrid(21, 10)
	for _, row := range []int{2, 5} {
		for c := range 10 {
			g.set(row, c, J)
		}
	}
	// almost-full rows don't count
	for c := range 9 {
		g.set(8, c, T)
	}

	if got, want := g.FullRows(), []int{2, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("wanted full rows %v, got %v", want, got)
	}
}

func TestFullRowsEmptyGrid(t *testing.T) {
	if got := NewGrid(21, 10).FullRows(); got != nil {
		t.Errorf("wanted no full rows, got %v", got)
	}
}

func TestClearRows(t *testing.T) {
	// Rows 2 and 5 are completely filled; marker cells identify the
	// other rows so the shift can be verified.
	g := NewGrid(21, 10)
	for _, row := range []int{2, 5} {
		for c := range 10 {
			g.set(row, c, J)
		}
	}
	g.set(0, 0, I)
	g.set(3, 1, L)
	g.set(4, 2, T)
	g.set(6, 3, S)

	g.ClearRows([]int{2, 5})

	want := NewGrid(21, 10)
	want.set(2, 0, I) // old row 0
	want.set(4, 1, L) // old row 3
	want.set(5, 2, T) // old row 4
	want.set(6, 3, S) // old row 6 stays put
	if !reflect.DeepEqual(g, want) {
		t.Errorf("wanted %v, got %v", want, g)
	}
	for c := range 10 {
		if g.At(0, c) != Empty || g.At(1, c) != Empty {
			t.Fatalf("wanted rows 0 and 1 empty after clearing two rows")
		}
	}
}

func TestClearRowsKeepsDimensions(t *testing.T) {
	g := NewGrid(21, 10)
	for c := range 10 {
		g.set(20, c, Z)
	}
	g.ClearRows([]int{20})
	if g.Rows() != 21 || g.Cols() != 10 {
		t.Errorf("wanted 21x10 grid, got %dx%d", g.Rows(), g.Cols())
	}
	if len(g.cells) != 210 {
		t.Errorf("wanted 210 cells, got %d", len(g.cells))
	}
}
