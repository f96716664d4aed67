package board

// Snapshot is a value copy of everything a renderer needs: placed
// cells, the active piece overlay and the status. It shares no memory
// with the live board.
type Snapshot struct {
	Rows, Cols int
	Cells      [][]Cell
	Piece      PieceView
	Status     Status
}

// PieceView is the active piece as seen from outside the board.
type PieceView struct {
	Type  Cell
	Cells [][]Cell
	X, Y  int
}

func (b *Board) Snapshot() Snapshot {
	return Snapshot{
		Rows:  b.grid.rows,
		Cols:  b.grid.cols,
		Cells: b.grid.rowsCopy(),
		Piece: PieceView{
			Type:  b.piece.Type,
			Cells: b.piece.Shape.Cells(),
			X:     b.piece.X,
			Y:     b.piece.Y,
		},
		Status: b.status,
	}
}

// At returns the cell at (row, col) with the active piece overlaid on
// the placed cells.
func (s Snapshot) At(row, col int) Cell {
	pr, pc := row-s.Piece.Y, col-s.Piece.X
	if pr >= 0 && pr < len(s.Piece.Cells) && pc >= 0 && pc < len(s.Piece.Cells[pr]) {
		if c := s.Piece.Cells[pr][pc]; c != Empty {
			return c
		}
	}
	return s.Cells[row][col]
}
