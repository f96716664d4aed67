package board

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
)

// SavedGame is the flat persisted form of a game in progress: the
// grid, the active piece and the status, plus an id so hosts can tell
// save files apart.
type SavedGame struct {
	ID     string     `json:"id"`
	Rows   int        `json:"rows"`
	Cols   int        `json:"cols"`
	Cells  []Cell     `json:"cells"`
	Piece  SavedPiece `json:"piece"`
	Status Status     `json:"status"`
}

type SavedPiece struct {
	Type     Cell   `json:"type"`
	Rows     int    `json:"rows"`
	Cols     int    `json:"cols"`
	Cells    []Cell `json:"cells"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Collided bool   `json:"collided"`
}

// Save serializes the board as JSON for a later Restore.
func (b *Board) Save() ([]byte, error) {
	s := SavedGame{
		ID:    uuid.NewString(),
		Rows:  b.grid.rows,
		Cols:  b.grid.cols,
		Cells: slices.Clone(b.grid.cells),
		Piece: SavedPiece{
			Type:     b.piece.Type,
			Rows:     b.piece.Shape.rows,
			Cols:     b.piece.Shape.cols,
			Cells:    slices.Clone(b.piece.Shape.cells),
			X:        b.piece.X,
			Y:        b.piece.Y,
			Collided: b.piece.Collided,
		},
		Status: b.status,
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding saved game: %w", err)
	}
	return data, nil
}

// Restore rebuilds a board from the output of Save. The level is
// recomputed from the cleared-rows count so the restored status
// cannot violate the level formula.
func Restore(data []byte) (*Board, error) {
	var s SavedGame
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding saved game: %w", err)
	}
	if s.Rows <= 0 || s.Cols <= 0 || len(s.Cells) != s.Rows*s.Cols {
		return nil, fmt.Errorf("saved grid is %dx%d but has %d cells", s.Rows, s.Cols, len(s.Cells))
	}
	if s.Piece.Rows <= 0 || s.Piece.Cols <= 0 || len(s.Piece.Cells) != s.Piece.Rows*s.Piece.Cols {
		return nil, fmt.Errorf("saved piece is %dx%d but has %d cells", s.Piece.Rows, s.Piece.Cols, len(s.Piece.Cells))
	}
	b := &Board{
		grid: &Grid{rows: s.Rows, cols: s.Cols, cells: slices.Clone(s.Cells)},
		piece: activePiece{
			Type:     s.Piece.Type,
			Shape:    Shape{rows: s.Piece.Rows, cols: s.Piece.Cols, cells: slices.Clone(s.Piece.Cells)},
			X:        s.Piece.X,
			Y:        s.Piece.Y,
			Collided: s.Piece.Collided,
		},
		status: s.Status,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	b.status.Level = b.status.RowsCleared/10 + 1
	return b, nil
}
