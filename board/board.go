package board

import (
	"math/rand"
	"time"
)

const (
	gridRows = 21
	gridCols = 10

	spawnX = 4
	spawnY = 0
	// Fresh games begin one row above the visible grid.
	startY = -1
)

// Command is one of the inputs the state machine accepts. Tick is the
// gravity command issued by whoever owns the auto-drop timer.
type Command string

const (
	MoveLeft   Command = "left"
	MoveRight  Command = "right"
	MoveDown   Command = "down"
	HardDrop   Command = "drop"
	Rotate     Command = "rotate"
	StartPause Command = "startpause"
	Tick       Command = "tick"
)

// Effect is a request back to the host after a command. The host owns
// the actual timer and translates its expiry into Tick commands; at
// most one timer may be active per BeginAutoDrop/EndAutoDrop pair.
type Effect int

const (
	None Effect = iota
	BeginAutoDrop
	EndAutoDrop
)

// Status carries the score-keeping side of a game. Level is always
// RowsCleared/10 + 1.
type Status struct {
	Level       int  `json:"level"`
	RowsCleared int  `json:"rows_cleared"`
	Score       int  `json:"score"`
	GameOver    bool `json:"game_over"`
}

type activePiece struct {
	Type     Cell
	Shape    Shape
	X, Y     int
	Collided bool
}

// Board is the full game state: placed cells, the active piece and the
// status. It is not safe for concurrent use; commands must be
// serialized by a single owner such as Game.
type Board struct {
	grid    *Grid
	piece   activePiece
	status  Status
	running bool
	rng     *rand.Rand
}

func New() *Board {
	return NewSeeded(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSeeded creates a board drawing pieces from rng, which tests use
// to make spawning deterministic.
func NewSeeded(rng *rand.Rand) *Board {
	b := &Board{rng: rng}
	b.Reset()
	return b
}

// Reset starts a new game: empty grid, zeroed status, fresh piece.
func (b *Board) Reset() {
	b.grid = NewGrid(gridRows, gridCols)
	b.status = Status{Level: 1}
	b.spawn(startY, Empty)
}

// Apply runs one command to completion and returns the resulting
// render snapshot plus any timer request for the host. Movement
// commands after game over are silent no-ops until StartPause
// restarts the game.
func (b *Board) Apply(cmd Command) (Snapshot, Effect) {
	effect := None
	switch cmd {
	case StartPause:
		effect = b.startPause()
	case Tick, MoveDown:
		effect = b.settle(b.moveDown())
	case HardDrop:
		effect = b.settle(b.drop())
	case MoveLeft:
		b.shift(-1)
	case MoveRight:
		b.shift(1)
	case Rotate:
		b.rotate()
	}
	return b.Snapshot(), effect
}

// DropInterval returns the auto-drop period for the current level.
func (b *Board) DropInterval() time.Duration { return dropInterval(b.status.Level) }

// Running reports whether the auto-drop timer should be live, i.e.
// the machine is in its Running state rather than Idle.
func (b *Board) Running() bool { return b.running }

func (b *Board) startPause() Effect {
	if b.running {
		b.running = false
		return EndAutoDrop
	}
	if b.status.GameOver {
		b.Reset()
	}
	b.running = true
	return BeginAutoDrop
}

type downResult int

const (
	descended downResult = iota // the piece moved one row down
	locked                      // the piece merged into the grid and a new one spawned
	toppedOut                   // the piece could not leave the spawn rows; game over
)

func (b *Board) moveDown() downResult {
	if b.status.GameOver {
		return toppedOut
	}
	if b.legal(b.piece.X, b.piece.Y+1, b.piece.Shape) {
		b.piece.Y++
		return descended
	}
	if b.piece.Y <= 0 {
		b.status.GameOver = true
		return toppedOut
	}
	b.lockIn()
	return locked
}

// drop repeats the down-move logic until the piece locks or the game
// ends, all within a single command.
func (b *Board) drop() downResult {
	r := b.moveDown()
	for r == descended {
		r = b.moveDown()
	}
	return r
}

// settle converts the outcome of a downward move into a timer request.
// Topping out stops the auto-drop; a lock restarts it so the cadence
// follows the possibly increased level.
func (b *Board) settle(r downResult) Effect {
	switch r {
	case toppedOut:
		if b.running {
			b.running = false
			return EndAutoDrop
		}
	case locked:
		if b.running {
			return BeginAutoDrop
		}
	}
	return None
}

func (b *Board) shift(dx int) bool {
	if b.status.GameOver {
		return false
	}
	if !b.legal(b.piece.X+dx, b.piece.Y, b.piece.Shape) {
		return false
	}
	b.piece.X += dx
	return true
}

// rotate tries the clockwise rotation in place and falls back to one
// row up, committing both the shape and the shifted position. That
// single upward retry is the entire wall-kick policy.
func (b *Board) rotate() bool {
	if b.status.GameOver {
		return false
	}
	rotated := b.piece.Shape.Rotated()
	if b.legal(b.piece.X, b.piece.Y, rotated) {
		b.piece.Shape = rotated
		return true
	}
	if b.legal(b.piece.X, b.piece.Y-1, rotated) {
		b.piece.Shape = rotated
		b.piece.Y--
		return true
	}
	return false
}

func (b *Board) legal(x, y int, s Shape) bool {
	return b.fitsWithinBounds(x, y, s) && b.isUnobstructed(x, y, s)
}

// fitsWithinBounds reports whether every occupied cell of s placed at
// (x, y) stays inside the left, right and bottom edges. Cells above
// row 0 are deliberately not checked: pieces spawn above the grid.
func (b *Board) fitsWithinBounds(x, y int, s Shape) bool {
	for r := range s.rows {
		for c := range s.cols {
			if s.At(r, c) == Empty {
				continue
			}
			col, row := x+c, y+r
			if col < 0 || col >= b.grid.cols || row >= b.grid.rows {
				return false
			}
		}
	}
	return true
}

// isUnobstructed reports whether no occupied cell of s placed at
// (x, y) overlaps an occupied grid cell. Positions outside the grid
// are passable here; bounds are fitsWithinBounds' job.
func (b *Board) isUnobstructed(x, y int, s Shape) bool {
	for r := range s.rows {
		for c := range s.cols {
			if s.At(r, c) == Empty {
				continue
			}
			col, row := x+c, y+r
			if row < 0 || row >= b.grid.rows || col < 0 || col >= b.grid.cols {
				continue
			}
			if b.grid.At(row, col) != Empty {
				return false
			}
		}
	}
	return true
}

// lockIn merges the active piece into the grid, clears and scores any
// full rows and spawns the next piece. Shape cells still above the
// grid never merge; the bounds here are strict on every edge.
func (b *Board) lockIn() {
	prev := b.piece.Type
	b.piece.Collided = true
	for r := range b.piece.Shape.rows {
		for c := range b.piece.Shape.cols {
			cell := b.piece.Shape.At(r, c)
			if cell == Empty {
				continue
			}
			row, col := b.piece.Y+r, b.piece.X+c
			if row < 0 || row >= b.grid.rows || col < 0 || col >= b.grid.cols {
				continue
			}
			b.grid.set(row, col, cell)
		}
	}
	b.clearAndScore()
	b.spawn(spawnY, prev)
}

// clearAndScore removes full rows and updates score and level. The
// score multiplier uses the level from before this clear.
func (b *Board) clearAndScore() int {
	full := b.grid.FullRows()
	if len(full) == 0 {
		return 0
	}
	b.grid.ClearRows(full)
	b.status.Score += scoreFor(len(full), b.status.Level)
	b.status.RowsCleared += len(full)
	b.status.Level = b.status.RowsCleared/10 + 1
	return len(full)
}

func scoreFor(cleared, level int) int {
	switch cleared {
	case 1:
		return 40 * level
	case 2:
		return 100 * level
	case 3:
		return 300 * level
	default:
		return 1200 * level
	}
}

// spawn replaces the active piece with a random one at (spawnX, y),
// re-rolling while the draw equals the piece that just locked so the
// same type never falls twice in a row.
func (b *Board) spawn(y int, exclude Cell) {
	t := b.randomPiece(exclude)
	b.piece = activePiece{Type: t, Shape: ShapeOf(t), X: spawnX, Y: y}
}

func (b *Board) randomPiece(exclude Cell) Cell {
	for {
		t := PieceTypes[b.rng.Intn(len(PieceTypes))]
		if t != exclude {
			return t
		}
	}
}
