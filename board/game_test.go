package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// doAndWait submits a command and blocks until its snapshot arrives,
// so assertions run strictly after the command finished.
func doAndWait(g *Game, cmd Command) Snapshot {
	g.Do(cmd)
	return <-g.UpdateCh
}

func TestGameStartPauseTogglesTicker(t *testing.T) {
	g, ticker := NewTestGame(NewTestBoard(J))
	g.Start()
	defer g.Stop()

	doAndWait(g, StartPause)
	if !ticker.IsReset() {
		t.Error("wanted StartPause to arm the auto-drop ticker")
	}
	doAndWait(g, StartPause)
	if !ticker.IsStop() {
		t.Error("wanted the second StartPause to stop the ticker")
	}
}

func TestGameTickMovesDown(t *testing.T) {
	g, ticker := NewTestGame(NewTestBoard(J))
	g.Start()
	defer g.Stop()

	doAndWait(g, StartPause)
	ticker.Tick()
	snap := <-g.UpdateCh
	if snap.Piece.Y != 1 {
		t.Errorf("wanted the tick to move the piece to y=1, got %d", snap.Piece.Y)
	}
}

func TestGameOverStopsTickerAndSignals(t *testing.T) {
	b := NewTestBoard(J)
	b.grid.set(3, 4, J) // nothing below the spawn row is free
	g, ticker := NewTestGame(b)
	g.Start()
	defer g.Stop()

	doAndWait(g, StartPause)
	ticker.Tick()
	snap := <-g.UpdateCh
	if !snap.Status.GameOver {
		t.Fatal("wanted the blocked tick to end the game")
	}
	if !ticker.IsStop() {
		t.Error("wanted the top-out to stop the ticker")
	}
	select {
	case <-g.GameOverCh:
	case <-time.After(1 * time.Second):
		t.Error("timed out waiting for the game-over signal")
	}

	// Enter restarts: fresh board, ticker armed again.
	snap = doAndWait(g, StartPause)
	if snap.Status.GameOver {
		t.Error("wanted the restart to clear the game-over flag")
	}
	if ticker.IsStop() {
		t.Error("wanted the restart to rearm the ticker")
	}
}

func TestGameSerializesCommands(t *testing.T) {
	g, _ := NewTestGame(NewTestBoard(O))
	g.Start()

	for range 3 {
		doAndWait(g, MoveDown)
	}
	snap := doAndWait(g, MoveLeft)
	if snap.Piece.X != 3 || snap.Piece.Y != 3 {
		t.Errorf("wanted the piece at (3, 3), got (%d, %d)", snap.Piece.X, snap.Piece.Y)
	}

	g.Stop()
	if got := g.Read().Piece; got.X != 3 || got.Y != 3 {
		t.Errorf("wanted Read after Stop to match the last snapshot, got (%d, %d)", got.X, got.Y)
	}
}

func TestDropIntervalShrinksTowardFloor(t *testing.T) {
	prev := dropInterval(1)
	assert.Less(t, prev, 1*time.Second)
	for level := 2; level <= 100; level++ {
		d := dropInterval(level)
		assert.LessOrEqual(t, d, prev, "level %d", level)
		assert.GreaterOrEqual(t, d, minDropInterval, "level %d", level)
		prev = d
	}
	// the curve flattens out just above 200ms
	assert.Greater(t, dropInterval(100), 200*time.Millisecond)
	assert.Less(t, dropInterval(100), 210*time.Millisecond)
}
