package board

import (
	"log/slog"
	"time"
)

// Ticker abstracts the auto-drop timer so tests can drive ticks
// manually.
type Ticker interface {
	C() <-chan time.Time
	Reset(time.Duration)
	Stop()
}

type wrappedTicker struct {
	ticker *time.Ticker
}

func newWrappedTicker(d time.Duration) *wrappedTicker {
	return &wrappedTicker{ticker: time.NewTicker(d)}
}

func (t *wrappedTicker) C() <-chan time.Time   { return t.ticker.C }
func (t *wrappedTicker) Stop()                 { t.ticker.Stop() }
func (t *wrappedTicker) Reset(d time.Duration) { t.ticker.Reset(d) }

// Game runs a Board behind a single goroutine. Commands submitted
// through Do and timer ticks are processed strictly one at a time, so
// the board itself needs no locking. The goroutine also owns the one
// auto-drop ticker: BeginAutoDrop and EndAutoDrop swap it atomically
// with the Running state, so at most one tick source ever exists.
type Game struct {
	// UpdateCh delivers a snapshot after every processed command.
	UpdateCh chan Snapshot
	// GameOverCh fires once per game when the board tops out.
	GameOverCh chan bool

	commandCh chan Command
	doneCh    chan bool
	stoppedCh chan bool
	board     *Board
	ticker    Ticker
	logger    *slog.Logger
	dropping  bool
}

func NewGame(logger *slog.Logger) *Game {
	return NewConfigurableGame(New(), newWrappedTicker(1*time.Hour), logger)
}

// NewGameWith runs a specific board, e.g. one restored from a save.
func NewGameWith(b *Board, logger *slog.Logger) *Game {
	return NewConfigurableGame(b, newWrappedTicker(1*time.Hour), logger)
}

func NewConfigurableGame(b *Board, ticker Ticker, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		UpdateCh:   make(chan Snapshot),
		GameOverCh: make(chan bool, 1),
		commandCh:  make(chan Command),
		doneCh:     make(chan bool, 1),
		stoppedCh:  make(chan bool),
		board:      b,
		ticker:     ticker,
		logger:     logger,
	}
}

// Start launches the command loop. The game begins Idle; a StartPause
// command sets it running.
func (g *Game) Start() { go g.listen() }

// Stop ends the command loop and closes UpdateCh. It returns once the
// loop has exited, after which no goroutine touches the board and Read
// and Save are safe again. The caller must keep draining UpdateCh
// until it closes.
func (g *Game) Stop() {
	g.doneCh <- true
	<-g.stoppedCh
}

// Do submits a command for processing. It blocks until the loop picks
// the command up, never until it finishes.
func (g *Game) Do(cmd Command) { g.commandCh <- cmd }

// Read returns a snapshot of the board. Only safe before Start or
// after Stop; while the loop runs, consume UpdateCh instead.
func (g *Game) Read() Snapshot { return g.board.Snapshot() }

// Save serializes the board. Only safe before Start or after Stop.
func (g *Game) Save() ([]byte, error) { return g.board.Save() }

func (g *Game) listen() {
	defer func() {
		g.ticker.Stop()
		close(g.UpdateCh)
		close(g.stoppedCh)
	}()
	for {
		select {
		case <-g.ticker.C():
			g.apply(Tick)
		case cmd := <-g.commandCh:
			g.apply(cmd)
		case <-g.doneCh:
			return
		}
	}
}

func (g *Game) apply(cmd Command) {
	wasOver := g.board.status.GameOver
	snap, effect := g.board.Apply(cmd)
	switch effect {
	case BeginAutoDrop:
		g.dropping = true
		g.ticker.Reset(g.board.DropInterval())
	case EndAutoDrop:
		if !g.dropping {
			// The board asked to cancel a timer this loop does not
			// hold. The Running flag and the ticker must move
			// together; a mismatch is a state-machine bug.
			g.logger.Error("auto-drop cancel without an active ticker", slog.String("command", string(cmd)))
		}
		g.dropping = false
		g.ticker.Stop()
	}
	g.UpdateCh <- snap
	if snap.Status.GameOver && !wasOver {
		g.GameOverCh <- true
	}
}

// Auto-drop cadence. The duration shrinks with the level along the
// original half-sum Fibonacci curve and converges toward a floor.
const minDropInterval = 50 * time.Millisecond

func dropInterval(level int) time.Duration {
	ms := 1000.0
	for i := 6; i < 7+level; i++ {
		ms -= 1000.0 / fibHalf(i)
	}
	d := time.Duration(ms * float64(time.Millisecond))
	if d < minDropInterval {
		d = minDropInterval
	}
	return d
}

// fibHalf is the shifted recurrence the drop curve is built on:
// each term is the previous term plus half the current one. It grows
// roughly geometrically, which is what makes dropInterval converge.
func fibHalf(n int) float64 {
	sum, last, curr := 0.0, 0.0, 1.0
	for range n + 3 {
		sum = last + curr/2
		last = curr
		curr = sum
	}
	return sum
}
