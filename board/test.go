package board

import (
	"math/rand"
	"sync"
	"time"
)

// MockTicker is a manually driven implementation of the Ticker
// interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func NewMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
func (m *MockTicker) C() <-chan time.Time { return m.ch }
func (m *MockTicker) Tick()               { m.ch <- time.Now() }
func (m *MockTicker) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stop = true
}
func (m *MockTicker) Reset(time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset = true
	m.stop = false
}
func (m *MockTicker) IsReset() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reset
}
func (m *MockTicker) IsStop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stop
}

// NewTestBoard returns an idle board with a fixed active piece at the
// spawn position and deterministic randomness.
func NewTestBoard(t Cell) *Board {
	return &Board{
		grid:   NewGrid(gridRows, gridCols),
		piece:  activePiece{Type: t, Shape: ShapeOf(t), X: spawnX, Y: spawnY},
		status: Status{Level: 1},
		rng:    rand.New(rand.NewSource(1)),
	}
}

// NewTestGame wraps a board in a game with a manual ticker.
func NewTestGame(b *Board) (*Game, *MockTicker) {
	ticker := NewMockTicker()
	return NewConfigurableGame(b, ticker, nil), ticker
}
