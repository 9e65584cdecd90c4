package tetris

import (
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockTicker is a manual implementation of the ticker interface.
type MockTicker struct {
	ch          chan time.Time
	stop, reset bool
	mu          sync.Mutex
}

func newMockTicker() *MockTicker          { return &MockTicker{ch: make(chan time.Time)} }
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

// NewTestGame creates a game over a prepared matrix with a manual
// ticker and a fixed piece sequence.
func NewTestGame(m *Matrix, types ...Type) (*Game, *MockTicker) {
	ticker := newMockTicker()
	queue := append([]Type{}, types...)
	pick := func() Type {
		if len(queue) == 0 {
			return TypeSingle
		}
		t := queue[0]
		queue = queue[1:]
		return t
	}
	return &Game{
		GameOverCh: make(chan bool),
		UpdateCh:   make(chan bool),
		actionCh:   make(chan Action),
		doneCh:     make(chan bool, 1),
		matrix:     m,
		next:       pick(),
		pick:       pick,
		interval:   time.Second,
		ticker:     ticker,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		id:         uuid.Nil,
	}, ticker
}
