package tetris

import (
	"errors"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	MoveLeft    Action = "left"      // Moves the active tetromino one cell to the left.
	MoveRight   Action = "right"     // Moves the active tetromino one cell to the right.
	MoveDown    Action = "down"      // Moves the active tetromino one cell down.
	DropDown    Action = "drop"      // Drops the active tetromino until it locks.
	RotateRight Action = "rotatecw"  // Rotates the active tetromino clockwise.
	RotateLeft  Action = "rotateccw" // Rotates the active tetromino counter-clockwise.
)

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

// typeColors gives the drivers recognisable piece colors. The engine
// itself never looks at them.
var typeColors = map[Type]color.Color{
	TypeI: color.RGBA{R: 0x00, G: 0xbf, B: 0xbf, A: 0xff},
	TypeO: color.RGBA{R: 0xbf, G: 0xbf, B: 0x00, A: 0xff},
	TypeT: color.RGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xff},
	TypeS: color.RGBA{R: 0x00, G: 0xbf, B: 0x00, A: 0xff},
	TypeZ: color.RGBA{R: 0xbf, G: 0x00, B: 0x00, A: 0xff},
	TypeJ: color.RGBA{R: 0x00, G: 0x00, B: 0xbf, A: 0xff},
	TypeL: color.RGBA{R: 0xbf, G: 0x60, B: 0x00, A: 0xff},
}

// ColorFor returns the driver color for a type, falling back to the
// package default for the extended catalog.
func ColorFor(t Type) color.Color {
	if c, ok := typeColors[t]; ok {
		return c
	}
	return DefaultBlockColor
}

// Options configure a Game. Zero values fall back to the original
// field: 35 rows by 20 columns at 5 updates per second, standard
// pieces only.
type Options struct {
	Rows             int
	Cols             int
	UpdatesPerSecond int
	FullCatalog      bool // draw from the whole catalog, extended shapes included
	Logger           *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Rows == 0 {
		o.Rows = 35
	}
	if o.Cols == 0 {
		o.Cols = 20
	}
	if o.UpdatesPerSecond == 0 {
		o.UpdatesPerSecond = 5
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Game drives a Matrix from two concurrent sources, a gravity ticker
// and a command channel, and fans state changes out to whatever is
// rendering. Renderers block on UpdateCh and call Read for a safe
// copy.
type Game struct {
	GameOverCh chan bool
	UpdateCh   chan bool

	actionCh chan Action
	doneCh   chan bool
	matrix   *Matrix
	mu       sync.RWMutex // guards next against Read from render goroutines
	next     Type
	pick     func() Type
	interval time.Duration
	ticker   Ticker
	logger   *slog.Logger
	id       uuid.UUID
}

func NewGame(opts Options) (*Game, error) {
	return NewConfigurableGame(opts, newWrappedTicker(1*time.Hour))
}

func NewConfigurableGame(opts Options, ticker Ticker) (*Game, error) {
	opts = opts.withDefaults()
	matrix, err := NewMatrix(opts.Rows, opts.Cols)
	if err != nil {
		return nil, err
	}
	pick := RandomSimpleType
	if opts.FullCatalog {
		pick = RandomType
	}
	return &Game{
		GameOverCh: make(chan bool),
		UpdateCh:   make(chan bool),
		actionCh:   make(chan Action),
		doneCh:     make(chan bool, 1),
		matrix:     matrix,
		next:       pick(),
		pick:       pick,
		interval:   time.Second / time.Duration(opts.UpdatesPerSecond),
		ticker:     ticker,
		logger:     opts.Logger,
		id:         uuid.New(),
	}, nil
}

// Start spawns the first piece and launches the event loop. Starting
// over a finished game recycles the field for a fresh round.
func (g *Game) Start() {
	if g.matrix.GameOver() {
		g.matrix.Reset()
	}
	g.logger.Info("game started", "game_id", g.id, "rows", g.matrix.Rows(), "cols", g.matrix.Cols())
	g.spawn()
	go g.listen()
}

func (g *Game) Stop() {
	g.ticker.Stop()
	g.doneCh <- true
}

func (g *Game) Action(a Action) {
	g.actionCh <- a
}

// Status is the render-ready view of a game: the frozen field plus the
// type queued to spawn next.
type Status struct {
	Snapshot
	Next Type
}

// Read returns a copy of the current game state that is safe to use
// while the game keeps running.
func (g *Game) Read() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Status{Snapshot: g.matrix.Snapshot(), Next: g.next}
}

func (g *Game) listen() {
	g.ticker.Reset(g.interval)
	for {
		select {
		case <-g.ticker.C():
			g.step()
		case a := <-g.actionCh:
			g.handle(a)
		case <-g.doneCh:
			return
		}
		g.UpdateCh <- true
	}
}

// step is one gravity beat: push the piece down, and when that locks
// it, bring in the next one.
func (g *Game) step() {
	if err := g.matrix.MoveActive(Down); err != nil {
		g.logger.Error("move down failed", "game_id", g.id, "error", err)
		return
	}
	if !g.matrix.HasActiveTetromino() {
		g.spawn()
	}
}

func (g *Game) handle(a Action) {
	var err error
	switch a {
	case MoveLeft:
		err = g.matrix.MoveActive(Left)
	case MoveRight:
		err = g.matrix.MoveActive(Right)
	case MoveDown:
		err = g.matrix.MoveActive(Down)
	case RotateRight:
		err = g.matrix.RotateActive(Clockwise)
	case RotateLeft:
		err = g.matrix.RotateActive(CounterClockwise)
	case DropDown:
		// drop down doesn't wait for the ticks to finish the descent
		for g.matrix.HasActiveTetromino() && !g.matrix.GameOver() {
			err = g.matrix.MoveActive(Down)
			if err != nil {
				break
			}
		}
	default:
		g.logger.Warn("unknown action", "game_id", g.id, "action", a)
		return
	}
	if err != nil {
		g.logger.Error("action failed", "game_id", g.id, "action", a, "error", err)
		return
	}
	if !g.matrix.HasActiveTetromino() {
		g.spawn()
	}
}

func (g *Game) spawn() {
	tet, err := NewTetrominoOfType(g.next, ColorFor(g.next))
	if err != nil {
		g.logger.Error("building tetromino failed", "game_id", g.id, "type", g.next, "error", err)
		return
	}
	err = g.matrix.Spawn(tet)
	switch {
	case errors.Is(err, ErrGameOver):
		g.ticker.Stop()
		g.logger.Info("game over", "game_id", g.id, "score", g.matrix.Score())
		g.GameOverCh <- true
		g.doneCh <- true
	case err != nil:
		g.logger.Error("spawn failed", "game_id", g.id, "error", err)
	default:
		g.mu.Lock()
		g.next = g.pick()
		g.mu.Unlock()
	}
}
