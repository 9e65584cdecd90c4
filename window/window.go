// Package window is the desktop front-end: an ebiten render loop over
// the play field, with fixed-interval gravity and keyboard control.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Mr-Slinky/UglyTetris/tetris"
)

const (
	sidePanel   = 140
	borderWidth = 2

	tps = 60 // ebiten's default update rate
)

// Sounds is the optional audio hook set. The zero implementation is
// silence.
type Sounds interface {
	Rotate()
	Lock()
	LineClear()
	GameOver()
}

type noSounds struct{}

func (noSounds) Rotate()    {}
func (noSounds) Lock()      {}
func (noSounds) LineClear() {}
func (noSounds) GameOver()  {}

// Options configure the windowed game. Zero values fall back to the
// original field: 35 rows by 20 columns at 5 gravity drops per second.
type Options struct {
	Rows             int
	Cols             int
	UpdatesPerSecond int
	FullCatalog      bool
	GridLines        bool
	Logger           *slog.Logger
	Sounds           Sounds
}

// UI implements ebiten.Game over a Matrix. Unlike the terminal
// front-end it owns the field directly: ebiten already provides the
// fixed-rate loop a ticker goroutine would.
type UI struct {
	matrix        *tetris.Matrix
	next          tetris.Type
	pick          func() tetris.Type
	frame         int
	framesPerDrop int
	lastScore     int
	logger        *slog.Logger
	sounds        Sounds
}

func New(opts Options) (*UI, error) {
	if opts.Rows == 0 {
		opts.Rows = 35
	}
	if opts.Cols == 0 {
		opts.Cols = 20
	}
	if opts.UpdatesPerSecond == 0 {
		opts.UpdatesPerSecond = 5
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Sounds == nil {
		opts.Sounds = noSounds{}
	}
	matrix, err := tetris.NewMatrix(opts.Rows, opts.Cols)
	if err != nil {
		return nil, err
	}
	matrix.SetGridLines(opts.GridLines)
	pick := tetris.RandomSimpleType
	if opts.FullCatalog {
		pick = tetris.RandomType
	}
	u := &UI{
		matrix:        matrix,
		next:          pick(),
		pick:          pick,
		framesPerDrop: tps / opts.UpdatesPerSecond,
		logger:        opts.Logger,
		sounds:        opts.Sounds,
	}
	u.spawn()
	return u, nil
}

// Run opens the window and blocks until it closes.
func (u *UI) Run() error {
	w, h := u.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("UglyTetris")
	return ebiten.RunGame(u)
}

func (u *UI) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if u.matrix.GameOver() {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		u.move(tetris.Left)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		u.move(tetris.Right)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		u.descend()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		u.rotate()
	}

	u.frame++
	if u.frame >= u.framesPerDrop {
		u.frame = 0
		u.descend()
	}
	return nil
}

func (u *UI) move(d tetris.Direction) {
	if err := u.matrix.MoveActive(d); err != nil {
		u.logger.Error("move failed", "direction", d, "error", err)
	}
}

func (u *UI) rotate() {
	if err := u.matrix.RotateActive(tetris.Clockwise); err != nil {
		u.logger.Error("rotate failed", "error", err)
		return
	}
	u.sounds.Rotate()
}

// descend is one gravity step plus the lock bookkeeping: audio cues
// and the follow-up spawn.
func (u *UI) descend() {
	u.move(tetris.Down)
	if u.matrix.HasActiveTetromino() {
		return
	}
	u.sounds.Lock()
	if score := u.matrix.Score(); score != u.lastScore {
		u.lastScore = score
		u.sounds.LineClear()
	}
	u.spawn()
}

func (u *UI) spawn() {
	tet, err := tetris.NewTetrominoOfType(u.next, tetris.ColorFor(u.next))
	if err != nil {
		u.logger.Error("building tetromino failed", "type", u.next, "error", err)
		return
	}
	err = u.matrix.Spawn(tet)
	switch {
	case errors.Is(err, tetris.ErrGameOver):
		u.logger.Info("game over", "score", u.matrix.Score())
		u.sounds.GameOver()
	case err != nil:
		u.logger.Error("spawn failed", "error", err)
	default:
		u.next = u.pick()
	}
}

func (u *UI) Draw(screen *ebiten.Image) {
	s := u.matrix.Snapshot()
	screen.Fill(u.matrix.BackgroundColor())

	bs := float32(s.BlockSize)
	for r := range s.Cells {
		for c, cell := range s.Cells[r] {
			if !cell.Visible {
				continue
			}
			x, y := float32(c)*bs, float32(r)*bs
			vector.DrawFilledRect(screen, x, y, bs, bs, cell.Color, false)
			vector.StrokeRect(screen, x, y, bs, bs, 1, color.Black, false)
		}
	}

	if s.GridLines {
		drawGridLines(screen, s, u.matrix.GridLineColor())
	}
	if s.Active != nil {
		drawPiece(screen, s.Active)
	}
	u.drawPanel(screen, s)
}

func drawGridLines(screen *ebiten.Image, s tetris.Snapshot, c color.Color) {
	w := float32(s.Cols * s.BlockSize)
	h := float32(s.Rows * s.BlockSize)
	for r := 0; r <= s.Rows; r++ {
		y := float32(r * s.BlockSize)
		vector.StrokeLine(screen, 0, y, w, y, 1, c, false)
	}
	for col := 0; col <= s.Cols; col++ {
		x := float32(col * s.BlockSize)
		vector.StrokeLine(screen, x, 0, x, h, 1, c, false)
	}
}

// drawPiece fills the visible cells and strokes only their outward
// edges, so the piece reads as one silhouette.
func drawPiece(screen *ebiten.Image, p *tetris.PieceSnapshot) {
	drawPieceAt(screen, p, float32(p.X), float32(p.Y))
}

func drawPieceAt(screen *ebiten.Image, p *tetris.PieceSnapshot, ox, oy float32) {
	bs := float32(p.BlockSize)
	for r := range p.Cells {
		for c, cell := range p.Cells[r] {
			if !cell.Visible {
				continue
			}
			x, y := ox+float32(c)*bs, oy+float32(r)*bs
			vector.DrawFilledRect(screen, x, y, bs, bs, cell.Color, false)
			if cell.Borders.Top {
				vector.StrokeLine(screen, x, y, x+bs, y, borderWidth, color.White, false)
			}
			if cell.Borders.Bottom {
				vector.StrokeLine(screen, x, y+bs, x+bs, y+bs, borderWidth, color.White, false)
			}
			if cell.Borders.Left {
				vector.StrokeLine(screen, x, y, x, y+bs, borderWidth, color.White, false)
			}
			if cell.Borders.Right {
				vector.StrokeLine(screen, x+bs, y, x+bs, y+bs, borderWidth, color.White, false)
			}
		}
	}
}

func (u *UI) drawPanel(screen *ebiten.Image, s tetris.Snapshot) {
	textX := s.Cols*s.BlockSize + 20
	ebitenutil.DebugPrintAt(screen, "SCORE", textX, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d", s.Score), textX, 40)

	ebitenutil.DebugPrintAt(screen, "NEXT", textX, 80)
	if tet, err := tetris.NewTetrominoOfType(u.next, tetris.ColorFor(u.next)); err == nil {
		preview := previewSnapshot(tet)
		drawPieceAt(screen, preview, float32(textX), 100)
	}

	if s.GameOver {
		ebitenutil.DebugPrintAt(screen, "GAME OVER", textX, 160)
		ebitenutil.DebugPrintAt(screen, "Esc to quit", textX, 180)
	}
}

func previewSnapshot(t *tetris.Tetromino) *tetris.PieceSnapshot {
	p := &tetris.PieceSnapshot{
		BlockSize: t.BlockSize(),
		Cells:     make([][]tetris.PieceCell, t.VBlockCount()),
	}
	for r := range p.Cells {
		p.Cells[r] = make([]tetris.PieceCell, t.HBlockCount())
		for c := range p.Cells[r] {
			b, _ := t.BlockAt(r, c)
			edges, _ := t.BorderEdges(r, c)
			p.Cells[r][c] = tetris.PieceCell{Visible: b.Visible(), Color: b.Color(), Borders: edges}
		}
	}
	return p
}

func (u *UI) Layout(outsideWidth, outsideHeight int) (int, int) {
	return u.matrix.Cols()*u.matrix.BlockSize() + sidePanel, u.matrix.Rows() * u.matrix.BlockSize()
}
