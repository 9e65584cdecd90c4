package tetris

import (
	"fmt"
	"image/color"
	"sync"
)

// Matrix is the play field: a fixed grid of blocks, created once and
// recycled by flipping visibility, plus at most one active tetromino
// falling through it. A single mutex serialises every operation, since
// commands arrive from a ticker goroutine and an input goroutine at
// the same time.
type Matrix struct {
	mu        sync.Mutex
	grid      [][]*Block
	rows      int
	cols      int
	blockSize int
	active    *Tetromino
	score     int
	gameOver  bool

	gridLines     bool
	gridLineColor color.Color
	bgColor       color.Color
}

// NewMatrix builds an empty rows×cols field with the package block
// size. All grid blocks start invisible.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d field", ErrNegativeGeometry, rows, cols)
	}
	m := &Matrix{
		rows:          rows,
		cols:          cols,
		blockSize:     BlockSize,
		gridLines:     true,
		gridLineColor: color.Gray{Y: 0x50},
		bgColor:       color.Black,
	}
	m.grid = make([][]*Block, rows)
	for r := range m.grid {
		m.grid[r] = make([]*Block, cols)
		for c := range m.grid[r] {
			b, err := NewBlock(c*m.blockSize, r*m.blockSize, m.blockSize, m.blockSize, DefaultBlockColor)
			if err != nil {
				return nil, err
			}
			b.SetVisible(false)
			m.grid[r][c] = b
		}
	}
	return m, nil
}

// Reset empties the field for a new round: every cell goes invisible,
// the active slot clears, score and the terminal game-over state drop
// back to zero. Grid blocks are recycled, not reallocated.
func (m *Matrix) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.grid {
		for _, b := range row {
			b.SetVisible(false)
		}
	}
	m.active = nil
	m.score = 0
	m.gameOver = false
}

func (m *Matrix) Rows() int      { return m.rows }
func (m *Matrix) Cols() int      { return m.cols }
func (m *Matrix) BlockSize() int { return m.blockSize }

func (m *Matrix) Score() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.score
}

// GameOver reports whether a spawn has failed. The state is terminal:
// once set, spawns keep failing and move/rotate commands are ignored.
func (m *Matrix) GameOver() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gameOver
}

func (m *Matrix) HasActiveTetromino() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active != nil
}

func (m *Matrix) GridLines() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gridLines
}

func (m *Matrix) SetGridLines(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gridLines = on
}

func (m *Matrix) GridLineColor() color.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gridLineColor
}

func (m *Matrix) SetGridLineColor(c color.Color) error {
	if c == nil {
		return ErrNilColor
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gridLineColor = c
	return nil
}

func (m *Matrix) BackgroundColor() color.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bgColor
}

func (m *Matrix) SetBackgroundColor(c color.Color) error {
	if c == nil {
		return ErrNilColor
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bgColor = c
	return nil
}

// Row returns the grid blocks of one row, leftmost first.
func (m *Matrix) Row(rowNum int) ([]*Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rowNum < 0 || rowNum >= m.rows {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, rowNum, m.rows)
	}
	return m.grid[rowNum], nil
}

// Column returns the grid blocks of one column, topmost first.
func (m *Matrix) Column(colNum int) ([]*Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if colNum < 0 || colNum >= m.cols {
		return nil, fmt.Errorf("%w: column %d of %d", ErrOutOfRange, colNum, m.cols)
	}
	return m.column(colNum), nil
}

func (m *Matrix) column(colNum int) []*Block {
	col := make([]*Block, m.rows)
	for r := range m.grid {
		col[r] = m.grid[r][colNum]
	}
	return col
}

func (m *Matrix) BlockAt(row, col int) (*Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 0 || row >= m.rows {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, row, m.rows)
	}
	if col < 0 || col >= m.cols {
		return nil, fmt.Errorf("%w: column %d of %d", ErrOutOfRange, col, m.cols)
	}
	return m.grid[row][col], nil
}

// Spawn places a tetromino at the top of the field, horizontally
// centered. If the spawn footprint overlaps locked cells the field is
// exhausted: the piece stays where it landed, the matrix turns
// terminal and ErrGameOver comes back.
func (m *Matrix) Spawn(t *Tetromino) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gameOver {
		return ErrGameOver
	}
	if t == nil {
		return fmt.Errorf("%w: nil tetromino", ErrInvalidShape)
	}
	t.SetX((m.cols*m.blockSize)/2 - (t.HBlockCount()+1)*m.blockSize)
	t.SetY(0)
	t.UpdateBlockPositions()
	m.active = t
	if m.spawnBlocked(t) {
		m.gameOver = true
		return ErrGameOver
	}
	return nil
}

func (m *Matrix) spawnBlocked(t *Tetromino) bool {
	startCol := t.X() / m.blockSize
	for r := 0; r < t.VBlockCount(); r++ {
		for c := 0; c < t.HBlockCount(); c++ {
			gc := startCol + c
			if r >= m.rows || gc < 0 || gc >= m.cols {
				continue
			}
			tb, _ := t.BlockAt(r, c)
			if tb.Visible() && m.grid[r][gc].Visible() {
				return true
			}
		}
	}
	return false
}

// RotateActive rotates the falling piece. Near the right wall, where
// the post-rotation width could poke past the field, the command is
// silently refused; the left wall and locked cells are not checked.
func (m *Matrix) RotateActive(r Rotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gameOver || m.active == nil {
		return nil
	}
	if !r.valid() {
		return fmt.Errorf("%w: %v", ErrInvalidRotation, r)
	}
	nextX := m.active.X() + m.active.VBlockCount()*m.blockSize
	if nextX > m.cols*m.blockSize {
		return nil
	}
	return m.active.Rotate(r)
}

// MoveActive moves the falling piece one cell. A blocked sideways move
// is a no-op; a blocked downward move locks the piece into the grid
// and runs the scoring pass, leaving the active slot empty.
func (m *Matrix) MoveActive(d Direction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gameOver || m.active == nil {
		return nil
	}
	if !d.valid() {
		return fmt.Errorf("%w: %v", ErrInvalidDirection, d)
	}
	if m.isCollision(m.active, d) {
		if d == Down {
			m.incorporate(m.active)
			m.updateScore()
		}
		return nil
	}
	return m.active.Move(d)
}

// isCollision scans the grid lane adjacent to each tetromino row (for
// Down) or column (for Left/Right). A lane outside the field counts as
// a collision, as does any visible grid block under a visible piece
// block.
func (m *Matrix) isCollision(t *Tetromino, d Direction) bool {
	vertical := d == Down
	count := t.HBlockCount()
	if vertical {
		count = t.VBlockCount()
	}
	for i := 0; i < count; i++ {
		var tArr, gArr []*Block
		if vertical {
			tArr, _ = t.Row(i)
			gArr = m.rowBeneath(tArr)
		} else {
			tArr, _ = t.Column(i)
			gArr = m.columnNextTo(tArr, d)
		}
		if gArr == nil {
			return true
		}
		gStart := tArr[0].Y() / m.blockSize
		if vertical {
			gStart = tArr[0].X() / m.blockSize
		}
		for ti, tb := range tArr {
			gi := gStart + ti
			if gi < 0 || gi >= len(gArr) {
				return true
			}
			if tb.Visible() && gArr[gi].Visible() {
				return true
			}
		}
	}
	return false
}

// rowBeneath returns the grid row directly under a tetromino row, or
// nil when that row would be below the floor.
func (m *Matrix) rowBeneath(tArr []*Block) []*Block {
	rowNum := tArr[0].Y()/m.blockSize + 1
	if rowNum >= m.rows {
		return nil
	}
	return m.grid[rowNum]
}

// columnNextTo returns the grid column beside a tetromino column in
// the direction of travel, or nil at the walls.
func (m *Matrix) columnNextTo(tArr []*Block, d Direction) []*Block {
	colNum := tArr[0].X() / m.blockSize
	if d == Right {
		colNum++
	} else {
		colNum--
	}
	if colNum < 0 || colNum >= m.cols {
		return nil
	}
	return m.column(colNum)
}

// incorporate locks the active piece into the grid. The piece origin
// must be grid aligned and fully inside the field; anything else means
// the collision scan has failed and the field is corrupt, so it
// panics.
func (m *Matrix) incorporate(t *Tetromino) {
	startRow := t.Y() / m.blockSize
	startCol := t.X() / m.blockSize
	if startRow < 0 || startCol < 0 ||
		startRow+t.VBlockCount() > m.rows || startCol+t.HBlockCount() > m.cols {
		panic(fmt.Sprintf("tetris: incorporating tetromino out of bounds at row %d col %d", startRow, startCol))
	}
	for r := 0; r < t.VBlockCount(); r++ {
		for c := 0; c < t.HBlockCount(); c++ {
			tb, _ := t.BlockAt(r, c)
			if tb.Visible() {
				m.grid[startRow+r][startCol+c] = tb
			}
		}
	}
	m.active = nil
}

// updateScore clears full rows bottom to top. Each cleared row awards
// cols multiplied by a counter that starts at 1 per pass and grows
// with every row cleared in it, then the same row index is examined
// again since the shift pulls new content into it.
func (m *Matrix) updateScore() {
	multiplier := 1
	for r := m.rows - 1; r >= 0; r-- {
		if !m.rowFull(r) {
			continue
		}
		m.score += m.cols * multiplier
		multiplier++
		m.shiftDown(r)
		r++
	}
}

func (m *Matrix) rowFull(rowNum int) bool {
	for _, b := range m.grid[rowNum] {
		if !b.Visible() {
			return false
		}
	}
	return true
}

func (m *Matrix) rowEmpty(rowNum int) bool {
	for _, b := range m.grid[rowNum] {
		if b.Visible() {
			return false
		}
	}
	return true
}

// shiftDown deletes a row by copying visibility downwards from the row
// above, stopping early once the source row is already empty.
func (m *Matrix) shiftDown(rowToDelete int) {
	for r := rowToDelete; r >= 0; r-- {
		if r == 0 {
			for _, b := range m.grid[0] {
				b.SetVisible(false)
			}
			return
		}
		for c := range m.grid[r] {
			m.grid[r][c].SetVisible(m.grid[r-1][c].Visible())
		}
		if m.rowEmpty(r - 1) {
			return
		}
	}
}

// CellSnapshot is one grid cell frozen for rendering.
type CellSnapshot struct {
	Visible bool
	Color   color.Color
}

// PieceCell is one cell of the active piece frozen for rendering,
// with its silhouette edges precomputed.
type PieceCell struct {
	Visible bool
	Color   color.Color
	Borders Borders
}

// PieceSnapshot freezes the active tetromino: pixel origin, cell grid
// and uniform cell size.
type PieceSnapshot struct {
	X, Y      int
	BlockSize int
	Cells     [][]PieceCell
}

// Snapshot freezes the whole field for a renderer. Active is nil when
// no piece is falling.
type Snapshot struct {
	Rows, Cols int
	BlockSize  int
	Score      int
	GameOver   bool
	GridLines  bool
	Cells      [][]CellSnapshot
	Active     *PieceSnapshot
}

// Snapshot deep-copies the current state so renderers can draw without
// holding the field lock.
func (m *Matrix) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := Snapshot{
		Rows:      m.rows,
		Cols:      m.cols,
		BlockSize: m.blockSize,
		Score:     m.score,
		GameOver:  m.gameOver,
		GridLines: m.gridLines,
		Cells:     make([][]CellSnapshot, m.rows),
	}
	for r := range m.grid {
		s.Cells[r] = make([]CellSnapshot, m.cols)
		for c, b := range m.grid[r] {
			s.Cells[r][c] = CellSnapshot{Visible: b.Visible(), Color: b.Color()}
		}
	}
	if m.active != nil {
		s.Active = snapshotPiece(m.active)
	}
	return s
}

func snapshotPiece(t *Tetromino) *PieceSnapshot {
	p := &PieceSnapshot{
		X:         t.X(),
		Y:         t.Y(),
		BlockSize: t.BlockSize(),
		Cells:     make([][]PieceCell, t.VBlockCount()),
	}
	for r := range p.Cells {
		p.Cells[r] = make([]PieceCell, t.HBlockCount())
		for c := range p.Cells[r] {
			b, _ := t.BlockAt(r, c)
			edges, _ := t.BorderEdges(r, c)
			p.Cells[r][c] = PieceCell{Visible: b.Visible(), Color: b.Color(), Borders: edges}
		}
	}
	return p
}
