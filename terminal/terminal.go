package terminal

import (
	_ "embed"
	"fmt"
	"image/color"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"text/template"

	"github.com/eiannone/keyboard"

	"github.com/Mr-Slinky/UglyTetris/tetris"
)

const (
	// ASCII colors.
	Cyan    = "36"
	Blue    = "34"
	Orange  = "38;5;214"
	Yellow  = "33"
	Green   = "32"
	Red     = "31"
	Magenta = "35"

	resetPos = "\033[H" // Reset cursor position to 0,0
)

//go:embed "layout.tmpl"
var layout string

var colorMap = map[tetris.Type]string{
	tetris.TypeI: Cyan,
	tetris.TypeJ: Blue,
	tetris.TypeL: Orange,
	tetris.TypeO: Yellow,
	tetris.TypeS: Green,
	tetris.TypeZ: Red,
	tetris.TypeT: Magenta,
}

// ansiByColor reverses the drivers' piece palette, so snapshot cells
// can be colored without knowing which type produced them.
var ansiByColor = map[[4]uint32]string{}

func init() {
	for _, t := range tetris.AllTypes() {
		ansi, ok := colorMap[t]
		if !ok {
			ansi = Red
		}
		ansiByColor[colorKey(tetris.ColorFor(t))] = ansi
	}
}

func colorKey(c color.Color) [4]uint32 {
	r, g, b, a := c.RGBA()
	return [4]uint32{r, g, b, a}
}

func ansiFor(c color.Color) string {
	if c == nil {
		return Red
	}
	if ansi, ok := ansiByColor[colorKey(c)]; ok {
		return ansi
	}
	return Red
}

type templateData struct {
	Status tetris.Status

	mu sync.Mutex
}

type Terminal struct {
	writer       io.Writer
	game         *tetris.Game
	template     *template.Template
	logger       *slog.Logger
	keysEventsCh <-chan keyboard.KeyEvent
	doneCh       chan bool
	lobby        atomic.Bool
	td           *templateData
}

type Options struct {
	Writer io.Writer
	Logger *slog.Logger
	Game   tetris.Options
}

func New(o *Options) *Terminal {
	tp, err := loadTemplate()
	if err != nil {
		log.Fatalf("unable to load template: %v\n", err)
	}
	kc, err := keyboard.GetKeys(20)
	if err != nil {
		log.Fatalf("unable to open keyboard: %v\n", err)
	}
	g, err := tetris.NewGame(o.Game)
	if err != nil {
		log.Fatalf("unable to create game: %v\n", err)
	}
	var w io.Writer = os.Stdout
	if o.Writer != nil {
		w = o.Writer
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Terminal{
		writer:       w,
		game:         g,
		template:     tp,
		keysEventsCh: kc,
		doneCh:       make(chan bool),
		logger:       logger,
		lobby:        atomic.Bool{},
		td:           &templateData{Status: g.Read()},
	}
}

func (t *Terminal) Start() {
	t.renderGame(t.td)
	t.renderLobby()
	go t.listenKB()
	<-t.doneCh
	close(t.doneCh)
}

func (t *Terminal) listenTetris() {
	for {
		select {
		case <-t.game.UpdateCh:
			t.td.mu.Lock()
			t.td.Status = t.game.Read()
			t.td.mu.Unlock()
			t.renderGame(t.td)
		case <-t.game.GameOverCh:
			t.td.mu.Lock()
			t.td.Status = t.game.Read()
			t.td.mu.Unlock()
			t.renderGame(t.td)
			t.renderLobby()
			fmt.Fprint(t.writer, "\033[11;9H|             Game Over :)             |")
			return
		}
	}
}

func (t *Terminal) listenKB() {
kbListener:
	for {
		event, ok := <-t.keysEventsCh
		if !ok {
			t.logger.Error("Keyboard events channel closed unexpectedly")
			break
		}
		if event.Err != nil {
			t.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			break
		}
		if event.Key == keyboard.KeyCtrlC {
			break
		}
		if t.lobby.Load() {
			switch event.Rune {
			case 'p':
				go t.listenTetris()
				t.game.Start()
			case 'q':
				break kbListener
			default:
				continue
			}
			t.lobby.Store(false)
			// clear the screen after the lobby
			fmt.Fprint(t.writer, "\033[2J\033[H")
		} else {
			switch {
			case event.Key == keyboard.KeyArrowDown || event.Rune == 's':
				t.game.Action(tetris.MoveDown)
			case event.Key == keyboard.KeyArrowLeft || event.Rune == 'a':
				t.game.Action(tetris.MoveLeft)
			case event.Key == keyboard.KeyArrowRight || event.Rune == 'd':
				t.game.Action(tetris.MoveRight)
			case event.Key == keyboard.KeyArrowUp || event.Rune == 'e':
				t.game.Action(tetris.RotateRight)
			case event.Rune == 'q':
				t.game.Action(tetris.RotateLeft)
			case event.Key == keyboard.KeySpace:
				t.game.Action(tetris.DropDown)
			}
		}
	}
	t.doneCh <- true
}

func (t *Terminal) renderLobby() {
	t.lobby.Store(true)
	fmt.Fprint(t.writer, "\033[10;9H+--------------------------------------+")
	fmt.Fprint(t.writer, "\033[11;9H|        Welcome to UglyTetris         |")
	fmt.Fprint(t.writer, "\033[12;9H|                                      |")
	fmt.Fprint(t.writer, "\033[13;9H|          (p)lay    (q)uit            |")
	fmt.Fprint(t.writer, "\033[14;9H+--------------------------------------+")
}

func (t *Terminal) renderGame(td *templateData) {
	fmt.Fprint(t.writer, resetPos)
	td.mu.Lock()
	defer td.mu.Unlock()
	if err := t.template.Execute(t.writer, td); err != nil {
		t.logger.Error("Unable to execute template", slog.String("error", err.Error()))
	}
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"stack":   stack,
		"sidebar": sidebar,
		"border":  border,
	}

	// we use the console raw so new lines don't automatically transform into carriage return
	// to fix that we add a carriage return to every new line in the layout.
	layout = strings.ReplaceAll(layout, "\n", "\r\n")
	layout = strings.ReplaceAll(layout, "UglyTetris", "\033[1mUglyTetris\033[0m")
	return template.New("layout").Funcs(funcMap).Parse(layout)
}

func cell(ansi string) string {
	return fmt.Sprintf("\x1b[7m\x1b[%sm[]\x1b[0m", ansi)
}

// stack renders the whole field top to bottom: the locked cells from
// the snapshot plus the falling piece overlaid at its grid position.
func stack(td *templateData) [][]string {
	s := td.Status
	rendered := make([][]string, s.Rows)
	for y := range rendered {
		rendered[y] = make([]string, s.Cols)
		for x := range rendered[y] {
			rendered[y][x] = "  "
			if s.Cells[y][x].Visible {
				rendered[y][x] = cell(ansiFor(s.Cells[y][x].Color))
			}
		}
	}

	if s.Active != nil {
		for iy, row := range s.Active.Cells {
			for ix, c := range row {
				if !c.Visible {
					continue
				}
				y := (s.Active.Y + iy*s.Active.BlockSize) / s.Active.BlockSize
				x := (s.Active.X + ix*s.Active.BlockSize) / s.Active.BlockSize
				if y < 0 || y >= s.Rows || x < 0 || x >= s.Cols {
					continue
				}
				rendered[y][x] = cell(ansiFor(c.Color))
			}
		}
	}
	return rendered
}

// sidebar renders the pane to the right of the field, one line per
// field row: score on top, then the next-piece preview. Short fields
// collapse the spacer rows so the preview still fits.
func sidebar(td *templateData, row int) string {
	scoreRow, nextRow := 1, 3
	if td.Status.Rows < 8 {
		scoreRow, nextRow = 0, 1
	}
	switch {
	case row == scoreRow:
		return fmt.Sprintf("   score: %d", td.Status.Score)
	case row == nextRow:
		return "   next:"
	case row > nextRow:
		preview := nextPiece(td)
		if i := row - nextRow - 1; i < len(preview) {
			return "   " + preview[i]
		}
	}
	return ""
}

// nextPiece renders the queued type into up to four 4-cell rows.
func nextPiece(td *templateData) []string {
	tet, err := tetris.NewTetrominoOfType(td.Status.Next, tetris.ColorFor(td.Status.Next))
	if err != nil {
		return nil
	}
	var rendered []string
	for y := 0; y < tet.VBlockCount(); y++ {
		row := []string{"  ", "  ", "  ", "  "}
		for x := 0; x < tet.HBlockCount(); x++ {
			b, _ := tet.BlockAt(y, x)
			if b.Visible() {
				row[x] = cell(ansiFor(b.Color()))
			}
		}
		rendered = append(rendered, strings.Join(row, ""))
	}
	return rendered
}

func border(td *templateData) string {
	return strings.Repeat("--", td.Status.Cols)
}
