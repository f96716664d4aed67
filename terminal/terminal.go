// Package terminal is the host side of the game: it maps keyboard
// events to board commands, owns the render loop and persists the
// game on quit. The board itself never touches the keyboard or the
// screen.
package terminal

import (
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"blockfall/board"

	"github.com/eiannone/keyboard"
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

var colorMap = map[board.Cell]string{
	board.I: Cyan,
	board.J: Blue,
	board.L: Orange,
	board.O: Yellow,
	board.S: Green,
	board.Z: Red,
	board.T: Magenta,
}

type Terminal struct {
	writer       io.Writer
	game         *board.Game
	template     *template.Template
	logger       *slog.Logger
	keysEventsCh <-chan keyboard.KeyEvent
	savePath     string
}

type Options struct {
	Writer   io.Writer
	Logger   *slog.Logger
	SavePath string
}

func New(o *Options) (*Terminal, error) {
	tp, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load layout template: %w", err)
	}
	kc, err := keyboard.GetKeys(20)
	if err != nil {
		return nil, fmt.Errorf("failed to open keyboard: %w", err)
	}
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var w io.Writer = os.Stdout
	if o.Writer != nil {
		w = o.Writer
	}
	return &Terminal{
		writer:       w,
		game:         board.NewGameWith(openBoard(o.SavePath, logger), logger),
		template:     tp,
		logger:       logger,
		keysEventsCh: kc,
		savePath:     o.SavePath,
	}, nil
}

// openBoard resumes the game found at path, or starts a new one when
// there is nothing usable to resume.
func openBoard(path string, logger *slog.Logger) *board.Board {
	if path == "" {
		return board.New()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return board.New()
	}
	b, err := board.Restore(data)
	if err != nil {
		logger.Warn("ignoring unreadable save file", slog.String("path", path), slog.String("error", err.Error()))
		return board.New()
	}
	return b
}

// Start runs the UI until the player quits, then saves the game if a
// save path is configured.
func (t *Terminal) Start() {
	defer keyboard.Close() //nolint: errcheck
	t.render(t.game.Read())
	t.game.Start()
	go t.listenGame()
	t.listenKB()
	t.game.Stop()
	t.save()
}

func (t *Terminal) listenGame() {
	for {
		select {
		case snap, ok := <-t.game.UpdateCh:
			if !ok {
				return
			}
			t.render(snap)
		case <-t.game.GameOverCh:
			t.logger.Info("game over")
		}
	}
}

func (t *Terminal) listenKB() {
kbListener:
	for {
		event, ok := <-t.keysEventsCh
		if !ok {
			t.logger.Error("keyboard events channel closed unexpectedly")
			break
		}
		if event.Err != nil {
			t.logger.Error("keysEvents error", slog.String("error", event.Err.Error()))
			break
		}
		switch {
		case event.Key == keyboard.KeyCtrlC || event.Rune == 'q':
			break kbListener
		case event.Key == keyboard.KeyEnter:
			t.game.Do(board.StartPause)
		case event.Key == keyboard.KeyArrowLeft:
			t.game.Do(board.MoveLeft)
		case event.Key == keyboard.KeyArrowRight:
			t.game.Do(board.MoveRight)
		case event.Key == keyboard.KeyArrowDown:
			t.game.Do(board.MoveDown)
		case event.Key == keyboard.KeyArrowUp:
			t.game.Do(board.Rotate)
		case event.Key == keyboard.KeySpace:
			t.game.Do(board.HardDrop)
		}
	}
}

func (t *Terminal) render(snap board.Snapshot) {
	fmt.Fprint(t.writer, resetPos)
	if err := t.template.Execute(t.writer, snap); err != nil {
		t.logger.Error("unable to execute template", slog.String("error", err.Error()))
	}
}

func (t *Terminal) save() {
	if t.savePath == "" {
		return
	}
	data, err := t.game.Save()
	if err != nil {
		t.logger.Error("unable to serialize game", slog.String("error", err.Error()))
		return
	}
	if err := os.WriteFile(t.savePath, data, 0o644); err != nil {
		t.logger.Error("unable to write save file", slog.String("path", t.savePath), slog.String("error", err.Error()))
	}
}

func loadTemplate() (*template.Template, error) {
	funcMap := template.FuncMap{
		"stack":    stackLines,
		"gameover": gameOverLine,
	}

	// we use the console raw so new lines don't automatically transform
	// into carriage returns. to fix that we add a carriage return to
	// every new line in the layout.
	withCR := strings.ReplaceAll(layout, "\n", "\r\n")
	return template.New("layout").Funcs(funcMap).Parse(withCR)
}

// stackLines renders every grid row, active piece included, as a
// 20-character line of colored blocks.
func stackLines(s board.Snapshot) []string {
	lines := make([]string, s.Rows)
	for r := range lines {
		var row strings.Builder
		for c := range s.Cols {
			color, ok := colorMap[s.At(r, c)]
			if !ok {
				row.WriteString("  ")
				continue
			}
			fmt.Fprintf(&row, "\x1b[7m\x1b[%sm[]\x1b[0m", color)
		}
		lines[r] = row.String()
	}
	return lines
}

// gameOverLine is fixed-width so a restart render blanks it again.
func gameOverLine(s board.Snapshot) string {
	const msg = " Game over - press Enter to restart"
	if !s.Status.GameOver {
		return strings.Repeat(" ", len(msg))
	}
	return msg
}
