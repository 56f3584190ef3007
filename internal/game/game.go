package game

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/wclock/internal/config"
	"github.com/iburimskiy/wclock/internal/face"
)

const windowTitle = "Analog Clock"

// Game is the ebiten game driving the clock window.
// The face is painted into an offscreen image on refresh ticks and
// composited on every frame.
type Game struct {
	cfg *config.Config
	now func() time.Time

	painter *painter
	face    *ebiten.Image
	refresh *Refresh
	dirty   bool

	input interaction
	quit  *quitPrompt
	chime *chime
}

func New(cfg *config.Config) *Game {
	font, err := loadFont(cfg.Font)
	if err != nil {
		log.Printf("Warning: %v. Using %s.", err, config.DefaultFont)
		font, err = loadFont(config.DefaultFont)
		if err != nil {
			log.Printf("Warning: %v. The date badge will have no text.", err)
		}
	}

	return &Game{
		cfg:     cfg,
		now:     time.Now,
		painter: newPainter(font),
		refresh: NewRefresh(cfg),
		quit:    newQuitPrompt(),
		chime:   newChime(),
	}
}

// Configure applies the window style and geometry before the game starts.
func Configure(cfg *config.Config, screenWidth, screenHeight int) Rect {
	win := Place(cfg.Window, screenWidth, screenHeight)

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(win.Width, win.Height)
	ebiten.SetWindowPosition(win.X, win.Y)
	ebiten.SetWindowSizeLimits(config.MinWindowSize, config.MinWindowSize, -1, -1)
	ebiten.SetWindowDecorated(!cfg.Window.Frameless)
	ebiten.SetWindowFloating(cfg.Window.AlwaysOnTop)
	if !cfg.Window.Frameless {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return win
}

// RunOptions returns the options the clock window must be started with.
func RunOptions(cfg *config.Config) *ebiten.RunGameOptions {
	return &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       cfg.Window.Tool,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || g.quit.confirmed() {
		return ebiten.Termination
	}

	g.handleInput()

	now := g.now()
	if g.refresh.Due(now) {
		g.dirty = true
	}
	if g.cfg.Chime && g.chime.due(now) {
		if err := g.chime.play(); err != nil {
			log.Printf("Warning: chime failed: %v", err)
		}
	}
	return nil
}

func (g *Game) handleInput() {
	cx, cy := ebiten.CursorPosition()
	wx, wy := ebiten.WindowPosition()
	ww, wh := ebiten.WindowSize()
	win := Rect{X: wx, Y: wy, Width: ww, Height: wh}

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.input.press(win, cx, cy)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.input.release()
	case g.input.active():
		g.setGeometry(win, g.input.move(win, cx, cy))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.quit.show()
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.setGeometry(win, wheelResize(win, dy))
	}
}

func (g *Game) setGeometry(old, next Rect) {
	if next.X != old.X || next.Y != old.Y {
		ebiten.SetWindowPosition(next.X, next.Y)
	}
	if next.Width != old.Width || next.Height != old.Height {
		ebiten.SetWindowSize(next.Width, next.Height)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if g.face == nil || g.face.Bounds().Dx() != w || g.face.Bounds().Dy() != h {
		if g.face != nil {
			g.face.Deallocate()
		}
		g.face = ebiten.NewImage(w, h)
		g.dirty = true
	}

	if g.dirty {
		g.face.Clear()
		g.painter.begin(g.face)
		face.Paint(g.painter, w, h, g.now(), g.cfg)
		g.dirty = false
	}

	opacity := g.cfg.Window.Opacity
	if config.Visible(g.cfg.Background) {
		bg := g.cfg.Background
		bg.A = uint8(float64(bg.A) * opacity)
		screen.Fill(bg)
	}

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(opacity))
	screen.DrawImage(g.face, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
