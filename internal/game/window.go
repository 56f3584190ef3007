package game

import (
	"math"

	"github.com/iburimskiy/wclock/internal/config"
)

const (
	// resizeMargin is the size of the bottom-right hot corner that starts a resize.
	resizeMargin = 10
	// wheelStep is how much one wheel notch grows or shrinks the window.
	wheelStep = 10
)

// Rect is a window geometry in screen pixels.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Place resolves the configured window geometry against a screen of the given size.
// Negative coordinates are measured from the right and bottom edges.
func Place(w config.Window, screenWidth, screenHeight int) Rect {
	r := Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
	if r.X < 0 {
		r.X = screenWidth + r.X
	}
	if r.Y < 0 {
		r.Y = screenHeight + r.Y
	}
	return r
}

// interaction tracks an in-progress drag or corner resize.
// Cursor positions are window-local; they are turned into screen positions
// with the window origin so that moving the window does not feed back.
type interaction struct {
	dragging bool
	resizing bool
	lastX    int
	lastY    int
}

func onResizeCorner(win Rect, x, y int) bool {
	return x >= win.Width-resizeMargin && y >= win.Height-resizeMargin
}

func (in *interaction) active() bool {
	return in.dragging || in.resizing
}

func (in *interaction) press(win Rect, x, y int) {
	in.lastX, in.lastY = win.X+x, win.Y+y
	if onResizeCorner(win, x, y) {
		in.resizing = true
		return
	}
	in.dragging = true
}

// move returns the window geometry after the cursor moved to (x, y).
func (in *interaction) move(win Rect, x, y int) Rect {
	gx, gy := win.X+x, win.Y+y
	dx, dy := gx-in.lastX, gy-in.lastY
	in.lastX, in.lastY = gx, gy

	switch {
	case in.resizing:
		win.Width = max(win.Width+dx, config.MinWindowSize)
		win.Height = max(win.Height+dy, config.MinWindowSize)
	case in.dragging:
		win.X += dx
		win.Y += dy
	}
	return win
}

func (in *interaction) release() {
	in.dragging = false
	in.resizing = false
}

// wheelResize grows the window for wheel-down and shrinks it for wheel-up.
func wheelResize(win Rect, wheelY float64) Rect {
	if wheelY == 0 {
		return win
	}
	notches := int(math.Ceil(math.Abs(wheelY)))
	step := wheelStep * notches
	if wheelY > 0 {
		step = -step
	}
	win.Width = max(win.Width+step, config.MinWindowSize)
	win.Height = max(win.Height+step, config.MinWindowSize)
	return win
}
