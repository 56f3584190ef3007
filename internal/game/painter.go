package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/wclock/internal/face"
)

// cornerSegments is the number of straight pieces used per rounded corner.
const cornerSegments = 8

type transform struct {
	geom  ebiten.GeoM
	scale float64
}

// painter implements face.Canvas on top of an ebiten image.
// Shapes are transformed on the CPU and submitted as triangles, so every
// primitive honours the full rotate/translate/scale stack.
type painter struct {
	dst   *ebiten.Image
	white *ebiten.Image
	font  *text.GoTextFaceSource

	cur   transform
	stack []transform

	vertices []ebiten.Vertex
	indices  []uint16
}

func newPainter(font *text.GoTextFaceSource) *painter {
	return &painter{font: font}
}

// begin resets the transform stack and targets dst.
func (p *painter) begin(dst *ebiten.Image) {
	if p.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		p.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	p.dst = dst
	p.cur = transform{scale: 1}
	p.stack = p.stack[:0]
}

func (p *painter) Save() {
	p.stack = append(p.stack, p.cur)
}

func (p *painter) Restore() {
	if len(p.stack) == 0 {
		return
	}
	p.cur = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *painter) Translate(dx, dy float64) {
	var local ebiten.GeoM
	local.Translate(dx, dy)
	p.prepend(local)
}

func (p *painter) Rotate(deg float64) {
	var local ebiten.GeoM
	local.Rotate(deg * math.Pi / 180)
	p.prepend(local)
}

func (p *painter) Scale(sx, sy float64) {
	var local ebiten.GeoM
	local.Scale(sx, sy)
	p.prepend(local)
	p.cur.scale *= math.Sqrt(math.Abs(sx * sy))
}

// prepend applies local before the current transform, so later calls act in local space.
func (p *painter) prepend(local ebiten.GeoM) {
	local.Concat(p.cur.geom)
	p.cur.geom = local
}

func (p *painter) point(x, y float64) (float32, float32) {
	dx, dy := p.cur.geom.Apply(x, y)
	return float32(dx), float32(dy)
}

func (p *painter) FillCircle(cx, cy, r float64, clr color.NRGBA) {
	x, y := p.point(cx, cy)
	vector.DrawFilledCircle(p.dst, x, y, float32(r*p.cur.scale), clr, true)
}

func (p *painter) StrokeLine(x0, y0, x1, y1, width float64, cap face.Cap, clr color.NRGBA) {
	var path vector.Path
	path.MoveTo(p.point(x0, y0))
	path.LineTo(p.point(x1, y1))

	op := &vector.StrokeOptions{Width: float32(width * p.cur.scale)}
	if cap == face.CapRound {
		op.LineCap = vector.LineCapRound
	}
	p.vertices, p.indices = path.AppendVerticesAndIndicesForStroke(p.vertices[:0], p.indices[:0], op)
	p.drawTriangles(clr)
}

func (p *painter) FillRoundedRect(x, y, w, h, radius float64, clr color.NRGBA) {
	radius = min(radius, w/2, h/2)

	// corner centers, clockwise from top-left, with the angle each arc starts at
	corners := [4]struct{ cx, cy, start float64 }{
		{x + radius, y + radius, math.Pi},
		{x + w - radius, y + radius, 1.5 * math.Pi},
		{x + w - radius, y + h - radius, 0},
		{x + radius, y + h - radius, 0.5 * math.Pi},
	}

	var path vector.Path
	first := true
	for _, c := range corners {
		for i := 0; i <= cornerSegments; i++ {
			a := c.start + float64(i)/cornerSegments*math.Pi/2
			px, py := p.point(c.cx+radius*math.Cos(a), c.cy+radius*math.Sin(a))
			if first {
				path.MoveTo(px, py)
				first = false
				continue
			}
			path.LineTo(px, py)
		}
	}
	path.Close()

	p.vertices, p.indices = path.AppendVerticesAndIndicesForFilling(p.vertices[:0], p.indices[:0])
	p.drawTriangles(clr)
}

func (p *painter) DrawText(x, y, w, h float64, s string, size float64, clr color.NRGBA) {
	if p.font == nil {
		return
	}
	cx, cy := p.cur.geom.Apply(x+w/2, y+h/2)

	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(p.dst, s, &text.GoTextFace{Source: p.font, Size: size * p.cur.scale}, op)
}

func (p *painter) drawTriangles(clr color.NRGBA) {
	r, g, b, a := clr.RGBA()
	for i := range p.vertices {
		v := &p.vertices[i]
		v.SrcX = 1
		v.SrcY = 1
		v.ColorR = float32(r) / 0xffff
		v.ColorG = float32(g) / 0xffff
		v.ColorB = float32(b) / 0xffff
		v.ColorA = float32(a) / 0xffff
	}

	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	p.dst.DrawTriangles(p.vertices, p.indices, p.white, op)
}

// loadFont resolves the configured font name: one of the bundled Go fonts or a font file path.
func loadFont(name string) (*text.GoTextFaceSource, error) {
	var data []byte
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "goregular":
		data = goregular.TTF
	case "gomono":
		data = gomono.TTF
	case "gobold":
		data = gobold.TTF
	default:
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read font %q: %w", name, err)
		}
		data = b
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %q: %w", name, err)
	}
	return src, nil
}
