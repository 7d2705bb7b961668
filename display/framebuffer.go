package display

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/FlyingObject1024/information-board/board"
)

// Framebuffer renders layout plans into an in-memory RGBA image. It backs
// the compose one-shot PNG output and the renderer-level tests. The glyph
// face is pluggable so a bitmap font matching the panel can be swapped in;
// the default face only covers ASCII, which is enough to position runs and
// inspect pixels.
type Framebuffer struct {
	img  *image.RGBA
	face font.Face
}

// NewFramebuffer creates a framebuffer of the given panel size.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
	}
}

// SetFace replaces the glyph face used for text runs.
func (f *Framebuffer) SetFace(face font.Face) {
	f.face = face
}

// Image returns the last rendered frame.
func (f *Framebuffer) Image() *image.RGBA {
	return f.img
}

// Render draws the plan onto a fresh black frame, applying operations in
// plan order so clears erase earlier runs.
func (f *Framebuffer) Render(p *board.Plan) error {
	draw.Draw(f.img, f.img.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	for _, op := range p.Ops {
		switch op.Kind {
		case board.OpText:
			d := font.Drawer{
				Dst:  f.img,
				Src:  image.NewUniform(color.RGBA{R: op.Color.R, G: op.Color.G, B: op.Color.B, A: 255}),
				Face: f.face,
				Dot:  fixed.P(op.X, op.Y),
			}
			d.DrawString(op.Text)
		case board.OpClear:
			rect := image.Rect(op.Rect.X0, op.Rect.Y0, op.Rect.X1+1, op.Rect.Y1+1)
			draw.Draw(f.img, rect, image.NewUniform(color.Black), image.Point{}, draw.Src)
		}
	}
	return nil
}

// Close is a no-op; the framebuffer holds no device handle.
func (f *Framebuffer) Close() error {
	return nil
}

// WritePNG encodes the last rendered frame.
func (f *Framebuffer) WritePNG(w io.Writer) error {
	return png.Encode(w, f.img)
}
