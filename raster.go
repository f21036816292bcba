package starweave

import (
	"image"

	"github.com/fogleman/gg"
)

// Canvas is a raster Surface backed by a gg context.
type Canvas struct {
	dc  *gg.Context
	img *image.RGBA
}

var (
	_ Surface = (*Canvas)(nil)
	_ Sizer   = (*Canvas)(nil)
)

// NewCanvas creates a width×height canvas filled with the background color.
func NewCanvas(width, height int, background Color) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	dc := gg.NewContextForRGBA(img)
	dc.SetColor(background)
	dc.Clear()
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	return &Canvas{dc: dc, img: img}
}

// Size implements Sizer.
func (c *Canvas) Size() (float64, float64) {
	b := c.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Image returns the pixels drawn so far.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// BeginPath implements Surface.
func (c *Canvas) BeginPath() {
	c.dc.ClearPath()
}

// MoveTo implements Surface.
func (c *Canvas) MoveTo(x, y float64) {
	c.dc.MoveTo(x, y)
}

// LineTo implements Surface.
func (c *Canvas) LineTo(x, y float64) {
	c.dc.LineTo(x, y)
}

// Stroke implements Surface.
func (c *Canvas) Stroke() {
	c.dc.Stroke()
}

// SetStrokeColor implements Surface.
func (c *Canvas) SetStrokeColor(col Color) {
	c.dc.SetColor(col)
}

// SetLineWidth implements Surface.
func (c *Canvas) SetLineWidth(w float64) {
	c.dc.SetLineWidth(w)
}

// RenderFrame draws a single frame of the layout as an RGBA image.
func RenderFrame(frame Frame, layout Layout, width, height int) *image.RGBA {
	canvas := NewCanvas(width, height, layout.Config.Background)
	m := viewMatrix(layout.Extent, float64(width), float64(height))
	RenderPattern(NewPen(canvas, m), layout, frame.Fraction)
	return canvas.Image()
}
