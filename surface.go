package starweave

import (
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Surface is the set of drawing primitives the pattern needs.
// All calls are side effects; coordinates are already in surface space.
type Surface interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke()
	SetStrokeColor(c Color)
	SetLineWidth(w float64)
}

// Sizer is implemented by surfaces with a known extent.
// Renderer uses it to centre the pattern and fit it to the surface.
type Sizer interface {
	Size() (width, height float64)
}

// Pen draws onto a Surface through a transformation matrix.
//
// Pens are values: Translate and Rotate return a new pen and leave the
// receiver unchanged, so a nested placement never needs to undo its
// transformation.
type Pen struct {
	s Surface
	m matrix.Matrix
}

// NewPen returns a pen that maps pattern coordinates to surface
// coordinates using m.
func NewPen(s Surface, m matrix.Matrix) Pen {
	return Pen{s: s, m: m}
}

// Matrix returns the pen's current transformation.
func (p Pen) Matrix() matrix.Matrix {
	return p.m
}

// Translate returns a pen whose origin is moved to (dx, dy) in the
// receiver's coordinate system.
func (p Pen) Translate(dx, dy float64) Pen {
	return Pen{s: p.s, m: matrix.Translate(dx, dy).Mul(p.m)}
}

// Rotate returns a pen rotated by theta radians about the receiver's origin.
func (p Pen) Rotate(theta float64) Pen {
	return Pen{s: p.s, m: matrix.Rotate(theta).Mul(p.m)}
}

// Apply maps a point from pen coordinates to surface coordinates.
func (p Pen) Apply(v vec.Vec2) vec.Vec2 {
	m := p.m
	return vec.Vec2{
		X: v.X*m[0] + v.Y*m[2] + m[4],
		Y: v.X*m[1] + v.Y*m[3] + m[5],
	}
}

// Scale returns the linear magnification of the pen's matrix.
// Line widths are multiplied by this factor.
func (p Pen) Scale() float64 {
	m := p.m
	return math.Sqrt(math.Abs(m[0]*m[3] - m[1]*m[2]))
}

// SetStyle selects color and width for the next stroke.
func (p Pen) SetStyle(style StrokeStyle) {
	p.s.SetStrokeColor(style.Color)
	p.s.SetLineWidth(style.Width * p.Scale())
}

// BeginPath starts a new path.
func (p Pen) BeginPath() {
	p.s.BeginPath()
}

// MoveTo starts a subpath at v.
func (p Pen) MoveTo(v vec.Vec2) {
	q := p.Apply(v)
	p.s.MoveTo(q.X, q.Y)
}

// LineTo adds a line from the current point to v.
func (p Pen) LineTo(v vec.Vec2) {
	q := p.Apply(v)
	p.s.LineTo(q.X, q.Y)
}

// Stroke draws the current path.
func (p Pen) Stroke() {
	p.s.Stroke()
}

// viewMatrix maps pattern coordinates (origin at the pattern centre,
// radius extent) onto a width×height surface with a 5% margin.
func viewMatrix(extent, width, height float64) matrix.Matrix {
	cx := width / 2
	cy := height / 2
	scale := math.Min(cx, cy) * 0.95 / extent
	return matrix.Scale(scale, scale).Mul(matrix.Translate(cx, cy))
}
