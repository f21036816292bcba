package starweave

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// SVGSurface is a vector Surface that writes one <path> element per stroke.
type SVGSurface struct {
	canvas *svg.SVG

	width, height int
	d             strings.Builder
	color         Color
	lineWidth     float64
}

var (
	_ Surface = (*SVGSurface)(nil)
	_ Sizer   = (*SVGSurface)(nil)
)

// NewSVGSurface starts an SVG document of the given size on w.
// Call End to close the document.
func NewSVGSurface(w io.Writer, width, height int, background Color) *SVGSurface {
	s := &SVGSurface{
		canvas:    svg.New(w),
		width:     width,
		height:    height,
		lineWidth: 1,
	}
	s.canvas.Start(width, height)
	s.canvas.Rect(0, 0, width, height, "fill:"+background.Hex())
	s.canvas.Gstyle("fill:none;stroke-linecap:round;stroke-linejoin:round")
	return s
}

// End closes the document.
func (s *SVGSurface) End() {
	s.canvas.Gend()
	s.canvas.End()
}

// Size implements Sizer.
func (s *SVGSurface) Size() (float64, float64) {
	return float64(s.width), float64(s.height)
}

// BeginPath implements Surface.
func (s *SVGSurface) BeginPath() {
	s.d.Reset()
}

// MoveTo implements Surface.
func (s *SVGSurface) MoveTo(x, y float64) {
	s.point('M', x, y)
}

// LineTo implements Surface.
func (s *SVGSurface) LineTo(x, y float64) {
	s.point('L', x, y)
}

func (s *SVGSurface) point(cmd byte, x, y float64) {
	if s.d.Len() > 0 {
		s.d.WriteByte(' ')
	}
	s.d.WriteByte(cmd)
	s.d.WriteString(formatCoord(x))
	s.d.WriteByte(',')
	s.d.WriteString(formatCoord(y))
}

// Stroke implements Surface.
func (s *SVGSurface) Stroke() {
	if s.d.Len() == 0 {
		return
	}
	style := fmt.Sprintf("stroke:%s;stroke-width:%s", s.color.Hex(), formatCoord(s.lineWidth))
	s.canvas.Path(s.d.String(), style)
	s.d.Reset()
}

// SetStrokeColor implements Surface.
func (s *SVGSurface) SetStrokeColor(c Color) {
	s.color = c
}

// SetLineWidth implements Surface.
func (s *SVGSurface) SetLineWidth(w float64) {
	s.lineWidth = w
}

// formatCoord prints a coordinate with two decimals and no trailing zeros.
func formatCoord(x float64) string {
	x = math.Round(x*100) / 100
	if x == 0 {
		x = 0 // avoid "-0"
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// RenderSVG writes one frame of the layout as an SVG document.
func RenderSVG(w io.Writer, layout Layout, fraction float64, width, height int) error {
	ew := &errWriter{w: w}
	surface := NewSVGSurface(ew, width, height, layout.Config.Background)
	m := viewMatrix(layout.Extent, float64(width), float64(height))
	RenderPattern(NewPen(surface, m), layout, fraction)
	surface.End()
	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	return nil
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
