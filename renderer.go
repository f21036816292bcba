package starweave

import (
	"math"

	"seehuhn.de/go/geom/matrix"
)

// motifRotations is the order of the rotational symmetry of one motif.
const motifRotations = 6

// Renderer animates and draws a pattern.
// It is driven by a host loop that calls Update and then Render once per
// frame; it is not safe for concurrent use.
type Renderer struct {
	layout Layout
	anim   Animation
}

// NewRenderer creates a renderer at the start of the animation cycle.
// The config is not validated; see Config.Validate.
func NewRenderer(config Config) *Renderer {
	return &Renderer{
		layout: NewLayout(config),
		anim:   NewAnimation(config.Period),
	}
}

// Update simulates dt seconds passing.
func (r *Renderer) Update(dt float64) {
	r.anim.Advance(dt)
}

// Seek jumps to a fraction of the animation cycle.
func (r *Renderer) Seek(fraction float64) {
	r.anim.Seek(fraction)
}

// Fraction returns the current position in the animation cycle.
func (r *Renderer) Fraction() float64 {
	return r.anim.Fraction()
}

// Layout returns the motif placements used by the renderer.
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Render draws the current frame. Surfaces implementing Sizer with a
// positive size get the pattern centred and scaled to fit; all others
// receive pattern coordinates with the origin at the pattern centre.
func (r *Renderer) Render(s Surface) {
	m := matrix.Identity
	if sz, ok := s.(Sizer); ok {
		if w, h := sz.Size(); w > 0 && h > 0 {
			m = viewMatrix(r.layout.Extent, w, h)
		}
	}
	RenderPattern(NewPen(s, m), r.layout, r.anim.Fraction())
}

// RenderPattern draws every ring of the layout at the given fraction.
func RenderPattern(pen Pen, layout Layout, fraction float64) {
	cfg := layout.Config
	for _, ring := range layout.Rings {
		phase := cfg.PhaseScale*fraction - cfg.RingLag*float64(ring.Ring)
		for _, pl := range ring.Placements {
			RenderMotif(pen.Translate(pl.X, pl.Y), cfg, phase)
		}
	}
}

// RenderMotif draws the six-fold star of zigzags around the pen's origin.
// Every stroke style is drawn over the whole motif before the next one, so
// later passes sit on top of earlier ones.
func RenderMotif(pen Pen, cfg Config, phase float64) {
	for _, style := range cfg.Strokes {
		start, end := cfg.Span.Bounds(phase+style.Phase, cfg.WindowWidth, cfg.Segments)
		n := int(math.Ceil(end))

		forward := BuildZigZag(Forward, n)
		mirrored := BuildZigZag(Mirrored, n)

		pen.SetStyle(style)
		for k := 0; k < motifRotations; k++ {
			rotated := pen.Rotate(2 * math.Pi * float64(k) / motifRotations)
			RenderVisiblePortion(rotated, forward, start, end)
			RenderVisiblePortion(rotated, mirrored, start, end)
		}
	}
}
