package starweave

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Polyline is an ordered list of points. Segment i joins points i and i+1.
type Polyline []vec.Vec2

// Segments returns the number of segments, which is the total length of
// the polyline when every segment counts as length 1.
func (pl Polyline) Segments() int {
	if len(pl) == 0 {
		return 0
	}
	return len(pl) - 1
}

// Anchor is the first point of every zigzag.
func Anchor() vec.Vec2 {
	return vec.Vec2{X: -CellWidth / 2, Y: -CellHeight / 4}
}

// zigzagOffsets returns the two alternating steps L0 and L1.
func zigzagOffsets() [2]vec.Vec2 {
	return [2]vec.Vec2{
		{X: 0, Y: -2 * Side},
		{X: CellWidth, Y: -Side},
	}
}

// BuildZigZag returns the n+1 points of a zigzag with n segments.
//
// The zigzag starts at Anchor and alternates between the steps L0 = (0, -2S)
// and L1 = (W, -S). Forward zigzags take L0 first, mirrored ones take L1
// first and negate both components of every step.
func BuildZigZag(dir Direction, n int) Polyline {
	if n < 0 {
		n = 0
	}
	sign := dir.Sign()
	offsets := zigzagOffsets()

	idx := 0
	if sign < 0 {
		idx = 1
	}

	points := make(Polyline, 1, n+1)
	points[0] = Anchor()
	for range n {
		last := points[len(points)-1]
		points = append(points, last.Add(offsets[idx].Mul(sign)))
		idx = 1 - idx
	}
	return points
}

// SlurpPoint interpolates linearly between p0 (t = 0) and p1 (t = 1).
func SlurpPoint(p0, p1 vec.Vec2, t float64) vec.Vec2 {
	return p0.Add(p1.Sub(p0).Mul(t))
}

// PointAt returns the point at the given length along the polyline, where
// each segment has length 1. The length is clamped to the polyline.
func (pl Polyline) PointAt(length float64) vec.Vec2 {
	if len(pl) == 0 {
		return vec.Vec2{}
	}
	if len(pl) == 1 {
		return pl[0]
	}
	total := float64(pl.Segments())
	length = clamp(length, 0, total)
	i := int(math.Floor(length))
	if i >= pl.Segments() {
		return pl[len(pl)-1]
	}
	return SlurpPoint(pl[i], pl[i+1], length-float64(i))
}

// RenderVisiblePortion strokes the part of pl between start and end.
//
// Lengths are measured in segments. Start is clamped to at least 0 and end
// to at most the number of segments; an end before start leaves only the
// starting move. Only the final, partially visible segment is interpolated,
// so an end at or beyond the last point reaches it exactly.
func RenderVisiblePortion(pen Pen, pl Polyline, start, end float64) {
	if len(pl) == 0 {
		return
	}
	total := float64(pl.Segments())
	start = clamp(start, 0, total)
	end = clamp(end, start, total)

	first := 0
	if len(pl) > 1 {
		first = min(int(math.Floor(start)), pl.Segments())
	}

	pen.BeginPath()
	pen.MoveTo(pl.PointAt(start))

	remaining := end - float64(first)
	for i := first + 1; i < len(pl) && remaining > 0; i++ {
		p := pl[i]
		if remaining < 1 {
			p = SlurpPoint(pl[i-1], pl[i], remaining)
		}
		pen.LineTo(p)
		remaining--
	}
	pen.Stroke()
}

// clamp limits x to [lo, hi]. NaN maps to lo.
func clamp(x, lo, hi float64) float64 {
	if x < lo || math.IsNaN(x) {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
