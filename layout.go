package starweave

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Layout holds the motif placements of every ring.
type Layout struct {
	Config Config

	// Extent is the radius of a circle around the centre that contains
	// every fully drawn zigzag, in pattern units.
	Extent float64

	Rings []RingLayout
}

// RingLayout holds the placements of one ring.
type RingLayout struct {
	Ring       int     // 0 is the centre
	Radius     float64 // distance of the hexagon corners from the centre
	Placements []Placement
}

// Placement is the position of one motif.
type Placement struct {
	Slot  int // hexagon edge, 0 to Sides-1
	Index int // position along the edge, 0 to Ring-1
	X, Y  float64
}

// NewLayout computes motif positions for the given config.
//
// Ring 0 has a single placement at the centre. Ring l > 0 lies on a
// hexagon with corner radius l*RepeatRadius; each of the first Sides
// edges carries l motifs, evenly spaced from one corner towards the next.
//
// Negative ring and side counts are treated as zero.
func NewLayout(config Config) Layout {
	rings := max(config.Rings, 0)
	sides := max(config.Sides, 0)
	l := Layout{
		Config: config,
		Rings:  make([]RingLayout, rings),
	}

	for ring := 0; ring < rings; ring++ {
		radius := float64(ring) * config.RepeatRadius
		placements := make([]Placement, 0, motifsOnRing(ring, sides))

		if ring == 0 {
			placements = append(placements, Placement{})
		} else {
			for slot := 0; slot < sides; slot++ {
				from := hexCorner(slot)
				to := hexCorner(slot + 1)
				for i := 0; i < ring; i++ {
					p := SlurpPoint(from, to, float64(i)/float64(ring)).Mul(radius)
					placements = append(placements, Placement{
						Slot:  slot,
						Index: i,
						X:     p.X,
						Y:     p.Y,
					})
				}
			}
		}

		l.Rings[ring] = RingLayout{
			Ring:       ring,
			Radius:     radius,
			Placements: placements,
		}
	}

	outer := float64(max(rings-1, 0)) * config.RepeatRadius
	l.Extent = outer + motifReach(config.Segments)
	return l
}

// motifsOnRing returns the number of placements on a ring.
func motifsOnRing(ring, sides int) int {
	if ring == 0 {
		return 1
	}
	return sides * ring
}

// hexCorner returns corner s of the unit hexagon, at angle 2πs/6.
func hexCorner(s int) vec.Vec2 {
	angle := 2 * math.Pi * float64(s) / 6
	return vec.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
}

// motifReach returns the largest distance from the motif centre reached by
// a fully drawn zigzag of n segments. Rotation does not change distances,
// so both directions of the unrotated zigzag suffice.
func motifReach(n int) float64 {
	reach := 0.0
	for _, dir := range []Direction{Forward, Mirrored} {
		for _, p := range BuildZigZag(dir, n) {
			reach = math.Max(reach, p.Length())
		}
	}
	return reach
}

// ScaleToCanvas converts pattern coordinates to canvas pixels for a
// layout drawn centred on a width×height canvas with a 5% margin.
func (l Layout) ScaleToCanvas(x, y, width, height float64) (float64, float64) {
	p := NewPen(nil, viewMatrix(l.Extent, width, height)).Apply(vec.Vec2{X: x, Y: y})
	return p.X, p.Y
}
