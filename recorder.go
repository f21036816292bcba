package starweave

import (
	"errors"

	"seehuhn.de/go/geom/vec"
)

// Errors returned by Recorder.Paths.
var (
	ErrNoCurrentPoint   = errors.New("starweave: line without a current point")
	ErrUnterminatedPath = errors.New("starweave: path was never stroked")
)

// Op identifies a recorded drawing call.
type Op int

const (
	OpBeginPath Op = iota
	OpMoveTo
	OpLineTo
	OpStroke
	OpSetColor
	OpSetWidth
)

func (op Op) String() string {
	switch op {
	case OpBeginPath:
		return "BeginPath"
	case OpMoveTo:
		return "MoveTo"
	case OpLineTo:
		return "LineTo"
	case OpStroke:
		return "Stroke"
	case OpSetColor:
		return "SetColor"
	case OpSetWidth:
		return "SetWidth"
	}
	return "Op(?)"
}

// Command is one recorded drawing call. Only the fields used by Op are set.
type Command struct {
	Op    Op
	X, Y  float64
	Color Color
	Width float64
}

// Recorder is a Surface that remembers every call.
// It is used to inspect and replay frames.
type Recorder struct {
	Commands []Command

	width, height float64
}

// NewRecorder returns a recorder. If width and height are positive the
// recorder reports them through Size, so renderers fit the pattern to it.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

var _ Surface = (*Recorder)(nil)

// Size implements Sizer.
func (r *Recorder) Size() (float64, float64) {
	return r.width, r.height
}

// BeginPath implements Surface.
func (r *Recorder) BeginPath() {
	r.Commands = append(r.Commands, Command{Op: OpBeginPath})
}

// MoveTo implements Surface.
func (r *Recorder) MoveTo(x, y float64) {
	r.Commands = append(r.Commands, Command{Op: OpMoveTo, X: x, Y: y})
}

// LineTo implements Surface.
func (r *Recorder) LineTo(x, y float64) {
	r.Commands = append(r.Commands, Command{Op: OpLineTo, X: x, Y: y})
}

// Stroke implements Surface.
func (r *Recorder) Stroke() {
	r.Commands = append(r.Commands, Command{Op: OpStroke})
}

// SetStrokeColor implements Surface.
func (r *Recorder) SetStrokeColor(c Color) {
	r.Commands = append(r.Commands, Command{Op: OpSetColor, Color: c})
}

// SetLineWidth implements Surface.
func (r *Recorder) SetLineWidth(w float64) {
	r.Commands = append(r.Commands, Command{Op: OpSetWidth, Width: w})
}

// Count returns how many commands with the given op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset discards all recorded commands.
func (r *Recorder) Reset() {
	r.Commands = r.Commands[:0]
}

// Path is a stroked polyline reassembled from recorded commands.
type Path struct {
	Points []vec.Vec2
	Color  Color
	Width  float64
}

// Paths reassembles the stroked polylines from the recorded commands.
// A MoveTo inside a path starts a new polyline with the same style.
func (r *Recorder) Paths() ([]Path, error) {
	var (
		paths   []Path
		current []Path
		color   Color
		width   float64
		open    bool
	)

	for _, c := range r.Commands {
		switch c.Op {
		case OpSetColor:
			color = c.Color
		case OpSetWidth:
			width = c.Width
		case OpBeginPath:
			current = current[:0]
			open = true
		case OpMoveTo:
			current = append(current, Path{
				Points: []vec.Vec2{{X: c.X, Y: c.Y}},
				Color:  color,
				Width:  width,
			})
			open = true
		case OpLineTo:
			if len(current) == 0 {
				return nil, ErrNoCurrentPoint
			}
			last := &current[len(current)-1]
			last.Points = append(last.Points, vec.Vec2{X: c.X, Y: c.Y})
		case OpStroke:
			paths = append(paths, current...)
			current = current[:0]
			open = false
		}
	}

	if open && len(current) > 0 {
		return nil, ErrUnterminatedPath
	}
	return paths, nil
}
