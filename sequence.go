package starweave

import "math"

// Frame is one still of an exported animation cycle.
type Frame struct {
	Index    int     // Frame number (0-indexed)
	Total    int     // Total frames in the cycle
	Fraction float64 // Animation fraction shown by this frame, in [0, 1)
}

// Time returns the frame's offset from the start of the cycle in seconds.
func (f Frame) Time(period float64) float64 {
	return f.Fraction * period
}

// FrameCount returns the number of frames that cover one cycle at the
// configured frame rate. It is always at least 1.
func (c Config) FrameCount() int {
	n := int(math.Round(c.Period * float64(c.FPS)))
	return max(n, 1)
}

// Frames splits one animation cycle into evenly spaced frames.
// The last frame stops one step short of the cycle end, so the sequence
// loops without repeating a frame.
func Frames(config Config) []Frame {
	total := config.FrameCount()
	frames := make([]Frame, total)
	for i := range frames {
		frames[i] = Frame{
			Index:    i,
			Total:    total,
			Fraction: float64(i) / float64(total),
		}
	}
	return frames
}
