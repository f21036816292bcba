package starweave

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownSpan is returned when decoding an unrecognised span name.
var ErrUnknownSpan = errors.New("starweave: unknown span")

// Span selects how the animation phase is turned into the visible part of
// a zigzag.
type Span int

const (
	// SpanGrow reveals the zigzag from its anchor as the phase goes from 0
	// to 1. Phases below 0 show nothing and phases above 1 the whole line.
	SpanGrow Span = iota
	// SpanWindow moves a window along the zigzag: the head grows in, then
	// the tail follows it out. The window lags the head by the configured
	// width, so one cycle lasts 1+width phase units.
	SpanWindow
	// SpanOscillate shrinks both ends towards the middle and back.
	SpanOscillate
)

var spanNames = map[Span]string{
	SpanGrow:      "grow",
	SpanWindow:    "window",
	SpanOscillate: "oscillate",
}

func (s Span) String() string {
	if name, ok := spanNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Span(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Span) MarshalText() ([]byte, error) {
	name, ok := spanNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSpan, int(s))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Span) UnmarshalText(text []byte) error {
	for span, name := range spanNames {
		if name == string(text) {
			*s = span
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownSpan, text)
}

// Bounds returns the visible [start, end] lengths of an n-segment zigzag at
// the given phase. Both values lie in [0, n] and start <= end.
func (s Span) Bounds(phase, width float64, n int) (start, end float64) {
	total := float64(n)
	switch s {
	case SpanWindow:
		u := wrapPeriod(phase, 1+width)
		start = clamp(u-width, 0, 1) * total
		end = clamp(u, 0, 1) * total
	case SpanOscillate:
		c := math.Cos(2 * math.Pi * wrap01(phase))
		inset := total * (1 - c) / 4
		start = inset
		end = total - inset
	default:
		end = clamp(phase, 0, 1) * total
	}
	start = clamp(start, 0, total)
	end = clamp(end, start, total)
	return start, end
}

// wrapPeriod maps x into [0, period).
func wrapPeriod(x, period float64) float64 {
	if !(period > 0) {
		return 0
	}
	return wrap01(x/period) * period
}
