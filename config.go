package starweave

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// Errors returned when loading or validating a Config.
var (
	ErrInvalidConfig = errors.New("starweave: invalid config")
	ErrUnknownPreset = errors.New("starweave: unknown preset")
)

// StrokeStyle is one pass of the pen over every zigzag.
// Several passes with different widths give an outline-plus-fill look.
type StrokeStyle struct {
	Color Color   `json:"color"`
	Width float64 `json:"width"` // in pattern units

	// Phase is added to the ring phase before the visible span is
	// computed, so a pass can run ahead of or behind the others.
	Phase float64 `json:"phase,omitempty"`
}

// Config controls the pattern and its animation.
type Config struct {
	// Period is the length of one animation cycle in seconds.
	Period float64 `json:"period"`

	// Rings is the number of concentric rings, including the centre.
	// Ring l >= 1 holds Sides*l motifs.
	Rings int `json:"rings"`

	// Sides is the number of hexagon edges (1 to 6) that are filled with
	// motifs on every ring.
	Sides int `json:"sides"`

	// Segments is the full length of one zigzag.
	Segments int `json:"segments"`

	// RepeatRadius is the distance between neighbouring motifs.
	RepeatRadius float64 `json:"repeatRadius"`

	// PhaseScale (K) and RingLag (M) give ring l the phase
	// K*fraction - M*l, which makes the animation travel across rings.
	PhaseScale float64 `json:"phaseScale"`
	RingLag    float64 `json:"ringLag"`

	// Span selects the visible-length formula.
	Span Span `json:"span"`
	// WindowWidth is the lag of the tail behind the head for SpanWindow.
	WindowWidth float64 `json:"windowWidth,omitempty"`

	Strokes    []StrokeStyle `json:"strokes"`
	Background Color         `json:"background"`

	// FPS is the frame rate used when a cycle is exported as images.
	FPS int `json:"fps"`
}

var presets = map[string]func() Config{
	// A single motif that draws itself in over three seconds.
	"sketch": func() Config {
		return Config{
			Period:       DefaultPeriod,
			Rings:        1,
			Sides:        6,
			Segments:     5,
			RepeatRadius: 4 * CellWidth,
			PhaseScale:   1,
			Span:         SpanGrow,
			Strokes: []StrokeStyle{
				{Color: MustParseColor("black"), Width: 1},
			},
			Background: MustParseColor("white"),
			FPS:        20,
		}
	},

	// Nine rings growing one after another from the centre outwards.
	"rings": func() Config {
		return Config{
			Period:       6,
			Rings:        9,
			Sides:        6,
			Segments:     3,
			RepeatRadius: 4 * CellWidth,
			PhaseScale:   1,
			RingLag:      0.1,
			Span:         SpanGrow,
			Strokes: []StrokeStyle{
				{Color: MustParseColor("#222233"), Width: 2},
			},
			Background: MustParseColor("#f4f1ea"),
			FPS:        20,
		}
	},

	// Three rings of travelling windows drawn in three passes.
	"woven": func() Config {
		return Config{
			Period:       4,
			Rings:        3,
			Sides:        6,
			Segments:     4,
			RepeatRadius: 4 * CellWidth,
			PhaseScale:   2,
			RingLag:      0.25,
			Span:         SpanWindow,
			WindowWidth:  1,
			Strokes: []StrokeStyle{
				{Color: MustParseColor("#ff6347"), Width: 2, Phase: 0.5},
				{Color: MustParseColor("#0a0a1a"), Width: 8},
				{Color: MustParseColor("#f5f5f5"), Width: 4},
			},
			Background: MustParseColor("#0a0a1a"),
			FPS:        25,
		}
	},

	// Ends of every zigzag breathing in and out.
	"breathe": func() Config {
		return Config{
			Period:       5,
			Rings:        4,
			Sides:        6,
			Segments:     4,
			RepeatRadius: 4 * CellWidth,
			PhaseScale:   1,
			RingLag:      0.15,
			Span:         SpanOscillate,
			Strokes: []StrokeStyle{
				{Color: MustParseColor("midnightblue"), Width: 5},
				{Color: MustParseColor("gold"), Width: 2},
			},
			Background: MustParseColor("#101018"),
			FPS:        25,
		}
	},
}

// DefaultPreset is the preset returned by DefaultConfig.
const DefaultPreset = "woven"

// DefaultConfig returns the most elaborate preset.
func DefaultConfig() Config {
	return presets[DefaultPreset]()
}

// Preset returns a named configuration.
func Preset(name string) (Config, error) {
	build, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return build(), nil
}

// PresetNames lists the available presets in alphabetical order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadConfig reads a JSON file and overlays it on base.
// Fields missing from the file keep their value from base.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	cfg.Strokes = append([]StrokeStyle(nil), base.Strokes...)
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first problem with c, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	switch {
	case !(c.Period > 0):
		return fmt.Errorf("%w: period must be positive, got %g", ErrInvalidConfig, c.Period)
	case c.Rings < 1:
		return fmt.Errorf("%w: need at least one ring, got %d", ErrInvalidConfig, c.Rings)
	case c.Sides < 1 || c.Sides > 6:
		return fmt.Errorf("%w: sides must be in 1..6, got %d", ErrInvalidConfig, c.Sides)
	case c.Segments < 1:
		return fmt.Errorf("%w: need at least one segment, got %d", ErrInvalidConfig, c.Segments)
	case !(c.RepeatRadius > 0):
		return fmt.Errorf("%w: repeat radius must be positive, got %g", ErrInvalidConfig, c.RepeatRadius)
	case c.WindowWidth < 0:
		return fmt.Errorf("%w: window width must not be negative, got %g", ErrInvalidConfig, c.WindowWidth)
	case c.FPS < 1:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	case len(c.Strokes) == 0:
		return fmt.Errorf("%w: no strokes", ErrInvalidConfig)
	}
	if _, ok := spanNames[c.Span]; !ok {
		return fmt.Errorf("%w: %w %d", ErrInvalidConfig, ErrUnknownSpan, int(c.Span))
	}
	for i, s := range c.Strokes {
		if s.Width < 0 {
			return fmt.Errorf("%w: stroke %d has negative width %g", ErrInvalidConfig, i, s.Width)
		}
	}
	return nil
}

// TotalMotifs returns the number of motif placements per frame.
func (c Config) TotalMotifs() int {
	total := 0
	for ring := 0; ring < c.Rings; ring++ {
		total += motifsOnRing(ring, c.Sides)
	}
	return total
}
