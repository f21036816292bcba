package starweave

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Rings != 3 {
		t.Fatalf("expected 3 rings, got %d", c.Rings)
	}
	if c.Span != SpanWindow {
		t.Fatalf("expected window span, got %v", c.Span)
	}
	if len(c.Strokes) != 3 {
		t.Fatalf("expected 3 stroke passes, got %d", len(c.Strokes))
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestPresetsValid(t *testing.T) {
	names := PresetNames()
	if len(names) != 4 {
		t.Fatalf("expected 4 presets, got %v", names)
	}
	for _, name := range names {
		c, err := Preset(name)
		if err != nil {
			t.Fatalf("Preset(%q): %v", name, err)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}

	if _, err := Preset("spiral"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestPresetsAreIndependent(t *testing.T) {
	a, _ := Preset("woven")
	a.Strokes[0].Width = 99
	b, _ := Preset("woven")
	if b.Strokes[0].Width == 99 {
		t.Fatal("modifying one preset copy changed another")
	}
}

func TestTotalMotifs(t *testing.T) {
	tests := []struct {
		rings, sides int
		want         int
	}{
		{1, 6, 1},
		{3, 6, 1 + 6 + 12},
		{9, 6, 1 + 6*(1+2+3+4+5+6+7+8)},
		{3, 2, 1 + 2 + 4},
	}
	for _, tt := range tests {
		c := Config{Rings: tt.rings, Sides: tt.sides}
		if got := c.TotalMotifs(); got != tt.want {
			t.Errorf("TotalMotifs(rings=%d, sides=%d) = %d, want %d", tt.rings, tt.sides, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero period", func(c *Config) { c.Period = 0 }},
		{"NaN period", func(c *Config) { c.Period = math.NaN() }},
		{"no rings", func(c *Config) { c.Rings = 0 }},
		{"no sides", func(c *Config) { c.Sides = 0 }},
		{"seven sides", func(c *Config) { c.Sides = 7 }},
		{"no segments", func(c *Config) { c.Segments = 0 }},
		{"zero radius", func(c *Config) { c.RepeatRadius = 0 }},
		{"negative window", func(c *Config) { c.WindowWidth = -1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"no strokes", func(c *Config) { c.Strokes = nil }},
		{"negative width", func(c *Config) { c.Strokes[0].Width = -2 }},
		{"bad span", func(c *Config) { c.Span = Span(42) }},
	}
	for _, tt := range tests {
		c := DefaultConfig()
		tt.modify(&c)
		err := c.Validate()
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pattern.json")
	data := `{"rings": 2, "span": "oscillate", "background": "navy", "strokes": [{"color": "#f80", "width": 3}]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	base, _ := Preset("sketch")
	c, err := LoadConfig(path, base)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if c.Rings != 2 {
		t.Errorf("rings = %d, want 2", c.Rings)
	}
	if c.Span != SpanOscillate {
		t.Errorf("span = %v, want oscillate", c.Span)
	}
	if c.Background != (Color{R: 0, G: 0, B: 0x80}) {
		t.Errorf("background = %s, want #000080", c.Background.Hex())
	}
	if c.Segments != base.Segments {
		t.Errorf("segments = %d, want %d from base", c.Segments, base.Segments)
	}
	if len(c.Strokes) != 1 || c.Strokes[0].Color.Hex() != "#ff8800" {
		t.Errorf("strokes = %+v", c.Strokes)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	base := DefaultConfig()

	if _, err := LoadConfig(filepath.Join(dir, "missing.json"), base); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v", err)
	}

	tests := []struct {
		name string
		data string
	}{
		{"syntax", `{"rings": `},
		{"span", `{"span": "spiral"}`},
		{"color", `{"background": "not-a-color"}`},
		{"invalid", `{"rings": 0}`},
	}
	for _, tt := range tests {
		path := filepath.Join(dir, tt.name+".json")
		if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path, base); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestConfigJSON(t *testing.T) {
	data, err := json.Marshal(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{`"span":"window"`, `"background":"#0a0a1a"`, `"phase":0.5`} {
		if !strings.Contains(s, want) {
			t.Errorf("JSON %s does not contain %s", s, want)
		}
	}
}

// --- Color tests ---

func TestColorHex(t *testing.T) {
	tests := []struct {
		color Color
		want  string
	}{
		{Color{0x0a, 0x0a, 0x1a}, "#0a0a1a"},
		{Color{0xff, 0x63, 0x47}, "#ff6347"},
		{Color{0, 0, 0}, "#000000"},
		{Color{255, 255, 255}, "#ffffff"},
	}
	for _, tt := range tests {
		if got := tt.color.Hex(); got != tt.want {
			t.Errorf("Color{%d,%d,%d}.Hex() = %q, want %q", tt.color.R, tt.color.G, tt.color.B, got, tt.want)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#ff6347", Color{0xff, 0x63, 0x47}},
		{"#FF6347", Color{0xff, 0x63, 0x47}},
		{"#f80", Color{0xff, 0x88, 0x00}},
		{"tomato", Color{0xff, 0x63, 0x47}},
		{" Black ", Color{0, 0, 0}},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("ParseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseColor(%q) = %s, want %s", tt.in, got.Hex(), tt.want.Hex())
		}
	}

	for _, bad := range []string{"", "#12", "#gggggg", "#1234567", "notacolor"} {
		if _, err := ParseColor(bad); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q): expected ErrInvalidColor, got %v", bad, err)
		}
	}
}

func TestColorRGBA(t *testing.T) {
	r, g, b, a := Color{R: 0xff, G: 0x80, B: 0}.RGBA()
	if r != 0xffff || g != 0x8080 || b != 0 || a != 0xffff {
		t.Errorf("RGBA() = %x %x %x %x", r, g, b, a)
	}
}

func TestDirectionSign(t *testing.T) {
	tests := []struct {
		d    Direction
		want float64
	}{
		{Forward, 1},
		{Mirrored, -1},
		{0, 1},
		{5, 1},
		{-3, -1},
	}
	for _, tt := range tests {
		if got := tt.d.Sign(); got != tt.want {
			t.Errorf("Direction(%d).Sign() = %g, want %g", int(tt.d), got, tt.want)
		}
	}
}

// --- Animation tests ---

func TestAnimationAdvance(t *testing.T) {
	a := NewAnimation(3)
	a.Advance(1.5)
	if a.Fraction() != 0.5 {
		t.Fatalf("fraction = %g, want 0.5", a.Fraction())
	}
	a.Advance(3)
	if a.Fraction() != 0.5 {
		t.Fatalf("fraction after a full period = %g, want 0.5", a.Fraction())
	}
	a.Advance(1.5)
	if a.Fraction() != 0 {
		t.Fatalf("fraction = %g, want 0", a.Fraction())
	}
}

func TestAnimationFractionInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := NewAnimation(DefaultPeriod)
	for i := 0; i < 10000; i++ {
		dt := rng.Float64() * 2
		if i%100 == 0 {
			dt = float64(rng.Intn(10)) * DefaultPeriod // whole periods
		}
		a.Advance(dt)
		if f := a.Fraction(); f < 0 || f >= 1 {
			t.Fatalf("step %d: fraction %g outside [0, 1)", i, f)
		}
	}
}

func TestAnimationSeekAndDefaults(t *testing.T) {
	a := NewAnimation(0)
	if a.Period() != DefaultPeriod {
		t.Errorf("period = %g, want default %g", a.Period(), DefaultPeriod)
	}
	a.Seek(-0.25)
	if a.Fraction() != 0.75 {
		t.Errorf("Seek(-0.25) = %g, want 0.75", a.Fraction())
	}
	a.Seek(2.5)
	if a.Fraction() != 0.5 {
		t.Errorf("Seek(2.5) = %g, want 0.5", a.Fraction())
	}
	a.Advance(-1.5 * DefaultPeriod)
	if a.Fraction() != 0 {
		t.Errorf("negative advance gave %g, want 0", a.Fraction())
	}
}

// --- Sequence tests ---

func TestFrames(t *testing.T) {
	c, _ := Preset("sketch") // 3 s at 20 FPS
	frames := Frames(c)
	if len(frames) != 60 {
		t.Fatalf("expected 60 frames, got %d", len(frames))
	}
	for i, f := range frames {
		if f.Index != i || f.Total != 60 {
			t.Errorf("frame %d: index=%d total=%d", i, f.Index, f.Total)
		}
		if want := float64(i) / 60; f.Fraction != want {
			t.Errorf("frame %d: fraction=%g, want %g", i, f.Fraction, want)
		}
	}
	if got := frames[30].Time(c.Period); math.Abs(got-1.5) > 1e-12 {
		t.Errorf("frame 30 time = %g, want 1.5", got)
	}
}

func TestFrameCountAtLeastOne(t *testing.T) {
	c := Config{Period: 0.01, FPS: 1}
	if got := c.FrameCount(); got != 1 {
		t.Errorf("FrameCount() = %d, want 1", got)
	}
}

// --- Layout tests ---

func TestNewLayout(t *testing.T) {
	c := DefaultConfig()
	l := NewLayout(c)

	if len(l.Rings) != 3 {
		t.Fatalf("expected 3 rings, got %d", len(l.Rings))
	}

	expectedCounts := []int{1, 6, 12}
	for i, ring := range l.Rings {
		if ring.Ring != i {
			t.Errorf("ring %d: index %d", i, ring.Ring)
		}
		if len(ring.Placements) != expectedCounts[i] {
			t.Errorf("ring %d: expected %d placements, got %d", i, expectedCounts[i], len(ring.Placements))
		}
		if want := float64(i) * c.RepeatRadius; math.Abs(ring.Radius-want) > 1e-9 {
			t.Errorf("ring %d: radius %g, want %g", i, ring.Radius, want)
		}
	}
}

func TestLayoutCentreRing(t *testing.T) {
	for sides := 1; sides <= 6; sides++ {
		c := DefaultConfig()
		c.Sides = sides
		l := NewLayout(c)
		centre := l.Rings[0].Placements
		if len(centre) != 1 {
			t.Fatalf("sides=%d: ring 0 has %d placements, want 1", sides, len(centre))
		}
		if centre[0].X != 0 || centre[0].Y != 0 {
			t.Errorf("sides=%d: ring 0 placement at (%g,%g)", sides, centre[0].X, centre[0].Y)
		}
		if got := len(l.Rings[2].Placements); got != 2*sides {
			t.Errorf("sides=%d: ring 2 has %d placements, want %d", sides, got, 2*sides)
		}
	}
}

func TestLayoutHexagonPositions(t *testing.T) {
	c := DefaultConfig()
	R := c.RepeatRadius
	l := NewLayout(c)

	// ring 1 sits on the hexagon corners
	for _, p := range l.Rings[1].Placements {
		angle := 2 * math.Pi * float64(p.Slot) / 6
		if math.Abs(p.X-R*math.Cos(angle)) > 1e-9 || math.Abs(p.Y-R*math.Sin(angle)) > 1e-9 {
			t.Errorf("ring 1 slot %d at (%g,%g)", p.Slot, p.X, p.Y)
		}
	}

	// ring 2: corners at 2R, edge midpoints between them
	mid := l.Rings[2].Placements[1]
	if mid.Slot != 0 || mid.Index != 1 {
		t.Fatalf("unexpected placement order: %+v", mid)
	}
	if math.Abs(mid.X-1.5*R) > 1e-9 || math.Abs(mid.Y-math.Sqrt(3)/2*R) > 1e-9 {
		t.Errorf("ring 2 edge midpoint at (%g,%g)", mid.X, mid.Y)
	}

	// neighbouring placements on a ring are RepeatRadius apart
	ring := l.Rings[2].Placements
	for i := range ring {
		a, b := ring[i], ring[(i+1)%len(ring)]
		d := math.Hypot(a.X-b.X, a.Y-b.Y)
		if math.Abs(d-R) > 1e-9 {
			t.Errorf("placements %d and %d are %g apart, want %g", i, i+1, d, R)
		}
	}
}

func TestNewLayoutNegativeCounts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rings = -2
	if l := NewLayout(cfg); len(l.Rings) != 0 || l.Extent <= 0 {
		t.Errorf("Rings=-2: %d rings, extent %g", len(l.Rings), l.Extent)
	}

	cfg = DefaultConfig()
	cfg.Sides = -1
	l := NewLayout(cfg)
	for _, ring := range l.Rings[1:] {
		if len(ring.Placements) != 0 {
			t.Errorf("Sides=-1: ring %d has %d placements", ring.Ring, len(ring.Placements))
		}
	}

	r := NewRenderer(Config{Rings: -1, Sides: -1})
	rec := NewRecorder(100, 100)
	r.Render(rec)
	if len(rec.Commands) != 0 {
		t.Errorf("empty config drew %d commands", len(rec.Commands))
	}
}

func TestLayoutExtent(t *testing.T) {
	c, _ := Preset("sketch")
	l := NewLayout(c)
	// A five-segment zigzag ends at (1.5W, -170) or (-3.5W, 130);
	// both are sqrt(31600) from the centre.
	if want := math.Sqrt(31600); math.Abs(l.Extent-want) > 1e-9 {
		t.Errorf("extent = %g, want %g", l.Extent, want)
	}

	c.Rings = 3
	l = NewLayout(c)
	if want := 2*c.RepeatRadius + math.Sqrt(31600); math.Abs(l.Extent-want) > 1e-9 {
		t.Errorf("extent with 3 rings = %g, want %g", l.Extent, want)
	}
}

func TestScaleToCanvas(t *testing.T) {
	l := NewLayout(DefaultConfig())
	cx, cy := l.ScaleToCanvas(0, 0, 500, 500)
	if cx != 250 || cy != 250 {
		t.Errorf("ScaleToCanvas(0,0,500,500) = (%.1f,%.1f), want (250,250)", cx, cy)
	}

	// the extent maps to 95% of the half-size
	x, _ := l.ScaleToCanvas(l.Extent, 0, 500, 500)
	if math.Abs(x-(250+0.95*250)) > 1e-9 {
		t.Errorf("extent maps to x=%g", x)
	}
}
