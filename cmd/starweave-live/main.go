// Command starweave-live plays a starweave pattern in the terminal.
//
// The pattern is rasterised at braille resolution (2×4 dots per character)
// and redrawn at about 60 frames per second.
//
// Keys: space pauses, + and - change the speed, Esc, q or Ctrl-C quit.
//
// Usage:
//
//	starweave-live -preset woven
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/satindergrewal/starweave"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS
	speedStep     = 1.25
	minSpeed      = 0.125
	maxSpeed      = 8
)

// viewer is the host loop: it advances the renderer and draws each frame.
type viewer struct {
	screen   tcell.Screen
	renderer *starweave.Renderer
	config   starweave.Config

	speed  float64
	paused bool
	last   time.Time
}

func newViewer(screen tcell.Screen, cfg starweave.Config) *viewer {
	return &viewer{
		screen:   screen,
		renderer: starweave.NewRenderer(cfg),
		config:   cfg,
		speed:    1,
		last:     time.Now(),
	}
}

// tick advances the animation to now and redraws.
func (v *viewer) tick(now time.Time) {
	dt := now.Sub(v.last).Seconds()
	v.last = now
	if !v.paused && dt > 0 {
		v.renderer.Update(dt * v.speed)
	}
	v.draw()
}

func (v *viewer) draw() {
	cols, rows := v.screen.Size()
	bg := v.config.Background
	bgStyle := tcell.StyleDefault.Background(rgb(bg.R, bg.G, bg.B))

	v.screen.SetStyle(bgStyle)
	v.screen.Clear()
	if cols <= 0 || rows <= 0 {
		v.screen.Show()
		return
	}

	canvas := starweave.NewCanvas(cols*dotsX, rows*dotsY, bg)
	v.renderer.Render(thickSurface{canvas})

	for y, line := range brailleFrame(canvas.Image(), bg, cols, rows) {
		for x, c := range line {
			if c.r == ' ' {
				continue
			}
			style := bgStyle.Foreground(rgb(c.ink.R, c.ink.G, c.ink.B))
			v.screen.SetContent(x, y, c.r, nil, style)
		}
	}

	status := fmt.Sprintf(" %.2f  x%.2f ", v.renderer.Fraction(), v.speed)
	if v.paused {
		status += "paused "
	}
	for i, r := range status {
		if i >= cols {
			break
		}
		v.screen.SetContent(i, rows-1, r, nil, bgStyle.Reverse(true))
	}

	v.screen.Show()
}

// handleInput returns false when the viewer should exit.
func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			v.paused = !v.paused
			log.Printf("paused=%v at fraction %.3f", v.paused, v.renderer.Fraction())
		case '+', '=':
			v.speed = math.Min(v.speed*speedStep, maxSpeed)
		case '-', '_':
			v.speed = math.Max(v.speed/speedStep, minSpeed)
		}

	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !v.handleInput(ev) {
				return
			}

		case now := <-ticker.C:
			v.tick(now)
		}
	}
}

// thickSurface keeps strokes at least one pixel wide so that they survive
// the braille ink threshold.
type thickSurface struct {
	*starweave.Canvas
}

func (t thickSurface) SetLineWidth(w float64) {
	t.Canvas.SetLineWidth(math.Max(w, 1))
}

func rgb(r, g, b uint8) tcell.Color {
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func loadConfig(preset, path string) (starweave.Config, error) {
	cfg, err := starweave.Preset(preset)
	if err != nil {
		return starweave.Config{}, err
	}
	if path != "" {
		return starweave.LoadConfig(path, cfg)
	}
	return cfg, nil
}

func main() {
	preset := flag.String("preset", starweave.DefaultPreset, "Pattern preset")
	configPath := flag.String("config", "", "JSON file overriding preset fields")
	speed := flag.Float64("speed", 1, "Playback speed multiplier")
	logPath := flag.String("log", "", "Write log messages to this file")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg, err := loadConfig(*preset, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	v := newViewer(screen, cfg)
	v.speed = math.Min(math.Max(*speed, minSpeed), maxSpeed)
	log.Printf("starweave-live: preset=%s motifs=%d period=%gs", *preset, cfg.TotalMotifs(), cfg.Period)
	v.run()
}
