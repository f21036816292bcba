// Command starweave-render renders one animation cycle of a starweave
// pattern as numbered PNG or SVG frames, and optionally as a looping GIF.
//
// Usage:
//
//	starweave-render -preset woven -out frames/ -gif woven.gif
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/satindergrewal/starweave"
)

type options struct {
	outDir  string
	format  string
	gifPath string
	size    int
}

func main() {
	preset := flag.String("preset", starweave.DefaultPreset, "Pattern preset")
	configPath := flag.String("config", "", "JSON file overriding preset fields")
	outDir := flag.String("out", "frames", "Output directory for frames")
	format := flag.String("format", "png", "Frame format: png or svg")
	gifPath := flag.String("gif", "", "Also write an animated GIF to this path")
	size := flag.Int("size", 800, "Image size in pixels (square)")
	fps := flag.Int("fps", 0, "Frame rate (default: from preset)")
	flag.Parse()

	cfg, err := starweave.Preset(*preset)
	if err != nil {
		log.Fatalf("error: %v (available: %v)", err, starweave.PresetNames())
	}
	if *configPath != "" {
		cfg, err = starweave.LoadConfig(*configPath, cfg)
		if err != nil {
			log.Fatalf("error: %v", err)
		}
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("error: %v", err)
	}

	opts := options{
		outDir:  *outDir,
		format:  *format,
		gifPath: *gifPath,
		size:    *size,
	}
	if err := run(cfg, opts); err != nil {
		log.Fatalf("error: %v", err)
	}
	fmt.Println("Done.")
}

func run(cfg starweave.Config, opts options) error {
	if opts.size <= 0 {
		return fmt.Errorf("invalid size %d", opts.size)
	}
	if opts.format != "png" && opts.format != "svg" {
		return fmt.Errorf("unknown format %q", opts.format)
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	layout := starweave.NewLayout(cfg)
	frames := starweave.Frames(cfg)

	fmt.Printf("Rendering %d frames (%d motifs/frame, %g s at %d FPS)\n",
		len(frames), cfg.TotalMotifs(), cfg.Period, cfg.FPS)

	var anim *gif.GIF
	if opts.gifPath != "" {
		anim = &gif.GIF{}
	}
	delay := max(100/cfg.FPS, 1) // GIF delays are in 1/100 s

	for _, frame := range frames {
		filename := filepath.Join(opts.outDir, fmt.Sprintf("frame_%03d.%s", frame.Index, opts.format))

		var img *image.RGBA
		if opts.format == "png" || anim != nil {
			img = starweave.RenderFrame(frame, layout, opts.size, opts.size)
		}

		var err error
		if opts.format == "svg" {
			err = writeSVG(filename, layout, frame, opts.size)
		} else {
			err = writePNG(filename, img)
		}
		if err != nil {
			return err
		}

		if anim != nil {
			anim.Image = append(anim.Image, toPaletted(img))
			anim.Delay = append(anim.Delay, delay)
		}
		fmt.Printf("  frame %d/%d → %s\n", frame.Index+1, frame.Total, filename)
	}

	if anim != nil {
		if err := writeGIF(opts.gifPath, anim); err != nil {
			return err
		}
		fmt.Printf("  GIF → %s (%d FPS, loop forever)\n", opts.gifPath, cfg.FPS)
	}
	return nil
}

func writePNG(filename string, img image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return f.Close()
}

func writeSVG(filename string, layout starweave.Layout, frame starweave.Frame, size int) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	if err := starweave.RenderSVG(f, layout, frame.Fraction, size, size); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeGIF(filename string, anim *gif.GIF) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filename, err)
	}
	if err := gif.EncodeAll(f, anim); err != nil {
		f.Close()
		return fmt.Errorf("encoding GIF: %w", err)
	}
	return f.Close()
}

// toPaletted reduces a frame to the web-safe palette for GIF output.
func toPaletted(img *image.RGBA) *image.Paletted {
	p := image.NewPaletted(img.Bounds(), palette.WebSafe)
	draw.Draw(p, p.Rect, img, img.Bounds().Min, draw.Src)
	return p
}
