// Command starweave-serve is a preview server for starweave patterns. It
// serves single frames as SVG or PNG, the frame list of one cycle as JSON,
// and a small page that plays the animation in a browser.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/satindergrewal/starweave"
)

const (
	defaultSize = 600
	maxSize     = 4096
)

// ---------- JSON response types ----------

type frameJSON struct {
	Index    int     `json:"index"`
	Total    int     `json:"total"`
	Fraction float64 `json:"fraction"`
	Time     float64 `json:"time"`
}

type ringJSON struct {
	Ring   int     `json:"ring"`
	Radius float64 `json:"radius"`
	Motifs int     `json:"motifs"`
}

type framesResponse struct {
	Frames []frameJSON `json:"frames"`
	Rings  []ringJSON  `json:"rings"`
	Motifs int         `json:"motifs"`
	Period float64     `json:"period"`
	FPS    int         `json:"fps"`
}

// ---------- server ----------

type server struct {
	config starweave.Config
	layout starweave.Layout
	frames []byte // JSON, built once
}

func newServer(cfg starweave.Config) (*server, error) {
	layout := starweave.NewLayout(cfg)
	payload, err := json.Marshal(buildFramesResponse(cfg, layout))
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return &server{config: cfg, layout: layout, frames: payload}, nil
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/config", s.handleConfig)
	mux.HandleFunc("/api/frames", s.handleFrames)
	mux.HandleFunc("/frame.svg", s.handleSVG)
	mux.HandleFunc("/frame.png", s.handlePNG)
	mux.HandleFunc("/", s.handleIndex)
	return mux
}

func (s *server) handleConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.config); err != nil {
		log.Printf("encode config: %v", err)
	}
}

func (s *server) handleFrames(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(s.frames)
}

func (s *server) handleSVG(w http.ResponseWriter, r *http.Request) {
	t, size, err := frameParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := starweave.RenderSVG(&buf, s.layout, t, size, size); err != nil {
		log.Printf("render svg: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *server) handlePNG(w http.ResponseWriter, r *http.Request) {
	t, size, err := frameParams(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	img := starweave.RenderFrame(starweave.Frame{Total: 1, Fraction: t}, s.layout, size, size)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		log.Printf("encode png: %v", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexHTML, s.config.Background.Hex(), s.config.Period)
}

const indexHTML = `<!DOCTYPE html>
<html>
<head><title>starweave</title></head>
<body style="margin:0;background:%s;display:flex;justify-content:center">
<img id="frame" src="/frame.svg?t=0" width="600" height="600">
<script>
const period = %g * 1000;
const img = document.getElementById("frame");
const start = performance.now();
function next() {
	const t = ((performance.now() - start) %% period) / period;
	const pre = new Image();
	pre.onload = () => { img.src = pre.src; requestAnimationFrame(next); };
	pre.src = "/frame.svg?t=" + t.toFixed(4);
}
next();
</script>
</body>
</html>
`

// frameParams reads the fraction t and the image size from the query.
func frameParams(r *http.Request) (float64, int, error) {
	q := r.URL.Query()

	t := 0.0
	if v := q.Get("t"); v != "" {
		var err error
		t, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("invalid t %q", v)
		}
	}

	size := defaultSize
	if v := q.Get("size"); v != "" {
		var err error
		size, err = strconv.Atoi(v)
		if err != nil || size <= 0 || size > maxSize {
			return 0, 0, fmt.Errorf("invalid size %q", v)
		}
	}
	return t, size, nil
}

// ---------- helpers ----------

func buildFramesResponse(cfg starweave.Config, layout starweave.Layout) framesResponse {
	frames := starweave.Frames(cfg)
	fj := make([]frameJSON, len(frames))
	for i, f := range frames {
		fj[i] = frameJSON{
			Index:    f.Index,
			Total:    f.Total,
			Fraction: f.Fraction,
			Time:     f.Time(cfg.Period),
		}
	}

	rings := make([]ringJSON, len(layout.Rings))
	for i, ring := range layout.Rings {
		rings[i] = ringJSON{
			Ring:   ring.Ring,
			Radius: ring.Radius,
			Motifs: len(ring.Placements),
		}
	}

	return framesResponse{
		Frames: fj,
		Rings:  rings,
		Motifs: cfg.TotalMotifs(),
		Period: cfg.Period,
		FPS:    cfg.FPS,
	}
}

// getLANIP returns the first non-loopback IPv4 address, or "127.0.0.1" as a
// fallback.
func getLANIP() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "127.0.0.1"
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.IsLoopback() {
				continue
			}
			if ip4 := ip.To4(); ip4 != nil {
				return ip4.String()
			}
		}
	}
	return "127.0.0.1"
}

// ---------- main ----------

func main() {
	preset := flag.String("preset", starweave.DefaultPreset, "Pattern preset")
	configPath := flag.String("config", "", "JSON file overriding preset fields")
	port := flag.Int("port", 8080, "HTTP listen port")
	flag.Parse()

	cfg, err := starweave.Preset(*preset)
	if err != nil {
		log.Fatalf("preset: %v (available: %v)", err, starweave.PresetNames())
	}
	if *configPath != "" {
		cfg, err = starweave.LoadConfig(*configPath, cfg)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	s, err := newServer(cfg)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", *port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("starweave preview server\n")
	fmt.Printf("  preset: %s (%d motifs, %g s cycle)\n", *preset, cfg.TotalMotifs(), cfg.Period)
	fmt.Printf("  listen: http://%s:%d\n", getLANIP(), *port)

	log.Fatal(srv.ListenAndServe())
}
