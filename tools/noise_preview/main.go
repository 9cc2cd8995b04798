// noise_preview renders the CPU fog field to PNG, for tuning the fog
// parameters without running the game.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/1siamBot/mapfog/engine/config"
	"github.com/1siamBot/mapfog/engine/logger"
	"github.com/1siamBot/mapfog/engine/noise"
	"github.com/1siamBot/mapfog/engine/weather"
	xdraw "golang.org/x/image/draw"
)

var log = logger.For("noise_preview")

type options struct {
	width, height int
	downsample    int
	originX       float64
	originY       float64
	time          float64
	fog           weather.Color
	background    color.RGBA
}

// renderFog samples the field at 1/downsample resolution and scales the
// result up to the requested size
func renderFog(field noise.Field, o options) *image.RGBA {
	if o.downsample < 1 {
		o.downsample = 1
	}
	sw := max(1, o.width/o.downsample)
	sh := max(1, o.height/o.downsample)

	small := image.NewRGBA(image.Rect(0, 0, sw, sh))
	bg := [3]float64{
		float64(o.background.R) / 255,
		float64(o.background.G) / 255,
		float64(o.background.B) / 255,
	}
	tint := [3]float64{o.fog.R * o.fog.A, o.fog.G * o.fog.A, o.fog.B * o.fog.A}

	for y := 0; y < sh; y++ {
		for x := 0; x < sw; x++ {
			px := float64(x*o.downsample) + o.originX
			py := float64(y*o.downsample) + o.originY
			n := field.Sample(px, py, o.time)
			small.SetRGBA(x, y, color.RGBA{
				R: channel(bg[0] + n*tint[0]),
				G: channel(bg[1] + n*tint[1]),
				B: channel(bg[2] + n*tint[2]),
				A: o.background.A,
			})
		}
	}
	if o.downsample == 1 {
		return small
	}

	out := image.NewRGBA(image.Rect(0, 0, o.width, o.height))
	xdraw.CatmullRom.Scale(out, out.Bounds(), small, small.Bounds(), xdraw.Src, nil)
	return out
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func writePNG(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	return png.Encode(out, img)
}

func main() {
	configPath := flag.String("config", "", "fog parameter file (JSON)")
	outPath := flag.String("o", "fog_preview.png", "output PNG (frame number is appended with -frames)")
	width := flag.Int("w", 816, "image width")
	height := flag.Int("h", 624, "image height")
	downsample := flag.Int("downsample", 2, "sample every Nth pixel and upscale")
	frames := flag.Int("frames", 1, "number of frames to render")
	step := flag.Int("step", 30, "game frames between rendered frames")
	t0 := flag.Float64("t", 0, "start time")
	ox := flag.Float64("ox", 0, "scroll origin x")
	oy := flag.Float64("oy", 0, "scroll origin y")
	vx := flag.Float64("vx", 0, "scroll pixels per game frame, x")
	colorStr := flag.String("color", "white", "fog colour")
	intensity := flag.Float64("intensity", 0.75, "fog intensity")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			log.WithError(err).Warn("using default fog parameters")
		}
	}

	fog := weather.ParseColorOr(*colorStr, weather.White)
	fog.A *= *intensity
	field := noise.NewField(cfg.XScale, cfg.YScale, cfg.FogQuality)
	dt := cfg.FogSpeed / float64(cfg.TicksPerSecond) * float64(*step)

	o := options{
		width:      *width,
		height:     *height,
		downsample: *downsample,
		originX:    *ox,
		originY:    *oy,
		time:       *t0,
		fog:        fog,
		background: color.RGBA{64, 72, 64, 255},
	}

	for i := 0; i < *frames; i++ {
		path := *outPath
		if *frames > 1 {
			ext := filepath.Ext(path)
			path = fmt.Sprintf("%s_%03d%s", path[:len(path)-len(ext)], i, ext)
		}
		if err := writePNG(path, renderFog(field, o)); err != nil {
			log.WithError(err).Fatal("write preview")
		}
		fmt.Printf("  ✓ %s (t=%.3f)\n", path, o.time)
		o.time += dt
		o.originX += *vx * float64(*step)
	}
}
