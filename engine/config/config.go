// Package config turns raw plugin parameters into fog settings. Every
// field falls back to its default on a bad value; loading never fails.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/1siamBot/mapfog/engine/logger"
	"github.com/1siamBot/mapfog/engine/noise"
	"github.com/sirupsen/logrus"
)

const (
	DefaultFogQuality     = noise.DefaultOctaves
	DefaultFogSpeed       = 0.25
	DefaultXScale         = 400.0
	DefaultYScale         = 150.0
	DefaultTicksPerSecond = 60
)

// Params are plugin parameters as the loader delivers them: strings
type Params map[string]string

// Config is the fog configuration read once at startup
type Config struct {
	FogQuality     int     // noise octaves, 1-8
	FogSpeed       float64 // noise time units per second; 0 freezes the fog
	XScale         float64 // horizontal pixels per noise unit
	YScale         float64 // vertical pixels per noise unit
	TicksPerSecond int
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		FogQuality:     DefaultFogQuality,
		FogSpeed:       DefaultFogSpeed,
		XScale:         DefaultXScale,
		YScale:         DefaultYScale,
		TicksPerSecond: DefaultTicksPerSecond,
	}
}

// Parse reads known keys from p, substituting defaults per key
func Parse(p Params) Config {
	cfg := Default()

	if v, ok := p.number("fogQuality"); ok && v >= noise.MinOctaves {
		cfg.FogQuality = noise.ClampOctaves(int(math.Floor(v)))
	} else if ok {
		warnDefault("fogQuality", p["fogQuality"], cfg.FogQuality)
	}

	if v, ok := p.number("fogSpeed"); ok && v >= 0 {
		cfg.FogSpeed = v
	} else if ok {
		warnDefault("fogSpeed", p["fogSpeed"], cfg.FogSpeed)
	}

	if v, ok := p.number("xScale"); ok && v >= 1 {
		cfg.XScale = v
	} else if ok {
		warnDefault("xScale", p["xScale"], cfg.XScale)
	}

	if v, ok := p.number("yScale"); ok && v >= 1 {
		cfg.YScale = v
	} else if ok {
		warnDefault("yScale", p["yScale"], cfg.YScale)
	}

	if v, ok := p.number("ticksPerSecond"); ok && v >= 1 {
		cfg.TicksPerSecond = int(v)
	} else if ok {
		warnDefault("ticksPerSecond", p["ticksPerSecond"], cfg.TicksPerSecond)
	}

	return cfg
}

// number reports the parsed value of key. ok is false when the key is
// absent or blank; a present but malformed value gives NaN with ok true.
func (p Params) number(key string) (float64, bool) {
	raw, present := p[key]
	raw = strings.TrimSpace(raw)
	if !present || raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN(), true
	}
	return v, true
}

func warnDefault(key, raw string, def interface{}) {
	logger.For("config").WithFields(logrus.Fields{
		"param":   key,
		"value":   raw,
		"default": def,
	}).Warn("invalid plugin parameter, using default")
}

// LoadFile reads a JSON object of parameters. Values may be strings or
// numbers. On any error the defaults are returned together with the error
// so the caller can log it and carry on.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read plugin parameters: %w", err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Default(), fmt.Errorf("decode plugin parameters %s: %w", path, err)
	}

	p := make(Params, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			p[k] = val
		case float64:
			p[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			p[k] = strconv.FormatBool(val)
		default:
			p[k] = fmt.Sprint(val)
		}
	}
	return Parse(p), nil
}
