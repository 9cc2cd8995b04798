// Package script is the event-command surface of the fog effect: the
// AddFog/RemoveFog/SetFog commands, the plugin-command string front end,
// and a goja host for event scripts that wait on fades.
package script

import (
	"math"
	"strconv"
	"strings"

	"github.com/1siamBot/mapfog/engine/logger"
	"github.com/1siamBot/mapfog/engine/weather"
	"github.com/sirupsen/logrus"
)

var log = logger.For("script")

// Command defaults applied when an argument is missing or malformed
const (
	DefaultIntensity  = 0.75
	DefaultFadeFrames = 60
)

// Plugin command names
const (
	CmdAddFog    = "AddFog"
	CmdRemoveFog = "RemoveFog"
	CmdSetFog    = "SetFog"
)

// Plugin command argument keys
const (
	ArgIntensity = "intensity"
	ArgFade      = "fadeInDuration"
	ArgWait      = "isWait"
	ArgColor     = "color"
)

// Commands issues fade commands to one controller. Every command returns
// the number of frames the issuing event should wait.
type Commands struct {
	fog *weather.Controller
}

// NewCommands binds the commands to fog
func NewCommands(fog *weather.Controller) *Commands {
	return &Commands{fog: fog}
}

// AddFog fades the fog in to intensity, tinted by color (white when empty)
func (c *Commands) AddFog(intensity float64, fadeFrames int, wait bool, color string) int {
	intensity = sanitizeIntensity(intensity)
	fadeFrames = sanitizeFrames(fadeFrames)
	col := weather.ParseColorOr(color, weather.White)
	c.fog.StartFade(col.WithAlpha(intensity*col.A), fadeFrames)
	return waitFrames(fadeFrames, wait)
}

// RemoveFog fades the fog out, keeping its current tint
func (c *Commands) RemoveFog(fadeFrames int, wait bool) int {
	fadeFrames = sanitizeFrames(fadeFrames)
	before := c.fog.Remaining()
	wasActive := c.fog.IsActive()
	c.fog.StartFade(c.fog.Current().WithAlpha(0), fadeFrames)
	if !wasActive && before == 0 {
		// nothing to fade out, nothing to wait for
		return 0
	}
	return waitFrames(fadeFrames, wait)
}

// SetFog is the single-command form: white fog at intensity, 0 removes
func (c *Commands) SetFog(intensity float64, fadeFrames int, wait bool) int {
	if intensity == 0 {
		return c.RemoveFog(fadeFrames, wait)
	}
	return c.AddFog(intensity, fadeFrames, wait, "")
}

// Dispatch runs a plugin command whose arguments arrive as strings.
// Unknown commands are logged and ignored.
func (c *Commands) Dispatch(name string, args map[string]string) int {
	frames := parseFrames(args[ArgFade])
	wait := parseWait(args[ArgWait])

	switch name {
	case CmdAddFog:
		return c.AddFog(parseIntensity(args[ArgIntensity]), frames, wait, args[ArgColor])
	case CmdRemoveFog:
		return c.RemoveFog(frames, wait)
	case CmdSetFog:
		return c.SetFog(parseIntensity(args[ArgIntensity]), frames, wait)
	}

	log.WithFields(logrus.Fields{"command": name, "args": args}).Warn("unknown plugin command")
	return 0
}

func waitFrames(frames int, wait bool) int {
	if !wait {
		return 0
	}
	return frames
}

func sanitizeIntensity(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		log.WithField("intensity", v).Warn("invalid fog intensity, using default")
		return DefaultIntensity
	}
	return v
}

func sanitizeFrames(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// parseIntensity honours an explicit zero; anything unparsable falls back
// to the default
func parseIntensity(s string) float64 {
	v, ok := parseNumber(s)
	if !ok || v < 0 {
		if strings.TrimSpace(s) != "" {
			log.WithField("intensity", s).Warn("invalid fog intensity, using default")
		}
		return DefaultIntensity
	}
	return v
}

func parseFrames(s string) int {
	v, ok := parseNumber(s)
	if !ok || v < 0 {
		if strings.TrimSpace(s) != "" {
			log.WithField("fadeInDuration", s).Warn("invalid fade duration, using default")
		}
		return DefaultFadeFrames
	}
	return int(math.Floor(v))
}

// parseWait is true unless the argument is exactly "false"
func parseWait(s string) bool {
	return s != "false"
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
