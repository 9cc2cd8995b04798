package maplib

import (
	"math"
	"regexp"
	"strconv"

	"github.com/1siamBot/mapfog/engine/logger"
	"github.com/1siamBot/mapfog/engine/weather"
	"github.com/sirupsen/logrus"
)

// DefaultTagIntensity is used when a <fog> tag has no usable intensity
const DefaultTagIntensity = 0.75

var (
	fogTagRe   = regexp.MustCompile(`(?i)<fog\s*:\s*([^>]*)>`)
	noFogTagRe = regexp.MustCompile(`(?i)<no\s*fog\s*>`)
	fogArgsRe  = regexp.MustCompile(`(?s)^\s*([^\s,]*)[\s,]*(.*?)\s*$`)
)

// Tags are the fog settings found in a map note
type Tags struct {
	AlwaysFog bool
	NeverFog  bool
	Color     weather.Color // colour and intensity for AlwaysFog
}

// Override converts the tags into the controller's override.
// <nofog> wins when both tags are present.
func (t Tags) Override() weather.Override {
	switch {
	case t.NeverFog:
		return weather.Override{Kind: weather.OverrideNever}
	case t.AlwaysFog:
		return weather.Override{Kind: weather.OverrideAlways, Color: t.Color}
	}
	return weather.Override{}
}

// ParseTags reads <fog:I [colour]> and <nofog> from a map note.
// Arguments may be separated by spaces or a comma.
func ParseTags(note string) Tags {
	var t Tags
	if noFogTagRe.MatchString(note) {
		t.NeverFog = true
	}

	m := fogTagRe.FindStringSubmatch(note)
	if m == nil {
		return t
	}
	t.AlwaysFog = true

	// intensity is the first token; the rest is the colour, kept whole so
	// rgb(r, g, b) keeps its commas
	args := fogArgsRe.FindStringSubmatch(m[1])

	intensity := DefaultTagIntensity
	if args[1] != "" {
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			logger.For("maplib").WithFields(logrus.Fields{"tag": m[0]}).Warn("bad fog intensity in map note, using default")
		} else {
			intensity = v
		}
	}

	color := weather.ParseColorOr(args[2], weather.White)
	t.Color = color.WithAlpha(intensity * color.A)
	return t
}
