package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/1siamBot/mapfog/engine/noise"
)

//go:embed shaders/fog.kage.tmpl
var fogShaderTmpl string

var fogTemplate = template.Must(template.New("fog").Parse(fogShaderTmpl))

// ShaderConfig holds the constants compiled into the fog shader
type ShaderConfig struct {
	Octaves int
	ScaleX  float64
	ScaleY  float64
}

// FogShaderSource specializes the Kage fog shader for cfg. Octave count
// is clamped to the supported range and non-positive scales become 1.
func FogShaderSource(cfg ShaderConfig) ([]byte, error) {
	field := noise.NewField(cfg.ScaleX, cfg.ScaleY, cfg.Octaves)
	data := struct {
		Octaves        int
		ScaleX, ScaleY string
	}{
		Octaves: field.Octaves,
		ScaleX:  fmt.Sprintf("%.4f", field.ScaleX),
		ScaleY:  fmt.Sprintf("%.4f", field.ScaleY),
	}

	var buf bytes.Buffer
	if err := fogTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render fog shader: %w", err)
	}
	return buf.Bytes(), nil
}
