package render

import (
	"fmt"

	"github.com/1siamBot/mapfog/engine/logger"
	"github.com/1siamBot/mapfog/engine/weather"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
)

// UniformSource supplies the fog shader inputs each frame
type UniformSource interface {
	Uniforms() weather.Uniforms
}

// FogFilter draws the scene with the noise fog added on top
type FogFilter struct {
	shader *ebiten.Shader
	source UniformSource
	opts   ebiten.DrawRectShaderOptions
}

// NewFogFilter compiles the fog shader for cfg
func NewFogFilter(cfg ShaderConfig, source UniformSource) (*FogFilter, error) {
	src, err := FogShaderSource(cfg)
	if err != nil {
		return nil, err
	}
	sh, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("compile fog shader: %w", err)
	}
	logger.For("render").WithFields(logrus.Fields{
		"octaves": cfg.Octaves,
		"scale_x": cfg.ScaleX,
		"scale_y": cfg.ScaleY,
	}).Info("fog shader compiled")

	return &FogFilter{
		shader: sh,
		source: source,
		opts: ebiten.DrawRectShaderOptions{
			Uniforms: make(map[string]interface{}, 3),
		},
	}, nil
}

// Apply implements Filter
func (f *FogFilter) Apply(dst, src *ebiten.Image) {
	u := f.source.Uniforms()

	f.opts.Images[0] = src
	f.opts.Uniforms["Time"] = float32(u.Time)
	f.opts.Uniforms["Origin"] = []float32{float32(u.Origin.X), float32(u.Origin.Y)}
	f.opts.Uniforms["FogColor"] = []float32{
		float32(u.Color.R), float32(u.Color.G), float32(u.Color.B), float32(u.Color.A),
	}

	b := src.Bounds()
	dst.DrawRectShader(b.Dx(), b.Dy(), f.shader, &f.opts)
}
