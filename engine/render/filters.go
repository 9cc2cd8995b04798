package render

import (
	"github.com/1siamBot/mapfog/engine/logger"
	"github.com/1siamBot/mapfog/engine/weather"
	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is a full-screen post-processing pass
type Filter interface {
	Apply(dst, src *ebiten.Image)
}

// FilterChain is the map's post-processing list. It implements
// weather.Pipeline; with no filters attached Draw is a plain copy.
type FilterChain struct {
	filters []Filter
	buffers [2]*ebiten.Image
}

// Attach adds f once; values that are not Filters are ignored
func (fc *FilterChain) Attach(f weather.Filter) {
	filter, ok := f.(Filter)
	if !ok {
		logger.For("render").Warnf("cannot attach %T as a filter", f)
		return
	}
	if fc.Has(filter) {
		return
	}
	fc.filters = append(fc.filters, filter)
}

// Detach removes f if present
func (fc *FilterChain) Detach(f weather.Filter) {
	for i, existing := range fc.filters {
		if existing == f {
			fc.filters = append(fc.filters[:i], fc.filters[i+1:]...)
			return
		}
	}
}

// Has reports whether f is attached
func (fc *FilterChain) Has(f Filter) bool {
	for _, existing := range fc.filters {
		if existing == f {
			return true
		}
	}
	return false
}

// Len returns the number of attached filters
func (fc *FilterChain) Len() int {
	return len(fc.filters)
}

// Draw renders scene through every attached filter into dst
func (fc *FilterChain) Draw(dst, scene *ebiten.Image) {
	if len(fc.filters) == 0 {
		dst.DrawImage(scene, nil)
		return
	}

	src := scene
	for i, f := range fc.filters {
		if i == len(fc.filters)-1 {
			f.Apply(dst, src)
			return
		}
		buf := fc.buffer(i%2, scene)
		buf.Clear()
		f.Apply(buf, src)
		src = buf
	}
}

func (fc *FilterChain) buffer(i int, like *ebiten.Image) *ebiten.Image {
	b := like.Bounds()
	if img := fc.buffers[i]; img != nil && img.Bounds().Dx() == b.Dx() && img.Bounds().Dy() == b.Dy() {
		return img
	}
	if fc.buffers[i] != nil {
		fc.buffers[i].Deallocate()
	}
	fc.buffers[i] = ebiten.NewImage(b.Dx(), b.Dy())
	return fc.buffers[i]
}
