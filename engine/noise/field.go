package noise

const (
	MinOctaves     = 1
	MaxOctaves     = 8
	DefaultOctaves = 4
)

// ClampOctaves keeps an octave count inside [MinOctaves, MaxOctaves]
func ClampOctaves(n int) int {
	if n < MinOctaves {
		return MinOctaves
	}
	if n > MaxOctaves {
		return MaxOctaves
	}
	return n
}

// Fractal sums octaves of simplex noise (persistence 0.5, frequency x2)
// and normalizes by the amplitude total, giving roughly [-1, 1].
func Fractal(x, y, t float64, octaves int) float64 {
	octaves = ClampOctaves(octaves)
	v := vec3{x, y, t}

	total := 0.0
	frequency := 1.0
	amplitude := 1.0
	maxValue := 0.0
	for i := 0; i < octaves; i++ {
		total += simplex(v.scale(frequency)) * amplitude
		maxValue += amplitude
		amplitude *= 0.5
		frequency *= 2.0
	}
	return total / maxValue
}

// Evaluate returns the fog density at (x, y, t) in [0, 1].
// x and y are already divided by the noise scale.
func Evaluate(x, y, t float64, octaves int) float64 {
	v := (Fractal(x, y, t, octaves) + 1.0) / 2.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Field samples the noise in pixel space
type Field struct {
	ScaleX  float64 // horizontal pixels per noise unit
	ScaleY  float64 // vertical pixels per noise unit
	Octaves int
}

// NewField creates a field, substituting defaults for non-positive scales
func NewField(scaleX, scaleY float64, octaves int) Field {
	if scaleX <= 0 {
		scaleX = 1
	}
	if scaleY <= 0 {
		scaleY = 1
	}
	return Field{ScaleX: scaleX, ScaleY: scaleY, Octaves: ClampOctaves(octaves)}
}

// Sample returns the density at pixel (px, py) and time t
func (f Field) Sample(px, py, t float64) float64 {
	return Evaluate(px/f.ScaleX, py/f.ScaleY, t, f.Octaves)
}
