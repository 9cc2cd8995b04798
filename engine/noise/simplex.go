// Package noise is the CPU reference of the fog shader's noise field.
// It mirrors the Kage source in engine/render step for step, so previews and
// tests see the same pattern the GPU draws.
package noise

import "math"

type vec3 [3]float64

func (a vec3) add(b vec3) vec3  { return vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }
func (a vec3) sub(b vec3) vec3  { return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }
func (a vec3) addS(s float64) vec3 { return vec3{a[0] + s, a[1] + s, a[2] + s} }
func (a vec3) scale(s float64) vec3 { return vec3{a[0] * s, a[1] * s, a[2] * s} }
func (a vec3) dot(b vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// glsl mod: x - y*floor(x/y)
func mod(x, y float64) float64 {
	return x - y*math.Floor(x/y)
}

func step(edge, x float64) float64 {
	if x < edge {
		return 0
	}
	return 1
}

func permute(x float64) float64 {
	return mod((x*34.0+1.0)*x, 289.0)
}

func taylorInvSqrt(r float64) float64 {
	return 1.79284291400159 - 0.85373472095314*r
}

// Simplex returns 3D simplex noise at (x, y, z), roughly in [-1, 1]
func Simplex(x, y, z float64) float64 {
	return simplex(vec3{x, y, z})
}

func simplex(v vec3) float64 {
	const (
		cx = 1.0 / 6.0
		cy = 1.0 / 3.0
	)
	// gradient lattice constants: D.wyz/7 - D.xzx with D = (0, 0.5, 1, 2)
	nsx := 2.0 / 7.0
	nsy := 0.5/7.0 - 1.0
	nsz := 1.0 / 7.0

	// skew into the simplex grid
	s := (v[0] + v[1] + v[2]) * cy
	i := vec3{math.Floor(v[0] + s), math.Floor(v[1] + s), math.Floor(v[2] + s)}
	t := (i[0] + i[1] + i[2]) * cx
	x0 := v.sub(i).addS(t)

	g := vec3{step(x0[1], x0[0]), step(x0[2], x0[1]), step(x0[0], x0[2])}
	l := vec3{1 - g[0], 1 - g[1], 1 - g[2]}
	i1 := vec3{math.Min(g[0], l[2]), math.Min(g[1], l[0]), math.Min(g[2], l[1])}
	i2 := vec3{math.Max(g[0], l[2]), math.Max(g[1], l[0]), math.Max(g[2], l[1])}

	corners := [4]vec3{
		x0,
		x0.sub(i1).addS(cx),
		x0.sub(i2).addS(cy),
		x0.addS(-0.5),
	}
	offsets := [4]vec3{{0, 0, 0}, i1, i2, {1, 1, 1}}

	i = vec3{mod(i[0], 289.0), mod(i[1], 289.0), mod(i[2], 289.0)}

	var total float64
	for k := 0; k < 4; k++ {
		o := offsets[k]
		p := permute(permute(permute(i[2]+o[2])+i[1]+o[1]) + i[0] + o[0])

		j := p - 49.0*math.Floor(p*nsz*nsz)
		xr := math.Floor(j * nsz)
		yr := math.Floor(j - 7.0*xr)
		gx := xr*nsx + nsy
		gy := yr*nsx + nsy
		h := 1.0 - math.Abs(gx) - math.Abs(gy)

		sh := -step(h, 0.0)
		gx += (math.Floor(gx)*2.0 + 1.0) * sh
		gy += (math.Floor(gy)*2.0 + 1.0) * sh

		grad := vec3{gx, gy, h}
		grad = grad.scale(taylorInvSqrt(grad.dot(grad)))

		m := math.Max(0.6-corners[k].dot(corners[k]), 0.0)
		m *= m
		total += m * m * grad.dot(corners[k])
	}
	return 42.0 * total
}
