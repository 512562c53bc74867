// Package noise implements the gradient-noise kernel and the fractal height
// functions built on top of it. Everything here is pure CPU math: a generator
// seeded the same way always produces the same field.
package noise

import (
	"math"
	"math/rand"
)

// DefaultSeed is used whenever a caller does not ask for variety, so repeated
// runs synthesize identical surfaces.
const DefaultSeed int64 = 42

// Perlin is a 2D gradient-noise generator backed by a shuffled permutation
// table. The table is read-only after construction and safe to share across
// goroutines.
type Perlin struct {
	perm [512]int // permutation table, doubled to avoid index wrapping
}

// NewPerlin creates a generator from the given seed.
func NewPerlin(seed int64) *Perlin {
	p := &Perlin{}
	p.Reseed(seed)
	return p
}

// Reseed rebuilds the permutation table from seed. Every subsequent sample
// changes; meshes generated earlier keep their copied data.
func (p *Perlin) Reseed(seed int64) {
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < 256; i++ {
		p.perm[i] = i
	}

	// Fisher-Yates shuffle
	for i := 255; i > 0; i-- {
		j := rng.Intn(i + 1)
		p.perm[i], p.perm[j] = p.perm[j], p.perm[i]
	}

	// Double the permutation table to avoid wrapping
	for i := 0; i < 256; i++ {
		p.perm[256+i] = p.perm[i]
	}
}

// fade is the quintic interpolant 6t^5 - 15t^4 + 10t^3. It removes
// second-derivative discontinuities at cell borders.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// lerp performs linear interpolation
func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad projects the cell offset onto one of eight gradient directions. The
// low three hash bits select the direction: bit 2 swaps the axes, bits 0 and
// 1 flip the signs.
func grad(hash int, x, z float64) float64 {
	h := hash & 7
	u, v := x, z
	if h >= 4 {
		u, v = z, x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Noise2D samples the field at (x, z). Output is roughly in [-1, 1] and is
// exactly zero on integer lattice points.
func (p *Perlin) Noise2D(x, z float64) float64 {
	// Unit cell containing the point
	X := int(math.Floor(x)) & 255
	Z := int(math.Floor(z)) & 255

	// Relative position inside the cell
	x -= math.Floor(x)
	z -= math.Floor(z)

	u := fade(x)
	v := fade(z)

	// Hash the four cell corners
	a := p.perm[X] + Z
	b := p.perm[X+1] + Z

	return lerp(v,
		lerp(u,
			grad(p.perm[a], x, z),
			grad(p.perm[b], x-1, z)),
		lerp(u,
			grad(p.perm[a+1], x, z-1),
			grad(p.perm[b+1], x-1, z-1)))
}
