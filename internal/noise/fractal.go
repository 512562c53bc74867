package noise

import "math"

// FBM layers octaves of Noise2D, doubling the frequency and halving the
// amplitude per octave starting from 0.5. Output stays inside (-1, 1).
func (p *Perlin) FBM(x, z float64, octaves int) float64 {
	value := 0.0
	amplitude := 0.5
	frequency := 1.0

	for i := 0; i < octaves; i++ {
		value += p.Noise2D(x*frequency, z*frequency) * amplitude
		frequency *= 2.0
		amplitude *= 0.5
	}

	return value
}

// Ridged turns an FBM sample h into (1-|h|)^2, producing sharp crests where
// the raw field crosses zero. Output is in [0, 1].
func (p *Perlin) Ridged(x, z float64, octaves int) float64 {
	n := p.FBM(x, z, octaves)
	n = 1.0 - math.Abs(n)
	return n * n
}

// Canyon carves meandering channels into a broad FBM base. A sinusoidal mask,
// displaced by low-frequency noise so the channels wander, is raised to a
// power that keeps the cuts narrow and flat-bottomed. Output is in [0, 1].
func (p *Perlin) Canyon(x, z float64) float64 {
	base := 0.5 + 0.5*p.FBM(x, z, 4)

	channel := math.Sin((x + p.FBM(x, z, 2)*2.5) * 3.0)
	mask := math.Pow(math.Abs(channel), 0.6)

	detail := p.FBM(x*4, z*4, 2) * 0.1

	return clamp01((base + detail) * mask)
}

// Plateau quantizes an FBM base into five mesa steps and adds a small
// continuous term so the tops are not perfectly flat. Output is in [0, 1].
func (p *Perlin) Plateau(x, z float64) float64 {
	base := 0.5 + 0.5*p.FBM(x, z, 5)

	steps := math.Floor(base*5) / 4
	if steps > 1 {
		steps = 1
	}

	detail := p.FBM(x*3, z*3, 2) * 0.05

	return clamp01(steps + detail)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
