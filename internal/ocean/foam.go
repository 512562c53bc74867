package ocean

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

const (
	foamOctaves   = 3
	foamFrequency = 0.06
	foamDrift     = 0.15
)

// foamField is a slowly drifting simplex gust field that breaks up the
// crest-driven foam pattern.
type foamField struct {
	noise opensimplex.Noise
}

func newFoamField(seed int64) foamField {
	return foamField{noise: opensimplex.New(seed)}
}

// sample returns a fractal gust value in [-1, 1]. Time drives the third
// noise axis so the pattern drifts instead of scrolling.
func (f foamField) sample(x, z, at float64) float64 {
	var value, maxValue float64
	amplitude := 1.0
	frequency := 1.0
	for i := 0; i < foamOctaves; i++ {
		value += f.noise.Eval3(x*foamFrequency*frequency, z*foamFrequency*frequency, at*foamDrift) * amplitude
		maxValue += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	return value / maxValue
}

// GetFoamAt estimates whitecap intensity in [0, 1] at a world position
// and time. Proximity to the superposed crest height drives the base
// term.
func (o *Ocean) GetFoamAt(x, z, at float32) float32 {
	peak := o.peakAmplitude()
	if peak <= 0 {
		return 0
	}

	h := float64(o.GetHeightAt(x, z, at))
	crest := math.Max(h/float64(peak), 0)
	gust := 0.5 + 0.5*o.foam.sample(float64(x), float64(z), float64(at))

	foam := math.Pow(crest, 1.5) * (0.6 + 0.4*gust)
	return float32(math.Min(foam, 1))
}

// peakAmplitude is the largest height the current bank can reach.
func (o *Ocean) peakAmplitude() float32 {
	var sum float32
	for _, w := range o.waves {
		sum += float32(math.Abs(float64(w.Amplitude)))
	}
	return sum * float32(math.Abs(float64(o.waveHeight)))
}
