package noise

import (
	"math"
	"math/rand"
)

// CellSet is a fixed scatter of feature points for cellular noise. A terrain
// instance generates one set and keeps it for its lifetime, so cell layouts
// survive regeneration and type switches.
type CellSet struct {
	points [][2]float64
	extent float64
}

// NewCellSet scatters count points uniformly over the square
// [-extent/2, extent/2] in both axes.
func NewCellSet(seed int64, count int, extent float64) *CellSet {
	rng := rand.New(rand.NewSource(seed))

	points := make([][2]float64, count)
	for i := range points {
		points[i] = [2]float64{
			(rng.Float64() - 0.5) * extent,
			(rng.Float64() - 0.5) * extent,
		}
	}

	return &CellSet{points: points, extent: extent}
}

// Count returns the number of feature points.
func (cs *CellSet) Count() int {
	return len(cs.points)
}

// MinDist returns the distance from (x, z) to the nearest feature point.
func (cs *CellSet) MinDist(x, z float64) float64 {
	min := math.MaxFloat64
	for _, pt := range cs.points {
		dx := x - pt[0]
		dz := z - pt[1]
		d := dx*dx + dz*dz
		if d < min {
			min = d
		}
	}
	return math.Sqrt(min)
}

// Voronoi maps the nearest-point distance into [0, 1]: 1 on a feature point,
// falling to 0 at a tenth of the extent away.
func (cs *CellSet) Voronoi(x, z float64) float64 {
	if len(cs.points) == 0 {
		return 0
	}
	d := cs.MinDist(x, z) / (cs.extent * 0.1)
	return clamp01(1 - d)
}
