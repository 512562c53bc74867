package terrain

import (
	"math"

	"github.com/dgravesa/go-parallel/parallel"
)

// Elevation profile constants. The island mask splits the field into
// five zones: ocean floor, continental slope, coastline, inland relief
// and the central peak/crater region.
const (
	oceanFloorLevel = -15.0
	shelfLevel      = -0.5
	coastTopLevel   = 1.2

	maskFloorEnd  = 0.05
	maskShelfEnd  = 0.25
	maskCoastEnd  = 0.40
	maskInlandEnd = 0.85

	maskExponent    = 1.8
	beachThreshold  = 0.55
	inlandCeiling   = 0.8
	peakHeadroom    = 0.15
	craterDepth     = 0.2
	erosionStrength = 0.15
)

// islandMask rates how far inland a position sits: 1 at the island
// center falling to 0 at open sea. The radial distance is perturbed by
// two angular noise layers so the coastline is not a circle.
func (t *Terrain) islandMask(x, z float64) float64 {
	size := float64(t.size)
	nx := x / size
	nz := z / size
	dist := math.Sqrt(nx*nx+nz*nz) * 2

	angle := math.Atan2(nz, nx)
	edge := t.perlin.FBM(math.Cos(angle)*1.5, math.Sin(angle)*1.5, 4)*0.25 +
		t.perlin.FBM(math.Cos(angle)*4+17.3, math.Sin(angle)*4+11.1, 3)*0.1

	mask := clampf(1-(dist+edge), 0, 1)
	return math.Pow(mask, maskExponent)
}

// coastlineVariation decides whether an angular sector is beach-like
// (above beachThreshold) or cliff-like. Continuous over angle so
// neighbouring samples agree.
func (t *Terrain) coastlineVariation(x, z float64) float64 {
	angle := math.Atan2(z, x)
	v := 0.5 + 0.5*t.perlin.FBM(math.Cos(angle)*2.3+31.7, math.Sin(angle)*2.3+47.9, 3)
	return clampf(v, 0, 1)
}

// finalHeight is the complete elevation profile at a world position.
func (t *Terrain) finalHeight(x, z float64) float64 {
	mask := t.islandMask(x, z)
	maxHeight := float64(t.maxHeight)

	var height float64
	switch {
	case mask < maskFloorEnd:
		height = oceanFloorLevel
	case mask < maskShelfEnd:
		u := (mask - maskFloorEnd) / (maskShelfEnd - maskFloorEnd)
		height = oceanFloorLevel + math.Pow(u, 0.7)*(shelfLevel-oceanFloorLevel)
	case mask < maskCoastEnd:
		u := (mask - maskShelfEnd) / (maskCoastEnd - maskShelfEnd)
		height = t.coastHeight(x, z, u)
	case mask <= maskInlandEnd:
		u := (mask - maskCoastEnd) / (maskInlandEnd - maskCoastEnd)
		height = t.inlandHeight(x, z, u)
	default:
		u := (mask - maskInlandEnd) / (1 - maskInlandEnd)
		height = t.inlandHeight(x, z, 1) + t.centralModifier(x, z, u)
	}

	return clampf(height, oceanFloorLevel, math.Max(maxHeight, 0))
}

// coastHeight shapes the shoreline band. Beach sectors ripple gently
// around sea level while cliff sectors climb fast with rocky detail.
func (t *Terrain) coastHeight(x, z, u float64) float64 {
	maxHeight := float64(t.maxHeight)
	if t.coastlineVariation(x, z) > beachThreshold {
		height := shelfLevel + u*(coastTopLevel-shelfLevel)
		return height + math.Sin(x*0.8)*math.Cos(z*0.8)*0.15
	}

	cliffTop := math.Max(0.18*maxHeight, coastTopLevel)
	height := shelfLevel + math.Pow(u, 0.7)*(cliffTop-shelfLevel)
	return height + t.perlin.FBM(x*0.3, z*0.3, 4)*0.06*maxHeight
}

// inlandHeight blends from the top of the coastal band toward the
// terrain-type relief, with a mid-frequency detail layer that fades in
// with zone progress.
func (t *Terrain) inlandHeight(x, z, u float64) float64 {
	maxHeight := float64(t.maxHeight)
	start := t.coastHeight(x, z, 1)
	target := inlandCeiling * maxHeight * t.field.BaseNoise(x, z)

	height := start + math.Pow(u, 1.3)*(target-start)
	detail := t.perlin.FBM(x*0.15, z*0.15, 3) * 0.05 * maxHeight
	return height + detail*u
}

// centralModifier raises a summit where the base relief is high and
// carves a crater where it is low. u is progress past the inland zone.
func (t *Terrain) centralModifier(x, z, u float64) float64 {
	maxHeight := float64(t.maxHeight)
	base := t.field.BaseNoise(x, z)
	if base > 0.5 {
		return u * peakHeadroom * maxHeight * (base - 0.5) * 2
	}
	return -u * craterDepth * maxHeight * (0.5 - base) * 2
}

// applyErosion attenuates exposed land by local slope. A copy of the
// heights feeds the slope estimate so the pass is order-independent.
func (t *Terrain) applyErosion() {
	rows := t.resolution + 1
	if rows < 3 {
		return
	}

	heights := make([]float64, len(t.mesh.Positions))
	for i, p := range t.mesh.Positions {
		heights[i] = float64(p.Y())
	}

	cell := float64(t.size) / float64(t.resolution)
	parallel.For(rows-2, func(row, _ int) {
		j := row + 1
		for i := 1; i < rows-1; i++ {
			idx := t.grid.Index(i, j)
			h := heights[idx]
			if h <= 0 {
				continue
			}

			dx := (heights[t.grid.Index(i+1, j)] - heights[t.grid.Index(i-1, j)]) / (2 * cell)
			dz := (heights[t.grid.Index(i, j+1)] - heights[t.grid.Index(i, j-1)]) / (2 * cell)
			slope := math.Sqrt(dx*dx + dz*dz)

			t.mesh.Positions[idx][1] = float32(erosionFilter(h, slope))
		}
	})
}

// erosionFilter flattens steep exposed rock by up to erosionStrength.
func erosionFilter(h, slope float64) float64 {
	wear := clampf(slope/4, 0, 1)
	return h * (1 - erosionStrength*wear)
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
