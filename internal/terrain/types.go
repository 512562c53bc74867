package terrain

import (
	"Terra3D/internal/noise"
	"fmt"
)

// Type selects the base relief driving the inland and peak zones.
type Type int

const (
	ISLAND Type = iota
	RIDGED
	VORONOI
	CANYON
	PLATEAUS
)

var typeNames = map[Type]string{
	ISLAND:   "island",
	RIDGED:   "ridged",
	VORONOI:  "voronoi",
	CANYON:   "canyon",
	PLATEAUS: "plateaus",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// ParseType maps a config name to a terrain type.
func ParseType(name string) (Type, error) {
	for typ, n := range typeNames {
		if n == name {
			return typ, nil
		}
	}
	return ISLAND, fmt.Errorf("unknown terrain type %q", name)
}

// baseField is the relief strategy behind a terrain type. BaseNoise
// returns a normalized sample in [0, 1].
type baseField interface {
	BaseNoise(x, z float64) float64
}

type islandField struct {
	perlin *noise.Perlin
	freq   float64
}

func (f islandField) BaseNoise(x, z float64) float64 {
	return 0.5 + 0.5*f.perlin.FBM(x*f.freq, z*f.freq, 6)
}

type ridgedField struct {
	perlin *noise.Perlin
	freq   float64
}

func (f ridgedField) BaseNoise(x, z float64) float64 {
	return f.perlin.Ridged(x*f.freq*0.6, z*f.freq*0.6, 6)
}

type voronoiField struct {
	cells *noise.CellSet
}

func (f voronoiField) BaseNoise(x, z float64) float64 {
	return f.cells.Voronoi(x, z)
}

type canyonField struct {
	perlin *noise.Perlin
	freq   float64
}

func (f canyonField) BaseNoise(x, z float64) float64 {
	return f.perlin.Canyon(x*f.freq*0.8, z*f.freq*0.8)
}

type plateausField struct {
	perlin *noise.Perlin
	freq   float64
}

func (f plateausField) BaseNoise(x, z float64) float64 {
	return f.perlin.Plateau(x*f.freq*0.7, z*f.freq*0.7)
}
