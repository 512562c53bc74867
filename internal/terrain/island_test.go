package terrain

import (
	"math"
	"testing"
)

func newTestTerrain(t *testing.T, typ Type) *Terrain {
	t.Helper()
	tr, err := New(nil, 8, 100, 30, typ)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tr
}

func TestIslandMaskRange(t *testing.T) {
	tr := newTestTerrain(t, ISLAND)

	for i := 0; i < 200; i++ {
		x := float64(i)*1.3 - 130
		z := float64(i)*0.7 - 70
		m := tr.islandMask(x, z)
		if m < 0 || m > 1 {
			t.Fatalf("islandMask(%f, %f) = %f, want value in [0, 1]", x, z, m)
		}
	}
}

func TestIslandMaskFalloff(t *testing.T) {
	tr := newTestTerrain(t, ISLAND)

	center := tr.islandMask(0, 0)
	farOut := tr.islandMask(70, 70)

	if farOut != 0 {
		t.Errorf("islandMask far offshore = %f, want 0", farOut)
	}
	if center < 0.1 {
		t.Errorf("islandMask at center = %f, want at least 0.1", center)
	}
	if center <= farOut {
		t.Errorf("mask does not fall off: center %f <= offshore %f", center, farOut)
	}
}

func TestCoastlineVariationRange(t *testing.T) {
	tr := newTestTerrain(t, ISLAND)

	for i := 0; i < 200; i++ {
		angle := float64(i) * 0.031
		x := math.Cos(angle) * 30
		z := math.Sin(angle) * 30
		v := tr.coastlineVariation(x, z)
		if v < 0 || v > 1 {
			t.Fatalf("coastlineVariation(%f, %f) = %f, want value in [0, 1]", x, z, v)
		}
	}
}

func TestFinalHeightBounds(t *testing.T) {
	for _, typ := range []Type{ISLAND, RIDGED, VORONOI, CANYON, PLATEAUS} {
		tr := newTestTerrain(t, typ)
		for i := 0; i < 400; i++ {
			x := float64(i%20)*5 - 50
			z := float64(i/20)*5 - 50
			h := tr.finalHeight(x, z)
			if h < oceanFloorLevel || h > float64(tr.maxHeight) {
				t.Fatalf("%v finalHeight(%f, %f) = %f, want value in [%f, %f]",
					typ, x, z, h, oceanFloorLevel, tr.maxHeight)
			}
		}
	}
}

func TestFinalHeightOpenSea(t *testing.T) {
	tr := newTestTerrain(t, ISLAND)

	if got := tr.finalHeight(70, 70); got != oceanFloorLevel {
		t.Errorf("finalHeight far offshore = %f, want %f", got, oceanFloorLevel)
	}
}

func TestErosionFilter(t *testing.T) {
	if got := erosionFilter(5, 0); got != 5 {
		t.Errorf("erosionFilter(5, 0) = %f, want 5", got)
	}
	if got := erosionFilter(10, 100); got != 8.5 {
		t.Errorf("erosionFilter(10, 100) = %f, want 8.5", got)
	}
	if got := erosionFilter(10, 2); got != 10*(1-0.15*0.5) {
		t.Errorf("erosionFilter(10, 2) = %f, want %f", got, 10*(1-0.15*0.5))
	}
}

func TestErosionOnlyLowersLand(t *testing.T) {
	tr := newTestTerrain(t, RIDGED)

	raw := make([]float64, len(tr.mesh.Positions))
	rows := tr.resolution + 1
	for j := 0; j < rows; j++ {
		for i := 0; i < rows; i++ {
			idx := tr.grid.Index(i, j)
			raw[idx] = tr.finalHeight(float64(tr.grid.WorldX(i)), float64(tr.grid.WorldZ(j)))
		}
	}

	for i, p := range tr.mesh.Positions {
		h := float64(p.Y())
		if raw[i] <= 0 {
			if math.Abs(h-raw[i]) > 1e-5 {
				t.Fatalf("submerged vertex %d moved from %f to %f", i, raw[i], h)
			}
			continue
		}
		if h > raw[i]+1e-5 {
			t.Fatalf("vertex %d rose from %f to %f after erosion", i, raw[i], h)
		}
		if h < raw[i]*(1-erosionStrength)-1e-5 {
			t.Fatalf("vertex %d fell from %f to %f, more than the erosion cap", i, raw[i], h)
		}
	}
}
