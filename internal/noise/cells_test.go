package noise

import (
	"math"
	"testing"
)

func TestCellSetCount(t *testing.T) {
	cs := NewCellSet(42, 32, 100)
	if got := cs.Count(); got != 32 {
		t.Errorf("Count() = %d, want 32", got)
	}
}

func TestCellSetDeterministic(t *testing.T) {
	a := NewCellSet(42, 32, 100)
	b := NewCellSet(42, 32, 100)

	for i := 0; i < 100; i++ {
		x := float64(i)*0.97 - 50
		z := float64(i)*0.61 - 30
		if a.Voronoi(x, z) != b.Voronoi(x, z) {
			t.Fatalf("same seed diverged at (%f, %f)", x, z)
		}
	}
}

func TestCellSetSeedChangesLayout(t *testing.T) {
	a := NewCellSet(1, 32, 100)
	b := NewCellSet(2, 32, 100)

	same := true
	for i := 0; i < 50; i++ {
		x := float64(i)*1.93 - 50
		if a.MinDist(x, x*0.3) != b.MinDist(x, x*0.3) {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced an identical layout")
	}
}

func TestVoronoiRange(t *testing.T) {
	cs := NewCellSet(42, 32, 100)

	for i := 0; i < 500; i++ {
		x := float64(i)*0.41 - 100
		z := float64(i)*0.29 - 70
		v := cs.Voronoi(x, z)
		if v < 0 || v > 1 {
			t.Fatalf("Voronoi(%f, %f) = %f, want value in [0, 1]", x, z, v)
		}
	}
}

func TestVoronoiMatchesMinDist(t *testing.T) {
	cs := NewCellSet(42, 16, 80)

	for i := 0; i < 100; i++ {
		x := float64(i)*0.77 - 40
		z := float64(i)*0.53 - 25

		d := cs.MinDist(x, z)
		want := 1 - d/(80*0.1)
		if want < 0 {
			want = 0
		}

		got := cs.Voronoi(x, z)
		if math.Abs(got-want) > 1e-12 {
			t.Fatalf("Voronoi(%f, %f) = %f, want %f", x, z, got, want)
		}
	}
}

func TestVoronoiEmptySet(t *testing.T) {
	cs := NewCellSet(42, 0, 100)
	if got := cs.Voronoi(5, 5); got != 0 {
		t.Errorf("Voronoi on empty set = %f, want 0", got)
	}
}
