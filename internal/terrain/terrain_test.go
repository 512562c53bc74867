package terrain

import (
	"math"
	"testing"
)

func TestNewRejectsBadParameters(t *testing.T) {
	if _, err := New(nil, 0, 100, 10, ISLAND); err == nil {
		t.Error("New accepted zero resolution")
	}
	if _, err := New(nil, -4, 100, 10, ISLAND); err == nil {
		t.Error("New accepted negative resolution")
	}
	if _, err := New(nil, 4, 0, 10, ISLAND); err == nil {
		t.Error("New accepted zero size")
	}
	if _, err := New(nil, 4, -100, 10, ISLAND); err == nil {
		t.Error("New accepted negative size")
	}
}

func TestScenarioSmallIsland(t *testing.T) {
	tr, err := New(nil, 4, 100, 10, ISLAND)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := len(tr.Mesh().Positions); got != 25 {
		t.Errorf("vertex count = %d, want 25", got)
	}
	if got := len(tr.Mesh().Indices) / 3; got != 32 {
		t.Errorf("triangle count = %d, want 32", got)
	}

	h := tr.GetHeightAt(0, 0)
	if h < -15 || h > 10 {
		t.Errorf("GetHeightAt(0, 0) = %f, want value in [-15, 10]", h)
	}
}

func TestHeightsWithinRange(t *testing.T) {
	for _, typ := range []Type{ISLAND, RIDGED, VORONOI, CANYON, PLATEAUS} {
		tr, err := New(nil, 16, 200, 30, typ)
		if err != nil {
			t.Fatalf("New(%v) failed: %v", typ, err)
		}
		for i, p := range tr.Mesh().Positions {
			if p.Y() < -15 || p.Y() > 30 {
				t.Fatalf("%v vertex %d height = %f, want value in [-15, 30]", typ, i, p.Y())
			}
		}
	}
}

func TestGetHeightAtLatticePoint(t *testing.T) {
	tr, err := New(nil, 4, 100, 10, ISLAND)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	x := tr.Mesh().Grid.WorldX(1)
	z := tr.Mesh().Grid.WorldZ(2)
	want := tr.Mesh().Positions[tr.Mesh().Grid.Index(1, 2)].Y()

	got := tr.GetHeightAt(x, z)
	if math.Abs(float64(got-want)) > 1e-5 {
		t.Errorf("GetHeightAt(%f, %f) = %f, want stored height %f", x, z, got, want)
	}
}

func TestGetHeightAtCellMidpoint(t *testing.T) {
	tr, err := New(nil, 4, 100, 10, ISLAND)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	g := tr.Mesh().Grid
	h00 := tr.Mesh().Positions[g.Index(1, 1)].Y()
	h10 := tr.Mesh().Positions[g.Index(2, 1)].Y()
	h01 := tr.Mesh().Positions[g.Index(1, 2)].Y()
	h11 := tr.Mesh().Positions[g.Index(2, 2)].Y()
	want := (h00 + h10 + h01 + h11) / 4

	x := (g.WorldX(1) + g.WorldX(2)) / 2
	z := (g.WorldZ(1) + g.WorldZ(2)) / 2
	got := tr.GetHeightAt(x, z)
	if math.Abs(float64(got-want)) > 1e-4 {
		t.Errorf("midpoint height = %f, want corner average %f", got, want)
	}
}

func TestGetHeightAtOutOfBounds(t *testing.T) {
	tr, err := New(nil, 4, 100, 10, ISLAND)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	cases := [][2]float32{{51, 0}, {-51, 0}, {0, 51}, {0, -51}, {200, 200}}
	for _, c := range cases {
		if got := tr.GetHeightAt(c[0], c[1]); got != 0 {
			t.Errorf("GetHeightAt(%f, %f) = %f, want 0", c[0], c[1], got)
		}
	}
}

func TestSetTypeSameIsNoOp(t *testing.T) {
	tr, err := New(nil, 8, 100, 10, RIDGED)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	gen := tr.Generation()
	before := tr.Snapshot()

	tr.SetType(RIDGED)
	if tr.Generation() != gen {
		t.Errorf("generation advanced to %d after a no-op SetType, want %d", tr.Generation(), gen)
	}
	for i, p := range tr.Mesh().Positions {
		if p != before.Positions[i] {
			t.Fatalf("vertex %d moved after a no-op SetType", i)
		}
	}
}

func TestSetTypeRestoresVoronoiHeights(t *testing.T) {
	tr, err := New(nil, 8, 100, 10, VORONOI)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	before := tr.Snapshot()

	tr.SetType(RIDGED)
	tr.SetType(VORONOI)

	for i, p := range tr.Mesh().Positions {
		if p.Y() != before.Positions[i].Y() {
			t.Fatalf("vertex %d height = %f after switching back, want %f", i, p.Y(), before.Positions[i].Y())
		}
	}
}

func TestGenerationDeterministic(t *testing.T) {
	a, err := New(nil, 8, 100, 10, ISLAND)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b, err := New(nil, 8, 100, 10, ISLAND)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i := range a.Mesh().Positions {
		if a.Mesh().Positions[i] != b.Mesh().Positions[i] {
			t.Fatalf("instances with identical parameters diverged at vertex %d", i)
		}
	}
}

func TestNormalsUnitLength(t *testing.T) {
	tr, err := New(nil, 16, 200, 30, ISLAND)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for i, n := range tr.Mesh().Normals {
		if math.Abs(float64(n.Len()-1)) > 1e-4 {
			t.Fatalf("vertex %d normal %v has length %f, want 1", i, n, n.Len())
		}
	}
}

func TestReseed(t *testing.T) {
	tr, err := New(nil, 8, 100, 10, ISLAND)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	original := tr.Snapshot()

	tr.Reseed(7)
	changed := false
	for i, p := range tr.Mesh().Positions {
		if p.Y() != original.Positions[i].Y() {
			changed = true
			break
		}
	}
	if !changed {
		t.Error("Reseed(7) left every vertex height unchanged")
	}

	tr.Reseed(42)
	for i, p := range tr.Mesh().Positions {
		if p.Y() != original.Positions[i].Y() {
			t.Fatalf("vertex %d height = %f after reseeding back, want %f", i, p.Y(), original.Positions[i].Y())
		}
	}
}

func TestSetNoiseFrequencyValidation(t *testing.T) {
	tr, err := New(nil, 8, 100, 10, ISLAND)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := tr.SetNoiseFrequency(0); err == nil {
		t.Error("SetNoiseFrequency accepted 0")
	}
	if err := tr.SetNoiseFrequency(-0.1); err == nil {
		t.Error("SetNoiseFrequency accepted a negative frequency")
	}
	if err := tr.SetNoiseFrequency(0.1); err != nil {
		t.Errorf("SetNoiseFrequency(0.1) failed: %v", err)
	}
	if got := tr.NoiseFrequency(); got != 0.1 {
		t.Errorf("NoiseFrequency() = %f, want 0.1", got)
	}
}

func TestConfigRoundtrip(t *testing.T) {
	a, err := New(nil, 8, 50, 20, RIDGED)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	cfg := a.GetConfig()

	b, err := New(nil, 4, 100, 10, ISLAND)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := b.ApplyConfig(cfg); err != nil {
		t.Fatalf("ApplyConfig failed: %v", err)
	}

	if b.Resolution() != 8 || b.Size() != 50 || b.MaxHeight() != 20 || b.Type() != RIDGED {
		t.Errorf("ApplyConfig state = (%d, %f, %f, %v), want (8, 50, 20, ridged)",
			b.Resolution(), b.Size(), b.MaxHeight(), b.Type())
	}

	for i := range a.Mesh().Positions {
		if a.Mesh().Positions[i] != b.Mesh().Positions[i] {
			t.Fatalf("configured instance diverged from source at vertex %d", i)
		}
	}
}

func TestApplyConfigRejectsBadValues(t *testing.T) {
	tr, err := New(nil, 4, 100, 10, ISLAND)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := tr.ApplyConfig(Config{Resolution: 0, Size: 100, NoiseFrequency: 0.05, Type: "island"}); err == nil {
		t.Error("ApplyConfig accepted zero resolution")
	}
	if err := tr.ApplyConfig(Config{Resolution: 4, Size: -1, NoiseFrequency: 0.05, Type: "island"}); err == nil {
		t.Error("ApplyConfig accepted negative size")
	}
	if err := tr.ApplyConfig(Config{Resolution: 4, Size: 100, NoiseFrequency: 0.05, Type: "swamp"}); err == nil {
		t.Error("ApplyConfig accepted an unknown type name")
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{ISLAND, RIDGED, VORONOI, CANYON, PLATEAUS} {
		parsed, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("ParseType(%q) failed: %v", typ.String(), err)
		}
		if parsed != typ {
			t.Errorf("ParseType(%q) = %v, want %v", typ.String(), parsed, typ)
		}
	}
	if _, err := ParseType("dunes"); err == nil {
		t.Error("ParseType accepted an unknown name")
	}
}
