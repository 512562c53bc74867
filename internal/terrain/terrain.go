// Package terrain synthesizes island heightfields from fractal noise.
// A Terrain owns its mesh and parameter state; every parameter change
// rebuilds the full mesh rather than patching it incrementally.
package terrain

import (
	"Terra3D/internal/logger"
	"Terra3D/internal/mesh"
	"Terra3D/internal/noise"
	"Terra3D/internal/scene"
	"fmt"

	"github.com/dgravesa/go-parallel/parallel"
	"go.uber.org/zap"
)

const (
	defaultNoiseFrequency = 0.05
	voronoiCellCount      = 32
	resourceName          = "terrain.surface"
)

// Terrain generates and owns an island heightfield mesh.
type Terrain struct {
	resolution     int
	size           float32
	maxHeight      float32
	noiseFrequency float64
	terrainType    Type

	seed   int64
	perlin *noise.Perlin
	cells  *noise.CellSet
	field  baseField

	grid       mesh.Grid
	mesh       *mesh.Mesh
	generation uint64

	resources *scene.ResourcePool
}

// New builds a terrain surface and generates its initial mesh. The
// resource pool may be nil for headless use.
func New(pool *scene.ResourcePool, resolution int, size, maxHeight float32, terrainType Type) (*Terrain, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("terrain resolution must be positive, got %d", resolution)
	}
	if size <= 0 {
		return nil, fmt.Errorf("terrain size must be positive, got %f", size)
	}

	t := &Terrain{
		resolution:     resolution,
		size:           size,
		maxHeight:      maxHeight,
		noiseFrequency: defaultNoiseFrequency,
		terrainType:    terrainType,
		seed:           noise.DefaultSeed,
		resources:      pool,
	}
	t.perlin = noise.NewPerlin(t.seed)
	t.cells = noise.NewCellSet(t.seed, voronoiCellCount, float64(size))
	t.field = t.newField()
	t.grid = mesh.Grid{Resolution: resolution, Size: size}
	t.mesh = mesh.NewGridMesh(t.grid, 1)

	if pool != nil {
		if _, err := pool.Acquire(resourceName); err != nil {
			return nil, err
		}
	}

	t.Regenerate()
	return t, nil
}

// Close releases the shared surface resource.
func (t *Terrain) Close() {
	if t.resources != nil {
		t.resources.Release(resourceName)
		t.resources = nil
	}
}

func (t *Terrain) newField() baseField {
	switch t.terrainType {
	case RIDGED:
		return ridgedField{perlin: t.perlin, freq: t.noiseFrequency}
	case VORONOI:
		return voronoiField{cells: t.cells}
	case CANYON:
		return canyonField{perlin: t.perlin, freq: t.noiseFrequency}
	case PLATEAUS:
		return plateausField{perlin: t.perlin, freq: t.noiseFrequency}
	default:
		return islandField{perlin: t.perlin, freq: t.noiseFrequency}
	}
}

// Regenerate re-evaluates every vertex height and rebuilds normals.
// Rows are evaluated in parallel; each vertex is independent.
func (t *Terrain) Regenerate() {
	rows := t.resolution + 1
	parallel.For(rows, func(j, _ int) {
		for i := 0; i < rows; i++ {
			idx := t.grid.Index(i, j)
			x := float64(t.grid.WorldX(i))
			z := float64(t.grid.WorldZ(j))
			t.mesh.Positions[idx][1] = float32(t.finalHeight(x, z))
		}
	})

	t.applyErosion()
	t.mesh.RecomputeNormals()
	t.generation++

	logger.Log.Info("Terrain mesh generated",
		zap.String("type", t.terrainType.String()),
		zap.Int("vertices", t.grid.VertexCount()),
		zap.Int("triangles", t.grid.TriangleCount()),
		zap.Float32("size", t.size),
		zap.Int("resolution", t.resolution))
}

// SetType switches the inland relief. Setting the current type again
// is a no-op and keeps the mesh untouched.
func (t *Terrain) SetType(typ Type) {
	if typ == t.terrainType {
		return
	}
	t.terrainType = typ
	t.field = t.newField()
	t.Regenerate()
}

// SetHeightScale changes the maximum terrain elevation.
func (t *Terrain) SetHeightScale(maxHeight float32) {
	t.maxHeight = maxHeight
	t.Regenerate()
}

// SetNoiseFrequency changes the base noise frequency.
func (t *Terrain) SetNoiseFrequency(freq float64) error {
	if freq <= 0 {
		return fmt.Errorf("noise frequency must be positive, got %f", freq)
	}
	t.noiseFrequency = freq
	t.field = t.newField()
	t.Regenerate()
	return nil
}

// Reseed rebuilds the permutation table and voronoi cells from a new
// seed, then regenerates the mesh.
func (t *Terrain) Reseed(seed int64) {
	t.seed = seed
	t.perlin.Reseed(seed)
	t.cells = noise.NewCellSet(seed, voronoiCellCount, float64(t.size))
	t.field = t.newField()
	t.Regenerate()
}

// GetHeightAt bilinearly interpolates terrain elevation at a world
// position. Positions outside the grid return 0.
func (t *Terrain) GetHeightAt(x, z float32) float32 {
	fx, fz, ok := t.grid.Locate(x, z)
	if !ok {
		return 0
	}

	i0 := int(fx)
	j0 := int(fz)
	if i0 >= t.resolution {
		i0 = t.resolution - 1
	}
	if j0 >= t.resolution {
		j0 = t.resolution - 1
	}
	tx := float32(fx - float64(i0))
	tz := float32(fz - float64(j0))

	h00 := t.mesh.Positions[t.grid.Index(i0, j0)].Y()
	h10 := t.mesh.Positions[t.grid.Index(i0+1, j0)].Y()
	h01 := t.mesh.Positions[t.grid.Index(i0, j0+1)].Y()
	h11 := t.mesh.Positions[t.grid.Index(i0+1, j0+1)].Y()

	top := h00 + (h10-h00)*tx
	bottom := h01 + (h11-h01)*tx
	return top + (bottom-top)*tz
}

// Update implements scene.Surface. Terrain only changes through
// parameter setters, so the per-frame step does nothing.
func (t *Terrain) Update(dt float32) {}

// Snapshot returns an immutable copy of the current mesh.
func (t *Terrain) Snapshot() *mesh.Snapshot {
	return t.mesh.Snapshot()
}

func (t *Terrain) Type() Type              { return t.terrainType }
func (t *Terrain) Resolution() int         { return t.resolution }
func (t *Terrain) Size() float32           { return t.size }
func (t *Terrain) MaxHeight() float32      { return t.maxHeight }
func (t *Terrain) NoiseFrequency() float64 { return t.noiseFrequency }
func (t *Terrain) Generation() uint64      { return t.generation }
func (t *Terrain) Mesh() *mesh.Mesh        { return t.mesh }

// Config is an exportable config for saving/loading terrain settings
type Config struct {
	Resolution     int     `json:"resolution"`
	Size           float32 `json:"size"`
	MaxHeight      float32 `json:"max_height"`
	NoiseFrequency float64 `json:"noise_frequency"`
	Type           string  `json:"type"`
}

// GetConfig returns the current configuration for saving
func (t *Terrain) GetConfig() Config {
	return Config{
		Resolution:     t.resolution,
		Size:           t.size,
		MaxHeight:      t.maxHeight,
		NoiseFrequency: t.noiseFrequency,
		Type:           t.terrainType.String(),
	}
}

// ApplyConfig applies a saved configuration and rebuilds the mesh
func (t *Terrain) ApplyConfig(config Config) error {
	if config.Resolution <= 0 {
		return fmt.Errorf("terrain resolution must be positive, got %d", config.Resolution)
	}
	if config.Size <= 0 {
		return fmt.Errorf("terrain size must be positive, got %f", config.Size)
	}
	if config.NoiseFrequency <= 0 {
		return fmt.Errorf("noise frequency must be positive, got %f", config.NoiseFrequency)
	}
	typ, err := ParseType(config.Type)
	if err != nil {
		return err
	}

	t.resolution = config.Resolution
	t.size = config.Size
	t.maxHeight = config.MaxHeight
	t.noiseFrequency = config.NoiseFrequency
	t.terrainType = typ

	t.cells = noise.NewCellSet(t.seed, voronoiCellCount, float64(t.size))
	t.field = t.newField()
	t.grid = mesh.Grid{Resolution: t.resolution, Size: t.size}
	t.mesh = mesh.NewGridMesh(t.grid, 1)
	t.Regenerate()
	return nil
}
