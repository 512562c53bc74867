// Package ocean animates a water surface from a fixed bank of Gerstner
// waves. Heights and normals are analytic, so any world position can be
// queried at any time without touching the mesh.
package ocean

import (
	"Terra3D/internal/logger"
	"Terra3D/internal/mesh"
	"Terra3D/internal/scene"
	"fmt"
	"math"
	"math/rand"

	"github.com/dgravesa/go-parallel/parallel"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	waveBankSeed   = 42
	smallWaveCount = 4
	uvTiling       = 10
	resourceName   = "ocean.surface"
)

// Wave is one traveling sinusoid of the bank.
type Wave struct {
	Wavelength float32
	Amplitude  float32
	Speed      float32
	Direction  mgl32.Vec2
}

// Ocean owns an animated water mesh. The wave bank and grid topology
// are fixed for the instance's lifetime; only heights and normals move.
type Ocean struct {
	size       float32
	resolution int

	waveHeight    float32
	waveSpeed     float32
	waveFrequency float32
	time          float32
	waves         []Wave

	waterColor   mgl32.Vec3
	foamColor    mgl32.Vec3
	transparency float32

	grid mesh.Grid
	mesh *mesh.Mesh
	foam foamField

	resources *scene.ResourcePool
}

// New builds an ocean surface and displaces its initial mesh. The
// resource pool may be nil for headless use.
func New(pool *scene.ResourcePool, size float32, resolution int, waveHeight float32) (*Ocean, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("ocean resolution must be positive, got %d", resolution)
	}
	if size <= 0 {
		return nil, fmt.Errorf("ocean size must be positive, got %f", size)
	}

	o := &Ocean{
		size:          size,
		resolution:    resolution,
		waveHeight:    waveHeight,
		waveSpeed:     1,
		waveFrequency: 1,
		waves:         buildWaveBank(),
		waterColor:    mgl32.Vec3{0.1, 0.3, 0.5},
		foamColor:     mgl32.Vec3{0.9, 0.95, 1.0},
		transparency:  0.7,
		foam:          newFoamField(waveBankSeed),
		resources:     pool,
	}
	o.grid = mesh.Grid{Resolution: resolution, Size: size}
	o.mesh = mesh.NewGridMesh(o.grid, uvTiling)

	if pool != nil {
		if _, err := pool.Acquire(resourceName); err != nil {
			return nil, err
		}
	}

	o.displace()

	logger.Log.Info("Ocean surface created",
		zap.Int("vertices", o.grid.VertexCount()),
		zap.Int("triangles", o.grid.TriangleCount()),
		zap.Float32("size", size),
		zap.Int("resolution", resolution))

	return o, nil
}

// Close releases the shared surface resource.
func (o *Ocean) Close() {
	if o.resources != nil {
		o.resources.Release(resourceName)
		o.resources = nil
	}
}

// buildWaveBank populates the fixed wave composition: two large
// swells, two medium waves and a seeded set of small detail waves.
func buildWaveBank() []Wave {
	waves := []Wave{
		{Wavelength: 30, Amplitude: 1.5, Speed: 1.0, Direction: unit(1, 0.3)},
		{Wavelength: 25, Amplitude: 1.2, Speed: 0.9, Direction: unit(0.5, 1)},
		{Wavelength: 15, Amplitude: 0.8, Speed: 1.2, Direction: unit(-0.7, 0.6)},
		{Wavelength: 12, Amplitude: 0.6, Speed: 1.1, Direction: unit(0.8, -0.4)},
	}

	rng := rand.New(rand.NewSource(waveBankSeed))
	for i := 0; i < smallWaveCount; i++ {
		angle := rng.Float64() * 2 * math.Pi
		waves = append(waves, Wave{
			Wavelength: 5 + float32(i)*2,
			Amplitude:  0.3 - float32(i)*0.05,
			Speed:      1.3 + float32(i)*0.1,
			Direction:  mgl32.Vec2{float32(math.Cos(angle)), float32(math.Sin(angle))},
		})
	}
	return waves
}

func unit(x, z float32) mgl32.Vec2 {
	return mgl32.Vec2{x, z}.Normalize()
}

// GetHeightAt returns the analytic wave height at a world position and
// time. Valid everywhere, not just over the mesh.
func (o *Ocean) GetHeightAt(x, z, at float32) float32 {
	var height float64
	for _, w := range o.waves {
		k := 2 * math.Pi / float64(w.Wavelength)
		omega := float64(o.waveSpeed * w.Speed)
		dot := float64(w.Direction.X()*x + w.Direction.Y()*z)
		phase := k * (dot - omega*float64(at))
		height += float64(w.Amplitude*o.waveHeight) * math.Sin(phase)
	}
	return float32(height)
}

// slope returns the analytic partial derivatives of the height field.
func (o *Ocean) slope(x, z, at float32) (dhdx, dhdz float64) {
	for _, w := range o.waves {
		k := 2 * math.Pi / float64(w.Wavelength)
		omega := float64(o.waveSpeed * w.Speed)
		dot := float64(w.Direction.X()*x + w.Direction.Y()*z)
		phase := k * (dot - omega*float64(at))

		scale := float64(w.Amplitude*o.waveHeight) * k * math.Cos(phase)
		dhdx += scale * float64(w.Direction.X())
		dhdz += scale * float64(w.Direction.Y())
	}
	return dhdx, dhdz
}

// GetNormalAt returns the analytic unit surface normal at a world
// position and time.
func (o *Ocean) GetNormalAt(x, z, at float32) mgl32.Vec3 {
	dhdx, dhdz := o.slope(x, z, at)
	return mgl32.Vec3{float32(-dhdx), 1, float32(-dhdz)}.Normalize()
}

// Update advances the accumulated time by dt scaled by the wave
// frequency and re-displaces every vertex.
func (o *Ocean) Update(dt float32) {
	o.time += dt * o.waveFrequency
	o.displace()
}

// displace rewrites every vertex height and normal for the current
// time. Rows are evaluated in parallel; each vertex is independent.
func (o *Ocean) displace() {
	rows := o.resolution + 1
	parallel.For(rows, func(j, _ int) {
		for i := 0; i < rows; i++ {
			idx := o.grid.Index(i, j)
			x := o.grid.WorldX(i)
			z := o.grid.WorldZ(j)
			o.mesh.Positions[idx][1] = o.GetHeightAt(x, z, o.time)
			o.mesh.Normals[idx] = o.GetNormalAt(x, z, o.time)
		}
	})
}

// Snapshot returns an immutable copy of the current mesh.
func (o *Ocean) Snapshot() *mesh.Snapshot {
	return o.mesh.Snapshot()
}

// FillUniforms writes the ocean's shading parameters into a uniform
// block for the external renderer.
func (o *Ocean) FillUniforms(u *scene.Uniforms) {
	u.Time = o.time
	u.WaterColor = o.waterColor
	u.FoamColor = o.foamColor
	u.Transparency = o.transparency
}

func (o *Ocean) SetWaveSpeed(speed float32)    { o.waveSpeed = speed }
func (o *Ocean) SetWaveHeight(height float32)  { o.waveHeight = height }
func (o *Ocean) SetWaveFrequency(freq float32) { o.waveFrequency = freq }
func (o *Ocean) SetTransparency(alpha float32) { o.transparency = alpha }

func (o *Ocean) SetWaterColor(r, g, b float32) {
	o.waterColor = mgl32.Vec3{r, g, b}
}

func (o *Ocean) SetFoamColor(r, g, b float32) {
	o.foamColor = mgl32.Vec3{r, g, b}
}

func (o *Ocean) Size() float32          { return o.size }
func (o *Ocean) Resolution() int        { return o.resolution }
func (o *Ocean) WaveHeight() float32    { return o.waveHeight }
func (o *Ocean) WaveSpeed() float32     { return o.waveSpeed }
func (o *Ocean) WaveFrequency() float32 { return o.waveFrequency }
func (o *Ocean) Time() float32          { return o.time }
func (o *Ocean) Mesh() *mesh.Mesh       { return o.mesh }

// Waves returns a copy of the wave bank.
func (o *Ocean) Waves() []Wave {
	waves := make([]Wave, len(o.waves))
	copy(waves, o.waves)
	return waves
}

// Config is an exportable config for saving/loading ocean settings
type Config struct {
	Size          float32    `json:"size"`
	Resolution    int        `json:"resolution"`
	WaveHeight    float32    `json:"wave_height"`
	WaveSpeed     float32    `json:"wave_speed"`
	WaveFrequency float32    `json:"wave_frequency"`
	WaterColor    [3]float32 `json:"water_color"`
	FoamColor     [3]float32 `json:"foam_color"`
	Transparency  float32    `json:"transparency"`
}

// GetConfig returns the current configuration for saving
func (o *Ocean) GetConfig() Config {
	return Config{
		Size:          o.size,
		Resolution:    o.resolution,
		WaveHeight:    o.waveHeight,
		WaveSpeed:     o.waveSpeed,
		WaveFrequency: o.waveFrequency,
		WaterColor:    [3]float32{o.waterColor.X(), o.waterColor.Y(), o.waterColor.Z()},
		FoamColor:     [3]float32{o.foamColor.X(), o.foamColor.Y(), o.foamColor.Z()},
		Transparency:  o.transparency,
	}
}

// ApplyConfig applies a saved configuration. Changing size or
// resolution rebuilds the grid; the wave bank stays fixed.
func (o *Ocean) ApplyConfig(config Config) error {
	if config.Resolution <= 0 {
		return fmt.Errorf("ocean resolution must be positive, got %d", config.Resolution)
	}
	if config.Size <= 0 {
		return fmt.Errorf("ocean size must be positive, got %f", config.Size)
	}

	rebuild := config.Resolution != o.resolution || config.Size != o.size
	o.size = config.Size
	o.resolution = config.Resolution
	o.waveHeight = config.WaveHeight
	o.waveSpeed = config.WaveSpeed
	o.waveFrequency = config.WaveFrequency
	o.waterColor = mgl32.Vec3{config.WaterColor[0], config.WaterColor[1], config.WaterColor[2]}
	o.foamColor = mgl32.Vec3{config.FoamColor[0], config.FoamColor[1], config.FoamColor[2]}
	o.transparency = config.Transparency

	if rebuild {
		o.grid = mesh.Grid{Resolution: o.resolution, Size: o.size}
		o.mesh = mesh.NewGridMesh(o.grid, uvTiling)
	}
	o.displace()
	return nil
}
