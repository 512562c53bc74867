// Command terramap renders terrains offline: a hypsometric PNG per
// requested type, optional OBJ and binary mesh exports, and elevation
// statistics on the log.
package main

import (
	"Terra3D/internal/logger"
	"Terra3D/internal/mesh"
	"Terra3D/internal/terrain"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

var (
	typeFlag   = flag.String("type", "all", "terrain type: island, ridged, voronoi, canyon, plateaus or all")
	resolution = flag.Int("resolution", 256, "grid resolution (quads per side)")
	size       = flag.Float64("size", 512, "terrain side length in world units")
	maxHeight  = flag.Float64("height", 55, "maximum terrain elevation")
	noiseFreq  = flag.Float64("freq", 0.05, "base noise frequency")
	seed       = flag.Int64("seed", 0, "noise seed, 0 keeps the built-in default")
	outDir     = flag.String("out", ".", "output directory")
	exportOBJ  = flag.Bool("obj", false, "write a Wavefront .obj per terrain")
	exportMesh = flag.Bool("mesh", false, "write a compressed binary mesh per terrain")
	configPath = flag.String("config", "", "JSON config overriding the terrain flags")
)

// Hypsometric palette, deep water through snow.
var (
	deepColor    = color.RGBA{8, 35, 64, 255}
	shallowColor = color.RGBA{22, 84, 120, 255}
	sandColor    = color.RGBA{214, 196, 158, 255}
	grassColor   = color.RGBA{74, 122, 54, 255}
	rockColor    = color.RGBA{120, 110, 100, 255}
	snowColor    = color.RGBA{240, 240, 245, 255}
)

func main() {
	flag.Parse()
	logger.Init()

	cfg := exportConfig{
		Terrain: terrain.Config{
			Resolution:     *resolution,
			Size:           float32(*size),
			MaxHeight:      float32(*maxHeight),
			NoiseFrequency: *noiseFreq,
			Type:           *typeFlag,
		},
		Seed: *seed,
	}
	if *configPath != "" {
		if err := loadExportConfig(*configPath, &cfg); err != nil {
			logger.Log.Fatal("Could not load config", zap.String("path", *configPath), zap.Error(err))
		}
	}

	types, err := resolveTypes(cfg.Terrain.Type)
	if err != nil {
		logger.Log.Fatal("Bad terrain type", zap.Error(err))
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		logger.Log.Fatal("Could not create output directory", zap.String("dir", *outDir), zap.Error(err))
	}

	for _, typ := range types {
		if err := exportTerrain(typ, cfg); err != nil {
			logger.Log.Fatal("Export failed", zap.String("type", typ.String()), zap.Error(err))
		}
	}
}

func resolveTypes(name string) ([]terrain.Type, error) {
	if name == "all" {
		return []terrain.Type{
			terrain.ISLAND, terrain.RIDGED, terrain.VORONOI, terrain.CANYON, terrain.PLATEAUS,
		}, nil
	}
	typ, err := terrain.ParseType(name)
	if err != nil {
		return nil, err
	}
	return []terrain.Type{typ}, nil
}

func exportTerrain(typ terrain.Type, cfg exportConfig) error {
	t, err := terrain.New(nil, cfg.Terrain.Resolution, cfg.Terrain.Size, cfg.Terrain.MaxHeight, typ)
	if err != nil {
		return err
	}
	if cfg.Terrain.NoiseFrequency != t.NoiseFrequency() {
		if err := t.SetNoiseFrequency(cfg.Terrain.NoiseFrequency); err != nil {
			return err
		}
	}
	if cfg.Seed != 0 {
		t.Reseed(cfg.Seed)
	}

	snapshot := t.Snapshot()

	heights := make([]float64, len(snapshot.Positions))
	for i, p := range snapshot.Positions {
		heights[i] = float64(p.Y())
	}
	sort.Float64s(heights)
	logElevationStats(typ, heights)

	mapPath := outPath(typ, "png")
	if err := writePNG(mapPath, renderMap(snapshot, t.Resolution(), landCuts(heights))); err != nil {
		return err
	}
	logger.Log.Info("Heightmap written", zap.String("type", typ.String()), zap.String("path", mapPath))

	if *exportOBJ {
		if err := writeOBJFile(outPath(typ, "obj"), snapshot, typ.String()); err != nil {
			return err
		}
	}
	if *exportMesh {
		if err := writeMeshFile(outPath(typ, "mesh"), snapshot); err != nil {
			return err
		}
	}
	return nil
}

func outPath(typ terrain.Type, ext string) string {
	return filepath.Join(*outDir, fmt.Sprintf("terrain_%s.%s", typ, ext))
}

// logElevationStats reports the elevation distribution of a generated
// terrain. heights must be sorted ascending.
func logElevationStats(typ terrain.Type, heights []float64) {
	logger.Log.Info("Elevation statistics",
		zap.String("type", typ.String()),
		zap.Float64("min", heights[0]),
		zap.Float64("max", heights[len(heights)-1]),
		zap.Float64("mean", stat.Mean(heights, nil)),
		zap.Float64("p25", stat.Quantile(0.25, stat.Empirical, heights, nil)),
		zap.Float64("p50", stat.Quantile(0.50, stat.Empirical, heights, nil)),
		zap.Float64("p75", stat.Quantile(0.75, stat.Empirical, heights, nil)))
}

// hypsoCuts holds the land elevations separating the tint bands. Cuts
// come from quantiles so every terrain type fills the whole palette
// regardless of its absolute height range.
type hypsoCuts struct {
	sandTop  float64
	grassTop float64
	rockTop  float64
}

func landCuts(sorted []float64) hypsoCuts {
	land := sorted[sort.SearchFloat64s(sorted, 0):]
	if len(land) == 0 {
		return hypsoCuts{}
	}
	return hypsoCuts{
		sandTop:  stat.Quantile(0.15, stat.Empirical, land, nil),
		grassTop: stat.Quantile(0.70, stat.Empirical, land, nil),
		rockTop:  stat.Quantile(0.95, stat.Empirical, land, nil),
	}
}

func (c hypsoCuts) tint(h float64) color.RGBA {
	switch {
	case h < -5:
		return deepColor
	case h < 0:
		return shallowColor
	case h < c.sandTop:
		return sandColor
	case h < c.grassTop:
		return grassColor
	case h < c.rockTop:
		return rockColor
	default:
		return snowColor
	}
}

// renderMap paints one pixel per grid vertex, row 0 at the top.
func renderMap(s *mesh.Snapshot, resolution int, cuts hypsoCuts) *image.RGBA {
	side := resolution + 1
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for j := 0; j < side; j++ {
		for i := 0; i < side; i++ {
			h := float64(s.Positions[j*side+i].Y())
			img.SetRGBA(i, j, cuts.tint(h))
		}
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeOBJFile(path string, s *mesh.Snapshot, name string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := mesh.WriteOBJ(f, s, name); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Log.Info("OBJ written", zap.String("path", path))
	return nil
}

func writeMeshFile(path string, s *mesh.Snapshot) error {
	data, err := mesh.EncodeBinary(mesh.Serialize(s))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	logger.Log.Info("Binary mesh written", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}
