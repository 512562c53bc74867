// Package mesh provides the heightfield geometry shared by the terrain
// and ocean surfaces: a regular grid of vertices in the XZ plane whose
// heights are written by the generators, plus normal recomputation,
// snapshots and serialization.
package mesh

// Grid describes a square vertex lattice centered on the origin in the
// XZ plane. Resolution counts cells per side, so the lattice carries
// (Resolution+1)*(Resolution+1) vertices and 2*Resolution*Resolution
// triangles.
type Grid struct {
	Resolution int
	Size       float32
}

// VertexCount returns the number of lattice vertices.
func (g Grid) VertexCount() int {
	side := g.Resolution + 1
	return side * side
}

// TriangleCount returns the number of triangles covering the grid.
func (g Grid) TriangleCount() int {
	return 2 * g.Resolution * g.Resolution
}

// Index maps lattice coordinates to the row-major vertex index.
func (g Grid) Index(i, j int) int {
	return j*(g.Resolution+1) + i
}

// WorldX returns the world-space X coordinate of lattice column i.
func (g Grid) WorldX(i int) float32 {
	return (float32(i)/float32(g.Resolution) - 0.5) * g.Size
}

// WorldZ returns the world-space Z coordinate of lattice row j.
func (g Grid) WorldZ(j int) float32 {
	return (float32(j)/float32(g.Resolution) - 0.5) * g.Size
}

// Locate converts a world-space position to fractional lattice
// coordinates. ok is false when the position falls outside the grid.
func (g Grid) Locate(x, z float32) (fx, fz float64, ok bool) {
	fx = (float64(x)/float64(g.Size) + 0.5) * float64(g.Resolution)
	fz = (float64(z)/float64(g.Size) + 0.5) * float64(g.Resolution)
	if fx < 0 || fz < 0 || fx > float64(g.Resolution) || fz > float64(g.Resolution) {
		return 0, 0, false
	}
	return fx, fz, true
}

// Indices builds the triangle index buffer. Each cell splits into two
// counter-clockwise triangles so face normals point up on a flat grid.
func (g Grid) Indices() []uint32 {
	indices := make([]uint32, 0, g.TriangleCount()*3)
	stride := g.Resolution + 1
	for j := 0; j < g.Resolution; j++ {
		for i := 0; i < g.Resolution; i++ {
			i0 := uint32(j*stride + i)
			i1 := i0 + 1
			i2 := i0 + uint32(stride)
			i3 := i2 + 1

			indices = append(indices, i0, i2, i1)
			indices = append(indices, i1, i2, i3)
		}
	}
	return indices
}
