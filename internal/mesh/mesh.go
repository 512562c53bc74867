package mesh

import "github.com/go-gl/mathgl/mgl32"

// Mesh is a mutable triangle mesh laid out over a Grid. Buffers keep
// lattice order, so vertex (i, j) lives at Grid.Index(i, j).
type Mesh struct {
	Grid      Grid
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// NewGridMesh builds a flat mesh covering the grid at height zero.
// uvScale sets how many times a texture tiles across the surface.
func NewGridMesh(g Grid, uvScale float32) *Mesh {
	m := &Mesh{
		Grid:      g,
		Positions: make([]mgl32.Vec3, g.VertexCount()),
		Normals:   make([]mgl32.Vec3, g.VertexCount()),
		UVs:       make([]mgl32.Vec2, g.VertexCount()),
		Indices:   g.Indices(),
	}

	for j := 0; j <= g.Resolution; j++ {
		for i := 0; i <= g.Resolution; i++ {
			idx := g.Index(i, j)
			m.Positions[idx] = mgl32.Vec3{g.WorldX(i), 0, g.WorldZ(j)}
			m.Normals[idx] = mgl32.Vec3{0, 1, 0}
			m.UVs[idx] = mgl32.Vec2{
				float32(i) / float32(g.Resolution) * uvScale,
				float32(j) / float32(g.Resolution) * uvScale,
			}
		}
	}
	return m
}

// RecomputeNormals rebuilds smooth vertex normals from the current
// positions. Degenerate triangles are skipped, and vertices that end up
// with no usable faces fall back to straight up.
func (m *Mesh) RecomputeNormals() {
	for i := range m.Normals {
		m.Normals[i] = mgl32.Vec3{}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0 := m.Indices[i]
		i1 := m.Indices[i+1]
		i2 := m.Indices[i+2]

		edge1 := m.Positions[i1].Sub(m.Positions[i0])
		edge2 := m.Positions[i2].Sub(m.Positions[i0])
		normal := edge1.Cross(edge2)
		if normal.Len() < 1e-8 {
			continue
		}
		normal = normal.Normalize()

		m.Normals[i0] = m.Normals[i0].Add(normal)
		m.Normals[i1] = m.Normals[i1].Add(normal)
		m.Normals[i2] = m.Normals[i2].Add(normal)
	}

	for i := range m.Normals {
		if m.Normals[i].Len() < 1e-6 {
			m.Normals[i] = mgl32.Vec3{0, 1, 0}
			continue
		}
		m.Normals[i] = m.Normals[i].Normalize()
	}
}

// Snapshot is an immutable copy of mesh buffers, safe to hand off while
// the source mesh keeps animating.
type Snapshot struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint32
}

// Snapshot deep-copies the mesh buffers.
func (m *Mesh) Snapshot() *Snapshot {
	s := &Snapshot{
		Positions: make([]mgl32.Vec3, len(m.Positions)),
		Normals:   make([]mgl32.Vec3, len(m.Normals)),
		UVs:       make([]mgl32.Vec2, len(m.UVs)),
		Indices:   make([]uint32, len(m.Indices)),
	}
	copy(s.Positions, m.Positions)
	copy(s.Normals, m.Normals)
	copy(s.UVs, m.UVs)
	copy(s.Indices, m.Indices)
	return s
}

// Interleaved flattens the snapshot into the [x y z u v nx ny nz]
// vertex layout used for GPU uploads.
func (s *Snapshot) Interleaved() []float32 {
	data := make([]float32, 0, len(s.Positions)*8)
	for i := range s.Positions {
		p := s.Positions[i]
		uv := s.UVs[i]
		n := s.Normals[i]
		data = append(data, p.X(), p.Y(), p.Z(), uv.X(), uv.Y(), n.X(), n.Y(), n.Z())
	}
	return data
}
