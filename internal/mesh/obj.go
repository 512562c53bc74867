package mesh

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ writes the snapshot as a Wavefront OBJ object. Positions,
// texture coordinates and normals are emitted per vertex, and each face
// references all three with the same index.
func WriteOBJ(w io.Writer, s *Snapshot, name string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "o %s\n", name)
	for _, p := range s.Positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p.X(), p.Y(), p.Z())
	}
	for _, uv := range s.UVs {
		fmt.Fprintf(bw, "vt %g %g\n", uv.X(), uv.Y())
	}
	for _, n := range s.Normals {
		fmt.Fprintf(bw, "vn %g %g %g\n", n.X(), n.Y(), n.Z())
	}

	// .obj indices start at 1, not 0
	for i := 0; i+2 < len(s.Indices); i += 3 {
		a := s.Indices[i] + 1
		b := s.Indices[i+1] + 1
		c := s.Indices[i+2] + 1
		fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
	}

	return bw.Flush()
}
