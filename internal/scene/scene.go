// Package scene holds what the surface generators hand to an external
// renderer: mesh snapshots, shared resource lifetimes, a camera and the
// per-draw uniform block.
package scene

import (
	"Terra3D/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

// Surface is any animated mesh generator the frame loop drives.
type Surface interface {
	Update(dt float32)
	Snapshot() *mesh.Snapshot
}

// Uniforms is the uniform set handed to the renderer alongside a mesh
// snapshot.
type Uniforms struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4

	Time         float32
	WaterColor   mgl32.Vec3
	FoamColor    mgl32.Vec3
	Transparency float32
}

// NewUniforms returns a uniform block with identity transforms.
func NewUniforms() *Uniforms {
	return &Uniforms{
		Model:        mgl32.Ident4(),
		View:         mgl32.Ident4(),
		Projection:   mgl32.Ident4(),
		Transparency: 1,
	}
}
