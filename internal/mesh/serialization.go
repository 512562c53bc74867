package mesh

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"
)

// SerializedMesh is the flat, codec-friendly form of a Snapshot.
type SerializedMesh struct {
	Positions []float32 `json:"positions"`
	Normals   []float32 `json:"normals"`
	UVs       []float32 `json:"uvs"`
	Indices   []int32   `json:"indices"`
}

// Serialize flattens a snapshot into serializable slices.
func Serialize(s *Snapshot) *SerializedMesh {
	sm := &SerializedMesh{
		Positions: make([]float32, 0, len(s.Positions)*3),
		Normals:   make([]float32, 0, len(s.Normals)*3),
		UVs:       make([]float32, 0, len(s.UVs)*2),
		Indices:   make([]int32, 0, len(s.Indices)),
	}
	for _, p := range s.Positions {
		sm.Positions = append(sm.Positions, p.X(), p.Y(), p.Z())
	}
	for _, n := range s.Normals {
		sm.Normals = append(sm.Normals, n.X(), n.Y(), n.Z())
	}
	for _, uv := range s.UVs {
		sm.UVs = append(sm.UVs, uv.X(), uv.Y())
	}
	for _, idx := range s.Indices {
		sm.Indices = append(sm.Indices, int32(idx))
	}
	return sm
}

// Restore rebuilds a Snapshot from its serialized form.
func (sm *SerializedMesh) Restore() (*Snapshot, error) {
	if len(sm.Positions)%3 != 0 {
		return nil, fmt.Errorf("position buffer length %d is not a multiple of 3", len(sm.Positions))
	}
	if len(sm.Normals) != len(sm.Positions) {
		return nil, fmt.Errorf("normal buffer length %d does not match position buffer length %d", len(sm.Normals), len(sm.Positions))
	}
	if len(sm.UVs)%2 != 0 {
		return nil, fmt.Errorf("uv buffer length %d is not a multiple of 2", len(sm.UVs))
	}
	vertexCount := len(sm.Positions) / 3
	if len(sm.UVs)/2 != vertexCount {
		return nil, fmt.Errorf("uv buffer holds %d vertices, want %d", len(sm.UVs)/2, vertexCount)
	}

	s := &Snapshot{
		Positions: make([]mgl32.Vec3, vertexCount),
		Normals:   make([]mgl32.Vec3, vertexCount),
		UVs:       make([]mgl32.Vec2, vertexCount),
		Indices:   make([]uint32, len(sm.Indices)),
	}
	for i := 0; i < vertexCount; i++ {
		s.Positions[i] = mgl32.Vec3{sm.Positions[i*3], sm.Positions[i*3+1], sm.Positions[i*3+2]}
		s.Normals[i] = mgl32.Vec3{sm.Normals[i*3], sm.Normals[i*3+1], sm.Normals[i*3+2]}
		s.UVs[i] = mgl32.Vec2{sm.UVs[i*2], sm.UVs[i*2+1]}
	}
	for i, idx := range sm.Indices {
		if idx < 0 || int(idx) >= vertexCount {
			return nil, fmt.Errorf("index %d out of range for %d vertices", idx, vertexCount)
		}
		s.Indices[i] = uint32(idx)
	}
	return s, nil
}

// EncodeBinary encodes a serialized mesh to compressed binary format.
func EncodeBinary(sm *SerializedMesh) ([]byte, error) {
	var buf bytes.Buffer

	gzWriter := gzip.NewWriter(&buf)

	// Write header magic number
	if err := binary.Write(gzWriter, binary.LittleEndian, uint32(0x54455252)); err != nil { // "TERR"
		return nil, err
	}

	// Write version
	if err := binary.Write(gzWriter, binary.LittleEndian, uint32(1)); err != nil {
		return nil, err
	}

	if err := writeFloat32Slice(gzWriter, sm.Positions); err != nil {
		return nil, err
	}
	if err := writeFloat32Slice(gzWriter, sm.Normals); err != nil {
		return nil, err
	}
	if err := writeFloat32Slice(gzWriter, sm.UVs); err != nil {
		return nil, err
	}
	if err := writeInt32Slice(gzWriter, sm.Indices); err != nil {
		return nil, err
	}

	if err := gzWriter.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// DecodeBinary decodes compressed binary mesh data.
func DecodeBinary(data []byte) (*SerializedMesh, error) {
	gzReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzReader.Close()

	var magic uint32
	if err := binary.Read(gzReader, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != 0x54455252 {
		return nil, fmt.Errorf("invalid mesh file magic: %x", magic)
	}

	var version uint32
	if err := binary.Read(gzReader, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != 1 {
		return nil, fmt.Errorf("unsupported mesh version: %d", version)
	}

	sm := &SerializedMesh{}
	if sm.Positions, err = readFloat32Slice(gzReader); err != nil {
		return nil, err
	}
	if sm.Normals, err = readFloat32Slice(gzReader); err != nil {
		return nil, err
	}
	if sm.UVs, err = readFloat32Slice(gzReader); err != nil {
		return nil, err
	}
	if sm.Indices, err = readInt32Slice(gzReader); err != nil {
		return nil, err
	}

	return sm, nil
}

// Helper functions for binary encoding
func writeFloat32Slice(w io.Writer, data []float32) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(data))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

func writeInt32Slice(w io.Writer, data []int32) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(data))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, data)
}

func readFloat32Slice(r io.Reader) ([]float32, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("invalid slice length %d", count)
	}
	data := make([]float32, count)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, err
	}
	return data, nil
}

func readInt32Slice(r io.Reader) ([]int32, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("invalid slice length %d", count)
	}
	data := make([]int32, count)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, err
	}
	return data, nil
}
