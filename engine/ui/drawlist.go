package ui

import (
	"encoding/binary"
	"math"
)

// Vertex is one UI vertex in window pixel space. The field order and sizes
// are a wire contract with the renderer: position at byte offset 0, texture
// coordinate at 8, color at 16, 28 bytes per vertex.
type Vertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [3]float32
}

// VertexStride is the serialized size of one Vertex in bytes.
const VertexStride = 28

// DrawList holds the vertex/index geometry produced during one frame.
// Insertion order is draw order. Both slices are append-only within a frame;
// ownership transfers to the caller at EndFrame and the context allocates a
// fresh list for the next frame.
type DrawList struct {
	Vertices []Vertex
	Indices  []uint32
}

// quad appends an axis-aligned rectangle as 4 vertices and 6 indices (two
// counter-clockwise triangles).
func (dl *DrawList) quad(x0, y0, x1, y1, u0, v0, u1, v1 float32, col [3]float32) {
	base := uint32(len(dl.Vertices))
	dl.Vertices = append(dl.Vertices,
		Vertex{Pos: [2]float32{x0, y0}, UV: [2]float32{u0, v0}, Color: col},
		Vertex{Pos: [2]float32{x1, y0}, UV: [2]float32{u1, v0}, Color: col},
		Vertex{Pos: [2]float32{x0, y1}, UV: [2]float32{u0, v1}, Color: col},
		Vertex{Pos: [2]float32{x1, y1}, UV: [2]float32{u1, v1}, Color: col},
	)
	dl.Indices = append(dl.Indices,
		base+0, base+2, base+1,
		base+1, base+2, base+3,
	)
}

// VertexBytes serializes the vertex buffer little-endian at the exact field
// offsets above. No in-memory struct layout is assumed.
func (dl DrawList) VertexBytes() []byte {
	out := make([]byte, len(dl.Vertices)*VertexStride)
	for i, v := range dl.Vertices {
		p := out[i*VertexStride:]
		putF32(p[0:], v.Pos[0])
		putF32(p[4:], v.Pos[1])
		putF32(p[8:], v.UV[0])
		putF32(p[12:], v.UV[1])
		putF32(p[16:], v.Color[0])
		putF32(p[20:], v.Color[1])
		putF32(p[24:], v.Color[2])
	}
	return out
}

// IndexBytes serializes the index buffer as little-endian uint32.
func (dl DrawList) IndexBytes() []byte {
	out := make([]byte, len(dl.Indices)*4)
	for i, idx := range dl.Indices {
		binary.LittleEndian.PutUint32(out[i*4:], idx)
	}
	return out
}

// Consts is the single per-frame uniform block shared by the background
// fragment stage and the UI vertex stage.
type Consts struct {
	ScreenSize [2]float32
}

// Bytes serializes the block (8 bytes; a renderer pads to its own uniform
// alignment if required). The GL backend reads the struct fields directly
// through glUniform2f; Bytes defines the layout for backends that take a raw
// constant buffer.
func (c Consts) Bytes() []byte {
	out := make([]byte, 8)
	putF32(out[0:], c.ScreenSize[0])
	putF32(out[4:], c.ScreenSize[1])
	return out
}

func putF32(p []byte, f float32) {
	binary.LittleEndian.PutUint32(p, math.Float32bits(f))
}
