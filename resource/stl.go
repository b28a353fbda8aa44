package resource

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/chewxy/math32"
	"github.com/soypat/softrast/internal/d3"
	"github.com/soypat/softrast/vmath"
	"gonum.org/v1/gonum/spatial/r3"
)

// WriteSTL writes the mesh triangles to w in binary STL format. Texture
// coordinates and vertex normals are not representable and are dropped.
func WriteSTL(w io.Writer, m *Mesh) error {
	if m.Len() == 0 {
		return errors.New("empty mesh")
	}
	header := stlHeader{
		Count: uint32(m.Len()),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var d stlTriangle
	for i := 0; i < m.Len(); i++ {
		var b [50]byte
		tri := m.Triangle(i)
		d.Normal = faceNormal(tri[0].Pos, tri[1].Pos, tri[2].Pos)
		d.Vertex1 = tri[0].Pos
		d.Vertex2 = tri[1].Pos
		d.Vertex3 = tri[2].Pos
		d.put(b[:])
		_, err := io.Copy(w, bytes.NewReader(b[:]))
		if err != nil {
			return err
		}
	}
	return nil
}

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// ReadSTL reads a binary STL stream into a Mesh. Every vertex carries the
// face normal and a zero texture coordinate. Stored normals that disagree
// with the vertex winding are replaced by the calculated normal and
// degenerate triangles are dropped.
func ReadSTL(r io.Reader) (_ *Mesh, readErr error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, errors.New("encountered EOF while reading STL header")
		}
		return nil, errors.New("STL header read failed: " + err.Error())
	}
	if header.Count == 0 {
		return nil, errors.New("STL header indicates 0 triangles present")
	}
	var (
		buf [50]byte
		d   stlTriangle
		i   int
		m   = &Mesh{Vertices: make([]Vertex, 0, 3*int(min(header.Count, 1<<20)))}
	)
	defer func() {
		if readErr != nil {
			readErr = fmt.Errorf("%d/%d STL triangles read: %w", i+1, header.Count, readErr)
		}
	}()
	for i = 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, err
		}
		d.get(buf[:])
		err := d.validate()
		switch {
		case errors.Is(err, errDegenerateTriangle):
			continue
		case errors.Is(err, errCalculatedNormalMismatch):
			d.Normal = d.normalFromVertices()
		case err != nil:
			return nil, err
		}
		for _, p := range [3]vmath.Vec3{d.Vertex1, d.Vertex2, d.Vertex3} {
			m.Vertices = append(m.Vertices, Vertex{Pos: p, Normal: d.Normal})
		}
	}
	return m, nil
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  vmath.Vec3
	Vertex1 vmath.Vec3
	Vertex2 vmath.Vec3
	Vertex3 vmath.Vec3
	_       uint16 // Attribute byte count
}

func (t stlTriangle) put(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to marshal stlTriangle")
	}

	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < 50 {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, (*[3]float32)(&t.Normal))
	get3F32(b[12:], (*[3]float32)(&t.Vertex1))
	get3F32(b[24:], (*[3]float32)(&t.Vertex2))
	get3F32(b[36:], (*[3]float32)(&t.Vertex3))
	// no attributes supported.
}

func put3F32(b []byte, f [3]float32) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(f[0]))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(f[1]))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(f[2]))
}

func get3F32(b []byte, f *[3]float32) {
	_ = b[11] // early bounds check
	f[0] = math.Float32frombits(binary.LittleEndian.Uint32(b))
	f[1] = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	f[2] = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

var (
	errCalculatedNormalMismatch = errors.New("triangle normal not approximately equal to calculated normal from vertices")
	errDegenerateTriangle       = errors.New("triangle is degenerate")
)

func (t stlTriangle) validate() error {
	const epsilon = 1e-12
	const normTol = 5e-2
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if t.degenerate(epsilon) {
		return errDegenerateTriangle
	}
	if !vmath.EqualWithin(t.normalFromVertices(), t.Normal, normTol) {
		return errCalculatedNormalMismatch
	}
	return nil
}

func (t stlTriangle) normalFromVertices() vmath.Vec3 {
	v1 := r3.Scale(10, d3.FromArray(t.Vertex1))
	v2 := r3.Scale(10, d3.FromArray(t.Vertex2))
	v3 := r3.Scale(10, d3.FromArray(t.Vertex3))
	n := r3.Cross(r3.Sub(v2, v1), r3.Sub(v3, v1))
	if r3.Norm2(n) == 0 {
		return vmath.Vec3{}
	}
	return d3.ToArray(r3.Unit(n))
}

// degenerate returns true if two vertices coincide.
func (t stlTriangle) degenerate(tol float32) bool {
	return vmath.EqualWithin(t.Vertex1, t.Vertex2, tol) ||
		vmath.EqualWithin(t.Vertex2, t.Vertex3, tol) ||
		vmath.EqualWithin(t.Vertex3, t.Vertex1, tol)
}
