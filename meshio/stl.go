package meshio

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/soypat/hexmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle is a triangle with counter-clockwise vertices.
type Triangle [3]r3.Vec

// Normal returns the unit normal of t.
func (t Triangle) Normal() r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Triangles splits every quad face of m with live corners along its A-C
// diagonal.
func Triangles(m *hexmesh.Mesh) []Triangle {
	tris := make([]Triangle, 0, 2*m.Faces.Len())
outer:
	for i := 0; i < m.Faces.Len(); i++ {
		var p [4]r3.Vec
		for j, v := range m.Faces.At(i).Vertices() {
			vert := m.Vertices.At(v)
			if vert == nil {
				continue outer
			}
			p[j] = vert.Location
		}
		tris = append(tris, Triangle{p[0], p[1], p[2]}, Triangle{p[0], p[2], p[3]})
	}
	return tris
}

// WriteSTL writes the faces of m to w as a binary STL.
func WriteSTL(w io.Writer, m *hexmesh.Mesh) error {
	model := Triangles(m)
	if len(model) == 0 {
		return errors.Wrap(hexmesh.ErrUnsupportedInput, "meshio: no faces to write")
	}
	header := stlHeader{
		Count: uint32(len(model)),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	var d stlTriangle
	var b [stlTriangleSize]byte
	for _, t := range model {
		d.Normal = to3F32(t.Normal())
		d.Vertex1 = to3F32(t[0])
		d.Vertex2 = to3F32(t[1])
		d.Vertex3 = to3F32(t[2])
		d.put(b[:])
		if _, err := w.Write(b[:]); err != nil {
			return err
		}
	}
	return nil
}

// ReadSTL reads the triangles of a binary STL.
func ReadSTL(r io.Reader) ([]Triangle, error) {
	var header stlHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(err, "meshio: reading STL header")
	}
	if header.Count == 0 {
		return nil, errors.New("meshio: STL header indicates 0 triangles present")
	}
	var (
		buf [stlTriangleSize]byte
		d   stlTriangle
	)
	output := make([]Triangle, 0, header.Count)
	for i := 0; i < int(header.Count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, errors.Wrapf(err, "meshio: %d/%d STL triangles read", i, header.Count)
		}
		d.get(buf[:])
		if err := d.validate(); err != nil {
			return nil, errors.Wrapf(err, "meshio: STL triangle %d", i)
		}
		output = append(output, d.toTriangle())
	}
	return output, nil
}

const stlTriangleSize = 50

// stlHeader defines the STL file header.
type stlHeader struct {
	_     [80]uint8 // Header
	Count uint32    // Number of triangles
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal  [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	_       uint16 // Attribute byte count
}

func (t stlTriangle) put(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to marshal stlTriangle")
	}
	put3F32(b, t.Normal)
	put3F32(b[12:], t.Vertex1)
	put3F32(b[24:], t.Vertex2)
	put3F32(b[36:], t.Vertex3)
	binary.LittleEndian.PutUint16(b[48:], 0)
}

func (t *stlTriangle) get(b []byte) {
	if len(b) < stlTriangleSize {
		panic("need length 50 to unmarshal stlTriangle")
	}
	get3F32(b, &t.Normal)
	get3F32(b[12:], &t.Vertex1)
	get3F32(b[24:], &t.Vertex2)
	get3F32(b[36:], &t.Vertex3)
}

func (t stlTriangle) validate() error {
	const epsilon = 1e-12
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex1) || bad3F32(t.Vertex2) || bad3F32(t.Vertex3) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	if equalWithin3F32(t.Vertex1, t.Vertex2, epsilon) ||
		equalWithin3F32(t.Vertex2, t.Vertex3, epsilon) ||
		equalWithin3F32(t.Vertex3, t.Vertex1, epsilon) {
		return errors.New("triangle is degenerate")
	}
	return nil
}

func (t stlTriangle) toTriangle() Triangle {
	return Triangle{from3F32(t.Vertex1), from3F32(t.Vertex2), from3F32(t.Vertex3)}
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

func equalWithin3F32(a, b [3]float32, tol float32) bool {
	return math32.Abs(a[0]-b[0]) <= tol &&
		math32.Abs(a[1]-b[1]) <= tol &&
		math32.Abs(a[2]-b[2]) <= tol
}

func to3F32(v r3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}

func from3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}
