// Package meshio reads and writes hex meshes in a line oriented text format.
//
// Each statement starts with a keyword followed by its arguments:
//
//	v x y z [volumeFraction]   vertex
//	e a b                      edge
//	f a b c d                  quad face
//	h a b c d e f g h          hexahedral cell
//
// Indices are 0-based and refer to vertices in order of appearance.
// Text from # to the end of a line is a comment.
package meshio

import (
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/soypat/hexmesh"
	"gonum.org/v1/gonum/spatial/r3"
)

type meshFile struct {
	Statements []*statement `parser:"@@*"`
}

type statement struct {
	Pos lexer.Position

	Vertex []float64 `parser:"  \"v\" @(Float|Int)+"`
	Edge   []int     `parser:"| \"e\" @Int+"`
	Face   []int     `parser:"| \"f\" @Int+"`
	Hex    []int     `parser:"| \"h\" @Int+"`
}

var meshLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "Float", Pattern: `[-+]?(\d+\.\d*|\.\d+)([eE][-+]?\d+)?|[-+]?\d+[eE][-+]?\d+`},
	{Name: "Int", Pattern: `[-+]?\d+`},
	{Name: "Keyword", Pattern: `[a-zA-Z]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parseMesh = participle.MustBuild[meshFile](
	participle.Lexer(meshLexer),
	participle.Elide("Comment", "Whitespace"),
)

// Parse reads a mesh from r. name is used in error positions.
// Vertices are matched with hexmesh.DefaultTolerance.
func Parse(name string, r io.Reader) (*hexmesh.Mesh, error) {
	f, err := parseMesh.Parse(name, r)
	if err != nil {
		return nil, errors.Wrap(err, "meshio")
	}
	return build(f)
}

// ParseString is Parse reading from s.
func ParseString(name, s string) (*hexmesh.Mesh, error) {
	f, err := parseMesh.ParseString(name, s)
	if err != nil {
		return nil, errors.Wrap(err, "meshio")
	}
	return build(f)
}

// build adds vertices first so that statements may reference vertices
// declared further down the file.
func build(f *meshFile) (*hexmesh.Mesh, error) {
	m := hexmesh.NewMesh(hexmesh.DefaultTolerance)
	for _, st := range f.Statements {
		if st.Vertex == nil {
			continue
		}
		c := st.Vertex
		if len(c) != 3 && len(c) != 4 {
			return nil, errors.Wrapf(hexmesh.ErrUnsupportedInput, "meshio: %s: vertex with %d values", st.Pos, len(c))
		}
		i := m.AddVertex(r3.Vec{X: c[0], Y: c[1], Z: c[2]})
		if len(c) == 4 {
			m.Vertices.At(i).VolumeFraction = c[3]
		}
	}
	n := m.Vertices.Len()
	for _, st := range f.Statements {
		var err error
		switch {
		case st.Edge != nil:
			if err = arity("edge", st.Edge, 2, n); err == nil {
				_, err = m.AddEdge(st.Edge[0], st.Edge[1])
			}
		case st.Face != nil:
			if err = arity("face", st.Face, 4, n); err == nil {
				v := st.Face
				_, err = m.AddFace(hexmesh.QuadFace{A: v[0], B: v[1], C: v[2], D: v[3]})
			}
		case st.Hex != nil:
			if err = arity("hex", st.Hex, 8, n); err == nil {
				var v [8]int
				copy(v[:], st.Hex)
				_, err = m.AddHex(hexmesh.NewHex(v))
			}
		}
		if err != nil {
			return nil, errors.WithMessagef(err, "meshio: %s", st.Pos)
		}
	}
	m.Connect()
	return m, nil
}

func arity(kind string, idx []int, want, nverts int) error {
	if len(idx) != want {
		return errors.Wrapf(hexmesh.ErrUnsupportedInput, "%s with %d vertices", kind, len(idx))
	}
	for _, i := range idx {
		if i < 0 || i >= nverts {
			return errors.Wrapf(hexmesh.ErrMalformedConnectivity, "%s vertex %d out of range [0,%d)", kind, i, nverts)
		}
	}
	return nil
}
