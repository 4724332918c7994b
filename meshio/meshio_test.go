package meshio_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/soypat/hexmesh"
	"github.com/soypat/hexmesh/meshio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

const cube = `# unit cube
v 0 0 0 0.5
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
f 0 1 5 4
f 1 2 6 5
f 2 3 7 6
f 3 0 4 7 # side
f 0 3 2 1
f 4 5 6 7
`

func TestParseCube(t *testing.T) {
	m, err := meshio.ParseString("cube", cube+"h 0 1 2 3 4 5 6 7\n")
	require.NoError(t, err)
	assert.Equal(t, 8, m.Vertices.Len())
	assert.Equal(t, 12, m.Edges.Len())
	assert.Equal(t, 6, m.Faces.Len())
	assert.Len(t, m.Hexes, 1)
	assert.Equal(t, 0.5, m.Vertices.At(0).VolumeFraction)
	assert.Equal(t, r3.Vec{X: 1, Y: 1, Z: 1}, m.Vertices.At(6).Location)
	assert.Equal(t, 3, m.Vertices.At(6).NumConnectedFaces())
}

func TestParseCompletes(t *testing.T) {
	m, err := meshio.Parse("cube", strings.NewReader(cube))
	require.NoError(t, err)
	hexes, err := m.CompleteHexes()
	require.NoError(t, err)
	assert.Len(t, hexes, 1)
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		src  string
		want error
	}{
		{src: "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 0 1 2\n", want: hexmesh.ErrUnsupportedInput},
		{src: "v 0 0 0\nv 1 0 0\ne 0 9\n", want: hexmesh.ErrMalformedConnectivity},
		{src: "v 0 0 0\nv 1 0 0\ne 0 -1\n", want: hexmesh.ErrMalformedConnectivity},
		{src: "v 0 0\n", want: hexmesh.ErrUnsupportedInput},
		{src: "v 0 0 0\nv 1 0 0\nv 1 1 0\nf 0 0 1 2\n", want: hexmesh.ErrMalformedConnectivity},
	} {
		_, err := meshio.ParseString("bad", test.src)
		assert.True(t, errors.Is(err, test.want), "%q: got %v", test.src, err)
	}

	_, err := meshio.ParseString("syntax", "v 0 0 zero\n")
	assert.Error(t, err)
	_, err = meshio.ParseString("syntax", "e 1.5 2\n")
	assert.Error(t, err)
}

func TestWriteSkipsDeleted(t *testing.T) {
	m, err := meshio.ParseString("cube", cube+"h 0 1 2 3 4 5 6 7\n")
	require.NoError(t, err)
	m.Vertices.Delete(7)

	var buf bytes.Buffer
	require.NoError(t, meshio.Write(&buf, m))
	got, err := meshio.Parse("written", &buf)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Vertices.Len())
	assert.Equal(t, 9, got.Edges.Len())
	assert.Equal(t, 3, got.Faces.Len())
	assert.Empty(t, got.Hexes)
	assert.Equal(t, 0.5, got.Vertices.At(0).VolumeFraction)
}

func TestSTL(t *testing.T) {
	m, err := meshio.ParseString("cube", cube)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, meshio.WriteSTL(&buf, m))
	assert.Equal(t, 84+12*50, buf.Len())

	tris, err := meshio.ReadSTL(&buf)
	require.NoError(t, err)
	require.Len(t, tris, 12)
	assert.Equal(t, meshio.Triangle{{}, {X: 1}, {X: 1, Z: 1}}, tris[0])
	assert.InDelta(t, -1, tris[0].Normal().Y, 1e-12)

	err = meshio.WriteSTL(&buf, hexmesh.NewMesh(hexmesh.DefaultTolerance))
	assert.True(t, errors.Is(err, hexmesh.ErrUnsupportedInput))
}
