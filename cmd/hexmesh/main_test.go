package main

import (
	"testing"

	"github.com/soypat/hexmesh"
	"github.com/soypat/hexmesh/meshio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two unit squares of a 2x2 grid sharing only vertex 4.
const bowtie = `v 0 0 0
v 1 0 0
v 2 0 0
v 0 1 0
v 1 1 0
v 2 1 0
v 0 2 0
v 1 2 0
v 2 2 0
f 0 1 4 3
f 4 5 8 7
`

func TestMakeManifold(t *testing.T) {
	m, err := meshio.ParseString("bowtie", bowtie)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Vertices.At(4).NumConnectedVertices())

	got, err := makeManifold(m)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Faces.Len())
	assert.Equal(t, 14, got.Vertices.Len())
	for _, f := range got.Faces.Faces() {
		for _, v := range f.Vertices() {
			assert.NotNil(t, got.Vertices.At(v))
		}
	}
}

func TestValences(t *testing.T) {
	m, err := meshio.ParseString("bowtie", bowtie)
	require.NoError(t, err)
	vals := valences(m)
	require.Len(t, vals, 9)
	assert.Equal(t, []float64{2, 2, 0, 2, 4, 2, 0, 2, 2}, vals)
}

// Two unit hexes touching only at vertex 6.
const kissing = `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
v 2 1 1
v 2 2 1
v 1 2 1
v 1 1 2
v 2 1 2
v 2 2 2
v 1 2 2
h 0 1 2 3 4 5 6 7
h 6 8 9 10 11 12 13 14
`

func TestResolveNonManifold(t *testing.T) {
	for mode, want := range map[hexmesh.ResolveMode]int{
		hexmesh.ResolveBridge: 4,
		hexmesh.ResolveSplit:  8,
	} {
		m, err := meshio.ParseString("kissing", kissing)
		require.NoError(t, err)
		nm, err := hexmesh.FindNonManifold(m.Hexes)
		require.NoError(t, err)
		require.Equal(t, []int{6}, nm.KissingPoints)

		require.NoError(t, resolveNonManifold(m, mode), mode.String())
		assert.Len(t, m.Hexes, want, mode.String())
		nm, err = hexmesh.FindNonManifold(m.Hexes)
		require.NoError(t, err)
		assert.True(t, nm.Empty(), "%s left %+v", mode, nm)
	}
}
