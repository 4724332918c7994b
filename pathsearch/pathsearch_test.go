package pathsearch_test

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soypat/hexmesh/pathsearch"
)

// ladder returns the edges of a 2×n ladder graph: rails 0..n-1 and n..2n-1
// joined by rungs.
func ladder(n int) [][2]int {
	var edges [][2]int
	for i := 0; i < n; i++ {
		edges = append(edges, [2]int{i, n + i})
		if i+1 < n {
			edges = append(edges, [2]int{i, i + 1}, [2]int{n + i, n + i + 1})
		}
	}
	return edges
}

func TestFindAllPaths_Cycle(t *testing.T) {
	edges := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	paths, err := pathsearch.FindAllPaths(edges, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2}, {0, 3, 2}}, paths)
}

func TestFindAllPaths_EdgeOrderIrrelevant(t *testing.T) {
	edges := [][2]int{{2, 1}, {3, 2}, {0, 3}, {1, 0}, {0, 1}}
	paths, err := pathsearch.FindAllPaths(edges, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2}, {0, 3, 2}}, paths)
}

func TestFindAllPaths_SameVertex(t *testing.T) {
	paths, err := pathsearch.FindAllPaths([][2]int{{4, 5}}, 4, 4)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{4}}, paths)
}

func TestFindAllPaths_Disconnected(t *testing.T) {
	paths, err := pathsearch.FindAllPaths([][2]int{{0, 1}, {2, 3}}, 0, 3)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestFindAllPaths_VertexNotFound(t *testing.T) {
	_, err := pathsearch.FindAllPaths([][2]int{{0, 1}}, 0, 9)
	assert.True(t, errors.Is(err, pathsearch.ErrVertexNotFound))
	_, err = pathsearch.FindAllPaths(nil, 0, 0)
	assert.True(t, errors.Is(err, pathsearch.ErrVertexNotFound))
}

func TestFindAllPaths_SimplePaths(t *testing.T) {
	const n = 4
	paths, err := pathsearch.FindAllPaths(ladder(n), 0, 2*n-1)
	require.NoError(t, err)
	// Simple paths across a 2×n ladder corner to corner: 2^(n-1).
	assert.Len(t, paths, 1<<(n-1))
	for _, p := range paths {
		seen := map[int]bool{}
		for _, v := range p {
			require.False(t, seen[v], "path %v repeats vertex %d", p, v)
			seen[v] = true
		}
		assert.Equal(t, 0, p[0])
		assert.Equal(t, 2*n-1, p[len(p)-1])
	}
}

func TestFindAllPaths_Limits(t *testing.T) {
	edges := ladder(6)
	paths, err := pathsearch.FindAllPaths(edges, 0, 11, pathsearch.WithMaxSteps(5))
	assert.True(t, errors.Is(err, pathsearch.ErrIterationLimit))
	assert.Empty(t, paths)

	paths, err = pathsearch.FindAllPaths(edges, 0, 11, pathsearch.WithMaxPaths(3))
	require.NoError(t, err)
	assert.Len(t, paths, 3)

	// Shortest path has 6 edges: along one rail and across one rung.
	paths, err = pathsearch.FindAllPaths(edges, 0, 11, pathsearch.WithMaxDepth(6))
	require.NoError(t, err)
	assert.Len(t, paths, 6)
	for _, p := range paths {
		assert.Len(t, p, 7)
	}
}

func BenchmarkFindAllPaths(b *testing.B) {
	edges := ladder(8)
	for i := 0; i < b.N; i++ {
		_, err := pathsearch.FindAllPaths(edges, 0, 15)
		if err != nil {
			b.Fatal(err)
		}
	}
}
