package pathsearch

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// ShortestPath returns a path with the fewest edges from start to end over
// the undirected edges, beginning with start and ending with end. Among paths
// of equal length any one may be returned.
func ShortestPath(edges [][2]int, start, end int) ([]int, error) {
	g := NewGraph(edges)
	if g.Node(int64(start)) == nil {
		return nil, errors.Wrapf(ErrVertexNotFound, "start %d", start)
	}
	if g.Node(int64(end)) == nil {
		return nil, errors.Wrapf(ErrVertexNotFound, "end %d", end)
	}
	nodes, _ := path.DijkstraFrom(simple.Node(start), g).To(int64(end))
	if len(nodes) == 0 {
		return nil, errors.Wrapf(ErrNoPath, "from %d to %d", start, end)
	}
	p := make([]int, len(nodes))
	for i, n := range nodes {
		p[i] = int(n.ID())
	}
	return p, nil
}
